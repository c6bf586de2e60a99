package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/app"
	"alfredoptarigan/resume-scorer/internal/config"
	"alfredoptarigan/resume-scorer/internal/handlers"
	"alfredoptarigan/resume-scorer/internal/logger"
	"alfredoptarigan/resume-scorer/internal/repositories"
	"alfredoptarigan/resume-scorer/internal/services"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if err := run(cfg, zl); err != nil {
		zl.Fatal("❌ Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	zl.Info("✅ Config loaded successfully",
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("embedding_provider", cfg.LLM.EmbeddingProvider),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("queue", cfg.Queue.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDatabase(cfg, zl)
	if err != nil {
		return err
	}

	docRepo := repositories.NewDocumentRepository(db)
	jobRepo := repositories.NewScoreJobRepository(db)

	storage, err := app.NewStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	components, err := app.Build(ctx, cfg, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize scoring services: %w", err)
	}
	zl.Info("✅ Scoring services initialized", zap.Bool("guidelines", cfg.Guideline.Enabled))

	queue, err := app.NewQueue(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize job queue: %w", err)
	}
	defer queue.Close()

	worker := services.NewWorker(
		jobRepo,
		docRepo,
		storage,
		components.Scorer,
		queue,
		services.WorkerOptions{
			Concurrency:  cfg.Worker.Concurrency,
			PollInterval: cfg.Worker.PollInterval,
		},
		zl.Named("worker"),
	)
	worker.Start(context.Background())

	server := handlers.NewApp(handlers.Handlers{
		Score:    handlers.NewScoreHandler(components.Scorer, zl.Named("score")),
		Upload:   handlers.NewUploadHandler(docRepo, storage, components.Extractor, cfg.Storage.MaxFileSize, zl.Named("upload")),
		Evaluate: handlers.NewEvaluateHandler(jobRepo, docRepo, worker, zl.Named("evaluate")),
		Result:   handlers.NewResultHandler(jobRepo),
	}, handlers.AppOptions{
		BodyLimit: int(cfg.Storage.MaxFileSize),
		AccessLog: true,
	})

	go func() {
		<-ctx.Done()
		zl.Info("🛑 Shutting down server...")
		if err := server.Shutdown(); err != nil {
			zl.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("🚀 Server starting", zap.String("addr", addr))

	err = server.Listen(addr)
	worker.Stop()
	return err
}

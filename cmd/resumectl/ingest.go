package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/app"
	"alfredoptarigan/resume-scorer/internal/services"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index scoring guideline documents into Qdrant",
	Long: `Every .pdf, .docx or .txt file in the directory becomes the guidelines of one
category, named after the file: backend_engineer.pdf feeds the "backend engineer" category.
Existing guidelines of that category are replaced.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runIngest(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().String("dir", "./guidelines", "directory with guideline documents")
	viper.BindPFlag("ingest.dir", ingestCmd.Flags().Lookup("dir"))
}

func runIngest(ctx context.Context) error {
	cfg, zl := setup()
	defer zl.Sync() //nolint:errcheck

	cfg.Guideline.Enabled = true
	components, err := app.Build(ctx, cfg, zl)
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}

	dir := viper.GetString("ingest.dir")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading guideline directory: %w", err)
	}

	ingester := &guidelineIngester{
		extractor: components.Extractor,
		chunker:   services.NewTextChunker(),
		embedder:  components.Embedder,
		store:     components.Qdrant,
		logger:    zl,
	}

	var failed int
	for _, entry := range entries {
		if entry.IsDir() || !components.Extractor.Supports(entry.Name()) {
			continue
		}

		if err := ingester.ingestFile(ctx, filepath.Join(dir, entry.Name())); err != nil {
			zl.Error("❌ Failed to ingest guideline", zap.String("file", entry.Name()), zap.Error(err))
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d guideline documents failed to ingest", failed)
	}

	zl.Info("✅ All guideline documents ingested")
	return nil
}

type guidelineIngester struct {
	extractor services.TextExtractorService
	chunker   services.TextChunker
	embedder  services.Embedder
	store     services.QdrantService
	logger    *zap.Logger
}

func (g *guidelineIngester) ingestFile(ctx context.Context, path string) error {
	name := filepath.Base(path)
	category := categoryFromFilename(name)
	log := g.logger.With(zap.String("file", name), zap.String("category", category))

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	text, err := g.extractor.ExtractText(name, data)
	if err != nil {
		return err
	}

	chunks := g.chunker.ChunkText(text, chunkSize, chunkOverlap)
	log.Info("📄 Processing guideline", zap.Int("characters", len(text)), zap.Int("chunks", len(chunks)))

	if err := g.store.DeleteCategory(ctx, category); err != nil {
		return err
	}

	for i, chunk := range chunks {
		embedding, err := g.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i+1, err)
		}

		chunkID := fmt.Sprintf("%s_chunk_%d", category, i)
		if err := g.store.UpsertGuideline(ctx, chunkID, category, chunk, embedding); err != nil {
			return fmt.Errorf("failed to store chunk %d: %w", i+1, err)
		}

		if (i+1)%5 == 0 || i == len(chunks)-1 {
			log.Debug("📊 Progress", zap.Int("stored", i+1), zap.Int("total", len(chunks)))
		}
	}

	log.Info("✅ Guideline ingested")
	return nil
}

// categoryFromFilename maps "Backend_Engineer.pdf" to "backend engineer".
func categoryFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return services.NormalizeCategory(strings.Join(strings.Fields(base), " "))
}

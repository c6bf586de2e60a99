package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/repositories"
)

// ExtractionFailureMessage is the client-facing message for ErrExtractionFailed.
const ExtractionFailureMessage = "Could not extract text from resume."

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(ctx context.Context, jobID uuid.UUID) error
}

type worker struct {
	jobRepo      repositories.ScoreJobRepository
	docRepo      repositories.DocumentRepository
	storage      StorageService
	scorer       ResumeScorer
	queue        JobQueue
	concurrency  int
	pollInterval time.Duration
	logger       *zap.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

type WorkerOptions struct {
	Concurrency  int
	PollInterval time.Duration
}

func NewWorker(
	jobRepo repositories.ScoreJobRepository,
	docRepo repositories.DocumentRepository,
	storage StorageService,
	scorer ResumeScorer,
	queue JobQueue,
	opts WorkerOptions,
	log *zap.Logger,
) Worker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}

	return &worker{
		jobRepo:      jobRepo,
		docRepo:      docRepo,
		storage:      storage,
		scorer:       scorer,
		queue:        queue,
		concurrency:  opts.Concurrency,
		pollInterval: opts.PollInterval,
		logger:       log,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.logger.Info("🚀 Starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker. Jobs already being scored are allowed to finish.
func (w *worker) Stop() {
	w.logger.Info("🛑 Stopping worker...")
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.logger.Info("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(ctx context.Context, jobID uuid.UUID) error {
	if err := w.queue.Enqueue(ctx, jobID); err != nil {
		return err
	}
	w.logger.Debug("📥 Job enqueued", zap.Stringer("job_id", jobID))
	return nil
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.logger.With(zap.Int("worker", workerID))

	for {
		jobID, ok, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrQueueClosed) {
				log.Debug("👷 Worker stopped")
				return
			}
			log.Warn("⚠️ Failed to dequeue job", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		if !ok {
			continue
		}

		// Scoring is not cancelled mid-flight on shutdown.
		if err := w.processJob(context.WithoutCancel(ctx), jobID); err != nil {
			log.Error("❌ Failed to process job", zap.Stringer("job_id", jobID), zap.Error(err))
		}
	}
}

func (w *worker) processJob(ctx context.Context, jobID uuid.UUID) error {
	if err := w.jobRepo.Claim(jobID); err != nil {
		if errors.Is(err, repositories.ErrScoreJobNotQueued) {
			w.logger.Debug("job already claimed, skipping", zap.Stringer("job_id", jobID))
			return nil
		}
		return err
	}

	w.logger.Info("🔄 Scoring job", zap.Stringer("job_id", jobID))

	result, err := w.scoreJob(ctx, jobID)
	if err != nil {
		message := err.Error()
		if errors.Is(err, ErrExtractionFailed) {
			message = ExtractionFailureMessage
		}
		if updateErr := w.jobRepo.UpdateError(jobID, message); updateErr != nil {
			w.logger.Error("❌ Failed to record job error", zap.Stringer("job_id", jobID), zap.Error(updateErr))
		}
		return err
	}

	if err := w.jobRepo.UpdateResult(jobID, result); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	w.logger.Info("✅ Job completed", zap.Stringer("job_id", jobID), zap.Float64("score", result.Score))
	return nil
}

func (w *worker) scoreJob(ctx context.Context, jobID uuid.UUID) (*models.ScoreResult, error) {
	job, err := w.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score job: %w", err)
	}

	doc, err := w.docRepo.FindByID(job.ResumeDocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume document: %w", err)
	}

	data, err := w.storage.ReadFile(ctx, doc.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume file: %w", err)
	}

	return w.scorer.ScoreDocument(ctx, models.ResumeDocument{
		Filename: doc.Filename,
		Data:     data,
	}, job.JobContext())
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingJobs, err := w.jobRepo.FindPendingJobs(10)
			if err != nil {
				w.logger.Warn("⚠️ Failed to fetch pending jobs", zap.Error(err))
				continue
			}

			if len(pendingJobs) > 0 {
				w.logger.Info("📋 Found pending jobs", zap.Int("count", len(pendingJobs)))
			}

			for _, job := range pendingJobs {
				if err := w.EnqueueJob(ctx, job.ID); err != nil {
					w.logger.Warn("⚠️ Failed to re-enqueue job", zap.Stringer("job_id", job.ID), zap.Error(err))
				}
			}
		}
	}
}

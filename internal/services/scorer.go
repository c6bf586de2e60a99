package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-scorer/internal/models"
)

// ResumeScorer runs the scoring pipeline for one request. It holds no per-request state.
type ResumeScorer interface {
	ScoreDocument(ctx context.Context, doc models.ResumeDocument, job models.JobContext) (*models.ScoreResult, error)
	Score(ctx context.Context, resumeText string, job models.JobContext) (*models.ScoreResult, error)
}

type resumeScorer struct {
	extractor  TextExtractorService
	similarity SimilarityScorer
	entities   EntityExtractor
	feedback   FeedbackGenerator
	logger     *zap.Logger
}

func NewResumeScorer(
	extractor TextExtractorService,
	similarity SimilarityScorer,
	entities EntityExtractor,
	feedback FeedbackGenerator,
	log *zap.Logger,
) ResumeScorer {
	return &resumeScorer{
		extractor:  extractor,
		similarity: similarity,
		entities:   entities,
		feedback:   feedback,
		logger:     log,
	}
}

// ScoreDocument extracts the résumé text and scores it. Any extraction problem,
// including an empty result, is reported as ErrExtractionFailed.
func (s *resumeScorer) ScoreDocument(ctx context.Context, doc models.ResumeDocument, job models.JobContext) (*models.ScoreResult, error) {
	text, err := s.extractor.ExtractText(doc.Filename, doc.Data)
	if err != nil {
		s.logger.Info("📄 text extraction failed", zap.String("filename", doc.Filename), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return s.Score(ctx, text, job)
}

// Score implements ResumeScorer. The three signals are computed concurrently; the first
// upstream failure cancels the others and fails the request.
func (s *resumeScorer) Score(ctx context.Context, resumeText string, job models.JobContext) (*models.ScoreResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrExtractionFailed
	}

	var (
		similarity float64
		entities   models.EntitySet
		feedback   models.Feedback
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		similarity, err = s.similarity.Similarity(gctx, resumeText, job.Description)
		return err
	})

	g.Go(func() error {
		var err error
		entities, err = s.entities.Extract(gctx, resumeText)
		return err
	})

	g.Go(func() error {
		var err error
		feedback, err = s.feedback.Generate(gctx, resumeText, job)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("❌ scoring pipeline failed", zap.Error(err))
		return nil, err
	}

	normalized := NormalizeSimilarity(similarity)
	breakdown := ComputeBreakdown(
		normalized,
		entities.Roles,
		entities.Organizations,
		entities.Degrees,
		feedback,
		job.Category,
	)

	s.logger.Info("✅ resume scored",
		zap.Float64("score", breakdown.FinalScore),
		zap.Float64("raw_score", breakdown.RawScore),
		zap.Float64("similarity", normalized),
		zap.Int("category_matches", breakdown.CategoryMatches),
		zap.Int("degrees", len(entities.Degrees)),
		zap.Int("organizations", len(entities.Organizations)),
	)

	return &models.ScoreResult{
		Score:     breakdown.FinalScore,
		Feedback:  models.NewFeedback(feedback.Strengths, feedback.Weaknesses, feedback.Recommendations),
		Entities:  entities,
		Breakdown: breakdown,
	}, nil
}

package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/services"
)

type ScoreHandler struct {
	scorer services.ResumeScorer
	logger *zap.Logger
}

func NewScoreHandler(scorer services.ResumeScorer, log *zap.Logger) *ScoreHandler {
	return &ScoreHandler{
		scorer: scorer,
		logger: log,
	}
}

// HandleScore handles POST /api/score-resume. It scores synchronously and answers with
// the score and the three feedback lists.
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return extractionFailure(c)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return extractionFailure(c)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return extractionFailure(c)
	}

	job := models.JobContext{
		Description: c.FormValue("jobDescription"),
		Category:    c.FormValue("category"),
		Experience:  c.FormValue("experience"),
	}

	result, err := h.scorer.ScoreDocument(c.UserContext(), models.ResumeDocument{
		Filename: fileHeader.Filename,
		Data:     data,
	}, job)
	if err != nil {
		if errors.Is(err, services.ErrExtractionFailed) {
			return extractionFailure(c)
		}
		h.logger.Error("❌ Scoring failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("failed to score resume: %v", err))
	}

	h.logger.Info("✅ Resume scored",
		zap.String("filename", fileHeader.Filename),
		zap.Float64("score", result.Score),
		zap.Any("breakdown", result.Breakdown),
	)

	return c.JSON(result.Response())
}

func extractionFailure(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": services.ExtractionFailureMessage,
	})
}

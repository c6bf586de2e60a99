package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/repositories"
)

type ResultHandler struct {
	jobRepo repositories.ScoreJobRepository
}

func NewResultHandler(jobRepo repositories.ScoreJobRepository) *ResultHandler {
	return &ResultHandler{
		jobRepo: jobRepo,
	}
}

// HandleGetResult handles GET /api/v1/result/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Score job not found",
		})
	}

	response := models.ResultResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	}

	if job.Status == models.StatusCompleted && job.Score != nil {
		result := models.ScoreResult{
			Score:    *job.Score,
			Feedback: models.NewFeedback(job.Strengths, job.Weaknesses, job.Recommendations),
		}
		scoreResponse := result.Response()
		response.Result = &scoreResponse
	}

	if job.Status == models.StatusFailed && job.ErrorMessage != "" {
		response.ErrorMessage = &job.ErrorMessage
	}

	return c.JSON(response)
}

package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/repositories"
	"alfredoptarigan/resume-scorer/internal/services"
)

type EvaluateHandler struct {
	jobRepo repositories.ScoreJobRepository
	docRepo repositories.DocumentRepository
	worker  services.Worker
	logger  *zap.Logger
}

func NewEvaluateHandler(
	jobRepo repositories.ScoreJobRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
	log *zap.Logger,
) *EvaluateHandler {
	return &EvaluateHandler{
		jobRepo: jobRepo,
		docRepo: docRepo,
		worker:  worker,
		logger:  log,
	}
}

// HandleEvaluate handles POST /api/v1/evaluate
func (h *EvaluateHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ResumeDocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_document_id is required",
		})
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	docID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_document_id format",
		})
	}

	if _, err := h.docRepo.FindByID(docID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume document not found",
		})
	}

	job := &models.ScoreJob{
		ID:               uuid.New(),
		ResumeDocumentID: docID,
		JobDescription:   req.JobDescription,
		Category:         req.Category,
		Experience:       req.Experience,
		Status:           models.StatusQueued,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create score job",
		})
	}

	// The row stays queued; the poller picks it up if the queue push fails.
	if err := h.worker.EnqueueJob(c.UserContext(), job.ID); err != nil {
		h.logger.Warn("⚠️ Failed to enqueue job", zap.Stringer("job_id", job.ID), zap.Error(err))
	}

	return c.Status(fiber.StatusAccepted).JSON(models.EvaluateResponse{
		ID:     job.ID.String(),
		Status: string(models.StatusQueued),
	})
}

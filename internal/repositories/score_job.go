package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-scorer/internal/models"
)

var (
	ErrScoreJobNotFound = errors.New("score job not found")
	// ErrScoreJobNotQueued is returned by Claim when another worker already took the job.
	ErrScoreJobNotQueued = errors.New("score job is not queued")
)

type ScoreJobRepository interface {
	Create(job *models.ScoreJob) error
	FindByID(id uuid.UUID) (*models.ScoreJob, error)
	Claim(id uuid.UUID) error
	UpdateResult(id uuid.UUID, result *models.ScoreResult) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.ScoreJob, error)
}

type scoreJobRepository struct {
	db *gorm.DB
}

func NewScoreJobRepository(db *gorm.DB) ScoreJobRepository {
	return &scoreJobRepository{db: db}
}

func (r *scoreJobRepository) Create(job *models.ScoreJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create score job: %w", err)
	}
	return nil
}

func (r *scoreJobRepository) FindByID(id uuid.UUID) (*models.ScoreJob, error) {
	var job models.ScoreJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScoreJobNotFound
		}
		return nil, fmt.Errorf("failed to find score job: %w", err)
	}
	return &job, nil
}

// Claim moves a queued job to processing. The status condition makes it safe
// against the poller enqueueing the same id twice.
func (r *scoreJobRepository) Claim(id uuid.UUID) error {
	result := r.db.Model(&models.ScoreJob{}).
		Where("id = ? AND status = ?", id, models.StatusQueued).
		Updates(map[string]interface{}{
			"status":     models.StatusProcessing,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to claim score job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrScoreJobNotQueued
	}

	return nil
}

func (r *scoreJobRepository) UpdateResult(id uuid.UUID, res *models.ScoreResult) error {
	response := res.Response()
	result := r.db.Model(&models.ScoreJob{ID: id}).
		Select("status", "score", "strengths", "weaknesses", "recommendations", "updated_at").
		Updates(&models.ScoreJob{
			Status:          models.StatusCompleted,
			Score:           &response.Score,
			Strengths:       response.Strengths,
			Weaknesses:      response.Weaknesses,
			Recommendations: response.Recommendations,
			UpdatedAt:       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrScoreJobNotFound
	}

	return nil
}

func (r *scoreJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.ScoreJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrScoreJobNotFound
	}

	return nil
}

func (r *scoreJobRepository) FindPendingJobs(limit int) ([]models.ScoreJob, error) {
	var jobs []models.ScoreJob
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return jobs, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type ScoreJobStatus string

const (
	StatusQueued     ScoreJobStatus = "queued"
	StatusProcessing ScoreJobStatus = "processing"
	StatusCompleted  ScoreJobStatus = "completed"
	StatusFailed     ScoreJobStatus = "failed"
)

type ScoreJob struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeDocumentID uuid.UUID      `gorm:"type:uuid;not null" json:"resume_document_id"`
	JobDescription   string         `gorm:"type:text" json:"job_description"`
	Category         string         `gorm:"type:text" json:"category"`
	Experience       string         `gorm:"type:text" json:"experience"`
	Status           ScoreJobStatus `gorm:"not null;default:'queued'" json:"status"`
	Score            *float64       `gorm:"type:decimal(5,2)" json:"score,omitempty"`
	Strengths        []string       `gorm:"type:jsonb;serializer:json" json:"strengths,omitempty"`
	Weaknesses       []string       `gorm:"type:jsonb;serializer:json" json:"weaknesses,omitempty"`
	Recommendations  []string       `gorm:"type:jsonb;serializer:json" json:"recommendations,omitempty"`
	ErrorMessage     string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (ScoreJob) TableName() string {
	return "score_jobs"
}

// JobContext returns the job requirements the job was queued with.
func (j *ScoreJob) JobContext() JobContext {
	return JobContext{
		Description: j.JobDescription,
		Category:    j.Category,
		Experience:  j.Experience,
	}
}

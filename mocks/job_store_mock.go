package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-scorer/internal/models"
)

type MockScoreJobRepository struct {
	mock.Mock
}

func (m *MockScoreJobRepository) Create(job *models.ScoreJob) error {
	args := m.Called(job)
	return args.Error(0)
}

func (m *MockScoreJobRepository) FindByID(id uuid.UUID) (*models.ScoreJob, error) {
	args := m.Called(id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ScoreJob), args.Error(1)
}

func (m *MockScoreJobRepository) Claim(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockScoreJobRepository) UpdateResult(id uuid.UUID, result *models.ScoreResult) error {
	args := m.Called(id, result)
	return args.Error(0)
}

func (m *MockScoreJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	args := m.Called(id, errorMsg)
	return args.Error(0)
}

func (m *MockScoreJobRepository) FindPendingJobs(limit int) ([]models.ScoreJob, error) {
	args := m.Called(limit)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.ScoreJob), args.Error(1)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(document *models.Document) error {
	args := m.Called(document)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	args := m.Called(id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Document), args.Error(1)
}

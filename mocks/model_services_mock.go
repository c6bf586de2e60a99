package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/services"
)

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]float32), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)

	return args.String(0), args.Error(1)
}

type MockEntityRecognizer struct {
	mock.Mock
}

func (m *MockEntityRecognizer) Recognize(ctx context.Context, text string) ([]services.Entity, error) {
	args := m.Called(ctx, text)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]services.Entity), args.Error(1)
}

type MockGuidelineRetriever struct {
	mock.Mock
}

func (m *MockGuidelineRetriever) RetrieveGuidelines(ctx context.Context, category, jobDescription string) (string, error) {
	args := m.Called(ctx, category, jobDescription)

	return args.String(0), args.Error(1)
}

type MockQdrantService struct {
	mock.Mock
}

func (m *MockQdrantService) InitCollection(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockQdrantService) UpsertGuideline(ctx context.Context, chunkID string, category string, text string, embedding []float32) error {
	args := m.Called(ctx, chunkID, category, text, embedding)
	return args.Error(0)
}

func (m *MockQdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, category string, limit int) ([]services.SearchResult, error) {
	args := m.Called(ctx, queryEmbedding, category, limit)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]services.SearchResult), args.Error(1)
}

func (m *MockQdrantService) DeleteCategory(ctx context.Context, category string) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

type MockResumeScorer struct {
	mock.Mock
}

func (m *MockResumeScorer) ScoreDocument(ctx context.Context, doc models.ResumeDocument, job models.JobContext) (*models.ScoreResult, error) {
	args := m.Called(ctx, doc, job)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ScoreResult), args.Error(1)
}

func (m *MockResumeScorer) Score(ctx context.Context, resumeText string, job models.JobContext) (*models.ScoreResult, error) {
	args := m.Called(ctx, resumeText, job)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ScoreResult), args.Error(1)
}

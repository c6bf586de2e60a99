package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-scorer/internal/services"
	"alfredoptarigan/resume-scorer/mocks"
)

func TestRetrieveGuidelines(t *testing.T) {
	embedder := new(mocks.MockEmbedder)
	store := new(mocks.MockQdrantService)
	vector := []float32{0.5, 0.5}

	embedder.On("GenerateEmbedding", mock.Anything, "Evaluation criteria for Backend Engineer roles: Build APIs").
		Return(vector, nil)
	store.On("SearchSimilar", mock.Anything, vector, "backend engineer", 2).
		Return([]services.SearchResult{{ID: "1", Score: 0.8, Text: "Reward Go experience", Category: "backend engineer"}}, nil)

	text, err := services.NewGuidelineRetriever(embedder, store, 2).
		RetrieveGuidelines(context.Background(), "  Backend Engineer ", "Build APIs")

	require.NoError(t, err)
	assert.Equal(t, "--- Guideline 1 (Score: 0.80) ---\nReward Go experience", text)
	embedder.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestRetrieveGuidelinesDefaultLimit(t *testing.T) {
	embedder := new(mocks.MockEmbedder)
	store := new(mocks.MockQdrantService)

	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{1}, nil)
	store.On("SearchSimilar", mock.Anything, mock.Anything, "", 3).Return([]services.SearchResult{}, nil)

	text, err := services.NewGuidelineRetriever(embedder, store, 0).RetrieveGuidelines(context.Background(), "", "jd")

	require.NoError(t, err)
	assert.Equal(t, "", text)
	store.AssertExpectations(t)
}

func TestRetrieveGuidelinesEmbeddingFailure(t *testing.T) {
	embedder := new(mocks.MockEmbedder)
	store := new(mocks.MockQdrantService)
	boom := errors.New("quota exceeded")

	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := services.NewGuidelineRetriever(embedder, store, 3).RetrieveGuidelines(context.Background(), "data", "jd")

	assert.ErrorIs(t, err, boom)
	store.AssertNotCalled(t, "SearchSimilar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "data scientist", services.NormalizeCategory("  Data Scientist\t"))
}

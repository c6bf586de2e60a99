package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/services"
	"alfredoptarigan/resume-scorer/mocks"
)

type pipelineMocks struct {
	embedder   *mocks.MockEmbedder
	recognizer *mocks.MockEntityRecognizer
	generator  *mocks.MockTextGenerator
}

func newPipeline() (services.ResumeScorer, *pipelineMocks) {
	m := &pipelineMocks{
		embedder:   new(mocks.MockEmbedder),
		recognizer: new(mocks.MockEntityRecognizer),
		generator:  new(mocks.MockTextGenerator),
	}

	scorer := services.NewResumeScorer(
		services.NewTextExtractorService(),
		services.NewSimilarityScorer(m.embedder),
		services.NewEntityExtractor(m.recognizer),
		services.NewFeedbackGenerator(m.generator, nil, zap.NewNop()),
		zap.NewNop(),
	)

	return scorer, m
}

func TestScoreDocument(t *testing.T) {
	scorer, m := newPipeline()
	resume := "Senior Go Engineer at Acme. BSc Computer Science."
	job := models.JobContext{Description: "Go engineer for payments", Category: "engineer", Experience: "5 years"}

	m.embedder.On("GenerateEmbedding", mock.Anything, resume).Return([]float32{1, 2, 3}, nil)
	m.embedder.On("GenerateEmbedding", mock.Anything, job.Description).Return([]float32{1, 2, 3}, nil)
	m.recognizer.On("Recognize", mock.Anything, resume).Return([]services.Entity{
		{Text: "Acme", Label: "ORG"},
		{Text: "Senior Go Engineer", Label: "TITLE"},
		{Text: "BSc Computer Science", Label: "DEGREE"},
	}, nil)
	m.generator.On("GenerateText", mock.Anything, mock.AnythingOfType("string")).
		Return("```json\n{\"strengths\":[\"Go\",\"Payments\"],\"weaknesses\":[\"No k8s\"],\"recommendations\":[\"Learn k8s\"]}\n```", nil)

	result, err := scorer.ScoreDocument(context.Background(), models.ResumeDocument{
		Filename: "resume.txt",
		Data:     []byte(resume),
	}, job)

	require.NoError(t, err)
	// 50 similarity + 10 category + 5 degree + 2 org + 7 feedback
	assert.Equal(t, 74.0, result.Score)
	assert.Equal(t, 1, result.Breakdown.CategoryMatches)
	assert.Equal(t, []string{"Acme"}, result.Entities.Organizations)

	resp := result.Response()
	assert.Equal(t, []string{"Go", "Payments"}, resp.Strengths)
	assert.Equal(t, []string{"No k8s"}, resp.Weaknesses)
	assert.Equal(t, []string{"Learn k8s"}, resp.Recommendations)

	m.embedder.AssertExpectations(t)
	m.recognizer.AssertExpectations(t)
	m.generator.AssertExpectations(t)
}

func TestScoreDocumentEmptyResume(t *testing.T) {
	scorer, m := newPipeline()

	_, err := scorer.ScoreDocument(context.Background(), models.ResumeDocument{
		Filename: "resume.txt",
		Data:     []byte("   \n\t "),
	}, models.JobContext{Description: "jd"})

	assert.ErrorIs(t, err, services.ErrExtractionFailed)
	m.embedder.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything)
	m.recognizer.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
	m.generator.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestScoreDocumentUnsupportedFile(t *testing.T) {
	scorer, _ := newPipeline()

	_, err := scorer.ScoreDocument(context.Background(), models.ResumeDocument{
		Filename: "resume.png",
		Data:     []byte("binary"),
	}, models.JobContext{})

	assert.ErrorIs(t, err, services.ErrExtractionFailed)
	assert.ErrorContains(t, err, "unsupported")
}

func TestScoreUpstreamFailure(t *testing.T) {
	scorer, m := newPipeline()
	boom := errors.New("embedding service unavailable")

	m.embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(nil, boom)
	m.recognizer.On("Recognize", mock.Anything, mock.Anything).Return([]services.Entity{}, nil).Maybe()
	m.generator.On("GenerateText", mock.Anything, mock.Anything).Return(`{}`, nil).Maybe()

	result, err := scorer.Score(context.Background(), "resume text", models.JobContext{Description: "jd"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
}

func TestScoreMalformedFeedbackStillScores(t *testing.T) {
	scorer, m := newPipeline()

	m.embedder.On("GenerateEmbedding", mock.Anything, "resume text").Return([]float32{1, 0}, nil)
	m.embedder.On("GenerateEmbedding", mock.Anything, "jd").Return([]float32{-1, 0}, nil)
	m.recognizer.On("Recognize", mock.Anything, mock.Anything).Return([]services.Entity{}, nil)
	m.generator.On("GenerateText", mock.Anything, mock.Anything).Return("Sorry, I can't do that.", nil)

	result, err := scorer.Score(context.Background(), "resume text", models.JobContext{Description: "jd"})

	require.NoError(t, err)
	// similarity 0, fallback feedback contributes one strength
	assert.Equal(t, 5.0, result.Score)
	assert.Equal(t, []string{services.FallbackStrength}, result.Feedback.Strengths)
	assert.Equal(t, []string{}, result.Feedback.Weaknesses)
}

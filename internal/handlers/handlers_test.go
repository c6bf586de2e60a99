package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/models"
	"alfredoptarigan/resume-scorer/internal/repositories"
	"alfredoptarigan/resume-scorer/internal/services"
	"alfredoptarigan/resume-scorer/mocks"
)

type testDeps struct {
	scorer  *mocks.MockResumeScorer
	docRepo *mocks.MockDocumentRepository
	jobRepo *mocks.MockScoreJobRepository
	storage *mocks.MockStorageService
	worker  *mocks.MockWorker
}

func newTestApp() (*fiber.App, *testDeps) {
	d := &testDeps{
		scorer:  new(mocks.MockResumeScorer),
		docRepo: new(mocks.MockDocumentRepository),
		jobRepo: new(mocks.MockScoreJobRepository),
		storage: new(mocks.MockStorageService),
		worker:  new(mocks.MockWorker),
	}

	log := zap.NewNop()
	app := NewApp(Handlers{
		Score:    NewScoreHandler(d.scorer, log),
		Upload:   NewUploadHandler(d.docRepo, d.storage, services.NewTextExtractorService(), 1024, log),
		Evaluate: NewEvaluateHandler(d.jobRepo, d.docRepo, d.worker, log),
		Result:   NewResultHandler(d.jobRepo),
	}, AppOptions{BodyLimit: 4 * 1024 * 1024})

	return app, d
}

func multipartRequest(t *testing.T, path, fileField, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

var scoreFields = map[string]string{
	"jobDescription": "Backend Go engineer",
	"category":       "engineer",
	"experience":     "3 years",
}

func TestHandleScore(t *testing.T) {
	for _, path := range []string{"/api/score-resume", "/api/v1/score"} {
		t.Run(path, func(t *testing.T) {
			app, d := newTestApp()
			result := &models.ScoreResult{
				Score:    64,
				Feedback: models.NewFeedback([]string{"x", "y"}, []string{"z"}, nil),
			}

			d.scorer.On("ScoreDocument", mock.Anything,
				models.ResumeDocument{Filename: "cv.txt", Data: []byte("Go engineer at Acme")},
				models.JobContext{Description: "Backend Go engineer", Category: "engineer", Experience: "3 years"},
			).Return(result, nil)

			resp, err := app.Test(multipartRequest(t, path, "resume", "cv.txt", []byte("Go engineer at Acme"), scoreFields), -1)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, 64.0, body["score"])
			assert.Equal(t, []any{"x", "y"}, body["strengths"])
			assert.Equal(t, []any{"z"}, body["weaknesses"])
			assert.Equal(t, []any{}, body["recommendations"])
			d.scorer.AssertExpectations(t)
		})
	}
}

func TestHandleScoreMissingFile(t *testing.T) {
	app, d := newTestApp()

	resp, err := app.Test(multipartRequest(t, "/api/score-resume", "", "", nil, scoreFields), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "Could not extract text from resume."}, decodeBody(t, resp))
	d.scorer.AssertNotCalled(t, "ScoreDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleScoreExtractionFailure(t *testing.T) {
	app, d := newTestApp()

	d.scorer.On("ScoreDocument", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %v", services.ErrExtractionFailed, services.ErrUnsupportedFormat))

	resp, err := app.Test(multipartRequest(t, "/api/score-resume", "resume", "cv.png", []byte("img"), scoreFields), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Could not extract text from resume.", decodeBody(t, resp)["error"])
}

func TestHandleScoreUpstreamFailure(t *testing.T) {
	app, d := newTestApp()

	d.scorer.On("ScoreDocument", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("failed to generate feedback: 503"))

	resp, err := app.Test(multipartRequest(t, "/api/score-resume", "resume", "cv.txt", []byte("text"), scoreFields), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, 500.0, body["code"])
	assert.Contains(t, body["error"], "503")
}

func TestHandleUpload(t *testing.T) {
	app, d := newTestApp()

	d.storage.On("SaveFile", mock.Anything, mock.AnythingOfType("*multipart.FileHeader"), "pdf").
		Return("key.pdf", "uploads/key.pdf", nil)
	d.storage.On("Backend").Return("local")
	d.docRepo.On("Create", mock.MatchedBy(func(doc *models.Document) bool {
		return doc.Filename == "key.pdf" && doc.OriginalFileName == "cv.pdf" && doc.StorageBackend == "local"
	})).Return(nil)

	resp, err := app.Test(multipartRequest(t, "/api/v1/upload", "resume", "cv.pdf", []byte("%PDF-1.4"), nil), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "key.pdf", body["filename"])
	assert.Equal(t, "cv.pdf", body["original_name"])
	assert.Equal(t, "pdf", body["file_type"])
	d.docRepo.AssertExpectations(t)
}

func TestHandleUploadValidation(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		filename string
		content  []byte
		wantErr  string
	}{
		{name: "missing file", wantErr: "No file uploaded"},
		{name: "unsupported type", field: "resume", filename: "cv.exe", content: []byte("MZ"), wantErr: "Unsupported file type"},
		{name: "too large", field: "resume", filename: "cv.txt", content: bytes.Repeat([]byte("a"), 2048), wantErr: "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, d := newTestApp()

			resp, err := app.Test(multipartRequest(t, "/api/v1/upload", tt.field, tt.filename, tt.content, nil), -1)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decodeBody(t, resp)["error"], tt.wantErr)
			d.storage.AssertNotCalled(t, "SaveFile", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleUploadCleansUpOnDatabaseFailure(t *testing.T) {
	app, d := newTestApp()

	d.storage.On("SaveFile", mock.Anything, mock.Anything, "txt").Return("key.txt", "uploads/key.txt", nil)
	d.storage.On("Backend").Return("local")
	d.storage.On("DeleteFile", mock.Anything, "key.txt").Return(nil)
	d.docRepo.On("Create", mock.Anything).Return(errors.New("connection reset"))

	resp, err := app.Test(multipartRequest(t, "/api/v1/upload", "resume", "cv.txt", []byte("resume"), nil), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	d.storage.AssertCalled(t, "DeleteFile", mock.Anything, "key.txt")
}

func TestHandleEvaluate(t *testing.T) {
	app, d := newTestApp()
	docID := uuid.New()

	d.docRepo.On("FindByID", docID).Return(&models.Document{ID: docID}, nil)
	d.jobRepo.On("Create", mock.MatchedBy(func(job *models.ScoreJob) bool {
		return job.ResumeDocumentID == docID && job.Status == models.StatusQueued && job.Category == "data"
	})).Return(nil)
	d.worker.On("EnqueueJob", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
		ResumeDocumentID: docID.String(),
		JobDescription:   "Data engineer",
		Category:         "data",
		Experience:       "2 years",
	}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "queued", body["status"])
	_, err = uuid.Parse(body["id"].(string))
	assert.NoError(t, err)
	d.jobRepo.AssertExpectations(t)
	d.worker.AssertExpectations(t)
}

func TestHandleEvaluateEnqueueFailureStillAccepted(t *testing.T) {
	app, d := newTestApp()
	docID := uuid.New()

	d.docRepo.On("FindByID", docID).Return(&models.Document{ID: docID}, nil)
	d.jobRepo.On("Create", mock.Anything).Return(nil)
	d.worker.On("EnqueueJob", mock.Anything, mock.Anything).Return(services.ErrQueueClosed)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/evaluate", models.EvaluateRequest{
		ResumeDocumentID: docID.String(),
		JobDescription:   "Data engineer",
	}), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
}

func TestHandleEvaluateValidation(t *testing.T) {
	missingDoc := uuid.New()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantErr    string
	}{
		{name: "malformed json", body: `{`, wantStatus: fiber.StatusBadRequest, wantErr: "Invalid request payload"},
		{name: "missing document id", body: `{"job_description":"x"}`, wantStatus: fiber.StatusBadRequest, wantErr: "resume_document_id is required"},
		{name: "blank job description", body: `{"resume_document_id":"` + missingDoc.String() + `","job_description":"  "}`, wantStatus: fiber.StatusBadRequest, wantErr: "job_description is required"},
		{name: "bad uuid", body: `{"resume_document_id":"nope","job_description":"x"}`, wantStatus: fiber.StatusBadRequest, wantErr: "Invalid resume_document_id"},
		{name: "unknown document", body: `{"resume_document_id":"` + missingDoc.String() + `","job_description":"x"}`, wantStatus: fiber.StatusNotFound, wantErr: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, d := newTestApp()
			d.docRepo.On("FindByID", missingDoc).Return(nil, repositories.ErrDocumentNotFound)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, decodeBody(t, resp)["error"], tt.wantErr)
			d.jobRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestHandleGetResultCompleted(t *testing.T) {
	app, d := newTestApp()
	jobID := uuid.New()
	score := 81.25

	d.jobRepo.On("FindByID", jobID).Return(&models.ScoreJob{
		ID:              jobID,
		Status:          models.StatusCompleted,
		Score:           &score,
		Strengths:       []string{"Go"},
		Recommendations: []string{"Add metrics"},
	}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/result/"+jobID.String(), nil), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, map[string]any{
		"score":           81.25,
		"strengths":       []any{"Go"},
		"weaknesses":      []any{},
		"recommendations": []any{"Add metrics"},
	}, body["result"])
	assert.NotContains(t, body, "error_message")
}

func TestHandleGetResultFailed(t *testing.T) {
	app, d := newTestApp()
	jobID := uuid.New()

	d.jobRepo.On("FindByID", jobID).Return(&models.ScoreJob{
		ID:           jobID,
		Status:       models.StatusFailed,
		ErrorMessage: services.ExtractionFailureMessage,
	}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/result/"+jobID.String(), nil), -1)
	require.NoError(t, err)

	body := decodeBody(t, resp)
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, services.ExtractionFailureMessage, body["error_message"])
	assert.NotContains(t, body, "result")
}

func TestHandleGetResultErrors(t *testing.T) {
	app, d := newTestApp()
	unknown := uuid.New()
	d.jobRepo.On("FindByID", unknown).Return(nil, repositories.ErrScoreJobNotFound)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/result/not-a-uuid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/result/"+unknown.String(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealthAndIndex(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "healthy", decodeBody(t, resp)["status"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Contains(t, decodeBody(t, resp)["endpoints"], "POST /api/score-resume")
}

package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
}

type EvaluateRequest struct {
	ResumeDocumentID string `json:"resume_document_id" validate:"required,uuid"`
	JobDescription   string `json:"job_description" validate:"required"`
	Category         string `json:"category"`
	Experience       string `json:"experience"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string         `json:"id"`
	Status       string         `json:"status"`
	Result       *ScoreResponse `json:"result,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
}

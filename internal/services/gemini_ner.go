package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// geminiEntityRecognizer uses the language model as a NER service when no sidecar is configured.
type geminiEntityRecognizer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewGeminiEntityRecognizer(gemini GeminiService) EntityRecognizer {
	return &geminiEntityRecognizer{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

type entityResponse struct {
	Entities []Entity `json:"entities"`
}

// Recognize implements EntityRecognizer.
func (r *geminiEntityRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	response, err := r.gemini.GenerateJSON(ctx, r.promptBuilder.BuildEntityPrompt(text))
	if err != nil {
		return nil, err
	}

	var parsed entityResponse
	if err := json.Unmarshal([]byte(stripCodeFence(strings.TrimSpace(response))), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode entities: %w", err)
	}

	return parsed.Entities, nil
}

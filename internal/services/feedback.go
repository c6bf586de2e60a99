package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/logger"
	"alfredoptarigan/resume-scorer/internal/models"
)

// FallbackStrength is the only strength reported when the model output cannot be parsed.
const FallbackStrength = "Could not parse Gemini response."

// TextGenerator is the generative-language collaborator.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GuidelineRetriever supplies optional reference material for the feedback prompt.
type GuidelineRetriever interface {
	RetrieveGuidelines(ctx context.Context, category, jobDescription string) (string, error)
}

type FeedbackGenerator interface {
	Generate(ctx context.Context, resumeText string, job models.JobContext) (models.Feedback, error)
}

type feedbackGenerator struct {
	generator     TextGenerator
	guidelines    GuidelineRetriever
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

// NewFeedbackGenerator wires a language service. guidelines may be nil.
func NewFeedbackGenerator(generator TextGenerator, guidelines GuidelineRetriever, log *zap.Logger) FeedbackGenerator {
	return &feedbackGenerator{
		generator:     generator,
		guidelines:    guidelines,
		promptBuilder: NewPromptBuilder(),
		logger:        log,
	}
}

// Generate implements FeedbackGenerator. Only transport errors are returned;
// malformed model output degrades to FallbackFeedback.
func (f *feedbackGenerator) Generate(ctx context.Context, resumeText string, job models.JobContext) (models.Feedback, error) {
	var guidelines string
	if f.guidelines != nil {
		var err error
		guidelines, err = f.guidelines.RetrieveGuidelines(ctx, job.Category, job.Description)
		if err != nil {
			f.logger.Warn("⚠️ guideline retrieval failed, continuing without it", zap.Error(err))
			guidelines = ""
		}
	}

	prompt := f.promptBuilder.BuildFeedbackPrompt(resumeText, job, guidelines)
	f.logger.Debug("📝 feedback prompt built", zap.Int("length", len(prompt)))

	response, err := f.generator.GenerateText(ctx, prompt)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("failed to generate feedback: %w", err)
	}

	feedback, ok := ParseFeedback(response)
	if !ok {
		f.logger.Warn("⚠️ could not parse feedback response, using fallback",
			zap.String("response", logger.TruncateForLog(response, 200)))
	}

	return feedback, nil
}

type feedbackPayload struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// ParseFeedback recovers a Feedback from model output. It strips code fences, tries a
// strict decode, then the span from the first '{' to the last '}'. When both fail it
// returns FallbackFeedback and false. It never panics on any input.
func ParseFeedback(text string) (models.Feedback, bool) {
	text = stripCodeFence(strings.TrimSpace(text))

	if feedback, err := decodeFeedback(text); err == nil {
		return feedback, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if feedback, err := decodeFeedback(text[start : end+1]); err == nil {
			return feedback, true
		}
	}

	return FallbackFeedback(), false
}

// FallbackFeedback is the degraded result used when the model output is unusable.
func FallbackFeedback() models.Feedback {
	return models.NewFeedback([]string{FallbackStrength}, nil, nil)
}

func decodeFeedback(text string) (models.Feedback, error) {
	var payload *feedbackPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return models.Feedback{}, err
	}
	if payload == nil {
		return models.Feedback{}, errors.New("feedback payload is null")
	}

	return models.NewFeedback(payload.Strengths, payload.Weaknesses, payload.Recommendations), nil
}

// stripCodeFence removes a leading ```lang line marker and a trailing ``` marker.
func stripCodeFence(text string) string {
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// drop the language tag, e.g. "json"
		text = strings.TrimLeftFunc(text, func(r rune) bool {
			return r != '\n' && r != '{' && r != '[' && r != ' ' && r != '\t' && r != '\r'
		})
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

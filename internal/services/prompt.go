package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-scorer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildFeedbackPrompt creates the single prompt sent to the language service for qualitative feedback.
func (pb *PromptBuilder) BuildFeedbackPrompt(resumeText string, job models.JobContext, guidelines string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Resume:\n%s\n\n", resumeText))
	sb.WriteString(fmt.Sprintf("Job Description:\n%s\n\n", job.Description))

	if category := strings.TrimSpace(job.Category); category != "" {
		sb.WriteString(fmt.Sprintf("Job Category: %s\n", category))
	}
	if experience := strings.TrimSpace(job.Experience); experience != "" {
		sb.WriteString(fmt.Sprintf("Required Experience: %s\n", experience))
	}

	if guidelines = strings.TrimSpace(guidelines); guidelines != "" {
		sb.WriteString(fmt.Sprintf("\nREFERENCE GUIDELINES:\n%s\n", guidelines))
	}

	sb.WriteString(`
Analyze the resume for this job. List strengths, weaknesses, and recommendations for improvement.
Respond ONLY with a valid JSON object with exactly these keys, each an array of strings:
{"strengths": [], "weaknesses": [], "recommendations": []}
Do not include any explanation, markdown or text outside the JSON.`)

	return sb.String()
}

// BuildEntityPrompt asks the language service to act as a NER model.
func (pb *PromptBuilder) BuildEntityPrompt(text string) string {
	return fmt.Sprintf(`You are a named entity recognizer for resumes.

Extract every entity from the text below and label it with exactly one of:
%s (companies, universities, institutions), %s (people), %s (job titles and roles),
%s (schools and programs), %s (academic degrees and certifications).

Return ONLY a JSON object in this format, keeping the order in which entities appear:
{"entities": [{"text": "<span as written>", "label": "<LABEL>"}]}

TEXT:
%s`,
		LabelOrganization, LabelPerson, LabelTitle, LabelEducation, LabelDegree, text)
}

// BuildGuidelineQuery creates the text embedded to look up scoring guidelines.
func (pb *PromptBuilder) BuildGuidelineQuery(category, jobDescription string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return fmt.Sprintf("Evaluation criteria for: %s", jobDescription)
	}
	return fmt.Sprintf("Evaluation criteria for %s roles: %s", category, jobDescription)
}

// FormatGuidelineContext renders retrieved guideline chunks for the feedback prompt.
func FormatGuidelineContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Guideline %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}

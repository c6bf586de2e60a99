package models

// ResumeDocument is an uploaded résumé before text extraction.
type ResumeDocument struct {
	Filename string
	Data     []byte
}

// JobContext carries the caller-supplied job requirements for one scoring request.
type JobContext struct {
	Description string `json:"job_description"`
	Category    string `json:"category"`
	Experience  string `json:"experience"`
}

// EntitySet holds classified spans in document order. Duplicates are kept.
type EntitySet struct {
	Roles         []string `json:"roles"`
	Organizations []string `json:"organizations"`
	Degrees       []string `json:"degrees"`
}

// Feedback is the qualitative part of a score. All three lists are always non-nil.
type Feedback struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

// NewFeedback builds a Feedback, replacing nil lists with empty ones.
func NewFeedback(strengths, weaknesses, recommendations []string) Feedback {
	return Feedback{
		Strengths:       nonNil(strengths),
		Weaknesses:      nonNil(weaknesses),
		Recommendations: nonNil(recommendations),
	}
}

// ScoreBreakdown lists the additive terms behind a final score.
type ScoreBreakdown struct {
	SimilarityPoints   float64 `json:"similarity_points"`
	CategoryMatches    int     `json:"category_matches"`
	CategoryPoints     float64 `json:"category_points"`
	DegreePoints       float64 `json:"degree_points"`
	OrganizationPoints float64 `json:"organization_points"`
	FeedbackPoints     float64 `json:"feedback_points"`
	RawScore           float64 `json:"raw_score"`
	FinalScore         float64 `json:"final_score"`
}

// ScoreResult is the response of the scoring pipeline.
type ScoreResult struct {
	Score     float64        `json:"score"`
	Feedback  Feedback       `json:"-"`
	Entities  EntitySet      `json:"-"`
	Breakdown ScoreBreakdown `json:"-"`
}

// ScoreResponse is the public JSON shape of a ScoreResult.
type ScoreResponse struct {
	Score           float64  `json:"score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}

func (r *ScoreResult) Response() ScoreResponse {
	fb := NewFeedback(r.Feedback.Strengths, r.Feedback.Weaknesses, r.Feedback.Recommendations)
	return ScoreResponse{
		Score:           r.Score,
		Strengths:       fb.Strengths,
		Weaknesses:      fb.Weaknesses,
		Recommendations: fb.Recommendations,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

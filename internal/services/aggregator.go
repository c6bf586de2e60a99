package services

import (
	"math"
	"strings"

	"alfredoptarigan/resume-scorer/internal/models"
)

// Scoring weights. Category points are intentionally left uncapped; only the final
// score is clamped.
const (
	SimilarityWeight      = 50.0
	CategoryMatchPoints   = 10.0
	DegreePoints          = 5.0
	MaxDegreePoints       = 15.0
	OrganizationPoints    = 2.0
	MaxOrganizationPoints = 10.0
	StrengthPoints        = 5.0
	WeaknessPenalty       = 3.0

	MinScore = 0.0
	MaxScore = 100.0
)

// AggregateScore combines the pipeline signals into a score in [0, 100] with two decimals.
func AggregateScore(normalizedSimilarity float64, roles, orgs, degrees []string, feedback models.Feedback, category string) float64 {
	return ComputeBreakdown(normalizedSimilarity, roles, orgs, degrees, feedback, category).FinalScore
}

// ComputeBreakdown is AggregateScore with every additive term exposed.
func ComputeBreakdown(normalizedSimilarity float64, roles, orgs, degrees []string, feedback models.Feedback, category string) models.ScoreBreakdown {
	matches := CountCategoryMatches(roles, category)

	b := models.ScoreBreakdown{
		SimilarityPoints:   normalizedSimilarity * SimilarityWeight,
		CategoryMatches:    matches,
		CategoryPoints:     float64(matches) * CategoryMatchPoints,
		DegreePoints:       math.Min(float64(len(degrees))*DegreePoints, MaxDegreePoints),
		OrganizationPoints: math.Min(float64(len(orgs))*OrganizationPoints, MaxOrganizationPoints),
		FeedbackPoints:     float64(len(feedback.Strengths))*StrengthPoints - float64(len(feedback.Weaknesses))*WeaknessPenalty,
	}

	b.RawScore = b.SimilarityPoints + b.CategoryPoints + b.DegreePoints + b.OrganizationPoints + b.FeedbackPoints
	b.FinalScore = clamp(roundTo(b.RawScore, 2), MinScore, MaxScore)

	return b
}

// CountCategoryMatches counts roles that contain category, ignoring case. A blank category matches nothing.
func CountCategoryMatches(roles []string, category string) int {
	if strings.TrimSpace(category) == "" {
		return 0
	}

	needle := strings.ToLower(strings.TrimSpace(category))
	count := 0
	for _, role := range roles {
		if strings.Contains(strings.ToLower(role), needle) {
			count++
		}
	}
	return count
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

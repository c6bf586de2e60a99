package services

import (
	"context"
	"fmt"
	"strings"
)

type guidelineRetriever struct {
	embedder      Embedder
	store         QdrantService
	promptBuilder *PromptBuilder
	limit         int
}

// NewGuidelineRetriever looks up scoring guidelines for the feedback prompt.
func NewGuidelineRetriever(embedder Embedder, store QdrantService, limit int) GuidelineRetriever {
	if limit <= 0 {
		limit = 3
	}
	return &guidelineRetriever{
		embedder:      embedder,
		store:         store,
		promptBuilder: NewPromptBuilder(),
		limit:         limit,
	}
}

// RetrieveGuidelines implements GuidelineRetriever.
func (g *guidelineRetriever) RetrieveGuidelines(ctx context.Context, category, jobDescription string) (string, error) {
	query := g.promptBuilder.BuildGuidelineQuery(category, jobDescription)

	embedding, err := g.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := g.store.SearchSimilar(ctx, embedding, NormalizeCategory(category), g.limit)
	if err != nil {
		return "", err
	}

	return FormatGuidelineContext(results), nil
}

// NormalizeCategory is the form categories are stored under in the guideline index.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

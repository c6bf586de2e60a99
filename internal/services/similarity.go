package services

import (
	"context"
	"fmt"
	"math"
)

// Embedder turns text into a fixed-length vector. Implementations truncate long input themselves.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type SimilarityScorer interface {
	Similarity(ctx context.Context, textA, textB string) (float64, error)
}

type similarityScorer struct {
	embedder Embedder
}

func NewSimilarityScorer(embedder Embedder) SimilarityScorer {
	return &similarityScorer{embedder: embedder}
}

// Similarity implements SimilarityScorer. Embedding failures are returned as-is, without retry.
func (s *similarityScorer) Similarity(ctx context.Context, textA, textB string) (float64, error) {
	embA, err := s.embedder.GenerateEmbedding(ctx, textA)
	if err != nil {
		return 0, fmt.Errorf("failed to embed resume: %w", err)
	}

	embB, err := s.embedder.GenerateEmbedding(ctx, textB)
	if err != nil {
		return 0, fmt.Errorf("failed to embed job description: %w", err)
	}

	return CosineSimilarity(embA, embB), nil
}

// CosineSimilarity returns a value in [-1, 1]. Vectors of different length or zero norm score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return clamp(dot/(math.Sqrt(normA)*math.Sqrt(normB)), -1, 1)
}

// NormalizeSimilarity maps a cosine similarity from [-1, 1] onto [0, 1].
func NormalizeSimilarity(similarity float64) float64 {
	return clamp((similarity+1)/2, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// QdrantService stores scoring-guideline chunks and searches them by category.
type QdrantService interface {
	InitCollection(ctx context.Context) error
	UpsertGuideline(ctx context.Context, chunkID string, category string, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, category string, limit int) ([]SearchResult, error)
	DeleteCategory(ctx context.Context, category string) error
}

type SearchResult struct {
	ID       string
	Score    float32
	Text     string
	Category string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewQdrantService(urlStr, apiKey, collectionName string, vectorSize uint64, log *zap.Logger) (QdrantService, error) {
	cfg, err := qdrantConfig(urlStr, apiKey)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
		logger:         log,
	}, nil
}

// qdrantConfig maps QDRANT_URL onto the gRPC client settings. Without an explicit
// port the gRPC default 6334 is used; https enables TLS.
func qdrantConfig(urlStr, apiKey string) (*qdrant.Config, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("invalid Qdrant URL %q: missing host", urlStr)
	}

	cfg := &qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   6334,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	}

	if p := parsed.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid Qdrant port %q: %w", p, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.logger.Debug("✅ Collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("✅ Qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// UpsertGuideline implements QdrantService. Point ids derive from chunkID, so
// re-ingesting a document overwrites its chunks.
func (q *qdrantService) UpsertGuideline(ctx context.Context, chunkID string, category string, text string, embedding []float32) error {
	pointID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunkID))

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(pointID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"chunk_id": chunkID,
			"category": category,
			"text":     text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements QdrantService. An empty category searches every guideline.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, category string, limit int) ([]SearchResult, error) {
	var filter *qdrant.Filter
	if category != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("category", category),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []SearchResult
	for _, point := range searchResult {
		payload := point.Payload

		results = append(results, SearchResult{
			ID:       payloadString(payload, "chunk_id"),
			Score:    point.Score,
			Text:     payloadString(payload, "text"),
			Category: payloadString(payload, "category"),
		})
	}

	return results, nil
}

// DeleteCategory implements QdrantService.
func (q *qdrantService) DeleteCategory(ctx context.Context, category string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("category", category),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete guidelines: %w", err)
	}

	return nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if value, ok := payload[key]; ok {
		if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
			return val.StringValue
		}
	}
	return ""
}

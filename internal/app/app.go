// Package app assembles the scoring services from configuration. It is shared by the
// API server and the CLI so both score résumés the same way.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-scorer/internal/config"
	"alfredoptarigan/resume-scorer/internal/services"
)

// Components are the long-lived service handles, created once per process.
type Components struct {
	Extractor services.TextExtractorService
	Embedder  services.Embedder
	Generator services.TextGenerator
	NER       services.EntityRecognizer
	Qdrant    services.QdrantService
	Scorer    services.ResumeScorer
}

// Build creates every collaborator named by cfg and the pipeline on top of them.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Components, error) {
	var (
		gemini services.GeminiService
		openAI services.OpenAIService
		err    error
	)

	if cfg.Gemini.APIKey != "" {
		gemini, err = services.NewGeminiService(ctx, services.GeminiOptions{
			APIKey:     cfg.Gemini.APIKey,
			Model:      cfg.Gemini.Model,
			EmbedModel: cfg.Gemini.EmbedModel,
			Timeout:    cfg.LLM.ServiceTimeout,
		}, log.Named("gemini"))
		if err != nil {
			return nil, err
		}
	}

	if cfg.LLM.OpenAIAPIKey != "" {
		openAI, err = services.NewOpenAIService(services.OpenAIOptions{
			APIKey:     cfg.LLM.OpenAIAPIKey,
			Model:      cfg.LLM.OpenAIModel,
			EmbedModel: cfg.LLM.OpenAIEmbedModel,
			Timeout:    cfg.LLM.ServiceTimeout,
		})
		if err != nil {
			return nil, err
		}
	}

	c := &Components{Extractor: services.NewTextExtractorService()}

	switch cfg.LLM.EmbeddingProvider {
	case config.ProviderGemini:
		c.Embedder = gemini
	case config.ProviderOpenAI:
		c.Embedder = openAI
	default:
		return nil, fmt.Errorf("%w: embedding provider %q", services.ErrUnknownProvider, cfg.LLM.EmbeddingProvider)
	}

	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		c.Generator = gemini
	case config.ProviderOpenAI:
		c.Generator = openAI
	case config.ProviderAnthropic:
		c.Generator, err = services.NewAnthropicService(services.AnthropicOptions{
			APIKey:  cfg.LLM.AnthropicAPIKey,
			Model:   cfg.LLM.AnthropicModel,
			Timeout: cfg.LLM.ServiceTimeout,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: llm provider %q", services.ErrUnknownProvider, cfg.LLM.Provider)
	}

	if cfg.NER.URL != "" {
		c.NER = services.NewNERClient(cfg.NER.URL, cfg.LLM.ServiceTimeout)
	} else if gemini != nil {
		c.NER = services.NewGeminiEntityRecognizer(gemini)
	}

	if c.Embedder == nil || c.Generator == nil || c.NER == nil {
		return nil, fmt.Errorf("missing credentials for the configured providers")
	}

	var guidelines services.GuidelineRetriever
	if cfg.Guideline.Enabled {
		c.Qdrant, err = NewQdrant(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		guidelines = services.NewGuidelineRetriever(c.Embedder, c.Qdrant, cfg.Guideline.Limit)
	}

	c.Scorer = services.NewResumeScorer(
		c.Extractor,
		services.NewSimilarityScorer(c.Embedder),
		services.NewEntityExtractor(c.NER),
		services.NewFeedbackGenerator(c.Generator, guidelines, log.Named("feedback")),
		log.Named("scorer"),
	)

	return c, nil
}

// NewQdrant connects to the guideline index and makes sure its collection exists.
func NewQdrant(ctx context.Context, cfg *config.Config, log *zap.Logger) (services.QdrantService, error) {
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Qdrant.VectorSize,
		log.Named("qdrant"),
	)
	if err != nil {
		return nil, err
	}

	if err := qdrantService.InitCollection(ctx); err != nil {
		return nil, err
	}

	return qdrantService, nil
}

// NewStorage returns the configured file store, initialised.
func NewStorage(ctx context.Context, cfg *config.Config) (services.StorageService, error) {
	var (
		storage services.StorageService
		err     error
	)

	switch cfg.Storage.Backend {
	case config.BackendS3:
		storage, err = services.NewS3StorageService(ctx, services.S3Options{
			EndpointURL: cfg.Storage.S3.EndpointURL,
			Region:      cfg.Storage.S3.Region,
			AccessKey:   cfg.Storage.S3.AccessKey,
			SecretKey:   cfg.Storage.S3.SecretKey,
			Bucket:      cfg.Storage.S3.Bucket,
		})
		if err != nil {
			return nil, err
		}
	default:
		storage = services.NewLocalStorageService(cfg.Storage.UploadPath)
	}

	if err := storage.Init(ctx); err != nil {
		return nil, err
	}

	return storage, nil
}

// NewQueue returns the configured job queue.
func NewQueue(ctx context.Context, cfg *config.Config) (services.JobQueue, error) {
	if cfg.Queue.Backend == config.BackendValkey {
		return services.NewValkeyQueue(ctx, cfg.Queue.ValkeyAddr, cfg.Queue.ValkeyPassword, cfg.Queue.ValkeyKey)
	}
	return services.NewMemoryQueue(100), nil
}

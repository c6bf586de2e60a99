package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Gemini    GeminiConfig
	LLM       LLMConfig
	NER       NERConfig
	Storage   StorageConfig
	Queue     QueueConfig
	Worker    WorkerConfig
	Guideline GuidelineConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Debug bool
	JSON  bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	VectorSize uint64
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
}

// LLMConfig selects the backends behind the language and embedding services.
type LLMConfig struct {
	Provider          string
	EmbeddingProvider string
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIEmbedModel  string
	AnthropicAPIKey   string
	AnthropicModel    string
	ServiceTimeout    time.Duration
}

type NERConfig struct {
	URL string
}

type StorageConfig struct {
	Backend     string
	UploadPath  string
	MaxFileSize int64
	S3          S3Config
}

type S3Config struct {
	EndpointURL string
	Region      string
	AccessKey   string
	SecretKey   string
	Bucket      string
}

type QueueConfig struct {
	Backend        string
	ValkeyAddr     string
	ValkeyPassword string
	ValkeyKey      string
}

type WorkerConfig struct {
	Concurrency  int
	PollInterval time.Duration
}

type GuidelineConfig struct {
	Enabled bool
	Limit   int
}

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	BackendLocal  = "local"
	BackendS3     = "s3"
	BackendMemory = "memory"
	BackendValkey = "valkey"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			Debug: getEnvAsBool("LOG_DEBUG", false),
			JSON:  getEnvAsBool("LOG_JSON", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_scorer"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6334"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "scoring_guidelines"),
			VectorSize: uint64(getEnvAsInt64("QDRANT_VECTOR_SIZE", 768)),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		LLM: LLMConfig{
			Provider:          strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
			EmbeddingProvider: strings.ToLower(getEnv("EMBEDDING_PROVIDER", ProviderGemini)),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIEmbedModel:  getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
			AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel:    getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
			ServiceTimeout:    getEnvAsDuration("SERVICE_TIMEOUT", "90s"),
		},
		NER: NERConfig{
			URL: strings.TrimRight(getEnv("NER_URL", ""), "/"),
		},
		Storage: StorageConfig{
			Backend:     strings.ToLower(getEnv("STORAGE_BACKEND", BackendLocal)),
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			S3: S3Config{
				EndpointURL: getEnv("S3_ENDPOINT_URL", ""),
				Region:      getEnv("S3_REGION", "us-east-1"),
				AccessKey:   getEnv("S3_ACCESS_KEY", ""),
				SecretKey:   getEnv("S3_SECRET_KEY", ""),
				Bucket:      getEnv("S3_BUCKET_NAME", ""),
			},
		},
		Queue: QueueConfig{
			Backend:        strings.ToLower(getEnv("QUEUE_BACKEND", BackendMemory)),
			ValkeyAddr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			ValkeyPassword: getEnv("VALKEY_PASSWORD", ""),
			ValkeyKey:      getEnv("VALKEY_QUEUE_KEY", "score-jobs"),
		},
		Worker: WorkerConfig{
			Concurrency:  getEnvAsInt("WORKER_CONCURRENCY", 3),
			PollInterval: getEnvAsDuration("WORKER_POLL_INTERVAL", "10s"),
		},
		Guideline: GuidelineConfig{
			Enabled: getEnvAsBool("GUIDELINES_ENABLED", false),
			Limit:   getEnvAsInt("GUIDELINES_LIMIT", 3),
		},
	}
}

// Validate reports configuration that would only fail later, on the first request.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for llm provider %q", c.LLM.Provider)
		}
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for llm provider %q", c.LLM.Provider)
		}
	case ProviderAnthropic:
		if c.LLM.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for llm provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	switch c.LLM.EmbeddingProvider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for embedding provider %q", c.LLM.EmbeddingProvider)
		}
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for embedding provider %q", c.LLM.EmbeddingProvider)
		}
	default:
		return fmt.Errorf("unknown EMBEDDING_PROVIDER %q", c.LLM.EmbeddingProvider)
	}

	// Without a NER sidecar, entity recognition falls back to Gemini.
	if c.NER.URL == "" && c.Gemini.APIKey == "" {
		return fmt.Errorf("either NER_URL or GEMINI_API_KEY must be set")
	}

	switch c.Storage.Backend {
	case BackendLocal:
	case BackendS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET_NAME is required for storage backend %q", BackendS3)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	switch c.Queue.Backend {
	case BackendMemory, BackendValkey:
	default:
		return fmt.Errorf("unknown QUEUE_BACKEND %q", c.Queue.Backend)
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

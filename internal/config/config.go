package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Rag       RagConfig
	Cache     CacheConfig
	Messaging MessagingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	UploadDir          string
	ExportDir          string
	BodyLimitMB        int
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Jina         string
	OpenAI       string
	HuggingFace  string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama", "gemini", "jina" or "openai"
	EmbeddingModel    string
	OllamaBaseURL     string
	LLMProvider       string // "ollama", "gemini", "openai", "huggingface"
	LLMModel          string // e.g. "llama3", "gemini-2.5-flash"
	OpenAIBaseURL     string
	EmbeddingTimeout  time.Duration
	GenerationTimeout time.Duration
}

type RagConfig struct {
	ChunkSize             int
	ChunkOverlap          int
	TopK                  int
	ArtifactContextChunks int
	VectorIndexBackend    string // "memory" or "pgvector"
}

type CacheConfig struct {
	ArtifactBackend string // "memory" or "redis"
	RedisURL        string
	TTL             time.Duration
}

type MessagingConfig struct {
	EventTopic string
	NatsURL    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_PATH", "logs/llm_rag.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads/pdfs"),
			ExportDir:          getEnv("EXPORT_DIR", "exports"),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 50),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			EmbeddingTimeout:  getEnvAsDuration("EMBEDDING_TIMEOUT", 60*time.Second),
			GenerationTimeout: getEnvAsDuration("GENERATION_TIMEOUT", 120*time.Second),
		},
		Rag: RagConfig{
			ChunkSize:             getEnvAsInt("CHUNK_SIZE", 400),
			ChunkOverlap:          getEnvAsInt("CHUNK_OVERLAP", 80),
			TopK:                  getEnvAsPositiveInt("RETRIEVAL_TOP_K", 3),
			ArtifactContextChunks: getEnvAsPositiveInt("ARTIFACT_CONTEXT_CHUNKS", 6),
			VectorIndexBackend:    getEnv("VECTOR_INDEX_BACKEND", "memory"),
		},
		Cache: CacheConfig{
			ArtifactBackend: getEnv("ARTIFACT_CACHE_BACKEND", "memory"),
			RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
			TTL:             getEnvAsDuration("ARTIFACT_CACHE_TTL", time.Hour),
		},
		Messaging: MessagingConfig{
			EventTopic: getEnv("EVENT_TOPIC", "PDF_QA_EVENTS"),
			NatsURL:    getEnv("NATS_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsPositiveInt(key string, fallback int) int {
	if value := getEnvAsInt(key, fallback); value > 0 {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

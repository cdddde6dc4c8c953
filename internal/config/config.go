package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Engine   EngineConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini      string
	EmbedProductTopic string
}

type AIConfig struct {
	EmbeddingProvider  string // "gemini", "ollama", or "hash"
	EmbeddingDimension int
	OllamaBaseURL      string
	OllamaModel        string
	LLMProvider        string // "ollama", "none"
	LLMModel           string // e.g. "llama3", "qwen2.5"
}

// EngineConfig holds the recommendation tunables. Weights and relaxation
// bounds are policy knobs, not constants.
type EngineConfig struct {
	IndexBackend     string // "memory" or "pgvector"
	TopK             int
	SimilarityWeight float64
	FilterWeight     float64
	MaxRelaxations   int
	MaxTurns         int
	PoolRetries      int
	ProviderTimeout  int // seconds
	SessionTTL       int // minutes
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EmbedProductTopic: getEnv("EMBED_PRODUCT_TOPIC_NAME", "EMBED_PRODUCT"),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 768),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:        getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:           getEnv("LLM_MODEL", "llama3"),
		},
		Engine: EngineConfig{
			IndexBackend:     getEnv("INDEX_BACKEND", "memory"),
			TopK:             getEnvAsInt("ENGINE_TOP_K", 5),
			SimilarityWeight: getEnvAsFloat("ENGINE_SIMILARITY_WEIGHT", 0.6),
			FilterWeight:     getEnvAsFloat("ENGINE_FILTER_WEIGHT", 0.4),
			MaxRelaxations:   getEnvAsInt("ENGINE_MAX_RELAXATIONS", 3),
			MaxTurns:         getEnvAsInt("ENGINE_MAX_TURNS", 10),
			PoolRetries:      getEnvAsInt("ENGINE_POOL_RETRIES", 3),
			ProviderTimeout:  getEnvAsInt("ENGINE_PROVIDER_TIMEOUT_SECONDS", 10),
			SessionTTL:       getEnvAsInt("SESSION_TTL_MINUTES", 60),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

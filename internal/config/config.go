package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	EmbedTopic         string
	BodyLimitMB        int
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider string // "ollama", "openai" or "gemini"
	LLMModel    string
	LLMBaseURL  string
	LLMAPIKey   string

	EmbeddingProvider   string // "ollama", "openai" or "gemini"
	EmbeddingModel      string
	EmbeddingBaseURL    string
	EmbeddingAPIKey     string
	EmbeddingDimensions int

	GoogleGemini string
}

// AssistantConfig holds the retrieval knobs of the answer ladder.
type AssistantConfig struct {
	SemanticThreshold     float64
	PricingThresholdDrop  float64
	PricingThresholdFloor float64
	SemanticTopK          int
	KeywordLimit          int
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			EmbedTopic:         getEnv("EMBED_TOPIC", "EMBED_KNOWLEDGE"),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 4),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:         getEnv("LLM_PROVIDER", "openai"),
			LLMModel:            getEnv("LLM_MODEL", "gpt-4o-mini"),
			LLMBaseURL:          getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:           getEnv("LLM_API_KEY", ""),
			EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", "openai"),
			EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingBaseURL:    getEnv("EMBEDDING_BASE_URL", ""),
			EmbeddingAPIKey:     getEnv("EMBEDDING_API_KEY", ""),
			EmbeddingDimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", 768),
			GoogleGemini:        getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Assistant: AssistantConfig{
			SemanticThreshold:     getEnvAsFloat("SEMANTIC_THRESHOLD", 0.6),
			PricingThresholdDrop:  getEnvAsFloat("PRICING_THRESHOLD_DROP", 0.2),
			PricingThresholdFloor: getEnvAsFloat("PRICING_THRESHOLD_FLOOR", 0.1),
			SemanticTopK:          getEnvAsInt("SEMANTIC_TOP_K", 5),
			KeywordLimit:          getEnvAsInt("KEYWORD_LIMIT", 3),
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

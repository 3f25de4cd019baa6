package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port           string
	Env            string
	PublicBaseURL  string
	LogLevel       string
	UseMemoryQueue bool
	WorkerCount    int
	DatabaseURL    string

	// Telegram bot
	TelegramBotToken      string
	TelegramWebhookSecret string
	TelegramAPIBaseURL    string
	TelegramRetryMax      int
	TelegramRetryBackoff  time.Duration

	// LLM providers
	LLMProvider      string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	GeminiAPIKey     string
	GeminiModel      string
	EmbeddingModel   string
	LLMMaxTokens     int
	LLMTemperature   float64
	AgentTimeout     time.Duration
	KnowledgeTopK    int
	DefaultLanguage  string
	DisclaimerLevel  string
	DisclaimerFirst  bool
	KnowledgePrefill bool

	// YouTube review analysis
	YouTubeAPIKey     string
	YouTubeBaseURL    string
	YouTubeMaxResults int

	// Conversation queue (SQS when configured, in-memory otherwise)
	AWSRegion            string
	AWSAccessKeyID       string
	AWSSecretAccessKey   string
	AWSEndpointOverride  string
	ConversationQueueURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	AdminJWTSecret     string
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		UseMemoryQueue: getEnvAsBool("USE_MEMORY_QUEUE", true),
		WorkerCount:    getEnvAsInt("WORKER_COUNT", 2),
		DatabaseURL:    getEnv("DATABASE_URL", ""),

		TelegramBotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramWebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
		TelegramAPIBaseURL:    getEnv("TELEGRAM_API_BASE_URL", ""),
		TelegramRetryMax:      getEnvAsInt("TELEGRAM_RETRY_MAX_ATTEMPTS", 3),
		TelegramRetryBackoff:  getEnvAsDuration("TELEGRAM_RETRY_BACKOFF", 250*time.Millisecond),

		LLMProvider:      strings.ToLower(strings.TrimSpace(getEnv("LLM_PROVIDER", "openai"))),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		LLMMaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 1024),
		LLMTemperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
		AgentTimeout:     getEnvAsDuration("AGENT_TIMEOUT", 45*time.Second),
		KnowledgeTopK:    getEnvAsInt("KNOWLEDGE_TOP_K", 3),
		DefaultLanguage:  getEnv("DEFAULT_LANGUAGE", "en"),
		DisclaimerLevel:  getEnv("DISCLAIMER_LEVEL", "medium"),
		DisclaimerFirst:  getEnvAsBool("DISCLAIMER_FIRST_MESSAGE_ONLY", false),
		KnowledgePrefill: getEnvAsBool("KNOWLEDGE_PREFILL", true),

		YouTubeAPIKey:     getEnv("YOUTUBE_API_KEY", ""),
		YouTubeBaseURL:    getEnv("YOUTUBE_API_BASE_URL", ""),
		YouTubeMaxResults: getEnvAsInt("YOUTUBE_MAX_RESULTS", 5),

		AWSRegion:            getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:       getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride:  getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		ConversationQueueURL: getEnv("CONVERSATION_QUEUE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

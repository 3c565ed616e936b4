package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	GeminiAPIKey          string
	OpenAIAPIKey          string
	DatabaseURL           string
	Provider              string
	TranslationModel      string
	WorkerCount           int
	BatchSize             int
	MaxConcurrentAPICalls int
	RequestsPerMinute     int
	CacheTTL              time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		Provider:              getEnv("TRANSLATION_PROVIDER", "gemini"),
		TranslationModel:      getEnv("TRANSLATION_MODEL", "gemini-2.5-flash"),
		WorkerCount:           getEnvInt("WORKER_COUNT", 8),
		BatchSize:             getEnvInt("BATCH_SIZE", 10),
		MaxConcurrentAPICalls: getEnvInt("MAX_CONCURRENT_API_CALLS", 5),
		RequestsPerMinute:     getEnvInt("REQUESTS_PER_MINUTE", 60),
		CacheTTL:              time.Duration(getEnvInt("CACHE_TTL_HOURS", 720)) * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

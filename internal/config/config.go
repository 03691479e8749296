// package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// remote store
	APIBaseURL string
	Token      string

	// client-side request pacing
	RateRPS   float64
	RateBurst int

	// local files
	DownloadDir string
	CachePath   string

	// events
	NatsURL string

	// dev backend
	DevPort   int
	DevToken  string
	RenderPDF bool

	// llm (dev backend generation)
	LLMBaseURL     string
	LLMModel       string
	LLMAPIKey      string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeoutSec  int

	// logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:    getEnv("APPLIO_API_URL", "http://localhost:3000"),
		Token:         getEnv("APPLIO_TOKEN", ""),
		RateBurst:     getEnvInt("APPLIO_RATE_BURST", 5),
		DownloadDir:   getEnv("APPLIO_DOWNLOAD_DIR", "."),
		CachePath:     getEnv("APPLIO_CACHE_PATH", "./data/cache.db"),
		NatsURL:       getEnv("NATS_URL", ""),
		DevPort:       getEnvInt("DEV_PORT", 3000),
		DevToken:      getEnv("DEV_TOKEN", "dev-token"),
		RenderPDF:     getEnvBool("RENDER_PDF", false),
		LLMBaseURL:    getEnv("LLM_BASE_URL", ""),
		LLMModel:      getEnv("LLM_MODEL", "local-model"),
		LLMAPIKey:     getEnv("LLM_API_KEY", ""),
		LLMMaxTokens:  getEnvInt("LLM_MAX_TOKENS", 2048),
		LLMTimeoutSec: getEnvInt("LLM_TIMEOUT_SECONDS", 60),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", "./logs/applio.log"),
	}

	cfg.RateRPS = getEnvFloat("APPLIO_RATE_RPS", 10)
	cfg.LLMTemperature = getEnvFloat("LLM_TEMPERATURE", 0.4)

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// ProductDBConfig is a JSON provider config, e.g.
	// {"db_type":"postgres","extra_details":{"conn_str":"..."}}.
	ProductDBConfig string

	ScrapeInterval   time.Duration
	FetchTimeout     time.Duration
	FetchConcurrency int
	UserAgent        string
	AcceptLanguage   string

	RPSLimit float64
	RPSBurst int
}

// Load reads the .env file (if present) and the environment.
func Load(logger *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using system env vars")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		ProductDBConfig: getEnv("PRODUCT_DB_CONFIG", `{"db_type":"memory","extra_details":{}}`),

		ScrapeInterval:   getEnvDuration(logger, "SCRAPE_INTERVAL", time.Hour),
		FetchTimeout:     getEnvDuration(logger, "FETCH_TIMEOUT", 10*time.Second),
		FetchConcurrency: getEnvInt("FETCH_CONCURRENCY", 3),
		UserAgent:        getEnv("USER_AGENT", defaultUserAgent),
		AcceptLanguage:   getEnv("ACCEPT_LANGUAGE", "en-US,en;q=0.9"),

		RPSLimit: getEnvFloat("RPS_LIMIT", 50),
		RPSBurst: getEnvInt("RPS_BURST", 100),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(logger *zap.Logger, key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		logger.Warn("invalid duration in env, using default",
			zap.String("key", key),
			zap.String("value", val),
			zap.Duration("default", fallback))
		return fallback
	}
	return d
}

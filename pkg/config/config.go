package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration. Every recognized
// environment variable is read here, once, at process start.
type Config struct {
	ServerPort string
	LogLevel   string

	// Crawl source and date window.
	BaseURL   string
	StartDate string // YYYYMMDD
	EndDate   string // YYYYMMDD

	// Fan-out fetcher.
	MaxConcurrency         int
	MemoryThresholdPercent float64
	MemoryCheckInterval    time.Duration
	PageLoadTimeout        time.Duration

	// LLM extraction.
	AnthropicAPIKey     string
	LLMModel            string
	LLMTemperature      float64
	LLMMaxTokens        int
	ChunkTokenThreshold int
	ChunkOverlapRate    float64

	// Store writer.
	StoreBackends []string // "elastic", "postgres"
	ChunkSize     int

	ElasticsearchURL      string
	ElasticsearchIndex    string
	ElasticsearchUser     string
	ElasticsearchPassword string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	VisitedTTL    time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		BaseURL:   getEnv("BASE_URL", "https://www.info.gov.hk"),
		StartDate: getEnv("START_DATE", time.Now().Format("20060102")),
		EndDate:   getEnv("END_DATE", time.Now().Format("20060102")),

		MaxConcurrency:         getEnvAsInt("MAX_CONCURRENCY", 3),
		MemoryThresholdPercent: getEnvAsFloat("MEMORY_THRESHOLD_PERCENT", 80),
		MemoryCheckInterval:    getEnvAsDuration("MEMORY_CHECK_INTERVAL_SECONDS", 1) * time.Second,
		PageLoadTimeout:        getEnvAsDuration("PAGE_LOAD_TIMEOUT_SECONDS", 60) * time.Second,

		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		LLMModel:            getEnv("LLM_MODEL", "claude-haiku-4-5"),
		LLMTemperature:      getEnvAsFloat("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:        getEnvAsInt("LLM_MAX_TOKENS", 1000),
		ChunkTokenThreshold: getEnvAsInt("CHUNK_TOKEN_THRESHOLD", 1200),
		ChunkOverlapRate:    getEnvAsFloat("CHUNK_OVERLAP_RATE", 0.1),

		StoreBackends: getEnvAsList("STORE_BACKENDS", "elastic"),
		ChunkSize:     getEnvAsInt("CHUNK_SIZE", 2000),

		ElasticsearchURL:      getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
		ElasticsearchIndex:    getEnv("ELASTICSEARCH_INDEX", "news_chunks"),
		ElasticsearchUser:     getEnv("ELASTICSEARCH_USER", ""),
		ElasticsearchPassword: getEnv("ELASTICSEARCH_PASSWORD", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "user"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		PostgresDB:       getEnv("POSTGRES_DB", "news"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		VisitedTTL:    getEnvAsDuration("VISITED_TTL_HOURS", 48) * time.Hour,
	}
}

// BackendEnabled reports whether the named store backend is configured.
func (c *Config) BackendEnabled(name string) bool {
	for _, b := range c.StoreBackends {
		if b == name {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}

func getEnvAsList(key, fallback string) []string {
	valueStr := getEnv(key, fallback)
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

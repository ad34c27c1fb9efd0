package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel      OTelConfig
	DebateLLM LLMConfig
	EnrichLLM LLMConfig
	Image     ImageConfig
	Roster    RosterConfig
	Session   SessionConfig
	Env       string
	Port      string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type LLMConfig struct {
	Provider  string // "openai" or "anthropic"
	APIKey    string
	BaseURL   string // Optional: for custom endpoints
	Model     string
	MaxTokens int
}

type ImageConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type RosterConfig struct {
	Path     string // JSON file holding the custom-agent slot
	RedisURL string // Optional: redis-backed slot instead of the file
	RedisKey string
}

type SessionConfig struct {
	ConcludeDwell time.Duration
	NodeID        int64
}

// Load loads configuration from environment variables.
// In development it also reads a local .env file when present.
func Load() (Config, error) {
	if getEnv("COUNCIL_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:  getEnv("COUNCIL_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "council"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		DebateLLM: LLMConfig{
			Provider:  getEnv("DEBATE_LLM_PROVIDER", "openai"),
			APIKey:    getEnv("DEBATE_LLM_API_KEY", ""),
			BaseURL:   getEnv("DEBATE_LLM_BASE_URL", ""),
			Model:     getEnv("DEBATE_LLM_MODEL", "gpt-4o"),
			MaxTokens: getEnvInt("DEBATE_LLM_MAX_TOKENS", 16384),
		},
		EnrichLLM: LLMConfig{
			Provider:  getEnv("ENRICH_LLM_PROVIDER", "openai"),
			APIKey:    getEnv("ENRICH_LLM_API_KEY", ""),
			BaseURL:   getEnv("ENRICH_LLM_BASE_URL", ""),
			Model:     getEnv("ENRICH_LLM_MODEL", "gpt-4o-mini"),
			MaxTokens: getEnvInt("ENRICH_LLM_MAX_TOKENS", 4096),
		},
		Image: ImageConfig{
			APIKey:  getEnv("IMAGE_API_KEY", ""),
			BaseURL: getEnv("IMAGE_BASE_URL", ""),
			Model:   getEnv("IMAGE_MODEL", "gpt-image-1"),
		},
		Roster: RosterConfig{
			Path:     getEnv("ROSTER_PATH", "council_agents.json"),
			RedisURL: getEnv("ROSTER_REDIS_URL", ""),
			RedisKey: getEnv("ROSTER_REDIS_KEY", "council:custom_agents"),
		},
		Session: SessionConfig{
			ConcludeDwell: time.Duration(getEnvInt("CONCLUDE_DWELL_MS", 2000)) * time.Millisecond,
			NodeID:        int64(getEnvInt("SNOWFLAKE_NODE_ID", 1)),
		},
	}

	if cfg.DebateLLM.APIKey == "" {
		return Config{}, fmt.Errorf("DEBATE_LLM_API_KEY is required")
	}

	// Fall back to the debate credentials for enrichment and image calls
	// when no dedicated keys are configured.
	if cfg.EnrichLLM.APIKey == "" {
		cfg.EnrichLLM.APIKey = cfg.DebateLLM.APIKey
		cfg.EnrichLLM.BaseURL = cfg.DebateLLM.BaseURL
	}
	if cfg.Image.APIKey == "" {
		cfg.Image.APIKey = cfg.DebateLLM.APIKey
		cfg.Image.BaseURL = cfg.DebateLLM.BaseURL
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c LLMConfig) Enabled() bool {
	return c.APIKey != "" && (c.Provider == "openai" || c.Provider == "anthropic")
}

func (c RosterConfig) RedisEnabled() bool {
	return c.RedisURL != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

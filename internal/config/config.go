package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	defaultUpstreamTimeout = 10 * time.Second
	defaultCacheTTL        = time.Hour
	defaultPort            = "8000"
	defaultStaticDir       = "static"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	LLMProvider     string
	LLMModel        string
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	SearchAPIKey   string
	SearchEngineID string

	UpstreamTimeout  time.Duration
	RedisURL         string
	EvidenceCacheTTL time.Duration

	FrontendURL string
	StaticDir   string
	Port        string
}

func Load() Config {
	cfg := Config{
		LLMProvider:      strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		LLMModel:         os.Getenv("LLM_MODEL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		SearchAPIKey:     os.Getenv("GOOGLE_SEARCH_API_KEY"),
		SearchEngineID:   os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
		UpstreamTimeout:  getDuration("UPSTREAM_TIMEOUT", defaultUpstreamTimeout),
		RedisURL:         os.Getenv("REDIS_URL"),
		EvidenceCacheTTL: getDuration("EVIDENCE_CACHE_TTL", defaultCacheTTL),
		FrontendURL:      os.Getenv("FRONTEND_URL"),
		StaticDir:        getEnv("STATIC_DIR", defaultStaticDir),
		Port:             getEnv("PORT", defaultPort),
	}

	if !cfg.GenerativeEnabled() {
		slog.Warn("generative text API key not found, AI analysis disabled", "provider", cfg.LLMProvider)
	}
	if !cfg.SearchEnabled() {
		slog.Warn("search API not fully configured, web evidence disabled")
	}

	return cfg
}

// GenerativeKey returns the credential for the selected provider.
func (c Config) GenerativeKey() string {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	default:
		return c.GeminiAPIKey
	}
}

func (c Config) GenerativeEnabled() bool {
	return c.GenerativeKey() != ""
}

func (c Config) SearchEnabled() bool {
	return c.SearchAPIKey != "" && c.SearchEngineID != ""
}

func (c Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

func (c Config) FullFunctionality() bool {
	return c.GenerativeEnabled() && c.SearchEnabled()
}

func getEnv(name, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return defaultValue
}

func getDuration(name string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}

	// bare numbers are seconds
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}

	slog.Warn("invalid duration, using default", "param", name, "value", raw, "default", defaultValue)
	return defaultValue
}

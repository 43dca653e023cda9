package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the environment does not override them
const (
	DefaultAPIPrefix          = "/api"
	DefaultLLMBaseURL         = "https://api.openai.com/v1"
	DefaultPort               = "8000"
	DefaultMaxRequestBodySize = int64(1 << 20)
	DefaultCompletionTimeout  = 60 * time.Second
	DefaultDraftCacheTTL      = 5 * time.Minute
	DefaultRateLimitBurst     = 5
)

// Config holds process-wide settings. It is built once at startup and
// passed explicitly to the dispatcher and router.
type Config struct {
	// APIPrefix is prepended to the evaluation routes
	APIPrefix string

	// DefaultLLMBaseURL and DefaultLLMAPIKey apply when a request does not
	// carry its own llm block
	DefaultLLMBaseURL string
	DefaultLLMAPIKey  string

	Port string

	// CORSAllowedOrigins empty means any origin is accepted
	CORSAllowedOrigins []string

	MaxRequestBodySize int64

	// CompletionTimeout bounds every upstream completion call
	CompletionTimeout time.Duration

	// RateLimitRPS of zero disables inbound rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// CatalogFile optionally replaces the embedded catalog
	CatalogFile string

	DraftCacheTTL time.Duration
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		APIPrefix:          DefaultAPIPrefix,
		DefaultLLMBaseURL:  DefaultLLMBaseURL,
		Port:               DefaultPort,
		CORSAllowedOrigins: []string{},
		MaxRequestBodySize: DefaultMaxRequestBodySize,
		CompletionTimeout:  DefaultCompletionTimeout,
		RateLimitBurst:     DefaultRateLimitBurst,
		DraftCacheTTL:      DefaultDraftCacheTTL,
	}
}

// LoadConfig loads configuration from a .env file (if any) and the
// environment. Invalid values are reported as errors.
func LoadConfig() (*Config, error) {
	loadDotEnv()

	cfg := DefaultConfig()

	if v := os.Getenv("API_PREFIX"); v != "" {
		cfg.APIPrefix = "/" + strings.Trim(v, "/")
	}
	if v := os.Getenv("DEFAULT_LLM_BASE_URL"); v != "" {
		cfg.DefaultLLMBaseURL = v
	}
	cfg.DefaultLLMAPIKey = os.Getenv("DEFAULT_LLM_API_KEY")
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	cfg.CatalogFile = os.Getenv("CATALOG_FILE")

	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		for _, origin := range strings.Split(corsOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	}

	if v := os.Getenv("MAX_REQUEST_BODY_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_REQUEST_BODY_SIZE %q", v)
		}
		cfg.MaxRequestBodySize = size
	}

	var err error
	if cfg.CompletionTimeout, err = durationFromEnv("COMPLETION_TIMEOUT", cfg.CompletionTimeout); err != nil {
		return nil, err
	}
	if cfg.DraftCacheTTL, err = durationFromEnv("DRAFT_CACHE_TTL", cfg.DraftCacheTTL); err != nil {
		return nil, err
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q", v)
		}
		cfg.RateLimitRPS = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST %q", v)
		}
		cfg.RateLimitBurst = burst
	}

	if cfg.DefaultLLMAPIKey == "" {
		log.Println("DEFAULT_LLM_API_KEY not set, completions fall back to offline stubs unless a request supplies a key")
	}

	return &cfg, nil
}

// loadDotEnv loads the first .env file found in the current or parent
// directory. A missing file is not an error.
func loadDotEnv() {
	for _, envPath := range []string{".env", "../.env"} {
		absPath, err := filepath.Abs(envPath)
		if err != nil {
			continue
		}
		if _, err := os.Stat(absPath); err != nil {
			continue
		}
		if err := godotenv.Load(absPath); err == nil {
			log.Printf("Loaded .env from: %s", absPath)
			return
		}
	}
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}

// ResolveLLM merges per-request overrides onto the process defaults.
// Each field falls back independently.
func (c Config) ResolveLLM(override *LLMConfig) LLMConfig {
	resolved := LLMConfig{
		BaseURL: c.DefaultLLMBaseURL,
		APIKey:  c.DefaultLLMAPIKey,
	}
	if override != nil {
		if override.BaseURL != "" {
			resolved.BaseURL = override.BaseURL
		}
		if override.APIKey != "" {
			resolved.APIKey = override.APIKey
		}
	}
	return resolved
}

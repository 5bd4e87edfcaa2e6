// ABOUTME: Configuration loader for the Kilexep web gateway
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, default for general cache
	WorkflowTTL        int      // seconds, for workflow (trend/topic) responses
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)

	// Identity backend (django-allauth headless)
	IdentityBaseURL string
	DefaultOrigin   string // Origin/Referer fallback when the browser omits the header
	GoogleClientID  string // injected into token-exchange payloads when absent

	// Job execution backend (automation runner)
	JobBaseURL string

	// Upstream HTTP
	UpstreamTimeout time.Duration

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitAuth    int  // Requests per minute for auth endpoints (default: 5)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		WorkflowTTL:        getEnvInt("WORKFLOW_CACHE_TTL", 60),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		IdentityBaseURL: ensureScheme(getEnv("IDENTITY_BASE_URL", "http://backend:8000")),
		DefaultOrigin:   getEnv("DEFAULT_ORIGIN", "http://localhost:3001"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),

		JobBaseURL: ensureScheme(getEnv("JOB_BASE_URL", "http://localhost:80")),

		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT", 30)) * time.Second,

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitAuth:    getEnvInt("RATE_LIMIT_AUTH", 5),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),
	}

	if cfg.IdentityBaseURL == "" {
		return nil, fmt.Errorf("IDENTITY_BASE_URL is required")
	}
	if cfg.JobBaseURL == "" {
		return nil, fmt.Errorf("JOB_BASE_URL is required")
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_AUTH", cfg.RateLimitAuth},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ensureScheme adds http:// prefix if the URL has no scheme.
// Both upstreams are internal services, so plain http is the default.
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}

// ABOUTME: Tests for environment-based configuration loading
// ABOUTME: Defaults, overrides, scheme normalization, and validation

package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CACHE_TTL", "WORKFLOW_CACHE_TTL", "CORS_ALLOWED_ORIGINS",
		"IDENTITY_BASE_URL", "DEFAULT_ORIGIN", "GOOGLE_CLIENT_ID",
		"JOB_BASE_URL", "UPSTREAM_TIMEOUT",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_AUTH", "RATE_LIMIT_DEFAULT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected cache TTL 300, got %d", cfg.CacheTTL)
	}
	if cfg.WorkflowTTL != 60 {
		t.Errorf("Expected workflow TTL 60, got %d", cfg.WorkflowTTL)
	}
	if cfg.IdentityBaseURL != "http://backend:8000" {
		t.Errorf("Expected default identity URL, got %s", cfg.IdentityBaseURL)
	}
	if cfg.JobBaseURL != "http://localhost:80" {
		t.Errorf("Expected default job URL, got %s", cfg.JobBaseURL)
	}
	if cfg.DefaultOrigin != "http://localhost:3001" {
		t.Errorf("Expected default origin, got %s", cfg.DefaultOrigin)
	}
	if cfg.UpstreamTimeout != 30*time.Second {
		t.Errorf("Expected 30s upstream timeout, got %v", cfg.UpstreamTimeout)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.RateLimitAuth != 5 || cfg.RateLimitDefault != 100 {
		t.Errorf("Expected default limits 5/100, got %d/%d", cfg.RateLimitAuth, cfg.RateLimitDefault)
	}
	if cfg.GoogleClientID != "" {
		t.Errorf("Expected no Google client ID by default, got %s", cfg.GoogleClientID)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("Expected no CORS origins by default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("IDENTITY_BASE_URL", "https://identity.internal")
	t.Setenv("JOB_BASE_URL", "http://runner:5000")
	t.Setenv("UPSTREAM_TIMEOUT", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port override, got %s", cfg.Port)
	}
	if cfg.IdentityBaseURL != "https://identity.internal" {
		t.Errorf("Expected https URL preserved, got %s", cfg.IdentityBaseURL)
	}
	if cfg.JobBaseURL != "http://runner:5000" {
		t.Errorf("Expected job URL override, got %s", cfg.JobBaseURL)
	}
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %v", cfg.UpstreamTimeout)
	}
	if cfg.RateLimitEnabled {
		t.Error("Expected rate limiting disabled")
	}
	if cfg.GoogleClientID != "client-123" {
		t.Errorf("Expected Google client ID, got %s", cfg.GoogleClientID)
	}
}

func TestLoad_AddsSchemeToBareHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("IDENTITY_BASE_URL", "backend:8000")
	t.Setenv("JOB_BASE_URL", "runner:5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.IdentityBaseURL != "http://backend:8000" {
		t.Errorf("Expected http scheme added, got %s", cfg.IdentityBaseURL)
	}
	if cfg.JobBaseURL != "http://runner:5000" {
		t.Errorf("Expected http scheme added, got %s", cfg.JobBaseURL)
	}
}

func TestLoad_ParsesCORSOriginList(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3001, https://app.kilexep.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("Expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[0] != "http://localhost:3001" || cfg.CORSAllowedOrigins[1] != "https://app.kilexep.com" {
		t.Errorf("Expected trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_RejectsRateLimitOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"auth too low", "RATE_LIMIT_AUTH", "0"},
		{"auth too high", "RATE_LIMIT_AUTH", "10001"},
		{"default too low", "RATE_LIMIT_DEFAULT", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_TTL", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("Expected fallback to 300, got %d", cfg.CacheTTL)
	}
}

// ABOUTME: Entry point for the Kilexep web gateway
// ABOUTME: Proxies auth to the identity backend and fronts the automation job runner

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kilexep/web-gateway/cache"
	"github.com/kilexep/web-gateway/config"
	"github.com/kilexep/web-gateway/handlers"
	"github.com/kilexep/web-gateway/logger"
	"github.com/kilexep/web-gateway/middleware"
)

func main() {
	// Local development convenience; a missing .env is fine
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env")
	}

	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Kilexep web gateway")
	slog.Info("Identity backend configured", "url", cfg.IdentityBaseURL)
	slog.Info("Job backend configured", "url", cfg.JobBaseURL)

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	slog.Info("Cache initialized", "ttl", cacheTTL)

	// Initialize handlers
	h := handlers.NewHandler(cfg, c)

	mux := buildMux(cfg, h)

	// Start server
	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// buildMux registers all routes with their middleware stacks. Patterns are
// method-qualified, so each path also gets an explicit OPTIONS pattern;
// without it the mux would answer preflight requests with 405 before the
// CORS middleware ever ran.
func buildMux(cfg *config.Config, h *handlers.Handler) *http.ServeMux {
	// Rate limiters: stricter bucket for credential-bearing endpoints
	var authLimiter, defaultLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(cfg.RateLimitAuth, time.Minute)
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
	}

	cors := middleware.CORS(cfg.CORSAllowedOrigins)

	preflight := middleware.Chain(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, middleware.LogRequest, cors)

	mux := http.NewServeMux()
	preflightPaths := make(map[string]bool)
	for _, route := range h.Routes() {
		limiter := defaultLimiter
		if route.Auth {
			limiter = authLimiter
		}
		handler := middleware.Chain(route.Handler,
			middleware.LogRequest,
			cors,
			middleware.RateLimit(limiter, middleware.ClientIP),
		)
		mux.HandleFunc(route.Method+" "+route.Path, handler)

		// Paths shared by several methods register preflight once
		if !preflightPaths[route.Path] {
			preflightPaths[route.Path] = true
			mux.HandleFunc(http.MethodOptions+" "+route.Path, preflight)
		}
	}

	return mux
}

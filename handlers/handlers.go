// ABOUTME: HTTP handler base for the Kilexep web gateway
// ABOUTME: Wires upstream clients and provides JSON response helpers

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kilexep/web-gateway/cache"
	"github.com/kilexep/web-gateway/config"
	"github.com/kilexep/web-gateway/models"
	"github.com/kilexep/web-gateway/services"
)

type Handler struct {
	cfg      *config.Config
	cache    *cache.Cache
	identity *services.IdentityClient
	jobs     *services.JobClient
}

func NewHandler(cfg *config.Config, cache *cache.Cache) *Handler {
	h := &Handler{
		cfg:   cfg,
		cache: cache,
	}

	// Upstream clients are optional (for testing)
	if cfg != nil {
		h.identity = services.NewIdentityClient(cfg.IdentityBaseURL, cfg.UpstreamTimeout)
		h.jobs = services.NewJobClient(cfg.JobBaseURL, cfg.UpstreamTimeout)
	}

	return h
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"identity_backend": "not_configured",
		"job_backend":      "not_configured",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	}

	if h.identity != nil {
		resp["identity_backend"] = "ok"
	}
	if h.jobs != nil {
		resp["job_backend"] = "ok"
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

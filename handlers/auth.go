// ABOUTME: Auth proxy endpoints relaying browser requests to the identity backend
// ABOUTME: Stateless pass-through with Set-Cookie relay and 503/degrade failure mapping

package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/kilexep/web-gateway/models"
	"github.com/kilexep/web-gateway/services"
)

// failureMode selects the response synthesized when the identity backend
// is unreachable. State-changing operations surface unavailability
// explicitly; the read-only status check degrades to "logged out".
type failureMode int

const (
	failUnavailable failureMode = iota // 503 {status, message}
	failUnavailableCode                // 503 {error, code: BACKEND_UNAVAILABLE}
	failDegradeLoggedOut               // 200 {logged_in: false}
	failBadGateway                     // 502 {error, code}
)

const msgAuthUnavailable = "Authentication service is currently unavailable. Please try again later."
const msgBackendUnavailable = "Backend authentication service is currently unavailable. Please try again later."

// Login proxies email/password login to the allauth headless API.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.proxyIdentity(w, r, "/_allauth/browser/v1/auth/login", failUnavailable, nil)
}

// Signup proxies account creation to the allauth headless API.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	h.proxyIdentity(w, r, "/_allauth/browser/v1/auth/signup", failUnavailable, nil)
}

// SessionRead proxies the session status read used by the auth resolver.
func (h *Handler) SessionRead(w http.ResponseWriter, r *http.Request) {
	h.proxyIdentity(w, r, "/_allauth/browser/v1/auth/session", failUnavailable, nil)
}

// SessionDelete proxies logout (session deletion).
func (h *Handler) SessionDelete(w http.ResponseWriter, r *http.Request) {
	h.proxyIdentity(w, r, "/_allauth/browser/v1/auth/session", failUnavailable, nil)
}

// FetchCSRF proxies the CSRF cookie bootstrap endpoint. The interesting
// part of the response is the Set-Cookie header, which must reach the
// browser so the csrftoken lands on the gateway's origin.
func (h *Handler) FetchCSRF(w http.ResponseWriter, r *http.Request) {
	h.proxyIdentity(w, r, "/api/auth/csrf/", failBadGateway, nil)
}

// GoogleAuth proxies the Google OAuth token exchange. The configured
// OAuth client ID is injected into the payload when the caller omitted it.
func (h *Handler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	h.proxyIdentity(w, r, "/api/auth/google", failUnavailableCode, h.injectGoogleClientID)
}

// CompleteSignup proxies the registration-completion call.
func (h *Handler) CompleteSignup(w http.ResponseWriter, r *http.Request) {
	h.proxyIdentity(w, r, "/api/auth/complete-signup", failBadGateway, nil)
}

// UserStatus proxies the informational session check. An unreachable
// identity backend presents as "not authenticated", never as an error.
func (h *Handler) UserStatus(w http.ResponseWriter, r *http.Request) {
	h.proxyIdentity(w, r, "/api/user/status", failDegradeLoggedOut, nil)
}

// proxyIdentity implements the fixed proxy shape: pass the raw body
// through, resolve the CSRF token from header or cookie, forward Origin as
// both Origin and Referer, relay the upstream status, body, Set-Cookie and
// Content-Type unchanged. No retries at this layer.
func (h *Handler) proxyIdentity(w http.ResponseWriter, r *http.Request, path string, mode failureMode, rewriteBody func([]byte) []byte) {
	if h.identity == nil {
		h.writeError(w, "Identity backend not configured", http.StatusInternalServerError)
		return
	}

	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			h.writeError(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
	}
	if rewriteBody != nil {
		body = rewriteBody(body)
	}

	upstream, err := h.identity.Forward(r.Context(), r.Method, path, body, services.ForwardHeaders{
		Cookie:    r.Header.Get("Cookie"),
		CSRFToken: ResolveCSRFToken(r),
		Origin:    h.resolveOrigin(r),
	})
	if err != nil {
		h.identityUnavailable(w, r, mode, err)
		return
	}

	h.relay(w, upstream)
}

// relay writes an upstream response back to the browser unchanged.
func (h *Handler) relay(w http.ResponseWriter, upstream *services.UpstreamResponse) {
	for _, sc := range upstream.SetCookie {
		w.Header().Add("Set-Cookie", sc)
	}

	contentType := upstream.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)

	w.WriteHeader(upstream.Status)
	w.Write(upstream.Body)
}

// identityUnavailable synthesizes the per-endpoint failure response for a
// network-level upstream error. The raw error never reaches the browser.
func (h *Handler) identityUnavailable(w http.ResponseWriter, r *http.Request, mode failureMode, err error) {
	slog.Warn("Identity backend not available", "path", r.URL.Path, "error", err)

	switch mode {
	case failDegradeLoggedOut:
		h.writeJSON(w, http.StatusOK, models.AuthStatus{LoggedIn: false})
	case failUnavailableCode:
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": msgBackendUnavailable,
			"code":  "BACKEND_UNAVAILABLE",
		})
	case failBadGateway:
		h.writeError(w, "Identity backend request failed", http.StatusBadGateway)
	default:
		h.writeJSON(w, http.StatusServiceUnavailable, models.UnavailableResponse{
			Status:  http.StatusServiceUnavailable,
			Message: msgAuthUnavailable,
		})
	}
}

// injectGoogleClientID adds the configured OAuth client ID to a token
// exchange payload when the caller did not supply one.
func (h *Handler) injectGoogleClientID(body []byte) []byte {
	if h.cfg == nil || h.cfg.GoogleClientID == "" || len(body) == 0 {
		return body
	}
	if gjson.GetBytes(body, "token.client_id").Exists() {
		return body
	}

	rewritten, err := sjson.SetBytes(body, "token.client_id", h.cfg.GoogleClientID)
	if err != nil {
		slog.Warn("Failed to inject OAuth client ID, forwarding body unmodified", "error", err)
		return body
	}
	return rewritten
}

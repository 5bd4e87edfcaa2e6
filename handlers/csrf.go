// ABOUTME: CSRF token resolution for proxied identity requests
// ABOUTME: Reads the explicit header first, then falls back to the csrftoken cookie

package handlers

import (
	"net/http"
	"net/url"
	"regexp"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRFToken"
)

// csrfCookiePattern extracts the csrftoken entry from a raw Cookie header.
var csrfCookiePattern = regexp.MustCompile(`(?:^|;\s*)csrftoken=([^;]+)`)

// ResolveCSRFToken returns the anti-forgery token for an inbound request:
// the X-CSRFToken header if present (header lookup is case-insensitive),
// otherwise the csrftoken cookie value, URL-decoded. Returns empty string
// when neither exists; the token is never validated here -- enforcement
// belongs to the identity backend.
func ResolveCSRFToken(r *http.Request) string {
	if token := r.Header.Get(csrfHeaderName); token != "" {
		return token
	}

	cookie := r.Header.Get("Cookie")
	if cookie == "" {
		return ""
	}

	m := csrfCookiePattern.FindStringSubmatch(cookie)
	if m == nil {
		return ""
	}

	decoded, err := url.QueryUnescape(m[1])
	if err != nil {
		// Malformed escape: forward the raw value rather than dropping it
		return m[1]
	}
	return decoded
}

// resolveOrigin returns the request's Origin header, substituting the
// configured default when the browser omitted it.
func (h *Handler) resolveOrigin(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin
	}
	if h.cfg != nil {
		return h.cfg.DefaultOrigin
	}
	return ""
}

// ABOUTME: Tests for the auth proxy endpoints
// ABOUTME: Pass-through fidelity, Set-Cookie relay, and per-endpoint failure modes

package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kilexep/web-gateway/config"
)

// newTestHandler wires a Handler at the given upstream URLs. Either URL may
// point at a closed server to simulate an unreachable backend.
func newTestHandler(identityURL, jobURL string) *Handler {
	return NewHandler(&config.Config{
		IdentityBaseURL: identityURL,
		JobBaseURL:      jobURL,
		DefaultOrigin:   "http://localhost:3001",
		UpstreamTimeout: 5 * time.Second,
		WorkflowTTL:     60,
	}, nil)
}

// deadServerURL returns a URL nothing is listening on.
func deadServerURL() string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	return url
}

func TestLogin_PassesThroughUnchanged(t *testing.T) {
	upstreamBody := `{"status": 200, "meta": {"is_authenticated": true}}`

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_allauth/browser/v1/auth/login" {
			t.Errorf("Expected allauth login path, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"email":"a@b.c","password":"pw"}` {
			t.Errorf("Expected raw body forwarded, got %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "xyz", Path: "/"})
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(upstreamBody))
	}))
	defer upstream.Close()

	h := newTestHandler(upstream.URL, upstream.URL)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != upstreamBody {
		t.Errorf("Expected upstream body relayed verbatim, got %s", w.Body.String())
	}
	setCookie := w.Result().Header.Values("Set-Cookie")
	if len(setCookie) != 1 || !strings.Contains(setCookie[0], "sessionid=xyz") {
		t.Errorf("Expected sessionid Set-Cookie relayed, got %v", setCookie)
	}
}

func TestLogin_ForwardsCSRFFromCookie(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-CSRFToken"); got != "abc123" {
			t.Errorf("Expected X-CSRFToken abc123, got %q", got)
		}
		if got := r.Header.Get("Cookie"); got != "csrftoken=abc123" {
			t.Errorf("Expected cookie forwarded, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	h := newTestHandler(upstream.URL, upstream.URL)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Cookie", "csrftoken=abc123")
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestLogin_ForwardsOriginAndReferer(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Origin"); got != "http://example.com" {
			t.Errorf("Expected Origin http://example.com, got %q", got)
		}
		if got := r.Header.Get("Referer"); got != "http://example.com" {
			t.Errorf("Expected Referer http://example.com, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	h := newTestHandler(upstream.URL, upstream.URL)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.Login(w, req)
}

func TestLogin_DefaultOriginWhenHeaderMissing(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Origin"); got != "http://localhost:3001" {
			t.Errorf("Expected configured default origin, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	h := newTestHandler(upstream.URL, upstream.URL)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.Login(w, req)
}

func TestLogin_RelaysUpstreamErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": 400, "errors": [{"message": "bad credentials"}]}`))
	}))
	defer upstream.Close()

	h := newTestHandler(upstream.URL, upstream.URL)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected upstream 400 relayed, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "bad credentials") {
		t.Errorf("Expected upstream error body relayed, got %s", w.Body.String())
	}
}

func TestLogin_BackendUnreachableReturns503(t *testing.T) {
	h := newTestHandler(deadServerURL(), deadServerURL())

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", w.Code)
	}

	var resp struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != 503 {
		t.Errorf("Expected status field 503, got %d", resp.Status)
	}
	if resp.Message != msgAuthUnavailable {
		t.Errorf("Expected unavailable message, got %q", resp.Message)
	}
}

func TestUserStatus_DegradesToLoggedOutWhenUnreachable(t *testing.T) {
	h := newTestHandler(deadServerURL(), deadServerURL())

	req := httptest.NewRequest("GET", "/api/user/status", nil)
	w := httptest.NewRecorder()
	h.UserStatus(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected degrade to 200, got %d", w.Code)
	}

	var resp struct {
		LoggedIn bool `json:"logged_in"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.LoggedIn {
		t.Error("Expected logged_in false")
	}
}

func TestUserStatus_PassesThroughWhenHealthy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/status" {
			t.Errorf("Expected /api/user/status, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"logged_in": true, "user": {"email": "a@b.c"}}`))
	}))
	defer upstream.Close()

	h := newTestHandler(upstream.URL, upstream.URL)

	req := httptest.NewRequest("GET", "/api/user/status", nil)
	w := httptest.NewRecorder()
	h.UserStatus(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"logged_in": true`) {
		t.Errorf("Expected upstream body relayed, got %s", w.Body.String())
	}
}

func TestGoogleAuth_UnreachableReturnsCodedError(t *testing.T) {
	h := newTestHandler(deadServerURL(), deadServerURL())

	req := httptest.NewRequest("POST", "/api/auth/google", strings.NewReader(`{"token":{"id_token":"x"}}`))
	w := httptest.NewRecorder()
	h.GoogleAuth(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Code != "BACKEND_UNAVAILABLE" {
		t.Errorf("Expected code BACKEND_UNAVAILABLE, got %q", resp.Code)
	}
	if resp.Error != msgBackendUnavailable {
		t.Errorf("Expected backend unavailable message, got %q", resp.Error)
	}
}

func TestGoogleAuth_InjectsConfiguredClientID(t *testing.T) {
	var forwarded []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success": true}`))
	}))
	defer upstream.Close()

	h := NewHandler(&config.Config{
		IdentityBaseURL: upstream.URL,
		JobBaseURL:      upstream.URL,
		GoogleClientID:  "configured-client-id",
		UpstreamTimeout: 5 * time.Second,
	}, nil)

	req := httptest.NewRequest("POST", "/api/auth/google", strings.NewReader(`{"token":{"id_token":"x"}}`))
	w := httptest.NewRecorder()
	h.GoogleAuth(w, req)

	var payload struct {
		Token struct {
			IDToken  string `json:"id_token"`
			ClientID string `json:"client_id"`
		} `json:"token"`
	}
	if err := json.Unmarshal(forwarded, &payload); err != nil {
		t.Fatalf("Failed to decode forwarded body: %v", err)
	}
	if payload.Token.ClientID != "configured-client-id" {
		t.Errorf("Expected injected client_id, got %q", payload.Token.ClientID)
	}
	if payload.Token.IDToken != "x" {
		t.Errorf("Expected original id_token preserved, got %q", payload.Token.IDToken)
	}
}

func TestGoogleAuth_DoesNotOverwriteCallerClientID(t *testing.T) {
	var forwarded []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success": true}`))
	}))
	defer upstream.Close()

	h := NewHandler(&config.Config{
		IdentityBaseURL: upstream.URL,
		JobBaseURL:      upstream.URL,
		GoogleClientID:  "configured-client-id",
		UpstreamTimeout: 5 * time.Second,
	}, nil)

	body := `{"token":{"id_token":"x","client_id":"caller-client-id"}}`
	req := httptest.NewRequest("POST", "/api/auth/google", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.GoogleAuth(w, req)

	if string(forwarded) != body {
		t.Errorf("Expected caller body forwarded untouched, got %s", forwarded)
	}
}

func TestFetchCSRF_RelaysSetCookie(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/csrf/" {
			t.Errorf("Expected /api/auth/csrf/, got %s", r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "fresh-token", Path: "/"})
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"detail": "CSRF cookie set"}`))
	}))
	defer upstream.Close()

	h := newTestHandler(upstream.URL, upstream.URL)

	req := httptest.NewRequest("GET", "/api/auth/csrf/", nil)
	w := httptest.NewRecorder()
	h.FetchCSRF(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	setCookie := w.Result().Header.Values("Set-Cookie")
	if len(setCookie) != 1 || !strings.Contains(setCookie[0], "csrftoken=fresh-token") {
		t.Errorf("Expected csrftoken Set-Cookie relayed, got %v", setCookie)
	}
}

func TestFetchCSRF_UnreachableReturns502(t *testing.T) {
	h := newTestHandler(deadServerURL(), deadServerURL())

	req := httptest.NewRequest("GET", "/api/auth/csrf/", nil)
	w := httptest.NewRecorder()
	h.FetchCSRF(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", w.Code)
	}
}

func TestRelay_DefaultsContentTypeToJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No explicit Content-Type; Go would sniff, so force it empty
		w.Header()["Content-Type"] = nil
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	h := newTestHandler(upstream.URL, upstream.URL)

	req := httptest.NewRequest("DELETE", "/api/auth/session", nil)
	w := httptest.NewRecorder()
	h.SessionDelete(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 relayed, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected default application/json, got %q", got)
	}
}

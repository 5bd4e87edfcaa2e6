// ABOUTME: HTTP client for the Kilexep web gateway API
// ABOUTME: Attaches CSRF headers to mutating calls and normalizes error responses

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

// Client is the API client for the Kilexep web gateway. The cookie jar is
// explicit (never ambient) so session state is injectable and testable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	jar        http.CookieJar
	group      singleflight.Group

	// sleep is the backoff primitive for the CSRF bootstrap; injectable
	// so tests can run the retry loop without real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a client for the gateway at baseURL. A nil jar gets a fresh
// in-memory cookie jar.
func New(baseURL string, jar http.CookieJar) *Client {
	if jar == nil {
		jar, _ = cookiejar.New(nil)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		jar:   jar,
		sleep: sleepCtx,
	}
}

// APIError is a non-2xx gateway response with a best-effort human message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Request performs an API call against the gateway and returns the raw
// response body. Mutating verbs carry the X-CSRFToken header whenever a
// csrftoken cookie is present; if absent the header is simply omitted and
// the request attempted anyway. Non-2xx responses become *APIError.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	isJSONBody := false
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
		isJSONBody = true
	case io.Reader:
		reader = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		isJSONBody = true
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if isJSONBody {
		req.Header.Set("Content-Type", "application/json")
	}

	sentCSRF := false
	if isMutating(method) {
		if token := c.CSRFToken(); token != "" {
			req.Header.Set("X-CSRFToken", token)
			sentCSRF = true
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("API request failed",
			"path", path,
			"method", method,
			"sent_csrf", sentCSRF,
			"has_csrf_cookie", c.CSRFToken() != "",
			"status", resp.StatusCode,
			"body", string(respBody),
		)
		return respBody, &APIError{
			Status:  resp.StatusCode,
			Message: extractErrorMessage(resp, respBody),
		}
	}

	return respBody, nil
}

// isMutating reports whether a method requires the CSRF header.
func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// extractErrorMessage picks a human-readable message from an error
// response: the message field, then the error field, then "API <status>".
// Non-JSON bodies are used verbatim.
func extractErrorMessage(resp *http.Response, body []byte) string {
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if text := strings.TrimSpace(string(body)); text != "" {
			return text
		}
		return fmt.Sprintf("API %d", resp.StatusCode)
	}

	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return msg
	}
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		return msg
	}
	return fmt.Sprintf("API %d", resp.StatusCode)
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// baseCookieURL returns the URL cookies are scoped to.
func (c *Client) baseCookieURL() *url.URL {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return &url.URL{Scheme: "http", Host: "localhost"}
	}
	return u
}

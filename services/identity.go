// ABOUTME: HTTP client for the django-allauth identity backend
// ABOUTME: Forwards browser requests verbatim and relays raw responses

package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ForwardHeaders are the browser-derived headers relayed to the identity
// backend on every forwarded call.
type ForwardHeaders struct {
	Cookie    string // raw Cookie header, passed through unmodified
	CSRFToken string // resolved anti-forgery token, may be empty
	Origin    string // forwarded as both Origin and Referer
}

// UpstreamResponse is the identity backend's reply, unparsed. The gateway
// never reinterprets success or failure; it relays status and body as-is.
type UpstreamResponse struct {
	Status      int
	Body        []byte
	ContentType string
	SetCookie   []string // relayed verbatim so the session cookie lands on our origin
}

// IdentityClient talks to the identity backend at a fixed internal URL.
type IdentityClient struct {
	baseURL string
	client  *http.Client
}

// NewIdentityClient creates a client for the identity backend.
func NewIdentityClient(baseURL string, timeout time.Duration) *IdentityClient {
	return &IdentityClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
			// The backend's redirects are part of the browser contract;
			// relay them rather than following them server-side.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Forward issues a request to the identity backend with the given method,
// path, raw body, and relayed headers.
func (c *IdentityClient) Forward(ctx context.Context, method, path string, body []byte, hdr ForwardHeaders) (*UpstreamResponse, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if hdr.Cookie != "" {
		req.Header.Set("Cookie", hdr.Cookie)
	}
	// Always present on mutating calls, even when empty: the backend
	// distinguishes a missing header from a blank one.
	if method != http.MethodGet && method != http.MethodHead {
		req.Header.Set("X-CSRFToken", hdr.CSRFToken)
	} else if hdr.CSRFToken != "" {
		req.Header.Set("X-CSRFToken", hdr.CSRFToken)
	}
	if hdr.Origin != "" {
		req.Header.Set("Origin", hdr.Origin)
		req.Header.Set("Referer", hdr.Origin)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity response: %w", err)
	}

	return &UpstreamResponse{
		Status:      resp.StatusCode,
		Body:        respBody,
		ContentType: resp.Header.Get("Content-Type"),
		SetCookie:   resp.Header.Values("Set-Cookie"),
	}, nil
}

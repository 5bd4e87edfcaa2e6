// ABOUTME: CSRF token store and best-effort bootstrap routine
// ABOUTME: Bounded retry loop that guarantees a csrftoken cookie before mutating calls

package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

const csrfCookieName = "csrftoken"

// csrfAttempts bounds the bootstrap loop; backoff grows 250ms per attempt.
const (
	csrfAttempts    = 3
	csrfBackoffStep = 250 * time.Millisecond
)

// CSRFToken returns the URL-decoded csrftoken cookie value, or empty
// string when no token cookie exists. Never fails.
func (c *Client) CSRFToken() string {
	for _, ck := range c.jar.Cookies(c.baseCookieURL()) {
		if ck.Name != csrfCookieName {
			continue
		}
		decoded, err := url.QueryUnescape(ck.Value)
		if err != nil {
			return ck.Value
		}
		return decoded
	}
	return ""
}

// EnsureCSRF makes a best effort to obtain a csrftoken cookie before any
// mutating call: up to 3 attempts against the token endpoint with
// 250ms/500ms backoff between them, stopping immediately once a token
// appears or ctx is cancelled. Failure to obtain a token is deliberately
// silent -- a later mutating request will omit the header and surface the
// backend's rejection as an ordinary request failure. Concurrent callers
// share a single bootstrap run.
func (c *Client) EnsureCSRF(ctx context.Context) {
	c.group.Do("ensure-csrf", func() (interface{}, error) {
		for attempt := 0; attempt < csrfAttempts; attempt++ {
			if c.CSRFToken() != "" {
				return nil, nil
			}

			// Best-effort: the fetch sets the cookie via Set-Cookie on
			// the jar; failures are ignored
			c.fetchCSRF(ctx)

			if ctx.Err() != nil {
				return nil, nil
			}
			// No sleep after the final attempt; give up silently
			if attempt == csrfAttempts-1 {
				break
			}
			if err := c.sleep(ctx, time.Duration(attempt+1)*csrfBackoffStep); err != nil {
				return nil, nil
			}
		}
		return nil, nil
	})
}

// fetchCSRF performs one GET against the token endpoint, ignoring the
// response body; only the Set-Cookie side effect matters.
func (c *Client) fetchCSRF(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/csrf/", nil)
	if err != nil {
		return
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

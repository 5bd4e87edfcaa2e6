// ABOUTME: Session status resolver and navigation guards
// ABOUTME: Derives normalized auth state from the identity session; never throws

package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/kilexep/web-gateway/models"
)

// Navigation targets returned by the guards.
const (
	RedirectHome           = "/"
	RedirectLogin          = "/login"
	RedirectCompleteSignup = "/signup/complete"
)

// GetAuthStatus derives the normalized auth view from the identity
// session. Any failure -- network error, non-2xx, unauthenticated -- maps
// to logged-out; this function never returns an error.
func (c *Client) GetAuthStatus(ctx context.Context) models.AuthStatus {
	body, err := c.Request(ctx, http.MethodGet, "/api/_allauth/browser/v1/auth/session", nil)
	if err != nil {
		return models.AuthStatus{LoggedIn: false}
	}

	if !gjson.GetBytes(body, "meta.is_authenticated").Bool() {
		return models.AuthStatus{LoggedIn: false}
	}

	user := gjson.GetBytes(body, "data.user")
	if !user.Exists() {
		return models.AuthStatus{LoggedIn: false}
	}

	return models.AuthStatus{
		LoggedIn: true,
		User: &models.User{
			ID:      user.Get("id").String(),
			Name:    user.Get("display").String(),
			Email:   user.Get("email").String(),
			Picture: user.Get("picture").String(),
		},
		// Assumed complete whenever a user object exists; the backend
		// does not report an explicit flag
		RegistrationCompleted: true,
	}
}

// RequireAuth is the guard protected pages call. It returns the auth
// status plus a navigation target: /login when not logged in,
// /signup/complete when completion is required but missing, empty string
// when access is allowed.
func (c *Client) RequireAuth(ctx context.Context, completedRequired bool) (*models.AuthStatus, string) {
	status := c.GetAuthStatus(ctx)

	if !status.LoggedIn {
		return nil, RedirectLogin
	}
	if completedRequired && !status.RegistrationCompleted {
		return nil, RedirectCompleteSignup
	}
	return &status, ""
}

// RedirectIfAuthenticated is the inverse guard used by login/signup pages:
// fully signed-up users are sent home.
func (c *Client) RedirectIfAuthenticated(ctx context.Context) (bool, string) {
	status := c.GetAuthStatus(ctx)
	if status.LoggedIn && status.RegistrationCompleted {
		return true, RedirectHome
	}
	return false, ""
}

// Logout deletes the identity session. Failures are logged, never
// surfaced: the caller always navigates to the site root so the visible
// state reflects "logged out" even if server-side cleanup partially
// failed.
func (c *Client) Logout(ctx context.Context) string {
	c.EnsureCSRF(ctx)

	if _, err := c.Request(ctx, http.MethodDelete, "/api/_allauth/browser/v1/auth/session", nil); err != nil {
		slog.Warn("Logout failed", "error", err)
	}
	return RedirectHome
}

// ABOUTME: Auth-related types shared between gateway handlers and the client library
// ABOUTME: Session status, user identity, and error response shapes

package models

// User is the identity backend's view of an authenticated user.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// AuthStatus is the normalized session view derived from the identity
// backend. It is computed fresh on every check and never persisted.
type AuthStatus struct {
	LoggedIn bool  `json:"logged_in"`
	User     *User `json:"user,omitempty"`
	// RegistrationCompleted is assumed true whenever a user object exists
	// on the session; the backend does not expose an explicit flag.
	RegistrationCompleted bool `json:"registration_completed,omitempty"`
}

// ErrorResponse is the gateway's JSON error shape.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

// UnavailableResponse is returned when a state-changing auth operation
// cannot reach the identity backend.
type UnavailableResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

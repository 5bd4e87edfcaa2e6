// ABOUTME: Declarative route table for gateway endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/user/status")
	Handler http.HandlerFunc // Handler function
	Auth    bool             // Uses the stricter auth rate limit bucket
}

// Routes returns all gateway routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/health", Handler: h.Health},

		// Identity proxy (django-allauth headless)
		{Method: http.MethodPost, Path: "/api/_allauth/browser/v1/auth/login", Handler: h.Login, Auth: true},
		{Method: http.MethodPost, Path: "/api/_allauth/browser/v1/auth/signup", Handler: h.Signup, Auth: true},
		{Method: http.MethodGet, Path: "/api/_allauth/browser/v1/auth/session", Handler: h.SessionRead},
		{Method: http.MethodDelete, Path: "/api/_allauth/browser/v1/auth/session", Handler: h.SessionDelete, Auth: true},
		{Method: http.MethodGet, Path: "/api/auth/csrf", Handler: h.FetchCSRF},
		{Method: http.MethodGet, Path: "/api/auth/csrf/", Handler: h.FetchCSRF},
		{Method: http.MethodPost, Path: "/api/auth/google", Handler: h.GoogleAuth, Auth: true},
		{Method: http.MethodPost, Path: "/api/auth/complete-signup", Handler: h.CompleteSignup, Auth: true},
		{Method: http.MethodGet, Path: "/api/user/status", Handler: h.UserStatus},

		// Automation jobs
		{Method: http.MethodPost, Path: "/api/start_job", Handler: h.StartJob},
		{Method: http.MethodGet, Path: "/api/job_status/{jobId}", Handler: h.JobStatus},

		// Demo workflow
		{Method: http.MethodPost, Path: "/api/analyze-onboarding", Handler: h.AnalyzeOnboarding},
		{Method: http.MethodPost, Path: "/api/analyze-trend-keywords", Handler: h.AnalyzeTrendKeywords},
		{Method: http.MethodPost, Path: "/api/generate-content-topics", Handler: h.GenerateTopics},
		{Method: http.MethodPost, Path: "/api/generate-content", Handler: h.GenerateContent},
	}
}

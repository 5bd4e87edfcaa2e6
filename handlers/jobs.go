// ABOUTME: Job submission and status endpoints for the automation backend
// ABOUTME: Validates credentials locally, then relays the backend's job contract

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/kilexep/web-gateway/models"
)

// StartJob submits an automation run. Missing credentials fail fast with
// 400 before any call to the job backend.
func (h *Handler) StartJob(w http.ResponseWriter, r *http.Request) {
	var req models.StartJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusInternalServerError, models.StartJobResponse{
			Success: false,
			Error:   models.MsgJobStartError,
		})
		return
	}

	if req.NaverID == "" || req.NaverPW == "" {
		h.writeJSON(w, http.StatusBadRequest, models.StartJobResponse{
			Success: false,
			Error:   models.MsgJobCredentialsRequired,
		})
		return
	}

	if h.jobs == nil {
		h.writeJSON(w, http.StatusInternalServerError, models.StartJobResponse{
			Success: false,
			Error:   models.MsgJobStartError,
		})
		return
	}

	status, body, err := h.jobs.StartJob(r.Context(), req.NaverID, req.NaverPW)
	if err != nil {
		slog.Error("Job submission failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, models.StartJobResponse{
			Success: false,
			Error:   models.MsgJobStartError,
		})
		return
	}

	if status < 200 || status >= 300 {
		h.writeJSON(w, http.StatusInternalServerError, models.StartJobResponse{
			Success: false,
			Error:   stringOr(gjson.GetBytes(body, "error"), models.MsgJobStartBackendFailed),
		})
		return
	}

	if !gjson.GetBytes(body, "success").Bool() {
		h.writeJSON(w, http.StatusInternalServerError, models.StartJobResponse{
			Success: false,
			Error:   stringOr(gjson.GetBytes(body, "error"), models.MsgJobStartFailed),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, models.StartJobResponse{
		Success: true,
		JobID:   gjson.GetBytes(body, "job_id").String(),
		Message: models.MsgJobStarted,
	})
}

// JobStatus relays the backend's job snapshot for one poll tick.
func (h *Handler) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobId")
	if jobID == "" {
		h.writeJSON(w, http.StatusBadRequest, models.StartJobResponse{
			Success: false,
			Error:   models.MsgJobIDRequired,
		})
		return
	}

	if h.jobs == nil {
		h.writeJSON(w, http.StatusInternalServerError, models.StartJobResponse{
			Success: false,
			Error:   models.MsgJobStatusError,
		})
		return
	}

	status, body, err := h.jobs.JobStatus(r.Context(), jobID)
	if err != nil {
		slog.Error("Job status check failed", "job_id", jobID, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, models.StartJobResponse{
			Success: false,
			Error:   models.MsgJobStatusError,
		})
		return
	}

	if status < 200 || status >= 300 {
		h.writeJSON(w, http.StatusInternalServerError, models.StartJobResponse{
			Success: false,
			Error:   stringOr(gjson.GetBytes(body, "error"), models.MsgJobStatusBackendFailed),
		})
		return
	}

	// Snapshot passes through untouched; the backend owns job state
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// stringOr returns the gjson result's string value, or fallback when the
// field is absent or empty.
func stringOr(res gjson.Result, fallback string) string {
	if res.Exists() && res.String() != "" {
		return res.String()
	}
	return fallback
}

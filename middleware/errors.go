// ABOUTME: JSON error writer shared by middleware responses
// ABOUTME: Keeps middleware errors in the same shape handlers emit

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/kilexep/web-gateway/models"
)

// writeJSONError emits the gateway's standard JSON error shape.
func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

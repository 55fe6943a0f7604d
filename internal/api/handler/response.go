package handler

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as the JSON response body with the given status. The
// status line is already committed when encoding starts, so an encoding
// failure can only surface in the body, not change the status.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

// ErrorResponse is the uniform error body of the API. Error carries a
// stable machine-readable code (invalid_request, video_not_found,
// api_key_missing, upstream_error, internal_error); Message is the
// human-readable detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error writes an ErrorResponse with the given status.
func Error(w http.ResponseWriter, status int, code string, message string) {
	JSON(w, status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

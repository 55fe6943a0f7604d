package handler

import "net/http"

type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health. It reports process liveness only: a degraded
// cache backend does not fail it, since feeds keep serving through the
// local fallback.
func Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

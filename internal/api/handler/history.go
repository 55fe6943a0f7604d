package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tubewatch/tubewatch/internal/domain/model"
	"github.com/tubewatch/tubewatch/internal/usecase"
)

// HistoryHandler serves the watch-history endpoints.
type HistoryHandler struct {
	svc usecase.HistoryService
}

func NewHistoryHandler(svc usecase.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

type RecordWatchRequest struct {
	Video *model.Video `json:"video"`
}

// Record handles POST /v1/history
func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordWatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Video == nil || req.Video.ID == "" {
		Error(w, http.StatusBadRequest, "invalid_video", "Video data is required")
		return
	}

	if err := h.svc.RecordWatch(r.Context(), *req.Video); err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to record watch")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /v1/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePositiveInt(r.URL.Query().Get("page"), 1)
	pageSize := parsePositiveInt(r.URL.Query().Get("pageSize"), 0)

	result, err := h.svc.List(r.Context(), page, pageSize)
	if err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to load watch history")
		return
	}

	JSON(w, http.StatusOK, result)
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tubewatch/tubewatch/internal/usecase"
	"github.com/tubewatch/tubewatch/internal/youtube"
)

// VideoHandlerConfig holds the request defaults applied when the caller
// omits a parameter. BaseURL, when set, makes next-page links absolute.
type VideoHandlerConfig struct {
	DefaultRegion     string
	DefaultMaxResults int
	BaseURL           string
}

// VideoHandler serves the video feed, detail and related endpoints.
type VideoHandler struct {
	svc usecase.VideoService
	cfg VideoHandlerConfig
}

func NewVideoHandler(svc usecase.VideoService, cfg VideoHandlerConfig) *VideoHandler {
	if cfg.DefaultRegion == "" {
		cfg.DefaultRegion = "SK"
	}
	if cfg.DefaultMaxResults <= 0 {
		cfg.DefaultMaxResults = 12
	}
	return &VideoHandler{svc: svc, cfg: cfg}
}

// List handles GET /v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseQueryParams(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	list, err := h.svc.ListVideos(r.Context(), params)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// Diagnostic counters from the aggregation run; observability only.
	w.Header().Set("X-Total-Videos-Found", strconv.Itoa(list.Stats.TotalFound))
	w.Header().Set("X-Pages-Fetched", strconv.Itoa(list.Stats.PagesFetched))
	w.Header().Set("X-Videos-Returned", strconv.Itoa(list.Stats.Returned))

	if list.NextPageToken != "" {
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, h.nextPageURL(r, list.NextPageToken)))
	}

	JSON(w, http.StatusOK, list)
}

// nextPageURL rebuilds the request URL with the continuation token,
// absolute when a base URL is configured.
func (h *VideoHandler) nextPageURL(r *http.Request, token string) string {
	u := *r.URL
	q := u.Query()
	q.Set("pageToken", token)
	u.RawQuery = q.Encode()

	if h.cfg.BaseURL != "" {
		return strings.TrimRight(h.cfg.BaseURL, "/") + u.RequestURI()
	}
	return u.RequestURI()
}

// Get handles GET /v1/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID is required")
		return
	}

	video, err := h.svc.GetVideo(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, video)
}

// Related handles GET /v1/videos/{id}/related
func (h *VideoHandler) Related(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID is required")
		return
	}

	videos, err := h.svc.RelatedVideos(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"items": videos})
}

// Categories handles GET /v1/categories
func (h *VideoHandler) Categories(w http.ResponseWriter, r *http.Request) {
	regionCode := r.URL.Query().Get("regionCode")
	if regionCode == "" {
		regionCode = h.cfg.DefaultRegion
	}

	categories, err := h.svc.ListCategories(r.Context(), regionCode)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"items": categories})
}

func (h *VideoHandler) parseQueryParams(r *http.Request) (usecase.QueryParams, error) {
	q := r.URL.Query()

	params := usecase.QueryParams{
		RegionCode:      q.Get("regionCode"),
		MaxResults:      h.cfg.DefaultMaxResults,
		IncludeShorts:   q.Get("includeShorts") == "true",
		SearchQuery:     q.Get("searchQuery"),
		Order:           q.Get("order"),
		SafeSearch:      q.Get("safeSearch"),
		PublishedAfter:  q.Get("publishedAfter"),
		PublishedBefore: q.Get("publishedBefore"),
		PageToken:       q.Get("pageToken"),
	}
	if params.RegionCode == "" {
		params.RegionCode = h.cfg.DefaultRegion
	}
	if params.Order == "" {
		params.Order = usecase.OrderMostPopular
	}

	if raw := q.Get("maxResults"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return usecase.QueryParams{}, fmt.Errorf("maxResults must be a positive integer")
		}
		params.MaxResults = n
	}
	return params, nil
}

func handleServiceError(w http.ResponseWriter, err error) {
	var statusErr *youtube.StatusError
	switch {
	case errors.Is(err, usecase.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", "Video not found")
	case errors.Is(err, youtube.ErrMissingAPIKey):
		Error(w, http.StatusInternalServerError, "api_key_missing", "YouTube API key is not configured")
	case errors.As(err, &statusErr):
		Error(w, http.StatusBadGateway, "upstream_error",
			fmt.Sprintf("YouTube API responded with status %d", statusErr.StatusCode))
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

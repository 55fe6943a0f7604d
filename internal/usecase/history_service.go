package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tubewatch/tubewatch/internal/domain/model"
	"github.com/tubewatch/tubewatch/internal/infrastructure/cache"
)

// historyKey is the single constant cache key the whole history list
// lives under.
const historyKey = "watch_history"

// HistoryPage is one page of the watch history, newest first.
type HistoryPage struct {
	Items   []model.HistoryEntry `json:"items"`
	HasMore bool                 `json:"hasMore"`
}

// HistoryService records watched videos and serves them back in reverse
// chronological order. The list is best-effort: it lives in the cache, is
// capped, and entries age out after the configured window.
type HistoryService interface {
	RecordWatch(ctx context.Context, video model.Video) error
	List(ctx context.Context, page, pageSize int) (*HistoryPage, error)
}

type HistoryServiceConfig struct {
	MaxItems        int
	Window          time.Duration
	DefaultPageSize int
}

func DefaultHistoryServiceConfig() HistoryServiceConfig {
	return HistoryServiceConfig{
		MaxItems:        500,
		Window:          30 * 24 * time.Hour,
		DefaultPageSize: 50,
	}
}

type historyService struct {
	store cache.Store
	cfg   HistoryServiceConfig
	now   func() time.Time
}

func NewHistoryService(store cache.Store, cfg HistoryServiceConfig) HistoryService {
	def := DefaultHistoryServiceConfig()
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = def.MaxItems
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = def.DefaultPageSize
	}
	return &historyService{store: store, cfg: cfg, now: time.Now}
}

// RecordWatch prepends the video to the history, or moves its existing
// entry to the front on a rewatch. Entries older than the window are
// pruned before every write and the list is capped at MaxItems.
func (s *historyService) RecordWatch(ctx context.Context, video model.Video) error {
	now := s.now()
	history := s.load(ctx)

	cutoff := now.Add(-s.cfg.Window)
	pruned := history[:0]
	for _, entry := range history {
		if entry.WatchedAt.After(cutoff) && entry.VideoID != video.ID {
			pruned = append(pruned, entry)
		}
	}

	entry := model.HistoryEntry{
		VideoID:      video.ID,
		Title:        video.Title,
		ThumbnailURL: video.Thumbnails.High.URL,
		ChannelID:    video.Channel.ID,
		ChannelTitle: video.Channel.Title,
		WatchedAt:    now,
		PublishedAt:  video.PublishedAt,
	}

	history = append([]model.HistoryEntry{entry}, pruned...)
	if len(history) > s.cfg.MaxItems {
		history = history[:s.cfg.MaxItems]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	// TTL matches the pruning window: an untouched list simply ages out.
	return s.store.Set(ctx, historyKey, string(data), s.cfg.Window)
}

// List pages through the history, newest first.
func (s *historyService) List(ctx context.Context, page, pageSize int) (*HistoryPage, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.cfg.DefaultPageSize
	}

	history := s.load(ctx)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(history) {
		start = len(history)
	}
	hasMore := len(history) > end
	if end > len(history) {
		end = len(history)
	}

	items := history[start:end]
	if items == nil {
		items = []model.HistoryEntry{}
	}
	return &HistoryPage{Items: items, HasMore: hasMore}, nil
}

// load reads the stored list. Any cache or decode failure degrades to an
// empty history, never an error.
func (s *historyService) load(ctx context.Context) []model.HistoryEntry {
	cached, err := s.store.Get(ctx, historyKey)
	if err != nil {
		return nil
	}
	var history []model.HistoryEntry
	if err := json.Unmarshal([]byte(cached), &history); err != nil {
		slog.Warn("discarding undecodable watch history", "error", err)
		return nil
	}
	return history
}

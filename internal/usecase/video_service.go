package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tubewatch/tubewatch/internal/domain/model"
	"github.com/tubewatch/tubewatch/internal/infrastructure/cache"
	"github.com/tubewatch/tubewatch/internal/infrastructure/metrics"
	"github.com/tubewatch/tubewatch/internal/youtube"
)

// ErrVideoNotFound is returned when the upstream knows nothing about the
// requested video id.
var ErrVideoNotFound = errors.New("video not found")

const (
	videoKeyPrefix      = "video:"
	relatedKeyPrefix    = "related:"
	categoriesKeyPrefix = "videoCategories:"
)

// UpstreamClient is the subset of the YouTube client the services need.
type UpstreamClient interface {
	Trending(ctx context.Context, regionCode, pageToken string) (*youtube.Page, error)
	Search(ctx context.Context, query youtube.SearchQuery) (*youtube.Page, error)
	Videos(ctx context.Context, ids []string) ([]youtube.RawVideo, error)
	Channel(ctx context.Context, channelID string) (*youtube.ChannelInfo, error)
	Categories(ctx context.Context, regionCode string) ([]youtube.Category, error)
}

// FetchStats are the diagnostic counters of one aggregation run. They are
// useful for observability and tests, not for correctness.
type FetchStats struct {
	TotalFound   int `json:"totalFound"`
	PagesFetched int `json:"pagesFetched"`
	Returned     int `json:"returned"`
}

type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// VideoList is the assembled result of one feed request.
type VideoList struct {
	Items         []model.Video `json:"items"`
	PageInfo      PageInfo      `json:"pageInfo"`
	NextPageToken string        `json:"nextPageToken,omitempty"`
	Stats         FetchStats    `json:"stats"`
}

// VideoService is the request/response contract toward the UI layer.
type VideoService interface {
	// ListVideos assembles a feed of trending or searched videos,
	// filtering out short-form items unless they were asked for.
	ListVideos(ctx context.Context, params QueryParams) (*VideoList, error)

	// GetVideo fetches one fully normalized video record.
	GetVideo(ctx context.Context, videoID string) (*model.Video, error)

	// RelatedVideos finds videos similar to the given one, derived from
	// its tags, title and description.
	RelatedVideos(ctx context.Context, videoID string) ([]model.Video, error)

	// ListCategories lists the video categories defined for a region.
	ListCategories(ctx context.Context, regionCode string) ([]model.Category, error)
}

// VideoServiceConfig holds the tunable policy of the service.
type VideoServiceConfig struct {
	KeyPrefix         string
	TTL               TTLPolicy
	VideoTTL          time.Duration
	ChannelTTL        time.Duration
	RelatedTTL        time.Duration
	CategoriesTTL     time.Duration
	MaxAttempts       int
	ShortsThreshold   int
	RelatedMaxResults int
}

func DefaultVideoServiceConfig() VideoServiceConfig {
	return VideoServiceConfig{
		KeyPrefix:         "youtube",
		TTL:               DefaultTTLPolicy(),
		VideoTTL:          time.Hour,
		ChannelTTL:        2 * time.Hour,
		RelatedTTL:        30 * time.Minute,
		CategoriesTTL:     time.Hour,
		MaxAttempts:       5,
		ShortsThreshold:   DefaultShortsThreshold,
		RelatedMaxResults: 15,
	}
}

type videoService struct {
	upstream UpstreamClient
	store    cache.Store
	cfg      VideoServiceConfig
	shorts   ShortsDetector
	norm     *normalizer
	sfGroup  singleflight.Group
}

func NewVideoService(upstream UpstreamClient, store cache.Store, cfg VideoServiceConfig) VideoService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultVideoServiceConfig().MaxAttempts
	}
	return &videoService{
		upstream: upstream,
		store:    store,
		cfg:      cfg,
		shorts:   NewShortsDetector(cfg.ShortsThreshold),
		norm: &normalizer{
			upstream:   upstream,
			store:      store,
			channelTTL: cfg.ChannelTTL,
		},
	}
}

// ListVideos implements the cache-aside pattern around the pagination
// aggregator. Concurrent requests for the same key are coalesced.
func (s *videoService) ListVideos(ctx context.Context, params QueryParams) (*VideoList, error) {
	if params.MaxResults <= 0 {
		params.MaxResults = 12
	}
	if params.Order == "" {
		params.Order = OrderMostPopular
	}

	key := BuildCacheKey(s.cfg.KeyPrefix, params.cacheFields())

	if cached, err := s.store.Get(ctx, key); err == nil {
		var list VideoList
		if err := json.Unmarshal([]byte(cached), &list); err == nil {
			return &list, nil
		}
		slog.Warn("discarding undecodable cached feed", "key", key)
	}

	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.aggregate(ctx, params, key)
	})
	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}
	if err != nil {
		return nil, err
	}
	return result.(*VideoList), nil
}

// aggregate drives the upstream page by page, normalizing and filtering,
// until the requested result count is met, the upstream is exhausted, or
// the attempt ceiling is hit.
func (s *videoService) aggregate(ctx context.Context, params QueryParams, key string) (*VideoList, error) {
	var accumulated []model.Video
	attempts := 0
	pageToken := params.PageToken

	for len(accumulated) < params.MaxResults && attempts < s.cfg.MaxAttempts {
		page, err := s.fetchPage(ctx, params, pageToken)
		if err != nil {
			return nil, err
		}

		for _, raw := range page.Items {
			video, err := s.norm.Normalize(ctx, raw)
			if err != nil {
				return nil, err
			}
			if !params.IncludeShorts &&
				s.shorts.IsShortForm(video.ContentDetails.Duration, video.Title, video.Description) {
				continue
			}
			accumulated = append(accumulated, video)
		}

		attempts++
		pageToken = page.NextPageToken
		if pageToken == "" || len(accumulated) >= params.MaxResults {
			break
		}
	}

	metrics.FeedPagesFetched.Observe(float64(attempts))

	totalFound := len(accumulated)
	if len(accumulated) > params.MaxResults {
		accumulated = accumulated[:params.MaxResults]
	}
	if accumulated == nil {
		accumulated = []model.Video{}
	}

	list := &VideoList{
		Items: accumulated,
		PageInfo: PageInfo{
			TotalResults:   len(accumulated),
			ResultsPerPage: params.MaxResults,
		},
		NextPageToken: pageToken,
		Stats: FetchStats{
			TotalFound:   totalFound,
			PagesFetched: attempts,
			Returned:     len(accumulated),
		},
	}

	s.writeCache(ctx, key, list, s.cfg.TTL.For(params))
	return list, nil
}

// fetchPage routes to the trending listing for default queries and to
// search otherwise. Search results carry only a snippet, so they are
// hydrated through a batch details lookup before use.
func (s *videoService) fetchPage(ctx context.Context, params QueryParams, pageToken string) (*youtube.Page, error) {
	if params.SearchQuery == "" && params.Order == OrderMostPopular {
		return s.upstream.Trending(ctx, params.RegionCode, pageToken)
	}

	page, err := s.upstream.Search(ctx, youtube.SearchQuery{
		RegionCode:      params.RegionCode,
		Query:           params.SearchQuery,
		Order:           params.Order,
		SafeSearch:      params.SafeSearch,
		PublishedAfter:  params.PublishedAfter,
		PublishedBefore: params.PublishedBefore,
		PageToken:       pageToken,
	})
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return page, nil
	}

	ids := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ID.String())
	}
	items, err := s.upstream.Videos(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &youtube.Page{
		Items:         items,
		NextPageToken: page.NextPageToken,
		PageInfo:      page.PageInfo,
	}, nil
}

// GetVideo fetches one video's details through the cache.
func (s *videoService) GetVideo(ctx context.Context, videoID string) (*model.Video, error) {
	key := videoKeyPrefix + videoID

	if cached, err := s.store.Get(ctx, key); err == nil {
		var video model.Video
		if err := json.Unmarshal([]byte(cached), &video); err == nil {
			return &video, nil
		}
		slog.Warn("discarding undecodable cached video", "video_id", videoID)
	}

	result, err, _ := s.sfGroup.Do(key, func() (any, error) {
		items, err := s.upstream.Videos(ctx, []string{videoID})
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, ErrVideoNotFound
		}

		video, err := s.norm.Normalize(ctx, items[0])
		if err != nil {
			return nil, err
		}

		s.writeCache(ctx, key, video, s.cfg.VideoTTL)
		return &video, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Video), nil
}

func (s *videoService) writeCache(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("failed to serialize cache value", "key", key, "error", err)
		return
	}
	if err := s.store.Set(ctx, key, string(data), ttl); err != nil {
		slog.Warn("failed to write cache", "key", key, "error", err)
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	YouTube YouTubeConfig
	Cache   CacheConfig
	Feed    FeedConfig
	History HistoryConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
	// BaseURL is the externally visible base URL of this service,
	// used when responses carry absolute links back to it.
	BaseURL string `envconfig:"API_BASE_URL" default:""`
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	// MaxFailures consecutive errors mark the backend degraded;
	// RetryCooldown must pass before a reconnect is attempted.
	MaxFailures   int           `envconfig:"REDIS_MAX_FAILURES" default:"5"`
	RetryCooldown time.Duration `envconfig:"REDIS_RETRY_COOLDOWN" default:"3m"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type YouTubeConfig struct {
	APIKey  string        `envconfig:"YOUTUBE_API_KEY" default:""`
	BaseURL string        `envconfig:"YOUTUBE_BASE_URL" default:"https://www.googleapis.com/youtube/v3"`
	Timeout time.Duration `envconfig:"YOUTUBE_TIMEOUT" default:"15s"`
	// PageSize is capped at 50 by the upstream API.
	PageSize int `envconfig:"YOUTUBE_PAGE_SIZE" default:"50"`
}

// CacheConfig holds the TTL classes. Search results churn less than
// algorithmic trending lists, so SearchTTL >= PopularTTL >= TrendingTTL.
type CacheConfig struct {
	KeyPrefix     string        `envconfig:"CACHE_KEY_PREFIX" default:"youtube"`
	SearchTTL     time.Duration `envconfig:"CACHE_SEARCH_TTL" default:"30m"`
	PopularTTL    time.Duration `envconfig:"CACHE_POPULAR_TTL" default:"20m"`
	TrendingTTL   time.Duration `envconfig:"CACHE_TRENDING_TTL" default:"15m"`
	VideoTTL      time.Duration `envconfig:"CACHE_VIDEO_TTL" default:"1h"`
	ChannelTTL    time.Duration `envconfig:"CACHE_CHANNEL_TTL" default:"2h"`
	RelatedTTL    time.Duration `envconfig:"CACHE_RELATED_TTL" default:"30m"`
	CategoriesTTL time.Duration `envconfig:"CACHE_CATEGORIES_TTL" default:"1h"`
}

type FeedConfig struct {
	DefaultRegion     string `envconfig:"FEED_DEFAULT_REGION" default:"SK"`
	DefaultMaxResults int    `envconfig:"FEED_DEFAULT_MAX_RESULTS" default:"12"`
	MaxAttempts       int    `envconfig:"FEED_MAX_ATTEMPTS" default:"5"`
	// ShortsThreshold is the duration (seconds) at or below which a video
	// counts as short-form. A heuristic, not YouTube's authoritative cutoff.
	ShortsThreshold   int `envconfig:"FEED_SHORTS_THRESHOLD" default:"79"`
	RelatedMaxResults int `envconfig:"FEED_RELATED_MAX_RESULTS" default:"15"`
}

type HistoryConfig struct {
	MaxItems        int           `envconfig:"HISTORY_MAX_ITEMS" default:"500"`
	Window          time.Duration `envconfig:"HISTORY_WINDOW" default:"720h"`
	DefaultPageSize int           `envconfig:"HISTORY_DEFAULT_PAGE_SIZE" default:"50"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

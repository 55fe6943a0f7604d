package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/tubewatch/tubewatch/internal/api/handler"
	"github.com/tubewatch/tubewatch/internal/api/middleware"
	"github.com/tubewatch/tubewatch/internal/config"
	"github.com/tubewatch/tubewatch/internal/infrastructure/cache"
	"github.com/tubewatch/tubewatch/internal/usecase"
	"github.com/tubewatch/tubewatch/internal/youtube"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("instance", uuid.NewString()[:8]))
	slog.SetDefault(logger)

	if cfg.YouTube.APIKey == "" {
		logger.Warn("YOUTUBE_API_KEY is not set, upstream-dependent endpoints will fail")
	}

	store := buildCacheStore(cfg, logger)

	ytClient := youtube.NewClient(youtube.ClientOptions{
		APIKey:   cfg.YouTube.APIKey,
		BaseURL:  cfg.YouTube.BaseURL,
		PageSize: cfg.YouTube.PageSize,
		HTTPClient: &http.Client{
			Timeout: cfg.YouTube.Timeout,
		},
	})

	videoSvc := usecase.NewVideoService(ytClient, store, usecase.VideoServiceConfig{
		KeyPrefix: cfg.Cache.KeyPrefix,
		TTL: usecase.TTLPolicy{
			Search:   cfg.Cache.SearchTTL,
			Popular:  cfg.Cache.PopularTTL,
			Trending: cfg.Cache.TrendingTTL,
		},
		VideoTTL:          cfg.Cache.VideoTTL,
		ChannelTTL:        cfg.Cache.ChannelTTL,
		RelatedTTL:        cfg.Cache.RelatedTTL,
		CategoriesTTL:     cfg.Cache.CategoriesTTL,
		MaxAttempts:       cfg.Feed.MaxAttempts,
		ShortsThreshold:   cfg.Feed.ShortsThreshold,
		RelatedMaxResults: cfg.Feed.RelatedMaxResults,
	})

	historySvc := usecase.NewHistoryService(store, usecase.HistoryServiceConfig{
		MaxItems:        cfg.History.MaxItems,
		Window:          cfg.History.Window,
		DefaultPageSize: cfg.History.DefaultPageSize,
	})

	r := setupRouter(logger, videoSvc, historySvc, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.Int("port", cfg.Server.Port),
			slog.String("base_url", cfg.Server.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// buildCacheStore wires the shared Redis backend behind the local
// fallback, or runs memory-only when Redis is disabled.
func buildCacheStore(cfg *config.Config, logger *slog.Logger) cache.Store {
	fallback := cache.NewMemoryStore()

	if !cfg.Redis.Enabled {
		logger.Info("redis disabled, using in-process cache only")
		return fallback
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	logger.Info("using redis cache backend", slog.String("addr", cfg.Redis.Addr()))

	return cache.NewFailoverStore(cache.NewRedisStore(client), fallback, cache.FailoverOptions{
		MaxFailures: cfg.Redis.MaxFailures,
		Cooldown:    cfg.Redis.RetryCooldown,
	})
}

func setupRouter(
	logger *slog.Logger,
	videoSvc usecase.VideoService,
	historySvc usecase.HistoryService,
	cfg *config.Config,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	videoHandler := handler.NewVideoHandler(videoSvc, handler.VideoHandlerConfig{
		DefaultRegion:     cfg.Feed.DefaultRegion,
		DefaultMaxResults: cfg.Feed.DefaultMaxResults,
		BaseURL:           cfg.Server.BaseURL,
	})
	historyHandler := handler.NewHistoryHandler(historySvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/videos", videoHandler.List)
		r.Get("/videos/{id}", videoHandler.Get)
		r.Get("/videos/{id}/related", videoHandler.Related)
		r.Get("/categories", videoHandler.Categories)
		r.Get("/history", historyHandler.List)
		r.Post("/history", historyHandler.Record)
	})

	return r
}

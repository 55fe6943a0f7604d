package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tubewatch/tubewatch/internal/domain/model"
)

// ListCategories serves the region-scoped category listing through the
// cache. The listing is tiny and near-static, so it gets its own long TTL
// keyed only by region.
func (s *videoService) ListCategories(ctx context.Context, regionCode string) ([]model.Category, error) {
	key := categoriesKeyPrefix + regionCode

	if cached, err := s.store.Get(ctx, key); err == nil {
		var categories []model.Category
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
		slog.Warn("discarding undecodable cached categories", "region_code", regionCode)
	}

	result, err, _ := s.sfGroup.Do(key, func() (any, error) {
		raw, err := s.upstream.Categories(ctx, regionCode)
		if err != nil {
			return nil, err
		}

		categories := make([]model.Category, 0, len(raw))
		for _, c := range raw {
			categories = append(categories, model.Category{
				ID:         c.ID,
				Title:      c.Title,
				Assignable: c.Assignable,
			})
		}

		s.writeCache(ctx, key, categories, s.cfg.CategoriesTTL)
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.Category), nil
}

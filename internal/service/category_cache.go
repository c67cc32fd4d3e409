package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trivia-api/internal/cache"
	"trivia-api/internal/domain"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"

	"go.uber.org/zap"
)

var categoryListKey = cache.GenerateCacheKey("category", "list", "all")

type cachedCategory struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// cachedCategoryRepository is a read-through cache in front of the category store.
// Cache failures are logged and fall back to the store.
type cachedCategoryRepository struct {
	next domain.CategoryRepository
	kv   domain.Cache
	ttl  time.Duration
}

// NewCachedCategoryRepository wraps next with kv. A nil kv returns next unchanged.
func NewCachedCategoryRepository(next domain.CategoryRepository, kv domain.Cache, ttl time.Duration) domain.CategoryRepository {
	if kv == nil {
		return next
	}
	return &cachedCategoryRepository{next: next, kv: kv, ttl: ttl}
}

func (r *cachedCategoryRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	raw, err := r.kv.Get(ctx, categoryListKey)
	switch {
	case err == nil:
		var entries []cachedCategory
		jsonErr := json.Unmarshal([]byte(raw), &entries)
		if jsonErr == nil {
			metrics.CategoryCache.WithLabelValues("hit").Inc()
			categories := make([]*domain.Category, len(entries))
			for i, e := range entries {
				categories[i] = &domain.Category{ID: e.ID, Type: e.Type}
			}
			return categories, nil
		}
		logger.Get().Warn("Discarding malformed category cache entry", zap.Error(jsonErr))
		metrics.CategoryCache.WithLabelValues("error").Inc()
	case errors.Is(err, domain.ErrCacheMiss):
		metrics.CategoryCache.WithLabelValues("miss").Inc()
	default:
		logger.Get().Warn("Category cache read failed", zap.String("key", categoryListKey), zap.Error(err))
		metrics.CategoryCache.WithLabelValues("error").Inc()
	}

	categories, err := r.next.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]cachedCategory, len(categories))
	for i, c := range categories {
		entries[i] = cachedCategory{ID: c.ID, Type: c.Type}
	}
	if payload, err := json.Marshal(entries); err == nil {
		if err := r.kv.Set(ctx, categoryListKey, string(payload), r.ttl); err != nil {
			logger.Get().Warn("Category cache write failed", zap.String("key", categoryListKey), zap.Error(err))
		}
	}
	return categories, nil
}

// FindCategory scans the cached list; the category set is small and read-only.
func (r *cachedCategoryRepository) FindCategory(ctx context.Context, id int64) (*domain.Category, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

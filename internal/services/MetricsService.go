package services

import (
	"context"

	"ihsearch/internal/apperr"
	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/storage"
)

type MetricsServiceInterface interface {
	SearchByEngagementRate(ctx context.Context, platform string, min, max *float64, req pagination.Request) (Page[*models.Metrics], error)
	SearchByFollowersCount(ctx context.Context, platform string, min, max *int64, req pagination.Request) (Page[*models.Metrics], error)
}

// MetricsService answers the raw per-platform metric range queries.
type MetricsService struct {
	store storage.StoreInterface
}

func NewMetricsService(store storage.StoreInterface) MetricsServiceInterface {
	return &MetricsService{store: store}
}

func requirePlatform(platform string) (models.Platform, error) {
	if platform == "" {
		return "", apperr.MissingParameter("platform")
	}
	p, err := models.ParsePlatform(platform)
	if err != nil {
		return "", apperr.InvalidEnumValue("platform", platform)
	}
	return p, nil
}

func (s *MetricsService) SearchByEngagementRate(ctx context.Context, platform string, min, max *float64, req pagination.Request) (Page[*models.Metrics], error) {
	p, err := requirePlatform(platform)
	if err != nil {
		return Page[*models.Metrics]{}, err
	}
	if min == nil {
		return Page[*models.Metrics]{}, apperr.MissingParameter("min_engagement_rate")
	}
	records, err := s.store.Metrics().QueryEngagementRate(ctx, p, storage.Range[float64]{Min: *min, Max: max})
	if err != nil {
		return Page[*models.Metrics]{}, storeError("Failed to search by engagement rate", err)
	}
	return toPage(pagination.Materialized(records), req)
}

func (s *MetricsService) SearchByFollowersCount(ctx context.Context, platform string, min, max *int64, req pagination.Request) (Page[*models.Metrics], error) {
	p, err := requirePlatform(platform)
	if err != nil {
		return Page[*models.Metrics]{}, err
	}
	if min == nil {
		return Page[*models.Metrics]{}, apperr.MissingParameter("min_followers")
	}
	records, err := s.store.Metrics().QueryFollowers(ctx, p, storage.Range[int64]{Min: *min, Max: max})
	if err != nil {
		return Page[*models.Metrics]{}, storeError("Failed to search by followers count", err)
	}
	return toPage(pagination.Materialized(records), req)
}

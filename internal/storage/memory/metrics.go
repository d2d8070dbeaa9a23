package memory

import (
	"context"
	"sort"
	"time"

	"ihsearch/internal/models"
	"ihsearch/internal/storage"
)

type metricsRepo struct {
	s *Store
}

// selectMetrics returns copies of matching rows sorted by less, ties broken by id.
func (r *metricsRepo) selectMetrics(ctx context.Context, op string, match func(*models.Metrics) bool, less func(a, b *models.Metrics) bool) ([]*models.Metrics, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		r.s.observe(op, start, err)
		return nil, err
	}
	r.s.mu.RLock()
	out := make([]*models.Metrics, 0)
	for _, m := range r.s.metricsRows {
		if match(m) {
			c := *m
			out = append(out, &c)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if less != nil {
			if less(out[i], out[j]) {
				return true
			}
			if less(out[j], out[i]) {
				return false
			}
		}
		return out[i].ID < out[j].ID
	})
	r.s.observe(op, start, nil)
	return out, nil
}

func (r *metricsRepo) QueryFollowers(ctx context.Context, platform models.Platform, rng storage.Range[int64]) ([]*models.Metrics, error) {
	return r.selectMetrics(ctx, "metrics_query_followers",
		func(m *models.Metrics) bool { return m.Platform == platform && rng.Contains(m.TotalFollowers) },
		func(a, b *models.Metrics) bool { return a.TotalFollowers < b.TotalFollowers })
}

func (r *metricsRepo) QueryEngagementRate(ctx context.Context, platform models.Platform, rng storage.Range[float64]) ([]*models.Metrics, error) {
	return r.selectMetrics(ctx, "metrics_query_engagement",
		func(m *models.Metrics) bool { return m.Platform == platform && rng.Contains(m.EngagementRate) },
		func(a, b *models.Metrics) bool { return a.EngagementRate < b.EngagementRate })
}

func (r *metricsRepo) QueryByInfluencer(ctx context.Context, influencerID string) ([]*models.Metrics, error) {
	return r.selectMetrics(ctx, "metrics_query_influencer",
		func(m *models.Metrics) bool { return m.InfluencerID == influencerID },
		func(a, b *models.Metrics) bool { return a.Platform < b.Platform })
}

func (r *metricsRepo) QueryByPlatform(ctx context.Context, platform models.Platform) ([]*models.Metrics, error) {
	return r.selectMetrics(ctx, "metrics_query_platform",
		func(m *models.Metrics) bool { return m.Platform == platform },
		func(a, b *models.Metrics) bool { return a.TotalFollowers < b.TotalFollowers })
}

func (r *metricsRepo) ScanAll(ctx context.Context) ([]*models.Metrics, error) {
	return r.selectMetrics(ctx, "metrics_scan", func(*models.Metrics) bool { return true }, nil)
}

package memory

import (
	"context"
	"strings"
	"time"

	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/storage"
)

type influencerRepo struct {
	s *Store
}

func influencerID(inf *models.Influencer) string { return inf.InfluencerID }

// selectInfluencers returns copies of the matching rows ordered by id.
func (r *influencerRepo) selectInfluencers(match func(*models.Influencer) bool) []*models.Influencer {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.Influencer, 0)
	for _, id := range sortedKeys(r.s.influencers) {
		inf := r.s.influencers[id]
		if match == nil || match(inf) {
			out = append(out, cloneInfluencer(inf))
		}
	}
	return out
}

func (r *influencerRepo) pageOf(ctx context.Context, op string, match func(*models.Influencer) bool, req storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		r.s.observe(op, start, err)
		return pagination.Result[*models.Influencer]{}, err
	}
	items, next, err := page(r.selectInfluencers(match), "influencer_id", influencerID, req)
	r.s.observe(op, start, err)
	if err != nil {
		return pagination.Result[*models.Influencer]{}, err
	}
	return pagination.CursorPaginated(items, next), nil
}

func (r *influencerRepo) QueryByID(ctx context.Context, id string, req storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	return r.pageOf(ctx, "influencer_query_id", func(inf *models.Influencer) bool {
		return inf.InfluencerID == id
	}, req)
}

// ScanByName matches case-sensitively, like a contains() filter expression.
func (r *influencerRepo) ScanByName(ctx context.Context, name string, req storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	return r.pageOf(ctx, "influencer_scan_name", func(inf *models.Influencer) bool {
		return strings.Contains(inf.Name, name)
	}, req)
}

func (r *influencerRepo) QueryByLocation(ctx context.Context, location string, req storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	return r.pageOf(ctx, "influencer_query_location", func(inf *models.Influencer) bool {
		return inf.Location == location
	}, req)
}

func (r *influencerRepo) QueryByGender(ctx context.Context, gender models.Gender, req storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	return r.pageOf(ctx, "influencer_query_gender", func(inf *models.Influencer) bool {
		return inf.Gender == gender
	}, req)
}

func (r *influencerRepo) QueryByCategory(ctx context.Context, category models.Category) ([]*models.Influencer, error) {
	start := time.Now()
	err := ctx.Err()
	r.s.observe("influencer_query_category", start, err)
	if err != nil {
		return nil, err
	}
	return r.selectInfluencers(func(inf *models.Influencer) bool { return inf.Category == category }), nil
}

func (r *influencerRepo) ScanPage(ctx context.Context, req storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	return r.pageOf(ctx, "influencer_scan", nil, req)
}

func (r *influencerRepo) ScanAll(ctx context.Context) ([]*models.Influencer, error) {
	start := time.Now()
	err := ctx.Err()
	r.s.observe("influencer_scan", start, err)
	if err != nil {
		return nil, err
	}
	return r.selectInfluencers(nil), nil
}

func (r *influencerRepo) BatchGet(ctx context.Context, ids []string) ([]*models.Influencer, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		r.s.observe("batch_get_item", start, err)
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	out := make([]*models.Influencer, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if inf, ok := r.s.influencers[id]; ok {
			out = append(out, cloneInfluencer(inf))
		}
	}
	r.s.observe("batch_get_item", start, nil)
	return out, nil
}

func (r *influencerRepo) Get(ctx context.Context, id string) (*models.Influencer, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		r.s.observe("influencer_get", start, err)
		return nil, err
	}
	r.s.mu.RLock()
	inf, ok := r.s.influencers[id]
	r.s.mu.RUnlock()
	r.s.observe("influencer_get", start, nil)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneInfluencer(inf), nil
}

package memory

import (
	"context"
	"time"

	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/storage"
)

type postRepo struct {
	s *Store
}

func postID(p *models.Post) string { return p.PostID }

func (r *postRepo) Put(ctx context.Context, post *models.Post) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		r.s.observe("post_put", start, err)
		return err
	}
	r.s.mu.Lock()
	r.s.posts[post.PostID] = post.Clone()
	r.s.mu.Unlock()
	r.s.dirty.Store(true)
	r.s.observe("post_put", start, nil)
	r.s.reportCounts()
	return nil
}

func (r *postRepo) Get(ctx context.Context, id string) (*models.Post, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		r.s.observe("post_get", start, err)
		return nil, err
	}
	r.s.mu.RLock()
	p, ok := r.s.posts[id]
	r.s.mu.RUnlock()
	r.s.observe("post_get", start, nil)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		r.s.observe("post_delete", start, err)
		return err
	}
	r.s.mu.Lock()
	_, ok := r.s.posts[id]
	delete(r.s.posts, id)
	r.s.mu.Unlock()
	r.s.observe("post_delete", start, nil)
	if !ok {
		return storage.ErrNotFound
	}
	r.s.dirty.Store(true)
	r.s.reportCounts()
	return nil
}

func (r *postRepo) pageOf(ctx context.Context, op string, match func(*models.Post) bool, req storage.PageRequest) (pagination.Result[*models.Post], error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		r.s.observe(op, start, err)
		return pagination.Result[*models.Post]{}, err
	}
	r.s.mu.RLock()
	rows := make([]*models.Post, 0)
	for _, id := range sortedKeys(r.s.posts) {
		p := r.s.posts[id]
		if match == nil || match(p) {
			rows = append(rows, p.Clone())
		}
	}
	r.s.mu.RUnlock()

	items, next, err := page(rows, "post_id", postID, req)
	r.s.observe(op, start, err)
	if err != nil {
		return pagination.Result[*models.Post]{}, err
	}
	return pagination.CursorPaginated(items, next), nil
}

func (r *postRepo) ScanPage(ctx context.Context, req storage.PageRequest) (pagination.Result[*models.Post], error) {
	return r.pageOf(ctx, "post_scan", nil, req)
}

func (r *postRepo) QueryByInfluencer(ctx context.Context, influencerID string, req storage.PageRequest) (pagination.Result[*models.Post], error) {
	return r.pageOf(ctx, "post_query_influencer", func(p *models.Post) bool { return p.InfluencerID == influencerID }, req)
}

func (r *postRepo) QueryByURL(ctx context.Context, url string, req storage.PageRequest) (pagination.Result[*models.Post], error) {
	return r.pageOf(ctx, "post_query_url", func(p *models.Post) bool { return p.URL == url }, req)
}

func (r *postRepo) QueryByPlatform(ctx context.Context, platform models.Platform, req storage.PageRequest) (pagination.Result[*models.Post], error) {
	return r.pageOf(ctx, "post_query_platform", func(p *models.Post) bool { return p.Platform == platform }, req)
}

package storage

import (
	"context"
	"errors"

	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
)

var (
	// ErrNotFound indicates the requested record is missing.
	ErrNotFound = errors.New("storage: not found")
)

// PageRequest asks the store for one page. Limit 0 lets the store pick its own page size.
type PageRequest struct {
	Limit    int
	StartKey pagination.StoreKey
}

// Range is an inclusive numeric bound. A nil Max is open ended.
type Range[T int64 | float64] struct {
	Min T
	Max *T
}

func (r Range[T]) Contains(v T) bool {
	if v < r.Min {
		return false
	}
	return r.Max == nil || v <= *r.Max
}

type InfluencerRepository interface {
	QueryByID(ctx context.Context, id string, page PageRequest) (pagination.Result[*models.Influencer], error)
	ScanByName(ctx context.Context, name string, page PageRequest) (pagination.Result[*models.Influencer], error)
	QueryByLocation(ctx context.Context, location string, page PageRequest) (pagination.Result[*models.Influencer], error)
	QueryByGender(ctx context.Context, gender models.Gender, page PageRequest) (pagination.Result[*models.Influencer], error)
	// QueryByCategory drains every page of the category index.
	QueryByCategory(ctx context.Context, category models.Category) ([]*models.Influencer, error)
	ScanPage(ctx context.Context, page PageRequest) (pagination.Result[*models.Influencer], error)
	ScanAll(ctx context.Context) ([]*models.Influencer, error)
	// BatchGet loads the given ids, silently skipping unknown ones. Order is not preserved.
	BatchGet(ctx context.Context, ids []string) ([]*models.Influencer, error)
	Get(ctx context.Context, id string) (*models.Influencer, error)
}

type MetricsRepository interface {
	QueryFollowers(ctx context.Context, platform models.Platform, r Range[int64]) ([]*models.Metrics, error)
	QueryEngagementRate(ctx context.Context, platform models.Platform, r Range[float64]) ([]*models.Metrics, error)
	QueryByInfluencer(ctx context.Context, influencerID string) ([]*models.Metrics, error)
	QueryByPlatform(ctx context.Context, platform models.Platform) ([]*models.Metrics, error)
	ScanAll(ctx context.Context) ([]*models.Metrics, error)
}

type PostRepository interface {
	Put(ctx context.Context, post *models.Post) error
	Get(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	ScanPage(ctx context.Context, page PageRequest) (pagination.Result[*models.Post], error)
	QueryByInfluencer(ctx context.Context, influencerID string, page PageRequest) (pagination.Result[*models.Post], error)
	QueryByURL(ctx context.Context, url string, page PageRequest) (pagination.Result[*models.Post], error)
	QueryByPlatform(ctx context.Context, platform models.Platform, page PageRequest) (pagination.Result[*models.Post], error)
}

type StoreInterface interface {
	Influencers() InfluencerRepository
	Metrics() MetricsRepository
	Posts() PostRepository
	Ping(ctx context.Context) error
	Driver() string
	Start() error
	Stop() error
}

type transientError struct {
	err error
}

func (e transientError) Error() string { return e.err.Error() }

func (e transientError) Unwrap() error { return e.err }

// NewTransientError marks err as retryable.
func NewTransientError(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err: err}
}

func IsTransient(err error) bool {
	var te transientError
	return errors.As(err, &te)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ihsearch/internal/apperr"
	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
)

func metricIDs(ms []*models.Metrics) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func TestSearchByEngagementRate(t *testing.T) {
	svc := NewMetricsService(newMemoryStore(t))
	ctx := context.Background()

	page, err := svc.SearchByEngagementRate(ctx, "tiktok", float64p(1.0), nil, pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"m-3", "m-2"}, metricIDs(page.Items))

	page, err = svc.SearchByEngagementRate(ctx, "TIKTOK", float64p(1.0), float64p(5.0), pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"m-3"}, metricIDs(page.Items))

	page, err = svc.SearchByEngagementRate(ctx, "tiktok", float64p(0), nil, pagination.Request{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.NotEmpty(t, page.NextToken)
}

func TestSearchByFollowersCount(t *testing.T) {
	svc := NewMetricsService(newMemoryStore(t))
	ctx := context.Background()

	page, err := svc.SearchByFollowersCount(ctx, "instagram", int64p(1000), int64p(12000), pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"m-4", "m-1"}, metricIDs(page.Items))
}

func TestMetricsSearch_Validation(t *testing.T) {
	svc := NewMetricsService(newMemoryStore(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		kind    apperr.Kind
		message string
	}{
		{
			name:    "missing platform",
			call:    func() error { _, err := svc.SearchByFollowersCount(ctx, "", int64p(1), nil, pagination.Request{}); return err },
			kind:    apperr.KindMissingParameter,
			message: "No platform parameter provided",
		},
		{
			name:    "invalid platform",
			call:    func() error { _, err := svc.SearchByEngagementRate(ctx, "vine", float64p(1), nil, pagination.Request{}); return err },
			kind:    apperr.KindInvalidEnumValue,
			message: "Invalid platform: vine",
		},
		{
			name:    "missing min followers",
			call:    func() error { _, err := svc.SearchByFollowersCount(ctx, "tiktok", nil, int64p(5), pagination.Request{}); return err },
			kind:    apperr.KindMissingParameter,
			message: "No min_followers parameter provided",
		},
		{
			name:    "missing min engagement",
			call:    func() error { _, err := svc.SearchByEngagementRate(ctx, "tiktok", nil, nil, pagination.Request{}); return err },
			kind:    apperr.KindMissingParameter,
			message: "No min_engagement_rate parameter provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e *apperr.Error
			require.True(t, errors.As(tt.call(), &e))
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.message, e.Message)
		})
	}
}

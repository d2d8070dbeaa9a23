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
	"ihsearch/internal/search"
	"ihsearch/internal/storage"
	"ihsearch/internal/storage/memory"
	"ihsearch/internal/structures"
	"ihsearch/internal/testutil"
)

func newMemoryStore(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.New(structures.MemoryConfig{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)
	store.Load(&memory.Snapshot{
		Influencers: []*models.Influencer{
			{InfluencerID: "i-1", Name: "John Doe", Location: "Berlin", Gender: models.GenderMale, Category: models.CategoryFitness,
				Platforms: []models.PlatformProfile{{Platform: models.PlatformInstagram, Handle: "@john", ProfileImgURL: "john.png", Bio: "lifts"}}},
			{InfluencerID: "i-2", Name: "Johnny Walker", Location: "Paris", Gender: models.GenderMale, Category: models.CategoryFood,
				Platforms: []models.PlatformProfile{{Platform: models.PlatformTikTok, Handle: "@johnny"}}},
			{InfluencerID: "i-3", Name: "Jane Roe", Location: "Berlin", Gender: models.GenderFemale, Category: models.CategoryFitness,
				Platforms: []models.PlatformProfile{{Platform: models.PlatformTikTok, Handle: "@jane"}, {Platform: models.PlatformInstagram, Handle: "@jane.ig"}}},
			{InfluencerID: "i-4", Name: "Max Power", Location: "Rome", Gender: models.GenderOther, Category: models.CategoryTech},
		},
		Metrics: []*models.Metrics{
			{ID: "m-1", InfluencerID: "i-1", Platform: models.PlatformInstagram, TotalFollowers: 12000, EngagementRate: 2.5, TotalLikes: 1500, TotalPosts: 10},
			{ID: "m-2", InfluencerID: "i-2", Platform: models.PlatformTikTok, TotalFollowers: 500, EngagementRate: 8.0, TotalLikes: 90, TotalPosts: 3},
			{ID: "m-3", InfluencerID: "i-3", Platform: models.PlatformTikTok, TotalFollowers: 90000, EngagementRate: 4.0, TotalLikes: 11900000, TotalPosts: 40},
			{ID: "m-4", InfluencerID: "i-3", Platform: models.PlatformInstagram, TotalFollowers: 1000, EngagementRate: 1.0, TotalLikes: 10, TotalPosts: 2},
		},
	})
	return store
}

func newInfluencerService(t *testing.T) (InfluencerServiceInterface, *memory.Store) {
	store := newMemoryStore(t)
	return NewInfluencerService(store, testutil.NewMockCache(), &testutil.MockLogger{}), store
}

func infIDs(infs []*models.Influencer) []string {
	out := make([]string, 0, len(infs))
	for _, inf := range infs {
		out = append(out, inf.InfluencerID)
	}
	return out
}

func int64p(v int64) *int64 { return &v }

func float64p(v float64) *float64 { return &v }

func TestSearchByName_StoreCursorRoundTrip(t *testing.T) {
	svc, _ := newInfluencerService(t)
	ctx := context.Background()

	page, err := svc.SearchByName(ctx, "John", pagination.Request{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1"}, infIDs(page.Items))
	require.NotEmpty(t, page.NextToken)

	key, err := pagination.DecodeStoreKey(page.NextToken)
	require.NoError(t, err)
	assert.Equal(t, pagination.StoreKey{"influencer_id": "i-1"}, key)

	page, err = svc.SearchByName(ctx, "John", pagination.Request{Limit: 1, Token: page.NextToken})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-2"}, infIDs(page.Items))
	assert.Empty(t, page.NextToken)
}

func TestStoreSearches_RejectOffsetTokens(t *testing.T) {
	svc, _ := newInfluencerService(t)
	token := pagination.Encode(pagination.OffsetCursor(2))

	_, err := svc.SearchByLocation(context.Background(), "Berlin", pagination.Request{Token: token})
	assert.True(t, apperr.Is(err, apperr.KindInvalidToken))

	_, err = svc.SearchByName(context.Background(), "John", pagination.Request{Token: "%%%"})
	assert.True(t, apperr.Is(err, apperr.KindInvalidToken))

	_, err = svc.SearchByName(context.Background(), "John", pagination.Request{Limit: -1})
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	_, err = svc.SearchByName(context.Background(), "John", pagination.Request{Limit: 1 << 32})
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}

func TestSearch_MissingParameters(t *testing.T) {
	svc, _ := newInfluencerService(t)
	ctx := context.Background()
	req := pagination.Request{}

	cases := map[string]func() error{
		"No influencer_id parameter provided": func() error { _, err := svc.SearchByID(ctx, "", req); return err },
		"No name parameter provided":          func() error { _, err := svc.SearchByName(ctx, "", req); return err },
		"No location parameter provided":      func() error { _, err := svc.SearchByLocation(ctx, "", req); return err },
		"No platform parameter provided":      func() error { _, err := svc.SearchByPlatform(ctx, "", req); return err },
		"No category parameter provided":      func() error { _, err := svc.SearchByCategory(ctx, "", req); return err },
		"No gender parameter provided":        func() error { _, err := svc.SearchByGender(ctx, "", req); return err },
	}
	for message, call := range cases {
		t.Run(message, func(t *testing.T) {
			var e *apperr.Error
			require.True(t, errors.As(call(), &e))
			assert.Equal(t, apperr.KindMissingParameter, e.Kind)
			assert.Equal(t, message, e.Message)
		})
	}
}

func TestSearch_InvalidEnums(t *testing.T) {
	svc, _ := newInfluencerService(t)
	ctx := context.Background()

	_, err := svc.SearchByPlatform(ctx, "myspace", pagination.Request{})
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Invalid platform: myspace", e.Message)

	_, err = svc.SearchByGender(ctx, "robot", pagination.Request{})
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Invalid gender: robot", e.Message)

	_, err = svc.SearchByCategory(ctx, "fitness,knitting", pagination.Request{})
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindInvalidEnumValue, e.Kind)
	assert.Equal(t, "Invalid category: KNITTING", e.Message)
}

func TestSearchByID(t *testing.T) {
	svc, _ := newInfluencerService(t)
	page, err := svc.SearchByID(context.Background(), "i-3", pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-3"}, infIDs(page.Items))
	assert.Empty(t, page.NextToken)
}

func TestSearchByPlatform_CaseInsensitiveFilteredPage(t *testing.T) {
	svc, _ := newInfluencerService(t)
	ctx := context.Background()

	page, err := svc.SearchByPlatform(ctx, "tiktok", pagination.Request{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-2"}, infIDs(page.Items))
	require.NotEmpty(t, page.NextToken)

	page, err = svc.SearchByPlatform(ctx, "tiktok", pagination.Request{Limit: 2, Token: page.NextToken})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-3"}, infIDs(page.Items))
	assert.Empty(t, page.NextToken)
}

func TestSearchByCategory_MergesAndPagesByOffset(t *testing.T) {
	svc, _ := newInfluencerService(t)
	ctx := context.Background()

	page, err := svc.SearchByCategory(ctx, "fitness, tech,FITNESS", pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1", "i-3", "i-4"}, infIDs(page.Items))
	assert.Empty(t, page.NextToken)

	page, err = svc.SearchByCategory(ctx, "fitness,tech", pagination.Request{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1", "i-3"}, infIDs(page.Items))
	c, err := pagination.DecodeAs(page.NextToken, pagination.KindOffset)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Offset)

	page, err = svc.SearchByCategory(ctx, "fitness,tech", pagination.Request{Limit: 2, Token: page.NextToken})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-4"}, infIDs(page.Items))
	assert.Empty(t, page.NextToken)

	storeToken := pagination.Encode(pagination.StoreKeyCursor(pagination.StoreKey{"influencer_id": "i-1"}))
	_, err = svc.SearchByCategory(ctx, "fitness", pagination.Request{Token: storeToken})
	assert.True(t, apperr.Is(err, apperr.KindInvalidToken))
}

func TestSearchByGender(t *testing.T) {
	svc, _ := newInfluencerService(t)
	page, err := svc.SearchByGender(context.Background(), "female", pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-3"}, infIDs(page.Items))
}

func TestSearchByFilters(t *testing.T) {
	svc, _ := newInfluencerService(t)
	ctx := context.Background()

	page, err := svc.SearchByFilters(ctx, FilterQuery{Name: "john"}, pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1", "i-2"}, infIDs(page.Items))

	page, err = svc.SearchByFilters(ctx, FilterQuery{Name: "j", Location: "Berlin"}, pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1", "i-3"}, infIDs(page.Items))

	page, err = svc.SearchByFilters(ctx, FilterQuery{InfluencerID: "i-2", Location: "Berlin"}, pagination.Request{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = svc.SearchByFilters(ctx, FilterQuery{InfluencerID: "missing"}, pagination.Request{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func cardIDs(cards []search.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestSearchInfluencers_InvalidPlatformIsEmptySuccess(t *testing.T) {
	svc, _ := newInfluencerService(t)
	page, err := svc.SearchInfluencers(context.Background(), InfluencerQuery{Platform: "myspace"}, pagination.Request{})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextToken)
}

func TestSearchInfluencers_IntersectsMetricIndexes(t *testing.T) {
	svc, _ := newInfluencerService(t)
	ctx := context.Background()

	page, err := svc.SearchInfluencers(ctx, InfluencerQuery{
		Platform:          "TIKTOK",
		MinFollowers:      int64p(100),
		MinEngagementRate: float64p(3.0),
		MaxEngagementRate: float64p(5.0),
	}, pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-3"}, cardIDs(page.Items))

	card := page.Items[0]
	assert.Equal(t, "Jane Roe", card.Name)
	assert.Equal(t, "4.0%", card.Engagement)
	assert.Equal(t, "91K", card.TotalFollowers)
	assert.Equal(t, int64(42), card.Posts)
	assert.Equal(t, []models.Platform{models.PlatformInstagram, models.PlatformTikTok}, card.Platforms)
	require.Len(t, card.Socials, 2)
	assert.Equal(t, "/tiktok.svg", card.Socials[0].Icon)
	assert.Equal(t, "11.9M", card.Socials[0].Likes)
}

func TestSearchInfluencers_EmptyIntersectionSkipsFetch(t *testing.T) {
	store := &countingStore{Store: newMemoryStore(t)}
	svc := NewInfluencerService(store, testutil.NewMockCache(), &testutil.MockLogger{})

	page, err := svc.SearchInfluencers(context.Background(), InfluencerQuery{
		Platform:          "tiktok",
		MaxFollowers:      int64p(600),
		MinEngagementRate: float64p(9.0),
	}, pagination.Request{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, store.influencerCalls)
}

func TestSearchInfluencers_ResidualFiltersAndOffsetPaging(t *testing.T) {
	svc, _ := newInfluencerService(t)
	ctx := context.Background()

	page, err := svc.SearchInfluencers(ctx, InfluencerQuery{Name: "JOHN"}, pagination.Request{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1"}, cardIDs(page.Items))
	require.NotEmpty(t, page.NextToken)

	page, err = svc.SearchInfluencers(ctx, InfluencerQuery{Name: "JOHN"}, pagination.Request{Limit: 1, Token: page.NextToken})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-2"}, cardIDs(page.Items))
	assert.Empty(t, page.NextToken)

	page, err = svc.SearchInfluencers(ctx, InfluencerQuery{Gender: "MALE", Location: "Berlin"}, pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1"}, cardIDs(page.Items))

	page, err = svc.SearchInfluencers(ctx, InfluencerQuery{Platform: "instagram"}, pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1", "i-3"}, cardIDs(page.Items))
}

func TestSearchInfluencers_CardWithoutMetrics(t *testing.T) {
	svc, _ := newInfluencerService(t)
	page, err := svc.SearchInfluencers(context.Background(), InfluencerQuery{Name: "max"}, pagination.Request{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	card := page.Items[0]
	assert.Equal(t, "0.0%", card.Engagement)
	assert.Equal(t, "0", card.Reach)
	assert.Equal(t, []models.Category{models.CategoryTech}, card.Categories)
	assert.Equal(t, "TECH", card.Tag)
	require.NotNil(t, card.Gender)
	assert.Equal(t, models.GenderOther, *card.Gender)
}

func TestSearchInfluencers_UsesMetricsCache(t *testing.T) {
	store := newMemoryStore(t)
	cache := testutil.NewMockCache()
	svc := NewInfluencerService(store, cache, &testutil.MockLogger{})

	_, err := svc.SearchInfluencers(context.Background(), InfluencerQuery{Name: "Doe"}, pagination.Request{})
	require.NoError(t, err)
	_, ok := cache.Get("metrics:i-1")
	require.True(t, ok)

	cache.Set("metrics:i-1", []byte(`[{"id":"m-x","influencer_id":"i-1","platform":"INSTAGRAM","total_followers":7}]`))
	page, err := svc.SearchInfluencers(context.Background(), InfluencerQuery{Name: "Doe"}, pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, "7", page.Items[0].TotalFollowers)
}

func TestSearchInfluencers_MetricsFailureStillReturnsCards(t *testing.T) {
	store := &countingStore{Store: newMemoryStore(t), metricsErr: errors.New("throttled")}
	logger := &testutil.MockLogger{}
	svc := NewInfluencerService(store, testutil.NewMockCache(), logger)

	page, err := svc.SearchInfluencers(context.Background(), InfluencerQuery{Name: "Doe"}, pagination.Request{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "0", page.Items[0].TotalFollowers)
	assert.Len(t, logger.Entries("error"), 1)
}

func TestSearchByMetrics(t *testing.T) {
	svc, _ := newInfluencerService(t)
	ctx := context.Background()

	page, err := svc.SearchByMetrics(ctx, MetricsQuery{
		Platform: "tiktok",
		Ranges: map[models.MetricField]MetricRange{
			models.FieldTotalFollowers: {Min: float64p(100)},
			models.FieldTotalLikes:     {Max: float64p(1000)},
		},
	}, pagination.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-2"}, infIDs(page.Items))

	page, err = svc.SearchByMetrics(ctx, MetricsQuery{
		Ranges: map[models.MetricField]MetricRange{models.FieldEngagementRate: {Min: float64p(2.0)}},
	}, pagination.Request{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"i-1", "i-2"}, infIDs(page.Items))
	assert.NotEmpty(t, page.NextToken)

	_, err = svc.SearchByMetrics(ctx, MetricsQuery{Platform: "myspace"}, pagination.Request{})
	assert.True(t, apperr.Is(err, apperr.KindInvalidEnumValue))

	_, err = svc.SearchByMetrics(ctx, MetricsQuery{
		Ranges: map[models.MetricField]MetricRange{"karma": {}},
	}, pagination.Request{})
	assert.True(t, apperr.Is(err, apperr.KindInvalidEnumValue))

	page, err = svc.SearchByMetrics(ctx, MetricsQuery{
		Ranges: map[models.MetricField]MetricRange{models.FieldTotalFollowers: {Min: float64p(1e9)}},
	}, pagination.Request{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestSearch_UpstreamFailureIsHidden(t *testing.T) {
	store := &countingStore{Store: newMemoryStore(t), influencerErr: errors.New("connection reset")}
	svc := NewInfluencerService(store, testutil.NewMockCache(), &testutil.MockLogger{})

	_, err := svc.SearchByName(context.Background(), "John", pagination.Request{})
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, apperr.KindUpstream, e.Kind)
	assert.Equal(t, "Failed to search by name", e.Message)

	_, err = svc.SearchInfluencers(context.Background(), InfluencerQuery{}, pagination.Request{})
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Failed to load influencers", e.Message)
}

// countingStore wraps the memory store to count influencer reads and inject failures.
type countingStore struct {
	*memory.Store
	influencerCalls int
	influencerErr   error
	metricsErr      error
}

func (c *countingStore) Influencers() storage.InfluencerRepository {
	return &countingInfluencers{InfluencerRepository: c.Store.Influencers(), parent: c}
}

func (c *countingStore) Metrics() storage.MetricsRepository {
	return &failingMetrics{MetricsRepository: c.Store.Metrics(), err: c.metricsErr}
}

type countingInfluencers struct {
	storage.InfluencerRepository
	parent *countingStore
}

func (c *countingInfluencers) ScanByName(ctx context.Context, name string, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
	c.parent.influencerCalls++
	if c.parent.influencerErr != nil {
		return pagination.Result[*models.Influencer]{}, c.parent.influencerErr
	}
	return c.InfluencerRepository.ScanByName(ctx, name, page)
}

func (c *countingInfluencers) ScanAll(ctx context.Context) ([]*models.Influencer, error) {
	c.parent.influencerCalls++
	if c.parent.influencerErr != nil {
		return nil, c.parent.influencerErr
	}
	return c.InfluencerRepository.ScanAll(ctx)
}

func (c *countingInfluencers) BatchGet(ctx context.Context, ids []string) ([]*models.Influencer, error) {
	c.parent.influencerCalls++
	if c.parent.influencerErr != nil {
		return nil, c.parent.influencerErr
	}
	return c.InfluencerRepository.BatchGet(ctx, ids)
}

type failingMetrics struct {
	storage.MetricsRepository
	err error
}

func (f *failingMetrics) QueryByInfluencer(ctx context.Context, influencerID string) ([]*models.Metrics, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.MetricsRepository.QueryByInfluencer(ctx, influencerID)
}

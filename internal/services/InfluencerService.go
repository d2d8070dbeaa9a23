package services

import (
	"context"
	"sort"

	json "github.com/goccy/go-json"

	"ihsearch/internal/apperr"
	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/providers"
	"ihsearch/internal/search"
	"ihsearch/internal/storage"
)

// FilterQuery is the input of searchByFilters. Every field is optional.
type FilterQuery struct {
	InfluencerID string
	Name         string
	Location     string
}

// InfluencerQuery is the input of the combined influencer search.
type InfluencerQuery struct {
	Name              string
	Location          string
	Gender            string
	Platform          string
	MinFollowers      *int64
	MaxFollowers      *int64
	MinEngagementRate *float64
	MaxEngagementRate *float64
}

func (q InfluencerQuery) hasFollowerBounds() bool {
	return q.MinFollowers != nil || q.MaxFollowers != nil
}

func (q InfluencerQuery) hasEngagementBounds() bool {
	return q.MinEngagementRate != nil || q.MaxEngagementRate != nil
}

// MetricRange bounds one metric inclusively. Nil bounds are open.
type MetricRange struct {
	Min *float64
	Max *float64
}

func (r MetricRange) contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	return r.Max == nil || v <= *r.Max
}

// MetricsQuery is the body of search_by_metrics.
type MetricsQuery struct {
	Ranges   map[models.MetricField]MetricRange
	Platform string
}

type InfluencerServiceInterface interface {
	SearchByID(ctx context.Context, id string, req pagination.Request) (Page[*models.Influencer], error)
	SearchByName(ctx context.Context, name string, req pagination.Request) (Page[*models.Influencer], error)
	SearchByLocation(ctx context.Context, location string, req pagination.Request) (Page[*models.Influencer], error)
	SearchByPlatform(ctx context.Context, platform string, req pagination.Request) (Page[*models.Influencer], error)
	SearchByCategory(ctx context.Context, categories string, req pagination.Request) (Page[*models.Influencer], error)
	SearchByGender(ctx context.Context, gender string, req pagination.Request) (Page[*models.Influencer], error)
	SearchByFilters(ctx context.Context, q FilterQuery, req pagination.Request) (Page[*models.Influencer], error)
	SearchInfluencers(ctx context.Context, q InfluencerQuery, req pagination.Request) (Page[search.Card], error)
	SearchByMetrics(ctx context.Context, q MetricsQuery, req pagination.Request) (Page[*models.Influencer], error)
}

type InfluencerService struct {
	store  storage.StoreInterface
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewInfluencerService(store storage.StoreInterface, cache providers.CacheProviderInterface, logger providers.Logger) InfluencerServiceInterface {
	return &InfluencerService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

func (s *InfluencerService) SearchByID(ctx context.Context, id string, req pagination.Request) (Page[*models.Influencer], error) {
	if id == "" {
		return Page[*models.Influencer]{}, apperr.MissingParameter("influencer_id")
	}
	return storeSearch(ctx, req, "Failed to search by ID", func(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
		return s.store.Influencers().QueryByID(ctx, id, page)
	})
}

func (s *InfluencerService) SearchByName(ctx context.Context, name string, req pagination.Request) (Page[*models.Influencer], error) {
	if name == "" {
		return Page[*models.Influencer]{}, apperr.MissingParameter("name")
	}
	return storeSearch(ctx, req, "Failed to search by name", func(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
		return s.store.Influencers().ScanByName(ctx, name, page)
	})
}

func (s *InfluencerService) SearchByLocation(ctx context.Context, location string, req pagination.Request) (Page[*models.Influencer], error) {
	if location == "" {
		return Page[*models.Influencer]{}, apperr.MissingParameter("location")
	}
	return storeSearch(ctx, req, "Failed to search by location", func(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
		return s.store.Influencers().QueryByLocation(ctx, location, page)
	})
}

// SearchByPlatform filters one scanned page in memory, so a page may come back
// shorter than the limit while a next token is still present.
func (s *InfluencerService) SearchByPlatform(ctx context.Context, platform string, req pagination.Request) (Page[*models.Influencer], error) {
	if platform == "" {
		return Page[*models.Influencer]{}, apperr.MissingParameter("platform")
	}
	p, err := models.ParsePlatform(platform)
	if err != nil {
		return Page[*models.Influencer]{}, apperr.InvalidEnumValue("platform", platform)
	}
	criteria := search.Criteria{Platform: string(p)}
	return storeSearch(ctx, req, "Failed to search by platform", func(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
		res, err := s.store.Influencers().ScanPage(ctx, page)
		if err != nil {
			return res, err
		}
		return pagination.CursorPaginated(search.Filter(res.Items(), criteria), res.Key()), nil
	})
}

// SearchByCategory accepts a comma separated list and merges the per-category
// index results, keeping the first occurrence of each influencer.
func (s *InfluencerService) SearchByCategory(ctx context.Context, categories string, req pagination.Request) (Page[*models.Influencer], error) {
	if categories == "" {
		return Page[*models.Influencer]{}, apperr.MissingParameter("category")
	}
	parsed, bad, err := models.ParseCategories(categories)
	if err != nil {
		return Page[*models.Influencer]{}, apperr.InvalidEnumValue("category", bad)
	}

	seen := make(map[string]struct{})
	merged := make([]*models.Influencer, 0)
	for _, c := range parsed {
		found, err := s.store.Influencers().QueryByCategory(ctx, c)
		if err != nil {
			return Page[*models.Influencer]{}, storeError("Failed to search by category", err)
		}
		for _, inf := range found {
			if _, dup := seen[inf.InfluencerID]; dup {
				continue
			}
			seen[inf.InfluencerID] = struct{}{}
			merged = append(merged, inf)
		}
	}
	return toPage(pagination.Materialized(merged), req)
}

func (s *InfluencerService) SearchByGender(ctx context.Context, gender string, req pagination.Request) (Page[*models.Influencer], error) {
	if gender == "" {
		return Page[*models.Influencer]{}, apperr.MissingParameter("gender")
	}
	g, err := models.ParseGender(gender)
	if err != nil {
		return Page[*models.Influencer]{}, apperr.InvalidEnumValue("gender", gender)
	}
	return storeSearch(ctx, req, "Failed to search by gender", func(ctx context.Context, page storage.PageRequest) (pagination.Result[*models.Influencer], error) {
		return s.store.Influencers().QueryByGender(ctx, g, page)
	})
}

// SearchByFilters looks the influencer up by id when one is given and scans
// the table otherwise; name and location narrow the result in memory.
func (s *InfluencerService) SearchByFilters(ctx context.Context, q FilterQuery, req pagination.Request) (Page[*models.Influencer], error) {
	const failure = "Failed to search by filters"

	var candidates []*models.Influencer
	if q.InfluencerID != "" {
		inf, err := s.store.Influencers().Get(ctx, q.InfluencerID)
		switch {
		case err == nil:
			candidates = []*models.Influencer{inf}
		case isNotFound(err):
			candidates = []*models.Influencer{}
		default:
			return Page[*models.Influencer]{}, storeError(failure, err)
		}
	} else {
		all, err := s.store.Influencers().ScanAll(ctx)
		if err != nil {
			return Page[*models.Influencer]{}, storeError(failure, err)
		}
		candidates = all
	}

	filtered := search.Filter(candidates, search.Criteria{Name: q.Name, Location: q.Location})
	return toPage(pagination.Materialized(filtered), req)
}

// SearchInfluencers narrows candidates through the metric indexes when a
// platform and bounds are given, filters the rest in memory and decorates the
// requested page with aggregated metrics. An unknown platform yields an empty page.
func (s *InfluencerService) SearchInfluencers(ctx context.Context, q InfluencerQuery, req pagination.Request) (Page[search.Card], error) {
	var ids search.IDSet
	restricted := false

	if q.Platform != "" {
		platform, err := models.ParsePlatform(q.Platform)
		if err != nil {
			return emptyPage[search.Card](), nil
		}

		var sets []search.IDSet
		if q.hasFollowerBounds() {
			lo, hi := search.FollowerBounds(q.MinFollowers, q.MaxFollowers)
			hits, err := s.store.Metrics().QueryFollowers(ctx, platform, storage.Range[int64]{Min: lo, Max: &hi})
			if err != nil {
				return Page[search.Card]{}, apperr.Upstream("Failed to query metrics for followers", err)
			}
			sets = append(sets, influencerIDs(hits))
		}
		if q.hasEngagementBounds() {
			lo, hi := search.EngagementBounds(q.MinEngagementRate, q.MaxEngagementRate)
			hits, err := s.store.Metrics().QueryEngagementRate(ctx, platform, storage.Range[float64]{Min: lo, Max: &hi})
			if err != nil {
				return Page[search.Card]{}, apperr.Upstream("Failed to query metrics for engagement rate", err)
			}
			sets = append(sets, influencerIDs(hits))
		}

		ids, restricted = search.Intersect(sets)
		if restricted && len(ids) == 0 {
			return emptyPage[search.Card](), nil
		}
	}

	var candidates []*models.Influencer
	var err error
	if restricted {
		candidates, err = s.store.Influencers().BatchGet(ctx, ids.IDs())
		sortByID(candidates)
	} else {
		candidates, err = s.store.Influencers().ScanAll(ctx)
	}
	if err != nil {
		return Page[search.Card]{}, apperr.Upstream("Failed to load influencers", err)
	}

	filtered := search.Filter(candidates, search.Criteria{
		Name:     q.Name,
		Location: q.Location,
		Gender:   q.Gender,
		Platform: q.Platform,
	})
	page, err := toPage(pagination.Materialized(filtered), req)
	if err != nil {
		return Page[search.Card]{}, err
	}

	cards := make([]search.Card, 0, len(page.Items))
	for _, inf := range page.Items {
		cards = append(cards, search.NewCard(inf, s.metricsFor(ctx, inf.InfluencerID)))
	}
	return Page[search.Card]{Items: cards, NextToken: page.NextToken}, nil
}

// metricsFor never fails: a card without metrics is still a valid card.
func (s *InfluencerService) metricsFor(ctx context.Context, influencerID string) []*models.Metrics {
	key := "metrics:" + influencerID
	if data, ok := s.cache.Get(key); ok {
		var cached []*models.Metrics
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
	}

	metrics, err := s.store.Metrics().QueryByInfluencer(ctx, influencerID)
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Error loading metrics for influencer %s: %s", influencerID, err)
		return nil
	}
	if data, err := json.Marshal(metrics); err == nil {
		s.cache.Set(key, data)
	}
	return metrics
}

// SearchByMetrics returns the influencers owning a metrics record that
// satisfies every requested range, in the order their records were found.
func (s *InfluencerService) SearchByMetrics(ctx context.Context, q MetricsQuery, req pagination.Request) (Page[*models.Influencer], error) {
	const failure = "Failed to search by metrics"

	for field := range q.Ranges {
		if !field.Valid() {
			return Page[*models.Influencer]{}, apperr.InvalidEnumValue("metric", string(field))
		}
	}

	var records []*models.Metrics
	var err error
	if q.Platform == "" {
		records, err = s.store.Metrics().ScanAll(ctx)
	} else {
		platform, perr := models.ParsePlatform(q.Platform)
		if perr != nil {
			return Page[*models.Influencer]{}, apperr.InvalidEnumValue("platform", q.Platform)
		}
		records, err = s.metricsByIndex(ctx, platform, q.Ranges)
	}
	if err != nil {
		return Page[*models.Influencer]{}, storeError(failure, err)
	}

	order := make(map[string]int)
	for _, m := range records {
		if !satisfies(m, q.Ranges) {
			continue
		}
		if _, ok := order[m.InfluencerID]; !ok {
			order[m.InfluencerID] = len(order)
		}
	}
	if len(order) == 0 {
		return toPage(pagination.Materialized([]*models.Influencer{}), req)
	}

	ids := make([]string, 0, len(order))
	for id := range order {
		ids = append(ids, id)
	}
	influencers, err := s.store.Influencers().BatchGet(ctx, ids)
	if err != nil {
		return Page[*models.Influencer]{}, storeError(failure, err)
	}
	sort.Slice(influencers, func(i, j int) bool {
		return order[influencers[i].InfluencerID] < order[influencers[j].InfluencerID]
	})
	return toPage(pagination.Materialized(influencers), req)
}

// metricsByIndex picks the narrowest index query for the platform; the other
// ranges are checked afterwards.
func (s *InfluencerService) metricsByIndex(ctx context.Context, platform models.Platform, ranges map[models.MetricField]MetricRange) ([]*models.Metrics, error) {
	if r, ok := ranges[models.FieldTotalFollowers]; ok {
		min, max := search.FollowerBounds(floatToInt(r.Min), floatToInt(r.Max))
		return s.store.Metrics().QueryFollowers(ctx, platform, storage.Range[int64]{Min: min, Max: &max})
	}
	if r, ok := ranges[models.FieldEngagementRate]; ok {
		min, max := search.EngagementBounds(r.Min, r.Max)
		return s.store.Metrics().QueryEngagementRate(ctx, platform, storage.Range[float64]{Min: min, Max: &max})
	}
	return s.store.Metrics().QueryByPlatform(ctx, platform)
}

func satisfies(m *models.Metrics, ranges map[models.MetricField]MetricRange) bool {
	for field, r := range ranges {
		v, ok := m.Value(field)
		if !ok || !r.contains(v) {
			return false
		}
	}
	return true
}

func influencerIDs(metrics []*models.Metrics) search.IDSet {
	set := make(search.IDSet, len(metrics))
	for _, m := range metrics {
		set[m.InfluencerID] = struct{}{}
	}
	return set
}

func sortByID(influencers []*models.Influencer) {
	sort.Slice(influencers, func(i, j int) bool {
		return influencers[i].InfluencerID < influencers[j].InfluencerID
	})
}

// floatToInt truncates a follower bound. Counts are integers, so the index
// query still returns every record the exact range check accepts.
func floatToInt(f *float64) *int64 {
	if f == nil {
		return nil
	}
	v := int64(*f)
	return &v
}

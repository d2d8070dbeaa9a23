package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/atomic"

	"ihsearch/internal/models"
	"ihsearch/internal/pagination"
	"ihsearch/internal/providers"
	"ihsearch/internal/storage"
	"ihsearch/internal/structures"
)

const (
	tableInfluencers = "influencers"
	tableMetrics     = "metrics"
	tablePosts       = "posts"
)

// Store keeps the three tables in process. Reads hand out copies, so callers never alias stored records.
type Store struct {
	mu          sync.RWMutex
	influencers map[string]*models.Influencer
	metricsRows map[string]*models.Metrics
	posts       map[string]*models.Post
	dirty       *atomic.Bool

	conf       structures.MemoryConfig
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	compressor *SnapshotCompressor
	scheduler  *Scheduler
}

func New(conf structures.MemoryConfig, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Store, error) {
	s := &Store{
		influencers: make(map[string]*models.Influencer),
		metricsRows: make(map[string]*models.Metrics),
		posts:       make(map[string]*models.Post),
		dirty:       atomic.NewBool(false),
		conf:        conf,
		logger:      logger,
		metrics:     metrics,
	}
	if conf.FilePath != "" {
		compressor, err := NewSnapshotCompressor(conf.Compression)
		if err != nil {
			return nil, err
		}
		s.compressor = compressor
		s.scheduler = NewScheduler(s, NewFileManager(compressor, logger), conf.FilePath, conf.SaveInterval, logger)
	}
	return s, nil
}

func (s *Store) Influencers() storage.InfluencerRepository { return &influencerRepo{s} }

func (s *Store) Metrics() storage.MetricsRepository { return &metricsRepo{s} }

func (s *Store) Posts() storage.PostRepository { return &postRepo{s} }

func (s *Store) Driver() string { return structures.StorageMemory }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Start restores the snapshot, if one is configured, and schedules periodic saves.
func (s *Store) Start() error {
	if s.scheduler == nil {
		s.logger.Infof(providers.TypeStore, "Memory store started without persistence")
		s.reportCounts()
		return nil
	}
	if err := s.scheduler.Restore(); err != nil {
		return fmt.Errorf("memory: restore snapshot: %w", err)
	}
	s.scheduler.Init()
	return nil
}

func (s *Store) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	s.scheduler.Stop()
	var err error
	if s.dirty.Load() {
		err = s.scheduler.Persist()
	}
	s.compressor.Close()
	return err
}

// Load replaces every table with the contents of snapshot.
func (s *Store) Load(snapshot *Snapshot) {
	s.mu.Lock()
	s.influencers = make(map[string]*models.Influencer, len(snapshot.Influencers))
	for _, inf := range snapshot.Influencers {
		s.influencers[inf.InfluencerID] = cloneInfluencer(inf)
	}
	s.metricsRows = make(map[string]*models.Metrics, len(snapshot.Metrics))
	for _, m := range snapshot.Metrics {
		c := *m
		s.metricsRows[m.ID] = &c
	}
	s.posts = make(map[string]*models.Post, len(snapshot.Posts))
	for _, p := range snapshot.Posts {
		s.posts[p.PostID] = p.Clone()
	}
	s.mu.Unlock()
	s.reportCounts()
}

func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &Snapshot{
		Influencers: make([]*models.Influencer, 0, len(s.influencers)),
		Metrics:     make([]*models.Metrics, 0, len(s.metricsRows)),
		Posts:       make([]*models.Post, 0, len(s.posts)),
		SavedAt:     time.Now().UTC(),
	}
	for _, id := range sortedKeys(s.influencers) {
		snap.Influencers = append(snap.Influencers, cloneInfluencer(s.influencers[id]))
	}
	for _, id := range sortedKeys(s.metricsRows) {
		c := *s.metricsRows[id]
		snap.Metrics = append(snap.Metrics, &c)
	}
	for _, id := range sortedKeys(s.posts) {
		snap.Posts = append(snap.Posts, s.posts[id].Clone())
	}
	return snap
}

func (s *Store) PutInfluencer(inf *models.Influencer) {
	s.mu.Lock()
	s.influencers[inf.InfluencerID] = cloneInfluencer(inf)
	s.mu.Unlock()
	s.dirty.Store(true)
	s.reportCounts()
}

func (s *Store) PutMetrics(m *models.Metrics) {
	c := *m
	s.mu.Lock()
	s.metricsRows[m.ID] = &c
	s.mu.Unlock()
	s.dirty.Store(true)
	s.reportCounts()
}

func (s *Store) reportCounts() {
	s.mu.RLock()
	counts := map[string]int{
		tableInfluencers: len(s.influencers),
		tableMetrics:     len(s.metricsRows),
		tablePosts:       len(s.posts),
	}
	s.mu.RUnlock()
	for table, n := range counts {
		s.metrics.SetRecordsTotal(table, n)
	}
}

func (s *Store) observe(op string, start time.Time, err error) {
	s.metrics.ObserveStoreOperation(op, time.Since(start), err)
}

func cloneInfluencer(inf *models.Influencer) *models.Influencer {
	c := *inf
	if inf.Platforms != nil {
		c.Platforms = append([]models.PlatformProfile(nil), inf.Platforms...)
	}
	return &c
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// page emulates a store page over rows sorted by primary key. The continuation
// key carries the primary key of the last returned row; the next page resumes
// at the first key after it, even when that row has since been deleted.
func page[T any](rows []*T, keyName string, id func(*T) string, req storage.PageRequest) ([]*T, pagination.StoreKey, error) {
	start := 0
	if len(req.StartKey) > 0 {
		after, ok := req.StartKey[keyName].(string)
		if !ok {
			return nil, nil, fmt.Errorf("%w: start key lacks %s", pagination.ErrInvalidToken, keyName)
		}
		start = sort.Search(len(rows), func(i int) bool { return id(rows[i]) > after })
	}
	rows = rows[start:]
	if req.Limit <= 0 || len(rows) <= req.Limit {
		return rows, nil, nil
	}
	rows = rows[:req.Limit]
	return rows, pagination.StoreKey{keyName: id(rows[len(rows)-1])}, nil
}

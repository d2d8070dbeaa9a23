package memory

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"ihsearch/internal/providers"
)

// Scheduler saves the store to its snapshot file on a fixed interval.
type Scheduler struct {
	store       *Store
	logger      providers.Logger
	fileManager *FileManager
	filePath    string
	interval    time.Duration
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func NewScheduler(store *Store, fileManager *FileManager, filePath string, interval time.Duration, logger providers.Logger) *Scheduler {
	return &Scheduler{
		store:       store,
		logger:      logger,
		fileManager: fileManager,
		filePath:    filePath,
		interval:    interval,
	}
}

func (s *Scheduler) Init() {
	if s.interval <= 0 {
		return
	}
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.interval), func() {
		if err := s.persistIfDirty(); err != nil {
			s.logger.Errorf(providers.TypeStore, "Error while persisting snapshot: %s", err)
		}
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	snapshot, err := s.fileManager.LoadFromFile(s.filePath)
	if err != nil {
		return err
	}
	if snapshot == nil {
		s.logger.Infof(providers.TypeStore, "No snapshot at %s, starting empty", s.filePath)
		return nil
	}
	s.store.Load(snapshot)
	s.logger.Infof(providers.TypeStore, "Restored %d influencers, %d metrics, %d posts from %s",
		len(snapshot.Influencers), len(snapshot.Metrics), len(snapshot.Posts), s.filePath)
	return nil
}

// Persist writes the snapshot unconditionally.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.store.dirty.Store(false)
	if err := s.fileManager.SaveToFile(s.filePath, s.store.Snapshot()); err != nil {
		s.store.dirty.Store(true)
		return err
	}
	s.logger.Infof(providers.TypeStore, "Persisted snapshot to file %s", s.filePath)
	return nil
}

func (s *Scheduler) persistIfDirty() error {
	if !s.store.dirty.Load() {
		return nil
	}
	return s.Persist()
}

package testutil

import (
	"fmt"
	"sync"
	"time"

	"ihsearch/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns the recorded entries of the given level.
func (m *MockLogger) Entries(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockMetrics implements providers.MetricsProviderInterface and records store activity.
type MockMetrics struct {
	mu          sync.Mutex
	StoreOps    map[string]int
	StoreErrors map[string]int
	Records     map[string]int
	CacheHits   map[string]int
	CacheMisses map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		StoreOps:    make(map[string]int),
		StoreErrors: make(map[string]int),
		Records:     make(map[string]int),
		CacheHits:   make(map[string]int),
		CacheMisses: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits(namespace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits[namespace]++
}

func (m *MockMetrics) IncCacheMisses(namespace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses[namespace]++
}

func (m *MockMetrics) ObserveStoreOperation(op string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreOps[op]++
	if err != nil {
		m.StoreErrors[op]++
	}
}

func (m *MockMetrics) SetRecordsTotal(table string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records[table] = count
}

func (m *MockMetrics) Ops(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StoreOps[op]
}

func (m *MockMetrics) RecordCount(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Records[table]
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor passes bytes through unless a function is injected.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

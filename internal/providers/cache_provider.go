package providers

import (
	"errors"

	"github.com/coocood/freecache"
	"ihsearch/internal/structures"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// CacheProvider keeps serialized per-influencer lookups for cache.ttl.
// With cache.enabled=false every lookup goes to the store.
type CacheProvider struct {
	cache  *freecache.Cache
	ttl    int
	logger Logger
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	ttl := max(int(conf.Cache.TTL.Seconds()), 1)

	logger.Infof(TypeApp, "Cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache:  freecache.NewCache(sizeBytes),
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set drops entries larger than 1/1024 of the cache size; freecache refuses them.
func (c *CacheProvider) Set(key string, value []byte) {
	if err := c.cache.Set([]byte(key), value, c.ttl); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) || errors.Is(err, freecache.ErrLargeKey) {
			c.logger.Debugf(TypeApp, "Cache entry %s skipped: %d bytes", key, len(value))
			return
		}
		c.logger.Warnf(TypeApp, "Cache set %s failed: %s", key, err)
	}
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}

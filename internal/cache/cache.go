// internal/cache/cache.go
package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/law-makers/autocrawl/pkg/models"
	"github.com/rs/zerolog/log"
)

// Cache defines the interface for detail-page option caching.
type Cache interface {
	// Get retrieves the options cached for a detail link.
	// The returned map is a copy the caller may modify.
	Get(link string) (models.OptionMap, bool)

	// Set stores options for a detail link with the specified TTL.
	Set(link string, options models.OptionMap, ttl time.Duration)

	// Stats reports hit and miss counters.
	Stats() map[string]interface{}

	// Close releases the cache's background goroutines.
	Close()
}

// MemoryCache is an in-memory option cache backed by ristretto
type MemoryCache struct {
	impl *ristretto.Cache[string, models.OptionMap]
}

// NewMemoryCache creates a cache bounded to roughly maxSizeBytes of option text
func NewMemoryCache(maxSizeBytes int64) (*MemoryCache, error) {
	if maxSizeBytes <= 0 {
		maxSizeBytes = 32 << 20 // Default: 32MB
	}

	impl, err := ristretto.NewCache(&ristretto.Config[string, models.OptionMap]{
		NumCounters: 1e5,
		MaxCost:     maxSizeBytes,
		BufferItems: 64,
		Metrics:     true,
		Cost:        cost,
	})
	if err != nil {
		return nil, err
	}

	return &MemoryCache{impl: impl}, nil
}

// Get retrieves a cached option map
func (mc *MemoryCache) Get(link string) (models.OptionMap, bool) {
	m, ok := mc.impl.Get(link)
	if !ok {
		return nil, false
	}
	log.Debug().Str("link", link).Msg("Cache hit")
	return m.Clone(), true
}

// Set stores an option map. Ristretto admits entries asynchronously, so a
// Get right after Set may still miss; call Wait to settle pending writes.
func (mc *MemoryCache) Set(link string, options models.OptionMap, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	stored := options.Clone()
	if !mc.impl.SetWithTTL(link, stored, cost(stored), ttl) {
		log.Debug().Str("link", link).Msg("Cache set dropped")
	}
}

// Wait blocks until pending sets have been applied
func (mc *MemoryCache) Wait() {
	mc.impl.Wait()
}

// Close stops the cache's background goroutines
func (mc *MemoryCache) Close() {
	mc.impl.Close()
	log.Debug().Msg("Cache closed")
}

// Stats returns cache statistics including hit rate
func (mc *MemoryCache) Stats() map[string]interface{} {
	m := mc.impl.Metrics
	hitRate := 0.0
	if total := m.Hits() + m.Misses(); total > 0 {
		hitRate = float64(m.Hits()) / float64(total) * 100
	}
	return map[string]interface{}{
		"hits":       m.Hits(),
		"misses":     m.Misses(),
		"keys_added": m.KeysAdded(),
		"cost_added": m.CostAdded(),
		"hit_rate":   hitRate,
	}
}

// cost approximates the memory held by an option map
func cost(m models.OptionMap) int64 {
	var n int64 = 64
	for k, v := range m {
		n += int64(len(k) + len(v))
	}
	return n
}

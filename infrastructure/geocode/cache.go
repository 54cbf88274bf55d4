package geocode

import (
	"sync"
	"time"

	"compass/application/ports"
)

// resultCache is a TTL cache for resolved coordinates. Place names repeat
// heavily across itineraries for the same destination, and the public
// Nominatim instance rate-limits aggressively, so cache hits matter.
type resultCache struct {
	mu    sync.RWMutex
	items map[string]cachedPoint
	ttl   time.Duration
}

type cachedPoint struct {
	point     ports.GeoPoint
	expiresAt time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	cache := &resultCache{
		items: make(map[string]cachedPoint),
		ttl:   ttl,
	}
	go cache.cleanupExpired()
	return cache
}

func (c *resultCache) get(key string) (ports.GeoPoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiresAt) {
		return ports.GeoPoint{}, false
	}
	return item.point, true
}

func (c *resultCache) set(key string, point ports.GeoPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cachedPoint{
		point:     point,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *resultCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for key, item := range c.items {
			if now.After(item.expiresAt) {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}

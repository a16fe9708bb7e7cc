package geocode

import (
	"delivery-dispatch-service/internal/domain"
	"sync"
)

// In-process cache of geocoding outcomes keyed by normalized address.
// Successes and failures are cached separately and are mutually exclusive for
// a given key. Entries live for the process lifetime; geocoding results are
// never invalidated by time. Safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	points   map[string]domain.GeocodePoint
	failures map[string]struct{}
}

func NewCache() *Cache {
	return &Cache{
		points:   make(map[string]domain.GeocodePoint),
		failures: make(map[string]struct{}),
	}
}

// Lookup returns the cached point for a normalized address. failed reports a
// cached not-found outcome; found and failed are never both true.
func (c *Cache) Lookup(normalized string) (point domain.GeocodePoint, found bool, failed bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.failures[normalized]; ok {
		return domain.GeocodePoint{}, false, true
	}
	point, found = c.points[normalized]
	return point, found, false
}

// Put records a successful resolution, clearing any cached failure.
func (c *Cache) Put(normalized string, point domain.GeocodePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.failures, normalized)
	c.points[normalized] = point
}

// PutFailure records a not-found outcome, clearing any cached success.
func (c *Cache) PutFailure(normalized string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.points, normalized)
	c.failures[normalized] = struct{}{}
}

// Reset clears all cached entries. Intended for test isolation.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.points = make(map[string]domain.GeocodePoint)
	c.failures = make(map[string]struct{})
}

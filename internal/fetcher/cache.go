package fetcher

import "sync"

// Cache memoizes dependency values for the lifetime of one Fetcher, which
// is one assessment. Keys are flight keys (dependency key plus scope and
// params). It is safe for concurrent use.
type Cache struct {
	data sync.Map
}

func NewCache() *Cache {
	return &Cache{}
}

// Get returns the value stored under key.
func (c *Cache) Get(key string) (any, bool) {
	return c.data.Load(key)
}

// Set stores a successfully fetched value. Errors are never cached, so a
// failed dependency is retried by the next assessment.
func (c *Cache) Set(key string, value any) {
	c.data.Store(key, value)
}

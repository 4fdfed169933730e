package router

// matchCache memoizes match results keyed by the exact sanitized path
// (including its query string). A nil value records a resolved
// "no match", so repeated misses stay O(1). Eviction is FIFO by
// insertion order, not LRU: when at capacity the oldest-inserted entry
// is removed before inserting a new one.
type matchCache struct {
	limit   int
	entries map[string]*Match
	order   []string
}

func newMatchCache(limit int) *matchCache {
	return &matchCache{
		limit:   limit,
		entries: make(map[string]*Match),
	}
}

// get returns the cached match (nil for a cached no-match) and whether
// the key is present.
func (c *matchCache) get(key string) (*Match, bool) {
	m, ok := c.entries[key]
	return m, ok
}

// put inserts a result, evicting the oldest entry when at capacity.
// A non-positive limit disables caching entirely.
func (c *matchCache) put(key string, m *Match) {
	if c.limit <= 0 {
		return
	}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = m
		return
	}
	if len(c.entries) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = m
	c.order = append(c.order, key)
}

func (c *matchCache) clear() {
	c.entries = make(map[string]*Match)
	c.order = c.order[:0]
}

func (c *matchCache) len() int {
	return len(c.entries)
}

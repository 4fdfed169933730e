package router

import "testing"

func TestCacheFIFOEviction(t *testing.T) {
	r, err := New(
		WithCacheLimit(2),
		WithRoute("/a", nopHandler),
		WithRoute("/b", nopHandler),
		WithRoute("/c", nopHandler),
	)
	if err != nil {
		t.Fatal(err)
	}

	r.Match("/a")
	r.Match("/b")
	r.Match("/c")

	if got := r.CacheLen(); got != 2 {
		t.Fatalf("CacheLen() = %d, want 2", got)
	}
	if _, ok := r.cache.get("/a"); ok {
		t.Error("/a should have been evicted first (FIFO)")
	}
	if _, ok := r.cache.get("/b"); !ok {
		t.Error("/b should still be cached")
	}
	if _, ok := r.cache.get("/c"); !ok {
		t.Error("/c should still be cached")
	}
}

func TestCacheFIFONotLRU(t *testing.T) {
	r, err := New(
		WithCacheLimit(2),
		WithRoute("/a", nopHandler),
		WithRoute("/b", nopHandler),
		WithRoute("/c", nopHandler),
	)
	if err != nil {
		t.Fatal(err)
	}

	r.Match("/a")
	r.Match("/b")
	// Re-reading /a must not refresh its position: eviction is by
	// insertion order, independent of access recency.
	r.Match("/a")
	r.Match("/c")

	if _, ok := r.cache.get("/a"); ok {
		t.Error("/a should have been evicted despite the recent hit")
	}
}

func TestCacheStoresNotFound(t *testing.T) {
	r, err := New(WithRoute("/only", nopHandler))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := r.Match("/missing"); ok {
		t.Fatal("unexpected match")
	}
	m, cached := r.cache.get("/missing")
	if !cached {
		t.Fatal("no-match result should be cached")
	}
	if m != nil {
		t.Error("cached no-match should be nil")
	}
	// Second miss is served from cache.
	if _, ok := r.Match("/missing"); ok {
		t.Error("unexpected match on cached miss")
	}
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	r, err := New(WithRoute("/user/:id", nopHandler))
	if err != nil {
		t.Fatal(err)
	}

	r.Match("/user/1?tab=a")
	r.Match("/user/1?tab=b")
	if got := r.CacheLen(); got != 2 {
		t.Errorf("CacheLen() = %d, want 2 (distinct query strings)", got)
	}
}

func TestCacheCapacityInvariant(t *testing.T) {
	r, err := New(WithCacheLimit(3), WithRoute("/p/:n", nopHandler))
	if err != nil {
		t.Fatal(err)
	}

	paths := []string{"/p/1", "/p/2", "/p/3", "/p/4", "/p/5", "/missing"}
	for _, p := range paths {
		r.Match(p)
		if got := r.CacheLen(); got > 3 {
			t.Fatalf("CacheLen() = %d after %q, want <= 3", got, p)
		}
	}
}

func TestCacheDisabled(t *testing.T) {
	r, err := New(WithCacheLimit(0), WithRoute("/a", nopHandler))
	if err != nil {
		t.Fatal(err)
	}

	r.Match("/a")
	if got := r.CacheLen(); got != 0 {
		t.Errorf("CacheLen() = %d, want 0 with caching disabled", got)
	}
}

func TestClearCache(t *testing.T) {
	r, err := New(WithRoute("/a", nopHandler))
	if err != nil {
		t.Fatal(err)
	}

	r.Match("/a")
	if r.CacheLen() == 0 {
		t.Fatal("expected cached entry")
	}
	r.ClearCache()
	if got := r.CacheLen(); got != 0 {
		t.Errorf("CacheLen() = %d after clear, want 0", got)
	}
}

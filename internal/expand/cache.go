package expand

import (
	"context"
	"strconv"
	"sync"
)

// inflight is one pending-or-completed expansion. Waiters block on done;
// members and err must not be read before done is closed.
type inflight struct {
	done    chan struct{}
	members []string
	err     error
}

// Cache deduplicates and memoizes expansion calls per logical request key.
// It guarantees at most one concurrent producer run per distinct key within
// the process: the existence check and the insertion of the pending entry
// happen under one lock, so two goroutines racing on the same key always
// observe a single underlying computation.
//
// Successful entries live for the process lifetime. Construct one Cache per
// run and pass it by reference; there is no eviction.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*inflight
}

// NewCache returns an empty expansion cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*inflight)}
}

// GetOrStart returns the memoized result for key, or runs start to produce
// it. Callers that find a pending entry wait for the original producer
// instead of starting a second one. A failed producer run is evicted before
// the failure is returned, so the next request for the same key retries from
// scratch rather than replaying a cached error.
func (c *Cache) GetOrStart(ctx context.Context, key string, start func() ([]string, error)) ([]string, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		select {
		case <-e.done:
			return e.members, e.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	e := &inflight{done: make(chan struct{})}
	c.entries[key] = e
	c.mu.Unlock()

	e.members, e.err = start()
	if e.err != nil {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
	}
	close(e.done)
	return e.members, e.err
}

// Len reports the number of cached entries, pending ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Key builds the composite identifier of one logical expansion call. An
// unbounded depth contributes an empty segment, matching a request that never
// set one.
func Key(name string, depth int, sources string) string {
	d := ""
	if depth >= 0 {
		d = strconv.Itoa(depth)
	}
	return name + "|" + d + "|" + sources
}

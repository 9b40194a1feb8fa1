// Package dedupe tracks idempotency keys so batch runs can skip
// work that has already been processed.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records processed keys to ensure at-most-once handling
// of deal scorings and match generations within a batch window.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records
	// it if not. Returns true if key was already seen, false if it was
	// newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key, allowing it to be retried. Use when an
	// item was recorded but its processing later failed.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// DealKey builds the idempotency key for a deal scoring.
func DealKey(dealID string) string {
	return "deal:" + dealID
}

// inMemoryDeduper keeps keys in a map with a FIFO queue driving
// eviction. Bounded mode (maxSize > 0) evicts the oldest live key
// once full; unbounded mode (maxSize <= 0) never evicts.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	queue   []string // insertion order, oldest at queue[head]
	head    int
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper. The default bound
// is 50000 keys.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 50000,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}

	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			d.evictOldest()
		}
		d.queue = append(d.queue, key)
		d.compact()
	}

	d.seen[key] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(ctx context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; !exists {
		return
	}
	delete(d.seen, key)
	d.size.Add(-1)
	// The queue keeps the stale entry; eviction skips keys that are
	// no longer present in the map.
}

// evictOldest drops the oldest live key. Must hold d.mu.
func (d *inMemoryDeduper) evictOldest() {
	for d.head < len(d.queue) {
		oldest := d.queue[d.head]
		d.queue[d.head] = ""
		d.head++

		if _, live := d.seen[oldest]; live {
			delete(d.seen, oldest)
			d.size.Add(-1)
			return
		}
		// Stale entry from an Unrecord, keep scanning.
	}
}

// compact reclaims consumed queue space once more than half of the
// backing slice is dead. Must hold d.mu.
func (d *inMemoryDeduper) compact() {
	if d.head <= len(d.queue)/2 || d.head < 1024 {
		return
	}
	d.queue = append(d.queue[:0], d.queue[d.head:]...)
	d.head = 0
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

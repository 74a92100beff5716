// Package cache is the in-process read-through cache for users and
// evaluations.
//
// Each bucket is either unhydrated or hydrated; a hydrated bucket may be
// empty. Reads of an unhydrated bucket load it once from the store
// (concurrent misses share one load). Writes patch hydrated buckets in
// place and are no-ops on unhydrated ones, since the next read loads from a
// store that already has the write.
//
// The cache is never the system of record. Callers patch it only after the
// store confirms a write.
package cache

import (
	"context"
	"sort"
	"sync"

	"github.com/dalemusser/staffhub/internal/app/system/timeouts"
	"golang.org/x/sync/singleflight"
)

// State describes a bucket.
type State int

const (
	Unhydrated State = iota
	HydratedEmpty
	Hydrated
)

func (s State) String() string {
	switch s {
	case HydratedEmpty:
		return "hydrated-empty"
	case Hydrated:
		return "hydrated"
	default:
		return "unhydrated"
	}
}

// Loader fetches the full contents of one bucket from the store.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Bucketed is a set of named lists of T keyed by bucket name.
type Bucketed[T any] struct {
	mu      sync.RWMutex
	buckets map[string][]T // a present key is hydrated
	gen     map[string]uint64

	id   func(T) string
	less func(a, b T) bool // nil keeps insertion order, newest first

	group singleflight.Group
}

// NewBucketed returns an empty cache. id identifies entries for update and
// remove. When less is non-nil every bucket is kept sorted by it.
func NewBucketed[T any](id func(T) string, less func(a, b T) bool) *Bucketed[T] {
	return &Bucketed[T]{
		buckets: make(map[string][]T),
		gen:     make(map[string]uint64),
		id:      id,
		less:    less,
	}
}

func clone[T any](rows []T) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	return out
}

func (b *Bucketed[T]) sortRows(rows []T) {
	if b.less == nil {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool { return b.less(rows[i], rows[j]) })
}

// State reports whether key is hydrated and whether it holds rows.
func (b *Bucketed[T]) State(key string) State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rows, ok := b.buckets[key]
	switch {
	case !ok:
		return Unhydrated
	case len(rows) == 0:
		return HydratedEmpty
	default:
		return Hydrated
	}
}

// Get returns a copy of the bucket and whether it was hydrated.
func (b *Bucketed[T]) Get(key string) ([]T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rows, ok := b.buckets[key]
	if !ok {
		return nil, false
	}
	return clone(rows), true
}

// Set replaces the bucket and marks it hydrated.
func (b *Bucketed[T]) Set(key string, rows []T) {
	rows = clone(rows)
	b.sortRows(rows)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.buckets[key] = rows
	b.gen[key]++
}

// Insert adds v to a hydrated bucket, replacing any entry with the same id
// so it appears exactly once. It reports whether the bucket was hydrated.
func (b *Bucketed[T]) Insert(key string, v T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen[key]++
	rows, ok := b.buckets[key]
	if !ok {
		return false
	}
	id := b.id(v)
	out := make([]T, 0, len(rows)+1)
	out = append(out, v)
	for _, r := range rows {
		if b.id(r) != id {
			out = append(out, r)
		}
	}
	b.sortRows(out)
	b.buckets[key] = out
	return true
}

// Update replaces the entry with v's id in a hydrated bucket. It reports
// whether an entry was replaced.
func (b *Bucketed[T]) Update(key string, v T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen[key]++
	return b.updateLocked(key, v)
}

func (b *Bucketed[T]) updateLocked(key string, v T) bool {
	rows, ok := b.buckets[key]
	if !ok {
		return false
	}
	id := b.id(v)
	for i := range rows {
		if b.id(rows[i]) == id {
			out := clone(rows)
			out[i] = v
			b.sortRows(out)
			b.buckets[key] = out
			return true
		}
	}
	return false
}

// Remove drops the entry with id from a hydrated bucket. It reports whether
// an entry was removed.
func (b *Bucketed[T]) Remove(key, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen[key]++
	return b.removeLocked(key, id)
}

func (b *Bucketed[T]) removeLocked(key, id string) bool {
	rows, ok := b.buckets[key]
	if !ok {
		return false
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if b.id(r) != id {
			out = append(out, r)
		}
	}
	if len(out) == len(rows) {
		return false
	}
	b.buckets[key] = out
	return true
}

// Invalidate returns key to the unhydrated state.
func (b *Bucketed[T]) Invalidate(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buckets, key)
	b.gen[key]++
}

// Clear returns every bucket to the unhydrated state.
func (b *Bucketed[T]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key := range b.buckets {
		b.gen[key]++
	}
	b.buckets = make(map[string][]T)
}

// Load returns the bucket, calling load to hydrate it on a miss. Concurrent
// misses on the same key share a single call. If the bucket is written to
// while load runs, the loaded rows are returned but not installed, so a
// write racing the load cannot be lost.
//
// The shared call keeps the values of the first caller's ctx but not its
// cancellation, and is bounded by timeouts.Medium. Each caller stops
// waiting when its own ctx is done.
//
// The second result reports whether the store was read.
func (b *Bucketed[T]) Load(ctx context.Context, key string, load Loader[T]) ([]T, bool, error) {
	if rows, ok := b.Get(key); ok {
		return rows, false, nil
	}

	type result struct {
		rows   []T
		loaded bool
	}
	ch := b.group.DoChan(key, func() (interface{}, error) {
		b.mu.RLock()
		if rows, ok := b.buckets[key]; ok {
			b.mu.RUnlock()
			return result{rows: clone(rows)}, nil
		}
		start := b.gen[key]
		b.mu.RUnlock()

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Medium())
		defer cancel()
		rows, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		rows = clone(rows)
		b.sortRows(rows)

		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen[key] == start {
			b.buckets[key] = rows
		}
		return result{rows: rows, loaded: true}, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, false, r.Err
		}
		res := r.Val.(result)
		return clone(res.rows), res.loaded, nil
	}
}

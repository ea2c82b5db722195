// Package stores holds the in-memory collections the UI reads from. Each
// store writes through to its remote table and only updates local state after
// the remote service accepted the change.
package stores

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// Record is an entity with a unique key
type Record[K comparable] interface {
	Key() K
}

// Options customizes a Store
type Options[T any] struct {
	// Defaults fills unset fields before an insert
	Defaults func(T) T
	// Prepare recomputes derived fields before every insert and update
	Prepare func(T) T
	// KeepOnEmptyFetch keeps the current collection when the remote table is empty
	KeepOnEmptyFetch bool
}

// Store is the cache and CRUD facade of one entity collection.
//
// Every committed change bumps a version. A FetchAll whose request started
// before the latest commit is discarded, so a full refresh never drops a
// write that landed while it was in flight.
type Store[T Record[K], K comparable] struct {
	name  string
	table ports.Table[T, K]
	opts  Options[T]

	mu       sync.RWMutex
	items    []T
	inflight int
	version  uint64

	notifyMu  sync.Mutex
	observers []func([]T)
}

// New creates a store over table, seeded with the given records
func New[T Record[K], K comparable](name string, table ports.Table[T, K], opts Options[T], seed ...T) *Store[T, K] {
	s := &Store[T, K]{
		name:  name,
		table: table,
		opts:  opts,
	}
	s.items = dedupe[T, K](seed)
	return s
}

// Name returns the collection name
func (s *Store[T, K]) Name() string {
	return s.name
}

// Observe registers fn to receive the collection after every committed change
func (s *Store[T, K]) Observe(fn func([]T)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.observers = append(s.observers, fn)
}

// FetchAll replaces the collection with the remote table's rows. On failure
// the current collection is kept and the error is logged and returned; callers
// are free to ignore it.
func (s *Store[T, K]) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.inflight++
	started := s.version
	s.mu.Unlock()

	rows, err := s.table.SelectAll(ctx)

	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.mu.Unlock()
		log.Printf("❌ Error fetching %s: %v", s.name, err)
		return fmt.Errorf("fetch %s: %w", s.name, err)
	}
	if s.version != started {
		s.mu.Unlock()
		log.Printf("⚠️ Discarding stale %s fetch (changed while in flight)", s.name)
		return nil
	}
	if len(rows) == 0 && s.opts.KeepOnEmptyFetch {
		s.mu.Unlock()
		return nil
	}
	s.items = dedupe[T, K](rows)
	for i := range s.items {
		s.items[i] = clone(s.items[i])
	}
	s.version++
	s.mu.Unlock()

	s.changed()
	return nil
}

// Create inserts record remotely and prepends the accepted row
func (s *Store[T, K]) Create(ctx context.Context, record T) (T, error) {
	if s.opts.Defaults != nil {
		record = s.opts.Defaults(record)
	}
	if s.opts.Prepare != nil {
		record = s.opts.Prepare(record)
	}

	saved, err := s.table.Insert(ctx, record)
	if err != nil {
		log.Printf("❌ Error adding to %s: %v", s.name, err)
		var zero T
		return zero, fmt.Errorf("create %s: %w", s.name, err)
	}

	s.mu.Lock()
	if i := s.indexOf(saved.Key()); i >= 0 {
		s.items[i] = clone(saved)
	} else {
		s.items = append([]T{clone(saved)}, s.items...)
	}
	s.version++
	s.mu.Unlock()

	s.changed()
	return saved, nil
}

// Update writes record remotely and replaces the local row in place
func (s *Store[T, K]) Update(ctx context.Context, record T) (T, error) {
	if s.opts.Prepare != nil {
		record = s.opts.Prepare(record)
	}

	saved, err := s.table.Update(ctx, record)
	if err != nil {
		log.Printf("❌ Error updating %s %v: %v", s.name, record.Key(), err)
		var zero T
		return zero, fmt.Errorf("update %s: %w", s.name, err)
	}

	s.mu.Lock()
	if i := s.indexOf(saved.Key()); i >= 0 {
		s.items[i] = clone(saved)
	} else {
		s.items = append(s.items, clone(saved))
	}
	s.version++
	s.mu.Unlock()

	s.changed()
	return saved, nil
}

// Delete removes the record remotely, then locally. A remote not-found also
// drops the local copy since the row no longer exists.
func (s *Store[T, K]) Delete(ctx context.Context, id K) error {
	err := s.table.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Printf("❌ Error deleting %s %v: %v", s.name, id, err)
		return fmt.Errorf("delete %s: %w", s.name, err)
	}

	s.mu.Lock()
	removed := false
	if i := s.indexOf(id); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		s.version++
		removed = true
	}
	s.mu.Unlock()

	if removed {
		s.changed()
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.name, err)
	}
	return nil
}

// GetByID returns the local record with the given key
func (s *Store[T, K]) GetByID(id K) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return clone(s.items[i]), true
	}
	var zero T
	return zero, false
}

// Filter returns the local records matching pred, in collection order
func (s *Store[T, K]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0)
	for _, item := range s.items {
		if pred(item) {
			out = append(out, clone(item))
		}
	}
	return out
}

// All returns a copy of the collection
func (s *Store[T, K]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	for i, item := range s.items {
		out[i] = clone(item)
	}
	return out
}

// Len returns the number of records
func (s *Store[T, K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loading reports whether a FetchAll is in flight
func (s *Store[T, K]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Version returns the number of committed changes
func (s *Store[T, K]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store[T, K]) indexOf(id K) int {
	for i, item := range s.items {
		if item.Key() == id {
			return i
		}
	}
	return -1
}

// changed hands the latest collection to observers. notifyMu serializes
// notifications so the last one always carries the newest state.
func (s *Store[T, K]) changed() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if len(s.observers) == 0 {
		return
	}
	items := s.All()
	for _, fn := range s.observers {
		fn(items)
	}
}

// clone deep-copies records that carry slices or pointers so callers never
// share memory with the collection
func clone[T any](item T) T {
	if c, ok := any(item).(interface{ Clone() T }); ok {
		return c.Clone()
	}
	return item
}

func dedupe[T Record[K], K comparable](items []T) []T {
	out := make([]T, 0, len(items))
	seen := make(map[K]int, len(items))
	for _, item := range items {
		if i, ok := seen[item.Key()]; ok {
			out[i] = item
			continue
		}
		seen[item.Key()] = len(out)
		out = append(out, item)
	}
	return out
}

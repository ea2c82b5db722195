// Package porttest provides in-memory implementations of the remote service
// ports with failure injection for tests.
package porttest

import (
	"context"
	"sync"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

// Keyed is a record with a primary key
type Keyed[K comparable] interface {
	Key() K
}

// Table is an in-memory ports.Table. Rows are kept newest first.
type Table[T Keyed[K], K comparable] struct {
	mu     sync.Mutex
	rows   []T
	assign func(rec T, seq int64) T
	seq    int64
	errs   map[string]error
	calls  map[string]int

	// onSelect runs after SelectAll has copied the rows and before it returns
	onSelect func()
}

// NewTable creates a table. assign stamps a new row with the generated key
// and timestamps, the way the remote service would.
func NewTable[T Keyed[K], K comparable](assign func(rec T, seq int64) T, rows ...T) *Table[T, K] {
	t := &Table[T, K]{
		assign: assign,
		errs:   make(map[string]error),
		calls:  make(map[string]int),
		seq:    int64(len(rows)),
	}
	t.rows = append(t.rows, rows...)
	return t
}

// Fail makes every later call of op ("select", "insert", "update", "delete")
// return err. A nil err clears the failure.
func (t *Table[T, K]) Fail(op string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err == nil {
		delete(t.errs, op)
		return
	}
	t.errs[op] = err
}

// OnSelect installs a hook run while a SelectAll is in flight
func (t *Table[T, K]) OnSelect(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSelect = fn
}

// Calls returns how many times op was invoked
func (t *Table[T, K]) Calls(op string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls[op]
}

// Rows returns a copy of the stored rows
func (t *Table[T, K]) Rows() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *Table[T, K]) begin(op string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls[op]++
	return t.errs[op]
}

func (t *Table[T, K]) SelectAll(ctx context.Context) ([]T, error) {
	if err := t.begin("select"); err != nil {
		return nil, err
	}
	rows := t.Rows()

	t.mu.Lock()
	hook := t.onSelect
	t.mu.Unlock()
	if hook != nil {
		hook()
	}
	return rows, nil
}

func (t *Table[T, K]) Insert(ctx context.Context, record T) (T, error) {
	if err := t.begin("insert"); err != nil {
		var zero T
		return zero, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	rec := t.assign(record, t.seq)
	t.rows = append([]T{rec}, t.rows...)
	return rec, nil
}

func (t *Table[T, K]) Update(ctx context.Context, record T) (T, error) {
	if err := t.begin("update"); err != nil {
		var zero T
		return zero, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, row := range t.rows {
		if row.Key() == record.Key() {
			t.rows[i] = record
			return record, nil
		}
	}
	var zero T
	return zero, domain.ErrNotFound
}

func (t *Table[T, K]) Delete(ctx context.Context, id K) error {
	if err := t.begin("delete"); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, row := range t.rows {
		if row.Key() == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

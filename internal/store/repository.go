package store

import (
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned when a record ID is not present.
var ErrNotFound = errors.New("record not found")

// Repository is an in-memory collection of records keyed by ID.
// List returns records in insertion order. Safe for concurrent use.
type Repository[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	idOf  func(T) string
}

// NewRepository creates a repository seeded with fixtures. idOf extracts
// the key from a record; later fixtures with the same ID replace earlier ones.
func NewRepository[T any](idOf func(T) string, fixtures ...T) *Repository[T] {
	r := &Repository[T]{
		items: make(map[string]T, len(fixtures)),
		idOf:  idOf,
	}
	for _, f := range fixtures {
		r.Put(f)
	}
	return r
}

// Get returns the record with the given ID.
func (r *Repository[T]) Get(id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

// Put inserts or replaces a record.
func (r *Repository[T]) Put(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.idOf(v)
	if _, exists := r.items[id]; !exists {
		r.order = append(r.order, id)
	}
	r.items[id] = v
}

// Delete removes a record. Deleting a missing ID returns ErrNotFound.
func (r *Repository[T]) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

// List returns a snapshot of all records in insertion order.
func (r *Repository[T]) List() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Filter returns the records for which keep returns true.
func (r *Repository[T]) Filter(keep func(T) bool) []T {
	var out []T
	for _, v := range r.List() {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Len returns the number of records.
func (r *Repository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

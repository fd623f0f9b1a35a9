// Package store holds the live values behind every declared widget, keyed by
// fully-qualified path. Cells are created lazily on first declaration and
// survive until the session ends.
package store

import (
	"errors"
	"sync"

	"github.com/covao/chibiui/internal/value"
)

var (
	// ErrNotFound reports a key with no cell.
	ErrNotFound = errors.New("store: key not found")
	// ErrClosed reports an operation against a closed store.
	ErrClosed = errors.New("store: closed")
)

// Store maps fully-qualified keys to value cells. Get and Set are safe from
// any goroutine; the render loop and the host poll loop share one instance.
type Store struct {
	mu     sync.RWMutex
	cells  map[string]value.Value
	closed bool
	notify func(key string)
}

func New() *Store {
	return &Store{cells: make(map[string]value.Value)}
}

// SetNotify registers a single observer invoked (outside the lock) whenever a
// cell changes. The renderer uses it to mark the visible page dirty.
func (s *Store) SetNotify(fn func(key string)) {
	s.mu.Lock()
	s.notify = fn
	s.mu.Unlock()
}

// Ensure creates the cell for key seeded with def unless it already exists.
// An existing cell keeps its current value; the passed default is ignored.
// Reports whether a cell was created.
func (s *Store) Ensure(key string, def value.Value) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if _, ok := s.cells[key]; ok {
		return false
	}
	s.cells[key] = def
	return true
}

// Get returns the current value for key.
func (s *Store) Get(key string) (value.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return value.Value{}, ErrClosed
	}
	v, ok := s.cells[key]
	if !ok {
		return value.Value{}, ErrNotFound
	}
	return v, nil
}

// Set replaces the value for an existing key. The new value must match the
// cell's kind; missing keys are not created.
func (s *Store) Set(key string, v value.Value) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	cur, ok := s.cells[key]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	if cur.Kind() != v.Kind() {
		s.mu.Unlock()
		return value.ErrTypeMismatch
	}
	s.cells[key] = v
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify(key)
	}
	return nil
}

// Len reports the number of cells.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}

// Close makes all future operations fail softly with ErrClosed. Idempotent.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.notify = nil
	s.mu.Unlock()
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

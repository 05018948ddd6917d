package playerlock

import (
	"sync"

	"github.com/quizlive/quizlive/internal/model"
)

// Table serializes operations on the same player id while letting
// operations on different players proceed in parallel. Entries are
// reference-counted and removed when the last holder unlocks, so evicted
// players do not leak lock state.
type Table struct {
	mu    sync.Mutex
	locks map[model.PlayerID]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates a new lock table
func New() *Table {
	return &Table{
		locks: make(map[model.PlayerID]*entry),
	}
}

// Lock acquires the lock for the given player id and returns the
// corresponding unlock function.
func (t *Table) Lock(id model.PlayerID) func() {
	t.mu.Lock()
	e, ok := t.locks[id]
	if !ok {
		e = &entry{}
		t.locks[id] = e
	}
	e.refs++
	t.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		t.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(t.locks, id)
		}
		t.mu.Unlock()
	}
}

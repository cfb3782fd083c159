// ABOUTME: Per-note keyed locks for serializing load-modify-save sequences.
// ABOUTME: Entries are reference counted and removed once uncontended.

package notes

import (
	"sync"

	"github.com/google/uuid"
)

type idLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

// lock acquires the mutex for one note id and returns its release func.
func (l *idLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uuid.UUID]*idLock)
	}
	e := l.locks[id]
	if e == nil {
		e = &idLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

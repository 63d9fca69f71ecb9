package storage

import "sync"

// Locks: satu mutex per subject, dipakai save/recompute/reset/remove supaya
// operasi pada subject yang sama jalan berurutan di dalam satu proses.
type Locks struct {
	mu    sync.Mutex
	items map[string]*sync.Mutex
}

func NewLocks() *Locks { return &Locks{items: map[string]*sync.Mutex{}} }

// Lock kunci subject, return fungsi unlock.
func (l *Locks) Lock(subject string) func() {
	l.mu.Lock()
	m, ok := l.items[subject]
	if !ok {
		m = &sync.Mutex{}
		l.items[subject] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

package caching

import "sync"

// KeyLock serialises work per key so a cold cache entry is filled once
// while other callers for the same key wait.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*keyEntry
}

type keyEntry struct {
	mu      sync.Mutex
	waiters int
}

func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[string]*keyEntry)}
}

// Lock blocks until key is free and returns the matching unlock function.
func (l *KeyLock) Lock(key string) (unlock func()) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &keyEntry{}
		l.locks[key] = e
	}
	e.waiters++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.waiters--
		if e.waiters == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// Held reports how many keys currently have a holder or waiters.
func (l *KeyLock) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

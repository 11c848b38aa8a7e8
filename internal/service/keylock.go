package service

import "sync"

// KeyLocks serializes writers per occurrence key so a transaction-triggered
// auto-confirm cannot race a manual toggle on the same occurrence. The lock
// set grows with distinct keys, which is bounded by items × window days.
type KeyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyLocks() *KeyLocks {
	return &KeyLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock func.
func (k *KeyLocks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

package store

import (
	"sync"
	"time"

	"github.com/ajdsjdasjh123sd/linkgate/internal/token"
)

// Status reports the outcome of a lookup. Expired is distinct from Miss so
// callers can answer 410 for a known-but-stale key and 404 for an unknown one.
type Status int

const (
	Hit Status = iota
	Expired
	Miss
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Memory is an in-memory key-value store with per-entry absolute expiry.
// Entries are removed lazily on access and in bulk by Sweep; both paths are
// idempotent deletes, safe to race with concurrent reads and writes.
// State never survives a process restart.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]

	now func() time.Time // test hook
}

// NewMemory creates an empty store.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Put stores value under key until expiresAt, overwriting any existing entry.
func (m *Memory[V]) Put(key string, value V, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
}

// PutUnique stores value under a freshly generated random key of keyLen
// characters, re-rolling on collision, and returns the key. Collisions are
// vanishingly rare but the contract is to check, not assume.
func (m *Memory[V]) PutUnique(keyLen int, value V, expiresAt time.Time) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := token.New(keyLen)
	for {
		if _, exists := m.entries[key]; !exists {
			break
		}
		key = token.New(keyLen)
	}
	m.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	return key
}

// Get looks up key. A past-expiry entry is deleted and reported as Expired
// rather than returned; the delete and the check happen under one lock so a
// racing sweep can never expose a half-removed entry.
func (m *Memory[V]) Get(key string) (V, Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, Miss
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		var zero V
		return zero, Expired
	}
	return e.value, Hit
}

// Delete removes key if present.
func (m *Memory[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

// Len returns the number of stored entries, expired or not.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Sweep deletes every entry past expiry and returns how many were removed.
func (m *Memory[V]) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
			deleted++
		}
	}
	return deleted
}

package core

import (
	"sync"
)

// Outcome is one memoized negotiation result: either the candidate token
// the client preferred, or "nothing offered was acceptable". The zero
// value is the not-acceptable sentinel.
type Outcome struct {
	Token      string
	Acceptable bool
}

// CacheProvider is an interface for a negotiation outcome store.
// It maps opaque string keys to outcomes and bounds its own size.
//
// Implementations must be thread-safe!
type CacheProvider interface {
	// Get returns the outcome stored under the given key, if any.
	Get(key string) (Outcome, bool)
	// Put stores an outcome under the given key, evicting older entries
	// first if the store is full. Keys are write-once: a Put for a key
	// already present is a no-op. It returns the number of entries
	// evicted to make room.
	Put(key string, outcome Outcome) int
	// Len returns the number of stored entries.
	Len() int
	// Purge removes the entry for the given key.
	Purge(key string)
}

type MemStore struct {
	mutex      sync.Mutex
	db         map[string]Outcome
	order      []string
	maxEntries int
	evictBatch int
}

// NewMemStore creates an in-memory store holding at most maxEntries
// outcomes. When an insert finds the store full, the evictBatch
// oldest-inserted entries are dropped first. The entry being inserted is
// never part of the eviction batch: the store is checked first, evicted
// second, and the insert happens last.
func NewMemStore(maxEntries, evictBatch int) *MemStore {
	return &MemStore{
		db:         make(map[string]Outcome, maxEntries),
		order:      make([]string, 0, maxEntries),
		maxEntries: maxEntries,
		evictBatch: evictBatch,
	}
}

func (m *MemStore) Get(key string) (Outcome, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	outcome, ok := m.db[key]
	return outcome, ok
}

func (m *MemStore) Put(key string, outcome Outcome) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.db[key]; ok {
		return 0
	}
	evicted := 0
	if len(m.db) >= m.maxEntries {
		evicted = m.evictOldest(m.evictBatch)
	}
	m.db[key] = outcome
	m.order = append(m.order, key)
	return evicted
}

// evictOldest drops up to n entries in insertion order.
// Must be called with the mutex held.
func (m *MemStore) evictOldest(n int) int {
	if n > len(m.order) {
		n = len(m.order)
	}
	for _, key := range m.order[:n] {
		delete(m.db, key)
	}
	m.order = append(m.order[:0], m.order[n:]...)
	return n
}

func (m *MemStore) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.db)
}

func (m *MemStore) Purge(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.db[key]; !ok {
		return
	}
	delete(m.db, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

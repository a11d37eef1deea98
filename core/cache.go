// Package core implements the shared negotiation result cache: a bounded
// store of negotiation outcomes keyed by (header family, header value,
// candidate list), with insertion-order batch eviction.
package core

import (
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMaxEntries bounds the outcome store.
	DefaultMaxEntries = 1000
	// DefaultEvictBatch is the number of oldest entries dropped when the
	// bound is hit, a tenth of the default bound.
	DefaultEvictBatch = DefaultMaxEntries / 10
)

type Config struct {
	// Store to keep outcomes in. Defaults to an in-memory store bounded
	// by MaxEntries.
	Store CacheProvider
	// MaxEntries bounds the default store. Ignored when Store is set.
	MaxEntries int
	// EvictBatch is the eviction batch size of the default store.
	// Ignored when Store is set.
	EvictBatch int
}

// Cache memoizes negotiation outcomes across all four header families in
// one shared bounded store. Entries never expire by time and are only
// removed by the size bound. Created once and shared for the process
// lifetime; tests create their own instances instead.
type Cache struct {
	store   CacheProvider
	keyer   CacheKeyer
	metrics *metrics
}

// New creates a cache instance.
func New(config Config) *Cache {
	store := config.Store
	if store == nil {
		maxEntries := config.MaxEntries
		if maxEntries <= 0 {
			maxEntries = DefaultMaxEntries
		}
		evictBatch := config.EvictBatch
		if evictBatch <= 0 {
			evictBatch = maxEntries / 10
		}
		if evictBatch < 1 {
			evictBatch = 1
		}
		store = NewMemStore(maxEntries, evictBatch)
	}
	return &Cache{
		store:   store,
		metrics: newMetrics(),
	}
}

// Lookup returns the memoized outcome for one negotiation, if present.
func (c *Cache) Lookup(family Family, header string, candidates []string) (Outcome, bool) {
	key := c.keyer.Key(family, header, candidates)
	outcome, ok := c.store.Get(key)
	if ok {
		c.metrics.hit(family)
		log.Trace().Str("key", key).Str("token", outcome.Token).Msg("Cache hit")
	} else {
		c.metrics.miss(family)
	}
	return outcome, ok
}

// Store memoizes the outcome of one negotiation, including the
// not-acceptable sentinel. A key already present is left untouched.
func (c *Cache) Store(family Family, header string, candidates []string, outcome Outcome) {
	key := c.keyer.Key(family, header, candidates)
	evicted := c.store.Put(key, outcome)
	c.metrics.evicted(evicted)
	if evicted > 0 {
		log.Trace().Int("evicted", evicted).Msg("Cache bound hit")
	}
	log.Trace().Str("key", key).Bool("acceptable", outcome.Acceptable).Msg("Cache write")
}

// Len returns the number of memoized outcomes.
func (c *Cache) Len() int {
	return c.store.Len()
}

// Purge removes the outcome for one negotiation.
func (c *Cache) Purge(family Family, header string, candidates []string) {
	c.store.Purge(c.keyer.Key(family, header, candidates))
}

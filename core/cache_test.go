package core

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func TestLookupAfterStore(t *testing.T) {
	c := New(Config{})
	offers := []string{"gzip", "identity"}

	if _, ok := c.Lookup(FamilyEncoding, "gzip, br", offers); ok {
		t.Fatal("Hit on empty cache")
	}
	c.Store(FamilyEncoding, "gzip, br", offers, Outcome{Token: "gzip", Acceptable: true})
	outcome, ok := c.Lookup(FamilyEncoding, "gzip, br", offers)
	if !ok || outcome.Token != "gzip" || !outcome.Acceptable {
		t.Fatalf("Outcome is %+v (hit: %v)", outcome, ok)
	}
}

func TestStoreNotAcceptable(t *testing.T) {
	c := New(Config{})
	c.Store(FamilyCharset, "utf-8", []string{"koi8-r"}, Outcome{})
	outcome, ok := c.Lookup(FamilyCharset, "utf-8", []string{"koi8-r"})
	if !ok {
		t.Fatal("Not-acceptable outcome was not cached")
	}
	if outcome.Acceptable {
		t.Fatalf("Outcome is %+v", outcome)
	}
}

func TestWriteOnce(t *testing.T) {
	c := New(Config{})
	c.Store(FamilyLanguage, "en", []string{"en"}, Outcome{Token: "en", Acceptable: true})
	c.Store(FamilyLanguage, "en", []string{"en"}, Outcome{Token: "clobbered", Acceptable: true})
	outcome, _ := c.Lookup(FamilyLanguage, "en", []string{"en"})
	if outcome.Token != "en" {
		t.Fatalf("First write did not win: %+v", outcome)
	}
}

func TestBoundNeverExceeded(t *testing.T) {
	c := New(Config{MaxEntries: 50, EvictBatch: 5})
	for i := 0; i < 500; i++ {
		header := fmt.Sprintf("value-%d", i)
		c.Store(FamilyType, header, nil, Outcome{Token: header, Acceptable: true})
		if c.Len() > 50 {
			t.Fatalf("Store grew to %d entries after %d inserts", c.Len(), i+1)
		}
	}
}

func TestEvictionOldestFirst(t *testing.T) {
	store := NewMemStore(3, 1)
	for _, key := range []string{"a", "b", "c"} {
		store.Put(key, Outcome{Token: key, Acceptable: true})
	}
	if evicted := store.Put("d", Outcome{Token: "d", Acceptable: true}); evicted != 1 {
		t.Fatalf("Evicted %d entries", evicted)
	}
	if _, ok := store.Get("a"); ok {
		t.Fatal("Oldest entry survived eviction")
	}
	for _, key := range []string{"b", "c", "d"} {
		if _, ok := store.Get(key); !ok {
			t.Fatalf("Entry %s missing after eviction", key)
		}
	}
}

func TestEvictionOnEmptyStore(t *testing.T) {
	store := NewMemStore(10, 2)
	store.mutex.Lock()
	if n := store.evictOldest(2); n != 0 {
		t.Fatalf("Evicted %d entries from empty store", n)
	}
	store.mutex.Unlock()
}

func TestPurge(t *testing.T) {
	c := New(Config{})
	c.Store(FamilyType, "*/*", []string{"html"}, Outcome{Token: "html", Acceptable: true})
	c.Purge(FamilyType, "*/*", []string{"html"})
	if _, ok := c.Lookup(FamilyType, "*/*", []string{"html"}); ok {
		t.Fatal("Purged entry still present")
	}
	if c.Len() != 0 {
		t.Fatalf("Store has %d entries", c.Len())
	}
}

func TestConcurrentStoreAndLookup(t *testing.T) {
	c := New(Config{MaxEntries: 100, EvictBatch: 10})
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				header := fmt.Sprintf("header-%d", i%40)
				c.Store(FamilyEncoding, header, []string{"gzip"}, Outcome{Token: "gzip", Acceptable: true})
				if outcome, ok := c.Lookup(FamilyEncoding, header, []string{"gzip"}); ok && outcome.Token != "gzip" {
					t.Errorf("Corrupted outcome %+v", outcome)
				}
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 100 {
		t.Fatalf("Store has %d entries", c.Len())
	}
}

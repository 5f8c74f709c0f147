package cache

import (
	"context"
	"fmt"
	"sync"

	"lumidex/internal/parser"
	"lumidex/internal/store"
	"lumidex/internal/textutil"

	"github.com/rs/zerolog/log"
)

// RecordCache provides an in-memory layer in front of a Store. It satisfies
// store.SpeciesIndex so a Loader can check and record species without a
// query per record.
type RecordCache struct {
	store  store.Store
	mu     sync.RWMutex
	memory map[string]parser.Record // folded species → record
	// complete is set by Preload; misses are then answered from memory.
	complete bool
}

// NewRecordCache creates a new cache backed by s.
func NewRecordCache(s store.Store) *RecordCache {
	return &RecordCache{
		store:  s,
		memory: make(map[string]parser.Record),
	}
}

// Get retrieves a record by species. Misses are not cached. A store failure
// is returned as an error, never as a miss.
func (c *RecordCache) Get(ctx context.Context, species string) (parser.Record, bool, error) {
	key := textutil.FoldKey(species)

	c.mu.RLock()
	rec, ok := c.memory[key]
	complete := c.complete
	c.mu.RUnlock()
	if ok || complete {
		return rec, ok, nil
	}

	found, err := c.store.FindBySpecies(ctx, species)
	if err != nil {
		return parser.Record{}, false, fmt.Errorf("cache get %s: %w", species, err)
	}
	if found == nil {
		return parser.Record{}, false, nil
	}

	c.mu.Lock()
	c.memory[key] = *found
	c.mu.Unlock()

	return *found, true, nil
}

// Set stores a record in the backing store and in memory.
func (c *RecordCache) Set(ctx context.Context, rec parser.Record) error {
	if err := c.store.Insert(ctx, rec); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	c.mu.Lock()
	c.memory[textutil.FoldKey(rec.Species)] = rec
	c.mu.Unlock()

	return nil
}

// Preload loads every stored record into memory. Afterwards the cache is
// authoritative as long as all writes go through Set.
func (c *RecordCache) Preload(ctx context.Context) error {
	records, err := c.store.All(ctx)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range records {
		c.memory[textutil.FoldKey(rec.Species)] = rec
	}
	c.complete = true

	log.Info().Int("count", len(records)).Msg("Preloaded record cache")
	return nil
}

// Len reports how many records are held in memory.
func (c *RecordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}

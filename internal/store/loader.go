package store

import (
	"context"
	"fmt"

	"lumidex/internal/parser"
	"lumidex/internal/worker"

	"github.com/rs/zerolog/log"
)

// RecordSink receives every newly inserted record, e.g. the graph builder.
type RecordSink interface {
	UpsertRecord(ctx context.Context, rec parser.Record) error
}

// SpeciesIndex answers whether a species is stored and records new ones.
// Get reports a miss as (zero, false, nil) and a lookup failure as an error.
type SpeciesIndex interface {
	Get(ctx context.Context, species string) (parser.Record, bool, error)
	Set(ctx context.Context, rec parser.Record) error
}

// storeIndex queries the store directly for every check.
type storeIndex struct {
	store Store
}

func (i storeIndex) Get(ctx context.Context, species string) (parser.Record, bool, error) {
	rec, err := i.store.FindBySpecies(ctx, species)
	if err != nil || rec == nil {
		return parser.Record{}, false, err
	}
	return *rec, true, nil
}

func (i storeIndex) Set(ctx context.Context, rec parser.Record) error {
	return i.store.Insert(ctx, rec)
}

// LoadStats counts what a Load call did.
type LoadStats struct {
	Inserted int
	Skipped  int
	// SinkErrors counts sink failures; they are logged and do not stop the load.
	SinkErrors int
}

// Loader inserts parsed records into a Store, skipping species that are
// already present.
type Loader struct {
	index      SpeciesIndex
	sinks      []RecordSink
	batchSize  int
	onProgress func(rec parser.Record, inserted bool)
}

// NewLoader creates a loader writing to s and forwarding new records to sinks.
func NewLoader(s Store, batchSize int, sinks ...RecordSink) *Loader {
	return &Loader{index: storeIndex{store: s}, sinks: sinks, batchSize: batchSize}
}

// UseIndex routes existence checks and inserts through idx, e.g. a preloaded
// cache over the same store.
func (l *Loader) UseIndex(idx SpeciesIndex) {
	l.index = idx
}

// OnProgress registers a callback invoked after each record is handled.
func (l *Loader) OnProgress(fn func(rec parser.Record, inserted bool)) {
	l.onProgress = fn
}

// Load inserts records in order. A species already stored under its raw or
// normalized name is skipped, which makes repeated loads idempotent.
func (l *Loader) Load(ctx context.Context, records []parser.Record) (LoadStats, error) {
	var stats LoadStats

	batches := worker.Batch(records, l.batchSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		for _, rec := range batch {
			inserted, err := l.loadOne(ctx, rec, &stats)
			if err != nil {
				return stats, err
			}
			if l.onProgress != nil {
				l.onProgress(rec, inserted)
			}
		}

		log.Info().
			Int("batch", i+1).
			Int("total_batches", len(batches)).
			Int("inserted", stats.Inserted).
			Int("skipped", stats.Skipped).
			Msg("Batch loaded")
	}

	return stats, nil
}

func (l *Loader) loadOne(ctx context.Context, rec parser.Record, stats *LoadStats) (bool, error) {
	exists, err := l.exists(ctx, rec.Species)
	if err != nil {
		return false, err
	}

	normalized := NormalizeSpecies(rec.Species)
	if !exists && normalized != rec.Species {
		exists, err = l.exists(ctx, normalized)
		if err != nil {
			return false, err
		}
	}
	if exists {
		stats.Skipped++
		log.Debug().Str("species", rec.Species).Msg("Species already stored, skipping")
		return false, nil
	}

	rec.Species = normalized
	if err := l.index.Set(ctx, rec); err != nil {
		return false, fmt.Errorf("load %03d %s: %w", rec.DexNum, rec.Species, err)
	}
	stats.Inserted++

	for _, sink := range l.sinks {
		if err := sink.UpsertRecord(ctx, rec); err != nil {
			stats.SinkErrors++
			log.Warn().Err(err).Str("species", rec.Species).Msg("Failed to forward record")
		}
	}
	return true, nil
}

func (l *Loader) exists(ctx context.Context, species string) (bool, error) {
	_, found, err := l.index.Get(ctx, species)
	if err != nil {
		return false, fmt.Errorf("check existing %s: %w", species, err)
	}
	return found, nil
}

// Package builder coordinates the cache build: a bounded pool of workers
// fans out over the species catalog, searching and downloading images for
// every species the cache does not already hold.
package builder

import (
	"context"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/perchpi/birdcache/internal/cache"
)

// Config controls Builder behavior.
type Config struct {
	Concurrency      int
	ImagesPerSpecies int
	Progress         bool
}

// Summary aggregates per-species outcomes for one build run.
type Summary struct {
	Cached  int
	Fetched int
	Partial int
	Missing int
}

// Total returns the number of species processed.
func (s Summary) Total() int {
	return s.Cached + s.Fetched + s.Partial + s.Missing
}

// Builder runs the cache build over a species catalog.
type Builder struct {
	searcher cache.Searcher
	store    cache.AssetStore
	cfg      Config
	logger   *zap.Logger
}

// New constructs a Builder.
func New(searcher cache.Searcher, store cache.AssetStore, cfg Config, logger *zap.Logger) *Builder {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}
	if cfg.ImagesPerSpecies <= 0 {
		cfg.ImagesPerSpecies = 3
	}
	return &Builder{
		searcher: searcher,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run processes every species with a fixed-size worker pool and blocks until
// all of them finish. Species are independent units of work: one species
// failing to yield images never aborts the others, and completion order is
// whatever the pool yields. The returned summary covers every species.
func (b *Builder) Run(ctx context.Context, entries []cache.SpeciesEntry) Summary {
	runID := uuid.NewString()
	logger := b.logger.With(zap.String("run_id", runID))
	logger.Info("Starting cache build",
		zap.Int("species", len(entries)),
		zap.Int("concurrency", b.cfg.Concurrency),
	)

	work := make(chan cache.SpeciesEntry)
	outcomes := make(chan cache.SpeciesOutcome)

	for i := 0; i < b.cfg.Concurrency; i++ {
		go func() {
			for entry := range work {
				outcomes <- b.processSpecies(ctx, entry, logger)
			}
		}()
	}
	go func() {
		defer close(work)
		for _, entry := range entries {
			work <- entry
		}
	}()

	var bar *pb.ProgressBar
	if b.cfg.Progress {
		bar = pb.Full.Start(len(entries))
		bar.Set(pb.CleanOnFinish, true)
	}

	var summary Summary
	for completed := 1; completed <= len(entries); completed++ {
		outcome := <-outcomes
		summary.add(outcome)
		if bar != nil {
			bar.Increment()
		}
		logger.Debug("Species completed",
			zap.Int("completed", completed),
			zap.Int("total", len(entries)),
			zap.String("species", outcome.CommonName),
			zap.String("status", string(outcome.Status)),
		)
	}
	if bar != nil {
		bar.Finish()
	}

	logger.Info("Cache build finished",
		zap.Int("cached", summary.Cached),
		zap.Int("fetched", summary.Fetched),
		zap.Int("partial", summary.Partial),
		zap.Int("missing", summary.Missing),
	)
	return summary
}

// processSpecies is one unit of work: skip if complete, otherwise search and
// store candidates at sequential slot indices.
func (b *Builder) processSpecies(ctx context.Context, entry cache.SpeciesEntry, logger *zap.Logger) cache.SpeciesOutcome {
	outcome := cache.SpeciesOutcome{CommonName: entry.CommonName}

	if b.store.IsSpeciesComplete(entry.CommonName, b.cfg.ImagesPerSpecies) {
		logger.Debug("Species already cached", zap.String("species", entry.CommonName))
		outcome.Status = cache.StatusCached
		return outcome
	}

	candidates, err := b.searcher.Search(ctx, entry.CommonName, entry.ScientificName, b.cfg.ImagesPerSpecies)
	if err != nil {
		logger.Warn("Search failed", zap.String("species", entry.CommonName), zap.Error(err))
		outcome.Status = cache.StatusMissing
		outcome.Err = err
		return outcome
	}
	if len(candidates) == 0 {
		logger.Warn("No images found", zap.String("species", entry.CommonName))
		outcome.Status = cache.StatusMissing
		return outcome
	}

	for i, candidate := range candidates {
		if err := b.store.Store(ctx, candidate, entry.CommonName, i+1); err != nil {
			logger.Warn("Failed to store image",
				zap.String("species", entry.CommonName),
				zap.Int("slot", i+1),
				zap.Error(err),
			)
			outcome.Err = err
			continue
		}
		outcome.Stored++
	}

	switch {
	case outcome.Stored == 0:
		outcome.Status = cache.StatusMissing
	case outcome.Stored < len(candidates):
		outcome.Status = cache.StatusPartial
	default:
		outcome.Status = cache.StatusFetched
	}
	return outcome
}

func (s *Summary) add(outcome cache.SpeciesOutcome) {
	switch outcome.Status {
	case cache.StatusCached:
		s.Cached++
	case cache.StatusFetched:
		s.Fetched++
	case cache.StatusPartial:
		s.Partial++
	case cache.StatusMissing:
		s.Missing++
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/forgo/statline/api/internal/metrics"
	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
	"golang.org/x/sync/errgroup"
)

// SeedService loads league records into the record store
type SeedService struct {
	store       search.RecordStore
	concurrency int
	logger      *slog.Logger
}

// SeedServiceConfig holds configuration for the seed service
type SeedServiceConfig struct {
	Store search.RecordStore
	// Concurrency caps how many entities SeedAll saves at once (default 4)
	Concurrency int
	Logger      *slog.Logger
}

// SeedResult contains the results of a seeding operation
type SeedResult struct {
	Entity   string `json:"entity"`
	Saved    int    `json:"saved"`
	Duration int64  `json:"duration_ms"`
}

// NewSeedService creates a new seed service
func NewSeedService(cfg SeedServiceConfig) *SeedService {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &SeedService{
		store:       cfg.Store,
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
	}
}

// Seed validates every record of entity and saves them. Nothing is saved if
// any record is invalid; the error names the record's position.
func (s *SeedService) Seed(ctx context.Context, entity string, recs []search.Record) (*SeedResult, error) {
	spec, ok := model.SpecFor(entity)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}

	start := time.Now()
	normalized := make([]search.Record, len(recs))
	for i, rec := range recs {
		n, err := search.Normalize(spec, rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		normalized[i] = n
	}

	if err := s.store.SaveAll(ctx, spec, normalized); err != nil {
		return nil, err
	}

	metrics.SeededRecords.WithLabelValues(entity).Add(float64(len(normalized)))
	result := &SeedResult{
		Entity:   entity,
		Saved:    len(normalized),
		Duration: time.Since(start).Milliseconds(),
	}
	s.logger.Info("seeded records",
		slog.String("entity", entity),
		slog.Int("saved", result.Saved),
		slog.Int64("duration_ms", result.Duration),
	)
	return result, nil
}

// SeedAll seeds several entities concurrently. Results are ordered by
// entity name. The first failure cancels the remaining entities.
func (s *SeedService) SeedAll(ctx context.Context, batches map[string][]search.Record) ([]SeedResult, error) {
	if len(batches) == 0 {
		return nil, ErrNoRecords
	}
	for entity := range batches {
		if _, ok := model.SpecFor(entity); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
		}
	}

	var (
		mu      sync.Mutex
		results = make([]SeedResult, 0, len(batches))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for entity, recs := range batches {
		if len(recs) == 0 {
			continue
		}
		g.Go(func() error {
			res, err := s.Seed(gctx, entity, recs)
			if err != nil {
				return fmt.Errorf("seed %s: %w", entity, err)
			}
			mu.Lock()
			results = append(results, *res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Entity < results[j].Entity })
	return results, nil
}

// SeedDemo generates a demo league and saves it
func (s *SeedService) SeedDemo(ctx context.Context, cfg DemoConfig) ([]SeedResult, error) {
	league, err := DemoLeague(cfg)
	if err != nil {
		return nil, err
	}
	return s.SeedAll(ctx, league)
}

package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/forgo/statline/api/internal/search"
	"github.com/sony/gobreaker"
)

// BreakerConfig tunes the store circuit breaker
type BreakerConfig struct {
	Name string
	// MaxRequests allowed through while half-open
	MaxRequests uint32
	// Interval clears failure counts while closed; zero never clears
	Interval time.Duration
	// Timeout is how long the breaker stays open
	Timeout time.Duration
	// TripAfter consecutive unavailability failures opens the breaker
	TripAfter uint32
}

// BreakerStore fails fast with StoreUnavailableError while its store keeps
// being unreachable. Only unavailability counts as failure.
type BreakerStore struct {
	store  search.RecordStore
	cb     *gobreaker.CircuitBreaker
	name   string
	logger *slog.Logger
}

// NewBreakerStore wraps store
func NewBreakerStore(store search.RecordStore, cfg BreakerConfig, logger *slog.Logger) *BreakerStore {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TripAfter == 0 {
		cfg.TripAfter = 5
	}
	b := &BreakerStore{store: store, name: cfg.Name, logger: logger}

	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.TripAfter
		},
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) {
				return true
			}
			var unavailable *search.StoreUnavailableError
			return !errors.As(err, &unavailable)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("store circuit breaker changed state",
				slog.String("store", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	return b
}

// State reports the breaker state
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	out, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &search.StoreUnavailableError{Store: b.name, Err: err}
	}
	return out, err
}

func (b *BreakerStore) Query(ctx context.Context, cond search.Condition) ([]search.Record, error) {
	out, err := b.execute(func() (interface{}, error) {
		return b.store.Query(ctx, cond)
	})
	if err != nil {
		return nil, err
	}
	return out.([]search.Record), nil
}

func (b *BreakerStore) Save(ctx context.Context, spec *search.Spec, rec search.Record) error {
	_, err := b.execute(func() (interface{}, error) {
		return nil, b.store.Save(ctx, spec, rec)
	})
	return err
}

func (b *BreakerStore) SaveAll(ctx context.Context, spec *search.Spec, recs []search.Record) error {
	_, err := b.execute(func() (interface{}, error) {
		return nil, b.store.SaveAll(ctx, spec, recs)
	})
	return err
}

// Ping bypasses the breaker so readiness reflects the store itself
func (b *BreakerStore) Ping(ctx context.Context) error {
	if p, ok := b.store.(search.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

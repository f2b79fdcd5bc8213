package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forgo/statline/api/internal/config"
	"github.com/forgo/statline/api/internal/database"
	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
	"github.com/forgo/statline/api/internal/search/searchtest"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails every call with err
type flakyStore struct {
	err   error
	calls int
}

func (f *flakyStore) Query(ctx context.Context, cond search.Condition) ([]search.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []search.Record{}, nil
}

func (f *flakyStore) Save(ctx context.Context, spec *search.Spec, rec search.Record) error {
	f.calls++
	return f.err
}

func (f *flakyStore) SaveAll(ctx context.Context, spec *search.Spec, recs []search.Record) error {
	f.calls++
	return f.err
}

func TestBreakerStore_OpensAfterConsecutiveUnavailability(t *testing.T) {
	t.Parallel()
	inner := &flakyStore{err: &search.StoreUnavailableError{Store: "flaky", Err: database.ErrConnection}}
	store := NewBreakerStore(inner, BreakerConfig{Name: "flaky", TripAfter: 2, Timeout: time.Minute}, nil)
	cond := compose(t, model.TeamSpec, search.NewRequest())

	for i := 0; i < 2; i++ {
		_, err := store.Query(context.Background(), cond)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, store.State())

	_, err := store.Query(context.Background(), cond)
	var unavailable *search.StoreUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, inner.calls, "open breaker must not reach the store")
}

func TestBreakerStore_OtherErrorsDoNotTrip(t *testing.T) {
	t.Parallel()
	inner := &flakyStore{err: &search.InvalidValueError{Entity: "team", Field: "year", Reason: "natural key field is required"}}
	store := NewBreakerStore(inner, BreakerConfig{Name: "flaky", TripAfter: 1}, nil)

	for i := 0; i < 3; i++ {
		err := store.Save(context.Background(), model.TeamSpec, search.Record{})
		var invalid *search.InvalidValueError
		require.ErrorAs(t, err, &invalid)
	}
	assert.Equal(t, gobreaker.StateClosed, store.State())
	assert.Equal(t, 3, inner.calls)
}

func TestBreakerStore_HalfOpenRecovers(t *testing.T) {
	t.Parallel()
	inner := &flakyStore{err: &search.StoreUnavailableError{Store: "flaky", Err: errors.New("down")}}
	store := NewBreakerStore(inner, BreakerConfig{Name: "flaky", TripAfter: 1, Timeout: 10 * time.Millisecond}, nil)
	cond := compose(t, model.TeamSpec, search.NewRequest())

	_, err := store.Query(context.Background(), cond)
	require.Error(t, err)
	require.Equal(t, gobreaker.StateOpen, store.State())

	inner.err = nil
	time.Sleep(20 * time.Millisecond)

	recs, err := store.Query(context.Background(), cond)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Equal(t, gobreaker.StateClosed, store.State())
}

func TestBreakerStore_CanceledCallersDoNotTrip(t *testing.T) {
	t.Parallel()
	db, err := database.OpenBadger(database.BadgerConfig{InMemory: true}, nil)
	require.NoError(t, err)
	defer db.Close()

	store := NewBreakerStore(NewBadgerRecordStore(db), BreakerConfig{Name: "badger", TripAfter: 5, Timeout: time.Minute}, nil)
	require.NoError(t, store.Save(context.Background(), model.TeamSpec, searchtest.TeamRecord(1, 2010, 1, 1, false)))
	cond := compose(t, model.TeamSpec, search.NewRequest())

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, err := store.Query(canceled, cond)
		require.ErrorIs(t, err, context.Canceled)
		var unavailable *search.StoreUnavailableError
		assert.False(t, errors.As(err, &unavailable), "a canceled caller is not an unavailable store")
	}
	assert.Equal(t, gobreaker.StateClosed, store.State())

	recs, err := store.Query(context.Background(), cond)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestBreakerStore_PingBypassesBreaker(t *testing.T) {
	t.Parallel()
	store := NewBreakerStore(NewMemoryRecordStore(), BreakerConfig{Name: "memory"}, nil)
	assert.NoError(t, store.Ping(context.Background()))

	plain := NewBreakerStore(&flakyStore{}, BreakerConfig{Name: "flaky"}, nil)
	assert.NoError(t, plain.Ping(context.Background()), "stores without Ping are always ready")
}

// ============================================================================
// OpenStore
// ============================================================================

func TestOpenStore_Memory(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}}

	store, cleanup, err := OpenStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer cleanup()

	_, ok := store.(*MemoryRecordStore)
	assert.True(t, ok, "breaker disabled should return the bare store")
}

func TestOpenStore_BadgerWithBreaker(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		Store:   config.StoreConfig{Backend: config.BackendBadger},
		Badger:  config.BadgerConfig{InMemory: true},
		Breaker: config.BreakerConfig{Enabled: true, TripAfter: 3, OpenTimeout: time.Second},
	}

	store, cleanup, err := OpenStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer cleanup()

	breaker, ok := store.(*BreakerStore)
	require.True(t, ok)
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
	assert.NoError(t, breaker.Ping(context.Background()))

	require.NoError(t, store.Save(context.Background(), model.TeamSpec, search.Record{
		"team_id": 1, "year": 2000, "conference_id": 1, "division_id": 1, "allstar": false,
	}))
	recs, err := store.Query(context.Background(), compose(t, model.TeamSpec, search.NewRequest()))
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{Store: config.StoreConfig{Backend: "mongo"}}

	_, _, err := OpenStore(context.Background(), cfg, nil)
	assert.Error(t, err)
}

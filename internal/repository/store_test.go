package repository

import (
	"context"
	"testing"

	"github.com/forgo/statline/api/internal/database"
	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
	"github.com/forgo/statline/api/internal/search/searchtest"
	"github.com/forgo/statline/api/internal/testing/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecordStore_Suite(t *testing.T) {
	searchtest.RunStoreSuite(t, func(t *testing.T) search.RecordStore {
		return NewMemoryRecordStore()
	})
}

func TestBadgerRecordStore_Suite(t *testing.T) {
	searchtest.RunStoreSuite(t, func(t *testing.T) search.RecordStore {
		db, err := database.OpenBadger(database.BadgerConfig{InMemory: true}, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return NewBadgerRecordStore(db)
	})
}

func TestBreakerStore_Suite(t *testing.T) {
	searchtest.RunStoreSuite(t, func(t *testing.T) search.RecordStore {
		return NewBreakerStore(NewMemoryRecordStore(), BreakerConfig{Name: "memory"}, nil)
	})
}

func TestSurrealRecordStore_Suite(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	store := NewSurrealRecordStore(tdb.DB)
	searchtest.RunStoreSuite(t, func(t *testing.T) search.RecordStore {
		tdb.Reset(t, model.EntityNames()...)
		return store
	})
}

func TestPostgresRecordStore_Suite(t *testing.T) {
	pg := testdb.NewPostgres(t)
	defer pg.Close()

	store := NewPostgresRecordStore(pg.Pool)
	searchtest.RunStoreSuite(t, func(t *testing.T) search.RecordStore {
		pg.Reset(t, model.EntityNames()...)
		return store
	})
}

// ============================================================================
// Memory store
// ============================================================================

func TestMemoryRecordStore_SaveAllRejectsWholeBatch(t *testing.T) {
	t.Parallel()
	store := NewMemoryRecordStore()
	ctx := context.Background()

	err := store.SaveAll(ctx, model.TeamSpec, []search.Record{
		searchtest.TeamRecord(1, 2000, 1, 1, false),
		{"team_id": 2}, // no year
	})

	var invalid *search.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "year", invalid.Field)
	assert.Equal(t, 0, store.Len("team"))
}

func TestMemoryRecordStore_StoresCanonicalValues(t *testing.T) {
	t.Parallel()
	store := NewMemoryRecordStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, model.GameStateSpec, search.Record{
		"game_id":       float64(7),
		"status":        "final",
		"inning":        9,
		"half":          "BOTTOM",
		"extra_innings": false,
		"outs":          3,
		"home_score":    4,
		"away_score":    2,
	}))

	cond, err := search.Compose(model.GameStateSpec, search.NewRequest().Set("status", "FINAL"))
	require.NoError(t, err)

	recs, err := store.Query(ctx, cond)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(7), recs[0]["game_id"])
	assert.Equal(t, int64(2), recs[0]["status"])
	assert.Equal(t, int64(1), recs[0]["half"])
	assert.Equal(t, int64(0), recs[0]["extra_innings"])
	assert.Equal(t, int64(3), recs[0]["outs"])
}

func TestMemoryRecordStore_QueryReturnsCopies(t *testing.T) {
	t.Parallel()
	store := NewMemoryRecordStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, model.TeamSpec, searchtest.TeamRecord(1, 2000, 1, 1, false)))

	cond, err := search.Compose(model.TeamSpec, search.NewRequest())
	require.NoError(t, err)

	recs, err := store.Query(ctx, cond)
	require.NoError(t, err)
	recs[0]["name"] = "changed"

	again, err := store.Query(ctx, cond)
	require.NoError(t, err)
	assert.Equal(t, "Team", again[0]["name"])
}

func TestMemoryRecordStore_Ping(t *testing.T) {
	t.Parallel()
	assert.NoError(t, NewMemoryRecordStore().Ping(context.Background()))
}

// ============================================================================
// Badger store
// ============================================================================

func TestBadgerRecordStore_ClosedIsUnavailable(t *testing.T) {
	t.Parallel()
	db, err := database.OpenBadger(database.BadgerConfig{InMemory: true}, nil)
	require.NoError(t, err)
	store := NewBadgerRecordStore(db)
	require.NoError(t, db.Close())

	var unavailable *search.StoreUnavailableError
	assert.ErrorAs(t, store.Ping(context.Background()), &unavailable)

	cond, err := search.Compose(model.TeamSpec, search.NewRequest())
	require.NoError(t, err)
	_, err = store.Query(context.Background(), cond)
	assert.ErrorAs(t, err, &unavailable)
}

func TestBadgerRecordStore_KeysPerEntity(t *testing.T) {
	t.Parallel()
	db, err := database.OpenBadger(database.BadgerConfig{InMemory: true}, nil)
	require.NoError(t, err)
	defer db.Close()
	store := NewBadgerRecordStore(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, model.TeamSpec, searchtest.TeamRecord(1, 2000, 1, 1, false)))
	require.NoError(t, store.Save(ctx, model.TeamOffenseSpec, search.Record{
		"team_id": 1, "season": 2000, "phase": "REGULAR_SEASON",
	}))

	cond, err := search.Compose(model.TeamSpec, search.NewRequest())
	require.NoError(t, err)
	recs, err := store.Query(ctx, cond)
	require.NoError(t, err)
	assert.Len(t, recs, 1, "team prefix must not include team_offense records")
}

func TestBadgerRecordStore_CanceledContext(t *testing.T) {
	t.Parallel()
	db, err := database.OpenBadger(database.BadgerConfig{InMemory: true}, nil)
	require.NoError(t, err)
	defer db.Close()
	store := NewBadgerRecordStore(db)
	require.NoError(t, store.Save(context.Background(), model.TeamSpec, searchtest.TeamRecord(1, 2000, 1, 1, false)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cond, err := search.Compose(model.TeamSpec, search.NewRequest())
	require.NoError(t, err)
	_, err = store.Query(ctx, cond)

	var unavailable *search.StoreUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

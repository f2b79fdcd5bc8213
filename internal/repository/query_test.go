package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/forgo/statline/api/internal/database"
	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

func compose(t *testing.T, spec *search.Spec, req search.Request) search.Condition {
	t.Helper()
	cond, err := search.Compose(spec, req)
	require.NoError(t, err)
	return cond
}

// ============================================================================
// SurrealQL
// ============================================================================

func TestSurrealSelect_NoTerms(t *testing.T) {
	t.Parallel()
	query, vars := surrealSelect(compose(t, model.TeamSpec, search.NewRequest()))

	assert.Equal(t, "SELECT * FROM type::table($tb)", query)
	assert.Equal(t, map[string]interface{}{"tb": "team"}, vars)
}

func TestSurrealSelect_TermsInDeclarationOrder(t *testing.T) {
	t.Parallel()
	req := search.NewRequest().
		Set("extra_innings", true).
		Set("status", "FINAL").
		Set("game_id", 12)

	query, vars := surrealSelect(compose(t, model.GameStateSpec, req))

	assert.Equal(t, "SELECT * FROM type::table($tb) WHERE game_id = $f_game_id AND status = $f_status AND extra_innings = $f_extra_innings", query)
	assert.Equal(t, int64(12), vars["f_game_id"])
	assert.Equal(t, int64(2), vars["f_status"])
	assert.Equal(t, int64(1), vars["f_extra_innings"])
}

type fakeSurreal struct {
	rows    []interface{}
	err     error
	queries []string
}

func (f *fakeSurreal) Connect(ctx context.Context) error { return nil }
func (f *fakeSurreal) Close() error                      { return nil }
func (f *fakeSurreal) Ping(ctx context.Context) error    { return f.err }

func (f *fakeSurreal) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return []interface{}{map[string]interface{}{"status": "OK", "result": f.rows}}, nil
}

func (f *fakeSurreal) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := f.Query(ctx, query, vars)
	return err
}

func TestSurrealRecordStore_QueryConvertsRows(t *testing.T) {
	t.Parallel()
	db := &fakeSurreal{rows: []interface{}{
		map[string]interface{}{
			"id":        "schedule:1",
			"game_id":   uint64(1),
			"season":    int64(2024),
			"game_date": models.CustomDateTime{Time: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		},
	}}
	store := NewSurrealRecordStore(db)

	recs, err := store.Query(context.Background(), compose(t, model.ScheduleSpec, search.NewRequest()))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.NotContains(t, recs[0], "id")
	assert.Equal(t, int64(1), recs[0]["game_id"])

	date, err := search.DateField("game_date").Canonical(recs[0]["game_date"])
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", date)
}

func TestSurrealRecordStore_ConnectionErrorIsUnavailable(t *testing.T) {
	t.Parallel()
	store := NewSurrealRecordStore(&fakeSurreal{err: fmt.Errorf("%w: socket closed", database.ErrConnection)})

	_, err := store.Query(context.Background(), compose(t, model.TeamSpec, search.NewRequest()))

	var unavailable *search.StoreUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "surrealdb", unavailable.Store)
	assert.ErrorIs(t, err, database.ErrConnection)
}

func TestSurrealRecordStore_QueryErrorPassesThrough(t *testing.T) {
	t.Parallel()
	store := NewSurrealRecordStore(&fakeSurreal{err: fmt.Errorf("%w: parse error", database.ErrQuery)})

	_, err := store.Query(context.Background(), compose(t, model.TeamSpec, search.NewRequest()))

	var unavailable *search.StoreUnavailableError
	assert.False(t, errors.As(err, &unavailable))
	assert.ErrorIs(t, err, database.ErrQuery)
}

func TestSurrealRecordStore_SaveAllBatches(t *testing.T) {
	t.Parallel()
	db := &fakeSurreal{}
	store := NewSurrealRecordStore(db)

	recs := make([]search.Record, surrealBatchSize+1)
	for i := range recs {
		recs[i] = search.Record{"game_id": i + 1, "status": "SCHEDULED", "inning": 1, "half": "TOP", "extra_innings": false}
	}
	require.NoError(t, store.SaveAll(context.Background(), model.GameStateSpec, recs))
	assert.Len(t, db.queries, 2)
}

func TestSurrealRecordStore_SaveAllChecksEveryRecordFirst(t *testing.T) {
	t.Parallel()
	db := &fakeSurreal{}
	store := NewSurrealRecordStore(db)

	recs := make([]search.Record, surrealBatchSize+1)
	for i := range recs {
		recs[i] = search.Record{"game_id": i + 1, "status": "SCHEDULED", "inning": 1, "half": "TOP", "extra_innings": false}
	}
	recs[surrealBatchSize]["status"] = "RAINED_OUT"

	err := store.SaveAll(context.Background(), model.GameStateSpec, recs)
	var invalid *search.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "status", invalid.Field)
	assert.Empty(t, db.queries, "no block may be written when a later record is bad")
}

func TestSurrealRecordStore_SaveRejectsMissingKey(t *testing.T) {
	t.Parallel()
	db := &fakeSurreal{}
	store := NewSurrealRecordStore(db)

	err := store.Save(context.Background(), model.TeamSpec, search.Record{"team_id": 1})

	var invalid *search.InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, db.queries)
}

// ============================================================================
// SQL
// ============================================================================

func TestPostgresSelect(t *testing.T) {
	t.Parallel()
	req := search.NewRequest().
		Set("game_date", "2024-04-01").
		Set("position", "CATCHER").
		Set("player_id", 5)

	sql, args := postgresSelect(compose(t, model.PlayerGameSpec, req))

	assert.Equal(t, `SELECT * FROM "player_game" WHERE "player_id" = $1 AND "game_date" = $2 AND "position" = $3`, sql)
	require.Len(t, args, 3)
	assert.Equal(t, int64(5), args[0])
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), args[1])
	assert.Equal(t, int64(2), args[2])
}

func TestPostgresSelect_NoTerms(t *testing.T) {
	t.Parallel()
	sql, args := postgresSelect(compose(t, model.TeamSpec, search.NewRequest()))

	assert.Equal(t, `SELECT * FROM "team"`, sql)
	assert.Empty(t, args)
}

func TestUpsertSQL(t *testing.T) {
	t.Parallel()
	rec, err := search.Normalize(model.TeamSpec, search.Record{
		"team_id": 3, "year": 2001, "conference_id": 1, "division_id": 2, "allstar": true, "name": "Comets",
	})
	require.NoError(t, err)

	sql, args := upsertSQL(model.TeamSpec, rec)

	assert.Equal(t,
		`INSERT INTO "team" ("allstar", "conference_id", "division_id", "name", "team_id", "year") VALUES ($1, $2, $3, $4, $5, $6) `+
			`ON CONFLICT ("team_id", "year") DO UPDATE SET "allstar" = EXCLUDED."allstar", "conference_id" = EXCLUDED."conference_id", `+
			`"division_id" = EXCLUDED."division_id", "name" = EXCLUDED."name"`,
		sql)
	assert.Equal(t, []any{int64(1), int64(1), int64(2), "Comets", int64(3), int64(2001)}, args)
}

func TestUpsertSQL_KeyOnly(t *testing.T) {
	t.Parallel()
	rec, err := search.Normalize(model.TeamOffenseSpec, search.Record{"team_id": 1, "season": 2000, "phase": 0})
	require.NoError(t, err)

	sql, _ := upsertSQL(model.TeamOffenseSpec, rec)
	assert.Contains(t, sql, `ON CONFLICT ("team_id", "season", "phase") DO NOTHING`)
}

// ============================================================================
// Helpers
// ============================================================================

func TestUnavailable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection", database.ErrConnection, true},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), false},
		{"query", database.ErrQuery, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := unavailable("test", tt.err)
			var se *search.StoreUnavailableError
			assert.Equal(t, tt.want, errors.As(err, &se))
			if tt.err == nil {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtractQueryResults(t *testing.T) {
	t.Parallel()

	rows, ok := extractQueryResults(nil)
	assert.False(t, ok)
	assert.Nil(t, rows)

	rows, ok = extractQueryResults([]interface{}{map[string]interface{}{"status": "OK", "result": []interface{}{1, 2}}})
	assert.True(t, ok)
	assert.Len(t, rows, 2)

	rows, ok = extractQueryResults([]interface{}{map[string]interface{}{"status": "OK"}})
	assert.True(t, ok)
	assert.Empty(t, rows)
}

package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDB struct {
	query string
	vars  map[string]interface{}
	err   error
}

func (r *recordingDB) Connect(ctx context.Context) error { return nil }
func (r *recordingDB) Close() error                      { return nil }
func (r *recordingDB) Ping(ctx context.Context) error    { return nil }

func (r *recordingDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	r.query, r.vars = query, vars
	return nil, r.err
}

func (r *recordingDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := r.Query(ctx, query, vars)
	return err
}

func TestTxBuilder_NamespacesVariables(t *testing.T) {
	tb := NewTxBuilder()
	tb.Add("UPSERT type::thing($tb, $id) CONTENT $rec", map[string]interface{}{"tb": "team", "id": "1|2000", "rec": 1})
	tb.Add("UPSERT type::thing($tb, $id) CONTENT $rec", map[string]interface{}{"tb": "team", "id": "2|2000", "rec": 2})

	query, vars := tb.Build()

	assert.True(t, strings.HasPrefix(query, "BEGIN TRANSACTION;\n"))
	assert.True(t, strings.HasSuffix(query, "COMMIT TRANSACTION;"))
	assert.Len(t, vars, 6)
	assert.NotContains(t, query, "$id)")
	assert.Equal(t, 2, tb.Len())

	seen := map[interface{}]bool{}
	for _, v := range vars {
		seen[v] = true
	}
	assert.True(t, seen["1|2000"])
	assert.True(t, seen["2|2000"])
}

func TestTxBuilder_LongerNamesReplacedFirst(t *testing.T) {
	tb := NewTxBuilder()
	tb.Add("SELECT * FROM x WHERE a = $id AND b = $id_key", map[string]interface{}{"id": 1, "id_key": 2})

	query, vars := tb.Build()

	for name, v := range vars {
		assert.Contains(t, query, "$"+name)
		if strings.HasSuffix(name, "_id_key") {
			assert.Equal(t, 2, v)
		}
	}
}

func TestAtomicBatch_Execute(t *testing.T) {
	db := &recordingDB{}

	require.NoError(t, NewAtomicBatch().Execute(context.Background(), db))
	assert.Empty(t, db.query, "empty batch should not hit the database")

	batch := NewAtomicBatch().
		Add("DELETE team", nil).
		Add("UPSERT team:1 CONTENT $rec", map[string]interface{}{"rec": map[string]interface{}{"team_id": 1}})
	require.NoError(t, batch.Execute(context.Background(), db))
	assert.Equal(t, 2, batch.Len())
	assert.Contains(t, db.query, "DELETE team;")
}

func TestAtomicBatch_PropagatesError(t *testing.T) {
	db := &recordingDB{err: ErrConnection}

	err := NewAtomicBatch().Add("DELETE team", nil).Execute(context.Background(), db)

	assert.True(t, errors.Is(err, ErrConnection))
}

func TestPostgresConfig_ConnString(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: 5432, User: "stats", Password: "p@ss/word", Name: "league"}
	assert.Equal(t, "postgres://stats:p%40ss%2Fword@db:5432/league?sslmode=disable", cfg.ConnString())

	cfg.DSN = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.ConnString())
}

func TestConfig_Endpoint(t *testing.T) {
	assert.Equal(t, "ws://localhost:8000", Config{Host: "localhost", Port: "8000"}.Endpoint())
}

func TestSurrealDB_NotConnected(t *testing.T) {
	db := NewSurrealDB(Config{})

	_, err := db.Query(context.Background(), "SELECT * FROM team", nil)
	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, db.Ping(context.Background()), ErrConnection)
	assert.NoError(t, db.Close())
}

func TestOpenBadger_InMemory(t *testing.T) {
	db, err := OpenBadger(BadgerConfig{InMemory: true}, nil)
	require.NoError(t, err)
	defer db.Close()

	_, err = OpenBadger(BadgerConfig{}, nil)
	assert.ErrorIs(t, err, ErrConnection)
}

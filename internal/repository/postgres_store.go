package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/forgo/statline/api/internal/database"
	"github.com/forgo/statline/api/internal/search"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRecordStore keeps each entity in a table of the same name. Every
// table has a primary key over the entity's natural key.
type PostgresRecordStore struct {
	pool *pgxpool.Pool
}

// NewPostgresRecordStore creates a store over pool
func NewPostgresRecordStore(pool *pgxpool.Pool) *PostgresRecordStore {
	return &PostgresRecordStore{pool: pool}
}

// Query selects the entity's rows matching every term
func (s *PostgresRecordStore) Query(ctx context.Context, cond search.Condition) ([]search.Record, error) {
	sql, args := postgresSelect(cond)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, pgUnavailable(err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, pgUnavailable(fmt.Errorf("%w: %v", database.ErrQuery, err))
	}

	records := make([]search.Record, len(maps))
	for i, m := range maps {
		records[i] = search.Record(m)
	}
	return records, nil
}

func postgresSelect(cond search.Condition) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(pgx.Identifier{cond.Entity()}.Sanitize())

	terms := cond.Terms()
	args := make([]any, 0, len(terms))
	for i, t := range terms {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		fmt.Fprintf(&sb, "%s = $%d", pgx.Identifier{t.Field.Name}.Sanitize(), i+1)
		args = append(args, pgArg(t.Field, t.Value))
	}
	return sb.String(), args
}

func pgArg(f search.Field, v any) any {
	if f.Type == search.Date {
		return dateValue(v)
	}
	return v
}

// upsertSQL builds INSERT ... ON CONFLICT (key) DO UPDATE for rec's columns
func upsertSQL(spec *search.Spec, rec search.Record) (string, []any) {
	cols := make([]string, 0, len(rec))
	for c := range rec {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	isKey := make(map[string]bool, len(spec.Key))
	for _, k := range spec.Key {
		isKey[k] = true
	}

	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	updates := make([]string, 0, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		q := pgx.Identifier{c}.Sanitize()
		quoted[i] = q
		params[i] = fmt.Sprintf("$%d", i+1)
		if !isKey[c] {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", q, q))
		}
		v := rec[c]
		if f, ok := spec.Field(c); ok {
			v = pgArg(f, v)
		}
		args[i] = v
	}

	keys := make([]string, len(spec.Key))
	for i, k := range spec.Key {
		keys[i] = pgx.Identifier{k}.Sanitize()
	}

	onConflict := "DO NOTHING"
	if len(updates) > 0 {
		onConflict = "DO UPDATE SET " + strings.Join(updates, ", ")
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) %s",
		pgx.Identifier{spec.Entity}.Sanitize(),
		strings.Join(quoted, ", "),
		strings.Join(params, ", "),
		strings.Join(keys, ", "),
		onConflict,
	)
	return sql, args
}

// Save upserts one record
func (s *PostgresRecordStore) Save(ctx context.Context, spec *search.Spec, rec search.Record) error {
	return s.SaveAll(ctx, spec, []search.Record{rec})
}

// SaveAll upserts records in one transaction
func (s *PostgresRecordStore) SaveAll(ctx context.Context, spec *search.Spec, recs []search.Record) error {
	if len(recs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, raw := range recs {
		rec, err := search.Normalize(spec, raw)
		if err != nil {
			return err
		}
		sql, args := upsertSQL(spec, rec)
		batch.Queue(sql, args...)
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return pgUnavailable(fmt.Errorf("save %s: %w", spec.Entity, err))
	}
	return nil
}

// Ping checks the pool
func (s *PostgresRecordStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return &search.StoreUnavailableError{Store: "postgres", Err: err}
	}
	return nil
}

func pgUnavailable(err error) error {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return &search.StoreUnavailableError{Store: "postgres", Err: err}
	}
	return unavailable("postgres", err)
}

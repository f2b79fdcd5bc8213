package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgo/statline/api/internal/database"
	"github.com/forgo/statline/api/internal/search"
)

// surrealBatchSize bounds the statements sent in one transaction block
const surrealBatchSize = 250

// SurrealRecordStore keeps each entity in a SurrealDB table of the same
// name. Record ids are the rendered natural key, so saving is an upsert.
type SurrealRecordStore struct {
	db database.Database
}

// NewSurrealRecordStore creates a store over db
func NewSurrealRecordStore(db database.Database) *SurrealRecordStore {
	return &SurrealRecordStore{db: db}
}

// Query selects the entity's rows matching every term
func (s *SurrealRecordStore) Query(ctx context.Context, cond search.Condition) ([]search.Record, error) {
	query, vars := surrealSelect(cond)

	result, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return nil, unavailable("surrealdb", err)
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []search.Record{}, nil
	}

	records := make([]search.Record, 0, len(rows))
	for _, row := range rows {
		rec, ok := toRecord(row)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected row %T in %s", database.ErrQuery, row, cond.Entity())
		}
		records = append(records, rec)
	}
	return records, nil
}

// surrealSelect renders a condition as a parameterized SELECT. Field names
// come from entity specs, never from callers, so they are written inline.
func surrealSelect(cond search.Condition) (string, map[string]interface{}) {
	query := "SELECT * FROM type::table($tb)"
	vars := map[string]interface{}{"tb": cond.Entity()}

	terms := cond.Terms()
	if len(terms) == 0 {
		return query, vars
	}

	clauses := make([]string, len(terms))
	for i, t := range terms {
		param := "f_" + t.Field.Name
		clauses[i] = fmt.Sprintf("%s = $%s", t.Field.Name, param)
		vars[param] = t.Value
	}
	return query + " WHERE " + strings.Join(clauses, " AND "), vars
}

// Save upserts one record
func (s *SurrealRecordStore) Save(ctx context.Context, spec *search.Spec, rec search.Record) error {
	return s.SaveAll(ctx, spec, []search.Record{rec})
}

// SaveAll upserts records in transaction blocks. Every record is checked
// before the first block is sent.
func (s *SurrealRecordStore) SaveAll(ctx context.Context, spec *search.Spec, recs []search.Record) error {
	type keyed struct {
		key string
		rec search.Record
	}
	rows := make([]keyed, len(recs))
	for i, raw := range recs {
		rec, err := search.Normalize(spec, raw)
		if err != nil {
			return err
		}
		key, err := spec.KeyOf(rec)
		if err != nil {
			return err
		}
		rows[i] = keyed{key: key, rec: rec}
	}

	for start := 0; start < len(rows); start += surrealBatchSize {
		end := min(start+surrealBatchSize, len(rows))

		batch := database.NewAtomicBatch()
		for _, row := range rows[start:end] {
			batch.Add("UPSERT type::thing($tb, $key) CONTENT $rec", map[string]interface{}{
				"tb":  spec.Entity,
				"key": row.key,
				"rec": map[string]interface{}(row.rec),
			})
		}

		if err := batch.Execute(ctx, s.db); err != nil {
			return unavailable("surrealdb", fmt.Errorf("save %s: %w", spec.Entity, err))
		}
	}
	return nil
}

// Ping checks the connection
func (s *SurrealRecordStore) Ping(ctx context.Context) error {
	return unavailable("surrealdb", s.db.Ping(ctx))
}

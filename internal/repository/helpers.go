package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/statline/api/internal/database"
	"github.com/forgo/statline/api/internal/search"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// unavailable converts connection failures into search.StoreUnavailableError
// and leaves every other error alone. A canceled context belongs to the
// caller and is returned as is.
func unavailable(store string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, database.ErrConnection) ||
		errors.Is(err, context.DeadlineExceeded) {
		return &search.StoreUnavailableError{Store: store, Err: err}
	}
	return err
}

// extractQueryResults extracts the first statement's rows from a SurrealDB
// response
func extractQueryResults(result []interface{}) ([]interface{}, bool) {
	if len(result) == 0 {
		return nil, false
	}
	if first, ok := result[0].(map[string]interface{}); ok {
		if rows, ok := first["result"].([]interface{}); ok {
			return rows, true
		}
		if _, hasStatus := first["status"]; hasStatus {
			return nil, true
		}
	}
	// Direct array format
	return result, true
}

// toRecord converts a SurrealDB row into a Record. The generated record id
// is dropped; Surreal-specific scalar types become plain Go values.
func toRecord(row interface{}) (search.Record, bool) {
	m, ok := row.(map[string]interface{})
	if !ok {
		return nil, false
	}
	rec := make(search.Record, len(m))
	for k, v := range m {
		if k == "id" {
			continue
		}
		rec[k] = plainValue(v)
	}
	return search.NormalizeValues(rec), true
}

func plainValue(v interface{}) interface{} {
	switch t := v.(type) {
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
		return nil
	case models.RecordID:
		return t.String()
	case *models.RecordID:
		if t != nil {
			return t.String()
		}
		return nil
	}
	return v
}

// dateValue parses a canonical date for drivers with a native date type
func dateValue(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	t, err := time.Parse(search.DateLayout, s)
	if err != nil {
		return v
	}
	return t
}

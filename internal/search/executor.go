package search

import (
	"context"
	"errors"
	"fmt"
)

// RecordStore is the persistence boundary. Query returns every record of
// cond's entity matching all of its terms, in no particular order.
type RecordStore interface {
	Query(ctx context.Context, cond Condition) ([]Record, error)
	Save(ctx context.Context, spec *Spec, rec Record) error
	SaveAll(ctx context.Context, spec *Spec, recs []Record) error
}

// Pinger is implemented by stores that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Executor runs conditions against a store.
type Executor struct {
	store RecordStore
}

// NewExecutor creates an executor over store.
func NewExecutor(store RecordStore) *Executor {
	return &Executor{store: store}
}

// Execute returns the matching records. No match yields an empty, non-nil
// slice.
func (e *Executor) Execute(ctx context.Context, cond Condition) ([]Record, error) {
	records, err := e.store.Query(ctx, cond)
	if err != nil {
		var unavailable *StoreUnavailableError
		if errors.As(err, &unavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("query %s: %w", cond.Entity(), err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// Ping checks the underlying store when it supports it.
func (e *Executor) Ping(ctx context.Context) error {
	if p, ok := e.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Mapper projects a stored record into a response value.
type Mapper[T any] func(Record) (T, error)

// Find composes req under spec, executes it, and maps every result.
func Find[T any](ctx context.Context, exec *Executor, spec *Spec, req Request, mapFn Mapper[T]) ([]T, error) {
	cond, err := Compose(spec, req)
	if err != nil {
		return nil, err
	}
	records, err := exec.Execute(ctx, cond)
	if err != nil {
		return nil, err
	}
	return MapAll(spec.Entity, records, mapFn)
}

// MapAll maps every record, failing the whole result on the first record
// that cannot be mapped.
func MapAll[T any](entity string, records []Record, mapFn Mapper[T]) ([]T, error) {
	out := make([]T, 0, len(records))
	for i, rec := range records {
		v, err := mapFn(rec)
		if err != nil {
			var me *MappingError
			if errors.As(err, &me) {
				cp := *me
				cp.Index = i
				return nil, &cp
			}
			return nil, &MappingError{Entity: entity, Index: i, Reason: err.Error()}
		}
		out = append(out, v)
	}
	return out, nil
}

package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/forgo/statline/api/internal/search"
)

// BadgerRecordStore keeps records as JSON values under "<entity>/<key>".
// Queries scan the entity's prefix and apply the condition in memory.
type BadgerRecordStore struct {
	db *badger.DB
}

// NewBadgerRecordStore creates a store over an open Badger database
func NewBadgerRecordStore(db *badger.DB) *BadgerRecordStore {
	return &BadgerRecordStore{db: db}
}

func badgerPrefix(entity string) []byte {
	return []byte(entity + "/")
}

func badgerKey(entity, key string) []byte {
	return append(badgerPrefix(entity), key...)
}

// Query scans the entity and keeps matching records, in key order
func (s *BadgerRecordStore) Query(ctx context.Context, cond search.Condition) ([]search.Record, error) {
	records := []search.Record{}
	prefix := badgerPrefix(cond.Entity())

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec search.Record
			if err := it.Item().Value(func(val []byte) error {
				var decodeErr error
				rec, decodeErr = decodeRecord(val)
				return decodeErr
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			if cond.Matches(rec) {
				records = append(records, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, badgerUnavailable(err)
	}
	return records, nil
}

func decodeRecord(val []byte) (search.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(val))
	dec.UseNumber()
	var rec search.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return search.NormalizeValues(rec), nil
}

// Save upserts one record
func (s *BadgerRecordStore) Save(ctx context.Context, spec *search.Spec, rec search.Record) error {
	key, val, err := encodeRecord(spec, rec)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
	return badgerUnavailable(err)
}

// SaveAll upserts records through a write batch
func (s *BadgerRecordStore) SaveAll(ctx context.Context, spec *search.Spec, recs []search.Record) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, rec := range recs {
		key, val, err := encodeRecord(spec, rec)
		if err != nil {
			return err
		}
		if err := wb.Set(key, val); err != nil {
			return badgerUnavailable(err)
		}
	}
	return badgerUnavailable(wb.Flush())
}

func encodeRecord(spec *search.Spec, rec search.Record) ([]byte, []byte, error) {
	rec, err := search.Normalize(spec, rec)
	if err != nil {
		return nil, nil, err
	}
	key, err := spec.KeyOf(rec)
	if err != nil {
		return nil, nil, err
	}
	val, err := json.Marshal(rec)
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s %s: %w", spec.Entity, key, err)
	}
	return badgerKey(spec.Entity, key), val, nil
}

// Ping reports whether the database is still open
func (s *BadgerRecordStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return &search.StoreUnavailableError{Store: "badger", Err: badger.ErrDBClosed}
	}
	return nil
}

func badgerUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badger.ErrDBClosed) {
		return &search.StoreUnavailableError{Store: "badger", Err: err}
	}
	return unavailable("badger", err)
}

package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/forgo/statline/api/internal/search"
)

// MemoryRecordStore holds records in process. Each entity keeps one posting
// bitmap per field=value pair over record slots, and a query intersects the
// bitmaps of its terms.
type MemoryRecordStore struct {
	mu     sync.RWMutex
	tables map[string]*memoryTable
}

type memoryTable struct {
	records  []search.Record
	slots    map[string]uint32
	postings map[string]*roaring.Bitmap
	all      *roaring.Bitmap
}

// NewMemoryRecordStore creates an empty store
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{tables: make(map[string]*memoryTable)}
}

func postingKey(field string, value any) string {
	return fmt.Sprintf("%s\x00%v", field, value)
}

// Query intersects the posting bitmaps of every term
func (s *MemoryRecordStore) Query(ctx context.Context, cond search.Condition) ([]search.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.tables[cond.Entity()]
	if !ok {
		return []search.Record{}, nil
	}

	result := table.all
	for _, t := range cond.Terms() {
		bitmap, ok := table.postings[postingKey(t.Field.Name, t.Value)]
		if !ok {
			return []search.Record{}, nil
		}
		result = roaring.And(result, bitmap)
		if result.IsEmpty() {
			return []search.Record{}, nil
		}
	}

	records := make([]search.Record, 0, result.GetCardinality())
	it := result.Iterator()
	for it.HasNext() {
		records = append(records, table.records[it.Next()].Clone())
	}
	return records, nil
}

// Save upserts one record
func (s *MemoryRecordStore) Save(ctx context.Context, spec *search.Spec, rec search.Record) error {
	return s.SaveAll(ctx, spec, []search.Record{rec})
}

// SaveAll upserts records. Nothing is written if any record is invalid.
func (s *MemoryRecordStore) SaveAll(ctx context.Context, spec *search.Spec, recs []search.Record) error {
	normalized := make([]search.Record, len(recs))
	keys := make([]string, len(recs))
	for i, raw := range recs {
		rec, err := search.Normalize(spec, raw)
		if err != nil {
			return err
		}
		key, err := spec.KeyOf(rec)
		if err != nil {
			return err
		}
		normalized[i], keys[i] = rec, key
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.tables[spec.Entity]
	if !ok {
		table = &memoryTable{
			slots:    make(map[string]uint32),
			postings: make(map[string]*roaring.Bitmap),
			all:      roaring.New(),
		}
		s.tables[spec.Entity] = table
	}

	for i, rec := range normalized {
		table.put(spec, keys[i], rec)
	}
	return nil
}

func (t *memoryTable) put(spec *search.Spec, key string, rec search.Record) {
	slot, exists := t.slots[key]
	if exists {
		t.index(spec, slot, t.records[slot], false)
		t.records[slot] = rec
	} else {
		slot = uint32(len(t.records))
		t.records = append(t.records, rec)
		t.slots[key] = slot
		t.all.Add(slot)
	}
	t.index(spec, slot, rec, true)
}

func (t *memoryTable) index(spec *search.Spec, slot uint32, rec search.Record, add bool) {
	for _, f := range spec.Fields {
		v, ok := rec[f.Name]
		if !ok {
			continue
		}
		pk := postingKey(f.Name, v)
		bitmap, ok := t.postings[pk]
		if !add {
			if ok {
				bitmap.Remove(slot)
				if bitmap.IsEmpty() {
					delete(t.postings, pk)
				}
			}
			continue
		}
		if !ok {
			bitmap = roaring.New()
			t.postings[pk] = bitmap
		}
		bitmap.Add(slot)
	}
}

// Len returns the number of records held for entity
func (s *MemoryRecordStore) Len(entity string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if table, ok := s.tables[entity]; ok {
		return int(table.all.GetCardinality())
	}
	return 0
}

// Ping always succeeds
func (s *MemoryRecordStore) Ping(ctx context.Context) error {
	return nil
}

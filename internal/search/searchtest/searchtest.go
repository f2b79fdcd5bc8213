// Package searchtest checks a search.RecordStore against the search
// contract: every combination of supplied fields returns exactly the records
// equal on those fields, and nothing else.
//
// A store package runs the whole suite from its own tests:
//
//	func TestMemoryStore(t *testing.T) {
//	    searchtest.RunStoreSuite(t, func(t *testing.T) search.RecordStore {
//	        return repository.NewMemoryRecordStore()
//	    })
//	}
package searchtest

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory opens an empty store for one test
type Factory func(t *testing.T) search.RecordStore

// RunStoreSuite runs every store property against each registered entity
func RunStoreSuite(t *testing.T, open Factory) {
	for _, spec := range model.Specs() {
		t.Run(spec.Entity, func(t *testing.T) {
			t.Run("EmptyStore", func(t *testing.T) { testEmptyStore(t, open(t), spec) })
			t.Run("EveryFieldSubset", func(t *testing.T) { testEveryFieldSubset(t, open(t), spec) })
			t.Run("EmptyRequestReturnsAll", func(t *testing.T) { testEmptyRequest(t, open(t), spec) })
			t.Run("NoMatch", func(t *testing.T) { testNoMatch(t, open(t), spec) })
			t.Run("FullKeyMatchesOne", func(t *testing.T) { testFullKey(t, open(t), spec) })
			t.Run("Idempotent", func(t *testing.T) { testIdempotent(t, open(t), spec) })
			t.Run("SaveReplacesOnKey", func(t *testing.T) { testUpsert(t, open(t), spec) })
		})
	}
	t.Run("TeamScenarios", func(t *testing.T) { runTeamScenarios(t, open) })
}

// Records generates a data set for spec. When the key is narrower than the
// field list, the first integer key field takes serial values; every other
// field takes two values, in every combination.
func Records(spec *search.Spec) []search.Record {
	serial := serialField(spec)

	var varying []search.Field
	for _, f := range spec.Fields {
		if f.Name != serial {
			varying = append(varying, f)
		}
	}

	n := 1 << len(varying)
	recs := make([]search.Record, 0, n)
	for i := 0; i < n; i++ {
		rec := search.Record{}
		if serial != "" {
			rec[serial] = int64(i + 1)
		}
		for bit, f := range varying {
			rec[f.Name] = Values(f)[(i>>bit)&1]
		}
		recs = append(recs, rec)
	}
	return recs
}

// serialField picks the first integer key field when the key is narrower
// than the field list; otherwise the product of all fields is already
// unique on the key.
func serialField(spec *search.Spec) string {
	if len(spec.Key) == len(spec.Fields) {
		return ""
	}
	for _, name := range spec.Key {
		if f, ok := spec.Field(name); ok && f.Type == search.Integer {
			return name
		}
	}
	return ""
}

// Values returns two distinct canonical values for f
func Values(f search.Field) [2]any {
	switch f.Type {
	case search.String:
		return [2]any{"alpha", "beta"}
	case search.Date:
		return [2]any{"2024-04-01", "2024-04-02"}
	case search.EnumCode:
		codes := f.Codes.Codes()
		return [2]any{codes[0], codes[1]}
	case search.BoolCode:
		return [2]any{int64(0), int64(1)}
	default:
		return [2]any{int64(1), int64(2)}
	}
}

// Missing returns a canonical value for f that Records never produces
func Missing(f search.Field) any {
	switch f.Type {
	case search.String:
		return "omega"
	case search.Date:
		return "1999-12-31"
	case search.EnumCode:
		codes := f.Codes.Codes()
		if len(codes) > 2 {
			return codes[len(codes)-1]
		}
		return nil
	case search.BoolCode:
		return nil
	default:
		return int64(9999)
	}
}

func seed(t *testing.T, store search.RecordStore, spec *search.Spec, recs []search.Record) {
	t.Helper()
	require.NoError(t, store.SaveAll(context.Background(), spec, recs), "seed %s", spec.Entity)
}

func query(t *testing.T, store search.RecordStore, spec *search.Spec, req search.Request) []search.Record {
	t.Helper()
	cond, err := search.Compose(spec, req)
	require.NoError(t, err)
	recs, err := search.NewExecutor(store).Execute(context.Background(), cond)
	require.NoError(t, err, "query %s", cond)
	require.NotNil(t, recs, "query %s returned nil", cond)
	return recs
}

// keys renders each record's natural key, sorted
func keys(t *testing.T, spec *search.Spec, recs []search.Record) []string {
	t.Helper()
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		k, err := spec.KeyOf(rec)
		require.NoError(t, err)
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// expected filters recs by direct equality on the sample record's fields in subset
func expected(recs []search.Record, sample search.Record, subset []search.Field) []search.Record {
	var out []search.Record
	for _, rec := range recs {
		match := true
		for _, f := range subset {
			if rec[f.Name] != sample[f.Name] {
				match = false
				break
			}
		}
		if match {
			out = append(out, rec)
		}
	}
	return out
}

func testEmptyStore(t *testing.T, store search.RecordStore, spec *search.Spec) {
	assert.Empty(t, query(t, store, spec, search.NewRequest()))

	req := search.NewRequest()
	for _, f := range spec.Fields {
		req = req.Set(f.Name, Values(f)[0])
	}
	assert.Empty(t, query(t, store, spec, req))
}

func testEveryFieldSubset(t *testing.T, store search.RecordStore, spec *search.Spec) {
	recs := Records(spec)
	seed(t, store, spec, recs)

	// the first and last records hold opposite values in every varying field
	samples := []search.Record{recs[0], recs[len(recs)-1]}

	for _, sample := range samples {
		for mask := 0; mask < 1<<len(spec.Fields); mask++ {
			var subset []search.Field
			req := search.NewRequest()
			for i, f := range spec.Fields {
				if mask&(1<<i) != 0 {
					subset = append(subset, f)
					req = req.Set(f.Name, sample[f.Name])
				}
			}

			got := keys(t, spec, query(t, store, spec, req))
			want := keys(t, spec, expected(recs, sample, subset))
			if !assert.Equal(t, want, got, "fields %s", fieldNames(subset)) {
				return
			}
		}
	}
}

func testEmptyRequest(t *testing.T, store search.RecordStore, spec *search.Spec) {
	recs := Records(spec)
	seed(t, store, spec, recs)

	got := query(t, store, spec, search.NewRequest())
	require.Len(t, got, len(recs))

	byKey := make(map[string]search.Record, len(got))
	for _, rec := range got {
		k, err := spec.KeyOf(rec)
		require.NoError(t, err)
		byKey[k] = rec
	}
	for _, want := range recs {
		k, err := spec.KeyOf(want)
		require.NoError(t, err)
		rec, ok := byKey[k]
		require.True(t, ok, "record %s missing", k)
		for _, f := range spec.Fields {
			cv, err := f.Canonical(rec[f.Name])
			require.NoError(t, err, "field %s of %s", f.Name, k)
			assert.Equal(t, want[f.Name], cv, "field %s of %s", f.Name, k)
		}
	}
}

func testNoMatch(t *testing.T, store search.RecordStore, spec *search.Spec) {
	recs := Records(spec)
	seed(t, store, spec, recs)

	for _, f := range spec.Fields {
		missing := Missing(f)
		if missing == nil {
			continue
		}
		got := query(t, store, spec, search.NewRequest().Set(f.Name, missing))
		assert.Empty(t, got, "%s = %v", f.Name, missing)
	}
}

func testFullKey(t *testing.T, store search.RecordStore, spec *search.Spec) {
	recs := Records(spec)
	seed(t, store, spec, recs)

	for _, rec := range []search.Record{recs[0], recs[len(recs)/2], recs[len(recs)-1]} {
		req := search.NewRequest()
		for _, name := range spec.Key {
			req = req.Set(name, rec[name])
		}
		got := query(t, store, spec, req)
		require.Len(t, got, 1)
		assert.Equal(t, keys(t, spec, []search.Record{rec}), keys(t, spec, got))
	}
}

func testIdempotent(t *testing.T, store search.RecordStore, spec *search.Spec) {
	recs := Records(spec)
	seed(t, store, spec, recs)

	f := spec.Fields[len(spec.Fields)-1]
	req := search.NewRequest().Set(f.Name, Values(f)[1])

	first := keys(t, spec, query(t, store, spec, req))
	second := keys(t, spec, query(t, store, spec, req))
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func testUpsert(t *testing.T, store search.RecordStore, spec *search.Spec) {
	recs := Records(spec)
	seed(t, store, spec, recs)

	var field *search.Field
	for i := range spec.Fields {
		if !isKey(spec, spec.Fields[i].Name) {
			field = &spec.Fields[i]
			break
		}
	}
	if field == nil {
		// every field is part of the key; saving again must not duplicate
		seed(t, store, spec, recs)
		assert.Len(t, query(t, store, spec, search.NewRequest()), len(recs))
		return
	}

	target := recs[0].Clone()
	before := target[field.Name]
	after := Values(*field)[1]
	if before == after {
		after = Values(*field)[0]
	}
	target[field.Name] = after
	require.NoError(t, store.Save(context.Background(), spec, target))

	keyReq := search.NewRequest()
	for _, name := range spec.Key {
		keyReq = keyReq.Set(name, target[name])
	}
	got := query(t, store, spec, keyReq)
	require.Len(t, got, 1)
	cv, err := field.Canonical(got[0][field.Name])
	require.NoError(t, err)
	assert.Equal(t, after, cv)

	stale := query(t, store, spec, keyReq.Set(field.Name, before))
	assert.Empty(t, stale, "old %s value still indexed", field.Name)

	assert.Len(t, query(t, store, spec, search.NewRequest()), len(recs))
}

func isKey(spec *search.Spec, name string) bool {
	for _, k := range spec.Key {
		if k == name {
			return true
		}
	}
	return false
}

func fieldNames(fields []search.Field) string {
	if len(fields) == 0 {
		return "{}"
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return fmt.Sprint(names)
}

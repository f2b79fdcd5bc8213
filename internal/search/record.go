package search

import (
	"encoding/json"
	"math"
	"reflect"
)

// Record is one stored row or document, keyed by column name.
type Record map[string]any

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Normalize prepares rec for storage under spec. Declared filter fields are
// canonicalized, every natural key field must be present, and whole-number
// floats from JSON or YAML decoding become int64.
func Normalize(spec *Spec, rec Record) (Record, error) {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = normalizeScalar(v)
	}

	for _, f := range spec.Fields {
		v, ok := out[f.Name]
		if !ok || v == nil {
			delete(out, f.Name)
			continue
		}
		cv, err := f.Canonical(v)
		if err != nil {
			return nil, &InvalidValueError{Entity: spec.Entity, Field: f.Name, Value: v, Reason: err.Error()}
		}
		out[f.Name] = cv
	}

	if _, err := spec.KeyOf(out); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeValues converts decoded numbers in place: whole floats and
// json.Number become int64, and other integer kinds widen to int64.
func NormalizeValues(rec Record) Record {
	for k, v := range rec {
		rec[k] = normalizeScalar(v)
	}
	return rec
}

func normalizeScalar(v any) any {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n)
		}
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return int64(n)
		}
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int8, reflect.Int16, reflect.Int32:
			return rv.Int()
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint, reflect.Uint64:
			if u := rv.Uint(); u <= math.MaxInt64 {
				return int64(u)
			}
		}
	}
	return v
}

package search

// Reader pulls typed values out of a Record. The first failure is kept and
// later reads return zero values, so a mapper can read every column and
// check Err once.
type Reader struct {
	entity string
	rec    Record
	err    *MappingError
}

// NewReader reads rec as a record of entity.
func NewReader(entity string, rec Record) *Reader {
	return &Reader{entity: entity, rec: rec}
}

// Err returns the first mapping failure.
func (r *Reader) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

func (r *Reader) fail(field string, v any, reason string) {
	if r.err == nil {
		r.err = &MappingError{Entity: r.entity, Field: field, Value: v, Reason: reason}
	}
}

func (r *Reader) value(field string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.rec[field]
	if !ok || v == nil {
		r.fail(field, nil, "missing")
		return nil, false
	}
	return v, true
}

// Int reads an integer column.
func (r *Reader) Int(field string) int64 {
	v, ok := r.value(field)
	if !ok {
		return 0
	}
	n, err := toInt64(v)
	if err != nil {
		r.fail(field, v, err.Error())
		return 0
	}
	return n
}

// String reads a text column.
func (r *Reader) String(field string) string {
	v, ok := r.value(field)
	if !ok {
		return ""
	}
	s, ok := toString(v)
	if !ok {
		r.fail(field, v, "expected string")
		return ""
	}
	return s
}

// Date reads a date column as YYYY-MM-DD.
func (r *Reader) Date(field string) string {
	v, ok := r.value(field)
	if !ok {
		return ""
	}
	d, err := toDate(v)
	if err != nil {
		r.fail(field, v, err.Error())
		return ""
	}
	return d
}

// Flag reads a bool code column.
func (r *Reader) Flag(field string) bool {
	v, ok := r.value(field)
	if !ok {
		return false
	}
	if b, isBool := v.(bool); isBool {
		return b
	}
	n, err := toInt64(v)
	if err != nil {
		r.fail(field, v, err.Error())
		return false
	}
	switch n {
	case 0:
		return false
	case 1:
		return true
	}
	r.fail(field, v, "bool code must be 0 or 1")
	return false
}

// Symbol reads an enum code column and returns its symbol.
func (r *Reader) Symbol(field string, codes *CodeTable) string {
	v, ok := r.value(field)
	if !ok {
		return ""
	}
	n, err := toInt64(v)
	if err != nil {
		r.fail(field, v, err.Error())
		return ""
	}
	s, ok := codes.Symbol(n)
	if !ok {
		r.fail(field, v, "no "+codes.Name()+" for code")
		return ""
	}
	return s
}

package search

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// DateLayout is the canonical date form stored and compared.
const DateLayout = "2006-01-02"

// FieldType is the semantic type of a filter field.
type FieldType int

const (
	Integer FieldType = iota
	String
	Date
	EnumCode
	BoolCode
)

func (t FieldType) String() string {
	switch t {
	case Integer:
		return "integer"
	case String:
		return "string"
	case Date:
		return "date"
	case EnumCode:
		return "enum"
	case BoolCode:
		return "bool"
	default:
		return "unknown"
	}
}

// Field is one optional equality filter.
type Field struct {
	Name string
	Type FieldType
	// Codes is set for EnumCode fields only.
	Codes *CodeTable
}

func IntField(name string) Field    { return Field{Name: name, Type: Integer} }
func StringField(name string) Field { return Field{Name: name, Type: String} }
func DateField(name string) Field   { return Field{Name: name, Type: Date} }
func BoolField(name string) Field   { return Field{Name: name, Type: BoolCode} }

func EnumField(name string, codes *CodeTable) Field {
	return Field{Name: name, Type: EnumCode, Codes: codes}
}

// Canonical converts v into the form the store persists for this field.
// The returned value is always an int64 or a string.
func (f Field) Canonical(v any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("value is null")
	}

	switch f.Type {
	case Integer:
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		return n, nil

	case String:
		s, ok := toString(v)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil

	case Date:
		return toDate(v)

	case EnumCode:
		if f.Codes == nil {
			return nil, fmt.Errorf("no code table")
		}
		if _, num := v.(json.Number); !num {
			if s, ok := toString(v); ok {
				code, ok := f.Codes.Code(s)
				if !ok {
					return nil, fmt.Errorf("%q is not a %s", s, f.Codes.Name())
				}
				return code, nil
			}
		}
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		if _, ok := f.Codes.Symbol(n); !ok {
			return nil, fmt.Errorf("code %d is not a %s", n, f.Codes.Name())
		}
		return n, nil

	case BoolCode:
		if b, ok := v.(bool); ok {
			return boolCode(b), nil
		}
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		if _, ok := boolCodes.Symbol(n); !ok {
			return nil, fmt.Errorf("bool code must be 0 or 1, got %d", n)
		}
		return n, nil
	}

	return nil, fmt.Errorf("unsupported field type %d", f.Type)
}

// Parse reads a textual value, as found in a query string, into a request
// value for this field. Canonical still runs on the result.
func (f Field) Parse(s string) (any, error) {
	switch f.Type {
	case Integer:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected integer")
		}
		return n, nil
	case BoolCode:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("expected boolean")
		}
		return b, nil
	case EnumCode:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		return s, nil
	default:
		return s, nil
	}
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %s", n)
		}
		return i, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d out of range", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		fl := rv.Float()
		if fl != math.Trunc(fl) || math.IsInf(fl, 0) || fl > math.MaxInt64 || fl < math.MinInt64 {
			return 0, fmt.Errorf("expected integer, got %v", fl)
		}
		return int64(fl), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

func toString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func toDate(v any) (string, error) {
	switch d := v.(type) {
	case time.Time:
		return d.Format(DateLayout), nil
	case *time.Time:
		if d == nil {
			return "", fmt.Errorf("value is null")
		}
		return d.Format(DateLayout), nil
	}
	s, ok := toString(v)
	if !ok {
		return "", fmt.Errorf("expected date, got %T", v)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		// Stores may hand back full timestamps for date columns.
		if ts, tsErr := time.Parse(time.RFC3339, s); tsErr == nil {
			return ts.Format(DateLayout), nil
		}
		return "", fmt.Errorf("expected date as YYYY-MM-DD, got %q", s)
	}
	return t.Format(DateLayout), nil
}

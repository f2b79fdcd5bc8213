package search

import (
	"net/url"
	"sort"
	"strings"
)

// Request holds values for the fields a caller chose to filter on. The zero
// value is an empty request. Set returns a new Request, so a Request can be
// shared freely once built.
type Request struct {
	values map[string]any
}

// NewRequest returns an empty request.
func NewRequest() Request {
	return Request{}
}

// Set returns a copy of r with name set to v. A nil v leaves the field
// absent; null is never a filter value.
func (r Request) Set(name string, v any) Request {
	next := make(map[string]any, len(r.values)+1)
	for k, val := range r.values {
		next[k] = val
	}
	if v == nil {
		delete(next, name)
	} else {
		next[name] = v
	}
	return Request{values: next}
}

// SetOptional sets name only when v is non-nil.
func SetOptional[T any](r Request, name string, v *T) Request {
	if v == nil {
		return r
	}
	return r.Set(name, *v)
}

// Get returns the value supplied for name.
func (r Request) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of supplied fields.
func (r Request) Len() int {
	return len(r.values)
}

// Names lists the supplied field names in lexical order.
func (r Request) Names() []string {
	out := make([]string, 0, len(r.values))
	for k := range r.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RequestFromQuery reads a request from URL query parameters. Empty
// parameters are treated as absent. Each field may appear once, and its
// value must canonicalize under the field's type.
func RequestFromQuery(spec *Spec, q url.Values) (Request, error) {
	names := make([]string, 0, len(q))
	for k := range q {
		names = append(names, k)
	}
	sort.Strings(names)

	req := NewRequest()
	for _, name := range names {
		f, ok := spec.Field(name)
		if !ok {
			return Request{}, &InvalidFieldError{Entity: spec.Entity, Field: name}
		}

		vals := q[name]
		if len(vals) > 1 {
			return Request{}, &InvalidValueError{Entity: spec.Entity, Field: name, Value: strings.Join(vals, ","), Reason: "field given more than once"}
		}
		raw := strings.TrimSpace(vals[0])
		if raw == "" {
			continue
		}

		v, err := f.Parse(raw)
		if err == nil {
			_, err = f.Canonical(v)
		}
		if err != nil {
			return Request{}, &InvalidValueError{Entity: spec.Entity, Field: name, Value: raw, Reason: err.Error()}
		}
		req = req.Set(name, v)
	}
	return req, nil
}

// RequestFromPairs reads "field=value" arguments, as given on a command line.
func RequestFromPairs(spec *Spec, pairs []string) (Request, error) {
	q := url.Values{}
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return Request{}, &InvalidValueError{Entity: spec.Entity, Field: p, Value: p, Reason: "expected field=value"}
		}
		q.Add(strings.TrimSpace(name), value)
	}
	return RequestFromQuery(spec, q)
}

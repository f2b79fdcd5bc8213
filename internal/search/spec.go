package search

import (
	"errors"
	"fmt"
	"strings"
)

// Spec declares what an entity can be searched by.
type Spec struct {
	// Entity is the stored table or collection name.
	Entity string
	// Fields are the optional filters in declaration order.
	Fields []Field
	// Key names the filter fields that identify a record.
	Key []string
}

// Field looks up a filter field by name.
func (s *Spec) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names lists filter field names in declaration order.
func (s *Spec) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Validate checks the declaration itself.
func (s *Spec) Validate() error {
	var errs []error

	if s.Entity == "" {
		errs = append(errs, errors.New("entity name is required"))
	}
	if len(s.Key) == 0 {
		errs = append(errs, fmt.Errorf("%s: natural key is required", s.Entity))
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		switch {
		case f.Name == "":
			errs = append(errs, fmt.Errorf("%s: field with empty name", s.Entity))
		case seen[f.Name]:
			errs = append(errs, fmt.Errorf("%s: duplicate field %q", s.Entity, f.Name))
		}
		seen[f.Name] = true

		if f.Type == EnumCode && f.Codes == nil {
			errs = append(errs, fmt.Errorf("%s: enum field %q has no code table", s.Entity, f.Name))
		}
		if f.Type != EnumCode && f.Codes != nil {
			errs = append(errs, fmt.Errorf("%s: field %q is not an enum but has a code table", s.Entity, f.Name))
		}
	}

	keys := make(map[string]bool, len(s.Key))
	for _, k := range s.Key {
		if keys[k] {
			errs = append(errs, fmt.Errorf("%s: duplicate key field %q", s.Entity, k))
		}
		if !seen[k] {
			errs = append(errs, fmt.Errorf("%s: key field %q is not a filter field", s.Entity, k))
		}
		keys[k] = true
	}

	return errors.Join(errs...)
}

// KeyOf renders the natural key of rec. Key parts are canonicalized first
// so equal records always share a key.
func (s *Spec) KeyOf(rec Record) (string, error) {
	parts := make([]string, len(s.Key))
	for i, k := range s.Key {
		v, ok := rec[k]
		if !ok || v == nil {
			return "", &InvalidValueError{Entity: s.Entity, Field: k, Reason: "natural key field is required"}
		}
		if f, declared := s.Field(k); declared {
			cv, err := f.Canonical(v)
			if err != nil {
				return "", &InvalidValueError{Entity: s.Entity, Field: k, Value: v, Reason: err.Error()}
			}
			v = cv
		}
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, "|"), nil
}

// ValidateSpecs validates every spec and rejects duplicate entity names.
func ValidateSpecs(specs ...*Spec) error {
	var errs []error
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
		if seen[s.Entity] {
			errs = append(errs, fmt.Errorf("duplicate entity %q", s.Entity))
		}
		seen[s.Entity] = true
	}
	return errors.Join(errs...)
}

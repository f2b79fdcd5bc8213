package search

import (
	"fmt"
	"strings"
)

// Term is a single equality constraint with a canonical value.
type Term struct {
	Field Field
	Value any
}

func (t Term) String() string {
	if s, ok := t.Value.(string); ok {
		return fmt.Sprintf("%s = %q", t.Field.Name, s)
	}
	return fmt.Sprintf("%s = %v", t.Field.Name, t.Value)
}

// Condition is a conjunction of equality terms over one entity. A Condition
// with no terms matches every record. Conditions are immutable.
type Condition struct {
	entity string
	terms  []Term
}

// Compose builds the Condition for req. Only supplied fields contribute a
// term, in the Spec's declaration order. Unknown fields are reported in
// lexical order so the same request always yields the same error.
func Compose(spec *Spec, req Request) (Condition, error) {
	for _, name := range req.Names() {
		if _, ok := spec.Field(name); !ok {
			return Condition{}, &InvalidFieldError{Entity: spec.Entity, Field: name}
		}
	}

	terms := make([]Term, 0, req.Len())
	for _, f := range spec.Fields {
		v, ok := req.Get(f.Name)
		if !ok {
			continue
		}
		cv, err := f.Canonical(v)
		if err != nil {
			return Condition{}, &InvalidValueError{Entity: spec.Entity, Field: f.Name, Value: v, Reason: err.Error()}
		}
		terms = append(terms, Term{Field: f, Value: cv})
	}

	return Condition{entity: spec.Entity, terms: terms}, nil
}

// Entity returns the entity the condition applies to.
func (c Condition) Entity() string {
	return c.entity
}

// Terms returns a copy of the terms.
func (c Condition) Terms() []Term {
	out := make([]Term, len(c.terms))
	copy(out, c.terms)
	return out
}

// Len returns the number of terms.
func (c Condition) Len() int {
	return len(c.terms)
}

// IsEmpty reports whether the condition matches everything.
func (c Condition) IsEmpty() bool {
	return len(c.terms) == 0
}

// Matches evaluates the condition against a stored record. A record whose
// field cannot be canonicalized does not match.
func (c Condition) Matches(rec Record) bool {
	for _, t := range c.terms {
		v, ok := rec[t.Field.Name]
		if !ok || v == nil {
			return false
		}
		cv, err := t.Field.Canonical(v)
		if err != nil || cv != t.Value {
			return false
		}
	}
	return true
}

func (c Condition) String() string {
	if len(c.terms) == 0 {
		return c.entity + ": *"
	}
	parts := make([]string, len(c.terms))
	for i, t := range c.terms {
		parts[i] = t.String()
	}
	return c.entity + ": " + strings.Join(parts, " AND ")
}

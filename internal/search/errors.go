package search

import "fmt"

// InvalidFieldError reports a request field the entity does not declare.
type InvalidFieldError struct {
	Entity string
	Field  string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s: unknown filter field %q", e.Entity, e.Field)
}

// InvalidValueError reports a value a declared field cannot hold.
type InvalidValueError struct {
	Entity string
	Field  string
	Value  any
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: invalid value %v for field %q: %s", e.Entity, e.Value, e.Field, e.Reason)
}

// StoreUnavailableError reports that the record store could not be reached.
// Retrying is left to the store layer.
type StoreUnavailableError struct {
	Store string
	Err   error
}

func (e *StoreUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("record store %s unavailable", e.Store)
	}
	return fmt.Sprintf("record store %s unavailable: %v", e.Store, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// MappingError reports a stored record that cannot be projected into its
// response shape, usually a code with no symbol or a missing column.
type MappingError struct {
	Entity string
	Field  string
	Value  any
	Reason string
	// Index is the record's position in the result set.
	Index int
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: record %d: field %q (%v): %s", e.Entity, e.Index, e.Field, e.Value, e.Reason)
}

package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here or in the search
// package, so handlers map them in one place.

// ===== Search Errors =====
var (
	ErrUnknownEntity = errors.New("unknown entity")
)

// ===== Seeding Errors =====
var (
	ErrNoRecords       = errors.New("no records to seed")
	ErrInvalidDemoSize = errors.New("demo league needs at least one season and two teams")
)

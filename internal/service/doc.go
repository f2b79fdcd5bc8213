// Package service implements the business logic layer for the statline API.
//
// # Services
//
//   - StatsService runs typed searches: a search.Request is composed into a
//     Condition against the entity's spec, executed against the record store
//     and every record is mapped to its response type.
//   - SeedService normalizes and saves records, one entity or many at once,
//     and can generate a consistent demo league.
//
// Services take a config struct and depend on search.RecordStore only, so
// tests run them against an in-memory store or a function-field mock.
//
// # Error Handling
//
// Search errors pass through unchanged so handlers can map them:
//
//	*search.InvalidFieldError     - unknown filter field
//	*search.InvalidValueError     - value of the wrong type or unknown symbol
//	*search.StoreUnavailableError - store unreachable or breaker open
//	*search.MappingError          - a stored record could not be projected
//
// A MappingError fails the whole search; partial results are never returned.
package service

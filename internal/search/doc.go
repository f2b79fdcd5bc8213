// Package search composes optional-equality filters over league records.
//
// Every searchable entity declares a Spec: an ordered list of filter fields
// with their semantic types and the entity's natural key. A caller builds a
// Request holding values for any subset of those fields, and Compose turns
// it into a Condition, a conjunction of equality terms over the supplied
// fields only. Fields left out of the request impose no constraint, and an
// empty request produces a Condition that matches every record.
//
// # Flow
//
//	req := search.NewRequest().Set("team_id", 1).Set("year", 2000)
//	cond, err := search.Compose(model.TeamSpec, req)
//	records, err := search.NewExecutor(store).Execute(ctx, cond)
//
// Find runs the whole pipeline and maps each record through a typed mapper:
//
//	teams, err := search.Find(ctx, exec, model.TeamSpec, req, model.MapTeam)
//
// # Canonical values
//
// Request values are translated into the form the store persists before
// they reach a Condition: integers of any kind become int64, dates become
// "YYYY-MM-DD" strings, booleans become the codes 0 and 1, and enumerated
// symbols become their integer code via the field's CodeTable. Stores
// compare these canonical values for exact equality.
//
// # Errors
//
//   - InvalidFieldError: the request names a field the Spec does not declare
//   - InvalidValueError: a declared field received a value it cannot hold
//   - StoreUnavailableError: the RecordStore could not be reached
//   - MappingError: a stored record could not be projected into a response
//
// An empty result always means no record matched; errors are never folded
// into empty results.
package search

// Package repository implements search.RecordStore over each supported
// backend.
//
//   - SurrealRecordStore: one SurrealDB table per entity, record ids built
//     from the natural key so saving is an upsert
//   - PostgresRecordStore: one table per entity with a primary key over the
//     natural key; schema lives in migrations/postgres
//   - BadgerRecordStore: embedded key-value store, JSON values under
//     "<entity>/<key>"
//   - MemoryRecordStore: in-process store with roaring bitmap postings,
//     used by tests and the memory backend
//
// BreakerStore wraps any of them and fails fast while the store is
// unreachable. OpenStore picks the backend from configuration.
//
// Every store reports connection loss and deadline expiry as
// *search.StoreUnavailableError so callers can map it to 503.
package repository

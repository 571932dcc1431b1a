// Package warehouse persists normalized session telemetry in SQLite.
//
// The Store manages the database connection, schema initialization, and the
// write protocol the ingester relies on: meetings and sessions are upserted
// by their archive-assigned natural keys, and a session's child rows are
// replaced inside a single transaction that also stamps ingested_at, so a
// crash can never leave partially written rows behind a completed marker.
//
// Schema changes bump schemaVersion in schema.go; the database is rebuilt by
// re-ingesting, so there is no migration tooling.
package warehouse

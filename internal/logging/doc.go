// Package logging constructs the slog loggers used across pitwall.
//
// New builds a logger from configuration: a compact console handler for
// interactive terminals and standard JSON output otherwise. Standardized
// field names (component, run_id, session, document) keep ingestion logs
// greppable across components.
package logging

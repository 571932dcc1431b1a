// Package ingest orchestrates season discovery and session ingestion: it
// walks season indexes, fetches per-session documents through the archive
// client, normalizes them, and writes each session atomically into the
// warehouse.
package ingest

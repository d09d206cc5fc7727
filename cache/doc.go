// Package cache is a content-addressed store for parsed programs. A
// program's source bytes hash to a SHA-256 key; the value is its parsed
// expression graph, flattened to a CBOR-encoded node list and persisted in
// a SQLite database, so that re-running the same source text skips the
// parser entirely.
package cache

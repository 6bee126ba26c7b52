// Package sqlite provides a SQLite-backed implementation of driven.CacheStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// A single records(kind, key, payload) table holds every cache record as a
// JSON payload. The preferences record is stored under kind "preferences"
// with an empty key. The schema is managed through versioned migrations in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.getlicense/license_cache.db
//
// # Consistency
//
// Save replaces every row inside one transaction, so a failed save leaves
// the previous cache intact.
package sqlite

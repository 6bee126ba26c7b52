// Package domain defines the core business entities for getlicense.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ParsedDocument: A license template split into metadata and body
//   - Record: A persisted cache entry tagged with its RecordKind
//   - Cache: The full persisted store (licenses, data files, preferences)
//   - RemoteEntry: One file reported by a content source listing
//   - SyncPlan: The retain/fetch/delete/rekey partition of a sync pass
//   - Binding: The resolution of one canonical placeholder key
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package services implements the driving port interfaces.
//
// The synchronization engine is split into a pure Parser and Plan, the
// CacheRepository that owns load/merge/save, and the Syncer that drives
// them against a content source. The Resolver fills placeholder tokens
// and has no dependency on the rest.
//
// Services are pure Go with no CGO dependencies.
package services

// Package filesystem reads the license collection from a local checkout of
// the upstream repository, for offline or mirrored setups.
package filesystem

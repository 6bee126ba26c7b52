// Package mcp provides an MCP (Model Context Protocol) server adapter for
// getlicense. It lets AI assistants list cached licenses and preview filled
// license text without touching the working directory.
package mcp

import "errors"

var (
	// ErrMissingLicenseService is returned when the license service is not provided.
	ErrMissingLicenseService = errors.New("mcp: license service is required")

	// ErrMissingCacheService is returned when the cache service is not provided.
	ErrMissingCacheService = errors.New("mcp: cache service is required")
)

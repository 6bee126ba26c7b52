package mcp

import (
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Cache loads the persisted cache for every request.
	Cache driving.CacheService

	// Licenses answers license queries.
	Licenses driving.LicenseService

	// Fill previews filled license text. The fill tool is only registered
	// when it is set.
	Fill driving.FillService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Cache == nil {
		return ErrMissingCacheService
	}
	if p.Licenses == nil {
		return ErrMissingLicenseService
	}
	return nil
}

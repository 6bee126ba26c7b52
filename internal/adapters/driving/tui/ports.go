// Package tui provides an interactive license browser.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the browser.
type Ports struct {
	// Licenses answers list and placeholder queries.
	Licenses driving.LicenseService

	// Fill previews filled license text. Optional: without it only the raw
	// text is shown.
	Fill driving.FillService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Licenses == nil {
		return ErrMissingLicenseService
	}
	return nil
}

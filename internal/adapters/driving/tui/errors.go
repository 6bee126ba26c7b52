package tui

import "errors"

// ErrMissingLicenseService is returned when the license service is not provided.
var ErrMissingLicenseService = errors.New("tui: license service is required")

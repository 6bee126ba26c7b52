package driving

import (
	"context"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// FillService resolves a license template and writes the filled file.
type FillService interface {
	// Fill resolves the placeholders of a license and writes the result.
	// Explicit cacheable values are merged into cache.Preferences.
	Fill(ctx context.Context, cache *domain.Cache, req FillRequest) (*FillResult, error)

	// Preview resolves without writing a file or touching preferences.
	Preview(cache *domain.Cache, id string, explicit map[string]string) (*FillResult, error)
}

// FillRequest describes a fill operation.
type FillRequest struct {
	LicenseID string

	// Explicit values keyed by canonical placeholder key.
	Explicit map[string]string

	// OutputPath is the destination file. Defaults to LICENSE.
	OutputPath string
}

// FillResult is the outcome of a fill operation.
type FillResult struct {
	License    domain.Record
	Resolution domain.Resolution
	OutputPath string

	// SavedPreferences are the values merged into the cache preferences.
	SavedPreferences map[string]string

	// PreferencesChanged is set when the merge changed any saved value.
	PreferencesChanged bool
}

package driving

import (
	"context"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// SyncService brings a loaded cache in line with the upstream collection.
type SyncService interface {
	// Sync runs one pass over the data and license collections and returns
	// the resulting cache. The input cache is not mutated. Listing and fetch
	// failures are recovered from the previous cache and reported, never
	// returned.
	Sync(ctx context.Context, cache *domain.Cache, opts SyncOptions) (*domain.Cache, domain.SyncReport)
}

// ProgressFunc is called after each content fetch of a collection.
type ProgressFunc func(collection string, done, total int)

// SyncOptions controls a sync pass.
type SyncOptions struct {
	// Refresh refetches every listed file regardless of content hash.
	// Saved preferences are kept.
	Refresh bool

	// Progress is optional.
	Progress ProgressFunc
}

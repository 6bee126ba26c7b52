package driven

import (
	"context"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// CacheStore persists the full cache.
// Only the Cache Repository service calls it.
type CacheStore interface {
	// Load reads the persisted cache. A missing store returns an empty
	// cache and nil. An unreadable store returns an empty cache and an
	// error wrapping domain.ErrCorruptCache; the cache is never nil.
	Load(ctx context.Context) (*domain.Cache, error)

	// Save replaces the persisted cache. A failed save must leave the
	// previous persisted state intact.
	Save(ctx context.Context, cache *domain.Cache) error

	// Path describes where the cache is stored.
	Path() string
}

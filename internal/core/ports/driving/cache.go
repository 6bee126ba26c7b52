package driving

import (
	"context"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// CacheService loads and saves the persisted cache.
type CacheService interface {
	// Load never fails: a missing or corrupt store yields an empty cache.
	Load(ctx context.Context) *domain.Cache

	// Save persists the cache. Failures are *domain.PersistError; the
	// in-memory cache stays valid.
	Save(ctx context.Context, cache *domain.Cache) error

	// Path describes where the cache is stored.
	Path() string
}

package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// CacheStore is an in-memory implementation of driven.CacheStore.
// It backs tests and runs that must not touch disk.
type CacheStore struct {
	mu    sync.RWMutex
	cache *domain.Cache
	saves int

	// SaveErr, when set, is returned by Save and nothing is stored.
	SaveErr error

	// LoadErr, when set, is returned by Load with an empty cache.
	LoadErr error
}

// NewCacheStore creates an empty in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{}
}

// NewCacheStoreWith creates a store preloaded with a copy of cache.
func NewCacheStoreWith(cache *domain.Cache) *CacheStore {
	return &CacheStore{cache: cache.Clone()}
}

// Load returns a copy of the stored cache, or an empty cache when nothing
// was saved.
func (s *CacheStore) Load(_ context.Context) (*domain.Cache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LoadErr != nil {
		return domain.NewCache(), s.LoadErr
	}
	if s.cache == nil {
		return domain.NewCache(), nil
	}
	out := s.cache.Clone()
	out.Normalize()
	return out, nil
}

// Save stores a copy of the cache.
func (s *CacheStore) Save(_ context.Context, cache *domain.Cache) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.cache = cache.Clone()
	s.saves++
	return nil
}

// Path describes the store.
func (s *CacheStore) Path() string {
	return "memory"
}

// Saves returns how many times Save succeeded.
func (s *CacheStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

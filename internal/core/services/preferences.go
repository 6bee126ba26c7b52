package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
)

// Ensure PreferenceService implements the interface.
var _ driving.PreferenceService = (*PreferenceService)(nil)

// PreferenceService manages saved placeholder values in the cache.
type PreferenceService struct{}

// NewPreferenceService creates a preference service.
func NewPreferenceService() *PreferenceService {
	return &PreferenceService{}
}

// Set saves a value for a cacheable key.
func (s *PreferenceService) Set(cache *domain.Cache, key, value string) error {
	key = normalisePreferenceKey(key)
	if !domain.IsCacheablePlaceholder(key) {
		return fmt.Errorf("%w: %q is not a saveable placeholder (use one of %s)",
			domain.ErrInvalidInput, key, strings.Join(domain.CacheablePlaceholderKeys(), ", "))
	}
	cache.Preferences[key] = value
	return nil
}

// Get returns one saved value.
func (s *PreferenceService) Get(cache *domain.Cache, key string) (string, bool) {
	value, ok := cache.Preferences[normalisePreferenceKey(key)]
	return value, ok
}

// All returns every saved value sorted by key.
func (s *PreferenceService) All(cache *domain.Cache) []driving.Preference {
	out := make([]driving.Preference, 0, len(cache.Preferences))
	for _, key := range sortedKeys(cache.Preferences) {
		out = append(out, driving.Preference{Key: key, Value: cache.Preferences[key]})
	}
	return out
}

// Clear removes the given keys, or all saved values when keys is empty.
func (s *PreferenceService) Clear(cache *domain.Cache, keys []string) ([]string, []string) {
	if len(keys) == 0 {
		cleared := sortedKeys(cache.Preferences)
		for _, key := range cleared {
			delete(cache.Preferences, key)
		}
		return cleared, nil
	}

	var cleared, missing []string
	for _, key := range keys {
		key = normalisePreferenceKey(key)
		if _, ok := cache.Preferences[key]; !ok {
			missing = append(missing, key)
			continue
		}
		delete(cache.Preferences, key)
		cleared = append(cleared, key)
	}
	return cleared, missing
}

func normalisePreferenceKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

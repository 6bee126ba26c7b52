package driving

import "github.com/custodia-labs/getlicense/internal/core/domain"

// PreferenceService manages saved placeholder values.
// Keys are restricted to the cacheable placeholder subset.
type PreferenceService interface {
	// Set saves a value. Non-cacheable keys wrap domain.ErrInvalidInput.
	Set(cache *domain.Cache, key, value string) error

	// Get returns one saved value.
	Get(cache *domain.Cache, key string) (string, bool)

	// All returns the saved values sorted by key.
	All(cache *domain.Cache) []Preference

	// Clear removes the given keys, or every saved value when keys is
	// empty. It returns the keys that were removed and those not found.
	Clear(cache *domain.Cache, keys []string) (cleared, missing []string)
}

// Preference is one saved placeholder value.
type Preference struct {
	Key   string
	Value string
}

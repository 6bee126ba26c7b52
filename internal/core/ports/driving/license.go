package driving

import "github.com/custodia-labs/getlicense/internal/core/domain"

// LicenseService answers queries over a loaded cache.
type LicenseService interface {
	// List returns the requested licenses, or all licenses sorted by key
	// when ids is empty. Unknown ids are returned in missing.
	List(cache *domain.Cache, ids []string) (found []domain.Record, missing []string)

	// Get returns one license. Unknown ids wrap domain.ErrNotFound.
	Get(cache *domain.Cache, id string) (domain.Record, error)

	// Find returns the licenses carrying every required tag and none of the
	// disallowed ones, sorted by SPDX id. Tags are validated against rules.yml.
	Find(cache *domain.Cache, require, disallow []string) ([]domain.Record, error)

	// Compare builds the key-rule matrix for the requested licenses.
	Compare(cache *domain.Cache, ids []string) (*Comparison, error)

	// Placeholders describes the raw tokens of a license body.
	Placeholders(cache *domain.Cache, id string) ([]PlaceholderInfo, error)
}

// KeyRule is one column of the comparison matrix.
type KeyRule struct {
	Label    string
	Tag      string
	Category string // empty matches any category
}

// ComparisonRow is one license in the comparison matrix.
type ComparisonRow struct {
	SPDXID string
	Title  string

	// Has is aligned with Comparison.Rules.
	Has []bool
}

// Comparison is the key-rule matrix of a set of licenses.
type Comparison struct {
	Rules   []KeyRule
	Rows    []ComparisonRow
	Missing []string
}

// PlaceholderInfo describes one raw token of a license body.
type PlaceholderInfo struct {
	RawToken string

	// CanonicalKey is empty for unrecognised tokens.
	CanonicalKey string

	// Description comes from fields.yml when available.
	Description string

	// Flag is the license command flag that fills the token, if any.
	Flag string

	// DefaultsToYear marks the year key, which is computed when not given.
	DefaultsToYear bool
}

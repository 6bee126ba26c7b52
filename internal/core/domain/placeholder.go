package domain

// Canonical placeholder keys.
const (
	PlaceholderFullName   = "fullname"
	PlaceholderProject    = "project"
	PlaceholderEmail      = "email"
	PlaceholderProjectURL = "projecturl"
	PlaceholderYear       = "year"
)

// CacheablePlaceholderKeys returns the keys that may be saved as
// preferences. The year is always computed or given explicitly.
func CacheablePlaceholderKeys() []string {
	return []string{
		PlaceholderFullName,
		PlaceholderProject,
		PlaceholderEmail,
		PlaceholderProjectURL,
	}
}

// IsCacheablePlaceholder reports whether key may be saved as a preference.
func IsCacheablePlaceholder(key string) bool {
	for _, k := range CacheablePlaceholderKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// ValueSource records where a placeholder value came from.
type ValueSource int

const (
	// SourceUnresolved means no value was found; the token is left verbatim.
	SourceUnresolved ValueSource = iota

	// SourceExplicit is a value given for this invocation.
	SourceExplicit

	// SourceSavedPreference is a value saved by an earlier invocation.
	SourceSavedPreference

	// SourceComputedDefault is a value derived from the clock.
	SourceComputedDefault
)

// String returns a human-readable source name.
func (s ValueSource) String() string {
	switch s {
	case SourceExplicit:
		return "explicit"
	case SourceSavedPreference:
		return "saved preference"
	case SourceComputedDefault:
		return "default"
	default:
		return "unresolved"
	}
}

// Binding is the resolution result for one canonical key.
type Binding struct {
	CanonicalKey string

	// RawTokens are the distinct literal tokens (brackets included) that
	// canonicalised to CanonicalKey, sorted.
	RawTokens []string

	Value    string
	Resolved bool
	Source   ValueSource
}

// Resolution is the output of a placeholder resolve pass.
type Resolution struct {
	FilledBody string

	// Bindings are sorted by canonical key and include unresolved keys.
	Bindings []Binding

	// Unrecognized are raw tokens with no canonical key, left verbatim.
	Unrecognized []string
}

// Binding returns the binding for a canonical key.
func (r *Resolution) Binding(key string) (Binding, bool) {
	for _, b := range r.Bindings {
		if b.CanonicalKey == key {
			return b, true
		}
	}
	return Binding{}, false
}

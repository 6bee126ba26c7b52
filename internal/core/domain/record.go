package domain

// RecordKind discriminates the namespaces of the persisted cache.
type RecordKind string

const (
	// KindLicense is a license template record keyed by canonical SPDX id.
	KindLicense RecordKind = "license"

	// KindData is an auxiliary _data file record keyed by filename.
	KindData RecordKind = "data"

	// KindPreferences is the single saved-placeholder record.
	KindPreferences RecordKind = "preferences"
)

// Valid reports whether k is a known record kind.
func (k RecordKind) Valid() bool {
	switch k {
	case KindLicense, KindData, KindPreferences:
		return true
	default:
		return false
	}
}

// Record is one persisted cache entry. Which payload fields are set
// depends on Kind.
type Record struct {
	Kind RecordKind `json:"kind"`

	// Key is the index key: the canonical SPDX id for licenses and the
	// filename for data records.
	Key string `json:"-"`

	Filename    string `json:"filename"`
	ContentHash string `json:"sha"`

	// License payload.
	Metadata     *LicenseMetadata `json:"metadata,omitempty"`
	Body         *string          `json:"body,omitempty"`
	Placeholders []string         `json:"placeholders,omitempty"`
	Rules        *ParsedRules     `json:"rules,omitempty"`

	// Data payload: the parsed YAML document.
	Data any `json:"data,omitempty"`
}

// DeclaredKey returns the key the record should be indexed under,
// derived from its own content rather than its current index position.
func (r Record) DeclaredKey() string {
	if r.Kind == KindLicense && r.Metadata != nil && r.Metadata.SPDXID != "" {
		return CanonicalKey(r.Metadata.SPDXID)
	}
	return r.Key
}

// Title returns the license title or the key when no metadata is present.
func (r Record) Title() string {
	if r.Metadata != nil && r.Metadata.Title != "" {
		return r.Metadata.Title
	}
	return r.Key
}

// Cache is the full in-memory form of the persisted store.
type Cache struct {
	Licenses    map[string]Record
	Data        map[string]Record
	Preferences map[string]string
}

// NewCache returns an empty cache with all namespaces allocated.
func NewCache() *Cache {
	return &Cache{
		Licenses:    make(map[string]Record),
		Data:        make(map[string]Record),
		Preferences: make(map[string]string),
	}
}

// Normalize allocates nil namespaces and restores record keys and kinds.
func (c *Cache) Normalize() {
	if c.Licenses == nil {
		c.Licenses = make(map[string]Record)
	}
	if c.Data == nil {
		c.Data = make(map[string]Record)
	}
	if c.Preferences == nil {
		c.Preferences = make(map[string]string)
	}
	for key, rec := range c.Licenses {
		rec.Key, rec.Kind = key, KindLicense
		c.Licenses[key] = rec
	}
	for key, rec := range c.Data {
		rec.Key, rec.Kind = key, KindData
		c.Data[key] = rec
	}
}

// Clone returns a copy whose maps can be mutated independently.
func (c *Cache) Clone() *Cache {
	out := NewCache()
	for k, v := range c.Licenses {
		out.Licenses[k] = v
	}
	for k, v := range c.Data {
		out.Data[k] = v
	}
	for k, v := range c.Preferences {
		out.Preferences[k] = v
	}
	return out
}

// License looks up a license by identifier in any casing.
func (c *Cache) License(identifier string) (Record, bool) {
	rec, ok := c.Licenses[CanonicalKey(identifier)]
	return rec, ok
}

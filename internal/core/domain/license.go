package domain

import "strings"

// LicenseMetadata holds the front matter fields of a license template.
// Rule lists are never nil; free-text fields are empty when the header
// does not declare them.
type LicenseMetadata struct {
	// SPDXID is the identifier as declared, with its original casing.
	SPDXID string `json:"spdx_id"`

	// Title is the human-readable name. Defaults to SPDXID.
	Title string `json:"title"`

	Nickname    string `json:"nickname,omitempty"`
	Description string `json:"description,omitempty"`

	// How explains how to apply the license to a project.
	How string `json:"how,omitempty"`

	Note string `json:"note,omitempty"`

	// Permissions, Conditions and Limitations are rule tags from rules.yml.
	Permissions []string `json:"permissions"`
	Conditions  []string `json:"conditions"`
	Limitations []string `json:"limitations"`

	// Using maps notable project names to their URLs.
	Using map[string]string `json:"using,omitempty"`
}

// WithDefaults fills the defaulted fields so consumers never need nil checks.
func (m LicenseMetadata) WithDefaults(identifier string) LicenseMetadata {
	if strings.TrimSpace(m.SPDXID) == "" {
		m.SPDXID = identifier
	}
	if strings.TrimSpace(m.Title) == "" {
		m.Title = identifier
	}
	if m.Permissions == nil {
		m.Permissions = []string{}
	}
	if m.Conditions == nil {
		m.Conditions = []string{}
	}
	if m.Limitations == nil {
		m.Limitations = []string{}
	}
	if len(m.Using) == 0 {
		m.Using = nil
	}
	return m
}

// Tags returns every rule tag of the license across all three categories.
func (m LicenseMetadata) Tags() []string {
	tags := make([]string, 0, len(m.Permissions)+len(m.Conditions)+len(m.Limitations))
	tags = append(tags, m.Permissions...)
	tags = append(tags, m.Conditions...)
	tags = append(tags, m.Limitations...)
	return tags
}

// ParsedDocument is the result of parsing a raw license file.
type ParsedDocument struct {
	// Identifier is case-preserved as declared; compare with CanonicalKey.
	Identifier string

	Metadata LicenseMetadata
	Body     string
}

// Key returns the canonical cache key for the document.
func (d *ParsedDocument) Key() string {
	return CanonicalKey(d.Identifier)
}

// CanonicalKey normalises a declared identifier into its cache key.
func CanonicalKey(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

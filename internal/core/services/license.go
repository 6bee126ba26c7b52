package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
)

// Ensure Catalog implements the interface.
var _ driving.LicenseService = (*Catalog)(nil)

// KeyRules returns the columns of the comparison matrix. Patent use is
// split because licenses grant it as a permission or exclude it as a
// limitation.
func KeyRules() []driving.KeyRule {
	return []driving.KeyRule{
		{Label: "Commercial use", Tag: "commercial-use"},
		{Label: "State changes", Tag: "document-changes"},
		{Label: "Disclose source", Tag: "disclose-source"},
		{Label: "Same license", Tag: "same-license"},
		{Label: "License & copyright notice", Tag: "include-copyright"},
		{Label: "Liability", Tag: "liability"},
		{Label: "Warranty", Tag: "warranty"},
		{Label: "Trademark use", Tag: "trademark-use"},
		{Label: "Patent use (Perm)", Tag: "patent-use", Category: domain.CategoryPermissions},
		{Label: "Patent use (Lim)", Tag: "patent-use", Category: domain.CategoryLimitations},
	}
}

// placeholderFlags maps canonical keys to the license command flags.
var placeholderFlags = map[string]string{
	domain.PlaceholderFullName:   "--fullname",
	domain.PlaceholderProject:    "--project",
	domain.PlaceholderEmail:      "--email",
	domain.PlaceholderProjectURL: "--projecturl",
	domain.PlaceholderYear:       "--year",
}

// FlagFor returns the license command flag for a canonical key.
func FlagFor(key string) (string, bool) {
	flag, ok := placeholderFlags[key]
	return flag, ok
}

// Catalog answers license queries over a loaded cache.
type Catalog struct {
	aliases AliasTable
}

// NewCatalog creates a catalog. A nil table uses DefaultAliasTable.
func NewCatalog(aliases AliasTable) *Catalog {
	if aliases == nil {
		aliases = DefaultAliasTable()
	}
	return &Catalog{aliases: aliases}
}

// List returns the requested licenses in request order, or every license
// sorted by key.
func (c *Catalog) List(cache *domain.Cache, ids []string) ([]domain.Record, []string) {
	if len(ids) == 0 {
		keys := sortedKeys(cache.Licenses)
		out := make([]domain.Record, 0, len(keys))
		for _, key := range keys {
			out = append(out, cache.Licenses[key])
		}
		return out, nil
	}

	var (
		found   []domain.Record
		missing []string
	)
	seen := make(map[string]bool)
	for _, id := range ids {
		rec, ok := cache.License(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		if seen[rec.Key] {
			continue
		}
		seen[rec.Key] = true
		found = append(found, rec)
	}
	return found, missing
}

// Get returns one license by identifier in any casing.
func (c *Catalog) Get(cache *domain.Cache, id string) (domain.Record, error) {
	rec, ok := cache.License(id)
	if !ok {
		return domain.Record{}, fmt.Errorf("license %q: %w", domain.CanonicalKey(id), domain.ErrNotFound)
	}
	return rec, nil
}

// Find filters licenses by rule tags.
func (c *Catalog) Find(cache *domain.Cache, require, disallow []string) ([]domain.Record, error) {
	if len(require) == 0 && len(disallow) == 0 {
		return nil, fmt.Errorf("%w: provide at least one required or disallowed tag", domain.ErrInvalidInput)
	}

	rules := DecodeRules(cache.Data)
	if rules == nil {
		return nil, fmt.Errorf("%s: %w", domain.RulesDataKey, domain.ErrNotFound)
	}

	var problems []string
	if bad := unknownTags(rules, require); len(bad) > 0 {
		problems = append(problems, "require: "+strings.Join(bad, ", "))
	}
	if bad := unknownTags(rules, disallow); len(bad) > 0 {
		problems = append(problems, "disallow: "+strings.Join(bad, ", "))
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: unknown rule tags (%s)", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}

	var matches []domain.Record
	for _, rec := range cache.Licenses {
		if rec.Metadata == nil {
			continue
		}
		tags := make(map[string]bool)
		for _, tag := range rec.Metadata.Tags() {
			tags[tag] = true
		}
		if hasAll(tags, require) && !hasAny(tags, disallow) {
			matches = append(matches, rec)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Metadata.SPDXID < matches[j].Metadata.SPDXID
	})
	return matches, nil
}

// Compare builds the key-rule matrix. At least two known licenses are
// required.
func (c *Catalog) Compare(cache *domain.Cache, ids []string) (*driving.Comparison, error) {
	licenses, missing := c.List(cache, ids)
	if len(licenses) < 2 {
		return nil, fmt.Errorf("%w: need at least two licenses to compare, found %d", domain.ErrInvalidInput, len(licenses))
	}

	cmp := &driving.Comparison{Rules: KeyRules(), Missing: missing}
	for _, rec := range licenses {
		row := driving.ComparisonRow{Title: rec.Title(), SPDXID: rec.Key}
		var meta domain.LicenseMetadata
		if rec.Metadata != nil {
			meta = *rec.Metadata
			row.SPDXID = meta.SPDXID
		}
		for _, rule := range cmp.Rules {
			row.Has = append(row.Has, hasRule(meta, rule))
		}
		cmp.Rows = append(cmp.Rows, row)
	}
	return cmp, nil
}

// Placeholders describes every raw token of a license body.
func (c *Catalog) Placeholders(cache *domain.Cache, id string) ([]driving.PlaceholderInfo, error) {
	rec, err := c.Get(cache, id)
	if err != nil {
		return nil, err
	}

	descriptions := make(map[string]string)
	for _, f := range DecodeFields(cache.Data) {
		descriptions[strings.ToLower(f.Name)] = f.Description
	}

	tokens := rec.Placeholders
	if tokens == nil && rec.Body != nil {
		tokens = FindPlaceholders(*rec.Body)
	}

	out := make([]driving.PlaceholderInfo, 0, len(tokens))
	for _, token := range tokens {
		info := driving.PlaceholderInfo{RawToken: token, Description: fieldNotDescribed}
		if d, ok := descriptions[normaliseTokenName(token)]; ok {
			info.Description = d
		}
		if key, ok := c.aliases.Canonical(token); ok {
			info.CanonicalKey = key
			info.Flag = placeholderFlags[key]
			info.DefaultsToYear = key == domain.PlaceholderYear
		}
		out = append(out, info)
	}
	return out, nil
}

func hasRule(meta domain.LicenseMetadata, rule driving.KeyRule) bool {
	var pool []string
	switch rule.Category {
	case domain.CategoryPermissions:
		pool = meta.Permissions
	case domain.CategoryConditions:
		pool = meta.Conditions
	case domain.CategoryLimitations:
		pool = meta.Limitations
	default:
		pool = meta.Tags()
	}
	for _, tag := range pool {
		if tag == rule.Tag {
			return true
		}
	}
	return false
}

func unknownTags(rules *domain.RulesData, tags []string) []string {
	var bad []string
	for _, tag := range tags {
		if !rules.HasTag(tag) {
			bad = append(bad, tag)
		}
	}
	return bad
}

func hasAll(set map[string]bool, tags []string) bool {
	for _, tag := range tags {
		if !set[tag] {
			return false
		}
	}
	return true
}

func hasAny(set map[string]bool, tags []string) bool {
	for _, tag := range tags {
		if set[tag] {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// AliasTable maps lowercased token names (without brackets) to canonical
// placeholder keys.
type AliasTable map[string]string

// DefaultAliasTable returns the spellings used by choosealicense.com.
func DefaultAliasTable() AliasTable {
	return AliasTable{
		"fullname":                domain.PlaceholderFullName,
		"name of copyright owner": domain.PlaceholderFullName,
		"login":                   domain.PlaceholderFullName,
		"project":                 domain.PlaceholderProject,
		"email":                   domain.PlaceholderEmail,
		"projecturl":              domain.PlaceholderProjectURL,
		"year":                    domain.PlaceholderYear,
		"yyyy":                    domain.PlaceholderYear,
	}
}

// With returns a copy of t with overrides applied. An empty canonical key
// removes the alias.
func (t AliasTable) With(overrides map[string]string) AliasTable {
	out := make(AliasTable, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for raw, canonical := range overrides {
		name := normaliseTokenName(raw)
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if canonical == "" {
			delete(out, name)
			continue
		}
		out[name] = canonical
	}
	return out
}

// Canonical returns the canonical key of a raw token such as "[Year]".
func (t AliasTable) Canonical(rawToken string) (string, bool) {
	key, ok := t[normaliseTokenName(rawToken)]
	return key, ok
}

func normaliseTokenName(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && raw[0] == '[' && raw[len(raw)-1] == ']' {
		raw = raw[1 : len(raw)-1]
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// Resolver fills placeholder tokens of a license body.
//
// Tokens have the form "[" + one or more non-"]" characters + "]". There
// is no escape for literal bracketed text, so any bracketed text whose
// name is a known alias is substituted.
type Resolver struct {
	aliases AliasTable
}

// NewResolver creates a resolver. A nil table uses DefaultAliasTable.
func NewResolver(aliases AliasTable) *Resolver {
	if aliases == nil {
		aliases = DefaultAliasTable()
	}
	return &Resolver{aliases: aliases}
}

// Aliases returns the resolver's alias table.
func (r *Resolver) Aliases() AliasTable {
	return r.aliases
}

// Resolve substitutes every recognised token of body in a single pass.
// Values are taken from explicit, then saved, then a year computed from
// now. Unresolved and unrecognised tokens are left verbatim. A nil now
// uses time.Now.
func (r *Resolver) Resolve(body string, explicit, saved map[string]string, now func() time.Time) domain.Resolution {
	if now == nil {
		now = time.Now
	}

	rawByKey := make(map[string][]string)
	var unrecognized []string
	for _, token := range FindPlaceholders(body) {
		key, ok := r.aliases.Canonical(token)
		if !ok {
			unrecognized = append(unrecognized, token)
			continue
		}
		rawByKey[key] = append(rawByKey[key], token)
	}

	keys := make([]string, 0, len(rawByKey))
	for key := range rawByKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bindings := make([]domain.Binding, 0, len(keys))
	var pairs []string
	for _, key := range keys {
		b := domain.Binding{CanonicalKey: key, RawTokens: rawByKey[key]}

		if v, ok := explicit[key]; ok {
			b.Value, b.Resolved, b.Source = v, true, domain.SourceExplicit
		} else if v, ok := saved[key]; ok {
			b.Value, b.Resolved, b.Source = v, true, domain.SourceSavedPreference
		} else if key == domain.PlaceholderYear {
			b.Value, b.Resolved, b.Source = strconv.Itoa(now().Year()), true, domain.SourceComputedDefault
		}

		if b.Resolved {
			for _, token := range b.RawTokens {
				pairs = append(pairs, token, b.Value)
			}
		}
		bindings = append(bindings, b)
	}

	filled := body
	if len(pairs) > 0 {
		filled = strings.NewReplacer(pairs...).Replace(body)
	}

	return domain.Resolution{
		FilledBody:   filled,
		Bindings:     bindings,
		Unrecognized: unrecognized,
	}
}

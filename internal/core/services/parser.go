package services

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/logger"
)

const frontMatterDelimiter = "---"

var (
	// spdxLinePattern recovers an identifier from a header YAML rejected.
	spdxLinePattern = regexp.MustCompile(`(?i)spdx-id:\s*([^\n]+)`)

	// identifierPattern is the character set accepted for a filename guess.
	identifierPattern = regexp.MustCompile(`^[A-Za-z0-9.\-+]+$`)

	// placeholderPattern matches a bracketed token. There is no escape for
	// literal brackets.
	placeholderPattern = regexp.MustCompile(`\[([^\]]+)\]`)
)

// frontMatter mirrors the license header keys of choosealicense.com.
type frontMatter struct {
	SPDXID      string    `yaml:"spdx-id"`
	Title       string    `yaml:"title"`
	Nickname    string    `yaml:"nickname"`
	Description string    `yaml:"description"`
	How         string    `yaml:"how"`
	Note        string    `yaml:"note"`
	Permissions []string  `yaml:"permissions"`
	Conditions  []string  `yaml:"conditions"`
	Limitations []string  `yaml:"limitations"`
	Using       yaml.Node `yaml:"using"`
}

// Parser turns raw collection files into documents.
// The zero value is ready to use; Log is optional.
type Parser struct {
	Log *logger.Logger
}

// ParseLicense parses a license file with a silent Parser.
func ParseLicense(filename, raw string) (*domain.ParsedDocument, error) {
	return Parser{}.ParseLicense(filename, raw)
}

// ParseLicense splits the front matter from the body, extracts the
// identifier with its fallbacks, and applies metadata defaults.
// It fails with a *domain.ParseError only when no identifier can be
// determined.
func (p Parser) ParseLicense(filename, raw string) (*domain.ParsedDocument, error) {
	header, body, hasHeader := splitFrontMatter(raw)

	var meta domain.LicenseMetadata
	identifier := ""

	if hasHeader {
		fm, ok := p.decodeHeader(filename, header)
		if ok {
			meta = fm.metadata(p.Log, filename)
			identifier = strings.TrimSpace(fm.SPDXID)
		}
		if identifier == "" {
			identifier = scanIdentifier(header)
			if identifier != "" {
				p.Log.Debug("Recovered identifier %q for %s from raw header", identifier, filename)
			}
		}
	} else {
		p.Log.Debug("No front matter found in %s", filename)
	}

	if identifier == "" {
		identifier = GuessIdentifier(filename)
		if identifier == "" {
			return nil, &domain.ParseError{
				Filename: filename,
				Reason:   "no identifier in header and filename is not an identifier",
				Err:      domain.ErrMalformedDocument,
			}
		}
		p.Log.Debug("Guessed identifier %q from filename %s", identifier, filename)
	}

	meta.SPDXID = identifier
	return &domain.ParsedDocument{
		Identifier: identifier,
		Metadata:   meta.WithDefaults(identifier),
		Body:       body,
	}, nil
}

// decodeHeader parses the header block. It reports false when the header
// is not valid YAML or not a mapping.
func (p Parser) decodeHeader(filename, header string) (frontMatter, bool) {
	var fm frontMatter

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(header), &doc); err != nil {
		p.Log.Warn("Front matter of %s is not valid YAML: %v", filename, err)
		return fm, false
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		p.Log.Warn("Front matter of %s is not a mapping, ignoring it", filename)
		return fm, false
	}
	if err := doc.Content[0].Decode(&fm); err != nil {
		p.Log.Warn("Front matter of %s has unexpected fields: %v", filename, err)
		return frontMatter{}, false
	}
	return fm, true
}

func (fm frontMatter) metadata(log *logger.Logger, filename string) domain.LicenseMetadata {
	meta := domain.LicenseMetadata{
		SPDXID:      strings.TrimSpace(fm.SPDXID),
		Title:       strings.TrimSpace(fm.Title),
		Nickname:    strings.TrimSpace(fm.Nickname),
		Description: strings.TrimSpace(fm.Description),
		How:         strings.TrimSpace(fm.How),
		Note:        strings.TrimSpace(fm.Note),
		Permissions: fm.Permissions,
		Conditions:  fm.Conditions,
		Limitations: fm.Limitations,
	}
	using, err := decodeUsing(&fm.Using)
	if err != nil {
		log.Debug("Ignoring using list of %s: %v", filename, err)
	}
	meta.Using = using
	return meta
}

// decodeUsing accepts both a mapping and a sequence of single-entry
// mappings, the two shapes used upstream over time.
func decodeUsing(node *yaml.Node) (map[string]string, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
		out := make(map[string]string)
		if err := node.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	case yaml.SequenceNode:
		out := make(map[string]string)
		for _, item := range node.Content {
			entry := make(map[string]string)
			if err := item.Decode(&entry); err != nil {
				return nil, err
			}
			for k, v := range entry {
				out[k] = v
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected node kind %d", node.Kind)
	}
}

// splitFrontMatter returns the header and body of a raw file. Files
// without a complete header are returned whole as the body.
func splitFrontMatter(raw string) (header, body string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, frontMatterDelimiter) {
		return "", trimmed, false
	}
	parts := strings.SplitN(trimmed, frontMatterDelimiter, 3)
	if len(parts) != 3 {
		return "", trimmed, false
	}
	return strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), true
}

func scanIdentifier(header string) string {
	m := spdxLinePattern.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(m[1]), `"'`)
}

// GuessIdentifier derives an identifier from a filename by stripping the
// extension. It returns "" when the stem has characters outside
// letters, digits, '.', '-' and '+'.
func GuessIdentifier(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if !identifierPattern.MatchString(stem) {
		return ""
	}
	return stem
}

// ParseDataFile parses a _data YAML file into a JSON-compatible value.
// Numbers become float64 so the value survives a cache round-trip.
func ParseDataFile(filename, raw string) (any, error) {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return nil, &domain.ParseError{Filename: filename, Reason: "invalid YAML", Err: err}
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, &domain.ParseError{Filename: filename, Reason: "unsupported YAML structure", Err: err}
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return nil, &domain.ParseError{Filename: filename, Reason: "unsupported YAML structure", Err: err}
	}
	return normalized, nil
}

// FindPlaceholders returns the distinct raw tokens of body, brackets
// included, sorted. Tokens differing only in case are distinct.
func FindPlaceholders(body string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, m := range placeholderPattern.FindAllString(body, -1) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		tokens = append(tokens, m)
	}
	sort.Strings(tokens)
	return tokens
}

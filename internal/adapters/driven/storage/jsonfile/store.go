package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CacheStore = (*Store)(nil)

// FormatVersion is the version of the persisted document.
const FormatVersion = 1

// DefaultFilename is the cache file name inside the config directory.
const DefaultFilename = "license_cache.json"

// document is the persisted form of the cache.
type document struct {
	Version     int                      `json:"version"`
	Licenses    map[string]domain.Record `json:"licenses"`
	Data        map[string]domain.Record `json:"data"`
	Preferences preferences              `json:"preferences"`
}

type preferences struct {
	Kind   domain.RecordKind `json:"kind"`
	Values map[string]string `json:"values"`
}

// Store persists the cache as one indented JSON document with sorted keys.
type Store struct {
	path string
}

// NewStore creates a store at path. An empty path uses
// ~/.getlicense/license_cache.json.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".getlicense", DefaultFilename)
	}
	return &Store{path: path}, nil
}

// Path returns the cache file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the cache file. A missing or blank file is an empty cache.
func (s *Store) Load(_ context.Context) (*domain.Cache, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.NewCache(), nil
	}
	if err != nil {
		return domain.NewCache(), fmt.Errorf("%w: reading %s: %v", domain.ErrCorruptCache, s.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.NewCache(), nil
	}

	cache, err := Decode(raw)
	if err != nil {
		return domain.NewCache(), fmt.Errorf("%w: %s: %v", domain.ErrCorruptCache, s.path, err)
	}
	return cache, nil
}

// Save writes the cache to a temporary file in the same directory and
// renames it over the previous file.
func (s *Store) Save(ctx context.Context, cache *domain.Cache) error {
	if err := ctx.Err(); err != nil {
		return &domain.PersistError{Path: s.path, Err: err}
	}
	raw, err := Encode(cache)
	if err != nil {
		return &domain.PersistError{Path: s.path, Err: err}
	}
	if err := writeAtomic(s.path, raw); err != nil {
		return &domain.PersistError{Path: s.path, Err: err}
	}
	return nil
}

// Encode renders the cache in its persisted form.
func Encode(cache *domain.Cache) ([]byte, error) {
	if cache == nil {
		cache = domain.NewCache()
	}
	doc := document{
		Version:     FormatVersion,
		Licenses:    withKind(cache.Licenses, domain.KindLicense),
		Data:        withKind(cache.Data, domain.KindData),
		Preferences: preferences{Kind: domain.KindPreferences, Values: cache.Preferences},
	}
	if doc.Preferences.Values == nil {
		doc.Preferences.Values = map[string]string{}
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding cache: %w", err)
	}
	return append(raw, '\n'), nil
}

// Decode parses the persisted form. Records filed under the wrong
// namespace make the document invalid.
func Decode(raw []byte) (*domain.Cache, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding cache: %w", err)
	}
	if doc.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported cache version %d", doc.Version)
	}
	if err := checkKind(doc.Licenses, domain.KindLicense); err != nil {
		return nil, err
	}
	if err := checkKind(doc.Data, domain.KindData); err != nil {
		return nil, err
	}
	if doc.Preferences.Kind != "" && doc.Preferences.Kind != domain.KindPreferences {
		return nil, fmt.Errorf("preferences record has kind %q", doc.Preferences.Kind)
	}

	cache := &domain.Cache{
		Licenses:    doc.Licenses,
		Data:        doc.Data,
		Preferences: doc.Preferences.Values,
	}
	cache.Normalize()
	return cache, nil
}

func withKind(records map[string]domain.Record, kind domain.RecordKind) map[string]domain.Record {
	out := make(map[string]domain.Record, len(records))
	for key, rec := range records {
		rec.Kind = kind
		out[key] = rec
	}
	return out
}

func checkKind(records map[string]domain.Record, kind domain.RecordKind) error {
	for key, rec := range records {
		if rec.Kind != "" && rec.Kind != kind {
			return fmt.Errorf("record %q has kind %q, want %q", key, rec.Kind, kind)
		}
	}
	return nil
}

func writeAtomic(dest string, raw []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".license_cache-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}

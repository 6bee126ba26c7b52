package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CacheStore = (*Store)(nil)

// DefaultFilename is the database file name inside the config directory.
const DefaultFilename = "license_cache.db"

// preferencesPayload is the stored form of the preferences record.
type preferencesPayload struct {
	Kind   domain.RecordKind `json:"kind"`
	Values map[string]string `json:"values"`
}

// Store is a SQLite-backed cache store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the database at path, creating it and running migrations
// as needed. An empty path uses ~/.getlicense/license_cache.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".getlicense", DefaultFilename)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every record. Undecodable rows make the whole cache corrupt.
func (s *Store) Load(ctx context.Context) (*domain.Cache, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, key, payload FROM records ORDER BY kind, key`)
	if err != nil {
		return domain.NewCache(), fmt.Errorf("%w: querying records: %v", domain.ErrCorruptCache, err)
	}
	defer rows.Close()

	cache := domain.NewCache()
	for rows.Next() {
		var kind, key, payload string
		if err := rows.Scan(&kind, &key, &payload); err != nil {
			return domain.NewCache(), fmt.Errorf("%w: scanning record: %v", domain.ErrCorruptCache, err)
		}
		if err := decodeRow(cache, domain.RecordKind(kind), key, payload); err != nil {
			return domain.NewCache(), fmt.Errorf("%w: %v", domain.ErrCorruptCache, err)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.NewCache(), fmt.Errorf("%w: iterating records: %v", domain.ErrCorruptCache, err)
	}

	cache.Normalize()
	return cache, nil
}

func decodeRow(cache *domain.Cache, kind domain.RecordKind, key, payload string) error {
	switch kind {
	case domain.KindLicense, domain.KindData:
		var rec domain.Record
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return fmt.Errorf("decoding %s record %q: %w", kind, key, err)
		}
		if rec.Kind != "" && rec.Kind != kind {
			return fmt.Errorf("record %q has kind %q in %s rows", key, rec.Kind, kind)
		}
		if kind == domain.KindLicense {
			cache.Licenses[key] = rec
		} else {
			cache.Data[key] = rec
		}
	case domain.KindPreferences:
		var prefs preferencesPayload
		if err := json.Unmarshal([]byte(payload), &prefs); err != nil {
			return fmt.Errorf("decoding preferences: %w", err)
		}
		for k, v := range prefs.Values {
			cache.Preferences[k] = v
		}
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
	return nil
}

// Save replaces all records in one transaction.
func (s *Store) Save(ctx context.Context, cache *domain.Cache) error {
	if cache == nil {
		cache = domain.NewCache()
	}
	if err := s.save(ctx, cache); err != nil {
		return &domain.PersistError{Path: s.path, Err: err}
	}
	return nil
}

func (s *Store) save(ctx context.Context, cache *domain.Cache) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (kind, key, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	insert := func(kind domain.RecordKind, key string, value any) error {
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding %s record %q: %w", kind, key, err)
		}
		if _, err := stmt.ExecContext(ctx, string(kind), key, string(payload)); err != nil {
			return fmt.Errorf("inserting %s record %q: %w", kind, key, err)
		}
		return nil
	}

	for _, key := range sortedKeys(cache.Licenses) {
		rec := cache.Licenses[key]
		rec.Kind = domain.KindLicense
		if err := insert(domain.KindLicense, key, rec); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(cache.Data) {
		rec := cache.Data[key]
		rec.Kind = domain.KindData
		if err := insert(domain.KindData, key, rec); err != nil {
			return err
		}
	}
	values := cache.Preferences
	if values == nil {
		values = map[string]string{}
	}
	if err := insert(domain.KindPreferences, "", preferencesPayload{Kind: domain.KindPreferences, Values: values}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_records.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

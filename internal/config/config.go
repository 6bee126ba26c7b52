// Package config turns the key/value configuration store into typed
// settings with defaults applied.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
)

// Configuration keys.
const (
	KeyCacheBackend       = "cache.backend"
	KeyCachePath          = "cache.path"
	KeySourceType         = "source.type"
	KeySourceOwner        = "source.owner"
	KeySourceRepo         = "source.repo"
	KeySourceBranch       = "source.branch"
	KeySourcePath         = "source.path"
	KeySourceLicensesDir  = "source.licenses_dir"
	KeySourceDataDir      = "source.data_dir"
	KeySyncWorkers        = "sync.workers"
	KeySyncOffline        = "sync.offline"
	KeyPlaceholderAliases = "placeholders.aliases"
)

// Backend selects the cache store.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// DefaultWorkers bounds parallel fetches when sync.workers is unset.
const DefaultWorkers = 4

// Config is the resolved application configuration.
type Config struct {
	Cache  CacheConfig
	Source domain.SourceConfig
	Sync   SyncConfig

	// Aliases override the placeholder alias table. An empty value
	// removes an alias.
	Aliases map[string]string
}

// CacheConfig selects where the cache is kept.
type CacheConfig struct {
	Backend Backend

	// Path overrides the backend's default file in the config directory.
	Path string
}

// SyncConfig tunes sync passes.
type SyncConfig struct {
	Workers int
	Offline bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Cache:  CacheConfig{Backend: BackendJSON},
		Source: domain.DefaultSourceConfig(),
		Sync:   SyncConfig{Workers: DefaultWorkers},
	}
}

// Load reads the store over the defaults and validates the result.
func Load(store driven.ConfigStore) (Config, error) {
	cfg := Default()

	if v := store.GetString(KeyCacheBackend); v != "" {
		cfg.Cache.Backend = Backend(strings.ToLower(v))
	}
	cfg.Cache.Path = expandHome(store.GetString(KeyCachePath))

	if v := store.GetString(KeySourceType); v != "" {
		cfg.Source.Type = domain.SourceType(strings.ToLower(v))
	}
	setString(&cfg.Source.Owner, store, KeySourceOwner)
	setString(&cfg.Source.Repo, store, KeySourceRepo)
	setString(&cfg.Source.Branch, store, KeySourceBranch)
	setString(&cfg.Source.LicensesDir, store, KeySourceLicensesDir)
	setString(&cfg.Source.DataDir, store, KeySourceDataDir)
	cfg.Source.Path = expandHome(store.GetString(KeySourcePath))

	if _, ok := store.Get(KeySyncWorkers); ok {
		cfg.Sync.Workers = store.GetInt(KeySyncWorkers)
	}
	cfg.Sync.Offline = store.GetBool(KeySyncOffline)
	cfg.Aliases = store.GetStringMap(KeyPlaceholderAliases)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", store.Path(), err)
	}
	return cfg, nil
}

// Validate checks backend, source and worker settings.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown cache backend %q (use json, sqlite or memory)", domain.ErrInvalidInput, c.Cache.Backend)
	}
	if c.Sync.Workers <= 0 {
		return fmt.Errorf("%w: sync.workers must be positive, got %d", domain.ErrInvalidInput, c.Sync.Workers)
	}
	return c.Source.Validate()
}

// CachePath returns the cache location, defaulting to the backend's file
// inside configDir.
func (c Config) CachePath(configDir string) string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	if c.Cache.Backend == BackendSQLite {
		return filepath.Join(configDir, sqlite.DefaultFilename)
	}
	return filepath.Join(configDir, jsonfile.DefaultFilename)
}

func setString(dst *string, store driven.ConfigStore, key string) {
	if v := strings.TrimSpace(store.GetString(key)); v != "" {
		*dst = v
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

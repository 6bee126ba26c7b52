package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/getlicense/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(memory.NewConfigStore())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, BackendJSON, cfg.Cache.Backend)
	assert.Equal(t, domain.DefaultSourceConfig(), cfg.Source)
	assert.Equal(t, DefaultWorkers, cfg.Sync.Workers)
	assert.Nil(t, cfg.Aliases)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOME", "/home/jane")
	store := memory.NewConfigStoreWith(map[string]any{
		KeyCacheBackend:                  "SQLite",
		KeyCachePath:                     "~/caches/licenses.db",
		KeySourceType:                    "filesystem",
		KeySourcePath:                    "~/src/choosealicense.com",
		KeySourceLicensesDir:             "licenses",
		KeySyncWorkers:                   int64(8),
		KeySyncOffline:                   true,
		"placeholders.aliases.author":    "fullname",
		"placeholders.aliases.yyyy":      "",
		"placeholders.aliases.something": "project",
	})

	cfg, err := Load(store)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Cache.Backend)
	assert.Equal(t, "/home/jane/caches/licenses.db", cfg.Cache.Path)
	assert.Equal(t, domain.SourceTypeFilesystem, cfg.Source.Type)
	assert.Equal(t, "/home/jane/src/choosealicense.com", cfg.Source.Path)
	assert.Equal(t, "licenses", cfg.Source.LicensesDir)
	assert.Equal(t, domain.DefaultDataDir, cfg.Source.DataDir)
	assert.Equal(t, 8, cfg.Sync.Workers)
	assert.True(t, cfg.Sync.Offline)
	assert.Equal(t, map[string]string{"author": "fullname", "yyyy": "", "something": "project"}, cfg.Aliases)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{name: "unknown backend", values: map[string]any{KeyCacheBackend: "redis"}},
		{name: "unknown source", values: map[string]any{KeySourceType: "gitlab"}},
		{name: "zero workers", values: map[string]any{KeySyncWorkers: 0}},
		{name: "filesystem without path", values: map[string]any{KeySourceType: "filesystem"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(memory.NewConfigStoreWith(tt.values))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), ":memory:")
		})
	}
}

func TestCachePath(t *testing.T) {
	dir := "/cfg"

	cfg := Default()
	assert.Equal(t, filepath.Join(dir, "license_cache.json"), cfg.CachePath(dir))

	cfg.Cache.Backend = BackendSQLite
	assert.Equal(t, filepath.Join(dir, "license_cache.db"), cfg.CachePath(dir))

	cfg.Cache.Path = "/elsewhere/cache.db"
	assert.Equal(t, "/elsewhere/cache.db", cfg.CachePath(dir))
}

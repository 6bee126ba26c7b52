package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/memory"
)

func TestNeedsServices(t *testing.T) {
	assert.True(t, needsServices(listCmd))
	assert.True(t, needsServices(mcpServeCmd))
	assert.False(t, needsServices(versionCmd))
	assert.NotNil(t, mcpServeCmd.Flags().Lookup("port"))
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"refresh", "offline", "verbose", "cache-file", "config-dir"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestSetup_UsesBootstrap(t *testing.T) {
	originalBootstrap := bootstrap
	defer func() { bootstrap = originalBootstrap }()

	env := &testEnv{root: t.TempDir(), store: memory.NewCacheStore()}
	called := 0
	SetBootstrap(func(o Options, _ io.Writer) (*Services, error) {
		called++
		assert.True(t, o.Offline)
		return env.services(), nil
	})
	t.Cleanup(func() { svc = nil })

	stdout, _, err := execute(t, "list", "--offline")

	require.NoError(t, err)
	assert.Equal(t, 1, called)
	assert.Contains(t, stdout, "No licenses cached.")
}

func TestNewServices_FilesystemSource(t *testing.T) {
	env := &testEnv{root: t.TempDir()}
	writeFile(t, env.root, "_data/rules.yml", testRules)
	writeFile(t, env.root, "_licenses/mit.txt", testMIT)

	configDir := t.TempDir()
	config := "[cache]\nbackend = \"json\"\n\n[source]\ntype = \"filesystem\"\npath = \"" +
		filepath.ToSlash(env.root) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600))

	s, err := newServices(Options{ConfigDir: configDir}, io.Discard)
	require.NoError(t, err)
	defer func() { assert.NoError(t, s.Close()) }()

	assert.NotNil(t, s.Watch)
	assert.Equal(t, filepath.Join(configDir, "license_cache.json"), s.Cache.Path())
}

func TestNewServices_CacheFileOverride(t *testing.T) {
	configDir := t.TempDir()
	cacheFile := filepath.Join(t.TempDir(), "cache.json")

	s, err := newServices(Options{ConfigDir: configDir, CacheFile: cacheFile}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, cacheFile, s.Cache.Path())
	assert.Nil(t, s.Watch, "the github source is not watchable")
}

func TestNewServices_InvalidConfig(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("[cache]\nbackend = \"redis\"\n"), 0o600))

	_, err := newServices(Options{ConfigDir: configDir}, io.Discard)

	require.Error(t, err)
}

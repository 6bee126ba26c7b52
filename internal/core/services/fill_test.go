package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
)

func newTestFillService() *FillService {
	return NewFillService(NewCatalog(nil), NewResolver(nil), fixedClock(2024), nil)
}

func TestFillService_Fill(t *testing.T) {
	cache := syncedCache(t)
	cache.Preferences["fullname"] = "Old Corp"
	out := filepath.Join(t.TempDir(), "sub", "LICENSE")

	result, err := newTestFillService().Fill(context.Background(), cache, driving.FillRequest{
		LicenseID:  "MIT",
		Explicit:   map[string]string{"fullname": "Jane Doe", "email": "jane@example.com", "year": "2020"},
		OutputPath: out,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "MIT License\n\nCopyright (c) 2020 Jane Doe\n", string(raw))

	assert.Equal(t, out, result.OutputPath)
	assert.True(t, result.PreferencesChanged)
	assert.Equal(t, map[string]string{"fullname": "Jane Doe", "email": "jane@example.com"}, result.SavedPreferences)
	assert.Equal(t, "Jane Doe", cache.Preferences["fullname"])
	assert.Equal(t, "jane@example.com", cache.Preferences["email"])
	assert.NotContains(t, cache.Preferences, "year")
}

func TestFillService_Fill_UsesSavedPreference(t *testing.T) {
	cache := syncedCache(t)
	cache.Preferences["fullname"] = "Saved Name"
	out := filepath.Join(t.TempDir(), "LICENSE")

	result, err := newTestFillService().Fill(context.Background(), cache, driving.FillRequest{LicenseID: "isc", OutputPath: out})
	require.NoError(t, err)

	assert.False(t, result.PreferencesChanged)
	assert.Contains(t, result.Resolution.FilledBody, "Copyright (c) 2024 Saved Name")

	b, ok := result.Resolution.Binding("fullname")
	require.True(t, ok)
	assert.Equal(t, domain.SourceSavedPreference, b.Source)
}

func TestFillService_Fill_SameValueIsNotAChange(t *testing.T) {
	cache := syncedCache(t)
	cache.Preferences["fullname"] = "Jane"

	result, err := newTestFillService().Fill(context.Background(), cache, driving.FillRequest{
		LicenseID:  "mit",
		Explicit:   map[string]string{"fullname": "Jane"},
		OutputPath: filepath.Join(t.TempDir(), "LICENSE"),
	})
	require.NoError(t, err)
	assert.False(t, result.PreferencesChanged)
}

func TestFillService_Fill_NotFound(t *testing.T) {
	_, err := newTestFillService().Fill(context.Background(), domain.NewCache(), driving.FillRequest{LicenseID: "mit"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFillService_Fill_DefaultOutput(t *testing.T) {
	cache := syncedCache(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	result, err := newTestFillService().Fill(context.Background(), cache, driving.FillRequest{LicenseID: "mit"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputPath, result.OutputPath)
	assert.FileExists(t, filepath.Join(dir, DefaultOutputPath))
}

func TestFillService_Preview_NoSideEffects(t *testing.T) {
	cache := syncedCache(t)

	result, err := newTestFillService().Preview(cache, "mit", map[string]string{"fullname": "Jane"})
	require.NoError(t, err)

	assert.Contains(t, result.Resolution.FilledBody, "2024 Jane")
	assert.Empty(t, result.OutputPath)
	assert.Empty(t, cache.Preferences)
}

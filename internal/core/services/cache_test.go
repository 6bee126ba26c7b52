package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/logger"
)

func TestCacheRepository_Load_Missing(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)

	cache := repo.Load(context.Background())
	require.NotNil(t, cache)
	assert.Empty(t, cache.Licenses)
	assert.NotNil(t, cache.Preferences)
}

func TestCacheRepository_Load_CorruptIsFirstRun(t *testing.T) {
	store := memory.NewCacheStore()
	store.LoadErr = domain.ErrCorruptCache

	var buf bytes.Buffer
	repo := NewCacheRepository(store, logger.New(&buf, false))

	cache := repo.Load(context.Background())
	require.NotNil(t, cache)
	assert.Empty(t, cache.Licenses)
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "starting fresh")
}

func TestCacheRepository_Save_WrapsFailure(t *testing.T) {
	store := memory.NewCacheStore()
	store.SaveErr = errors.New("disk full")
	repo := NewCacheRepository(store, nil)

	cache := domain.NewCache()
	cache.Preferences["fullname"] = "Jane Doe"

	err := repo.Save(context.Background(), cache)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersist)

	var perr *domain.PersistError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "memory", perr.Path)

	// In-memory state stays usable.
	assert.Equal(t, "Jane Doe", cache.Preferences["fullname"])
}

func TestCacheRepository_SaveLoad(t *testing.T) {
	store := memory.NewCacheStore()
	repo := NewCacheRepository(store, nil)
	ctx := context.Background()

	cache := domain.NewCache()
	cache.Licenses["mit"] = licenseRecord("mit", "mit.txt", "a", "MIT")
	require.NoError(t, repo.Save(ctx, cache))

	loaded := repo.Load(ctx)
	assert.Equal(t, cache, loaded)
	assert.Equal(t, "memory", repo.Path())
}

func TestMerge_AppliesPlan(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)
	previous := map[string]domain.Record{
		"mit":      licenseRecord("mit", "mit.txt", "a", "MIT"),
		"isc":      licenseRecord("isc", "isc.txt", "old", "ISC"),
		"wtfpl":    licenseRecord("wtfpl", "wtfpl.txt", "w", "WTFPL"),
		"apache-2": licenseRecord("apache-2", "apache-2.0.txt", "ap", "Apache-2.0"),
	}
	plan := domain.SyncPlan{
		Retain: []string{"mit"},
		Fetch:  []domain.RemoteEntry{entry("isc.txt", "new"), entry("unlicense.txt", "u")},
		Delete: []string{"wtfpl"},
		Rekey:  []domain.Rekey{{OldKey: "apache-2", NewKey: "apache-2.0"}},
		Order:  []string{"mit.txt", "isc.txt", "unlicense.txt", "apache-2.0.txt"},
	}
	fetched := map[string]domain.Record{
		"isc.txt":       licenseRecord("", "isc.txt", "new", "ISC"),
		"unlicense.txt": licenseRecord("", "unlicense.txt", "u", "Unlicense"),
	}

	out := repo.MergeLicenses(previous, plan, fetched)

	assert.ElementsMatch(t, []string{"mit", "isc", "unlicense", "apache-2.0"}, keysOf(out))
	assert.Equal(t, previous["mit"], out["mit"])
	assert.Equal(t, "new", out["isc"].ContentHash)
	assert.Equal(t, "apache-2.0", out["apache-2.0"].Key)
	assert.Equal(t, "ap", out["apache-2.0"].ContentHash)
	assert.NotContains(t, out, "wtfpl")
	assert.NotContains(t, out, "apache-2")
}

func TestMerge_FailedFetchKeepsPrevious(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)
	previous := map[string]domain.Record{
		"isc": licenseRecord("isc", "isc.txt", "old", "ISC"),
	}
	plan := domain.SyncPlan{
		Fetch: []domain.RemoteEntry{entry("isc.txt", "new"), entry("brand-new.txt", "n")},
		Order: []string{"isc.txt", "brand-new.txt"},
	}

	out := repo.MergeLicenses(previous, plan, map[string]domain.Record{})

	require.Contains(t, out, "isc")
	assert.Equal(t, previous["isc"], out["isc"])
	assert.NotContains(t, out, "brand-new")
	assert.Len(t, out, 1)
}

func TestMerge_FetchedIdentifierChangeMovesRecord(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)
	previous := map[string]domain.Record{
		"gpl-3.0": licenseRecord("gpl-3.0", "gpl-3.0.txt", "old", "GPL-3.0"),
	}
	plan := domain.SyncPlan{
		Fetch: []domain.RemoteEntry{entry("gpl-3.0.txt", "new")},
		Order: []string{"gpl-3.0.txt"},
	}
	fetched := map[string]domain.Record{
		"gpl-3.0.txt": licenseRecord("", "gpl-3.0.txt", "new", "GPL-3.0-only"),
	}

	out := repo.MergeLicenses(previous, plan, fetched)

	assert.Equal(t, []string{"gpl-3.0-only"}, keysOf(out))
	assert.Equal(t, "gpl-3.0.txt", out["gpl-3.0-only"].Filename)
}

func TestMerge_SameKeyLaterListingWins(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)
	plan := domain.SyncPlan{
		Fetch: []domain.RemoteEntry{entry("mit-a.txt", "a"), entry("mit-b.txt", "b")},
		Order: []string{"mit-a.txt", "mit-b.txt"},
	}
	fetched := map[string]domain.Record{
		"mit-a.txt": licenseRecord("", "mit-a.txt", "a", "MIT"),
		"mit-b.txt": licenseRecord("", "mit-b.txt", "b", "MIT"),
	}

	for i := 0; i < 10; i++ {
		out := repo.MergeLicenses(nil, plan, fetched)
		require.Len(t, out, 1)
		assert.Equal(t, "mit-b.txt", out["mit"].Filename)
	}
}

func TestMerge_RetainedLaterListingBeatsFetched(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)
	previous := map[string]domain.Record{
		"mit": licenseRecord("mit", "mit.txt", "h1", "MIT"),
	}
	remote := []domain.RemoteEntry{entry("new.txt", "h2"), entry("mit.txt", "h1")}
	fetched := map[string]domain.Record{
		"new.txt": licenseRecord("", "new.txt", "h2", "MIT"),
	}

	plan := Plan(remote, previous)
	require.Equal(t, []string{"mit"}, plan.Retain)
	require.Len(t, plan.Fetch, 1)

	out := repo.MergeLicenses(previous, plan, fetched)

	require.Len(t, out, 1)
	assert.Equal(t, "mit.txt", out["mit"].Filename)
	assert.Equal(t, "h1", out["mit"].ContentHash)
}

func TestMerge_FetchedLaterListingBeatsRetained(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)
	previous := map[string]domain.Record{
		"mit": licenseRecord("mit", "mit.txt", "h1", "MIT"),
	}
	remote := []domain.RemoteEntry{entry("mit.txt", "h1"), entry("new.txt", "h2")}
	fetched := map[string]domain.Record{
		"new.txt": licenseRecord("", "new.txt", "h2", "MIT"),
	}

	out := repo.MergeLicenses(previous, Plan(remote, previous), fetched)

	require.Len(t, out, 1)
	assert.Equal(t, "new.txt", out["mit"].Filename)
}

func TestMerge_RetainedLaterListingBeatsRekeyed(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)
	previous := map[string]domain.Record{
		"old": licenseRecord("old", "a.txt", "ha", "MIT"),
		"mit": licenseRecord("mit", "mit.txt", "hm", "MIT"),
	}
	remote := []domain.RemoteEntry{entry("a.txt", "ha"), entry("mit.txt", "hm")}

	plan := Plan(remote, previous)
	require.Equal(t, []domain.Rekey{{OldKey: "old", NewKey: "mit"}}, plan.Rekey)
	require.Equal(t, []string{"mit"}, plan.Retain)

	out := repo.MergeLicenses(previous, plan, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "mit.txt", out["mit"].Filename)
}

func TestMerge_SameKeyWinnerIsStableAcrossPasses(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)
	previous := map[string]domain.Record{
		"mit": licenseRecord("mit", "mit.txt", "h1", "MIT"),
	}
	remote := []domain.RemoteEntry{entry("new.txt", "h2"), entry("mit.txt", "h1")}
	fetched := map[string]domain.Record{
		"new.txt": licenseRecord("", "new.txt", "h2", "MIT"),
	}

	first := repo.MergeLicenses(previous, Plan(remote, previous), fetched)
	second := repo.MergeLicenses(first, Plan(remote, first), fetched)

	assert.Equal(t, first, second)
	assert.Equal(t, "mit.txt", second["mit"].Filename)
}

func TestMerge_DataKeyedByFilename(t *testing.T) {
	repo := NewCacheRepository(memory.NewCacheStore(), nil)
	plan := domain.SyncPlan{
		Fetch: []domain.RemoteEntry{entry("rules.yml", "r")},
		Order: []string{"rules.yml"},
	}
	fetched := map[string]domain.Record{
		"rules.yml": {Data: map[string]any{"permissions": []any{}}, ContentHash: "r"},
	}

	out := repo.MergeData(nil, plan, fetched)

	require.Contains(t, out, "rules.yml")
	assert.Equal(t, domain.KindData, out["rules.yml"].Kind)
	assert.Equal(t, "rules.yml", out["rules.yml"].Filename)
}

func keysOf(m map[string]domain.Record) []string {
	return sortedKeys(m)
}

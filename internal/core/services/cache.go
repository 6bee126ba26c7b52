package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
	"github.com/custodia-labs/getlicense/internal/logger"
)

// Ensure CacheRepository implements the interface.
var _ driving.CacheService = (*CacheRepository)(nil)

// CacheRepository is the only writer of the persisted cache.
type CacheRepository struct {
	store driven.CacheStore
	log   *logger.Logger
}

// NewCacheRepository creates a repository over a cache store.
func NewCacheRepository(store driven.CacheStore, log *logger.Logger) *CacheRepository {
	return &CacheRepository{store: store, log: log}
}

// Load reads the persisted cache. A missing cache is a first run; an
// unreadable one is reported and also treated as a first run.
func (r *CacheRepository) Load(ctx context.Context) *domain.Cache {
	cache, err := r.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptCache) {
			r.log.Warn("Cache at %s is unreadable, starting fresh: %v", r.store.Path(), err)
		} else {
			r.log.Warn("Could not load cache from %s, starting fresh: %v", r.store.Path(), err)
		}
		return domain.NewCache()
	}
	if cache == nil {
		r.log.Debug("No cache at %s, starting fresh", r.store.Path())
		return domain.NewCache()
	}
	cache.Normalize()
	r.log.Debug("Loaded %d licenses, %d data files and %d preferences from %s",
		len(cache.Licenses), len(cache.Data), len(cache.Preferences), r.store.Path())
	return cache
}

// Save persists the cache. The caller's cache is left untouched on failure.
func (r *CacheRepository) Save(ctx context.Context, cache *domain.Cache) error {
	if err := r.store.Save(ctx, cache); err != nil {
		var perr *domain.PersistError
		if errors.As(err, &perr) {
			return err
		}
		return &domain.PersistError{Path: r.store.Path(), Err: err}
	}
	r.log.Debug("Cache saved to %s", r.store.Path())
	return nil
}

// Path describes where the cache is stored.
func (r *CacheRepository) Path() string {
	return r.store.Path()
}

// MergeLicenses applies a plan to the license namespace.
func (r *CacheRepository) MergeLicenses(
	previous map[string]domain.Record,
	plan domain.SyncPlan,
	fetched map[string]domain.Record,
) map[string]domain.Record {
	return mergeRecords(domain.KindLicense, previous, plan, fetched)
}

// MergeData applies a plan to the data namespace.
func (r *CacheRepository) MergeData(
	previous map[string]domain.Record,
	plan domain.SyncPlan,
	fetched map[string]domain.Record,
) map[string]domain.Record {
	return mergeRecords(domain.KindData, previous, plan, fetched)
}

// mergeRecords builds the next index of a collection. fetched is keyed by
// filename and holds only successful fetches; a fetch entry missing from
// it keeps the previous record for that filename, if any. Entries are
// applied in plan.Order, so of two files claiming one key the later listed
// wins whatever each file's decision was.
func mergeRecords(
	kind domain.RecordKind,
	previous map[string]domain.Record,
	plan domain.SyncPlan,
	fetched map[string]domain.Record,
) map[string]domain.Record {
	out := make(map[string]domain.Record, len(previous)+len(plan.Fetch))

	put := func(key string, rec domain.Record) {
		rec.Key, rec.Kind = key, kind
		out[key] = rec
	}

	retained := make(map[string]bool, len(plan.Retain))
	for _, key := range plan.Retain {
		retained[key] = true
	}
	rekeyed := make(map[string]string, len(plan.Rekey))
	for _, rk := range plan.Rekey {
		rekeyed[rk.OldKey] = rk.NewKey
	}
	toFetch := make(map[string]bool, len(plan.Fetch))
	for _, entry := range plan.Fetch {
		toFetch[entry.Name] = true
	}

	byFilename := previousByFilename(previous)
	for _, name := range plan.Order {
		prev, hasPrev := byFilename[name]

		if toFetch[name] {
			if rec, ok := fetched[name]; ok {
				rec.Filename, rec.Kind = name, kind
				if kind == domain.KindData {
					rec.Key = name
				}
				put(rec.DeclaredKey(), rec)
			} else if hasPrev {
				put(prev.Key, prev)
			}
			continue
		}

		if !hasPrev {
			continue
		}
		if newKey, ok := rekeyed[prev.Key]; ok {
			put(newKey, prev)
		} else if retained[prev.Key] {
			put(prev.Key, prev)
		}
	}
	return out
}

func previousByFilename(previous map[string]domain.Record) map[string]domain.Record {
	keys := sortedKeys(previous)

	out := make(map[string]domain.Record, len(previous))
	for _, key := range keys {
		rec := previous[key]
		rec.Key = key
		out[rec.Filename] = rec
	}
	return out
}

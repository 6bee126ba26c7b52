package services

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
	"github.com/custodia-labs/getlicense/internal/logger"
)

// Ensure Syncer implements the interface.
var _ driving.SyncService = (*Syncer)(nil)

// DefaultWorkers bounds parallel content fetches.
const DefaultWorkers = 4

// Syncer coordinates a sync pass: the data collection first, so license
// rules can be resolved, then the license collection.
type Syncer struct {
	source  driven.ContentSource
	repo    *CacheRepository
	parser  Parser
	config  domain.SourceConfig
	workers int
	log     *logger.Logger
}

// NewSyncer creates a syncer. Non-positive workers uses DefaultWorkers.
func NewSyncer(
	source driven.ContentSource,
	repo *CacheRepository,
	config domain.SourceConfig,
	workers int,
	log *logger.Logger,
) *Syncer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Syncer{
		source:  source,
		repo:    repo,
		parser:  Parser{Log: log},
		config:  config,
		workers: workers,
		log:     log,
	}
}

// collection describes one upstream directory.
type collection struct {
	name  string
	dir   string
	ext   string
	build func(entry domain.RemoteEntry, raw []byte) (domain.Record, error)
	merge func(previous map[string]domain.Record, plan domain.SyncPlan, fetched map[string]domain.Record) map[string]domain.Record
}

// Sync runs one pass and returns the resulting cache.
func (s *Syncer) Sync(ctx context.Context, cache *domain.Cache, opts driving.SyncOptions) (*domain.Cache, domain.SyncReport) {
	if cache == nil {
		cache = domain.NewCache()
	}
	next := cache.Clone()
	var report domain.SyncReport

	s.log.Section("Sync " + s.config.String())
	if opts.Refresh {
		s.log.Info("Refresh requested: refetching every listed file")
	}

	next.Data, report.Data = s.syncCollection(ctx, collection{
		name:  "data",
		dir:   s.config.DataDir,
		ext:   domain.DataExt,
		build: s.buildData,
		merge: s.repo.MergeData,
	}, cache.Data, opts)

	rules := DecodeRules(next.Data)
	if rules == nil {
		s.log.Debug("%s not available, rule labels fall back to tags", domain.RulesDataKey)
	}

	next.Licenses, report.Licenses = s.syncCollection(ctx, collection{
		name: "licenses",
		dir:  s.config.LicensesDir,
		ext:  domain.LicenseExt,
		build: func(entry domain.RemoteEntry, raw []byte) (domain.Record, error) {
			return s.buildLicense(entry, raw, rules)
		},
		merge: s.repo.MergeLicenses,
	}, cache.Licenses, opts)

	if rules != nil {
		applyRules(next.Licenses, rules)
	}

	report.Changed = !reflect.DeepEqual(cache.Data, next.Data) ||
		!reflect.DeepEqual(cache.Licenses, next.Licenses)

	s.log.Info("Sync finished: %d licenses, %d data files (changed: %t)",
		len(next.Licenses), len(next.Data), report.Changed)
	return next, report
}

func (s *Syncer) syncCollection(
	ctx context.Context,
	c collection,
	previous map[string]domain.Record,
	opts driving.SyncOptions,
) (map[string]domain.Record, domain.CollectionReport) {
	report := domain.CollectionReport{Name: c.name}

	entries, err := s.source.ListDirectory(ctx, c.dir)
	if err != nil {
		s.log.Warn("Could not list %s: %v. Using cached %s.", c.dir, err, c.name)
		report.Stale = true
		return copyRecords(previous), report
	}
	entries = domain.FilterEntries(entries, c.ext)
	report.Listed = len(entries)

	plan := Plan(entries, previous)
	if opts.Refresh {
		plan = domain.SyncPlan{
			Retain: []string{},
			Fetch:  Plan(entries, nil).Fetch,
			Delete: plan.Delete,
			Rekey:  []domain.Rekey{},
			Order:  plan.Order,
		}
	}
	s.log.Debug("%s plan: %d retain, %d fetch, %d delete, %d rekey",
		c.name, len(plan.Retain), len(plan.Fetch), len(plan.Delete), len(plan.Rekey))

	fetched := s.fetchAll(ctx, c, plan.Fetch, opts.Progress)

	report.Retained = len(plan.Retain)
	report.Fetched = len(fetched)
	report.Failed = len(plan.Fetch) - len(fetched)
	report.Deleted = len(plan.Delete)
	report.Rekeyed = len(plan.Rekey)

	return c.merge(previous, plan, fetched), report
}

// fetchAll fetches and parses entries with bounded parallelism. Results
// are keyed by filename; failures are logged and left out. Once ctx is
// done no new fetches start.
func (s *Syncer) fetchAll(
	ctx context.Context,
	c collection,
	entries []domain.RemoteEntry,
	progress driving.ProgressFunc,
) map[string]domain.Record {
	results := make(map[string]domain.Record, len(entries))
	if len(entries) == 0 {
		return results
	}

	var (
		mu   sync.Mutex
		done int
	)
	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for _, entry := range entries {
		if ctx.Err() != nil {
			s.log.Warn("Sync of %s cancelled: %v", c.name, ctx.Err())
			break
		}
		g.Go(func() error {
			rec, err := s.fetchOne(ctx, c, entry)

			mu.Lock()
			defer mu.Unlock()
			done++
			if err != nil {
				s.log.Warn("Skipping %s: %v", entry.Name, err)
			} else {
				results[entry.Name] = rec
				s.log.Debug("Fetched %s", entry.Name)
			}
			if progress != nil {
				progress(c.name, done, len(entries))
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Syncer) fetchOne(ctx context.Context, c collection, entry domain.RemoteEntry) (domain.Record, error) {
	raw, err := s.source.FetchContent(ctx, entry.FetchRef)
	if err != nil {
		if !errors.Is(err, domain.ErrTransientFetch) {
			err = &domain.FetchError{Op: "fetch", Target: entry.Name, Err: err}
		}
		return domain.Record{}, err
	}
	return c.build(entry, raw)
}

func (s *Syncer) buildLicense(entry domain.RemoteEntry, raw []byte, rules *domain.RulesData) (domain.Record, error) {
	doc, err := s.parser.ParseLicense(entry.Name, string(raw))
	if err != nil {
		return domain.Record{}, err
	}
	meta := doc.Metadata
	body := doc.Body
	return domain.Record{
		Kind:         domain.KindLicense,
		Key:          doc.Key(),
		Filename:     entry.Name,
		ContentHash:  entry.ContentHash,
		Metadata:     &meta,
		Body:         &body,
		Placeholders: FindPlaceholders(body),
		Rules:        BuildRules(meta, rules),
	}, nil
}

func (s *Syncer) buildData(entry domain.RemoteEntry, raw []byte) (domain.Record, error) {
	value, err := ParseDataFile(entry.Name, string(raw))
	if err != nil {
		return domain.Record{}, err
	}
	return domain.Record{
		Kind:        domain.KindData,
		Key:         entry.Name,
		Filename:    entry.Name,
		ContentHash: entry.ContentHash,
		Data:        value,
	}, nil
}

// applyRules resolves rule labels of every license against current rules.
func applyRules(licenses map[string]domain.Record, rules *domain.RulesData) {
	for key, rec := range licenses {
		if rec.Metadata == nil {
			continue
		}
		rec.Rules = BuildRules(*rec.Metadata, rules)
		licenses[key] = rec
	}
}

func copyRecords(in map[string]domain.Record) map[string]domain.Record {
	out := make(map[string]domain.Record, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

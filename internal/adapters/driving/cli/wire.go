package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/getlicense/internal/adapters/driven/auth"
	"github.com/custodia-labs/getlicense/internal/adapters/driven/config/file"
	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/getlicense/internal/config"
	"github.com/custodia-labs/getlicense/internal/connectors/filesystem"
	"github.com/custodia-labs/getlicense/internal/connectors/github"
	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
	"github.com/custodia-labs/getlicense/internal/core/services"
	"github.com/custodia-labs/getlicense/internal/logger"
)

// newServices wires the application from the config directory and flags.
func newServices(opts Options, stderr io.Writer) (*Services, error) {
	log := logger.New(stderr, opts.Verbose)

	dir := opts.ConfigDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := config.Load(store)
	if err != nil {
		return nil, err
	}
	if opts.CacheFile != "" {
		cfg.Cache.Path = opts.CacheFile
	}
	log.Debug("Config loaded from %s", store.Path())

	cacheStore, closeStore, err := openCacheStore(cfg, dir)
	if err != nil {
		return nil, err
	}
	repo := services.NewCacheRepository(cacheStore, log)

	source, watch, err := openSource(cfg.Source)
	if err != nil {
		closeStore() //nolint:errcheck
		return nil, err
	}

	aliases := services.DefaultAliasTable().With(cfg.Aliases)
	catalog := services.NewCatalog(aliases)

	return &Services{
		Sync:        services.NewSyncer(source, repo, cfg.Source, cfg.Sync.Workers, log),
		Cache:       repo,
		Licenses:    catalog,
		Fill:        services.NewFillService(catalog, services.NewResolver(aliases), nil, log),
		Preferences: services.NewPreferenceService(),
		Log:         log,
		Offline:     cfg.Sync.Offline,
		Watch:       watch,
		Close:       closeStore,
	}, nil
}

func openCacheStore(cfg config.Config, configDir string) (driven.CacheStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Cache.Backend {
	case config.BackendMemory:
		return memory.NewCacheStore(), noop, nil
	case config.BackendSQLite:
		store, err := sqlite.NewStore(cfg.CachePath(configDir))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return store, store.Close, nil
	default:
		store, err := jsonfile.NewStore(cfg.CachePath(configDir))
		if err != nil {
			return nil, nil, fmt.Errorf("open json cache: %w", err)
		}
		return store, noop, nil
	}
}

type watchFunc = func(ctx context.Context, onChange func(path string)) error

func openSource(cfg domain.SourceConfig) (driven.ContentSource, watchFunc, error) {
	if cfg.Type == domain.SourceTypeFilesystem {
		src := filesystem.NewSource(cfg.Path)
		watch := func(ctx context.Context, onChange func(path string)) error {
			return src.Watch(ctx, []string{cfg.DataDir, cfg.LicensesDir}, onChange)
		}
		return src, watch, nil
	}

	ghConfig, err := github.ParseConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	client := github.NewClient(auth.ForSource(cfg.Type))
	return github.NewSource(client, ghConfig), nil, nil
}

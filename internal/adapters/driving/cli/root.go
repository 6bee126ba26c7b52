// Package cli implements the getlicense command line.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
	"github.com/custodia-labs/getlicense/internal/logger"
)

// Options holds the global flags.
type Options struct {
	// Refresh refetches every listed file, ignoring content hashes.
	Refresh bool
	// Offline skips the sync pass and uses the cache verbatim.
	Offline bool
	Verbose bool
	// CacheFile overrides cache.path from the config file.
	CacheFile string
	// ConfigDir overrides the default ~/.getlicense directory.
	ConfigDir string
}

// Services are the driving ports commands run against.
type Services struct {
	Sync        driving.SyncService
	Cache       driving.CacheService
	Licenses    driving.LicenseService
	Fill        driving.FillService
	Preferences driving.PreferenceService
	Log         *logger.Logger

	// Offline is set by sync.offline in the config file.
	Offline bool

	// Watch blocks reporting changed upstream paths until ctx is done.
	// It is nil when the configured source cannot be watched.
	Watch func(ctx context.Context, onChange func(path string)) error

	// Close releases the cache store. Optional.
	Close func() error
}

// Bootstrap builds Services from the global flags.
type Bootstrap func(opts Options, stderr io.Writer) (*Services, error)

var (
	version = "dev"

	opts      Options
	bootstrap Bootstrap = newServices
	svc       *Services
)

// annotationNoServices marks commands that run without the cache.
const annotationNoServices = "getlicense/no-services"

var rootCmd = &cobra.Command{
	Use:   "getlicense",
	Short: "Fetch, inspect and fill open source license templates",
	Long: `getlicense keeps a local copy of the choosealicense.com license collection,
lets you inspect and compare licenses, and writes a LICENSE file with your
name, project and year filled in.

Most commands sync the local cache with the upstream repository first;
only changed files are downloaded. Use --offline to work from the cache.

Examples:
  getlicense list
  getlicense info mit
  getlicense find --require commercial-use --disallow disclose-source
  getlicense license mit --fullname "Jane Doe"`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.Refresh, "refresh", false, "refetch every license and data file (saved placeholders are kept)")
	flags.BoolVar(&opts.Offline, "offline", false, "skip the sync and use the cached licenses as they are")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug and progress information")
	flags.StringVar(&opts.CacheFile, "cache-file", "", "cache file path (default from config, ~/.getlicense/license_cache.json)")
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.getlicense)")
}

// SetBootstrap replaces the function that builds Services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and releases the services it opened.
func Execute(ctx context.Context) error {
	defer teardown()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	if !needsServices(cmd) || svc != nil {
		return nil
	}
	if bootstrap == nil {
		return errors.New("application not configured")
	}
	s, err := bootstrap(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	svc = s
	return nil
}

func teardown() {
	if svc == nil || svc.Close == nil {
		return
	}
	if err := svc.Close(); err != nil {
		svc.Log.Warn("Could not close cache store: %v", err)
	}
}

func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoServices] == "true" {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// offline reports whether the sync pass is skipped.
func offline() bool {
	return opts.Offline || svc.Offline
}

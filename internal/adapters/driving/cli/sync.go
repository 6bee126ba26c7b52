package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// watchDebounce collapses bursts of file events into one sync pass.
const watchDebounce = 500 * time.Millisecond

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise the license cache with upstream",
	Long: `Bring the local cache in line with the upstream license collection.
Only files whose content changed are downloaded; --refresh downloads all.

With --watch on a filesystem source, the cache is synced again whenever a
file in the license or data directory changes.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().Bool("watch", false, "keep running and resync when the source changes")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}
	if watch && svc.Watch == nil {
		return errors.New("--watch needs a filesystem source")
	}

	sess := openSession(cmd, false)
	if err := syncOnce(cmd, sess); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	changes := make(chan string, 1)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- svc.Watch(cmd.Context(), func(path string) {
			select {
			case changes <- path:
			default:
			}
		})
	}()

	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes (Ctrl+C to stop)...")
	var debounce <-chan time.Time
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case err := <-watchErr:
			return err
		case path := <-changes:
			svc.Log.Debug("Change detected: %s", path)
			debounce = time.After(watchDebounce)
		case <-debounce:
			debounce = nil
			if err := syncOnce(cmd, sess); err != nil {
				return err
			}
		}
	}
}

// syncOnce runs a sync pass, reports it and saves the cache.
func syncOnce(cmd *cobra.Command, sess *session) error {
	report := sess.sync()
	w := cmd.OutOrStdout()
	printCollectionReport(w, "Data files", report.Data)
	printCollectionReport(w, "Licenses", report.Licenses)

	if !report.Changed {
		fmt.Fprintln(w, "Cache already up to date.")
		return nil
	}
	if err := sess.write(); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	fmt.Fprintf(w, "Cache updated: %s\n", svc.Cache.Path())
	return nil
}

func printCollectionReport(w io.Writer, label string, r domain.CollectionReport) {
	fmt.Fprintf(w, "%-11s listed %d, unchanged %d, fetched %d, failed %d, deleted %d, renamed %d\n",
		label+":", r.Listed, r.Retained, r.Fetched, r.Failed, r.Deleted, r.Rekeyed)
	if r.Stale {
		fmt.Fprintf(w, "  %s\n", st.Condition.Render("Listing failed; kept the cached entries."))
	}
}

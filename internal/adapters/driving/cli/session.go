package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
)

// session is one command's view of the cache.
type session struct {
	cmd   *cobra.Command
	cache *domain.Cache
	// dirty is set when the cache must be saved.
	dirty bool
}

// openSession loads the cache and, unless offline, syncs it.
func openSession(cmd *cobra.Command, withSync bool) *session {
	s := &session{cmd: cmd, cache: svc.Cache.Load(cmd.Context())}
	if withSync && !offline() {
		s.sync()
	} else if withSync {
		svc.Log.Debug("Offline: using cached licenses")
	}
	return s
}

// sync runs one sync pass over the session cache.
func (s *session) sync() domain.SyncReport {
	bar := newProgressBar(s.cmd.ErrOrStderr())
	next, report := svc.Sync.Sync(s.cmd.Context(), s.cache, driving.SyncOptions{
		Refresh:  opts.Refresh,
		Progress: bar.Update,
	})
	bar.Done()

	s.cache = next
	if report.Changed {
		s.dirty = true
	}
	return report
}

// persist saves the cache when it changed. A failure is only a warning
// because the command's action has already succeeded.
func (s *session) persist() {
	if err := s.write(); err != nil {
		svc.Log.Warn("Could not save cache: %v", err)
	}
}

// commit saves the cache when it changed and reports any failure.
func (s *session) commit() error {
	if err := s.write(); err != nil {
		return fmt.Errorf("save placeholders: %w", err)
	}
	return nil
}

func (s *session) write() error {
	if !s.dirty {
		svc.Log.Debug("Cache unchanged, nothing to save")
		return nil
	}
	if err := svc.Cache.Save(s.cmd.Context(), s.cache); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

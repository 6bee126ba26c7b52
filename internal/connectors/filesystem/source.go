package filesystem

import (
	"context"
	"crypto/sha1" //nolint:gosec // git object ids are SHA-1
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Source reads the collection from a local checkout of the upstream
// repository.
type Source struct {
	rootPath string
}

// NewSource creates a source rooted at rootPath.
func NewSource(rootPath string) *Source {
	return &Source{rootPath: rootPath}
}

// RootPath returns the checkout root.
func (s *Source) RootPath() string {
	return s.rootPath
}

// ListDirectory lists a directory below the root. File hashes are git
// blob ids, so they match what GitHub reports for the same content.
func (s *Source) ListDirectory(ctx context.Context, path string) ([]domain.RemoteEntry, error) {
	dir, err := s.resolve(path)
	if err != nil {
		return nil, &domain.FetchError{Op: "list", Target: path, Err: err}
	}
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.FetchError{Op: "list", Target: path, Err: err}
	}

	entries := make([]domain.RemoteEntry, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, &domain.FetchError{Op: "list", Target: path, Err: err}
		}

		ref := filepath.ToSlash(filepath.Join(path, item.Name()))
		if item.IsDir() {
			entries = append(entries, domain.RemoteEntry{Name: item.Name(), Type: domain.EntryTypeDir, FetchRef: ref})
			continue
		}
		if !item.Type().IsRegular() {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, item.Name()))
		if err != nil {
			// Listed without a hash: the planner treats it as changed and
			// the fetch reports the error.
			entries = append(entries, domain.RemoteEntry{Name: item.Name(), Type: domain.EntryTypeFile, FetchRef: ref})
			continue
		}
		entries = append(entries, domain.RemoteEntry{
			Name:        item.Name(),
			Type:        domain.EntryTypeFile,
			ContentHash: BlobHash(raw),
			FetchRef:    ref,
		})
	}
	return entries, nil
}

// FetchContent reads a file named by a ref from ListDirectory.
func (s *Source) FetchContent(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.FetchError{Op: "fetch", Target: ref, Err: err}
	}
	path, err := s.resolve(ref)
	if err != nil {
		return nil, &domain.FetchError{Op: "fetch", Target: ref, Err: err}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.FetchError{Op: "fetch", Target: ref, Err: err}
	}
	return raw, nil
}

// Watch calls onChange with the path of every file created, written,
// removed or renamed in dirs until ctx is done.
func (s *Source) Watch(ctx context.Context, dirs []string, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, d := range dirs {
		dir, err := s.resolve(d)
		if err != nil {
			return err
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&relevant != 0 {
				onChange(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

// resolve joins a slash-separated path below the root, rejecting paths
// that escape it.
func (s *Source) resolve(rel string) (string, error) {
	native := filepath.FromSlash(rel)
	if native == "" {
		native = "."
	}
	if !filepath.IsLocal(native) {
		return "", fmt.Errorf("%w: path %q is outside the source root", domain.ErrInvalidInput, rel)
	}
	return filepath.Join(s.rootPath, native), nil
}

// BlobHash returns the git blob object id of content.
func BlobHash(content []byte) string {
	h := sha1.New() //nolint:gosec // git object ids are SHA-1
	h.Write([]byte("blob " + strconv.Itoa(len(content)) + "\x00"))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

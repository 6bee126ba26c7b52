package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// blobRefPrefix marks a fetch ref that names a blob SHA rather than a URL.
const blobRefPrefix = "blob:"

// Source reads the upstream collection through the GitHub contents API.
type Source struct {
	client *Client
	config *Config
}

// NewSource creates a content source for one repository.
func NewSource(client *Client, config *Config) *Source {
	return &Source{client: client, config: config}
}

// ListDirectory lists a directory of the configured repository. Entry
// hashes are git blob SHAs.
func (s *Source) ListDirectory(ctx context.Context, path string) ([]domain.RemoteEntry, error) {
	contents, err := s.client.ListDirectory(ctx, s.config.Owner, s.config.Repo, path, s.config.Ref)
	if err != nil {
		return nil, s.fetchError("list", path, err)
	}

	entries := make([]domain.RemoteEntry, 0, len(contents))
	for _, c := range contents {
		ref := c.GetDownloadURL()
		if ref == "" && c.GetSHA() != "" {
			ref = blobRefPrefix + c.GetSHA()
		}
		entries = append(entries, domain.RemoteEntry{
			Name:        c.GetName(),
			Type:        c.GetType(),
			ContentHash: c.GetSHA(),
			FetchRef:    ref,
		})
	}
	return entries, nil
}

// FetchContent fetches the bytes behind a ref produced by ListDirectory.
func (s *Source) FetchContent(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, &domain.FetchError{Op: "fetch", Target: ref, Err: fmt.Errorf("empty fetch ref")}
	}

	var (
		raw []byte
		err error
	)
	if sha, ok := strings.CutPrefix(ref, blobRefPrefix); ok {
		raw, err = s.client.GetBlob(ctx, s.config.Owner, s.config.Repo, sha)
	} else {
		raw, err = s.client.Download(ctx, ref)
	}
	if err != nil {
		return nil, s.fetchError("fetch", ref, err)
	}
	return raw, nil
}

func (s *Source) fetchError(op, target string, err error) error {
	switch {
	case IsNotFound(err):
		err = fmt.Errorf("%w (not found in %s)", err, s.config)
	case IsUnauthorized(err):
		err = fmt.Errorf("%w (check GITHUB_TOKEN)", err)
	}
	return &domain.FetchError{Op: op, Target: target, Err: err}
}

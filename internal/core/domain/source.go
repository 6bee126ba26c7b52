package domain

import (
	"fmt"
	"strings"
)

// Upstream defaults: the choosealicense.com repository.
const (
	DefaultOwner       = "github"
	DefaultRepo        = "choosealicense.com"
	DefaultBranch      = "gh-pages"
	DefaultLicensesDir = "_licenses"
	DefaultDataDir     = "_data"
)

// Collection file extensions.
const (
	LicenseExt = ".txt"
	DataExt    = ".yml"
)

// SourceConfig describes where the upstream collection lives.
type SourceConfig struct {
	Type SourceType

	// Owner, Repo and Branch address a GitHub repository.
	Owner  string
	Repo   string
	Branch string

	// Path is the root of a local checkout for filesystem sources.
	Path string

	LicensesDir string
	DataDir     string
}

// DefaultSourceConfig returns the upstream choosealicense.com source.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		Type:        SourceTypeGitHub,
		Owner:       DefaultOwner,
		Repo:        DefaultRepo,
		Branch:      DefaultBranch,
		LicensesDir: DefaultLicensesDir,
		DataDir:     DefaultDataDir,
	}
}

// Validate checks the fields required by the source type.
func (c SourceConfig) Validate() error {
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown source type %q", ErrInvalidInput, c.Type)
	}
	if strings.TrimSpace(c.LicensesDir) == "" || strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: collection directories must be set", ErrInvalidInput)
	}
	switch c.Type {
	case SourceTypeGitHub:
		if c.Owner == "" || c.Repo == "" {
			return fmt.Errorf("%w: github source requires owner and repo", ErrInvalidInput)
		}
	case SourceTypeFilesystem:
		if c.Path == "" {
			return fmt.Errorf("%w: filesystem source requires a path", ErrInvalidInput)
		}
	}
	return nil
}

// String returns a short description of the source location.
func (c SourceConfig) String() string {
	if c.Type == SourceTypeFilesystem {
		return "file://" + c.Path
	}
	return fmt.Sprintf("github.com/%s/%s@%s", c.Owner, c.Repo, c.Branch)
}

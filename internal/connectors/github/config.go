package github

import (
	"strings"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// Config addresses the upstream repository.
type Config struct {
	Owner string
	Repo  string

	// Ref is a branch, tag or commit. Empty uses the default branch.
	Ref string
}

// ParseConfig extracts the repository address from a source config.
func ParseConfig(source domain.SourceConfig) (*Config, error) {
	cfg := &Config{
		Owner: strings.TrimSpace(source.Owner),
		Repo:  strings.TrimSpace(source.Repo),
		Ref:   strings.TrimSpace(source.Branch),
	}
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, ErrRepoNotConfigured
	}
	return cfg, nil
}

// String returns owner/repo@ref.
func (c *Config) String() string {
	s := c.Owner + "/" + c.Repo
	if c.Ref != "" {
		s += "@" + c.Ref
	}
	return s
}

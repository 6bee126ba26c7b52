package auth

import (
	"context"
	"os"
	"strings"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
)

// Ensure EnvTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvTokenProvider)(nil)

// TokenEnvVars are consulted in order for a GitHub token.
var TokenEnvVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// EnvTokenProvider reads a Personal Access Token from the environment.
// Without one, GitHub requests are unauthenticated.
type EnvTokenProvider struct {
	lookup func(string) (string, bool)
}

// NewEnvTokenProvider creates a provider over the process environment.
func NewEnvTokenProvider() *EnvTokenProvider {
	return &EnvTokenProvider{lookup: os.LookupEnv}
}

// NewEnvTokenProviderWith creates a provider over a custom lookup.
func NewEnvTokenProviderWith(lookup func(string) (string, bool)) *EnvTokenProvider {
	return &EnvTokenProvider{lookup: lookup}
}

// GetToken returns the first non-empty token variable, or "".
func (p *EnvTokenProvider) GetToken(_ context.Context) (string, error) {
	return p.token(), nil
}

// AuthMethod returns AuthMethodPAT when a token is set.
func (p *EnvTokenProvider) AuthMethod() domain.AuthMethod {
	if p.token() == "" {
		return domain.AuthMethodNone
	}
	return domain.AuthMethodPAT
}

// IsAuthenticated reports whether a token is set.
func (p *EnvTokenProvider) IsAuthenticated() bool {
	return p.token() != ""
}

func (p *EnvTokenProvider) token() string {
	for _, name := range TokenEnvVars {
		if v, ok := p.lookup(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ForSource returns the token provider suited to a source type.
func ForSource(t domain.SourceType) driven.TokenProvider {
	if t == domain.SourceTypeGitHub {
		return NewEnvTokenProvider()
	}
	return NewNullTokenProvider()
}

package auth

import (
	"context"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driven"
)

// Ensure NullTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullTokenProvider)(nil)

// NullTokenProvider is for sources that need no authentication, such as a
// local checkout.
type NullTokenProvider struct{}

// NewNullTokenProvider creates a token provider that never has a token.
func NewNullTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{}
}

// GetToken returns an empty string.
func (p *NullTokenProvider) GetToken(_ context.Context) (string, error) {
	return "", nil
}

// AuthMethod returns AuthMethodNone.
func (p *NullTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodNone
}

// IsAuthenticated returns false.
func (p *NullTokenProvider) IsAuthenticated() bool {
	return false
}

package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/getlicense/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("missing ports returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCacheService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports, _ := testPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil cache service returns error", func(t *testing.T) {
		ports := &Ports{Licenses: services.NewCatalog(nil)}
		assert.ErrorIs(t, ports.Validate(), ErrMissingCacheService)
	})

	t.Run("nil license service returns error", func(t *testing.T) {
		ports := &Ports{Cache: &mockCacheService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingLicenseService)
	})

	t.Run("fill service is optional", func(t *testing.T) {
		ports := &Ports{Cache: &mockCacheService{}, Licenses: services.NewCatalog(nil)}
		assert.NoError(t, ports.Validate())
	})
}

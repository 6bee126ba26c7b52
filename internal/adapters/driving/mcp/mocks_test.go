package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/services"
	"github.com/custodia-labs/getlicense/internal/logger"
)

// mockCacheService is a mock implementation of driving.CacheService.
type mockCacheService struct {
	cache *domain.Cache
	saves int
}

func (m *mockCacheService) Load(_ context.Context) *domain.Cache {
	if m.cache == nil {
		return domain.NewCache()
	}
	return m.cache.Clone()
}

func (m *mockCacheService) Save(_ context.Context, _ *domain.Cache) error {
	m.saves++
	return nil
}

func (m *mockCacheService) Path() string {
	return "memory"
}

func testLicense(id, title, body string, perms ...string) domain.Record {
	meta := domain.LicenseMetadata{
		SPDXID:      id,
		Title:       title,
		Nickname:    title + " nickname",
		Permissions: perms,
	}.WithDefaults(id)
	return domain.Record{
		Kind:         domain.KindLicense,
		Key:          domain.CanonicalKey(id),
		Filename:     domain.CanonicalKey(id) + ".txt",
		Metadata:     &meta,
		Body:         &body,
		Placeholders: services.FindPlaceholders(body),
	}
}

func testCache() *domain.Cache {
	cache := domain.NewCache()
	for _, rec := range []domain.Record{
		testLicense("MIT", "MIT License", "MIT License\n\nCopyright (c) [year] [fullname]", "commercial-use"),
		testLicense("Apache-2.0", "Apache License 2.0", "Copyright [yyyy] [name of copyright owner]", "commercial-use", "patent-use"),
	} {
		cache.Licenses[rec.Key] = rec
	}
	cache.Data[domain.RulesDataKey] = domain.Record{
		Kind:     domain.KindData,
		Key:      domain.RulesDataKey,
		Filename: domain.RulesDataKey,
		Data: map[string]any{
			"permissions": []any{
				map[string]any{"tag": "commercial-use", "label": "Commercial use", "description": "Commercial use allowed."},
				map[string]any{"tag": "patent-use", "label": "Patent use", "description": "Patent grant."},
			},
			"conditions":  []any{},
			"limitations": []any{},
		},
	}
	cache.Preferences[domain.PlaceholderFullName] = "Saved Owner"
	return cache
}

func testPorts() (*Ports, *mockCacheService) {
	cacheSvc := &mockCacheService{cache: testCache()}
	catalog := services.NewCatalog(nil)
	now := func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }
	return &Ports{
		Cache:    cacheSvc,
		Licenses: catalog,
		Fill:     services.NewFillService(catalog, services.NewResolver(nil), now, logger.Discard()),
	}, cacheSvc
}

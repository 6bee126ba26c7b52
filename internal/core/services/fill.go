package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/ports/driving"
	"github.com/custodia-labs/getlicense/internal/logger"
)

// Ensure FillService implements the interface.
var _ driving.FillService = (*FillService)(nil)

// DefaultOutputPath is where a filled license is written.
const DefaultOutputPath = "LICENSE"

// FillService resolves license templates and writes filled files.
type FillService struct {
	catalog  *Catalog
	resolver *Resolver
	now      func() time.Time
	log      *logger.Logger
}

// NewFillService creates a fill service. A nil clock uses time.Now.
func NewFillService(catalog *Catalog, resolver *Resolver, now func() time.Time, log *logger.Logger) *FillService {
	if now == nil {
		now = time.Now
	}
	return &FillService{catalog: catalog, resolver: resolver, now: now, log: log}
}

// Fill resolves a license against explicit values and saved preferences,
// writes the filled body followed by a newline, then saves every explicit
// cacheable value as a preference.
func (s *FillService) Fill(ctx context.Context, cache *domain.Cache, req driving.FillRequest) (*driving.FillResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := s.Preview(cache, req.LicenseID, req.Explicit)
	if err != nil {
		return nil, err
	}

	path := req.OutputPath
	if path == "" {
		path = DefaultOutputPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(result.Resolution.FilledBody+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("write license: %w", err)
	}
	result.OutputPath = path
	s.log.Info("Wrote %s to %s", result.License.Title(), path)

	if cache.Preferences == nil {
		cache.Preferences = make(map[string]string)
	}
	result.SavedPreferences = make(map[string]string)
	for key, value := range req.Explicit {
		if !domain.IsCacheablePlaceholder(key) {
			continue
		}
		result.SavedPreferences[key] = value
		if current, ok := cache.Preferences[key]; !ok || current != value {
			result.PreferencesChanged = true
		}
		cache.Preferences[key] = value
	}
	if result.PreferencesChanged {
		s.log.Debug("Updated saved placeholder preferences")
	}
	return result, nil
}

// Preview resolves a license without side effects.
func (s *FillService) Preview(cache *domain.Cache, id string, explicit map[string]string) (*driving.FillResult, error) {
	rec, err := s.catalog.Get(cache, id)
	if err != nil {
		return nil, err
	}
	body := ""
	if rec.Body != nil {
		body = *rec.Body
	}
	resolution := s.resolver.Resolve(body, explicit, cache.Preferences, s.now)
	return &driving.FillResult{License: rec, Resolution: resolution}, nil
}

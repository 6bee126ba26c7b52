package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSourceConfig(t *testing.T) {
	cfg := DefaultSourceConfig()

	assert.Equal(t, SourceTypeGitHub, cfg.Type)
	assert.Equal(t, "github", cfg.Owner)
	assert.Equal(t, "choosealicense.com", cfg.Repo)
	assert.Equal(t, "gh-pages", cfg.Branch)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "github.com/github/choosealicense.com@gh-pages", cfg.String())
}

func TestSourceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SourceConfig)
		wantErr bool
	}{
		{"default", func(*SourceConfig) {}, false},
		{"unknown type", func(c *SourceConfig) { c.Type = "gitlab" }, true},
		{"missing owner", func(c *SourceConfig) { c.Owner = "" }, true},
		{"missing licenses dir", func(c *SourceConfig) { c.LicensesDir = " " }, true},
		{"filesystem without path", func(c *SourceConfig) { c.Type = SourceTypeFilesystem }, true},
		{"filesystem with path", func(c *SourceConfig) {
			c.Type = SourceTypeFilesystem
			c.Path = "/srv/choosealicense"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSourceConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilterEntries(t *testing.T) {
	entries := []RemoteEntry{
		{Name: "mit.txt", Type: EntryTypeFile},
		{Name: "README.md", Type: EntryTypeFile},
		{Name: "nested.txt", Type: EntryTypeDir},
		{Name: "apache-2.0.txt", Type: EntryTypeFile},
	}

	got := FilterEntries(entries, LicenseExt)

	assert.Len(t, got, 2)
	assert.Equal(t, "mit.txt", got[0].Name)
	assert.Equal(t, "apache-2.0.txt", got[1].Name)
}

package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

func TestInfoCmd(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "info", "MIT")

	require.NoError(t, err)
	assert.Contains(t, stdout, "--- MIT License (MIT) ---")
	assert.Contains(t, stdout, "Nickname: Expat")
	assert.Contains(t, stdout, "Create a text file named LICENSE")
	assert.Contains(t, stdout, "  - Commercial use (commercial-use)")
	assert.Contains(t, stdout, "Notable Projects Using This License:")
	assert.Contains(t, stdout, "  - Babel: https://github.com/babel/babel/blob/master/LICENSE")
	assert.Contains(t, stdout, "Placeholders in Body:")
	assert.Contains(t, stdout, "[fullname]")
	assert.Contains(t, stdout, "Argument: --fullname")
}

func TestInfoCmd_NoPlaceholders(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "info", "unlicense")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Placeholders in Body: (None detected)")
}

func TestInfoCmd_UnknownLicense(t *testing.T) {
	newTestEnv(t)

	_, _, err := execute(t, "info", "nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestShowPlaceholdersCmd(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "show-placeholders", "apache-2.0")

	require.NoError(t, err)
	assert.Contains(t, stdout, "--- Placeholders for Apache License 2.0 (Apache-2.0) ---")
	assert.Contains(t, stdout, "[name of copyright owner]")
	assert.Contains(t, stdout, "Argument: --fullname")
	assert.Contains(t, stdout, "[yyyy]")
	assert.Contains(t, stdout, "--year (defaults to current year)")
}

func TestShowPlaceholdersCmd_None(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "show-placeholders", "gpl-3.0")

	require.NoError(t, err)
	assert.Contains(t, stdout, "(No standard [placeholder] patterns found)")
}

func TestCompareCmd(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "compare", "mit", "gpl-3.0")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Comparing: MIT, GPL-3.0")
	assert.Contains(t, stdout, "Key Rule Indicators:")
	assert.Contains(t, stdout, "SPDX ID")
	assert.Contains(t, stdout, "GPL-3.0")
	assert.Contains(t, stdout, "✓")
	assert.Contains(t, stdout, "✗")
}

func TestFindCmd(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "find", "--require", "commercial-use", "--disallow", "disclose-source")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 3 matching license(s):")
	assert.Contains(t, stdout, "  - MIT (MIT License)")
	assert.NotContains(t, stdout, "GPL-3.0")
}

func TestFindCmd_NoMatches(t *testing.T) {
	newTestEnv(t)

	stdout, _, err := execute(t, "find", "--require", "patent-use", "--require", "disclose-source")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No licenses found matching all criteria.")
}

func TestFindCmd_NoCriteria(t *testing.T) {
	newTestEnv(t)

	_, _, err := execute(t, "find")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

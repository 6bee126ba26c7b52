package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/getlicense/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/getlicense/internal/connectors/filesystem"
	"github.com/custodia-labs/getlicense/internal/core/domain"
	"github.com/custodia-labs/getlicense/internal/core/services"
	"github.com/custodia-labs/getlicense/internal/logger"
)

const testRules = `permissions:
- tag: commercial-use
  label: Commercial use
  description: The licensed material may be used for commercial purposes.
- tag: patent-use
  label: Patent use
  description: This license provides an express grant of patent rights.
conditions:
- tag: include-copyright
  label: License and copyright notice
  description: A copy of the license and copyright notice must be included.
- tag: disclose-source
  label: Disclose source
  description: Source code must be made available when distributing.
limitations:
- tag: liability
  label: Liability
  description: This license includes a limitation of liability.
`

const testFields = `- name: fullname
  description: The full name or username of the repository owner
- name: year
  description: The current year
- name: project
  description: The repository name
`

const testMIT = `---
title: MIT License
spdx-id: MIT
nickname: Expat
description: A short and simple permissive license.
how: Create a text file named LICENSE in the root of your source code.
using:
  Babel: https://github.com/babel/babel/blob/master/LICENSE
permissions:
  - commercial-use
conditions:
  - include-copyright
limitations:
  - liability
---

MIT License

Copyright (c) [year] [fullname]
`

const testApache = `---
title: Apache License 2.0
spdx-id: Apache-2.0
description: A permissive license that also provides an express grant of patent rights.
permissions:
  - commercial-use
  - patent-use
conditions:
  - include-copyright
limitations:
  - liability
---

Copyright [yyyy] [name of copyright owner]
`

const testGPL = `---
title: GNU General Public License v3.0
spdx-id: GPL-3.0
permissions:
  - commercial-use
conditions:
  - include-copyright
  - disclose-source
limitations:
  - liability
---

This program is free software.
`

const testUnlicense = `---
title: The Unlicense
spdx-id: Unlicense
permissions:
  - commercial-use
conditions: []
limitations:
  - liability
---

This is free and unencumbered software released into the public domain.
`

// testEnv is a CLI wired to a filesystem source in a temp directory.
type testEnv struct {
	root  string
	store *memory.CacheStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	writeFile(t, root, "_data/rules.yml", testRules)
	writeFile(t, root, "_data/fields.yml", testFields)
	writeFile(t, root, "_licenses/mit.txt", testMIT)
	writeFile(t, root, "_licenses/apache-2.0.txt", testApache)
	writeFile(t, root, "_licenses/gpl-3.0.txt", testGPL)
	writeFile(t, root, "_licenses/unlicense.txt", testUnlicense)

	env := &testEnv{root: root, store: memory.NewCacheStore()}
	svc = env.services()
	t.Cleanup(func() { svc = nil })
	return env
}

func (e *testEnv) services() *Services {
	log := logger.Discard()
	cfg := domain.DefaultSourceConfig()
	cfg.Type = domain.SourceTypeFilesystem
	cfg.Path = e.root

	src := filesystem.NewSource(e.root)
	repo := services.NewCacheRepository(e.store, log)
	aliases := services.DefaultAliasTable()
	catalog := services.NewCatalog(aliases)

	return &Services{
		Sync:        services.NewSyncer(src, repo, cfg, 2, log),
		Cache:       repo,
		Licenses:    catalog,
		Fill:        services.NewFillService(catalog, services.NewResolver(aliases), nil, log),
		Preferences: services.NewPreferenceService(),
		Log:         log,
		Watch: func(ctx context.Context, onChange func(path string)) error {
			return src.Watch(ctx, []string{cfg.DataDir, cfg.LicensesDir}, onChange)
		},
	}
}

// cached returns what the store holds.
func (e *testEnv) cached(t *testing.T) *domain.Cache {
	t.Helper()
	cache, err := e.store.Load(context.Background())
	require.NoError(t, err)
	return cache
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default; cobra keeps flag state
// between executions of the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	// Cobra only hands the root context down to a nil one.
	cmd.SetContext(nil)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

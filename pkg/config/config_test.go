// Copyright 2026 Rafael Mazzoni
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "coletor.yaml", `
roots:
  - /data/archives
  - /mnt/backup
destination: /srv/collected
extensions: "rar, zip"
overwrite: true
follow_symlinks: true
exclude_patterns:
  - "**/.git"
`)

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/data/archives", "/mnt/backup"}, cfg.Roots)
	assert.Equal(t, "/srv/collected", cfg.Destination)
	assert.Equal(t, "rar, zip", cfg.Extensions)
	assert.True(t, cfg.Overwrite)
	assert.False(t, cfg.DryRun)
	assert.True(t, cfg.FollowSymlinks)
	assert.Equal(t, []string{"**/.git"}, cfg.ExcludePatterns)
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "coletor.yaml", `
destination: /srv/collected
no_such_option: true
`)

	_, err := config.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_option")
}

func TestLoadHCL(t *testing.T) {
	path := writeConfig(t, "coletor.hcl", `
roots           = ["/data/archives"]
destination     = "/srv/collected"
extensions      = ".rar .7z"
dry_run         = true
`)

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/data/archives"}, cfg.Roots)
	assert.Equal(t, "/srv/collected", cfg.Destination)
	assert.Equal(t, ".rar .7z", cfg.Extensions)
	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.Overwrite)
}

func TestLoadUnknownExtension(t *testing.T) {
	path := writeConfig(t, "coletor.toml", `destination = "/x"`)
	_, err := config.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parser found")
}

func TestValidateDefaults(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.DefaultExtensions, cfg.Extensions)

	assert.Equal(t, config.DefaultExtensions, config.Default().Extensions)
}

func TestValidateRejectsEmptyRoot(t *testing.T) {
	cfg := &config.Config{Roots: []string{"/ok", "  "}}
	assert.Error(t, cfg.Validate())
}

func TestValidateCleansPaths(t *testing.T) {
	cfg := &config.Config{
		Roots:       []string{"/data//archives/"},
		Destination: "/srv/./collected",
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/data/archives", cfg.Roots[0])
	assert.Equal(t, "/srv/collected", cfg.Destination)
}

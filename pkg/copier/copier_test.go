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

package copier_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/collect"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/copier"
)

// fixture creates a source tree with one discovered file per relative path.
func fixture(t *testing.T, rels ...string) (string, []collect.DiscoveredFile) {
	t.Helper()
	root := t.TempDir()
	files := make([]collect.DiscoveredFile, 0, len(rels))
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("content of "+rel), 0o644))
		info, err := os.Stat(path)
		require.NoError(t, err)
		files = append(files, collect.DiscoveredFile{
			SourcePath: path,
			OriginRoot: root,
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	return root, files
}

func collectLogs() (collect.LogSink, *[]string) {
	var logs []string
	return func(line string) { logs = append(logs, line) }, &logs
}

func TestCopyReplicatesStructure(t *testing.T) {
	_, files := fixture(t, "x/a.rar", "y/z/b.rar")
	dest := t.TempDir()

	onLog, logs := collectLogs()
	sum := copier.New(copier.Options{DestRoot: dest}).Copy(context.Background(), files, onLog)

	assert.Equal(t, copier.Summary{Selected: 2, Succeeded: 2}, sum)
	for _, file := range files {
		copied := filepath.Join(dest, file.RelativePath())
		content, err := os.ReadFile(copied)
		require.NoError(t, err)
		src, err := os.ReadFile(file.SourcePath)
		require.NoError(t, err)
		assert.Equal(t, src, content)
	}
	require.NotEmpty(t, *logs)
	assert.Equal(t, "Copy finished. Selected: 2; Copied/Simulated: 2", (*logs)[len(*logs)-1])
}

func TestCopyPreservesMetadata(t *testing.T) {
	root, files := fixture(t, "a.rar")
	dest := t.TempDir()

	src := filepath.Join(root, "a.rar")
	past := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(src, past, past))
	require.NoError(t, os.Chmod(src, 0o640))

	onLog, _ := collectLogs()
	sum := copier.New(copier.Options{DestRoot: dest}).Copy(context.Background(), files, onLog)
	require.Equal(t, 1, sum.Succeeded)

	info, err := os.Stat(filepath.Join(dest, "a.rar"))
	require.NoError(t, err)
	assert.Equal(t, past, info.ModTime().Truncate(time.Second))
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestCopySkipsExistingWithoutOverwrite(t *testing.T) {
	_, files := fixture(t, "x/a.rar")
	dest := t.TempDir()
	cp := copier.New(copier.Options{DestRoot: dest})

	onLog, _ := collectLogs()
	first := cp.Copy(context.Background(), files, onLog)
	require.Equal(t, copier.Summary{Selected: 1, Succeeded: 1}, first)

	copied := filepath.Join(dest, "x", "a.rar")
	before, err := os.Stat(copied)
	require.NoError(t, err)

	// Second run: everything skipped, zero additional mutation.
	onLog2, logs2 := collectLogs()
	second := cp.Copy(context.Background(), files, onLog2)
	assert.Equal(t, copier.Summary{Selected: 1, Succeeded: 0}, second)
	assert.Contains(t, *logs2, fmt.Sprintf("[SKIPPED - exists] %s", copied))

	after, err := os.Stat(copied)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
	assert.Equal(t, before.Size(), after.Size())
}

func TestCopyOverwriteReplaces(t *testing.T) {
	_, files := fixture(t, "a.rar")
	dest := t.TempDir()
	stale := filepath.Join(dest, "a.rar")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	onLog, _ := collectLogs()
	sum := copier.New(copier.Options{DestRoot: dest, Overwrite: true}).Copy(context.Background(), files, onLog)
	assert.Equal(t, copier.Summary{Selected: 1, Succeeded: 1}, sum)

	content, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.Equal(t, "content of a.rar", string(content))
}

func TestDryRunMutatesNothing(t *testing.T) {
	_, files := fixture(t, "x/a.rar", "y/b.rar")
	dest := filepath.Join(t.TempDir(), "dest")

	onLog, logs := collectLogs()
	sum := copier.New(copier.Options{DestRoot: dest, DryRun: true}).Copy(context.Background(), files, onLog)

	// Simulations count as succeeded but create nothing, not even directories.
	assert.Equal(t, copier.Summary{Selected: 2, Succeeded: 2}, sum)
	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))

	var dryRunLines int
	for _, line := range *logs {
		if strings.HasPrefix(line, "[DRY-RUN]") {
			dryRunLines++
		}
	}
	assert.Equal(t, 2, dryRunLines)

	// A real run with identical inputs produces the layout dry-run described.
	require.NoError(t, os.MkdirAll(dest, 0o755))
	onLog2, _ := collectLogs()
	rerun := copier.New(copier.Options{DestRoot: dest}).Copy(context.Background(), files, onLog2)
	assert.Equal(t, copier.Summary{Selected: 2, Succeeded: 2}, rerun)
	for _, file := range files {
		_, err := os.Stat(filepath.Join(dest, file.RelativePath()))
		assert.NoError(t, err)
	}
}

func TestCopyCancelledBeforeStart(t *testing.T) {
	_, files := fixture(t, "a.rar", "b.rar")
	dest := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	onLog, logs := collectLogs()
	sum := copier.New(copier.Options{DestRoot: dest}).Copy(ctx, files, onLog)

	// Partial completion is the expected outcome of cancellation.
	assert.Equal(t, copier.Summary{Selected: 2, Succeeded: 0}, sum)
	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NotEmpty(t, *logs)
	assert.Equal(t, "Copy finished. Selected: 2; Copied/Simulated: 0", (*logs)[len(*logs)-1])
}

func TestCopyContinuesPastFailures(t *testing.T) {
	root, files := fixture(t, "a.rar", "b.rar")
	dest := t.TempDir()

	// Break the first source after discovery; the second still copies.
	require.NoError(t, os.Remove(filepath.Join(root, "a.rar")))

	onLog, logs := collectLogs()
	sum := copier.New(copier.Options{DestRoot: dest}).Copy(context.Background(), files, onLog)

	assert.Equal(t, copier.Summary{Selected: 2, Succeeded: 1}, sum)
	_, err := os.Stat(filepath.Join(dest, "b.rar"))
	assert.NoError(t, err)

	var errorLines int
	for _, line := range *logs {
		if strings.HasPrefix(line, "[ERROR") {
			errorLines++
		}
	}
	assert.Equal(t, 1, errorLines)
}

func TestFallbackRelativizationCopiesUnderAnchorSuffix(t *testing.T) {
	// A file recorded against a root it does not descend from still copies
	// deterministically via the anchor-relative suffix.
	root, files := fixture(t, "a.rar")
	dest := t.TempDir()
	files[0].OriginRoot = filepath.Join(root, "elsewhere")

	onLog, _ := collectLogs()
	sum := copier.New(copier.Options{DestRoot: dest}).Copy(context.Background(), files, onLog)
	require.Equal(t, 1, sum.Succeeded)

	want := filepath.Join(dest, collect.Relativize(files[0].SourcePath, files[0].OriginRoot))
	_, err := os.Stat(want)
	assert.NoError(t, err)
}

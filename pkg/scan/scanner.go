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

package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/collect"
)

// Options configures a traversal.
type Options struct {
	// Roots are canonical root paths, visited strictly in order.
	Roots []string
	// Extensions is the non-empty suffix set files must match.
	Extensions ExtensionSet
	// FollowSymlinks descends into symlinked directories when true.
	FollowSymlinks bool
	// ExcludePatterns are doublestar globs matched against the root-relative
	// path (slash-separated). Matching directories are pruned, matching
	// files skipped. Optional.
	ExcludePatterns []string
}

// Scanner walks directory trees and emits discovered files. It communicates
// exclusively through the sinks and the context, never through return
// values, so it can run on a background goroutine while the caller stays
// responsive.
type Scanner struct {
	opts Options
}

// New creates a scanner for the given options.
func New(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Scan visits every root in order, emitting one DiscoveredFile per matched
// regular file and one diagnostic line per unreadable entry. Cancellation is
// checked before each root, each directory, and each file; already-emitted
// hits stay valid. A final summary line reports the matched-file count
// whether the walk completed or was cancelled.
func (s *Scanner) Scan(ctx context.Context, onLog collect.LogSink, onHit collect.HitSink) {
	logger := zerolog.Ctx(ctx)
	walk := &walker{
		scanner: s,
		onLog:   onLog,
		onHit:   onHit,
	}
	for _, root := range s.opts.Roots {
		if ctx.Err() != nil {
			break
		}
		onLog(fmt.Sprintf("Searching in: %s", root))
		logger.Debug().Str("root", root).Strs("extensions", s.opts.Extensions.Slice()).Msg("scanning root")
		walk.visited = map[string]struct{}{root: {}}
		walk.dir(ctx, root, root)
	}
	logger.Debug().Int("found", walk.found).Msg("scan finished")
	onLog(fmt.Sprintf("Search finished. Found: %d", walk.found))
}

// walker carries per-scan state so Scanner itself stays reusable.
type walker struct {
	scanner *Scanner
	onLog   collect.LogSink
	onHit   collect.HitSink
	found   int
	visited map[string]struct{} // canonical dirs seen, guards symlink cycles
}

// dir processes one directory depth-first. A single unreadable entry never
// aborts the walk; it is logged and its siblings continue.
func (w *walker) dir(ctx context.Context, root, dir string) {
	if ctx.Err() != nil {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logFailure(fmt.Sprintf("reading directory %s", dir), err)
		return
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			if w.excluded(root, path) {
				continue
			}
			w.dir(ctx, root, path)
		case entry.Type()&fs.ModeSymlink != 0:
			w.symlink(ctx, root, path, entry.Name())
		case entry.Type().IsRegular():
			w.file(root, path, entry)
		}
	}
}

// file tests one regular directory entry against the extension set and
// emits a record on a successful stat. Matches whose stat fails are counted
// and logged, but never produce a record.
func (w *walker) file(root, path string, entry fs.DirEntry) {
	if !w.scanner.opts.Extensions.Matches(entry.Name()) {
		return
	}
	if w.excluded(root, path) {
		return
	}
	w.found++
	info, err := entry.Info()
	if err != nil {
		w.logFailure(path, err)
		return
	}
	w.onHit(collect.DiscoveredFile{
		SourcePath: path,
		OriginRoot: root,
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
	})
}

// symlink resolves a symlinked entry. Links to regular files are matched
// like plain files regardless of FollowSymlinks, keeping the link-side path;
// only the descent into symlinked directories is gated on the flag, at most
// once per canonical target. A dangling link whose name matches is counted
// and logged like any other stat failure.
func (w *walker) symlink(ctx context.Context, root, path, name string) {
	if w.excluded(root, path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		if w.scanner.opts.Extensions.Matches(name) {
			w.found++
			w.logFailure(path, err)
		}
		return
	}
	if info.IsDir() {
		if !w.scanner.opts.FollowSymlinks {
			return
		}
		canonical, err := filepath.EvalSymlinks(path)
		if err != nil {
			w.logFailure(path, err)
			return
		}
		if _, seen := w.visited[canonical]; seen {
			return
		}
		w.visited[canonical] = struct{}{}
		w.dir(ctx, root, path)
		return
	}
	if !info.Mode().IsRegular() || !w.scanner.opts.Extensions.Matches(name) {
		return
	}
	w.found++
	w.onHit(collect.DiscoveredFile{
		SourcePath: path,
		OriginRoot: root,
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime(),
	})
}

// excluded matches the root-relative path against the configured globs.
func (w *walker) excluded(root, path string) bool {
	if len(w.scanner.opts.ExcludePatterns) == 0 {
		return false
	}
	rel := filepath.ToSlash(collect.Relativize(path, root))
	for _, pattern := range w.scanner.opts.ExcludePatterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func (w *walker) logFailure(subject string, err error) {
	if errors.Is(err, os.ErrPermission) {
		w.onLog(fmt.Sprintf("[ERROR - permission] %s", subject))
		return
	}
	w.onLog(fmt.Sprintf("[ERROR - OS] %s: %v", subject, err))
}

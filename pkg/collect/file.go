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

// Package collect holds the domain types shared by the search and copy
// pipeline: discovered files, the sinks they travel through, and the
// relative-path rules used to rebuild the source tree under a destination.
package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiscoveredFile is one file matched during traversal. Identity is
// SourcePath; two discoveries of the same path are the same file. A record
// is only created after a successful stat, so SizeBytes and ModifiedAt are
// always populated.
type DiscoveredFile struct {
	SourcePath string    // absolute path of the matched file
	OriginRoot string    // canonical root the file was found under
	SizeBytes  int64     // size at discovery time
	ModifiedAt time.Time // last-modified at discovery time
}

// Name returns the filename component of the source path.
func (f DiscoveredFile) Name() string {
	return filepath.Base(f.SourcePath)
}

// RelativePath returns the path to replicate under a destination root.
func (f DiscoveredFile) RelativePath() string {
	return Relativize(f.SourcePath, f.OriginRoot)
}

// String renders the record the way the result listing displays it.
func (f DiscoveredFile) String() string {
	return fmt.Sprintf("%s  %s  %s  %.2f MB  %s",
		f.Name(),
		f.OriginRoot,
		f.RelativePath(),
		float64(f.SizeBytes)/1024/1024,
		f.ModifiedAt.Format("2006-01-02 15:04:05"))
}

// LogSink receives human-readable diagnostic lines.
type LogSink func(line string)

// HitSink receives discovered files as they are found.
type HitSink func(file DiscoveredFile)

// Relativize returns the path of source relative to root. When source is not
// a descendant of root, it falls back to the path relative to the anchor of
// source (drive root on Windows, "/" elsewhere). The fallback exists only
// for internally inconsistent input; both call sites (display and copy)
// depend on this function returning the same value for the same arguments.
func Relativize(source, root string) string {
	if rel, err := filepath.Rel(root, source); err == nil && !escapes(rel) {
		return rel
	}
	rel, err := filepath.Rel(Anchor(source), source)
	if err != nil {
		return filepath.Base(source)
	}
	return rel
}

// Anchor returns the topmost component of path: the volume name plus
// separator on Windows, the root directory elsewhere. Relative paths have
// no anchor and yield ".".
func Anchor(path string) string {
	vol := filepath.VolumeName(path)
	if len(path) > len(vol) && os.IsPathSeparator(path[len(vol)]) {
		return vol + string(filepath.Separator)
	}
	if vol != "" {
		return vol
	}
	return "."
}

// escapes reports whether a cleaned relative path points outside its base.
func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
}

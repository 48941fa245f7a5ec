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

// Package scan implements the search half of the pipeline: root
// normalization, extension matching, and the traversal engine that streams
// discovered files into a session.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gitlab.com/tozd/go/errors"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/collect"
)

// NormalizeRoots expands and canonicalizes every raw root path. Resolution
// is all-or-nothing: if any root is missing or unresolvable, no search may
// start. The returned roots keep the input order.
func NormalizeRoots(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, collect.ErrNoRoots
	}
	roots := make([]string, 0, len(raw))
	for _, r := range raw {
		root, err := normalizeRoot(r)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// normalizeRoot resolves one root to an absolute, symlink-normalized
// canonical path and verifies it exists on disk.
func normalizeRoot(raw string) (string, error) {
	expanded, err := homedir.Expand(raw)
	if err != nil {
		return "", errors.Errorf("expanding root %q: %w", raw, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Errorf("resolving root %q: %w", raw, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("%w: %s", collect.ErrRootNotFound, abs)
		}
		return "", errors.Errorf("resolving root %q: %w", raw, err)
	}
	return resolved, nil
}

// NormalizeDest expands and absolutizes the destination path. The directory
// itself may not exist yet; it is created when a copy starts.
func NormalizeDest(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", collect.ErrNoDestination
	}
	expanded, err := homedir.Expand(raw)
	if err != nil {
		return "", errors.Errorf("expanding destination %q: %w", raw, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Errorf("resolving destination %q: %w", raw, err)
	}
	return abs, nil
}

// DetectDrives probes the fixed drive-letter roots used on Windows plus the
// filesystem root and returns those that exist. Helper for presentation
// layers building a root list; never called implicitly.
func DetectDrives() []string {
	var drives []string
	for c := 'A'; c <= 'Z'; c++ {
		drive := string(c) + `:\`
		if _, err := os.Stat(drive); err == nil {
			drives = append(drives, drive)
		}
	}
	if _, err := os.Stat("/"); err == nil {
		drives = append(drives, "/")
	}
	return drives
}

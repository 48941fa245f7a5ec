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

package session

import (
	"gitlab.com/tozd/go/errors"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/collect"
)

// ResultSet is an ordered, deduplicated collection of discovered files.
// Identity is the source path; insertion order is discovery order. It backs
// both the selection display and the copy executor's input.
type ResultSet struct {
	files []collect.DiscoveredFile
	seen  map[string]struct{}
}

// NewResultSet creates an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{seen: make(map[string]struct{})}
}

// Add appends a file unless its source path is already present. Reports
// whether the file was added.
func (r *ResultSet) Add(file collect.DiscoveredFile) bool {
	if _, dup := r.seen[file.SourcePath]; dup {
		return false
	}
	r.seen[file.SourcePath] = struct{}{}
	r.files = append(r.files, file)
	return true
}

// Len returns the number of files in the set.
func (r *ResultSet) Len() int {
	return len(r.files)
}

// All returns every file in discovery order. The slice is a copy; mutating
// it never affects the set.
func (r *ResultSet) All() []collect.DiscoveredFile {
	out := make([]collect.DiscoveredFile, len(r.files))
	copy(out, r.files)
	return out
}

// Pick returns the files at the given zero-based indices, in the given
// order. An out-of-range index fails the whole pick.
func (r *ResultSet) Pick(indices []int) ([]collect.DiscoveredFile, error) {
	out := make([]collect.DiscoveredFile, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(r.files) {
			return nil, errors.Errorf("selection index %d out of range (1-%d)", i+1, len(r.files))
		}
		out = append(out, r.files[i])
	}
	return out, nil
}

// Clear empties the set.
func (r *ResultSet) Clear() {
	r.files = nil
	r.seen = make(map[string]struct{})
}

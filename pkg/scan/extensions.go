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
	"sort"
	"strings"
	"unicode"
)

// ExtensionSet is a set of lowercase, dot-prefixed filename suffixes.
type ExtensionSet map[string]struct{}

// ParseExtensions tokenizes free text on commas and whitespace, drops empty
// tokens, lowercases, and prefixes a token with "." when it lacks one.
// Blank input yields an empty set; callers must treat that as a validation
// error, never as "match everything".
func ParseExtensions(text string) ExtensionSet {
	set := make(ExtensionSet)
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if !strings.HasPrefix(tok, ".") {
			tok = "." + tok
		}
		set[tok] = struct{}{}
	}
	return set
}

// Matches reports whether the lowercased filename ends with any member
// suffix. The comparison is against the filename only, never the full path,
// and carries no glob or regex semantics.
func (s ExtensionSet) Matches(filename string) bool {
	name := strings.ToLower(filename)
	for ext := range s {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no members.
func (s ExtensionSet) Empty() bool {
	return len(s) == 0
}

// Slice returns the members sorted, for logging and display.
func (s ExtensionSet) Slice() []string {
	out := make([]string, 0, len(s))
	for ext := range s {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

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
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ParseSelection parses a one-based index expression such as "1,3-5" into
// zero-based indices against a result set of size n. Duplicate indices keep
// their first position. An empty expression or "all" selects everything.
func ParseSelection(expr string, n int) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.EqualFold(expr, "all") {
		return sequence(n), nil
	}
	var (
		indices []int
		seen    = make(map[int]struct{})
	)
	add := func(i int) error {
		if i < 1 || i > n {
			return errors.Errorf("selection index %d out of range (1-%d)", i, n)
		}
		if _, dup := seen[i]; dup {
			return nil
		}
		seen[i] = struct{}{}
		indices = append(indices, i-1)
		return nil
	}
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		lo, hi, found := strings.Cut(token, "-")
		if !found {
			i, err := strconv.Atoi(token)
			if err != nil {
				return nil, errors.Errorf("invalid selection token %q", token)
			}
			if err := add(i); err != nil {
				return nil, err
			}
			continue
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, errors.Errorf("invalid selection range %q", token)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, errors.Errorf("invalid selection range %q", token)
		}
		if end < start {
			return nil, errors.Errorf("invalid selection range %q", token)
		}
		for i := start; i <= end; i++ {
			if err := add(i); err != nil {
				return nil, err
			}
		}
	}
	if len(indices) == 0 {
		return nil, errors.New("empty selection")
	}
	return indices, nil
}

// Invert returns the zero-based indices of [0,n) not present in indices,
// in ascending order.
func Invert(indices []int, n int) []int {
	selected := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		selected[i] = struct{}{}
	}
	var out []int
	for i := 0; i < n; i++ {
		if _, ok := selected[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

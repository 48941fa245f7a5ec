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

package collect

import "gitlab.com/tozd/go/errors"

// Validation errors are reported before an operation starts; everything that
// fails after that point is recovered locally and surfaced as a log line.
var (
	ErrNoRoots         = errors.Base("at least one search root is required")
	ErrRootNotFound    = errors.Base("search root does not exist")
	ErrNoExtensions    = errors.Base("at least one extension is required")
	ErrNoDestination   = errors.Base("destination directory is required")
	ErrNothingSelected = errors.Base("no files selected")

	ErrSearchRunning = errors.Base("a search is already running")
	ErrCopyRunning   = errors.Base("a copy is already running")
)

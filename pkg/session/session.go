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

// Package session holds the process-wide state shared between the
// interactive side and the background execution units: the current result
// set, the log and hit queues, the cancellation handle, and the
// active-operation flags. One Session is owned by the presentation layer and
// passed into each operation; nothing here is ambient global state.
package session

import (
	"context"
	"sync"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/collect"
)

// Session mediates all communication between the interactive side and the
// background units. The background side writes only through Log and EmitHit;
// the interactive side appends to the result set only by draining, so no
// structure is mutated concurrently from both sides.
type Session struct {
	logs Queue[string]
	hits Queue[collect.DiscoveredFile]

	mu           sync.Mutex
	results      *ResultSet
	searching    bool
	copying      bool
	searchCancel context.CancelFunc
	copyCancel   context.CancelFunc
}

// New creates an idle session with an empty result set.
func New() *Session {
	return &Session{results: NewResultSet()}
}

// BeginSearch marks a traversal as active and returns the context the
// background unit must observe. A search already in flight is rejected with
// ErrSearchRunning, never queued. Starting a search resets the session:
// the result set is cleared, leftover queue items from a cancelled run are
// discarded, and any prior cancellation no longer applies.
func (s *Session) BeginSearch(parent context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searching {
		return nil, collect.ErrSearchRunning
	}
	ctx, cancel := context.WithCancel(parent)
	s.searching = true
	s.searchCancel = cancel
	s.results.Clear()
	s.logs.Drain()
	s.hits.Drain()
	return ctx, nil
}

// EndSearch marks the traversal as finished; the session is idle again once
// both operations have ended.
func (s *Session) EndSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searching = false
	s.searchCancel = nil
}

// BeginCopy marks a copy as active and returns its context. A copy already
// in flight is rejected with ErrCopyRunning.
func (s *Session) BeginCopy(parent context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.copying {
		return nil, collect.ErrCopyRunning
	}
	ctx, cancel := context.WithCancel(parent)
	s.copying = true
	s.copyCancel = cancel
	return ctx, nil
}

// EndCopy marks the copy as finished.
func (s *Session) EndCopy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copying = false
	s.copyCancel = nil
}

// Cancel requests cooperative cancellation of whichever operations are
// active. In-flight filesystem calls complete; the signal is observed at
// the operations' defined check points.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchCancel != nil {
		s.searchCancel()
	}
	if s.copyCancel != nil {
		s.copyCancel()
	}
}

// Searching reports whether a traversal is active.
func (s *Session) Searching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searching
}

// Copying reports whether a copy is active.
func (s *Session) Copying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copying
}

// Busy reports whether any operation is active.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searching || s.copying
}

// Log enqueues one diagnostic line. Safe to call from any goroutine; never
// blocks.
func (s *Session) Log(line string) {
	s.logs.Push(line)
}

// EmitHit enqueues one discovered file. Safe to call from any goroutine;
// never blocks.
func (s *Session) EmitHit(file collect.DiscoveredFile) {
	s.hits.Push(file)
}

// DrainLogs removes and returns every queued log line in order.
func (s *Session) DrainLogs() []string {
	return s.logs.Drain()
}

// DrainHits moves queued hits into the result set and returns the ones that
// were new. Only the draining (interactive) side ever appends to the result
// set.
func (s *Session) DrainHits() []collect.DiscoveredFile {
	drained := s.hits.Drain()
	if len(drained) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	added := make([]collect.DiscoveredFile, 0, len(drained))
	for _, file := range drained {
		if s.results.Add(file) {
			added = append(added, file)
		}
	}
	return added
}

// Results exposes the current result set. The caller must be the interactive
// side; background units never touch it.
func (s *Session) Results() *ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// PendingHits reports whether undrained hits remain queued.
func (s *Session) PendingHits() bool {
	return s.hits.Len() > 0
}

// PendingLogs reports whether undrained log lines remain queued.
func (s *Session) PendingLogs() bool {
	return s.logs.Len() > 0
}

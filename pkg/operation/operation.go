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

// Package operation is the narrow contract between a presentation layer and
// the pipeline core. The presentation side supplies raw inputs, starts and
// cancels operations, and drains log lines and discovered files on its own
// polling schedule; everything else happens on background goroutines owned
// by the runner.
package operation

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/collect"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/copier"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/scan"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/session"
)

// SearchRequest carries the raw inputs for a search. Validation happens in
// StartSearch; nothing here is assumed canonical.
type SearchRequest struct {
	// Roots are the raw root paths, searched in order.
	Roots []string
	// ExtensionText is the free-text extension list, e.g. "rar, zip .7z".
	ExtensionText string
	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool
	// ExcludePatterns are optional root-relative globs to prune.
	ExcludePatterns []string
}

// CopyRequest carries the raw inputs for a copy.
type CopyRequest struct {
	// Selected is the subset of discovered files to copy. Nil means every
	// file currently in the result set.
	Selected []collect.DiscoveredFile
	// Destination is the raw destination path the structure is replicated
	// under.
	Destination string
	// Overwrite replaces destination files that already exist.
	Overwrite bool
	// DryRun logs would-be copies without filesystem mutation.
	DryRun bool
}

// Controller exposes the pipeline operations to a presentation layer. All
// methods are safe to call from the interactive goroutine; the long-running
// work happens elsewhere.
type Controller struct {
	session *session.Session
	runner  *Runner
}

// NewController creates a controller around the given session.
func NewController(sess *session.Session) *Controller {
	return &Controller{
		session: sess,
		runner:  NewRunner(),
	}
}

// StartSearch validates the request and launches the traversal on a
// background goroutine. Validation failures return immediately and nothing
// starts; a search already in flight is rejected with ErrSearchRunning.
func (c *Controller) StartSearch(ctx context.Context, req SearchRequest) error {
	roots, err := scan.NormalizeRoots(req.Roots)
	if err != nil {
		return err
	}
	exts := scan.ParseExtensions(req.ExtensionText)
	if exts.Empty() {
		return collect.ErrNoExtensions
	}

	runCtx, err := c.session.BeginSearch(ctx)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Strs("roots", roots).Strs("extensions", exts.Slice()).Msg("starting search")

	scanner := scan.New(scan.Options{
		Roots:           roots,
		Extensions:      exts,
		FollowSymlinks:  req.FollowSymlinks,
		ExcludePatterns: req.ExcludePatterns,
	})
	c.runner.Go(c.session, "search", func() {
		defer c.session.EndSearch()
		scanner.Scan(runCtx, c.session.Log, c.session.EmitHit)
	})
	return nil
}

// StartCopy validates the request and launches the copy on a background
// goroutine. The destination is created up front except under dry-run,
// which never mutates the filesystem.
func (c *Controller) StartCopy(ctx context.Context, req CopyRequest) error {
	dest, err := scan.NormalizeDest(req.Destination)
	if err != nil {
		return err
	}
	selected := req.Selected
	if selected == nil {
		selected = c.session.Results().All()
	}
	if len(selected) == 0 {
		return collect.ErrNothingSelected
	}

	runCtx, err := c.session.BeginCopy(ctx)
	if err != nil {
		return err
	}
	if !req.DryRun {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			c.session.EndCopy()
			return errors.Errorf("creating destination %s: %w", dest, err)
		}
	}
	zerolog.Ctx(ctx).Debug().Str("destination", dest).Int("selected", len(selected)).
		Bool("overwrite", req.Overwrite).Bool("dry_run", req.DryRun).Msg("starting copy")

	cp := copier.New(copier.Options{
		DestRoot:  dest,
		Overwrite: req.Overwrite,
		DryRun:    req.DryRun,
	})
	c.runner.Go(c.session, "copy", func() {
		defer c.session.EndCopy()
		cp.Copy(runCtx, selected, c.session.Log)
	})
	return nil
}

// Cancel requests cooperative cancellation of whatever is running.
func (c *Controller) Cancel() {
	c.session.Cancel()
}

// Session returns the session the controller operates on; the presentation
// layer drains it from here.
func (c *Controller) Session() *session.Session {
	return c.session
}

// Wait blocks until every launched background unit has finished. Intended
// for shutdown; pair with Cancel to stop early.
func (c *Controller) Wait() {
	c.runner.Wait()
}

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

// Package copier implements the copy half of the pipeline: replicating the
// root-relative structure of selected files under a destination tree.
package copier

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/collect"
)

// Outcome classifies the result of one file's copy attempt.
type Outcome int

const (
	OutcomeCopied Outcome = iota
	OutcomeSkippedExists
	OutcomeSimulated
	OutcomeErrorPermission
	OutcomeErrorOS
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeSkippedExists:
		return "skipped-exists"
	case OutcomeSimulated:
		return "simulated"
	case OutcomeErrorPermission:
		return "error-permission"
	case OutcomeErrorOS:
		return "error-os"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the outcome counts toward the summary: real
// copies and dry-run simulations do, skips and failures do not.
func (o Outcome) Succeeded() bool {
	return o == OutcomeCopied || o == OutcomeSimulated
}

// Summary aggregates one copy run: how many files were selected and how many
// were copied or simulated.
type Summary struct {
	Selected  int
	Succeeded int
}

// Options configures a copy run.
type Options struct {
	// DestRoot is the absolute destination directory the structure is
	// replicated under.
	DestRoot string
	// Overwrite replaces destination files that already exist.
	Overwrite bool
	// DryRun logs every would-be copy without touching the filesystem.
	DryRun bool
}

// Copier replicates selected files under a destination root.
type Copier struct {
	opts Options
}

// New creates a copier for the given options.
func New(opts Options) *Copier {
	return &Copier{opts: opts}
}

// Copy processes the selected files in order. Cancellation is checked before
// each file; partial completion is the expected outcome of a cancel, not an
// error. Per-file failures are logged and never stop the remaining files.
// A final summary line reports selected vs copied/simulated counts.
func (c *Copier) Copy(ctx context.Context, selected []collect.DiscoveredFile, onLog collect.LogSink) Summary {
	logger := zerolog.Ctx(ctx)
	sum := Summary{Selected: len(selected)}
	for _, file := range selected {
		if ctx.Err() != nil {
			break
		}
		outcome := c.copyOne(file, onLog)
		logger.Debug().Str("source", file.SourcePath).Stringer("outcome", outcome).Msg("processed file")
		if outcome.Succeeded() {
			sum.Succeeded++
		}
	}
	onLog(fmt.Sprintf("Copy finished. Selected: %d; Copied/Simulated: %d", sum.Selected, sum.Succeeded))
	return sum
}

// copyOne replicates a single file, producing exactly one outcome and one
// log line.
func (c *Copier) copyOne(file collect.DiscoveredFile, onLog collect.LogSink) Outcome {
	destPath := filepath.Join(c.opts.DestRoot, file.RelativePath())

	if c.opts.DryRun {
		onLog(fmt.Sprintf("[DRY-RUN] %s -> %s", file.SourcePath, destPath))
		return OutcomeSimulated
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return c.failure(file.SourcePath, err, onLog)
	}
	if _, err := os.Stat(destPath); err == nil && !c.opts.Overwrite {
		onLog(fmt.Sprintf("[SKIPPED - exists] %s", destPath))
		return OutcomeSkippedExists
	}
	if err := copyFile(file.SourcePath, destPath); err != nil {
		return c.failure(file.SourcePath, err, onLog)
	}
	onLog(fmt.Sprintf("[OK] %s -> %s", file.SourcePath, destPath))
	return OutcomeCopied
}

func (c *Copier) failure(source string, err error, onLog collect.LogSink) Outcome {
	if errors.Is(err, os.ErrPermission) {
		onLog(fmt.Sprintf("[ERROR - permission] %s", source))
		return OutcomeErrorPermission
	}
	onLog(fmt.Sprintf("[ERROR - OS] %s: %v", source, err))
	return OutcomeErrorOS
}

// copyFile copies src to dst, preserving permissions and the modification
// timestamp where the platform allows.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Errorf("reading source metadata: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying contents: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination: %w", err)
	}

	// The destination may have pre-existed with different metadata.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("preserving permissions: %w", err)
	}
	if err := os.Chtimes(dst, time.Now(), info.ModTime()); err != nil {
		return errors.Errorf("preserving timestamps: %w", err)
	}
	return nil
}

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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/config"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/log"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/operation"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/scan"
	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/session"
)

// pollInterval is how often the interactive side drains the session queues.
const pollInterval = 100 * time.Millisecond

var (
	// Flags
	configFile   string
	debug        bool
	roots        []string
	destination  string
	extensions   string
	overwrite    bool
	dryRun       bool
	followLinks  bool
	excludes     []string
	selectExpr   string
	invertSelect bool
	listOnly     bool
	detectDrives bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coletor",
		Short: "find files by extension across roots and copy them preserving structure",
		Long: `coletor walks one or more root directories looking for files that match a
set of extensions, then copies a selection of them into a destination tree,
recreating each file's path relative to the root it was found under.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".coletor.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.Flags().StringArrayVarP(&roots, "root", "r", nil, "root directory to search (repeatable)")
	cmd.Flags().StringVar(&destination, "dest", "", "destination directory the structure is replicated under")
	cmd.Flags().StringVarP(&extensions, "ext", "e", "", "extensions to match, comma or space separated (default \".rar\")")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite destination files that already exist")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log would-be copies without touching the filesystem")
	cmd.Flags().BoolVar(&followLinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "root-relative glob to prune from the search (repeatable)")
	cmd.Flags().StringVar(&selectExpr, "select", "all", "1-based selection of discovered files, e.g. \"1,3-5\"")
	cmd.Flags().BoolVar(&invertSelect, "invert", false, "copy everything except the selection")
	cmd.Flags().BoolVar(&listOnly, "list-only", false, "search and list matches without copying")
	cmd.Flags().BoolVar(&detectDrives, "detect-drives", false, "print the drive roots that exist and exit")

	return cmd
}

// setupLogging configures zerolog based on flags and returns the level.
func setupLogging() zerolog.Level {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	zerolog.DefaultContextLogger = &zlog
	return level
}

// loadConfig merges the optional config file with the flags; flags win.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(configFile); err == nil || cmd.Flags().Changed("config") {
		loaded, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("root") {
		cfg.Roots = roots
	}
	if cmd.Flags().Changed("dest") {
		cfg.Destination = destination
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = extensions
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.Overwrite = overwrite
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if cmd.Flags().Changed("follow-symlinks") {
		cfg.FollowSymlinks = followLinks
	}
	if cmd.Flags().Changed("exclude") {
		cfg.ExcludePatterns = excludes
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	level := setupLogging()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
	ctx := logger.WithContext(cmd.Context())

	if detectDrives {
		for _, drive := range scan.DetectDrives() {
			pterm.Info.Println(drive)
		}
		return nil
	}

	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		pterm.Error.Println(err)
		return err
	}

	// Catch a missing destination before spending a traversal on it.
	if !listOnly {
		if _, err := scan.NormalizeDest(cfg.Destination); err != nil {
			pterm.Error.Println(err)
			return err
		}
	}

	ui := log.New(os.Stdout, level)
	sess := session.New()
	ctrl := operation.NewController(sess)

	// First interrupt cancels cooperatively; the active operation stops at
	// its next check point and the summary still arrives.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		ui.Warning("cancelling...")
		ctrl.Cancel()
	}()

	if err := ctrl.StartSearch(ctx, operation.SearchRequest{
		Roots:           cfg.Roots,
		ExtensionText:   cfg.Extensions,
		FollowSymlinks:  cfg.FollowSymlinks,
		ExcludePatterns: cfg.ExcludePatterns,
	}); err != nil {
		pterm.Error.Println(err)
		return err
	}

	pterm.Info.Printfln("searching for %s", cfg.Extensions)
	drainUntilIdle(sess, ui, sess.Searching)

	results := sess.Results()
	if results.Len() == 0 {
		pterm.Warning.Println("no files found")
		ctrl.Wait()
		return nil
	}
	pterm.Success.Printfln("%d file(s) found", results.Len())
	if listOnly {
		ctrl.Wait()
		return nil
	}

	indices, err := session.ParseSelection(selectExpr, results.Len())
	if err != nil {
		pterm.Error.Println(err)
		return err
	}
	if invertSelect {
		indices = session.Invert(indices, results.Len())
	}
	selected, err := results.Pick(indices)
	if err != nil {
		pterm.Error.Println(err)
		return err
	}

	if err := ctrl.StartCopy(ctx, operation.CopyRequest{
		Selected:    selected,
		Destination: cfg.Destination,
		Overwrite:   cfg.Overwrite,
		DryRun:      cfg.DryRun,
	}); err != nil {
		pterm.Error.Println(err)
		return err
	}

	pterm.Info.Printfln("copying %d file(s) to %s", len(selected), cfg.Destination)
	drainUntilIdle(sess, ui, sess.Copying)

	ctrl.Wait()
	pterm.Success.Println("done")
	return nil
}

// drainUntilIdle polls the session queues on the fixed interval, printing
// what arrives, until the given operation has finished and both queues are
// empty. It never blocks on the background unit.
func drainUntilIdle(sess *session.Session, ui *log.Logger, active func() bool) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	index := sess.Results().Len()
	for range ticker.C {
		for _, file := range sess.DrainHits() {
			index++
			ui.Hit(index, file)
		}
		for _, line := range sess.DrainLogs() {
			ui.Line(line)
		}
		if !active() && !sess.PendingLogs() && !sess.PendingHits() {
			return
		}
	}
}

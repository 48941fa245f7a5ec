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

// Package log renders pipeline output for a console front end, mirroring
// everything into zerolog for structured records.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/pkg/collect"
)

// Display configuration
const (
	nameWidth = 32 // base width for the filename column
	rootWidth = 24 // width for the origin root column
)

// Logger handles structured logging with console output. The interactive
// side owns it; drained session lines and hits pass through here.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// New creates a new logger writing human output to console.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Line prints one drained pipeline log line, colorized by its marker.
func (l *Logger) Line(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var c *color.Color
	switch {
	case strings.HasPrefix(line, "[OK]"):
		c = color.New(color.FgGreen)
	case strings.HasPrefix(line, "[DRY-RUN]"):
		c = color.New(color.FgCyan)
	case strings.HasPrefix(line, "[SKIPPED"):
		c = color.New(color.FgYellow)
	case strings.HasPrefix(line, "[ERROR"):
		c = color.New(color.FgRed)
	case strings.HasPrefix(line, "[FATAL]"):
		c = color.New(color.FgRed, color.Bold)
	default:
		c = color.New(color.Reset)
	}
	fmt.Fprintln(l.console, c.Sprint(line))
	l.zlog.Info().Msg(line)
}

// Hit prints one discovered file as an indexed result row.
func (l *Logger) Hit(index int, file collect.DiscoveredFile) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%4d  %s %s %s %9.2f MB  %s\n",
		index,
		fmt.Sprintf("%-*s", nameWidth, file.Name()),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", rootWidth, file.OriginRoot)),
		color.New(color.Faint).Sprint(file.RelativePath()),
		float64(file.SizeBytes)/1024/1024,
		file.ModifiedAt.Format("2006-01-02 15:04:05"))

	l.zlog.Info().
		Str("file", file.SourcePath).
		Str("root", file.OriginRoot).
		Int64("size_bytes", file.SizeBytes).
		Time("modified_at", file.ModifiedAt).
		Msg("discovered file")
}

// Header prints a section header.
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	title := color.New(color.Bold, color.FgCyan).Sprint("coletor")
	fmt.Fprintf(l.console, "\n%s %s\n\n", title, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// Success prints a success message.
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// Warning prints a warning message.
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// Error prints an error message.
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// Infof prints a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(l.console, msg)
	l.zlog.Info().Msg(msg)
}

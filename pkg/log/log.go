// Copyright 2025 walteh LLC
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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 12 // Width for status text
)

// 🎯 FileResult represents one executed file operation for logging
type FileResult struct {
	Name          string // Current file name
	Destination   string // Name the file was given
	Status        string // Short status text, error text for failures
	IsNew         bool   // Whether the destination is a new file
	IsOverwritten bool   // Whether an existing file was replaced
	IsFailed      bool   // Whether the operation failed
}

// 📦 BatchOperation represents a batch file action for logging
type BatchOperation struct {
	Action      string // Action name (copying/renaming)
	Destination string // Where the files end up
	Side        string // Which side is acted on
	Items       int    // Number of plan items
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *BatchOperation
	results   []FileResult
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileResult formats an executed file operation for display
func (l *Logger) formatFileResult(result FileResult) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case result.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case result.IsOverwritten:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case result.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, result.Name),
		color.New(color.Faint).Sprint("→"),
		fmt.Sprintf("%-*s", nameWidth, result.Destination),
		fmt.Sprintf("%-*s", statusWidth, result.Status))
}

// 📝 LogFileResult logs an executed file operation
func (l *Logger) LogFileResult(ctx context.Context, result FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to results list
	l.results = append(l.results, result)

	// Format and print
	fmt.Fprintln(l.console, l.formatFileResult(result))

	// Log to zerolog
	l.zlog.Info().
		Str("file", result.Name).
		Str("destination", result.Destination).
		Str("status", result.Status).
		Bool("is_new", result.IsNew).
		Bool("is_overwritten", result.IsOverwritten).
		Bool("is_failed", result.IsFailed).
		Msg("file operation")
}

// 📝 StartBatch starts a new batch file action
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.results = nil

	// Print batch header
	fmt.Fprintf(l.console, "[%s %d files]\n",
		op.Action,
		op.Items)

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Destination),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint("side "+op.Side))

	// Log to zerolog
	l.zlog.Info().
		Str("action", op.Action).
		Str("destination", op.Destination).
		Str("side", op.Side).
		Int("items", op.Items).
		Msg("starting batch operation")
}

// 📝 EndBatch ends the current batch action and prints the tally
func (l *Logger) EndBatch(ctx context.Context, newCount, overwritten, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	parts := fmt.Sprintf("%s %s %s",
		color.New(color.FgGreen).Sprintf("%d new", newCount),
		color.New(color.FgBlue).Sprintf("• %d overwritten", overwritten),
		color.New(color.FgRed).Sprintf("• %d failed", failed))
	fmt.Fprintf(l.console, "\n%s\n", parts)

	if l.currentOp != nil {
		l.zlog.Info().
			Str("action", l.currentOp.Action).
			Int("files", len(l.results)).
			Int("new", newCount).
			Int("overwritten", overwritten).
			Int("failed", failed).
			Msg("batch operation complete")
	}

	l.currentOp = nil
	l.results = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	matchrcText := color.New(color.Bold, color.FgCyan).Sprint("matchrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", matchrcText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

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

// Package fileop executes plan items against the filesystem, one result
// per item. Items are independent: a failure is recorded and the batch
// moves on.
package fileop

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/matchrc/pkg/plan"
)

// 🎯 Outcome classifies how one plan item ended.
type Outcome int

const (
	// OutcomeNew means the destination did not exist before.
	OutcomeNew Outcome = iota
	// OutcomeOverwritten means an existing destination was replaced.
	OutcomeOverwritten
	// OutcomeFailed means the operation did not complete.
	OutcomeFailed
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeOverwritten:
		return "overwritten"
	case OutcomeFailed:
		return "failed"
	default:
		return "new"
	}
}

// 📦 Result ties one plan item to what happened when it ran.
type Result struct {
	Item    plan.Item
	Outcome Outcome
	Err     error // set only when Outcome is OutcomeFailed
}

// 📦 Options configure an Executor.
type Options struct {
	// DestDir is where CopyAll places files. RenameAll ignores it and
	// works inside each origin's own directory.
	DestDir string
}

// 📦 Executor runs plan items against the filesystem.
type Executor struct {
	opts Options
}

// 🏭 NewExecutor creates an executor.
func NewExecutor(opts Options) *Executor {
	return &Executor{opts: opts}
}

// 🏃 CopyAll copies every item into DestDir under its destination name.
// The directory is created up front; everything after that is per-item.
// Results come back in item order.
func (e *Executor) CopyAll(ctx context.Context, items []plan.Item) ([]Result, error) {
	if e.opts.DestDir == "" {
		return nil, errors.Errorf("destination directory is required")
	}
	if err := os.MkdirAll(e.opts.DestDir, 0755); err != nil {
		return nil, errors.Errorf("creating destination directory: %w", err)
	}

	results := make([]Result, 0, len(items))
	for _, item := range items {
		results = append(results, e.copyOne(ctx, item))
	}
	return results, nil
}

// 🏃 RenameAll renames every item inside its own parent directory.
// Results come back in item order.
func (e *Executor) RenameAll(ctx context.Context, items []plan.Item) []Result {
	results := make([]Result, 0, len(items))
	for _, item := range items {
		results = append(results, e.renameOne(ctx, item))
	}
	return results
}

// 📄 copyOne copies a single item, classifying the destination as new or
// overwritten before touching it.
func (e *Executor) copyOne(ctx context.Context, item plan.Item) Result {
	destination := filepath.Join(e.opts.DestDir, item.Destination)

	originInfo, err := os.Stat(item.Origin)
	if err != nil {
		return failed(ctx, item, errors.Errorf("reading origin: %w", err))
	}

	existed := false
	if destInfo, err := os.Stat(destination); err == nil {
		existed = true
		// Copying a file onto itself would truncate it mid-read.
		if os.SameFile(originInfo, destInfo) {
			zerolog.Ctx(ctx).Debug().Str("file", item.Name).Msg("origin and destination are the same file")
			return Result{Item: item, Outcome: OutcomeOverwritten}
		}
	}

	if err := copyContents(item.Origin, destination, originInfo.Mode().Perm()); err != nil {
		return failed(ctx, item, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("origin", item.Origin).
		Str("destination", destination).
		Bool("existed", existed).
		Msg("copied file")

	if existed {
		return Result{Item: item, Outcome: OutcomeOverwritten}
	}
	return Result{Item: item, Outcome: OutcomeNew}
}

// 📄 renameOne renames a single item in place.
func (e *Executor) renameOne(ctx context.Context, item plan.Item) Result {
	destination := filepath.Join(filepath.Dir(item.Origin), item.Destination)

	if filepath.Clean(item.Origin) == destination {
		// Nothing to do; the name already matches.
		return Result{Item: item, Outcome: OutcomeNew}
	}

	existed := false
	if _, err := os.Stat(destination); err == nil {
		existed = true
	}

	if err := os.Rename(item.Origin, destination); err != nil {
		return failed(ctx, item, errors.Errorf("renaming: %w", err))
	}

	zerolog.Ctx(ctx).Debug().
		Str("origin", item.Origin).
		Str("destination", destination).
		Bool("existed", existed).
		Msg("renamed file")

	if existed {
		return Result{Item: item, Outcome: OutcomeOverwritten}
	}
	return Result{Item: item, Outcome: OutcomeNew}
}

func copyContents(origin, destination string, perm os.FileMode) error {
	in, err := os.Open(origin)
	if err != nil {
		return errors.Errorf("opening origin: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
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
	return nil
}

func failed(ctx context.Context, item plan.Item, err error) Result {
	zerolog.Ctx(ctx).Debug().Str("file", item.Name).Err(err).Msg("file operation failed")
	return Result{Item: item, Outcome: OutcomeFailed, Err: err}
}

// 📊 Summary tallies a batch of results.
type Summary struct {
	New         int
	Overwritten int
	Failed      int
}

// Summarize counts results by outcome.
func Summarize(results []Result) Summary {
	var summary Summary
	for _, result := range results {
		switch result.Outcome {
		case OutcomeNew:
			summary.New++
		case OutcomeOverwritten:
			summary.Overwritten++
		case OutcomeFailed:
			summary.Failed++
		}
	}
	return summary
}

// Total returns how many results the summary covers.
func (s Summary) Total() int {
	return s.New + s.Overwritten + s.Failed
}

package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/pterm/pterm"
	"github.com/walteh/matchrc/pkg/match"
	"github.com/walteh/matchrc/pkg/rename"
	"gitlab.com/tozd/go/errors"
)

// The two fixed menu entries ahead of the candidate list.
const (
	pickKeep    = "[Keep automatic]"
	pickNoMatch = "[No match]"
)

// buildPickOptions renders a record's candidates as menu entries, best
// candidate first.
func buildPickOptions(idx *match.Index, record *match.SourceRecord) []string {
	options := []string{pickKeep, pickNoMatch}
	for _, candidate := range record.Candidates() {
		choice, ok := idx.Choice(candidate.Choice)
		if !ok {
			continue
		}
		options = append(options, fmt.Sprintf("[%05.2f%%] %s", candidate.Score*100, rename.Stem(choice.Name)))
	}
	return options
}

// applyPickSelection applies the menu entry at the given position to the
// record at src.
func applyPickSelection(idx *match.Index, src, position int) error {
	switch position {
	case 0:
		return idx.ResetOverride(src)
	case 1:
		return idx.SetOverrideNone(src)
	default:
		record := idx.Sources()[src]
		candidate := position - 2
		if candidate < 0 || candidate >= len(record.Candidates()) {
			return errors.Errorf("selection out of range")
		}
		return idx.SetOverride(src, record.Candidates()[candidate].Choice)
	}
}

// runInteractive walks every source and asks which candidate to pin.
func runInteractive(ctx context.Context, idx *match.Index) error {
	for i, record := range idx.Sources() {
		options := buildPickOptions(idx, record)

		selected, err := pterm.DefaultInteractiveSelect.
			WithOptions(options).
			WithDefaultText(record.File().Name).
			Show()
		if err != nil {
			return errors.Errorf("selecting match: %w", err)
		}

		if err := applyPickSelection(idx, i, slices.Index(options, selected)); err != nil {
			return err
		}
	}
	return nil
}

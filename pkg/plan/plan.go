// Package plan turns the current state of a match index into the ordered
// list of file operations a batch action would perform.
package plan

import (
	"strings"

	"github.com/walteh/matchrc/pkg/match"
	"github.com/walteh/matchrc/pkg/rename"
)

// Item is one pending file operation: the file at Origin should end up
// named Destination.
type Item struct {
	Origin      string // path of the file to act on
	Name        string // current name of that file
	Destination string // name it should get
	Matched     bool   // false for unmatched sources carried along unchanged
}

// Replacement rewrites a fragment of a destination name.
type Replacement struct {
	Old string
	New string
}

// Options control which records contribute to the plan and how their
// destination names are derived.
type Options struct {
	// Threshold is the minimum automatic score for a match to count.
	// Manual overrides are accepted regardless.
	Threshold float64
	// IncludeUnmatched carries unmatched sources along with their name
	// unchanged. It only applies when Side is rename.Sources.
	IncludeUnmatched bool
	// Side picks which side's files get acted on and which name donates
	// the extension.
	Side rename.Side
	// KeepExtension passes through to rename.Resolve.
	KeepExtension bool
	// Replacements are applied in order to matched destination names.
	// Unmatched names pass through untouched.
	Replacements []Replacement
}

// Build walks the index in source order and emits the plan. It never
// fails: records whose stored choice index no longer names a valid choice
// count as unmatched instead of erroring.
func Build(idx *match.Index, opts Options) []Item {
	items := make([]Item, 0, len(idx.Sources()))

	for _, record := range idx.Sources() {
		choice, ok := idx.Resolved(record)

		accepted := false
		if ok {
			score, scored := record.CurrentScore()
			accepted = !scored || score >= opts.Threshold
		}

		if accepted {
			destination := Destination(record.File().Name, choice.Name, opts)

			origin, name := record.File().Path, record.File().Name
			if opts.Side == rename.Choices {
				origin, name = choice.Path, choice.Name
			}
			items = append(items, Item{Origin: origin, Name: name, Destination: destination, Matched: true})
			continue
		}

		if opts.IncludeUnmatched && opts.Side == rename.Sources {
			items = append(items, Item{
				Origin:      record.File().Path,
				Name:        record.File().Name,
				Destination: record.File().Name,
			})
		}
	}

	return items
}

// Destination derives the name one matched pair would produce, with
// replacements applied.
func Destination(sourceName, choiceName string, opts Options) string {
	destination := rename.Resolve(sourceName, choiceName, rename.Options{
		KeepExtension: opts.KeepExtension,
		Side:          opts.Side,
	})
	return applyReplacements(destination, opts.Replacements)
}

func applyReplacements(name string, replacements []Replacement) string {
	for _, r := range replacements {
		if r.Old == "" {
			continue
		}
		name = strings.ReplaceAll(name, r.Old, r.New)
	}
	return name
}

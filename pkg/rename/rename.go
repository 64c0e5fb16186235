// Package rename derives output file names from matched name pairs.
//
// All functions are pure string transformations. The extension of a name is
// everything after the last '.', so "archive.tar.gz" has extension "gz" and
// a name without a '.' has no extension at all.
package rename

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Side identifies which half of a matched pair a file operation acts on.
// The side being acted on keeps its own extension while the other side
// donates the body of the new name.
type Side int

const (
	// Sources renames or copies the source files.
	Sources Side = iota
	// Choices renames or copies the choice files.
	Choices
)

// String returns the canonical lowercase name of the side.
func (s Side) String() string {
	if s == Choices {
		return "choices"
	}
	return "sources"
}

// ParseSide resolves a user-supplied name to a Side.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sources":
		return Sources, nil
	case "choices":
		return Choices, nil
	}
	return 0, errors.Errorf("unknown side %q, options: sources, choices", name)
}

// Stem returns the name with its extension suffix removed. A name without
// a '.' is returned unchanged, so Stem is idempotent on such names.
func Stem(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// Ext returns the extension suffix of the name without the leading '.',
// or the empty string when the name has none.
func Ext(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return ""
}

// Options control how Resolve assembles the output name.
type Options struct {
	// KeepExtension keeps the reference name whole instead of stripping
	// its extension before it becomes the body of the result.
	KeepExtension bool
	// Side picks which name is the original. The original keeps its own
	// extension; the other name supplies the body.
	Side Side
}

// Resolve derives the new name for the original file of a matched pair.
//
// The result is always "body.extension", so an original name without an
// extension produces a result with a trailing '.'. Callers that want to
// avoid the bare dot must inspect the original name themselves.
func Resolve(sourceName, choiceName string, opts Options) string {
	original, reference := sourceName, choiceName
	if opts.Side == Choices {
		original, reference = choiceName, sourceName
	}

	body := reference
	if !opts.KeepExtension {
		body = Stem(reference)
	}

	return body + "." + Ext(original)
}

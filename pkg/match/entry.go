// Package match pairs source files with the closest-named choice files.
//
// An Index owns one SourceRecord per source. Each record keeps a bounded
// list of scored candidates that is rebuilt whenever the choice list or the
// similarity algorithm changes. Manual overrides sit on top of the
// automatic pick and survive rescoring.
package match

import "path/filepath"

// Entry is one file taking part in matching, as a source or as a choice.
// Name is what gets scored; Path is carried along untouched so file
// operations can find the file later.
type Entry struct {
	Name string
	Path string
}

// NewEntry builds an entry from a filesystem path. The second result is
// false when the path yields no usable file name, such as "", ".", ".."
// or a bare separator; callers skip such paths instead of failing.
func NewEntry(path string) (Entry, bool) {
	name := filepath.Base(path)
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return Entry{}, false
	}
	return Entry{Name: name, Path: path}, true
}

package match

import (
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/matchrc/pkg/similarity"
)

// Index owns every source record plus the choice list they score against.
//
// It is not safe for concurrent use. Hosts drive it from a single goroutine
// and every call runs to completion before returning.
type Index struct {
	algorithm similarity.Algorithm
	sources   []*SourceRecord
	choices   []Entry
}

// NewIndex creates an empty index scoring with the given algorithm.
func NewIndex(alg similarity.Algorithm) *Index {
	return &Index{algorithm: alg}
}

// Algorithm returns the active similarity algorithm.
func (x *Index) Algorithm() similarity.Algorithm {
	return x.algorithm
}

// SetAlgorithm switches the similarity algorithm and rescores every record.
// Setting the algorithm already in use does nothing.
func (x *Index) SetAlgorithm(alg similarity.Algorithm) {
	if alg == x.algorithm {
		return
	}
	x.algorithm = alg
	x.rescoreAll()
}

// Sources returns the records in insertion order. Callers must not modify
// the returned slice.
func (x *Index) Sources() []*SourceRecord {
	return x.sources
}

// Choices returns the choice entries in insertion order. Callers must not
// modify the returned slice.
func (x *Index) Choices() []Entry {
	return x.choices
}

// Choice returns the choice at the given position. The second result is
// false when the position is out of range, which happens when an override
// kept pointing at a choice that is gone.
func (x *Index) Choice(i int) (Entry, bool) {
	if i < 0 || i >= len(x.choices) {
		return Entry{}, false
	}
	return x.choices[i], true
}

// Resolved returns the choice entry the record currently points at. The
// second result is false when the record resolves to no match or the stored
// index no longer names a valid choice.
func (x *Index) Resolved(r *SourceRecord) (Entry, bool) {
	i, ok := r.CurrentChoice()
	if !ok {
		return Entry{}, false
	}
	return x.Choice(i)
}

// AddSource adds one source entry and scores it against the current
// choices. Other records are not touched.
func (x *Index) AddSource(file Entry) {
	record := newSourceRecord(file)
	record.rescore(x.choices, x.algorithm)
	x.sources = append(x.sources, record)
}

// AddSources adds the entries in order.
func (x *Index) AddSources(files []Entry) {
	for _, file := range files {
		x.AddSource(file)
	}
}

// AddChoice adds one choice entry and rescores every record.
func (x *Index) AddChoice(file Entry) {
	x.choices = append(x.choices, file)
	x.rescoreAll()
}

// AddChoices adds the entries in order with a single rescore pass.
func (x *Index) AddChoices(files []Entry) {
	if len(files) == 0 {
		return
	}
	x.choices = append(x.choices, files...)
	x.rescoreAll()
}

// RemoveSource drops the record at the given position. Records after it
// shift down; their candidates and overrides are untouched because those
// reference choices, not sources.
func (x *Index) RemoveSource(i int) error {
	if i < 0 || i >= len(x.sources) {
		return errors.Errorf("source index %d out of range (%d sources)", i, len(x.sources))
	}
	x.sources = append(x.sources[:i], x.sources[i+1:]...)
	return nil
}

// ClearSources drops every source record.
func (x *Index) ClearSources() {
	x.sources = nil
}

// ClearChoices drops every choice and rescores all records down to empty
// candidate lists. Overrides are kept; ones that point at dropped choices
// resolve to no match from then on.
func (x *Index) ClearChoices() {
	x.choices = nil
	x.rescoreAll()
}

// SetOverride forces the record at position src to the choice at position
// choice.
func (x *Index) SetOverride(src, choice int) error {
	record, err := x.source(src)
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(x.choices) {
		return errors.Errorf("choice index %d out of range (%d choices)", choice, len(x.choices))
	}
	record.override = overrideChoice
	record.choice = choice
	return nil
}

// SetOverrideNone marks the record at position src as having no match,
// ignoring its candidates.
func (x *Index) SetOverrideNone(src int) error {
	record, err := x.source(src)
	if err != nil {
		return err
	}
	record.override = overrideNone
	record.choice = 0
	return nil
}

// ResetOverride returns the record at position src to the automatic pick.
func (x *Index) ResetOverride(src int) error {
	record, err := x.source(src)
	if err != nil {
		return err
	}
	record.override = overrideUnset
	record.choice = 0
	return nil
}

func (x *Index) source(i int) (*SourceRecord, error) {
	if i < 0 || i >= len(x.sources) {
		return nil, errors.Errorf("source index %d out of range (%d sources)", i, len(x.sources))
	}
	return x.sources[i], nil
}

// rescoreAll re-sorts the records by source name, then rebuilds every
// candidate list. The sort is stable so duplicate names keep insertion
// order.
func (x *Index) rescoreAll() {
	sort.SliceStable(x.sources, func(a, b int) bool {
		return x.sources[a].file.Name < x.sources[b].file.Name
	})
	for _, record := range x.sources {
		record.rescore(x.choices, x.algorithm)
	}
}

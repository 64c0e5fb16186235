package match

import (
	"sort"

	"github.com/walteh/matchrc/pkg/rename"
	"github.com/walteh/matchrc/pkg/similarity"
)

// MaxCandidates caps how many scored choices a source record keeps.
const MaxCandidates = 10

// Candidate pairs a choice (by position in the index's choice list) with
// the similarity score it reached at the last rescore.
type Candidate struct {
	Choice int
	Score  float64
}

type overrideState int

const (
	overrideUnset overrideState = iota
	overrideChoice
	overrideNone
)

// SourceRecord tracks one source entry and its standing against the
// current choice list.
type SourceRecord struct {
	file       Entry
	candidates []Candidate
	override   overrideState
	choice     int // valid only when override == overrideChoice
}

func newSourceRecord(file Entry) *SourceRecord {
	return &SourceRecord{file: file}
}

// File returns the source entry this record tracks.
func (r *SourceRecord) File() Entry {
	return r.file
}

// Candidates returns the scored choices, best first. Callers must not
// modify the returned slice.
func (r *SourceRecord) Candidates() []Candidate {
	return r.candidates
}

// Overridden reports whether a manual decision replaces the automatic pick.
func (r *SourceRecord) Overridden() bool {
	return r.override != overrideUnset
}

// CurrentChoice returns the choice index the record resolves to. The second
// result is false when the record resolves to no match, either because the
// user said so or because no candidates exist.
func (r *SourceRecord) CurrentChoice() (int, bool) {
	switch r.override {
	case overrideChoice:
		return r.choice, true
	case overrideNone:
		return 0, false
	}
	if len(r.candidates) == 0 {
		return 0, false
	}
	return r.candidates[0].Choice, true
}

// CurrentScore returns the automatic score of the record. The second result
// is false when a manual override is set: overridden records have no
// automatic score even if the picked choice also appears in the candidate
// list. Without candidates the score is 0.
func (r *SourceRecord) CurrentScore() (float64, bool) {
	if r.override != overrideUnset {
		return 0, false
	}
	if len(r.candidates) == 0 {
		return 0, true
	}
	return r.candidates[0].Score, true
}

// rescore rebuilds the candidate list against the given choices.
//
// A fixed buffer of MaxCandidates slots starts below any real score. Each
// choice displaces the lowest slot that scores strictly below it, an
// O(len(choices)*MaxCandidates) scan that never sorts the full choice list.
// Ties at the cutoff keep the earlier choice. Surviving slots are sorted
// descending by score; the sort is stable so equal scores stay in buffer
// order, which for fewer than MaxCandidates choices is insertion order.
func (r *SourceRecord) rescore(choices []Entry, alg similarity.Algorithm) {
	var buffer [MaxCandidates]Candidate
	for i := range buffer {
		buffer[i] = Candidate{Score: -1}
	}

	base := rename.Stem(r.file.Name)
	for i, choice := range choices {
		score := alg.Compare(base, rename.Stem(choice.Name))

		lowest := -1
		lowestScore := score
		for j, slot := range buffer {
			if slot.Score < lowestScore {
				lowest = j
				lowestScore = slot.Score
			}
		}
		if lowest >= 0 {
			buffer[lowest] = Candidate{Choice: i, Score: score}
		}
	}

	candidates := make([]Candidate, 0, MaxCandidates)
	for _, slot := range buffer {
		if slot.Score >= 0 {
			candidates = append(candidates, slot)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})

	r.candidates = candidates
}

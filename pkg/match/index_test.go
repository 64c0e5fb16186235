package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/matchrc/pkg/rename"
	"github.com/walteh/matchrc/pkg/similarity"
)

func entries(names ...string) []Entry {
	list := make([]Entry, 0, len(names))
	for _, name := range names {
		list = append(list, Entry{Name: name, Path: "/tmp/" + name})
	}
	return list
}

func TestAddSourceScoresAgainstChoices(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddChoices(entries("unrelated.srt", "episode_01.srt", "other.srt"))
	idx.AddSource(Entry{Name: "episode_01.mkv", Path: "/src/episode_01.mkv"})

	records := idx.Sources()
	require.Len(t, records, 1, "one record per source")

	candidates := records[0].Candidates()
	require.NotEmpty(t, candidates, "record should have candidates")
	assert.Equal(t, 1, candidates[0].Choice, "exact stem match should rank first")
	assert.Equal(t, 1.0, candidates[0].Score, "identical stems score 1")
}

func TestScoresIgnoreExtensions(t *testing.T) {
	idx := NewIndex(similarity.Levenshtein)
	idx.AddChoices(entries("movie.srt"))
	idx.AddSource(Entry{Name: "movie.mkv"})

	candidates := idx.Sources()[0].Candidates()
	require.Len(t, candidates, 1)
	assert.Equal(t, 1.0, candidates[0].Score, "different extensions must not affect the score")
}

func TestCandidateListBounded(t *testing.T) {
	idx := NewIndex(similarity.Jaro)

	choices := make([]Entry, 0, 25)
	for i := 0; i < 25; i++ {
		choices = append(choices, Entry{Name: fmt.Sprintf("report %02d draft.txt", i)})
	}
	idx.AddChoices(choices)
	idx.AddSource(Entry{Name: "report 07 final.txt"})

	record := idx.Sources()[0]
	candidates := record.Candidates()
	require.Len(t, candidates, MaxCandidates, "candidate list caps at %d", MaxCandidates)

	for i, c := range candidates {
		assert.GreaterOrEqual(t, c.Score, 0.0, "score below range")
		assert.LessOrEqual(t, c.Score, 1.0, "score above range")
		if i > 0 {
			assert.GreaterOrEqual(t, candidates[i-1].Score, c.Score, "candidates must be sorted descending")
		}
	}

	// No excluded choice may outscore a kept one.
	kept := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		kept[c.Choice] = true
	}
	lowestKept := candidates[len(candidates)-1].Score
	base := rename.Stem(record.File().Name)
	for i, choice := range idx.Choices() {
		if kept[i] {
			continue
		}
		excluded := similarity.Jaro.Compare(base, rename.Stem(choice.Name))
		assert.GreaterOrEqual(t, lowestKept, excluded, "choice %d outscores a kept candidate", i)
	}
}

func TestFewerChoicesThanCap(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddChoices(entries("alpha.txt", "beta.txt", "gamma.txt"))
	idx.AddSource(Entry{Name: "beta.mkv"})

	candidates := idx.Sources()[0].Candidates()
	require.Len(t, candidates, 3, "all choices kept when fewer than the cap")
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Score, candidates[i].Score, "candidates must be sorted descending")
	}
}

func TestEqualScoresKeepEarlierChoices(t *testing.T) {
	idx := NewIndex(similarity.Jaro)

	// Eleven identical names: every choice scores 1 against the source.
	choices := make([]Entry, 0, MaxCandidates+1)
	for i := 0; i <= MaxCandidates; i++ {
		choices = append(choices, Entry{Name: "same.txt", Path: fmt.Sprintf("/c/%d", i)})
	}
	idx.AddChoices(choices)
	idx.AddSource(Entry{Name: "same.mkv"})

	candidates := idx.Sources()[0].Candidates()
	require.Len(t, candidates, MaxCandidates)
	for i, c := range candidates {
		assert.Equal(t, i, c.Choice, "ties must keep the earliest choices in insertion order")
	}
}

func TestCurrentChoiceAndScore(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, idx *Index)
		wantChoice int
		wantMatch  bool
		wantScore  float64
		wantScored bool
	}{
		{
			name:       "automatic_pick_uses_best_candidate",
			setup:      func(t *testing.T, idx *Index) {},
			wantChoice: 1,
			wantMatch:  true,
			wantScore:  1.0,
			wantScored: true,
		},
		{
			name: "override_reports_choice_without_score",
			setup: func(t *testing.T, idx *Index) {
				require.NoError(t, idx.SetOverride(0, 2))
			},
			wantChoice: 2,
			wantMatch:  true,
			wantScored: false,
		},
		{
			name: "override_none_reports_no_match",
			setup: func(t *testing.T, idx *Index) {
				require.NoError(t, idx.SetOverrideNone(0))
			},
			wantMatch:  false,
			wantScored: false,
		},
		{
			name: "reset_restores_automatic_pick",
			setup: func(t *testing.T, idx *Index) {
				require.NoError(t, idx.SetOverrideNone(0))
				require.NoError(t, idx.ResetOverride(0))
			},
			wantChoice: 1,
			wantMatch:  true,
			wantScore:  1.0,
			wantScored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewIndex(similarity.Jaro)
			idx.AddChoices(entries("zzzz.srt", "pilot.srt", "qqqq.srt"))
			idx.AddSource(Entry{Name: "pilot.mkv"})
			tt.setup(t, idx)

			record := idx.Sources()[0]
			choice, ok := record.CurrentChoice()
			assert.Equal(t, tt.wantMatch, ok, "match presence mismatch")
			if tt.wantMatch {
				assert.Equal(t, tt.wantChoice, choice, "choice mismatch")
			}

			score, scored := record.CurrentScore()
			assert.Equal(t, tt.wantScored, scored, "score presence mismatch")
			if tt.wantScored {
				assert.Equal(t, tt.wantScore, score, "score mismatch")
			}
		})
	}
}

func TestCurrentScoreZeroWithoutCandidates(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddSource(Entry{Name: "alone.mkv"})

	record := idx.Sources()[0]
	_, ok := record.CurrentChoice()
	assert.False(t, ok, "no choices means no match")

	score, scored := record.CurrentScore()
	assert.True(t, scored, "automatic records always have a score")
	assert.Equal(t, 0.0, score, "score defaults to zero without candidates")
}

func TestOverrideValidation(t *testing.T) {
	tests := []struct {
		name        string
		run         func(idx *Index) error
		errContains string
	}{
		{
			name:        "override_source_out_of_range",
			run:         func(idx *Index) error { return idx.SetOverride(5, 0) },
			errContains: "source index 5 out of range",
		},
		{
			name:        "override_choice_out_of_range",
			run:         func(idx *Index) error { return idx.SetOverride(0, 9) },
			errContains: "choice index 9 out of range",
		},
		{
			name:        "override_negative_choice",
			run:         func(idx *Index) error { return idx.SetOverride(0, -1) },
			errContains: "choice index -1 out of range",
		},
		{
			name:        "override_none_source_out_of_range",
			run:         func(idx *Index) error { return idx.SetOverrideNone(-1) },
			errContains: "source index -1 out of range",
		},
		{
			name:        "reset_source_out_of_range",
			run:         func(idx *Index) error { return idx.ResetOverride(3) },
			errContains: "source index 3 out of range",
		},
		{
			name:        "remove_source_out_of_range",
			run:         func(idx *Index) error { return idx.RemoveSource(7) },
			errContains: "source index 7 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewIndex(similarity.Jaro)
			idx.AddChoices(entries("a.txt", "b.txt"))
			idx.AddSource(Entry{Name: "a.mkv"})

			err := tt.run(idx)
			require.Error(t, err, "expected a bounds error")
			assert.Contains(t, err.Error(), tt.errContains, "error should name the bad index")
		})
	}
}

func TestRemoveSourceLeavesOthersUntouched(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddChoices(entries("one.srt", "two.srt", "three.srt"))
	idx.AddSources(entries("one.mkv", "two.mkv", "three.mkv"))
	require.NoError(t, idx.SetOverride(2, 0))

	first := idx.Sources()[0]
	third := idx.Sources()[2]
	firstCandidates := append([]Candidate(nil), first.Candidates()...)
	thirdCandidates := append([]Candidate(nil), third.Candidates()...)

	require.NoError(t, idx.RemoveSource(1))

	records := idx.Sources()
	require.Len(t, records, 2, "one record removed")
	assert.Same(t, first, records[0], "surviving records keep their identity")
	assert.Same(t, third, records[1], "surviving records keep their identity")
	assert.Equal(t, firstCandidates, records[0].Candidates(), "candidates must not change")
	assert.Equal(t, thirdCandidates, records[1].Candidates(), "candidates must not change")
	assert.True(t, records[1].Overridden(), "override must survive removal of another source")

	choice, ok := records[1].CurrentChoice()
	require.True(t, ok)
	assert.Equal(t, 0, choice, "override target must not shift")
}

func TestAddChoiceRescoresExistingSources(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddSource(Entry{Name: "pilot.mkv"})
	require.Empty(t, idx.Sources()[0].Candidates(), "no choices yet")

	idx.AddChoice(Entry{Name: "zzzz.srt"})
	candidates := idx.Sources()[0].Candidates()
	require.Len(t, candidates, 1)
	assert.Equal(t, 0, candidates[0].Choice)

	idx.AddChoice(Entry{Name: "pilot.srt"})
	candidates = idx.Sources()[0].Candidates()
	require.Len(t, candidates, 2)
	assert.Equal(t, 1, candidates[0].Choice, "new exact match should take the lead")
	assert.Equal(t, 1.0, candidates[0].Score)
}

func TestSetAlgorithmRescores(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddChoices(entries("marhta.srt"))
	idx.AddSource(Entry{Name: "martha.mkv"})

	jaroScore := idx.Sources()[0].Candidates()[0].Score
	assert.InDelta(t, 0.944444, jaroScore, 0.0001)

	idx.SetAlgorithm(similarity.Levenshtein)
	assert.Equal(t, similarity.Levenshtein, idx.Algorithm())

	levScore := idx.Sources()[0].Candidates()[0].Score
	assert.InDelta(t, 0.666666, levScore, 0.0001, "levenshtein should rescore the pair")
	assert.Len(t, idx.Sources(), 1, "sources must not change size")
	assert.Len(t, idx.Choices(), 1, "choices must not change size")

	// Re-setting the same algorithm must not rebuild anything.
	before := idx.Sources()[0].Candidates()
	idx.SetAlgorithm(similarity.Levenshtein)
	after := idx.Sources()[0].Candidates()
	assert.Equal(t, before, after, "same algorithm should leave candidates alone")
}

func TestClearChoicesKeepsOverrides(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddChoices(entries("a.srt", "b.srt", "c.srt"))
	idx.AddSources(entries("a.mkv", "b.mkv"))
	require.NoError(t, idx.SetOverride(0, 2))

	idx.ClearChoices()

	assert.Empty(t, idx.Choices(), "choices cleared")
	for _, record := range idx.Sources() {
		assert.Empty(t, record.Candidates(), "candidates must empty out with the choices")
	}
	assert.True(t, idx.Sources()[0].Overridden(), "override survives clearing choices")

	// The override still names choice 2, but that choice is gone.
	choice, ok := idx.Sources()[0].CurrentChoice()
	assert.True(t, ok)
	assert.Equal(t, 2, choice)
	_, ok = idx.Resolved(idx.Sources()[0])
	assert.False(t, ok, "stale override must resolve to no match, not panic")
}

func TestStaleOverrideAfterSmallerReload(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddChoices(entries("a.srt", "b.srt", "c.srt"))
	idx.AddSource(Entry{Name: "a.mkv"})
	require.NoError(t, idx.SetOverride(0, 2))

	idx.ClearChoices()
	idx.AddChoices(entries("only.srt"))

	_, ok := idx.Resolved(idx.Sources()[0])
	assert.False(t, ok, "override index beyond the new choice list is no match")

	entry, ok := idx.Choice(0)
	require.True(t, ok)
	assert.Equal(t, "only.srt", entry.Name)
}

func TestFullRescoreSortsSourcesByName(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddSources(entries("cc.mkv", "aa.mkv", "bb.mkv"))
	require.NoError(t, idx.SetOverrideNone(1)) // aa.mkv, currently at position 1

	// Adding sources alone never resorts.
	names := func() []string {
		out := make([]string, 0, len(idx.Sources()))
		for _, record := range idx.Sources() {
			out = append(out, record.File().Name)
		}
		return out
	}
	assert.Equal(t, []string{"cc.mkv", "aa.mkv", "bb.mkv"}, names(), "insertion order until a full rescore")

	idx.AddChoice(Entry{Name: "aa.srt"})
	assert.Equal(t, []string{"aa.mkv", "bb.mkv", "cc.mkv"}, names(), "full rescore sorts sources by name")

	// The override travels with its record through the sort.
	assert.True(t, idx.Sources()[0].Overridden(), "override must follow the record, not the position")
	assert.False(t, idx.Sources()[1].Overridden())
	assert.False(t, idx.Sources()[2].Overridden())
}

func TestClearSources(t *testing.T) {
	idx := NewIndex(similarity.Jaro)
	idx.AddChoices(entries("a.srt"))
	idx.AddSources(entries("a.mkv", "b.mkv"))

	idx.ClearSources()
	assert.Empty(t, idx.Sources(), "sources cleared")
	assert.Len(t, idx.Choices(), 1, "choices untouched")

	idx.AddSource(Entry{Name: "c.mkv"})
	assert.Len(t, idx.Sources(), 1, "index stays usable after clearing")
}

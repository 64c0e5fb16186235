package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/matchrc/pkg/match"
	"github.com/walteh/matchrc/pkg/rename"
	"github.com/walteh/matchrc/pkg/similarity"
)

func newIndex(t *testing.T, sources, choices []match.Entry) *match.Index {
	t.Helper()
	idx := match.NewIndex(similarity.Jaro)
	idx.AddChoices(choices)
	idx.AddSources(sources)
	return idx
}

func TestBuildAcceptsScoresAtOrAboveThreshold(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{{Name: "pilot.mkv", Path: "/src/pilot.mkv"}},
		[]match.Entry{{Name: "pilot.srt", Path: "/ref/pilot.srt"}},
	)

	items := Build(idx, Options{Threshold: 0.7, Side: rename.Sources})
	require.Len(t, items, 1, "exact stem match clears any threshold")
	assert.Equal(t, "/src/pilot.mkv", items[0].Origin)
	assert.Equal(t, "pilot.mkv", items[0].Name)
	assert.Equal(t, "pilot.mkv", items[0].Destination)
	assert.True(t, items[0].Matched)
}

func TestBuildExcludesBelowThreshold(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{{Name: "aaaa.mkv", Path: "/src/aaaa.mkv"}},
		[]match.Entry{{Name: "zzzz.srt", Path: "/ref/zzzz.srt"}},
	)

	items := Build(idx, Options{Threshold: 0.7, Side: rename.Sources})
	assert.Empty(t, items, "a zero score must not pass a 0.7 threshold")
}

func TestBuildCarriesUnmatchedSourcesUnchanged(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{{Name: "aaaa.mkv", Path: "/src/aaaa.mkv"}},
		[]match.Entry{{Name: "zzzz.srt", Path: "/ref/zzzz.srt"}},
	)

	items := Build(idx, Options{Threshold: 0.7, IncludeUnmatched: true, Side: rename.Sources})
	require.Len(t, items, 1, "unmatched source should be carried along")
	assert.Equal(t, "/src/aaaa.mkv", items[0].Origin)
	assert.Equal(t, "aaaa.mkv", items[0].Destination, "carried sources keep their name")
	assert.False(t, items[0].Matched)
}

func TestBuildNeverCarriesUnmatchedForChoices(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{{Name: "aaaa.mkv", Path: "/src/aaaa.mkv"}},
		[]match.Entry{{Name: "zzzz.srt", Path: "/ref/zzzz.srt"}},
	)

	items := Build(idx, Options{Threshold: 0.7, IncludeUnmatched: true, Side: rename.Choices})
	assert.Empty(t, items, "carrying unmatched entries only makes sense for sources")
}

func TestBuildAcceptsOverrideRegardlessOfScore(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{{Name: "aaaa.mkv", Path: "/src/aaaa.mkv"}},
		[]match.Entry{{Name: "zzzz.srt", Path: "/ref/zzzz.srt"}},
	)
	require.NoError(t, idx.SetOverride(0, 0))

	items := Build(idx, Options{Threshold: 0.99, Side: rename.Sources})
	require.Len(t, items, 1, "an explicit override bypasses the threshold")
	assert.Equal(t, "zzzz.mkv", items[0].Destination)
	assert.True(t, items[0].Matched)
}

func TestBuildSkipsOverrideNone(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{{Name: "pilot.mkv", Path: "/src/pilot.mkv"}},
		[]match.Entry{{Name: "pilot.srt", Path: "/ref/pilot.srt"}},
	)
	require.NoError(t, idx.SetOverrideNone(0))

	items := Build(idx, Options{Threshold: 0.1, Side: rename.Sources})
	assert.Empty(t, items, "declared non-matches stay out of the plan")

	items = Build(idx, Options{Threshold: 0.1, IncludeUnmatched: true, Side: rename.Sources})
	require.Len(t, items, 1, "declared non-matches still ride along when asked")
	assert.Equal(t, "pilot.mkv", items[0].Destination)
	assert.False(t, items[0].Matched)
}

func TestBuildTreatsStaleOverrideAsUnmatched(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{{Name: "pilot.mkv", Path: "/src/pilot.mkv"}},
		[]match.Entry{{Name: "a.srt", Path: "/ref/a.srt"}, {Name: "b.srt", Path: "/ref/b.srt"}},
	)
	require.NoError(t, idx.SetOverride(0, 1))
	idx.ClearChoices()
	idx.AddChoices([]match.Entry{{Name: "only.srt", Path: "/ref/only.srt"}})

	items := Build(idx, Options{Threshold: 0, Side: rename.Sources})
	assert.Empty(t, items, "stale override index means no match, never a crash")

	items = Build(idx, Options{Threshold: 0, IncludeUnmatched: true, Side: rename.Sources})
	require.Len(t, items, 1)
	assert.False(t, items[0].Matched)
}

func TestBuildTargetsChoiceFiles(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{{Name: "photo.png", Path: "/src/photo.png"}},
		[]match.Entry{{Name: "cover.jpg", Path: "/ref/cover.jpg"}},
	)
	require.NoError(t, idx.SetOverride(0, 0))

	items := Build(idx, Options{Threshold: 0.7, Side: rename.Choices})
	require.Len(t, items, 1)
	assert.Equal(t, "/ref/cover.jpg", items[0].Origin, "choices side acts on the choice file")
	assert.Equal(t, "cover.jpg", items[0].Name)
	assert.Equal(t, "photo.jpg", items[0].Destination, "choice keeps its extension, source donates the body")
}

func TestBuildAppliesReplacementsToMatchedOnly(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{
			{Name: "ep1.mkv", Path: "/src/ep1.mkv"},
			{Name: "stray [draft].mkv", Path: "/src/stray [draft].mkv"},
		},
		[]match.Entry{{Name: "Episode 1 [draft].srt", Path: "/ref/e1.srt"}},
	)
	require.NoError(t, idx.SetOverride(0, 0))
	require.NoError(t, idx.SetOverrideNone(1))

	items := Build(idx, Options{
		Threshold:        0.7,
		IncludeUnmatched: true,
		Side:             rename.Sources,
		Replacements:     []Replacement{{Old: " [draft]", New: ""}},
	})
	require.Len(t, items, 2)
	assert.Equal(t, "Episode 1.mkv", items[0].Destination, "replacement applies to the resolved name")
	assert.Equal(t, "stray [draft].mkv", items[1].Destination, "carried names pass through untouched")
}

func TestBuildKeepsSourceOrder(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{
			{Name: "b.mkv", Path: "/src/b.mkv"},
			{Name: "zzzz.mkv", Path: "/src/zzzz.mkv"},
			{Name: "a.mkv", Path: "/src/a.mkv"},
		},
		[]match.Entry{
			{Name: "a.srt", Path: "/ref/a.srt"},
			{Name: "b.srt", Path: "/ref/b.srt"},
		},
	)

	items := Build(idx, Options{Threshold: 0.7, IncludeUnmatched: true, Side: rename.Sources})
	require.Len(t, items, 3)
	assert.Equal(t, "b.mkv", items[0].Name, "plan order follows source order")
	assert.Equal(t, "zzzz.mkv", items[1].Name)
	assert.Equal(t, "a.mkv", items[2].Name)
	assert.False(t, items[1].Matched, "the middle source has no plausible match")
}

func TestBuildEmptyReplacementOldIsIgnored(t *testing.T) {
	idx := newIndex(t,
		[]match.Entry{{Name: "pilot.mkv", Path: "/src/pilot.mkv"}},
		[]match.Entry{{Name: "pilot.srt", Path: "/ref/pilot.srt"}},
	)

	items := Build(idx, Options{
		Threshold:    0.5,
		Side:         rename.Sources,
		Replacements: []Replacement{{Old: "", New: "x"}},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "pilot.mkv", items[0].Destination, "empty patterns must not mangle the name")
}

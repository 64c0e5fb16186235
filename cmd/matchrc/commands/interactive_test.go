package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/matchrc/pkg/match"
	"github.com/walteh/matchrc/pkg/similarity"
)

func TestBuildPickOptions(t *testing.T) {
	alg, err := similarity.ParseAlgorithm("jaro")
	require.NoError(t, err, "parsing algorithm should succeed")

	idx := match.NewIndex(alg)
	idx.AddChoices([]match.Entry{
		{Name: "Episode 1 - Pilot.txt", Path: "names/Episode 1 - Pilot.txt"},
		{Name: "Unrelated.txt", Path: "names/Unrelated.txt"},
	})
	idx.AddSources([]match.Entry{
		{Name: "Episode 1 - Pilot.mkv", Path: "videos/Episode 1 - Pilot.mkv"},
	})

	record := idx.Sources()[0]
	options := buildPickOptions(idx, record)

	require.Len(t, options, 2+len(record.Candidates()), "menu should hold both fixed entries plus one per candidate")
	assert.Equal(t, pickKeep, options[0], "first entry keeps the automatic match")
	assert.Equal(t, pickNoMatch, options[1], "second entry excludes the source")
	assert.Equal(t, "[100.00%] Episode 1 - Pilot", options[2], "identical stems should score a full match")
}

func TestApplyPickSelection(t *testing.T) {
	tests := []struct {
		name        string
		position    int
		wantErr     bool
		errContains string
		check       func(t *testing.T, idx *match.Index)
	}{
		{
			name:     "keep_automatic_resets_override",
			position: 0,
			check: func(t *testing.T, idx *match.Index) {
				assert.False(t, idx.Sources()[0].Overridden(), "record should follow the automatic match again")
			},
		},
		{
			name:     "no_match_excludes_source",
			position: 1,
			check: func(t *testing.T, idx *match.Index) {
				record := idx.Sources()[0]
				require.True(t, record.Overridden(), "record should be overridden")

				_, ok := record.CurrentChoice()
				assert.False(t, ok, "excluded source should have no choice")
			},
		},
		{
			name:     "candidate_pins_choice",
			position: 2,
			check: func(t *testing.T, idx *match.Index) {
				record := idx.Sources()[0]
				require.True(t, record.Overridden(), "record should be overridden")

				choice, ok := record.CurrentChoice()
				require.True(t, ok, "pinned record should carry a choice")
				assert.Equal(t, record.Candidates()[0].Choice, choice, "choice should be the first candidate")
			},
		},
		{
			name:        "position_past_candidates",
			position:    99,
			wantErr:     true,
			errContains: "selection out of range",
		},
		{
			name:        "position_not_found",
			position:    -1,
			wantErr:     true,
			errContains: "selection out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := newTestIndex(t)

			// Start every case from a pinned state so resets are visible
			require.NoError(t, idx.SetOverride(0, 1), "pinning the record should succeed")

			err := applyPickSelection(idx, 0, tt.position)
			if tt.wantErr {
				require.Error(t, err, "applyPickSelection should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "applyPickSelection should succeed")
			if tt.check != nil {
				tt.check(t, idx)
			}
		})
	}
}

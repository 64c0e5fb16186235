package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEntry(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantName string
		wantOK   bool
	}{
		{
			name:     "plain_file",
			path:     "/videos/episode_01.mkv",
			wantName: "episode_01.mkv",
			wantOK:   true,
		},
		{
			name:     "relative_file",
			path:     "episode_01.mkv",
			wantName: "episode_01.mkv",
			wantOK:   true,
		},
		{
			name:     "trailing_separator_uses_last_element",
			path:     "/videos/season1/",
			wantName: "season1",
			wantOK:   true,
		},
		{
			name:   "empty_path",
			path:   "",
			wantOK: false,
		},
		{
			name:   "dot",
			path:   ".",
			wantOK: false,
		},
		{
			name:   "dot_dot",
			path:   "/videos/..",
			wantOK: false,
		},
		{
			name:   "root",
			path:   "/",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := NewEntry(tt.path)
			assert.Equal(t, tt.wantOK, ok, "acceptance mismatch")
			if tt.wantOK {
				assert.Equal(t, tt.wantName, entry.Name, "name mismatch")
				assert.Equal(t, tt.path, entry.Path, "path must be kept as given")
			}
		})
	}
}

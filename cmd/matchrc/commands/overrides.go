package commands

import (
	"strings"

	"github.com/walteh/matchrc/pkg/match"
	"gitlab.com/tozd/go/errors"
)

// parseOverride splits one --override value into its source and choice
// names.
func parseOverride(value string) (source, choice string, err error) {
	source, choice, ok := strings.Cut(value, "=")
	if !ok || source == "" || choice == "" {
		return "", "", errors.Errorf(`invalid override %q, want "source=choice"`, value)
	}
	return source, choice, nil
}

// applyOverrides pins the matches named by --override and excludes the
// sources named by --no-match. Names resolve to the first entry that
// carries them.
func applyOverrides(idx *match.Index, overrides, noMatches []string) error {
	for _, value := range overrides {
		sourceName, choiceName, err := parseOverride(value)
		if err != nil {
			return err
		}

		src, ok := findRecord(idx.Sources(), sourceName)
		if !ok {
			return errors.Errorf("override source %q not found", sourceName)
		}
		choice, ok := findEntry(idx.Choices(), choiceName)
		if !ok {
			return errors.Errorf("override choice %q not found", choiceName)
		}

		if err := idx.SetOverride(src, choice); err != nil {
			return err
		}
	}

	for _, name := range noMatches {
		src, ok := findRecord(idx.Sources(), name)
		if !ok {
			return errors.Errorf("no-match source %q not found", name)
		}
		if err := idx.SetOverrideNone(src); err != nil {
			return err
		}
	}

	return nil
}

func findRecord(records []*match.SourceRecord, name string) (int, bool) {
	for i, record := range records {
		if record.File().Name == name {
			return i, true
		}
	}
	return 0, false
}

func findEntry(entries []match.Entry, name string) (int, bool) {
	for i, entry := range entries {
		if entry.Name == name {
			return i, true
		}
	}
	return 0, false
}

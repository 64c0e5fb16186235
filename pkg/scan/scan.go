// Package scan enumerates local files into match entries.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/matchrc/pkg/match"
)

// Result holds the usable entries of one enumeration pass. Skipped counts
// entries that could not participate: unusable names, unreadable or
// non-regular files. Entries excluded by an ignore pattern are not
// counted, the caller asked for those to disappear.
type Result struct {
	Entries []match.Entry
	Skipped int
}

// Dir lists the regular files directly inside dir, in name order. It does
// not recurse. Ignore patterns are doublestar globs matched against the
// bare file name.
func Dir(ctx context.Context, dir string, ignore []string) (Result, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, errors.Errorf("reading directory %s: %w", dir, err)
	}

	var result Result
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		name := dirEntry.Name()
		if shouldIgnore(name, ignore) {
			zerolog.Ctx(ctx).Debug().Str("file", name).Msg("ignoring file")
			continue
		}
		if !regular(ctx, dirEntry, filepath.Join(dir, name)) {
			result.Skipped++
			continue
		}
		entry, ok := match.NewEntry(filepath.Join(dir, name))
		if !ok {
			result.Skipped++
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	zerolog.Ctx(ctx).Debug().
		Str("dir", dir).
		Int("entries", len(result.Entries)).
		Int("skipped", result.Skipped).
		Msg("scanned directory")

	return result, nil
}

// Files builds entries from explicit file paths, sorted by name. Paths
// that cannot be used (missing, not a regular file, no usable name) are
// counted in Skipped rather than failing the whole call.
func Files(ctx context.Context, paths []string) Result {
	var result Result
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("path", path).Err(err).Msg("skipping unreadable path")
			result.Skipped++
			continue
		}
		if !info.Mode().IsRegular() {
			result.Skipped++
			continue
		}
		entry, ok := match.NewEntry(path)
		if !ok {
			result.Skipped++
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	sort.SliceStable(result.Entries, func(a, b int) bool {
		return result.Entries[a].Name < result.Entries[b].Name
	})

	return result
}

// regular reports whether the entry is a regular file, following one
// level of symlink.
func regular(ctx context.Context, dirEntry fs.DirEntry, path string) bool {
	mode := dirEntry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Str("path", path).Err(err).Msg("skipping broken symlink")
		return false
	}
	return info.Mode().IsRegular()
}

func shouldIgnore(name string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err == nil && matched {
			return true
		}
	}
	return false
}

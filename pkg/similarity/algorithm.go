// Package similarity scores how close two file names are to each other.
//
// Scores are normalized to [0, 1] where 1 means the names are identical.
// The zero value of Algorithm is Jaro, which is also the default used
// elsewhere in matchrc.
package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"
)

// Algorithm selects the string metric used to score a pair of names.
type Algorithm int

const (
	Jaro Algorithm = iota
	JaroWinkler
	Levenshtein
	DamerauLevenshtein
	DiffRatio
)

// algorithmNames is ordered so help text and error messages stay stable.
var algorithmNames = []struct {
	alg  Algorithm
	name string
}{
	{Jaro, "jaro"},
	{JaroWinkler, "jaro-winkler"},
	{Levenshtein, "levenshtein"},
	{DamerauLevenshtein, "damerau-levenshtein"},
	{DiffRatio, "diff-ratio"},
}

// String returns the canonical lowercase name of the algorithm.
func (a Algorithm) String() string {
	for _, entry := range algorithmNames {
		if entry.alg == a {
			return entry.name
		}
	}
	return "unknown"
}

// Algorithms returns all supported algorithms in display order.
func Algorithms() []Algorithm {
	algs := make([]Algorithm, 0, len(algorithmNames))
	for _, entry := range algorithmNames {
		algs = append(algs, entry.alg)
	}
	return algs
}

// Names returns the canonical names of all supported algorithms.
func Names() []string {
	names := make([]string, 0, len(algorithmNames))
	for _, entry := range algorithmNames {
		names = append(names, entry.name)
	}
	return names
}

// ParseAlgorithm resolves a user-supplied name to an Algorithm. Matching is
// case-insensitive and accepts underscores in place of hyphens.
func ParseAlgorithm(name string) (Algorithm, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, entry := range algorithmNames {
		if entry.name == normalized {
			return entry.alg, nil
		}
	}
	return 0, errors.Errorf("unknown algorithm %q, options: %s", name, strings.Join(Names(), ", "))
}

// edlibAlgorithm maps to the constant the edlib library expects.
func (a Algorithm) edlibAlgorithm() edlib.Algorithm {
	switch a {
	case JaroWinkler:
		return edlib.JaroWinkler
	case Levenshtein:
		return edlib.Levenshtein
	case DamerauLevenshtein:
		return edlib.DamerauLevenshtein
	default:
		return edlib.Jaro
	}
}

// Compare scores the similarity of two names in [0, 1].
//
// Identical names always score 1, including two empty strings. Comparing
// any other name against the empty string scores 0.
func (a Algorithm) Compare(s1, s2 string) float64 {
	if s1 == s2 {
		return 1
	}
	if a == DiffRatio {
		return diffRatio(s1, s2)
	}
	score, err := edlib.StringsSimilarity(s1, s2, a.edlibAlgorithm())
	if err != nil {
		// Only unmapped algorithm constants error, and every Algorithm
		// value maps above.
		return 0
	}
	return float64(score)
}

// diffRatio is twice the rune count the diff keeps unchanged, divided by
// the combined rune count of both names.
func diffRatio(s1, s2 string) float64 {
	total := utf8.RuneCountInString(s1) + utf8.RuneCountInString(s2)
	if total == 0 {
		return 1
	}
	dmp := diffmatchpatch.New()
	common := 0
	for _, diff := range dmp.DiffMain(s1, s2, false) {
		if diff.Type == diffmatchpatch.DiffEqual {
			common += utf8.RuneCountInString(diff.Text)
		}
	}
	return float64(2*common) / float64(total)
}

// Package similarity scores textual closeness between titles.
//
// The score blends normalized Levenshtein similarity with a rune-set
// overlap ratio. Pure edit distance alone punishes reorderings too hard
// ("Grow Your Business Fast" vs "Fast Business Growth"), while overlap
// alone misses near-identical phrasings; the blend catches both shapes of
// near-duplicate marketing titles.
package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Weights of the two blended measures.
const (
	editWeight    = 0.6
	overlapWeight = 0.4
)

// Match is the best-scoring result of comparing a candidate against a set
// of existing titles.
type Match struct {
	// Similar is true when Score reached the caller's threshold.
	Similar bool
	Score   float64
	// Text is the existing title that produced the maximum score.
	// Empty when the existing set was empty.
	Text string
}

// Score returns the similarity of two strings in [0,1].
// Comparison is case-insensitive and symmetric; identical strings after
// case folding score exactly 1.0.
func Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	return editWeight*editSimilarity(a, b) + overlapWeight*runeOverlap(a, b)
}

// MostSimilar scores the candidate against every existing title and returns
// the maximum, flagged against the threshold.
func MostSimilar(candidate string, existing []string, threshold float64) Match {
	best := Match{}
	for _, text := range existing {
		score := Score(candidate, text)
		if score > best.Score || best.Text == "" {
			best.Score = score
			best.Text = text
		}
	}
	best.Similar = best.Text != "" && best.Score >= threshold
	return best
}

// editSimilarity converts Levenshtein distance into a [0,1] similarity,
// normalized by the longer string's rune length.
func editSimilarity(a, b string) float64 {
	dist := levenshtein.ComputeDistance(a, b)
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(dist)/float64(longest)
}

// runeOverlap is the Dice coefficient over the distinct rune sets of both
// strings, ignoring spaces. Disjoint character sets score 0.
func runeOverlap(a, b string) float64 {
	setA := runeSet(a)
	setB := runeSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	common := 0
	for r := range setA {
		if setB[r] {
			common++
		}
	}

	return 2.0 * float64(common) / float64(len(setA)+len(setB))
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		if r == ' ' {
			continue
		}
		set[r] = true
	}
	return set
}

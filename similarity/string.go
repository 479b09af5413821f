package similarity

import (
	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"

	"github.com/pckhoi/datamatch/record"
)

// String scores two strings by normalized Levenshtein edit distance
// over folded (lowercased, diacritic-stripped) text.
type String struct{}

// NewString returns a Levenshtein-based string similarity.
func NewString() String { return String{} }

var _ Similarity = String{}

// Sim implements Similarity.
func (String) Sim(a, b record.Value) float64 {
	sa, sb := fold(asString(a)), fold(asString(b))
	return levenshteinRatio(sa, sb)
}

func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return clamp(1 - float64(d)/float64(longest))
}

// JaroWinkler scores two strings with the Jaro-Winkler metric, which
// gives extra weight to a common prefix. It is well suited to person
// names, where getting the first letter wrong is rare.
type JaroWinkler struct {
	longTolerance bool
}

// NewJaroWinkler returns a Jaro-Winkler string similarity.
// longTolerance enables the Winkler adjustment for long strings.
func NewJaroWinkler(longTolerance bool) JaroWinkler {
	return JaroWinkler{longTolerance: longTolerance}
}

var _ Similarity = JaroWinkler{}

// Sim implements Similarity.
func (j JaroWinkler) Sim(a, b record.Value) float64 {
	return clamp(matchr.JaroWinkler(fold(asString(a)), fold(asString(b)), j.longTolerance))
}

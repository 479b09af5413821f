// Package similarity provides per-field similarity functions for the
// scorer pipeline. Every function maps a pair of values onto [0, 1]:
// 1 means identical, 0 means nothing in common.
//
// These are deliberately thin collaborators; the matcher only relies on
// the Similarity contract and treats the formulas as replaceable.
package similarity

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/pckhoi/datamatch/record"
)

// Similarity computes a score in [0, 1] for a pair of non-null values.
type Similarity interface {
	Sim(a, b record.Value) float64
}

// Func adapts a plain function to the Similarity interface.
type Func func(a, b record.Value) float64

// Sim implements Similarity.
func (f Func) Sim(a, b record.Value) float64 { return f(a, b) }

// asString renders a value for string comparison. Non-string scalars are
// formatted; this keeps mixed-typed columns comparable instead of
// panicking on dirty data.
func asString(v record.Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// fold lowercases and strips diacritic marks so that "Édouard" and
// "Edouard" compare as equal, standing in for ASCII transliteration.
func fold(s string) string {
	decomposed := norm.NFD.String(s)
	stripped := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, decomposed)
	return strings.ToLower(norm.NFC.String(stripped))
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

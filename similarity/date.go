package similarity

import (
	"time"

	"github.com/pckhoi/datamatch/record"
)

// Date scores two dates by day proximity, hedging against common entry
// mistakes:
//
//  1. less than MaxDayDiff days apart: 1 - diff/MaxDayDiff
//  2. same year with month and day transposed: 0.5
//  3. same year and day: edit-distance ratio of the YYYYMMDD forms
//  4. otherwise: 0
type Date struct {
	maxDayDiff int
}

// NewDate returns a date similarity. maxDayDiff is the window within
// which proximity scoring applies; values below 1 default to 30.
func NewDate(maxDayDiff int) Date {
	if maxDayDiff < 1 {
		maxDayDiff = 30
	}
	return Date{maxDayDiff: maxDayDiff}
}

var _ Similarity = Date{}

// Sim implements Similarity. Non-time values score 0.
func (d Date) Sim(a, b record.Value) float64 {
	ta, ok := asTime(a)
	if !ok {
		return 0
	}
	tb, ok := asTime(b)
	if !ok {
		return 0
	}
	if tb.After(ta) {
		ta, tb = tb, ta
	}

	days := int(ta.Sub(tb).Hours() / 24)
	if days < d.maxDayDiff {
		return 1 - float64(days)/float64(d.maxDayDiff)
	}
	if ta.Year() == tb.Year() && int(ta.Month()) == tb.Day() && ta.Day() == int(tb.Month()) {
		return 0.5
	}
	if ta.Year() == tb.Year() && ta.Day() == tb.Day() {
		return levenshteinRatio(ta.Format("20060102"), tb.Format("20060102"))
	}
	return 0
}

func asTime(v record.Value) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}

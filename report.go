package datamatch

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pckhoi/datamatch/record"
)

// Report is a flat tabular view over pairs or clusters. Each compared
// pair contributes two rows, one per member, carrying the member's full
// field values next to the pair's score and positional indices.
//
// Export format is a collaborator concern; WriteCSV is provided because
// a report is only useful once a human can eyeball it.
type Report struct {
	Columns []string
	Rows    [][]record.Value
}

// WriteCSV writes the report with a header row.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Columns); err != nil {
		return err
	}
	line := make([]string, len(r.Columns))
	for _, row := range r.Rows {
		for i, v := range row {
			line[i] = formatValue(v)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v record.Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// memberRow renders one member of a pair: the given prefix cells, the
// member's row key, then its field values in table order.
func memberRow(prefix []record.Value, t *record.Table, key record.Key) []record.Value {
	out := make([]record.Value, 0, len(prefix)+1+len(t.Fields()))
	out = append(out, prefix...)
	out = append(out, string(key))
	if row, ok := t.RowByKey(key); ok {
		out = append(out, row.Values()...)
	} else {
		for range t.Fields() {
			out = append(out, nil)
		}
	}
	return out
}

func (m *ThresholdMatcher) reportColumns(head ...string) []string {
	cols := append([]string{}, head...)
	cols = append(cols, "row_key")
	cols = append(cols, m.Left().Fields()...)
	return cols
}

// ClusterReport returns the ranked tabular view of the clusters inside
// [lower, upper]: clusters ordered by their highest-scoring internal
// pair descending, pairs within a cluster ordered by score descending,
// two rows per pair. When includeExactMatches is false, clusters whose
// every internal pair scored exactly 1.0 are dropped.
func (m *ThresholdMatcher) ClusterReport(lower, upper float64, includeExactMatches bool) *Report {
	rep := &Report{Columns: m.reportColumns("cluster_idx", "pair_idx", "sim_score")}

	clusterIdx := 0
	for _, c := range m.ClustersWithin(lower, upper) {
		if !includeExactMatches && c.exact() {
			continue
		}
		for pairIdx, p := range c.Pairs {
			prefix := []record.Value{clusterIdx, pairIdx, p.Score}
			rep.Rows = append(rep.Rows, memberRow(prefix, m.Left(), p.KeyA))
			rep.Rows = append(rep.Rows, memberRow(prefix, m.Right(), p.KeyB))
		}
		clusterIdx++
	}
	return rep
}

// AllPairsReport returns every pair inside [lower, upper] ordered by
// score descending, two rows per pair. When includeExactMatches is
// false, pairs scored exactly 1.0 are dropped.
func (m *ThresholdMatcher) AllPairsReport(lower, upper float64, includeExactMatches bool) *Report {
	rep := &Report{Columns: m.reportColumns("pair_idx", "sim_score")}

	lo, hi := m.searchRange(lower, upper)
	pairIdx := 0
	for i := hi - 1; i >= lo; i-- {
		p := m.pairs[i]
		if !includeExactMatches && p.Score == 1 {
			continue
		}
		prefix := []record.Value{pairIdx, p.Score}
		rep.Rows = append(rep.Rows, memberRow(prefix, m.Left(), p.KeyA))
		rep.Rows = append(rep.Rows, memberRow(prefix, m.Right(), p.KeyB))
		pairIdx++
	}
	return rep
}

// SamplePairsReport returns up to sampleCount pairs for each sub-range
// of width step between upper and lower, highest sub-range first.
// Sub-ranges are half-open: a score equal to a boundary is attributed to
// the sub-range where that boundary is the upper bound. When
// includeExactMatches is false, pairs scored exactly 1.0 are dropped.
func (m *ThresholdMatcher) SamplePairsReport(sampleCount int, lower, upper, step float64, includeExactMatches bool) *Report {
	rep := &Report{Columns: m.reportColumns("score_range", "pair_idx", "sim_score")}
	if step <= 0 || sampleCount <= 0 {
		return rep
	}

	bounds := []float64{}
	for v := upper; v > lower+1e-9; v -= step {
		bounds = append(bounds, v)
	}
	bounds = append(bounds, lower)

	for i := 0; i+1 < len(bounds); i++ {
		upperVal, lowerVal := bounds[i], bounds[i+1]
		scoreRange := fmt.Sprintf("%.2f-%.2f", upperVal, lowerVal)

		// (lowerVal, upperVal]: both ends use the upper-bound search.
		lo := sort.Search(len(m.scores), func(k int) bool { return m.scores[k] > lowerVal })
		hi := sort.Search(len(m.scores), func(k int) bool { return m.scores[k] > upperVal })
		if hi-lo > sampleCount {
			lo = hi - sampleCount
		}

		pairIdx := 0
		for j := hi - 1; j >= lo; j-- {
			p := m.pairs[j]
			if !includeExactMatches && p.Score == 1 {
				continue
			}
			prefix := []record.Value{scoreRange, pairIdx, p.Score}
			rep.Rows = append(rep.Rows, memberRow(prefix, m.Left(), p.KeyA))
			rep.Rows = append(rep.Rows, memberRow(prefix, m.Right(), p.KeyB))
			pairIdx++
		}
	}
	return rep
}

// Decision summarizes how many pairs clear a single decision threshold.
type Decision struct {
	// Threshold is the score at or above which a pair counts as matched.
	Threshold float64
	// MatchedPairs is the number of pairs scoring >= Threshold.
	MatchedPairs int
	// LeftFraction is MatchedPairs over the left table's row count.
	LeftFraction float64
	// RightFraction is MatchedPairs over the right table's row count.
	RightFraction float64
}

// Decide summarizes the matcher's result at the given threshold.
func (m *ThresholdMatcher) Decide(threshold float64) Decision {
	matched := len(m.scores) - sort.SearchFloat64s(m.scores, threshold)
	d := Decision{Threshold: threshold, MatchedPairs: matched}
	if n := m.Left().Len(); n > 0 {
		d.LeftFraction = float64(matched) / float64(n)
	}
	if n := m.Right().Len(); n > 0 {
		d.RightFraction = float64(matched) / float64(n)
	}
	return d
}

// String renders the decision for logs and consoles.
func (d Decision) String() string {
	return fmt.Sprintf("for threshold %.3f: %d matched pairs (%.0f%% of left, %.0f%% of right)",
		d.Threshold, d.MatchedPairs, d.LeftFraction*100, d.RightFraction*100)
}

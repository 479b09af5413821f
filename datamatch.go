package datamatch

import (
	"sort"

	"github.com/pckhoi/datamatch/index"
	"github.com/pckhoi/datamatch/record"
	"github.com/pckhoi/datamatch/score"
)

// Default score interval for range queries.
const (
	DefaultLowerBound = 0.7
	DefaultUpperBound = 1.0
)

// Mode is the matching strategy of a ThresholdMatcher.
type Mode int

const (
	// ModeMatch matches records between two distinct tables.
	ModeMatch Mode = iota
	// ModeDedupe finds groups of related records within one table.
	ModeDedupe
)

// String returns a string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeMatch:
		return "match"
	case ModeDedupe:
		return "dedupe"
	default:
		return "unknown"
	}
}

// ScoredPair is one compared pair and its similarity score.
// KeyA always belongs to the left table and KeyB to the right table; in
// dedup mode A precedes B in generation order, so an unordered pair
// appears exactly once.
type ScoredPair struct {
	Score float64
	KeyA  record.Key
	KeyB  record.Key
}

// ThresholdMatcher scores every candidate pair eagerly at construction
// and answers range queries over the resulting immutable collection.
// It needs no training data, which makes it the right tool when data is
// scarce or labeled examples are unavailable.
//
// All candidate pairs are generated, filtered, variant-expanded and
// scored synchronously inside Match or Dedupe; the matcher afterwards
// only reads its own sorted state, so a constructed matcher is safe for
// concurrent readers.
type ThresholdMatcher struct {
	mode   Mode
	pairer Pairer
	scorer score.Scorer
	opts   options
	pairs  []ScoredPair // ascending by score
	scores []float64    // parallel to pairs
}

// Match builds a matcher over two distinct tables (cross-matching mode).
// It fails with a structural error on duplicate row keys, mismatched
// field sets, or any scoring misconfiguration.
func Match(ix index.Index, scorer score.Scorer, a, b *record.Table, opts ...Option) (*ThresholdMatcher, error) {
	if ix == nil {
		return nil, ErrNilIndex
	}
	if scorer == nil {
		return nil, ErrNilScorer
	}
	if a == nil || b == nil {
		return nil, ErrNilTable
	}
	pairer, err := NewMatchPairer(a, b, ix)
	if err != nil {
		return nil, err
	}
	return newMatcher(ModeMatch, pairer, scorer, opts)
}

// Dedupe builds a matcher over a single table (deduplication mode).
func Dedupe(ix index.Index, scorer score.Scorer, t *record.Table, opts ...Option) (*ThresholdMatcher, error) {
	if ix == nil {
		return nil, ErrNilIndex
	}
	if scorer == nil {
		return nil, ErrNilScorer
	}
	if t == nil {
		return nil, ErrNilTable
	}
	pairer, err := NewDedupePairer(t, ix)
	if err != nil {
		return nil, err
	}
	return newMatcher(ModeDedupe, pairer, scorer, opts)
}

func newMatcher(mode Mode, pairer Pairer, scorer score.Scorer, opts []Option) (*ThresholdMatcher, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	m := &ThresholdMatcher{
		mode:   mode,
		pairer: pairer,
		scorer: scorer,
		opts:   o,
	}
	if err := m.scoreAllPairs(); err != nil {
		return nil, err
	}
	return m, nil
}

// Mode returns the matcher's mode.
func (m *ThresholdMatcher) Mode() Mode { return m.mode }

// Left returns the left table.
func (m *ThresholdMatcher) Left() *record.Table { return m.pairer.Left() }

// Right returns the right table (the left table in dedup mode).
func (m *ThresholdMatcher) Right() *record.Table { return m.pairer.Right() }

// scoreAllPairs runs the full pipeline: candidate generation, filter
// chain, variation expansion, scoring, stable ascending sort, and (in
// match mode) the greedy one-to-one reduction.
func (m *ThresholdMatcher) scoreAllPairs() error {
	logger := m.opts.logger.WithMode(m.mode)

	var generated, filtered int
	seen := make(map[[2]record.Key]bool)
	for pair := range m.pairer.Pairs() {
		generated++
		if seen[[2]record.Key{pair.A.Key(), pair.B.Key()}] {
			continue // same pair reachable through several buckets
		}
		seen[[2]record.Key{pair.A.Key(), pair.B.Key()}] = true

		if !m.keep(pair) {
			filtered++
			continue
		}
		best, err := m.scorePair(pair)
		if err != nil {
			return err
		}
		m.pairs = append(m.pairs, ScoredPair{Score: best, KeyA: pair.A.Key(), KeyB: pair.B.Key()})
	}

	sort.SliceStable(m.pairs, func(i, j int) bool { return m.pairs[i].Score < m.pairs[j].Score })

	// One entity may legitimately group with more than one other record
	// in dedup mode, so lesser matches are only dropped when
	// cross-matching.
	if m.mode == ModeMatch {
		m.removeLesserMatches()
	}

	m.scores = make([]float64, len(m.pairs))
	for i, p := range m.pairs {
		m.scores[i] = p.Score
	}

	logger.LogScoring(generated, filtered, len(m.pairs))
	return nil
}

func (m *ThresholdMatcher) keep(pair Pair) bool {
	for _, f := range m.opts.filters {
		if !f.Valid(pair.A, pair.B) {
			return false
		}
	}
	return true
}

// scorePair scores every combination of variants of both rows and keeps
// the maximum.
func (m *ThresholdMatcher) scorePair(pair Pair) (float64, error) {
	var (
		best    float64
		scored  bool
		refusal string
	)
	for _, va := range m.opts.variator.Variations(pair.A) {
		for _, vb := range m.opts.variator.Variations(pair.B) {
			res, err := m.scorer.Score(va, vb)
			if err != nil {
				return 0, err
			}
			if res.Refused() {
				refusal = res.Reason()
				continue
			}
			if res.Score() < 0 || res.Score() > 1 {
				return 0, &ErrInvalidScore{KeyA: pair.A.Key(), KeyB: pair.B.Key(), Score: res.Score()}
			}
			if !scored || res.Score() > best {
				best = res.Score()
				scored = true
			}
		}
	}
	if !scored {
		return 0, &ErrUnhandledRefusal{KeyA: pair.A.Key(), KeyB: pair.B.Key(), Reason: refusal}
	}
	return best, nil
}

// removeLesserMatches keeps, per left key and per right key, only the
// highest-scoring pair: scanning from the top score down, a pair
// survives when neither of its keys has been claimed by a better pair.
// This is a greedy approximation of maximum-weight matching, not an
// optimal one.
func (m *ThresholdMatcher) removeLesserMatches() {
	claimedA := make(map[record.Key]bool)
	claimedB := make(map[record.Key]bool)
	kept := make([]ScoredPair, 0, len(m.pairs))
	for i := len(m.pairs) - 1; i >= 0; i-- {
		p := m.pairs[i]
		if claimedA[p.KeyA] || claimedB[p.KeyB] {
			continue
		}
		claimedA[p.KeyA] = true
		claimedB[p.KeyB] = true
		kept = append(kept, p)
	}
	// kept is descending; restore ascending order.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	m.pairs = kept
}

// searchRange returns the half-open slice bounds [lo, hi) of pairs whose
// score falls inside the closed interval [lower, upper].
func (m *ThresholdMatcher) searchRange(lower, upper float64) (int, int) {
	lo := sort.SearchFloat64s(m.scores, lower)
	hi := sort.Search(len(m.scores), func(i int) bool { return m.scores[i] > upper })
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// PairsWithin returns all scored pairs with lower <= score <= upper,
// ascending by score.
func (m *ThresholdMatcher) PairsWithin(lower, upper float64) []ScoredPair {
	lo, hi := m.searchRange(lower, upper)
	out := make([]ScoredPair, hi-lo)
	copy(out, m.pairs[lo:hi])
	return out
}

// KeyPairsWithin returns just the key pairs with lower <= score <= upper,
// ascending by score.
func (m *ThresholdMatcher) KeyPairsWithin(lower, upper float64) [][2]record.Key {
	lo, hi := m.searchRange(lower, upper)
	out := make([][2]record.Key, 0, hi-lo)
	for _, p := range m.pairs[lo:hi] {
		out = append(out, [2]record.Key{p.KeyA, p.KeyB})
	}
	return out
}

// Len returns the total number of scored pairs the matcher retained.
func (m *ThresholdMatcher) Len() int { return len(m.pairs) }

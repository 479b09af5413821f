// Package datamatch provides training-free entity resolution for Go.
//
// Given one table of records it finds groups of rows that likely refer
// to the same real-world entity (deduplication); given two tables it
// finds the best one-to-one pairing between them (cross-matching). No
// trained classifier is involved: each pair of records is reduced to a
// single similarity score in [0, 1] by pluggable per-field similarity
// functions, and callers pick a threshold by inspecting the scored
// results.
//
// # Quick Start
//
// Deduplicate a roster on last and first name:
//
//	t := record.NewTable("last", "first").
//	    Append("0", "beech", "freddie").
//	    Append("1", "beech", "freedie").
//	    Append("2", "dupas", "demia")
//
//	m, err := datamatch.Dedupe(
//	    index.Noop(),
//	    score.Fields(map[string]similarity.Similarity{
//	        "last":  similarity.NewJaroWinkler(false),
//	        "first": similarity.NewJaroWinkler(false),
//	    }),
//	    t,
//	)
//	if err != nil {
//	    panic(err)
//	}
//	for _, c := range m.ClustersWithin(0.7, 1) {
//	    fmt.Println(c.Keys)
//	}
//
// Cross-match two tables with blocking on a shared attribute:
//
//	m, err := datamatch.Match(
//	    index.ByFields([]string{"agency"}),
//	    score.Fields(sims),
//	    tableA, tableB,
//	    datamatch.WithVariator(variator.NewSwap("first", "last")),
//	    datamatch.WithFilters(filter.NewDissimilar("uid")),
//	)
//
// # Blocking
//
// A blocking index partitions each table into buckets; only rows sharing
// a bucket are ever compared, which keeps the candidate set far below
// the full cross product. Indexes compose: index.Union loosens matching
// (OR), index.Intersect tightens it (AND).
//
// # Scoring
//
// Scorers compose too: score.Fields combines per-field similarities by
// root mean square; score.NewAbsolute vetoes on a designated field and
// must be wrapped in score.NewMax or score.NewMin; score.NewAlter
// adjusts scores for rows known to share an external attribute.
// A scorer that cannot judge a pair refuses instead of guessing, and a
// combinator above it falls through to its siblings.
//
// # Results
//
// All pairs are scored eagerly at construction; the matcher then answers
// binary-search range queries over the immutable result: pairs or
// clusters within a score interval, fixed-size samples per score range,
// tabular reports, and a matched-pair count for a decision threshold.
//
// The engine is synchronous and single-threaded. Candidate sets are
// bounded by blocking, and a constructed matcher is safe for concurrent
// readers.
package datamatch

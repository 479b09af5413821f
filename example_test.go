package datamatch_test

import (
	"fmt"
	"log"

	"github.com/pckhoi/datamatch"
	"github.com/pckhoi/datamatch/index"
	"github.com/pckhoi/datamatch/record"
	"github.com/pckhoi/datamatch/score"
	"github.com/pckhoi/datamatch/similarity"
)

// ExampleDedupe demonstrates finding near-duplicate records in a single
// table.
func ExampleDedupe() {
	officers := record.NewTable("last", "first")
	officers.Append("a", "beech", "freddie").
		Append("b", "beech", "freedie").
		Append("c", "dupas", "demia").
		Append("d", "dupas", "demeia")

	scorer := score.Fields(map[string]similarity.Similarity{
		"last":  similarity.NewJaroWinkler(false),
		"first": similarity.NewJaroWinkler(false),
	})

	matcher, err := datamatch.Dedupe(index.Noop(), scorer, officers)
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range matcher.ClustersWithin(datamatch.DefaultLowerBound, datamatch.DefaultUpperBound) {
		fmt.Println(c.Keys)
	}
	// Output:
	// [c d]
	// [a b]
}

// ExampleMatch demonstrates linking rows across two tables, restricting
// comparisons to rows that share an agency.
func ExampleMatch() {
	left := record.NewTable("agency", "last")
	left.Append("l1", "slidell", "beech").
		Append("l2", "gretna", "dupas")

	right := record.NewTable("agency", "last")
	right.Append("r1", "slidell", "beech").
		Append("r2", "slidell", "roster")

	scorer := score.Fields(map[string]similarity.Similarity{
		"last": similarity.NewString(),
	})

	matcher, err := datamatch.Match(index.ByFields([]string{"agency"}), scorer, left, right)
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range matcher.PairsWithin(0.7, 1.0) {
		fmt.Printf("%s <-> %s (%.2f)\n", p.KeyA, p.KeyB, p.Score)
	}
	// Output:
	// l1 <-> r1 (1.00)
}

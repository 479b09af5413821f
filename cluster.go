package datamatch

import (
	"sort"

	"github.com/pckhoi/datamatch/record"
)

// Cluster is a group of records that likely refer to one entity: every
// unordered pair of members was scored inside the query interval, i.e.
// the induced pair graph is a complete clique, not merely connected.
type Cluster struct {
	// Keys are the member row keys, ascending.
	Keys []record.Key
	// Pairs are the scored pairs among the members, descending by score.
	Pairs []ScoredPair
}

// Top returns the cluster's highest internal score.
func (c Cluster) Top() float64 {
	if len(c.Pairs) == 0 {
		return 0
	}
	return c.Pairs[0].Score
}

// exact reports whether every internal pair scored exactly 1.0,
// detected as sum == count given scores never exceed 1.
func (c Cluster) exact() bool {
	var sum float64
	for _, p := range c.Pairs {
		sum += p.Score
	}
	return sum == float64(len(c.Pairs))
}

// ClustersWithin groups the pairs scored inside [lower, upper] into
// clusters. Pairs are consumed from the highest score down, so
// high-scoring pairs dominate cluster formation; connected components
// are then split into cliques so that every returned cluster is fully
// mutually connected. Singleton groups are discarded.
//
// Construction is greedy and order-sensitive. Where a component admits
// several maximal cliques, members are assigned deterministically in
// ascending row-key order.
//
// Clusters are recomputed per call; results for equal bounds are
// identical because the underlying pair collection is immutable. In
// cross-matching mode the cluster graph is keyed by raw row keys, so
// the two tables should use disjoint key spaces.
//
// Clusters are returned ordered by their highest-scoring internal pair,
// descending.
func (m *ThresholdMatcher) ClustersWithin(lower, upper float64) []Cluster {
	lo, hi := m.searchRange(lower, upper)

	u := newUnionFind()
	// Highest score first: the order pairs join components decides how
	// greedy clique splitting resolves ambiguity.
	for i := hi - 1; i >= lo; i-- {
		u.addEdge(m.pairs[i])
	}

	var clusters []Cluster
	for _, edges := range u.components() {
		clusters = append(clusters, splitCliques(edges)...)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		ti, tj := clusters[i].Top(), clusters[j].Top()
		if ti != tj {
			return ti > tj
		}
		return clusters[i].Keys[0] < clusters[j].Keys[0]
	})
	return clusters
}

// unionFind merges row keys into connected components and accumulates
// each component's edge list at its root, avoiding the need to re-key a
// map by an evolving membership set.
type unionFind struct {
	parent map[record.Key]record.Key
	edges  map[record.Key][]ScoredPair
	roots  []record.Key // insertion order, for deterministic iteration
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[record.Key]record.Key),
		edges:  make(map[record.Key][]ScoredPair),
	}
}

func (u *unionFind) find(k record.Key) record.Key {
	p, ok := u.parent[k]
	if !ok {
		u.parent[k] = k
		u.roots = append(u.roots, k)
		return k
	}
	if p == k {
		return k
	}
	root := u.find(p)
	u.parent[k] = root
	return root
}

func (u *unionFind) addEdge(p ScoredPair) {
	ra := u.find(p.KeyA)
	rb := u.find(p.KeyB)
	if ra != rb {
		u.parent[rb] = ra
		u.edges[ra] = append(u.edges[ra], u.edges[rb]...)
		delete(u.edges, rb)
	}
	u.edges[ra] = append(u.edges[ra], p)
}

// components returns each component's edge list, in deterministic order.
func (u *unionFind) components() [][]ScoredPair {
	var out [][]ScoredPair
	for _, k := range u.roots {
		if u.find(k) != k {
			continue
		}
		out = append(out, u.edges[k])
	}
	return out
}

// splitCliques splits one connected component into cliques. Nodes are
// visited in ascending key order; a neighbor joins a growing clique only
// when it is adjacent to every member so far, which enforces full mutual
// connectivity rather than mere reachability.
func splitCliques(edges []ScoredPair) []Cluster {
	adj := make(map[record.Key]map[record.Key]ScoredPair)
	for _, e := range edges {
		if adj[e.KeyA] == nil {
			adj[e.KeyA] = make(map[record.Key]ScoredPair)
		}
		if adj[e.KeyB] == nil {
			adj[e.KeyB] = make(map[record.Key]ScoredPair)
		}
		adj[e.KeyA][e.KeyB] = e
		adj[e.KeyB][e.KeyA] = e
	}

	nodes := make([]record.Key, 0, len(adj))
	for k := range adj {
		nodes = append(nodes, k)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	var clusters []Cluster
	visited := make(map[record.Key]bool)
	for _, node := range nodes {
		if visited[node] {
			continue
		}
		visited[node] = true
		members := map[record.Key]bool{node: true}
		stack := []record.Key{node}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, neighbor := range sortedNeighbors(adj[cur]) {
				if visited[neighbor] {
					continue
				}
				if !adjacentToAll(adj, neighbor, members) {
					continue
				}
				visited[neighbor] = true
				members[neighbor] = true
				stack = append(stack, neighbor)
			}
		}
		if len(members) < 2 {
			continue
		}
		clusters = append(clusters, newCluster(members, adj))
	}
	return clusters
}

func sortedNeighbors(m map[record.Key]ScoredPair) []record.Key {
	out := make([]record.Key, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func adjacentToAll(adj map[record.Key]map[record.Key]ScoredPair, candidate record.Key, members map[record.Key]bool) bool {
	for member := range members {
		if _, ok := adj[candidate][member]; !ok {
			return false
		}
	}
	return true
}

// newCluster recovers the member key list and every member-pair edge.
// All 2-combinations are guaranteed present because cliques grow from
// exactly the available edges.
func newCluster(members map[record.Key]bool, adj map[record.Key]map[record.Key]ScoredPair) Cluster {
	keys := make([]record.Key, 0, len(members))
	for k := range members {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var pairs []ScoredPair
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			pairs = append(pairs, adj[keys[i]][keys[j]])
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Score > pairs[j].Score })

	return Cluster{Keys: keys, Pairs: pairs}
}

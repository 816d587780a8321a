package vectorize

import (
	"fmt"
	"os"

	"github.com/consoleet/consoleet-utils/geom"
	"github.com/emirpasic/gods/trees/redblacktree"
	"golang.org/x/exp/slices"
)

// EdgeGraph is the vectorizer's working store: an ordered set of
// edges with at most one edge per (start, end) tuple (spec §3). It is
// backed by a red-black tree ordered by [geom.Edge.Compare], which
// gives insert/erase/"pick the smallest edge" in O(log n) -- the
// "lower_bound, erase(iter), insert" trio spec §9 calls out as the
// hot path. A secondary index from start vertex to its (at most two,
// by construction) outgoing edges answers "neigh_edges" lookups
// without needing in-order tree traversal.
//
// An EdgeGraph is exclusively owned by the vectorizer call that
// builds it and is discarded once that call returns (spec §5); it is
// not safe for concurrent use and carries no synchronization.
type EdgeGraph struct {
	tree    *redblacktree.Tree
	byStart map[geom.Vertex][]geom.Edge
}

// NewEdgeGraph returns an empty graph.
func NewEdgeGraph() *EdgeGraph {
	return &EdgeGraph{
		tree: redblacktree.NewWith(func(a, b interface{}) int {
			return a.(geom.Edge).Compare(b.(geom.Edge))
		}),
		byStart: make(map[geom.Vertex][]geom.Edge),
	}
}

// Insert adds e to the graph. Inserting an edge that is already
// present is a no-op (the (start, end) tuple invariant from spec §3).
func (g *EdgeGraph) Insert(e geom.Edge) {
	if _, found := g.tree.Get(e); found {
		return
	}
	g.tree.Put(e, struct{}{})
	g.byStart[e.Start] = append(g.byStart[e.Start], e)
}

// Has reports whether e is present in the graph.
func (g *EdgeGraph) Has(e geom.Edge) bool {
	_, found := g.tree.Get(e)
	return found
}

// Erase removes e from the graph. Erasing an absent edge is a no-op.
func (g *EdgeGraph) Erase(e geom.Edge) {
	if _, found := g.tree.Get(e); !found {
		return
	}
	g.tree.Remove(e)
	starts := g.byStart[e.Start]
	for i, cand := range starts {
		if cand == e {
			starts = append(starts[:i], starts[i+1:]...)
			break
		}
	}
	if len(starts) == 0 {
		delete(g.byStart, e.Start)
	} else {
		g.byStart[e.Start] = starts
	}
}

// Len returns the number of edges currently in the graph.
func (g *EdgeGraph) Len() int { return g.tree.Size() }

// Empty reports whether the graph has no edges.
func (g *EdgeGraph) Empty() bool { return g.tree.Size() == 0 }

// Smallest returns the lexicographically smallest edge in the graph,
// used to seed a new polygon walk (spec §4.2 "pick any edge as
// seed (smallest by vertex order)").
func (g *EdgeGraph) Smallest() (geom.Edge, bool) {
	node := g.tree.Left()
	if node == nil {
		return geom.Edge{}, false
	}
	return node.Key.(geom.Edge), true
}

// OutEdges returns the (zero, one, or two) edges starting at v. By
// construction of every producer in this package, a vertex never has
// more than two outgoing edges; a third is reported as corrupt input
// rather than silently truncated.
func (g *EdgeGraph) OutEdges(v geom.Vertex) []geom.Edge {
	edges := g.byStart[v]
	if len(edges) > 2 {
		fmt.Fprintf(os.Stderr, "vectorize: corrupt outline: vertex %+v has %d outgoing edges\n", v, len(edges))
	}
	return edges
}

// Snapshot returns every edge currently in the graph, sorted by
// [geom.Edge.Compare]. Used where a stable, deterministic iteration
// order matters (spec §8 "Determinism") independent of the backing
// tree's internal traversal order.
func (g *EdgeGraph) Snapshot() []geom.Edge {
	keys := g.tree.Keys()
	edges := make([]geom.Edge, len(keys))
	for i, k := range keys {
		edges[i] = k.(geom.Edge)
	}
	slices.SortFunc(edges, func(a, b geom.Edge) bool { return a.Compare(b) < 0 })
	return edges
}

// RemoveInternalEdges eliminates every pair of edges (a->b) and
// (b->a) both present in the graph (spec §4.2 "internal-edge
// removal"): fusing adjacent pixel squares into larger polygons
// without re-orienting any surviving edge. A self-loop (a->a) is
// reported as a corrupt outline but not removed, matching spec §4.2's
// "diagnostic only, do not abort."
func (g *EdgeGraph) RemoveInternalEdges() {
	for _, e := range g.Snapshot() {
		if e.Start == e.End {
			fmt.Fprintf(os.Stderr, "vectorize: corrupt outline: self-loop at %+v\n", e.Start)
			continue
		}
		if !g.Has(e) {
			continue // already removed as the reverse of an earlier edge
		}
		rev := e.Reversed()
		if g.Has(rev) {
			g.Erase(e)
			g.Erase(rev)
		}
	}
}

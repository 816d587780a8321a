package vectorize

import (
	"fmt"
	"os"
	"sort"

	"github.com/consoleet/consoleet-utils/geom"
)

// Polygon is a closed, oriented sequence of edges: for every i,
// Polygon[i].End == Polygon[(i+1)%len].Start.
type Polygon []geom.Edge

// ShoelaceArea returns twice the signed area enclosed by the polygon
// (the shoelace formula on integer vertices, left unhalved to stay
// in exact integer arithmetic). Per spec §8, this is strictly
// positive for an outer contour (interior on the right of the path)
// and strictly negative for an enclave.
func (p Polygon) ShoelaceArea() int64 {
	var sum int64
	for _, e := range p {
		sum += int64(e.Start.X)*int64(e.End.Y) - int64(e.End.X)*int64(e.Start.Y)
	}
	return sum
}

// Closed reports whether every edge's end meets the next edge's
// start, including the wraparound from the last edge back to the
// first (spec §8 "Closedness").
func (p Polygon) Closed() bool {
	if len(p) == 0 {
		return true
	}
	for i, e := range p {
		next := p[(i+1)%len(p)]
		if e.End != next.Start {
			return false
		}
	}
	return true
}

// PopAll repeatedly extracts polygons from g until it is empty,
// applying line simplification when simplifyLines is true (used by
// Simple and N1; N2 does its own simplification in its post-pass and
// walks the graph with popWalk instead).
func PopAll(g *EdgeGraph, simplifyLines bool) []Polygon {
	var polys []Polygon
	for !g.Empty() {
		poly := PopOne(g, simplifyLines)
		if len(poly) == 0 {
			break // defensive: avoid looping forever on a corrupt graph
		}
		polys = append(polys, poly)
	}
	return polys
}

// PopOne extracts a single closed polygon from g, removing its edges
// from the graph as it walks (spec §4.2 "pop_poly"). The walk starts
// at the graph's smallest edge, follows successors by matching
// start==previous end, and stops when it returns to the seed's
// start. At a vertex with two outgoing edges, the "inward" branch is
// preferred per the direction rule in spec §4.2, which is what lets
// shapes with enclaves (e.g. 'o', '4') come out as a single
// self-touching polygon.
//
// If the graph runs out of edges before the walk closes, PopOne
// prints a diagnostic (spec §7 "internal inconsistency") and returns
// the partial polygon rather than panicking.
func PopOne(g *EdgeGraph, simplifyLines bool) Polygon {
	return popWalk(g, simplifyLines, func(v geom.Vertex, cands []geom.Edge, prevDir int) geom.Edge {
		return pickInward(cands, prevDir)
	})
}

// popWalk is the shared pop_poly core behind PopOne and the
// isthmus-aware N2EV walk: resolve is consulted only at a genuine
// branch vertex (two outgoing edges); with one candidate there is
// nothing to resolve.
func popWalk(g *EdgeGraph, simplifyLines bool, resolve func(v geom.Vertex, cands []geom.Edge, prevDir int) geom.Edge) Polygon {
	seed, ok := g.Smallest()
	if !ok {
		return nil
	}
	g.Erase(seed)
	seedStart := seed.Start
	poly := Polygon{seed}
	if seed.End == seedStart {
		return poly // degenerate self-loop, already its own closed walk
	}

	prevDir := seed.TrivialDir()
	current := seed
	for {
		cands := g.OutEdges(current.End)
		if len(cands) == 0 {
			fmt.Fprintf(os.Stderr, "vectorize: unclosed polygon at %+v\n", current.End)
			break
		}
		var next geom.Edge
		if len(cands) == 1 {
			next = cands[0]
		} else {
			next = resolve(current.End, cands, prevDir)
		}
		g.Erase(next)
		nextDir := next.TrivialDir()
		if simplifyLines && nextDir == prevDir {
			poly[len(poly)-1].End = next.End
		} else {
			poly = append(poly, next)
		}
		prevDir = nextDir
		current = next
		if current.End == seedStart {
			break
		}
	}
	return poly
}

// pickInward chooses between the (exactly two) outgoing candidates at
// a branch vertex, preferring the one that keeps the interior on the
// right given the direction the walk arrived from (spec §4.2): for
// arriving directions 0 or 270, the lexicographic successor of the
// two candidates is preferred; for 90 or 180, the predecessor is.
func pickInward(cands []geom.Edge, prevDir int) geom.Edge {
	sorted := append([]geom.Edge(nil), cands...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })
	switch prevDir {
	case geom.Dir0, geom.Dir270:
		return sorted[len(sorted)-1]
	case geom.Dir90, geom.Dir180:
		return sorted[0]
	default:
		// Diagonal arrivals only occur in N1 output, where a branch
		// vertex with two candidates does not arise by construction;
		// fall back to the lexicographic predecessor.
		return sorted[0]
	}
}

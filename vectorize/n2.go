package vectorize

import "github.com/consoleet/consoleet-utils/geom"

// edgeFlag marks candidate diagonal-insertion points found by
// n2Angle's seven-edge window scan (spec §4.5).
type edgeFlag int

const (
	flagHEAD  edgeFlag = 1 << iota // a diagonal may start just before this edge
	flagTAIL                      // a diagonal may end just after this edge
	flagXHEAD                     // vetoed as a HEAD (pimple protection)
	flagXTAIL                     // vetoed as a TAIL (pimple protection)
)

func mod360(d int) int {
	d %= 360
	if d < 0 {
		d += 360
	}
	return d
}

// dirVector returns the unit (dx, dy) step of one of the eight
// [geom.Edge.TrivialDir] compass directions.
func dirVector(dir int) (dx, dy int) {
	switch dir {
	case geom.Dir0:
		return 0, 1
	case geom.Dir45:
		return 1, 1
	case geom.Dir90:
		return 1, 0
	case geom.Dir135:
		return 1, -1
	case geom.Dir180:
		return 0, -1
	case geom.Dir225:
		return -1, -1
	case geom.Dir270:
		return -1, 0
	case geom.Dir315:
		return -1, 1
	}
	return 0, 0
}

// n2Angle is the per-polygon diagonalization post-pass (spec §4.5): it
// scans every cyclic window of seven consecutive edges, flags
// candidate HEAD/TAIL diagonal insertion points (vetoing the ones
// that would erode a one-pixel pimple or dimple), then inserts a
// short diagonal cut at every flagged TAIL->HEAD boundary, shortening
// the two edges it separates by one step in their own direction.
//
// poly must already be in "unit edge" form (no P_SIMPLIFY_LINES
// applied) since the window scan assumes one direction change per
// polygon vertex; stepX, stepY is the distance (conventionally
// sx/2, sy/2) each bounding edge is pulled back to make room for the
// diagonal.
func n2Angle(poly Polygon, stepX, stepY int) Polygon {
	n := len(poly)
	if n < 7 {
		return poly
	}
	dir := make([]int, n)
	for i, e := range poly {
		dir[i] = e.TrivialDir()
	}
	idx := func(k int) int { return ((k % n) + n) % n }
	at := func(i int) int { return dir[idx(i)] }

	flags := make([]edgeFlag, n)
	for i := 0; i < n; i++ {
		dm3, dm2, dm1 := at(i-3), at(i-2), at(i-1)
		d00 := at(i)
		dp1, dp2, dp3 := at(i+1), at(i+2), at(i+3)

		// Pimple: a one-pixel bump, e.g. the crossbar of 'f'. Veto
		// every candidate diagonal touching its five central edges.
		if d00 == dm2 && d00 == dp2 &&
			(dm3 == d00 || dm3 == dp1) &&
			(dp3 == d00 || dp3 == dm1) &&
			dm1 == mod360(dm2+270) &&
			dp1 == mod360(dm2+90) {
			for _, k := range []int{i - 2, i - 1, i, i + 1, i + 2} {
				flags[idx(k)] |= flagXHEAD | flagXTAIL
			}
			continue
		}

		// Dimple: a one-pixel sink, e.g. the waist of '8'.
		if d00 == dm2 && d00 == dp2 &&
			dm1 == mod360(dm2+90) &&
			dp1 == mod360(dm2+270) {
			if dm3 == dm2 {
				flags[idx(i-2)] |= flagTAIL
				flags[idx(i-1)] |= flagHEAD | flagTAIL
				flags[idx(i)] |= flagHEAD
			}
			if dp3 == dp2 {
				flags[idx(i)] |= flagTAIL
				flags[idx(i+1)] |= flagHEAD | flagTAIL
				flags[idx(i+2)] |= flagHEAD
			}
			continue
		}

		// Chicane: a single-step staircase.
		if dm1 == dp1 && (dp1 == mod360(d00+90) || dp1 == mod360(d00+270)) {
			serifA := dm2 == dm1 && d00 == mod360(dm1+270) && dp1 == dm1 &&
				dp2 == mod360(dm1+90) && dp3 == dp2
			serifB := dm2 == dm1 && d00 == mod360(dm1+90) && dp1 == dm1 &&
				dp2 == mod360(dm1+270) && dp3 == dp2
			if serifA || serifB {
				continue // E-serif ramp: not a chicane, leave unflagged
			}
			flags[idx(i-1)] |= flagTAIL
			flags[idx(i)] |= flagHEAD | flagTAIL
			flags[idx(i+1)] |= flagHEAD
			if dp2 == d00 {
				flags[idx(i+1)] |= flagTAIL
				flags[idx(i+2)] |= flagHEAD
			}
			if dm2 == d00 {
				flags[idx(i-2)] |= flagTAIL
				flags[idx(i-1)] |= flagHEAD
			}
		}
	}

	type cut struct {
		ia, ib int
	}
	var cuts []cut
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if flags[i]&flagTAIL != 0 && flags[j]&flagHEAD != 0 &&
			flags[i]&flagXTAIL == 0 && flags[j]&flagXHEAD == 0 {
			cuts = append(cuts, cut{i, j})
		}
	}
	if len(cuts) == 0 {
		return poly
	}

	edges := append(Polygon(nil), poly...)
	for _, c := range cuts {
		ia, ib := edges[c.ia], edges[c.ib]
		dxA, dyA := dirVector(ia.TrivialDir())
		dxB, dyB := dirVector(ib.TrivialDir())
		newEnd := geom.Vertex{Y: ia.End.Y - dyA*stepY, X: ia.End.X - dxA*stepX}
		newStart := geom.Vertex{Y: ib.Start.Y + dyB*stepY, X: ib.Start.X + dxB*stepX}
		edges[c.ia] = geom.Edge{Start: ia.Start, End: newEnd}
		edges[c.ib] = geom.Edge{Start: newStart, End: ib.End}
	}

	// Rebuild the cycle, splicing in a diagonal after every cut ia.
	cutByIa := make(map[int]int, len(cuts))
	for _, c := range cuts {
		cutByIa[c.ia] = c.ib
	}
	out := make(Polygon, 0, n+len(cuts))
	for i := 0; i < n; i++ {
		e := edges[i]
		if e.Start != e.End {
			out = append(out, e)
		}
		if ib, ok := cutByIa[i]; ok {
			diag := geom.Edge{Start: edges[i].End, End: edges[ib].Start}
			if diag.Start != diag.End {
				out = append(out, diag)
			}
		}
	}
	return coalesceRuns(out)
}

// coalesceRuns merges consecutive same-direction edges, the cleanup
// pass n2Angle runs after splicing in diagonals (spec §4.5 "coalesce
// consecutive same-direction edges").
func coalesceRuns(poly Polygon) Polygon {
	if len(poly) < 2 {
		return poly
	}
	out := Polygon{poly[0]}
	for _, e := range poly[1:] {
		last := &out[len(out)-1]
		if last.End == e.Start && last.TrivialDir() == e.TrivialDir() {
			last.End = e.End
			continue
		}
		out = append(out, e)
	}
	// wraparound: merge the last run back into the first if they share a direction
	if len(out) > 1 && out[0].Start == out[len(out)-1].End && out[0].TrivialDir() == out[len(out)-1].TrivialDir() {
		out[0].Start = out[len(out)-1].Start
		out = out[:len(out)-1]
	}
	return out
}

// N2 runs the `n2` vectorization strategy (spec §4.5): build plain
// per-pixel squares, fuse them by internal-edge removal exactly like
// Simple, then run n2Angle over each extracted polygon to turn
// rectilinear staircases into short diagonals.
func N2(bm Bitmap, descent int, sc Scale) []Polygon {
	return n2Run(bm, descent, sc, false)
}

// N2EV is the V_N2EV variant of N2: at a two-way branch vertex it
// consults the bitmap's local 2x2 neighborhood around that vertex and
// only takes the ordinary "inward" branch when that neighborhood
// matches one of the two antijoin patterns (a diagonal pinch: exactly
// one diagonal pair of the four pixels meeting at the vertex is set);
// otherwise it takes the outward branch, merging the two regions
// instead of keeping them separate (spec §4.2 "P_ISTHMUS", §9 "only
// antijoin patterns A1 and A2 are implemented, J1 intentionally
// isn't").
func N2EV(bm Bitmap, descent int, sc Scale) []Polygon {
	return n2Run(bm, descent, sc, true)
}

func n2Run(bm Bitmap, descent int, sc Scale, isthmus bool) []Polygon {
	g := NewEdgeGraph()
	MakeSquares(bm, descent, sc, g)
	g.RemoveInternalEdges()

	h := bm.Height()
	var resolve func(v geom.Vertex, cands []geom.Edge, prevDir int) geom.Edge
	if isthmus {
		resolve = func(v geom.Vertex, cands []geom.Edge, prevDir int) geom.Edge {
			inward := pickInward(cands, prevDir)
			if isthmusAntijoin(bm, v, sc, descent, h) {
				return inward
			}
			for _, c := range cands {
				if c != inward {
					return c
				}
			}
			return inward
		}
	} else {
		resolve = func(v geom.Vertex, cands []geom.Edge, prevDir int) geom.Edge {
			return pickInward(cands, prevDir)
		}
	}

	stepX, stepY := sc.Half()
	var polys []Polygon
	for !g.Empty() {
		poly := popWalk(g, false, resolve)
		if len(poly) == 0 {
			break
		}
		polys = append(polys, n2Angle(poly, stepX, stepY))
	}
	return polys
}

// isthmusAntijoin reports whether the four pixels meeting at outline
// vertex v (in scaled outline coordinates, before n2Angle runs)
// form a diagonal pinch: exactly one of the two diagonal pairs
// {NW,SE} or {NE,SW} is set and the other pair is clear. That is this
// package's reading of spec §4.2's "antijoin patterns A1, A2" -- the
// one case where collapsing the branch into a single outward walk
// would silently fuse two regions that only touch at a single point.
func isthmusAntijoin(bm Bitmap, v geom.Vertex, sc Scale, descent, h int) bool {
	if sc.Sx == 0 || sc.Sy == 0 {
		return false
	}
	gy := v.Y / sc.Sy
	gx := v.X / sc.Sx
	yAbove := h - 1 - descent - gy
	yBelow := h - descent - gy
	xLeft := gx - 1
	xRight := gx

	nw := bm.At(xLeft, yAbove)
	ne := bm.At(xRight, yAbove)
	sw := bm.At(xLeft, yBelow)
	se := bm.At(xRight, yBelow)

	a1 := nw && se && !ne && !sw
	a2 := ne && sw && !nw && !se
	return a1 || a2
}

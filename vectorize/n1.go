package vectorize

import "github.com/consoleet/consoleet-utils/geom"

// neighborhood9 is the boolean 3x3 neighborhood around a set pixel,
// named c1 (upper-left) through c9 (lower-right) with c5 the pixel
// itself, matching spec §4.4's naming exactly so the corner formulas
// below can be transcribed verbatim.
type neighborhood9 struct {
	c1, c2, c3 bool
	c4, c5, c6 bool
	c7, c8, c9 bool
}

func sampleNeighborhood9(bm Bitmap, x, y int) neighborhood9 {
	return neighborhood9{
		c1: bm.At(x-1, y-1), c2: bm.At(x, y-1), c3: bm.At(x+1, y-1),
		c4: bm.At(x-1, y), c5: bm.At(x, y), c6: bm.At(x+1, y),
		c7: bm.At(x-1, y+1), c8: bm.At(x, y+1), c9: bm.At(x+1, y+1),
	}
}

// cornerBools evaluates the five corner booleans from spec §4.4,
// transcribed exactly from the stated boolean formulas. A corner
// boolean true means "keep this corner square"; false means "chamfer
// it", cutting a diagonal across that corner instead. di is the
// pixel's own bit, gating whether anything is emitted at all.
func cornerBools(n neighborhood9) (di, tl, tr, bl, br bool) {
	di = n.c5

	tl = (n.c4 && ((n.c8 && ((!n.c7 && (n.c1 || n.c3 || n.c9)) || (!n.c1 && !n.c2) || (!n.c6 && !n.c9))) || n.c5)) ||
		(n.c5 && ((!n.c1 && !n.c9) || n.c7 || n.c8))

	tr = (((!n.c7 && !n.c3) || n.c9 || n.c8 || n.c6) && n.c5) ||
		(((!n.c9 && (n.c1 || n.c3 || n.c7)) || (!n.c2 && !n.c3) || (!n.c4 && !n.c7)) && n.c8 && n.c6)

	bl = (n.c5 && (n.c1 || n.c2 || (!n.c3 && !n.c7) || n.c4)) ||
		(n.c2 && n.c4 && ((!n.c1 && (n.c3 || n.c7 || n.c9)) || (!n.c3 && !n.c6) || (!n.c7 && !n.c8)))

	br = (n.c2 && ((n.c6 && ((!n.c3 && (n.c1 || n.c7 || n.c9)) || (!n.c1 && !n.c4) || (!n.c8 && !n.c9))) || n.c5)) ||
		(n.c5 && ((!n.c1 && !n.c9) || n.c3 || n.c6))

	return
}

// emitPixelN1 inserts the edges of one pixel's sub-pixel pattern into
// g: the eight candidate points around the pixel's 2x-scaled square
// (the four corners and the four edge midpoints), walked in the same
// cyclic order MakeSquares uses, skipping a corner's vertex (and
// chording straight across its two neighboring midpoints) whenever
// that corner's boolean is false.
func emitPixelN1(n neighborhood9, yy, x int, sc Scale) []geom.Edge {
	top := (yy + 1) * sc.Sy
	bot := yy * sc.Sy
	left := x * sc.Sx
	right := (x + 1) * sc.Sx
	midY := (top + bot) / 2
	midX := (left + right) / 2

	tlV := geom.Vertex{Y: top, X: left}
	leftMid := geom.Vertex{Y: midY, X: left}
	blV := geom.Vertex{Y: bot, X: left}
	botMid := geom.Vertex{Y: bot, X: midX}
	brV := geom.Vertex{Y: bot, X: right}
	rightMid := geom.Vertex{Y: midY, X: right}
	trV := geom.Vertex{Y: top, X: right}
	topMid := geom.Vertex{Y: top, X: midX}

	_, tl, tr, bl, br := cornerBools(n)

	type slot struct {
		v       geom.Vertex
		include bool
	}
	cycle := []slot{
		{tlV, tl},
		{leftMid, true},
		{blV, bl},
		{botMid, true},
		{brV, br},
		{rightMid, true},
		{trV, tr},
		{topMid, true},
	}

	var active []geom.Vertex
	for _, s := range cycle {
		if s.include {
			active = append(active, s.v)
		}
	}

	edges := make([]geom.Edge, 0, len(active))
	for i, v := range active {
		next := active[(i+1)%len(active)]
		if v == next {
			continue
		}
		edges = append(edges, geom.Edge{Start: v, End: next})
	}
	return edges
}

// N1 runs the `n1` vectorization strategy (spec §4.4): instead of a
// plain square per set pixel, each pixel emits a sub-pixel pattern
// determined by its 3x3 neighborhood, chamfering corners that face
// a bitmap staircase to imitate smooth diagonals while leaving
// isolated dots and solid interiors as plain squares.
func N1(bm Bitmap, descent int, sc Scale) []Polygon {
	g := NewEdgeGraph()
	h := bm.Height()
	for y := 0; y < h; y++ {
		yy := h - 1 - y - descent
		for x := 0; x < bm.Width(); x++ {
			if !bm.At(x, y) {
				continue
			}
			n := sampleNeighborhood9(bm, x, y)
			for _, e := range emitPixelN1(n, yy, x, sc) {
				g.Insert(e)
			}
		}
	}
	g.RemoveInternalEdges()
	return PopAll(g, true)
}

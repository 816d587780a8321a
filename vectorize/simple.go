package vectorize

// Simple runs the `simple` vectorization strategy (spec §4.3): emit
// one unit square per set pixel, fuse touching squares by deleting
// internal edges, then pop polygons with adjacent same-direction
// edges merged into single straight runs. The result is the minimal
// rectilinear outline that exactly reproduces bm's pixel boundary --
// no diagonal or sub-pixel detail, which is what makes it the
// cheapest and least surprising of the three strategies.
func Simple(bm Bitmap, descent int, sc Scale) []Polygon {
	g := NewEdgeGraph()
	MakeSquares(bm, descent, sc, g)
	g.RemoveInternalEdges()
	return PopAll(g, true)
}

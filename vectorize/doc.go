// Package vectorize converts monochrome raster glyphs into closed,
// oriented polygons suitable for spline-font output. Three strategies
// are offered (Simple, N1, N2/N2EV); all three share the same
// edge-graph representation, internal-edge elimination, and
// right-turn polygon walk described in spec §4.2, and differ only in
// how they seed the graph (and, for N2, in an additional per-polygon
// diagonalization pass).
//
// Coordinates are scaled by an integer (Sx, Sy) factor, conventionally
// (2, 2): the extra resolution is what makes N2's half-pixel nodal
// points land on integers.
package vectorize

package vectorize

import (
	"github.com/consoleet/consoleet-utils/geom"
	"golang.org/x/image/math/fixed"
)

// Scale is the per-axis integer coordinate scale factor applied before
// edges are emitted, conventionally {2, 2} so that N2's half-pixel
// diagonal nodes land on integers (spec §4).
type Scale struct {
	Sx, Sy int
}

// Half returns sc's half-unit step in each axis, the distance
// n2Angle pulls a boundary edge back to make room for a diagonal cut
// (spec §4.5 "n2_angle(poly, sx/2, sy/2)"). It goes through
// fixed.Int26_6 rather than plain integer division so the rounding
// rule matches the sub-pixel nodal-point arithmetic the rest of the
// N2 pipeline relies on (spec §4.2's "half-pixel nodal points, which
// scaling makes integral").
func (sc Scale) Half() (stepX, stepY int) {
	halfOf := func(n int) int {
		return int((fixed.I(n) / 2) >> 6)
	}
	return halfOf(sc.Sx), halfOf(sc.Sy)
}

// Bitmap is the minimal raster surface the vectorizer reads from: a
// Width x Height grid of set/unset pixels. [vfa.Glyph] satisfies it.
type Bitmap interface {
	At(x, y int) bool
	Width() int
	Height() int
}

// MakeSquares emits, for every set pixel of bm, the four edges of a
// counter-clockwise unit square scaled by sc, with the glyph's
// descent subtracted from the row index so that outline y=0 sits on
// the baseline (spec §4.2 "Pixel emission"). The interior of a set
// pixel is to the right of each of its four edges, matching the
// TTF/OTF "fill is right of path" convention: left edge downward,
// bottom edge rightward, right edge upward, top edge leftward.
func MakeSquares(bm Bitmap, descent int, sc Scale, g *EdgeGraph) {
	h := bm.Height()
	for y := 0; y < h; y++ {
		yy := h - 1 - y - descent
		for x := 0; x < bm.Width(); x++ {
			if !bm.At(x, y) {
				continue
			}
			top := (yy + 1) * sc.Sy
			bot := yy * sc.Sy
			left := x * sc.Sx
			right := (x + 1) * sc.Sx

			tl := geom.Vertex{Y: top, X: left}
			tr := geom.Vertex{Y: top, X: right}
			bl := geom.Vertex{Y: bot, X: left}
			br := geom.Vertex{Y: bot, X: right}

			g.Insert(geom.Edge{Start: tl, End: bl}) // left edge, downward
			g.Insert(geom.Edge{Start: bl, End: br}) // bottom edge, rightward
			g.Insert(geom.Edge{Start: br, End: tr}) // right edge, upward
			g.Insert(geom.Edge{Start: tr, End: tl}) // top edge, leftward
		}
	}
}

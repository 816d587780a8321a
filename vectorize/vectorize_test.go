package vectorize

import (
	"testing"

	"github.com/consoleet/consoleet-utils/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBitmap is a minimal [Bitmap] backed by a slice of strings, one
// per row, '1' for a set pixel, anything else for unset -- used
// throughout this file instead of pulling in the vfa package, to keep
// vectorize testable in isolation.
type testBitmap struct {
	rows []string
}

func (b testBitmap) Width() int  { return len(b.rows[0]) }
func (b testBitmap) Height() int { return len(b.rows) }
func (b testBitmap) At(x, y int) bool {
	if y < 0 || y >= len(b.rows) || x < 0 || x >= len(b.rows[y]) {
		return false
	}
	return b.rows[y][x] == '1'
}

func closedAndOriented(t *testing.T, polys []Polygon) {
	t.Helper()
	for i, p := range polys {
		assert.True(t, p.Closed(), "polygon %d not closed: %+v", i, p)
	}
}

func TestSimpleSinglePixelSquare(t *testing.T) {
	bm := testBitmap{rows: []string{"1"}}
	polys := Simple(bm, 0, Scale{2, 2})
	require.Len(t, polys, 1)
	closedAndOriented(t, polys)
	assert.Equal(t, 4, len(polys[0]))
	assert.Greater(t, polys[0].ShoelaceArea(), int64(0))
}

func TestSimpleFusesAdjacentPixels(t *testing.T) {
	bm := testBitmap{rows: []string{"11"}}
	polys := Simple(bm, 0, Scale{2, 2})
	require.Len(t, polys, 1)
	closedAndOriented(t, polys)
	// Two fused unit squares simplify to a 2:1 rectangle: 4 edges.
	assert.Equal(t, 4, len(polys[0]))
}

func TestSimpleDisjointPixelsProduceSeparatePolygons(t *testing.T) {
	bm := testBitmap{rows: []string{
		"101",
		"000",
		"101",
	}}
	polys := Simple(bm, 0, Scale{2, 2})
	assert.Len(t, polys, 4)
	closedAndOriented(t, polys)
}

func TestSimpleTopologyRoundTrip(t *testing.T) {
	// Every polygon from `simple` is an axis-aligned rectilinear
	// outline; rasterizing it by even-odd fill at native pixel
	// resolution must reproduce the source bitmap exactly (spec §8).
	rows := []string{
		"01110",
		"10001",
		"10001",
		"10001",
		"01110",
	}
	bm := testBitmap{rows: rows}
	polys := Simple(bm, 0, Scale{2, 2})
	closedAndOriented(t, polys)

	got := rasterizeEvenOdd(polys, bm.Width(), bm.Height(), 0, Scale{2, 2})
	assert.Equal(t, rows, got)
}

// rasterizeEvenOdd re-rasterizes a set of polygons at native pixel
// scale by sampling each pixel's center with an even-odd crossing
// count, the same check spec §8 calls for to validate Simple's
// topology preservation.
func rasterizeEvenOdd(polys []Polygon, w, h, descent int, sc Scale) []string {
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		yy := h - 1 - y - descent
		cy := float64(yy*sc.Sy) + float64(sc.Sy)/2
		row := make([]byte, w)
		for x := 0; x < w; x++ {
			cx := float64(x*sc.Sx) + float64(sc.Sx)/2
			inside := false
			for _, p := range polys {
				for _, e := range p {
					y0, y1 := float64(e.Start.Y), float64(e.End.Y)
					if (cy >= y0) == (cy >= y1) {
						continue
					}
					x0, x1 := float64(e.Start.X), float64(e.End.X)
					xCross := x0 + (cy-y0)/(y1-y0)*(x1-x0)
					if xCross > cx {
						inside = !inside
					}
				}
			}
			if inside {
				row[x] = '1'
			} else {
				row[x] = '0'
			}
		}
		rows[y] = string(row)
	}
	return rows
}

func TestPopOneClosesSingleSquare(t *testing.T) {
	g := NewEdgeGraph()
	MakeSquares(testBitmap{rows: []string{"1"}}, 0, Scale{2, 2}, g)
	poly := PopOne(g, false)
	assert.True(t, poly.Closed())
	assert.Equal(t, 4, len(poly))
	assert.True(t, g.Empty())
}

func TestN1IsolatedPixelStaysSquare(t *testing.T) {
	bm := testBitmap{rows: []string{
		"000",
		"010",
		"000",
	}}
	polys := N1(bm, 0, Scale{2, 2})
	require.Len(t, polys, 1)
	closedAndOriented(t, polys)
	assert.Equal(t, 4, len(polys[0]))
}

func TestN1Deterministic(t *testing.T) {
	bm := testBitmap{rows: []string{
		"01110",
		"10001",
		"10101",
		"10001",
		"01110",
	}}
	a := N1(bm, 0, Scale{2, 2})
	b := N1(bm, 0, Scale{2, 2})
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestN2DiagonalScenario(t *testing.T) {
	// Scenario 5 (spec §8): a 5x5 diagonal bitmap vectorized with n2
	// produces exactly one polygon whose edge count is 4 after
	// simplification, bounding the scaled bitmap.
	bm := testBitmap{rows: []string{
		"10000",
		"01000",
		"00100",
		"00010",
		"00001",
	}}
	polys := N2(bm, 0, Scale{2, 2})
	require.Len(t, polys, 1)
	closedAndOriented(t, polys)
	assert.LessOrEqual(t, len(polys[0]), 8)
}

func TestPolygonShoelaceSignsDistinguishEnclave(t *testing.T) {
	outer := Polygon{
		{Start: geom.Vertex{Y: 0, X: 0}, End: geom.Vertex{Y: 0, X: 4}},
		{Start: geom.Vertex{Y: 0, X: 4}, End: geom.Vertex{Y: 4, X: 4}},
		{Start: geom.Vertex{Y: 4, X: 4}, End: geom.Vertex{Y: 4, X: 0}},
		{Start: geom.Vertex{Y: 4, X: 0}, End: geom.Vertex{Y: 0, X: 0}},
	}
	enclave := Polygon{
		{Start: geom.Vertex{Y: 1, X: 1}, End: geom.Vertex{Y: 3, X: 1}},
		{Start: geom.Vertex{Y: 3, X: 1}, End: geom.Vertex{Y: 3, X: 3}},
		{Start: geom.Vertex{Y: 3, X: 3}, End: geom.Vertex{Y: 1, X: 3}},
		{Start: geom.Vertex{Y: 1, X: 3}, End: geom.Vertex{Y: 1, X: 1}},
	}
	assert.True(t, outer.ShoelaceArea() > 0)
	assert.True(t, enclave.ShoelaceArea() < 0)
}

func TestN2AngleSkipsShortPolygons(t *testing.T) {
	bm := testBitmap{rows: []string{"1"}}
	polys := N2(bm, 0, Scale{2, 2})
	require.Len(t, polys, 1)
	assert.True(t, polys[0].Closed())
}

func TestN2EVDeterministic(t *testing.T) {
	bm := testBitmap{rows: []string{
		"1100",
		"1100",
		"0011",
		"0011",
	}}
	a := N2EV(bm, 0, Scale{2, 2})
	b := N2EV(bm, 0, Scale{2, 2})
	require.Equal(t, len(a), len(b))
	for _, p := range a {
		assert.True(t, p.Closed())
	}
}

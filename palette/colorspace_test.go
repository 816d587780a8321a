package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSRGBLinearRoundTrip(t *testing.T) {
	e := NewEngine()
	for _, c := range []SRGB888{{0, 0, 0}, {255, 255, 255}, {128, 64, 200}, {17, 200, 3}} {
		got := e.ToSRGB888(e.ToLinear(c))
		assert.InDelta(t, int(c.R), int(got.R), 1)
		assert.InDelta(t, int(c.G), int(got.G), 1)
		assert.InDelta(t, int(c.B), int(got.B), 1)
	}
}

func TestLChRoundTrip(t *testing.T) {
	e := NewEngine()
	for _, c := range []SRGB888{{10, 10, 10}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {200, 200, 200}} {
		lch := e.ToLCh(c)
		got := e.ToSRGB888FromLCh(lch)
		assert.InDelta(t, int(c.R), int(got.R), 1)
		assert.InDelta(t, int(c.G), int(got.G), 1)
		assert.InDelta(t, int(c.B), int(got.B), 1)
	}
}

func TestWhitepointSanity(t *testing.T) {
	// spec §8: with ild=6500, (0.5, 0.5, 0.5) linear -> LCh with
	// c ~= 0 and l ~= 53.4 +/- 0.1.
	e := NewEngine()
	e.SetWhitepoint(6500)
	lab := e.ToLab(e.ToXYZFrom(Linear{R: 0.5, G: 0.5, B: 0.5}))
	lch := ToLCh(lab)
	assert.InDelta(t, 0, lch.C, 0.05)
	assert.InDelta(t, 53.4, lch.L, 0.5)
}

func TestWhitepointChangePropagates(t *testing.T) {
	e1 := NewEngine()
	e1.SetWhitepoint(5000)
	e2 := NewEngine()
	e2.SetWhitepoint(6500)
	c := SRGB888{200, 50, 30}
	l1 := e1.ToLCh(c)
	l2 := e2.ToLCh(c)
	assert.NotEqual(t, l1.L, l2.L)
}

func TestHSLRoundTrip(t *testing.T) {
	for _, c := range []SRGB888{{10, 200, 30}, {0, 0, 0}, {255, 255, 255}, {128, 128, 128}} {
		hsl := ToHSL(c)
		got := ToSRGB888FromHSL(hsl)
		assert.InDelta(t, int(c.R), int(got.R), 1)
		assert.InDelta(t, int(c.G), int(got.G), 1)
		assert.InDelta(t, int(c.B), int(got.B), 1)
	}
}

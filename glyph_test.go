package vfa

import (
	"testing"

	"github.com/consoleet/consoleet-utils/geom"
)

func glyphFromStrings(rows ...string) Glyph {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	g := NewGlyph(geom.Size{W: uint(w), H: uint(h)})
	for y, row := range rows {
		for x, c := range row {
			if c == '1' {
				g.set(x, y)
			}
		}
	}
	return g
}

func TestRowpadRoundTrip(t *testing.T) {
	g := glyphFromStrings(
		"101010101",
		"111111111",
		"000000001",
	)
	rt := CreateFromRowpad(g.Size, g.AsRowpad())
	if !g.Equal(rt) {
		t.Fatalf("round trip through AsRowpad/CreateFromRowpad changed the glyph")
	}
}

func TestFlipIsSelfInverse(t *testing.T) {
	g := glyphFromStrings("100", "010", "001")
	if !g.Flip(true, false).Flip(true, false).Equal(g) {
		t.Error("flip(x) twice must be identity")
	}
	if !g.Flip(false, true).Flip(false, true).Equal(g) {
		t.Error("flip(y) twice must be identity")
	}
	if !g.Flip(true, true).Flip(true, true).Equal(g) {
		t.Error("flip(x,y) twice must be identity")
	}
}

func TestUpscaleIdentityAndSize(t *testing.T) {
	g := glyphFromStrings("10", "01")
	if !g.Upscale(1, 1).Equal(g) {
		t.Error("Upscale(1,1) must be identity")
	}
	up := g.Upscale(3, 2)
	if up.Size.W != g.Size.W*3 || up.Size.H != g.Size.H*2 {
		t.Errorf("Upscale size = %+v, want %dx%d", up.Size, g.Size.W*3, g.Size.H*2)
	}
}

func TestCopyToBlankIsIdentity(t *testing.T) {
	g := glyphFromStrings("101", "010", "111")
	rect := geom.NewRect(0, 0, g.Size.W, g.Size.H)
	cp := g.CopyRectTo(rect, NewGlyph(g.Size), rect, true)
	if !cp.Equal(g) {
		t.Error("copying a full rect onto a blank canvas must reproduce the source")
	}
}

func TestOverstrike(t *testing.T) {
	g := glyphFromStrings("100", "010", "001")
	if !g.Overstrike(0).Equal(g) {
		t.Error("Overstrike(0) must be identity")
	}
	os := g.Overstrike(2)
	for y := 0; y < int(g.Size.H); y++ {
		for x := 0; x < int(g.Size.W); x++ {
			if g.At(x, y) && !os.At(x, y) {
				t.Fatalf("Overstrike result must be a superset of the original at (%d,%d)", x, y)
			}
		}
	}
}

func TestFindBaseline(t *testing.T) {
	blank := NewGlyph(geom.Size{W: 4, H: 4})
	if blank.FindBaseline() != -1 {
		t.Error("an entirely blank glyph must report baseline -1")
	}
	g := glyphFromStrings("0000", "0100", "0000", "0000")
	if bl := g.FindBaseline(); bl != 2 {
		t.Errorf("FindBaseline() = %d, want 2", bl)
	}
}

func TestInvertSetsTrailingBitsDontCare(t *testing.T) {
	g := glyphFromStrings("111", "000", "111")
	g.Invert()
	want := glyphFromStrings("000", "111", "000")
	if !g.Equal(want) {
		t.Error("Invert must flip every addressable pixel")
	}
}

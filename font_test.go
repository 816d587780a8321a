package vfa

import (
	"testing"

	"github.com/consoleet/consoleet-utils/geom"
)

func TestInit256Blanks(t *testing.T) {
	f := NewFont()
	f.Init256Blanks()
	if len(f.Glyphs) != 256 {
		t.Fatalf("len(Glyphs) = %d, want 256", len(f.Glyphs))
	}
	for i, g := range f.Glyphs {
		if g.Size.W != 8 || g.Size.H != 16 {
			t.Fatalf("glyph %d size = %+v, want 8x16", i, g.Size)
		}
	}
}

func TestUpscaleRejectsZeroFactor(t *testing.T) {
	f := NewFont()
	f.Init256Blanks()
	if err := f.Upscale(0, 2); err == nil {
		t.Error("Upscale with a zero factor must return an error")
	}
	if err := f.Upscale(2, 2); err != nil {
		t.Errorf("Upscale(2,2) returned unexpected error: %v", err)
	}
	if f.Glyphs[0].Size.W != 16 || f.Glyphs[0].Size.H != 32 {
		t.Errorf("glyph size after Upscale(2,2) = %+v", f.Glyphs[0].Size)
	}
}

func TestLgeURequiresUnicodeMap(t *testing.T) {
	f := NewFont()
	f.Init256Blanks()
	if err := f.LgeU(); err == nil {
		t.Error("LgeU without a unicode map must report an error")
	}
	f.Map = NewUnicodeMap()
	f.Map.AddI2U(10, 0x2500)
	if err := f.LgeU(); err != nil {
		t.Errorf("LgeU with a unicode map returned unexpected error: %v", err)
	}
}

func TestCanvasAnchorsAtOrigin(t *testing.T) {
	f := NewFont()
	g := glyphFromStrings("11", "11")
	f.Glyphs = []Glyph{g}
	f.Canvas(4, 4)
	if f.Glyphs[0].Size != (geom.Size{W: 4, H: 4}) {
		t.Fatalf("Canvas size = %+v, want 4x4", f.Glyphs[0].Size)
	}
	if !f.Glyphs[0].At(0, 0) || !f.Glyphs[0].At(1, 1) {
		t.Error("original pixels must remain anchored at the origin")
	}
	if f.Glyphs[0].At(3, 3) {
		t.Error("newly added canvas area must stay blank")
	}
}

package vformat

import (
	"bytes"
	"testing"

	vfa "github.com/consoleet/consoleet-utils"
	"github.com/consoleet/consoleet-utils/geom"
)

func letterAGlyph() vfa.Glyph {
	// 8x16 "A" profile from spec §8 scenario 2's HEX fixture.
	raw := []byte{
		0x00, 0x18, 0x18, 0x24, 0x24, 0x42, 0x42, 0x7E,
		0x7E, 0x81, 0x81, 0x81, 0x81, 0x00, 0x00, 0x00,
	}
	return vfa.CreateFromRowpad(geom.Size{W: 8, H: 16}, raw)
}

func TestHEXRoundTrip(t *testing.T) {
	f := vfa.NewFont()
	f.Map = vfa.NewUnicodeMap()
	f.Glyphs = []vfa.Glyph{letterAGlyph()}
	f.Map.AddI2U(0, 'A')

	var buf bytes.Buffer
	if err := SaveHEX(&buf, f); err != nil {
		t.Fatalf("SaveHEX: %v", err)
	}

	got, err := LoadHEX(&buf)
	if err != nil {
		t.Fatalf("LoadHEX: %v", err)
	}
	if len(got.Glyphs) != 1 {
		t.Fatalf("expected 1 glyph, got %d", len(got.Glyphs))
	}
	if !got.Glyphs[0].Equal(f.Glyphs[0]) {
		t.Fatal("round-tripped glyph does not match original")
	}
	if idx := got.Map.ToIndex('A'); idx != 0 {
		t.Fatalf("expected index 0 for 'A', got %d", idx)
	}
}

func TestHEXLineFormat(t *testing.T) {
	// spec §8 scenario 2's exact fixture line.
	line := "0041:0018182424427E7E818181810000"
	f, err := LoadHEX(bytes.NewBufferString(line))
	if err != nil {
		t.Fatalf("LoadHEX: %v", err)
	}
	if len(f.Glyphs) != 1 {
		t.Fatalf("expected 1 glyph, got %d", len(f.Glyphs))
	}
	if f.Glyphs[0].Size.W != 8 || f.Glyphs[0].Size.H != 16 {
		t.Fatalf("expected 8x16, got %dx%d", f.Glyphs[0].Size.W, f.Glyphs[0].Size.H)
	}
}

func TestPBMRoundTrip(t *testing.T) {
	f := vfa.NewFont()
	f.Glyphs = []vfa.Glyph{letterAGlyph(), vfa.NewGlyph(geom.Size{W: 8, H: 16})}

	var buf bytes.Buffer
	if err := SavePBM(&buf, f); err != nil {
		t.Fatalf("SavePBM: %v", err)
	}
	got, err := LoadPBM(&buf, 8, 16)
	if err != nil {
		t.Fatalf("LoadPBM: %v", err)
	}
	if len(got.Glyphs) < 2 {
		t.Fatalf("expected at least 2 glyphs, got %d", len(got.Glyphs))
	}
	if !got.Glyphs[0].Equal(f.Glyphs[0]) {
		t.Fatal("round-tripped first glyph does not match original")
	}
}

func TestCLTRoundTrip(t *testing.T) {
	f := vfa.NewFont()
	f.Glyphs = []vfa.Glyph{letterAGlyph()}

	var buf bytes.Buffer
	if err := SaveCLT(&buf, f); err != nil {
		t.Fatalf("SaveCLT: %v", err)
	}
	got, err := LoadCLT(&buf)
	if err != nil {
		t.Fatalf("LoadCLT: %v", err)
	}
	if len(got.Glyphs) != 1 || !got.Glyphs[0].Equal(f.Glyphs[0]) {
		t.Fatal("round-tripped glyph does not match original")
	}
}

func TestUnimapLoadIdemAndCodepoints(t *testing.T) {
	text := "# comment\n0-31 idem\n65 U+0041\n66 U+0042 U+00C9\n"
	m, err := LoadUnimap(bytes.NewBufferString(text))
	if err != nil {
		t.Fatalf("LoadUnimap: %v", err)
	}
	if idx := m.ToIndex('A'); idx != 65 {
		t.Fatalf("expected index 65 for 'A', got %d", idx)
	}
	cps := m.ToUnicode(66)
	if len(cps) != 2 {
		t.Fatalf("expected 2 codepoints for index 66, got %d", len(cps))
	}
	// Index 5 was never explicitly added even under the "idem" range;
	// identity default still applies.
	if u := m.ToUnicode(5); len(u) != 1 || u[0] != 5 {
		t.Fatalf("expected identity default for untouched index 5, got %v", u)
	}
}

func TestUnimapRangeRequiresIdem(t *testing.T) {
	_, err := LoadUnimap(bytes.NewBufferString("0-31 U+0041\n"))
	if err == nil {
		t.Fatal("expected an error for a ranged non-idem mapping")
	}
}

func TestPSF1RoundTrip(t *testing.T) {
	f := vfa.NewFont()
	f.Map = vfa.NewUnicodeMap()
	f.Glyphs = []vfa.Glyph{letterAGlyph()}
	for i := 1; i < 256; i++ {
		f.Glyphs = append(f.Glyphs, vfa.NewGlyph(geom.Size{W: 8, H: 16}))
	}
	f.Map.AddI2U(0, 'A')

	var buf bytes.Buffer
	if err := SavePSF1(&buf, f); err != nil {
		t.Fatalf("SavePSF1: %v", err)
	}
	got, err := LoadPSF1(&buf)
	if err != nil {
		t.Fatalf("LoadPSF1: %v", err)
	}
	if len(got.Glyphs) != 256 {
		t.Fatalf("expected 256 glyphs, got %d", len(got.Glyphs))
	}
	if !got.Glyphs[0].Equal(f.Glyphs[0]) {
		t.Fatal("round-tripped glyph does not match original")
	}
	if idx := got.Map.ToIndex('A'); idx != 0 {
		t.Fatalf("expected index 0 for 'A', got %d", idx)
	}
}

func TestPSF2RoundTrip(t *testing.T) {
	f := vfa.NewFont()
	f.Map = vfa.NewUnicodeMap()
	f.Glyphs = []vfa.Glyph{letterAGlyph()}
	f.Map.AddI2U(0, 'A')

	var buf bytes.Buffer
	if err := SavePSF2(&buf, f); err != nil {
		t.Fatalf("SavePSF2: %v", err)
	}
	got, err := LoadPSF2(&buf)
	if err != nil {
		t.Fatalf("LoadPSF2: %v", err)
	}
	if len(got.Glyphs) != 1 || !got.Glyphs[0].Equal(f.Glyphs[0]) {
		t.Fatal("round-tripped glyph does not match original")
	}
	if idx := got.Map.ToIndex('A'); idx != 0 {
		t.Fatalf("expected index 0 for 'A', got %d", idx)
	}
}

func TestBDFRoundTrip(t *testing.T) {
	f := vfa.NewFont()
	f.Map = vfa.NewUnicodeMap()
	f.Glyphs = []vfa.Glyph{letterAGlyph()}
	f.Map.AddI2U(0, 'A')

	var buf bytes.Buffer
	if err := SaveBDF(&buf, f); err != nil {
		t.Fatalf("SaveBDF: %v", err)
	}
	got, err := LoadBDF(&buf)
	if err != nil {
		t.Fatalf("LoadBDF: %v", err)
	}
	if len(got.Glyphs) != 1 || !got.Glyphs[0].Equal(f.Glyphs[0]) {
		t.Fatal("round-tripped glyph does not match original")
	}
	if idx := got.Map.ToIndex('A'); idx != 0 {
		t.Fatalf("expected index 0 for 'A', got %d", idx)
	}
}

func TestFNTRoundTrip(t *testing.T) {
	f := vfa.NewFont()
	f.Glyphs = []vfa.Glyph{letterAGlyph(), letterAGlyph()}

	var buf bytes.Buffer
	if err := SaveFNT(&buf, f); err != nil {
		t.Fatalf("SaveFNT: %v", err)
	}
	got, err := LoadFNT(&buf, 16, 2)
	if err != nil {
		t.Fatalf("LoadFNT: %v", err)
	}
	if len(got.Glyphs) != 2 || !got.Glyphs[0].Equal(f.Glyphs[0]) {
		t.Fatal("round-tripped glyph does not match original")
	}
}

func TestXlateOffsetFormula(t *testing.T) {
	// spec §6: (x>>12) + (x & 0xFFFF)
	got := XlateOffset(0x00012345)
	want := uint32(0x00012345>>12) + uint32(0x00012345&0xFFFF)
	if got != want {
		t.Fatalf("XlateOffset(0x12345) = %d, want %d", got, want)
	}
}

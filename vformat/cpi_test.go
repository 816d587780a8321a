package vformat

import (
	"bytes"
	"testing"

	vfa "github.com/consoleet/consoleet-utils"
)

func TestCPIRoundTripNoIce(t *testing.T) {
	f := vfa.NewFont()
	f.Glyphs = []vfa.Glyph{letterAGlyph()}
	pages := []CodePage{
		{
			Device:   DeviceScreen,
			Codepage: 437,
			Fonts:    []CPFont{{Height: 16, Width: 8, Font: f}},
		},
	}

	var buf bytes.Buffer
	if err := SaveCPI(&buf, pages, false); err != nil {
		t.Fatalf("SaveCPI: %v", err)
	}

	got, err := LoadCPI(bytes.NewReader(buf.Bytes()), false)
	if err != nil {
		t.Fatalf("LoadCPI: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 codepage, got %d", len(got))
	}
	if got[0].Codepage != 437 {
		t.Fatalf("expected codepage 437, got %d", got[0].Codepage)
	}
	if len(got[0].Fonts) != 1 || len(got[0].Fonts[0].Font.Glyphs) != 1 {
		t.Fatal("expected one font with one glyph")
	}
	if !got[0].Fonts[0].Font.Glyphs[0].Equal(f.Glyphs[0]) {
		t.Fatal("round-tripped glyph does not match original")
	}
}

func TestCPICodepageName(t *testing.T) {
	if name := CodepageName(437); name == "" {
		t.Fatal("expected a non-empty name for codepage 437")
	}
	if name := CodepageName(60000); name != "CP60000" {
		t.Fatalf("expected fallback name for unknown codepage, got %q", name)
	}
}

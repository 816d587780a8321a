package vfa

import (
	"fmt"

	"github.com/consoleet/consoleet-utils/geom"
)

// Font is an indexed sequence of glyphs plus an optional unicode map
// and a string-to-string property bag used by downstream format
// writers (e.g. a BDF FAMILY_NAME or an SFD FontName). The font owns
// its glyph sequence and, when present, its unicode map outright;
// there is no back-reference from the map to the font.
type Font struct {
	Glyphs []Glyph
	Map    *UnicodeMap
	Props  map[string]string
}

// NewFont returns an empty font with an initialized, empty property
// map.
func NewFont() *Font {
	return &Font{Props: make(map[string]string)}
}

// Init256Blanks replaces the glyph sequence with 256 blank 8x16
// glyphs, the conventional starting point for building a VGA-style
// font from scratch (the `blankfnt` command).
func (f *Font) Init256Blanks() {
	f.Glyphs = make([]Glyph, 256)
	for i := range f.Glyphs {
		f.Glyphs[i] = NewGlyph(geom.Size{W: 8, H: 16})
	}
}

// NominalSize returns the first glyph's size, which format writers
// use as the font-wide nominal size for their headers. Returns the
// zero Size if the font has no glyphs.
func (f *Font) NominalSize() geom.Size {
	if len(f.Glyphs) == 0 {
		return geom.Size{}
	}
	return f.Glyphs[0].Size
}

// SetProp records a downstream-format metadata property such as
// "FAMILY_NAME" or "weight".
func (f *Font) SetProp(key, value string) {
	if f.Props == nil {
		f.Props = make(map[string]string)
	}
	f.Props[key] = value
}

// SetName is shorthand for SetProp("name", name); SaveBDF and SaveSFD
// fall back to the placeholder "vfontas-output" when this property is
// absent.
func (f *Font) SetName(name string) { f.SetProp("name", name) }

// ClearMap drops the font's unicode map, reverting every glyph to
// the identity codepoint mapping.
func (f *Font) ClearMap() { f.Map = nil }

// Fliph mirrors every glyph horizontally.
func (f *Font) Fliph() { f.mapGlyphs(func(g Glyph) Glyph { return g.Flip(true, false) }) }

// Flipv mirrors every glyph vertically.
func (f *Font) Flipv() { f.mapGlyphs(func(g Glyph) Glyph { return g.Flip(false, true) }) }

// Invert bitwise-negates every glyph in place.
func (f *Font) Invert() {
	for i := range f.Glyphs {
		f.Glyphs[i].Invert()
	}
}

// Upscale replicates every glyph's pixels by (fx, fy). A zero factor
// is a semantic precondition violation per spec §7: an error is
// returned and the glyphs are left unchanged rather than becoming
// degenerate zero-sized glyphs; the upscale command reports it as a
// warning and the run continues.
func (f *Font) Upscale(fx, fy uint) error {
	if fx == 0 || fy == 0 {
		return fmt.Errorf("upscale: factor must be nonzero (got %dx%d)", fx, fy)
	}
	f.mapGlyphs(func(g Glyph) Glyph { return g.Upscale(fx, fy) })
	return nil
}

// Overstrike ORs every glyph with copies of itself shifted right by
// 1..px pixels.
func (f *Font) Overstrike(px uint) { f.mapGlyphs(func(g Glyph) Glyph { return g.Overstrike(px) }) }

// SetBold is a thin, commonly requested alias for Overstrike(1).
func (f *Font) SetBold() { f.Overstrike(1) }

// CopyRect copies srcRect onto dstPos within every glyph's own
// canvas (the `copy X Y W H BX BY` command), clipping to the
// existing canvas bounds and leaving canvas size unchanged.
func (f *Font) CopyRect(srcRect geom.Rect, dstPos geom.Pos) {
	f.mapGlyphs(func(g Glyph) Glyph {
		dst := geom.Rect{Pos: dstPos, Size: g.Size}
		return g.CopyRectTo(srcRect, g, dst, true)
	})
}

// Crop resizes every glyph's canvas to rect.Size, keeping only the
// pixels that fall within rect of the original canvas (the `crop X Y
// W H` command).
func (f *Font) Crop(rect geom.Rect) {
	f.mapGlyphs(func(g Glyph) Glyph {
		dst := geom.NewRect(0, 0, rect.W, rect.H)
		return g.CopyRectTo(rect, NewGlyph(rect.Size), dst, true)
	})
}

// Canvas resizes every glyph's canvas to (w, h), anchoring existing
// pixel content at the origin (the `canvas W H` command). Content
// that no longer fits is dropped; new area is blank.
func (f *Font) Canvas(w, h uint) {
	f.mapGlyphs(func(g Glyph) Glyph {
		src := geom.NewRect(0, 0, g.Size.W, g.Size.H)
		dst := geom.NewRect(0, 0, w, h)
		return g.CopyRectTo(src, NewGlyph(geom.Size{W: w, H: h}), dst, true)
	})
}

// Move translates every glyph's pixel content by (dx, dy) within its
// existing canvas size (the `move X Y` command). Pixels shifted out
// of the canvas are dropped; the command does not wrap.
func (f *Font) Move(dx, dy int) {
	f.mapGlyphs(func(g Glyph) Glyph {
		src := geom.NewRect(0, 0, g.Size.W, g.Size.H)
		dst := geom.Rect{Pos: geom.Pos{X: dx, Y: dy}, Size: g.Size}
		return g.CopyRectTo(src, NewGlyph(g.Size), dst, true)
	})
}

// Xlat is an alias for Move: it calls Move(dx, dy), so pixels shifted
// out of the canvas are dropped and nothing wraps. It is kept as a
// distinct command because the original tool exposes both verbs
// (spec §6); see DESIGN.md for the "xlat vs move" open question.
func (f *Font) Xlat(dx, dy int) { f.Move(dx, dy) }

// Lge applies VGA's line-graphics-extension column replication to
// glyphs 0xC0..0xDF, the classic box-drawing range for 8-bit VGA
// fonts.
func (f *Font) Lge() {
	for k := 0xC0; k <= 0xDF && k < len(f.Glyphs); k++ {
		f.Glyphs[k].SetLGE(1)
	}
}

// boxDrawingRange and blockElementRange are the Unicode ranges LgeU and LgeUF
// apply column replication to: the Box Drawing block and, for LgeUF
// ("fill" variant), the Block Elements block as well.
var (
	boxDrawingRange   = [2]rune{0x2500, 0x257F}
	blockElementRange = [2]rune{0x2580, 0x259F}
)

func inRange(cp rune, r [2]rune) bool { return cp >= r[0] && cp <= r[1] }

// LgeU applies line-graphics-extension replication to every glyph
// whose unicode map places it in the Box Drawing block. If the font
// has no unicode map, this is a semantic precondition violation per
// spec §7: it is reported and skipped rather than failing the whole
// command run.
func (f *Font) LgeU() error {
	if f.Map == nil {
		return fmt.Errorf("lgeu: font has no unicode map")
	}
	for idx := range f.Glyphs {
		for _, cp := range f.Map.ToUnicode(uint32(idx)) {
			if inRange(cp, boxDrawingRange) {
				f.Glyphs[idx].SetLGE(1)
				break
			}
		}
	}
	return nil
}

// LgeUF is LgeU extended to also cover the Block Elements range,
// which benefits from the same 9th-column replication when the
// blocks are used to draw continuous horizontal rules.
func (f *Font) LgeUF() error {
	if f.Map == nil {
		return fmt.Errorf("lgeuf: font has no unicode map")
	}
	for idx := range f.Glyphs {
		for _, cp := range f.Map.ToUnicode(uint32(idx)) {
			if inRange(cp, boxDrawingRange) || inRange(cp, blockElementRange) {
				f.Glyphs[idx].SetLGE(1)
				break
			}
		}
	}
	return nil
}

// AscentDescent computes the font-wide ascent/descent pair from each
// glyph's baseline, supplementing spec.md with the behavior of
// `font::find_ascent_descent` in original_source/src/vfalib.cpp:
// ascent is the highest baseline found across all glyphs and descent
// is the remainder of the nominal glyph height. Blank glyphs (with
// FindBaseline() == -1) do not influence the result; if every glyph
// is blank, ascent is the nominal height.
func (f *Font) AscentDescent() (ascent, descent int) {
	nominal := int(f.NominalSize().H)
	ascent = -1
	for _, g := range f.Glyphs {
		if bl := g.FindBaseline(); bl > ascent {
			ascent = bl
		}
	}
	if ascent < 0 {
		ascent = nominal
	}
	descent = nominal - ascent
	if descent < 0 {
		descent = 0
	}
	return ascent, descent
}

// mapGlyphs replaces every glyph with the result of applying fn.
func (f *Font) mapGlyphs(fn func(Glyph) Glyph) {
	for i := range f.Glyphs {
		f.Glyphs[i] = fn(f.Glyphs[i])
	}
}

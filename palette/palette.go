package palette

import "fmt"

// NumEntries is the fixed size of a palette: the traditional 16-color
// ANSI/VGA register set spec §3 describes.
const NumEntries = 16

// Palette is a 16-entry color register file kept coherent in two
// representations -- sRGB888 (the form loaders/savers round-trip)
// and LCh (the form most commands actually edit) -- plus three
// palette-global free scalars used by the expression evaluator
// (spec §3 "Palette entry").
//
// Every mutating method updates one side and immediately recomputes
// its companion; there is no deferred/lazy sync, matching spec §3's
// "both sides are kept coherent after every command."
type Palette struct {
	Engine    *Engine
	RGB       [NumEntries]SRGB888
	LCh       [NumEntries]LCh
	X, Y, Z   float64
	Overrides Overrides
}

// NewPalette returns an all-black palette bound to a fresh default
// [Engine].
func NewPalette() *Palette {
	p := &Palette{Engine: NewEngine()}
	p.SyncFromRGB()
	return p
}

// SyncFromRGB recomputes every LCh entry from the current RGB side,
// the "modified RGB -> recompute LCh" direction spec §3 names.
func (p *Palette) SyncFromRGB() {
	for i, c := range p.RGB {
		p.LCh[i] = p.Engine.ToLCh(c)
	}
}

// SyncFromLCh recomputes every RGB entry from the current LCh side.
func (p *Palette) SyncFromLCh() {
	for i, c := range p.LCh {
		p.RGB[i] = p.Engine.ToSRGB888FromLCh(c)
	}
}

// SetRGB assigns entry i's sRGB888 value and recomputes its LCh
// companion.
func (p *Palette) SetRGB(i int, c SRGB888) {
	p.RGB[i] = c
	p.LCh[i] = p.Engine.ToLCh(c)
}

// SetLCh assigns entry i's LCh value and recomputes its sRGB888
// companion.
func (p *Palette) SetLCh(i int, c LCh) {
	p.LCh[i] = c
	p.RGB[i] = p.Engine.ToSRGB888FromLCh(c)
}

// Load replaces every entry with rgb, recomputing LCh throughout (the
// `loadpal=FILE`, `vga`, `vgs`, `win` commands' common tail).
func (p *Palette) Load(rgb [NumEntries]SRGB888) {
	p.RGB = rgb
	p.SyncFromRGB()
}

// Blend linearly interpolates every entry of p toward other by pct
// percent (0-100), operating in sRGB888 space and resyncing LCh
// afterward; the `blend=PCT,NAME` command.
func (p *Palette) Blend(other *Palette, pct float64) {
	t := pct / 100
	for i := range p.RGB {
		a, b := p.RGB[i], other.RGB[i]
		p.RGB[i] = SRGB888{
			R: lerpByte(a.R, b.R, t),
			G: lerpByte(a.G, b.G, t),
			B: lerpByte(a.B, b.B, t),
		}
	}
	p.SyncFromRGB()
}

func lerpByte(a, b uint8, t float64) uint8 {
	return clampByte(float64(a) + (float64(b)-float64(a))*t)
}

// ColorPaletteLine formats p as the `ColorPalette=...;` line the `vga
// emit`-style commands print (spec §8 scenario 3), one `#rrggbb`
// entry per register in order, each terminated by a semicolon.
func (p *Palette) ColorPaletteLine() string {
	s := "ColorPalette="
	for _, c := range p.RGB {
		s += fmt.Sprintf("#%02x%02x%02x;", c.R, c.G, c.B)
	}
	return s
}

package palette

// Built-in palettes, grounded on palcomp.cpp's hard-coded `vga`/`vgs`/
// `win` tables (spec §6 names the verbs but leaves the values to the
// well-known console conventions they're hard-coded from).

// VGA is the classic 16-color console palette (spec §8 scenario 3:
// "#000000;#aa0000;#00aa00;#aa5500;...").
var VGA = [NumEntries]SRGB888{
	{0x00, 0x00, 0x00}, {0xaa, 0x00, 0x00}, {0x00, 0xaa, 0x00}, {0xaa, 0x55, 0x00},
	{0x00, 0x00, 0xaa}, {0xaa, 0x00, 0xaa}, {0x00, 0xaa, 0xaa}, {0xaa, 0xaa, 0xaa},
	{0x55, 0x55, 0x55}, {0xff, 0x55, 0x55}, {0x55, 0xff, 0x55}, {0xff, 0xff, 0x55},
	{0x55, 0x55, 0xff}, {0xff, 0x55, 0xff}, {0x55, 0xff, 0xff}, {0xff, 0xff, 0xff},
}

// Win is the classic Windows console palette (a different hue
// assignment than VGA's, with blue rather than red as register 1).
var Win = [NumEntries]SRGB888{
	{0x00, 0x00, 0x00}, {0x00, 0x00, 0x80}, {0x00, 0x80, 0x00}, {0x00, 0x80, 0x80},
	{0x80, 0x00, 0x00}, {0x80, 0x00, 0x80}, {0x80, 0x80, 0x00}, {0xc0, 0xc0, 0xc0},
	{0x80, 0x80, 0x80}, {0x00, 0x00, 0xff}, {0x00, 0xff, 0x00}, {0x00, 0xff, 0xff},
	{0xff, 0x00, 0x00}, {0xff, 0x00, 0xff}, {0xff, 0xff, 0x00}, {0xff, 0xff, 0xff},
}

// VGASaturated ("vgs") is VGA with every entry's HSL saturation
// pushed to 100%, keeping hue and lightness: a punchier variant of
// the same 16 hues.
func VGASaturated() [NumEntries]SRGB888 {
	var out [NumEntries]SRGB888
	for i, c := range VGA {
		hsl := ToHSL(c)
		hsl.S = 1
		out[i] = ToSRGB888FromHSL(hsl)
	}
	return out
}

// LoadVGA, LoadVGASaturated and LoadWin back the `vga`, `vgs` and
// `win` commands.
func (p *Palette) LoadVGA()          { p.Load(VGA) }
func (p *Palette) LoadVGASaturated() { p.Load(VGASaturated()) }
func (p *Palette) LoadWin()          { p.Load(Win) }

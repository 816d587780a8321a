package palette

import (
	"fmt"
	"strings"
)

// Overrides tracks the palette's current foreground/background/bold
// register selection used by the ANSI preview and terminal exporters
// (the `fg=N`, `bg=N`, `bd=N`, `b0` commands). Unset fields fall back
// to the conventional ANSI defaults: fg=7, bg=0, bd=fg.
type Overrides struct {
	FG, BG, BD         int
	HasFG, HasBG, HasBD bool
}

// SetFG, SetBG, SetBD back the `fg=N`/`bg=N`/`bd=N` commands,
// selecting which register the ANSI preview and terminal exporters
// treat as the default foreground/background/bold color.
func (p *Palette) SetFG(i int) error { return p.setOverride(&p.Overrides.FG, &p.Overrides.HasFG, i) }
func (p *Palette) SetBG(i int) error { return p.setOverride(&p.Overrides.BG, &p.Overrides.HasBG, i) }
func (p *Palette) SetBD(i int) error { return p.setOverride(&p.Overrides.BD, &p.Overrides.HasBD, i) }

func (p *Palette) setOverride(slot *int, has *bool, i int) error {
	if i < 0 || i >= NumEntries {
		return fmt.Errorf("palette: register index %d out of range", i)
	}
	*slot, *has = i, true
	return nil
}

// ClearOverrides is the `b0` command: drop any fg/bg/bd override back
// to the ANSI defaults.
func (p *Palette) ClearOverrides() { p.Overrides = Overrides{} }

// fgIndex, bgIndex, bdIndex resolve the effective register, applying
// the conventional ANSI fallbacks when no override is set.
func (p *Palette) fgIndex() int {
	if p.Overrides.HasFG {
		return p.Overrides.FG
	}
	return 7
}
func (p *Palette) bgIndex() int {
	if p.Overrides.HasBG {
		return p.Overrides.BG
	}
	return 0
}
func (p *Palette) bdIndex() int {
	if p.Overrides.HasBD {
		return p.Overrides.BD
	}
	return p.fgIndex()
}

// InvertTop16 is the `inv16` command: swap the bottom 8 registers
// (the "normal" intensities) with the top 8 (the "bright" ones),
// keeping each pair's hue assignment but flipping which half of the
// register file is considered dim vs. bright.
func (p *Palette) InvertTop16() {
	for i := 0; i < 8; i++ {
		p.RGB[i], p.RGB[i+8] = p.RGB[i+8], p.RGB[i]
		p.LCh[i], p.LCh[i+8] = p.LCh[i+8], p.LCh[i]
	}
}

// ANSIPreview renders the palette as two rows of 8 unlabeled
// SGR-colored blocks (registers 0-7, then 8-15), followed by a line
// previewing the effective fg-on-bg "bold" and "regular" samples
// selected by the current overrides.
func (p *Palette) ANSIPreview() string {
	var b strings.Builder
	for i, c := range p.RGB {
		fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		if i == 7 {
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')

	fg, bg, bd := p.RGB[p.fgIndex()], p.RGB[p.bgIndex()], p.RGB[p.bdIndex()]
	fmt.Fprintf(&b, "\x1b[1m\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dmbold\x1b[0m ", bd.R, bd.G, bd.B, bg.R, bg.G, bg.B)
	fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dmregular\x1b[0m\n", fg.R, fg.G, fg.B, bg.R, bg.G, bg.B)
	return b.String()
}

// CT renders the palette as the 16 OSC-4 "set color" escape sequences
// many terminal emulators (xterm, and its console-mode derivatives)
// accept for reprogramming their system color table in place, one
// sequence per register (the `ct` command).
func (p *Palette) CT() string {
	var b strings.Builder
	for i, c := range p.RGB {
		fmt.Fprintf(&b, "\x1b]4;%d;rgb:%02x/%02x/%02x\x1b\\", i, c.R, c.G, c.B)
	}
	return b.String()
}

// CT256 is CT followed by the same 16 colors written a second time
// into the 256-color table's last 16 slots (indices 240-255).
func (p *Palette) CT256() string {
	var b strings.Builder
	b.WriteString(p.CT())
	for i, c := range p.RGB {
		fmt.Fprintf(&b, "\x1b]4;%d;rgb:%02x/%02x/%02x\x1b\\", i+256-16, c.R, c.G, c.B)
	}
	return b.String()
}

// Xfce renders the palette as an xfce4-terminal "ColorPalette" config
// line (the same format [Palette.ColorPaletteLine] produces) plus the
// resolved ForegroundColor/BackgroundColor/ColorBold keys the overrides
// select, ready to paste into an xfce4-terminal profile.
func (p *Palette) Xfce() string {
	fg, bg, bd := p.RGB[p.fgIndex()], p.RGB[p.bgIndex()], p.RGB[p.bdIndex()]
	var b strings.Builder
	fmt.Fprintf(&b, "ForegroundColor=#%02x%02x%02x\n", fg.R, fg.G, fg.B)
	fmt.Fprintf(&b, "BackgroundColor=#%02x%02x%02x\n", bg.R, bg.G, bg.B)
	fmt.Fprintf(&b, "ColorBold=#%02x%02x%02x\n", bd.R, bd.G, bd.B)
	b.WriteString(p.ColorPaletteLine())
	b.WriteByte('\n')
	return b.String()
}

// Xterm renders the palette as a block of `XTerm*colorN` X resource
// lines (the `.Xresources`/`.Xdefaults` convention xterm itself reads
// its palette from), plus foreground/background/bold per the current
// overrides.
func (p *Palette) Xterm() string {
	var b strings.Builder
	for i, c := range p.RGB {
		fmt.Fprintf(&b, "XTerm*color%d: #%02x%02x%02x\n", i, c.R, c.G, c.B)
	}
	fg, bg, bd := p.RGB[p.fgIndex()], p.RGB[p.bgIndex()], p.RGB[p.bdIndex()]
	fmt.Fprintf(&b, "XTerm*foreground: #%02x%02x%02x\n", fg.R, fg.G, fg.B)
	fmt.Fprintf(&b, "XTerm*background: #%02x%02x%02x\n", bg.R, bg.G, bg.B)
	fmt.Fprintf(&b, "XTerm*colorBD: #%02x%02x%02x\n", bd.R, bd.G, bd.B)
	return b.String()
}

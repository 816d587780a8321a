// Command palcomp composes and analyzes 16-color terminal palettes.
// It runs a sequence of commands from argv against a single palette
// register file, in order, printing to stdout and exiting non-zero
// on the first command that fails.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/consoleet/consoleet-utils/palette"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "palcomp:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	p := palette.NewPalette()
	for _, arg := range args {
		arg = strings.TrimPrefix(arg, "-")
		if arg == "" {
			continue
		}
		if err := runOne(p, arg); err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
	}
	return nil
}

// runOne dispatches a single `verb`, `verb=arg`, or `verb=arg1,arg2`
// command word, including the shorthand where a word beginning with
// '(' or matching `<reg>=...` is treated as `eval=<word>`.
func runOne(p *palette.Palette, word string) error {
	if strings.HasPrefix(word, "eval@") {
		return handleEvalAt(p, word)
	}
	if strings.HasPrefix(word, "(") || isEvalShorthand(word) {
		return p.Eval(word, nil)
	}

	verb, rest, hasArg := strings.Cut(word, "=")
	var args []string
	if hasArg {
		args = strings.Split(rest, ",")
	}

	cmd, ok := commands[verb]
	if !ok {
		return fmt.Errorf("unknown verb %q", verb)
	}
	if len(args) < cmd.minArgs {
		return fmt.Errorf("%s requires at least %d argument(s)", verb, cmd.minArgs)
	}
	return cmd.fn(p, args)
}

// isEvalShorthand recognizes `<reg>=...` where reg is a single
// evaluator register letter, e.g. "l=l+10".
func isEvalShorthand(word string) bool {
	if len(word) < 2 || word[1] != '=' {
		return false
	}
	return strings.ContainsRune("rglhcsxyzb", rune(word[0]))
}

type command struct {
	minArgs int
	fn      func(p *palette.Palette, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"vga":  {0, func(p *palette.Palette, _ []string) error { p.LoadVGA(); return nil }},
		"vgs":  {0, func(p *palette.Palette, _ []string) error { p.LoadVGASaturated(); return nil }},
		"win":  {0, func(p *palette.Palette, _ []string) error { p.LoadWin(); return nil }},
		"b0":   {0, func(p *palette.Palette, _ []string) error { p.ClearOverrides(); return nil }},
		"inv16": {0, func(p *palette.Palette, _ []string) error { p.InvertTop16(); return nil }},
		"syncfromlch": {0, func(p *palette.Palette, _ []string) error { p.SyncFromLCh(); return nil }},
		"syncfromrgb": {0, func(p *palette.Palette, _ []string) error { p.SyncFromRGB(); return nil }},
		"lch": {0, func(p *palette.Palette, _ []string) error { printLCh(p); return nil }},
		"cxl": {0, func(p *palette.Palette, _ []string) error { printMatrix("cxl", p.CXL()); return nil }},
		"cxa": {0, func(p *palette.Palette, _ []string) error { printMatrix("cxa", p.CXA()); return nil }},
		"ct":    {0, func(p *palette.Palette, _ []string) error { fmt.Println(p.CT()); return nil }},
		"ct256": {0, func(p *palette.Palette, _ []string) error { fmt.Println(p.CT256()); return nil }},
		"xfce":  {0, func(p *palette.Palette, _ []string) error { fmt.Print(p.Xfce()); return nil }},
		"xterm": {0, func(p *palette.Palette, _ []string) error { fmt.Print(p.Xterm()); return nil }},
		"emit":  {0, func(p *palette.Palette, _ []string) error { fmt.Println(p.ColorPaletteLine()); return nil }},

		"eq": {0, func(p *palette.Palette, args []string) error {
			if len(args) == 0 {
				p.EqDefault()
				return nil
			}
			b, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad b: %w", err)
			}
			p.Eq(b)
			return nil
		}},
		"loeq": {0, func(p *palette.Palette, args []string) error {
			if len(args) == 0 {
				p.LoEqDefault()
				return nil
			}
			b, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad b: %w", err)
			}
			g := 100.0 * 8 / 9
			if len(args) >= 2 {
				g, err = strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("bad g: %w", err)
				}
			}
			p.LoEq(b, g)
			return nil
		}},

		"fg": {1, func(p *palette.Palette, args []string) error { return setOverride(p.SetFG, args[0]) }},
		"bg": {1, func(p *palette.Palette, args []string) error { return setOverride(p.SetBG, args[0]) }},
		"bd": {1, func(p *palette.Palette, args []string) error { return setOverride(p.SetBD, args[0]) }},

		"ild": {1, func(p *palette.Palette, args []string) error {
			t, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad temperature: %w", err)
			}
			p.Engine.SetWhitepoint(t)
			p.SyncFromRGB()
			return nil
		}},
		"cfgamma": {1, func(p *palette.Palette, args []string) error {
			g, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad gamma: %w", err)
			}
			p.Engine.GammaOverride = &g
			p.SyncFromRGB()
			return nil
		}},

		"eval": {1, func(p *palette.Palette, args []string) error {
			return p.Eval(strings.Join(args, ","), nil)
		}},

		"loadpal": {1, func(p *palette.Palette, args []string) error { return loadRegisterFile(p, args[0]) }},
		"loadreg": {1, func(p *palette.Palette, args []string) error { return loadRegisterFile(p, registerPath(args[0])) }},
		"savereg": {1, func(p *palette.Palette, args []string) error { return saveRegisterFile(p, registerPath(args[0])) }},

		"blend": {2, func(p *palette.Palette, args []string) error {
			pct, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad percentage: %w", err)
			}
			other := palette.NewPalette()
			if err := loadRegisterFile(other, registerPath(args[1])); err != nil {
				return err
			}
			p.Blend(other, pct)
			return nil
		}},

		"hsltint": {2, func(p *palette.Palette, args []string) error { return tintHSL(p, args) }},
		"lchtint": {2, func(p *palette.Palette, args []string) error { return tintLCh(p, args) }},
	}

}

// handleEvalAt implements `eval@LIST=EXPR`, LIST being a comma-
// separated set of indices and/or `lo-hi` ranges, scoping the
// evaluator to those palette entries only.
func handleEvalAt(p *palette.Palette, word string) error {
	rest := strings.TrimPrefix(word, "eval@")
	listPart, expr, ok := strings.Cut(rest, "=")
	if !ok {
		return fmt.Errorf("eval@LIST=EXPR requires an '='")
	}
	indices, err := parseIndexList(listPart)
	if err != nil {
		return err
	}
	return p.Eval(expr, indices)
}

func parseIndexList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		if part == "" {
			continue
		}
		lo, hi, isRange := part, part, false
		if i := strings.IndexByte(part, '-'); i > 0 {
			lo, hi, isRange = part[:i], part[i+1:], true
		}
		loN, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("bad index %q", lo)
		}
		hiN := loN
		if isRange {
			hiN, err = strconv.Atoi(hi)
			if err != nil {
				return nil, fmt.Errorf("bad index %q", hi)
			}
		}
		for i := loN; i <= hiN; i++ {
			out = append(out, i)
		}
	}
	return out, nil
}

func setOverride(setter func(int) error, arg string) error {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("bad register index: %w", err)
	}
	return setter(i)
}

func printLCh(p *palette.Palette) {
	for i, c := range p.LCh {
		fmt.Printf("%2d: L=%.2f C=%.2f H=%.2f\n", i, c.L, c.C, c.H)
	}
}

func printMatrix(name string, m palette.ContrastMatrix) {
	fmt.Printf("%s: pairs=%d penalized=%d sum=%.2f mean=%.2f\n",
		name, m.Full.Pairs, m.Full.Penalized, m.Full.Sum, m.Full.Mean)
	for bg := 0; bg < palette.NumEntries; bg++ {
		for fg := 0; fg < palette.NumEntries; fg++ {
			fmt.Printf("%6.2f", m.Delta[bg][fg])
		}
		fmt.Println()
	}
}

func registerPath(name string) string { return name + ".palreg" }

// loadRegisterFile and saveRegisterFile read/write a palette as 16
// lines of "#rrggbb", the register-file format `loadpal`/`loadreg`/
// `savereg`/`blend`'s second argument name.
func loadRegisterFile(p *palette.Palette, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var rgb [palette.NumEntries]palette.SRGB888
	sc := bufio.NewScanner(f)
	i := 0
	for sc.Scan() && i < palette.NumEntries {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "#")
		if len(line) != 6 {
			return fmt.Errorf("%s: malformed color line %q", path, line)
		}
		v, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return fmt.Errorf("%s: malformed color line %q", path, line)
		}
		rgb[i] = palette.SRGB888{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
		i++
	}
	if err := sc.Err(); err != nil {
		return err
	}
	p.Load(rgb)
	return nil
}

func saveRegisterFile(p *palette.Palette, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, c := range p.RGB {
		fmt.Fprintf(bw, "#%02x%02x%02x\n", c.R, c.G, c.B)
	}
	return bw.Flush()
}

// tintHSL blends every entry's hue and saturation toward (H, S) by
// PCT percent, keeping L unchanged.
func tintHSL(p *palette.Palette, args []string) error {
	h, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad hue: %w", err)
	}
	s, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad saturation: %w", err)
	}
	pct := 100.0
	if len(args) >= 3 {
		pct, err = strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("bad percentage: %w", err)
		}
	}
	t := pct / 100
	for i, c := range p.RGB {
		hsl := palette.ToHSL(c)
		hsl.H = hsl.H + (h-hsl.H)*t
		hsl.S = hsl.S + (s/100-hsl.S)*t
		p.SetRGB(i, palette.ToSRGB888FromHSL(hsl))
	}
	return nil
}

// tintLCh blends every entry's chroma and hue toward (C, H) by PCT
// percent, keeping L unchanged.
func tintLCh(p *palette.Palette, args []string) error {
	c, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad chroma: %w", err)
	}
	h, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad hue: %w", err)
	}
	pct := 100.0
	if len(args) >= 3 {
		pct, err = strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("bad percentage: %w", err)
		}
	}
	t := pct / 100
	for i, lch := range p.LCh {
		lch.C = lch.C + (c-lch.C)*t
		lch.H = lch.H + (h-lch.H)*t
		p.SetLCh(i, lch)
	}
	return nil
}

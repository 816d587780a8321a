// Command vfontas assembles and vectorizes bitmap console fonts: load
// a raster font from one of several legacy formats, edit it with a
// sequence of commands, and save it (optionally as a vectorized
// outline font) to one of several output formats.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	vfa "github.com/consoleet/consoleet-utils"
	"github.com/consoleet/consoleet-utils/geom"
	"github.com/consoleet/consoleet-utils/vectorize"
	"github.com/consoleet/consoleet-utils/vformat"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "vfontas:", err)
		os.Exit(1)
	}
}

// state carries the font being edited plus the vectorizer settings
// the save* commands read, threaded through the command sequence the
// way palcomp threads an *Engine (spec §9's "single configuration
// value threaded through the command dispatcher").
type state struct {
	font  *vfa.Font
	algo  vformat.Algorithm
	scale vectorize.Scale
}

func run(args []string) error {
	st := &state{font: vfa.NewFont(), scale: vectorize.Scale{Sx: 2, Sy: 2}}
	for _, word := range args {
		word = strings.TrimPrefix(word, "-")
		if word == "" {
			continue
		}
		fields := strings.Fields(word)
		if err := runOne(st, fields); err != nil {
			return fmt.Errorf("%s: %w", word, err)
		}
	}
	return nil
}

type command struct {
	minArgs int
	fn      func(st *state, args []string) error
}

var commands = map[string]command{
	"blankfnt":    {0, func(st *state, _ []string) error { st.font.Init256Blanks(); return nil }},
	"clearmap":    {0, func(st *state, _ []string) error { st.font.ClearMap(); return nil }},
	"fliph":       {0, func(st *state, _ []string) error { st.font.Fliph(); return nil }},
	"flipv":       {0, func(st *state, _ []string) error { st.font.Flipv(); return nil }},
	"invert":      {0, func(st *state, _ []string) error { st.font.Invert(); return nil }},
	"setbold":     {0, func(st *state, _ []string) error { st.font.SetBold(); return nil }},
	"lge":         {0, func(st *state, _ []string) error { st.font.Lge(); return nil }},
	"lgeu": {0, func(st *state, _ []string) error {
		if err := st.font.LgeU(); err != nil {
			fmt.Fprintln(os.Stderr, "vfontas: warning:", err)
		}
		return nil
	}},
	"lgeuf": {0, func(st *state, _ []string) error {
		if err := st.font.LgeUF(); err != nil {
			fmt.Fprintln(os.Stderr, "vfontas: warning:", err)
		}
		return nil
	}},

	"canvas": {2, func(st *state, a []string) error {
		w, h, err := parseUintPair(a)
		if err != nil {
			return err
		}
		st.font.Canvas(w, h)
		return nil
	}},
	"upscale": {2, func(st *state, a []string) error {
		fx, fy, err := parseUintPair(a)
		if err != nil {
			return err
		}
		if err := st.font.Upscale(fx, fy); err != nil {
			fmt.Fprintln(os.Stderr, "vfontas: warning:", err)
		}
		return nil
	}},
	"move": {2, func(st *state, a []string) error {
		x, y, err := parseIntPair(a)
		if err != nil {
			return err
		}
		st.font.Move(x, y)
		return nil
	}},
	"xlat": {2, func(st *state, a []string) error {
		x, y, err := parseIntPair(a)
		if err != nil {
			return err
		}
		st.font.Xlat(x, y)
		return nil
	}},
	"overstrike": {1, func(st *state, a []string) error {
		px, err := strconv.ParseUint(a[0], 10, 32)
		if err != nil {
			return err
		}
		st.font.Overstrike(uint(px))
		return nil
	}},
	"crop": {4, func(st *state, a []string) error {
		r, err := parseRect(a)
		if err != nil {
			return err
		}
		st.font.Crop(r)
		return nil
	}},
	"copy": {6, func(st *state, a []string) error {
		r, err := parseRect(a[:4])
		if err != nil {
			return err
		}
		bx, bye, err := parseIntPair(a[4:6])
		if err != nil {
			return err
		}
		st.font.CopyRect(r, geom.Pos{X: bx, Y: bye})
		return nil
	}},
	"setname": {1, func(st *state, a []string) error { st.font.SetName(a[0]); return nil }},
	"setprop": {2, func(st *state, a []string) error { st.font.SetProp(a[0], a[1]); return nil }},
	"cpisep": {1, func(st *state, a []string) error {
		// cpisep stores its argument as the font's "cpisep" property. No
		// command of this tool reads it back; savebdf writes it out like
		// any other property.
		st.font.SetProp("cpisep", a[0])
		return nil
	}},

	"loadbdf": {1, func(st *state, a []string) error { return loadFrom(st, a[0], openAndLoad(vformat.LoadBDF)) }},
	"loadclt": {1, func(st *state, a []string) error { return loadFrom(st, a[0], openAndLoad(vformat.LoadCLT)) }},
	"loadhex": {1, func(st *state, a []string) error { return loadFrom(st, a[0], openAndLoad(vformat.LoadHEX)) }},
	"loadpcf": {1, func(st *state, a []string) error { return loadFrom(st, a[0], openAndLoad(vformat.LoadPCF)) }},
	"loadpsf": {1, func(st *state, a []string) error { return loadFrom(st, a[0], loadPSFAuto) }},
	"loadmap": {1, func(st *state, a []string) error {
		f, err := os.Open(a[0])
		if err != nil {
			return vfa.NewFileError("open", a[0], err)
		}
		defer f.Close()
		m, err := vformat.LoadUnimap(f)
		if err != nil {
			return err
		}
		st.font.Map = m
		return nil
	}},
	"loadfnt": {1, func(st *state, a []string) error {
		height, count := 16, 256
		if len(a) >= 2 {
			h, err := strconv.Atoi(a[1])
			if err != nil {
				return err
			}
			height = h
		}
		if len(a) >= 3 {
			c, err := strconv.Atoi(a[2])
			if err != nil {
				return err
			}
			count = c
		}
		f, err := os.Open(a[0])
		if err != nil {
			return vfa.NewFileError("open", a[0], err)
		}
		defer f.Close()
		font, err := vformat.LoadFNT(f, uint(height), count)
		if err != nil {
			return err
		}
		st.font = font
		return nil
	}},
	"loadraw": {3, func(st *state, a []string) error {
		w, h, err := parseUintPair(a[1:3])
		if err != nil {
			return err
		}
		f, err := os.Open(a[0])
		if err != nil {
			return vfa.NewFileError("open", a[0], err)
		}
		defer f.Close()
		font, err := vformat.LoadPBM(f, w, h)
		if err != nil {
			return err
		}
		st.font = font
		return nil
	}},

	"savebdf":   {1, func(st *state, a []string) error { return saveTo(a[0], func(w *os.File) error { return vformat.SaveBDF(w, st.font) }) }},
	"saveclt":   {1, func(st *state, a []string) error { return saveTo(a[0], func(w *os.File) error { return vformat.SaveCLT(w, st.font) }) }},
	"savefnt":   {1, func(st *state, a []string) error { return saveTo(a[0], func(w *os.File) error { return vformat.SaveFNT(w, st.font) }) }},
	"savepbm":   {1, func(st *state, a []string) error { return saveTo(a[0], func(w *os.File) error { return vformat.SavePBM(w, st.font) }) }},
	"savepsf":   {1, func(st *state, a []string) error { return saveTo(a[0], func(w *os.File) error { return savePSFAuto(w, st.font) }) }},
	"savemap":   {1, func(st *state, a []string) error { return saveTo(a[0], func(w *os.File) error { return vformat.SaveUnimap(w, st.font.Map) }) }},
	"savesfd":   {1, func(st *state, a []string) error { return saveTo(a[0], func(w *os.File) error { return vformat.SaveSFD(w, st.font, st.algo, st.scale) }) }},
	"saven1":    {1, func(st *state, a []string) error { st.algo = vformat.AlgoN1; return saveTo(a[0], func(w *os.File) error { return vformat.SaveSFD(w, st.font, st.algo, st.scale) }) }},
	"saven2":    {1, func(st *state, a []string) error { st.algo = vformat.AlgoN2; return saveTo(a[0], func(w *os.File) error { return vformat.SaveSFD(w, st.font, st.algo, st.scale) }) }},
	"saven2ev":  {1, func(st *state, a []string) error { st.algo = vformat.AlgoN2EV; return saveTo(a[0], func(w *os.File) error { return vformat.SaveSFD(w, st.font, st.algo, st.scale) }) }},

	"xcpi":      {2, func(st *state, a []string) error { return extractCPI(st, a[0], a[1], false) }},
	"xcpi.ice":  {2, func(st *state, a []string) error { return extractCPI(st, a[0], a[1], true) }},
}

func parseUintPair(a []string) (uint, uint, error) {
	x, err := strconv.ParseUint(a[0], 10, 32)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseUint(a[1], 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return uint(x), uint(y), nil
}

func parseIntPair(a []string) (int, int, error) {
	x, err := strconv.Atoi(a[0])
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(a[1])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseRect(a []string) (geom.Rect, error) {
	x, y, err := parseIntPair(a[:2])
	if err != nil {
		return geom.Rect{}, err
	}
	w, h, err := parseUintPair(a[2:4])
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.NewRect(x, y, w, h), nil
}

func runOne(st *state, fields []string) error {
	verb := fields[0]
	args := fields[1:]
	cmd, ok := commands[verb]
	if !ok {
		return fmt.Errorf("unknown command %q", verb)
	}
	if len(args) < cmd.minArgs {
		return fmt.Errorf("%s requires at least %d argument(s)", verb, cmd.minArgs)
	}
	return cmd.fn(st, args)
}

func openAndLoad(loader func(io.Reader) (*vfa.Font, error)) func(*state, string) error {
	return func(st *state, path string) error {
		f, err := os.Open(path)
		if err != nil {
			return vfa.NewFileError("open", path, err)
		}
		defer f.Close()
		font, err := loader(f)
		if err != nil {
			return err
		}
		st.font = font
		return nil
	}
}

func loadFrom(st *state, path string, fn func(*state, string) error) error { return fn(st, path) }

// loadPSFAuto sniffs the PSF1 vs PSF2 magic so `loadpsf` doesn't need
// a separate verb per version (spec §6 lists one `loadpsf` verb).
func loadPSFAuto(st *state, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return vfa.NewFileError("open", path, err)
	}
	defer f.Close()
	magic := make([]byte, 4)
	n, _ := f.Read(magic)
	f.Seek(0, 0)
	if n >= 4 && magic[0] == 0x72 && magic[1] == 0xB5 && magic[2] == 0x4A && magic[3] == 0x86 {
		font, err := vformat.LoadPSF2(f)
		if err != nil {
			return err
		}
		st.font = font
		return nil
	}
	font, err := vformat.LoadPSF1(f)
	if err != nil {
		return err
	}
	st.font = font
	return nil
}

// savePSFAuto writes PSF2 when any glyph isn't 8 pixels wide (PSF1's
// fixed-width-8 precondition), else PSF1 for maximal compatibility
// with older PSF1-only readers.
func savePSFAuto(w *os.File, f *vfa.Font) error {
	for _, g := range f.Glyphs {
		if g.Size.W != 8 {
			return vformat.SavePSF2(w, f)
		}
	}
	return vformat.SavePSF1(w, f)
}

func saveTo(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return vfa.NewFileError("create", path, err)
	}
	defer f.Close()
	return fn(f)
}

// extractCPI is `xcpi`/`xcpi.ice`: read every codepage/size face out
// of a DOS CPI file and save each as its own PSF font inside dir
// (PSF1 when every glyph is 8 pixels wide, PSF2 otherwise),
// named "<codepage>-<height>.psf" (spec §6's "split a CPI into its
// constituent faces").
func extractCPI(st *state, cpiPath, dir string, ice bool) error {
	f, err := os.Open(cpiPath)
	if err != nil {
		return vfa.NewFileError("open", cpiPath, err)
	}
	defer f.Close()
	pages, err := vformat.LoadCPI(f, ice)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, page := range pages {
		for _, cf := range page.Fonts {
			name := fmt.Sprintf("%s/%d-%d.psf", dir, page.Codepage, cf.Height)
			cf.Font.SetProp("codepage-name", vformat.CodepageName(page.Codepage))
			if err := saveTo(name, func(w *os.File) error { return savePSFAuto(w, cf.Font) }); err != nil {
				return err
			}
		}
	}
	if len(pages) > 0 {
		st.font = pages[0].Fonts[0].Font
	}
	return nil
}

package vformat

import (
	"bufio"
	"fmt"
	"io"

	vfa "github.com/consoleet/consoleet-utils"
	"github.com/consoleet/consoleet-utils/vectorize"
)

// Algorithm selects which vectorization strategy SaveSFD runs over
// each glyph before writing its outline.
type Algorithm int

const (
	AlgoSimple Algorithm = iota
	AlgoN1
	AlgoN2
	AlgoN2EV
)

func vectorizeWith(algo Algorithm, bm vectorize.Bitmap, descent int, sc vectorize.Scale) []vectorize.Polygon {
	switch algo {
	case AlgoN1:
		return vectorize.N1(bm, descent, sc)
	case AlgoN2:
		return vectorize.N2(bm, descent, sc)
	case AlgoN2EV:
		return vectorize.N2EV(bm, descent, sc)
	default:
		return vectorize.Simple(bm, descent, sc)
	}
}

// SaveSFD writes f as a FontForge SplineFontDB (SFD) text font: one
// StartChar/SplineSet/EndChar block per glyph, each polygon the
// chosen vectorization algorithm extracts from that glyph emitted as
// a closed moveto/lineto spline (SFD's "SplineSet" is the primary
// vectorizer sink, spec §6).
func SaveSFD(w io.Writer, f *vfa.Font, algo Algorithm, sc vectorize.Scale) error {
	bw := bufio.NewWriter(w)
	name := f.Props["name"]
	if name == "" {
		name = "vfontas-output"
	}
	ascent, descent := f.AscentDescent()

	fmt.Fprintf(bw, "SplineFontDB: 3.0\n")
	fmt.Fprintf(bw, "FontName: %s\n", name)
	fmt.Fprintf(bw, "FullName: %s\n", name)
	fmt.Fprintf(bw, "FamilyName: %s\n", name)
	fmt.Fprintf(bw, "Ascent: %d\n", ascent*sc.Sy)
	fmt.Fprintf(bw, "Descent: %d\n", descent*sc.Sy)
	fmt.Fprintf(bw, "LayerCount: 2\n")
	fmt.Fprintf(bw, "BeginChars: %d %d\n", 0x110000, len(f.Glyphs))

	for idx, g := range f.Glyphs {
		cp := rune(idx)
		if f.Map != nil {
			if cps := f.Map.ToUnicode(uint32(idx)); len(cps) > 0 {
				cp = cps[0]
			}
		}
		polys := vectorizeWith(algo, g, descent, sc)

		fmt.Fprintf(bw, "StartChar: uni%04X\n", cp)
		fmt.Fprintf(bw, "Encoding: %d %d 0\n", idx, cp)
		fmt.Fprintf(bw, "Width: %d\n", int(g.Size.W)*sc.Sx)
		fmt.Fprintf(bw, "Flags: W\n")
		fmt.Fprintf(bw, "LayerCount: 2\n")
		fmt.Fprintf(bw, "Fore\n")
		fmt.Fprintf(bw, "SplineSet\n")
		for _, poly := range polys {
			writeSplinePolygon(bw, poly)
		}
		fmt.Fprintf(bw, "EndSplineSet\n")
		fmt.Fprintf(bw, "EndChar\n")
	}
	fmt.Fprintf(bw, "EndChars\n")
	fmt.Fprintf(bw, "EndSplineFont\n")
	return bw.Flush()
}

func writeSplinePolygon(bw *bufio.Writer, poly vectorize.Polygon) {
	if len(poly) == 0 {
		return
	}
	fmt.Fprintf(bw, "%d %d m 1\n", poly[0].Start.X, poly[0].Start.Y)
	for _, e := range poly {
		fmt.Fprintf(bw, "%d %d l 1\n", e.End.X, e.End.Y)
	}
}

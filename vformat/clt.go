package vformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	vfa "github.com/consoleet/consoleet-utils"
	"github.com/consoleet/consoleet-utils/geom"
)

// LoadCLT reads the CLT text format: a sequence of per-glyph blocks,
// each opened by "GLYPH <index>" and followed by the "PCLT" block
// [vfa.Glyph.AsPCLT] produces ("PCLT\n<w> <h>\n" then w*h two-char
// cells, "##" set / ".." unset).
func LoadCLT(r io.Reader) (*vfa.Font, error) {
	sc := bufio.NewScanner(r)
	var glyphs []vfa.Glyph
	var maxIdx uint32

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 || fields[0] != "GLYPH" {
			return nil, &vfa.FormatError{Format: "CLT", Reason: fmt.Sprintf("expected GLYPH header, got %q", line)}
		}
		idx, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, &vfa.FormatError{Format: "CLT", Reason: "bad glyph index"}
		}

		if !sc.Scan() || strings.TrimSpace(sc.Text()) != "PCLT" {
			return nil, &vfa.FormatError{Format: "CLT", Reason: "missing PCLT marker"}
		}
		if !sc.Scan() {
			return nil, &vfa.FormatError{Format: "CLT", Reason: "missing dimensions line"}
		}
		dims := strings.Fields(sc.Text())
		if len(dims) != 2 {
			return nil, &vfa.FormatError{Format: "CLT", Reason: "malformed dimensions line"}
		}
		w, err := strconv.Atoi(dims[0])
		h, err2 := strconv.Atoi(dims[1])
		if err != nil || err2 != nil {
			return nil, &vfa.FormatError{Format: "CLT", Reason: "non-numeric dimensions"}
		}

		g := vfa.NewGlyph(geom.Size{W: uint(w), H: uint(h)})
		raw := make([]byte, 0, bytesPerGlyphRow(uint(w))*h)
		for y := 0; y < h; y++ {
			if !sc.Scan() {
				return nil, &vfa.FormatError{Format: "CLT", Reason: "truncated pixel rows"}
			}
			cellRow := sc.Text()
			bits := make([]byte, 0, w)
			for x := 0; x < w; x++ {
				set := byte(0)
				if x*2+1 < len(cellRow) && cellRow[x*2] == '#' {
					set = 1
				}
				bits = append(bits, set)
			}
			raw = append(raw, packRowBits(bits)...)
		}
		g = vfa.CreateFromRowpad(geom.Size{W: uint(w), H: uint(h)}, raw)

		for uint32(len(glyphs)) <= uint32(idx) {
			glyphs = append(glyphs, vfa.NewGlyph(geom.Size{W: uint(w), H: uint(h)}))
		}
		glyphs[idx] = g
		if uint32(idx) > maxIdx {
			maxIdx = uint32(idx)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	f := vfa.NewFont()
	f.Glyphs = glyphs
	return f, nil
}

// SaveCLT writes f in LoadCLT's format, one "GLYPH <index>" block per
// glyph in index order.
func SaveCLT(w io.Writer, f *vfa.Font) error {
	bw := bufio.NewWriter(w)
	for idx, g := range f.Glyphs {
		if _, err := fmt.Fprintf(bw, "GLYPH %d\n%s", idx, g.AsPCLT()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

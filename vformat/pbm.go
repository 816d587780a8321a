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

// gridColumns is the fixed tile width used when a whole font is
// packed into a single PBM sprite sheet by SavePBM/LoadPBM.
const gridColumns = 16

// LoadPBM reads a P1 (ASCII) portable bitmap produced by SavePBM: a
// single sprite sheet whose glyphs are tiled gridColumns-wide,
// left-to-right, top-to-bottom, each cell cellW x cellH pixels.
func LoadPBM(r io.Reader, cellW, cellH uint) (*vfa.Font, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var pending []string
	readToken := func() (string, bool) {
		for len(pending) == 0 {
			if !sc.Scan() {
				return "", false
			}
			line := sc.Text()
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			pending = strings.Fields(line)
		}
		tok := pending[0]
		pending = pending[1:]
		return tok, true
	}

	magic, ok := readToken()
	if !ok || magic != "P1" {
		return nil, &vfa.FormatError{Format: "PBM", Reason: "missing P1 magic"}
	}
	wTok, ok := readToken()
	hTok, ok2 := readToken()
	if !ok || !ok2 {
		return nil, &vfa.FormatError{Format: "PBM", Reason: "missing width/height"}
	}
	totalW, err := strconv.Atoi(wTok)
	if err != nil {
		return nil, &vfa.FormatError{Format: "PBM", Reason: "bad width"}
	}
	totalH, err := strconv.Atoi(hTok)
	if err != nil {
		return nil, &vfa.FormatError{Format: "PBM", Reason: "bad height"}
	}

	bits := make([]byte, 0, totalW*totalH)
	for len(bits) < totalW*totalH {
		tok, ok := readToken()
		if !ok {
			return nil, &vfa.FormatError{Format: "PBM", Reason: "truncated pixel data"}
		}
		for _, c := range tok {
			bits = append(bits, byte(c))
		}
	}

	cols := totalW / int(cellW)
	rows := totalH / int(cellH)
	f := vfa.NewFont()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g := vfa.NewGlyph(geom.Size{W: cellW, H: cellH})
			raw := make([]byte, 0, bytesPerGlyphRow(cellW)*int(cellH))
			for y := 0; y < int(cellH); y++ {
				rowBits := make([]byte, 0, cellW)
				for x := 0; x < int(cellW); x++ {
					px := col*int(cellW) + x
					py := row*int(cellH) + y
					pos := py*totalW + px
					v := byte(0)
					if pos < len(bits) && bits[pos] == '1' {
						v = 1
					}
					rowBits = append(rowBits, v)
				}
				raw = append(raw, packRowBits(rowBits)...)
			}
			g = vfa.CreateFromRowpad(geom.Size{W: cellW, H: cellH}, raw)
			f.Glyphs = append(f.Glyphs, g)
		}
	}
	return f, nil
}

func bytesPerGlyphRow(w uint) int { return (int(w) + 7) / 8 }

func packRowBits(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b != 0 {
			out[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return out
}

// SavePBM writes every glyph in f as a single P1 sprite sheet,
// gridColumns glyphs per row, blank-padding the final row.
func SavePBM(w io.Writer, f *vfa.Font) error {
	if len(f.Glyphs) == 0 {
		_, err := fmt.Fprint(w, "P1\n0 0\n")
		return err
	}
	cellW, cellH := int(f.Glyphs[0].Size.W), int(f.Glyphs[0].Size.H)
	cols := gridColumns
	if cols > len(f.Glyphs) {
		cols = len(f.Glyphs)
	}
	rows := (len(f.Glyphs) + cols - 1) / cols
	totalW, totalH := cols*cellW, rows*cellH

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P1\n%d %d\n", totalW, totalH)
	for y := 0; y < totalH; y++ {
		row, col := y/cellH, 0
		for x := 0; x < totalW; x++ {
			col = x / cellW
			idx := row*cols + col
			bit := byte('0')
			if idx < len(f.Glyphs) && f.Glyphs[idx].At(x%cellW, y%cellH) {
				bit = '1'
			}
			bw.WriteByte(bit)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

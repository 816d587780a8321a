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

// LoadBDF reads a standard Adobe BDF (Bitmap Distribution Format)
// text font. Only the subset FontForge and the classic console
// fonts actually use is recognized: FONTBOUNDINGBOX for the nominal
// glyph size, STARTCHAR/ENCODING/BBX/BITMAP/ENDCHAR per glyph, and
// STARTPROPERTIES/ENDPROPERTIES for arbitrary key/value properties.
func LoadBDF(r io.Reader) (*vfa.Font, error) {
	sc := bufio.NewScanner(r)
	f := vfa.NewFont()
	f.Map = vfa.NewUnicodeMap()

	var nominal geom.Size
	var curEnc int64 = -1
	var curBBX geom.Size
	var curRows []string
	inChar := false

	flush := func() error {
		if !inChar {
			return nil
		}
		sz := curBBX
		if sz.W == 0 {
			sz = nominal
		}
		raw := make([]byte, 0, bytesPerGlyphRow(sz.W)*int(sz.H))
		rowBytes := bytesPerGlyphRow(sz.W)
		for _, hexRow := range curRows {
			rowBuf := make([]byte, rowBytes)
			for i := 0; i < rowBytes && i*2+1 < len(hexRow); i++ {
				v, err := strconv.ParseUint(hexRow[i*2:i*2+2], 16, 8)
				if err != nil {
					return &vfa.FormatError{Format: "BDF", Reason: fmt.Sprintf("bad BITMAP hex %q", hexRow)}
				}
				rowBuf[i] = byte(v)
			}
			raw = append(raw, rowBuf...)
		}
		for len(raw) < bytesPerGlyphRow(sz.W)*int(sz.H) {
			raw = append(raw, 0)
		}
		g := vfa.CreateFromRowpad(sz, raw)
		idx := uint32(len(f.Glyphs))
		f.Glyphs = append(f.Glyphs, g)
		if curEnc >= 0 {
			f.Map.AddI2U(idx, rune(curEnc))
		}
		inChar, curRows, curEnc, curBBX = false, nil, -1, geom.Size{}
		return nil
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "FONTBOUNDINGBOX":
			if len(fields) >= 3 {
				w, _ := strconv.Atoi(fields[1])
				h, _ := strconv.Atoi(fields[2])
				nominal = geom.Size{W: uint(w), H: uint(h)}
			}
		case "STARTCHAR":
			inChar, curRows, curEnc, curBBX = true, nil, -1, geom.Size{}
		case "ENCODING":
			if len(fields) >= 2 {
				v, _ := strconv.ParseInt(fields[1], 10, 64)
				curEnc = v
			}
		case "BBX":
			if len(fields) >= 3 {
				w, _ := strconv.Atoi(fields[1])
				h, _ := strconv.Atoi(fields[2])
				curBBX = geom.Size{W: uint(w), H: uint(h)}
			}
		case "BITMAP":
			// rows follow until ENDCHAR
		case "ENDCHAR":
			if err := flush(); err != nil {
				return nil, err
			}
		case "FONT":
			if len(fields) >= 2 {
				f.SetName(strings.Join(fields[1:], " "))
			}
		default:
			if inChar && curBBX.H > 0 && isHexRow(fields[0]) {
				curRows = append(curRows, fields[0])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func isHexRow(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// SaveBDF writes f as a BDF font: a FONTBOUNDINGBOX taken from the
// first glyph's size, and one STARTCHAR block per glyph, named from
// the unicode map when present (falling back to the identity
// codepoint).
func SaveBDF(w io.Writer, f *vfa.Font) error {
	bw := bufio.NewWriter(w)
	sz := f.NominalSize()
	name := f.Props["name"]
	if name == "" {
		name = "vfontas-output"
	}
	ascent, descent := f.AscentDescent()

	fmt.Fprintf(bw, "STARTFONT 2.1\n")
	fmt.Fprintf(bw, "FONT -vfontas-%s-Medium-R-Normal--%d-%d-75-75-C-%d-ISO10646-1\n", name, sz.H, sz.H, sz.W*10)
	fmt.Fprintf(bw, "SIZE %d 75 75\n", sz.H)
	fmt.Fprintf(bw, "FONTBOUNDINGBOX %d %d 0 %d\n", sz.W, sz.H, -descent)
	fmt.Fprintf(bw, "STARTPROPERTIES %d\n", len(f.Props)+2)
	fmt.Fprintf(bw, "FONT_ASCENT %d\n", ascent)
	fmt.Fprintf(bw, "FONT_DESCENT %d\n", descent)
	for k, v := range f.Props {
		fmt.Fprintf(bw, "%s \"%s\"\n", strings.ToUpper(k), v)
	}
	fmt.Fprintf(bw, "ENDPROPERTIES\n")
	fmt.Fprintf(bw, "CHARS %d\n", len(f.Glyphs))

	for idx, g := range f.Glyphs {
		cp := rune(idx)
		if f.Map != nil {
			if cps := f.Map.ToUnicode(uint32(idx)); len(cps) > 0 {
				cp = cps[0]
			}
		}
		fmt.Fprintf(bw, "STARTCHAR U+%04X\n", cp)
		fmt.Fprintf(bw, "ENCODING %d\n", cp)
		fmt.Fprintf(bw, "SWIDTH %d 0\n", g.Size.W*1000/sz.H)
		fmt.Fprintf(bw, "DWIDTH %d 0\n", g.Size.W)
		fmt.Fprintf(bw, "BBX %d %d 0 %d\n", g.Size.W, g.Size.H, -descent)
		fmt.Fprintf(bw, "BITMAP\n")
		raw := g.AsRowpad()
		rowBytes := bytesPerGlyphRow(g.Size.W)
		for y := 0; y < int(g.Size.H); y++ {
			for x := 0; x < rowBytes; x++ {
				fmt.Fprintf(bw, "%02X", raw[y*rowBytes+x])
			}
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "ENDCHAR\n")
	}
	fmt.Fprintf(bw, "ENDFONT\n")
	return bw.Flush()
}

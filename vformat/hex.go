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

// LoadHEX reads the console "unifont hex" format: one line per glyph,
// `XXXX:HHHH...`, where XXXX is the codepoint in hex and the hex
// digits after the colon pack the glyph rows MSB-first, two hex
// digits per byte, ceil(w/8) bytes per row. Row count and width are
// inferred from digit count: 32 digits -> 8x16, 64 -> 16x16 (two
// bytes per row), matching the two widths the format conventionally
// carries. A line with fewer than 16 bytes is read as an 8x16 glyph
// whose missing bottom rows are blank. Lines starting with '#' are
// comments; blank lines are skipped.
func LoadHEX(r io.Reader) (*vfa.Font, error) {
	f := vfa.NewFont()
	f.Map = vfa.NewUnicodeMap()
	sc := bufio.NewScanner(r)
	idx := uint32(0)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, &vfa.FormatError{Format: "HEX", Reason: fmt.Sprintf("missing ':' in line %q", line)}
		}
		cp, err := strconv.ParseUint(parts[0], 16, 32)
		if err != nil {
			return nil, &vfa.FormatError{Format: "HEX", Reason: fmt.Sprintf("bad codepoint %q", parts[0])}
		}
		hexDigits := strings.TrimSpace(parts[1])
		g, err := glyphFromHexDigits(hexDigits)
		if err != nil {
			return nil, err
		}
		f.Glyphs = append(f.Glyphs, g)
		f.Map.AddI2U(idx, rune(cp))
		idx++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func glyphFromHexDigits(digits string) (vfa.Glyph, error) {
	nbytes := len(digits) / 2
	if len(digits)%2 != 0 || nbytes == 0 {
		return vfa.Glyph{}, &vfa.FormatError{Format: "HEX", Reason: fmt.Sprintf("odd hex digit count %d", len(digits))}
	}
	raw := make([]byte, nbytes)
	for i := range raw {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return vfa.Glyph{}, &vfa.FormatError{Format: "HEX", Reason: fmt.Sprintf("bad hex byte %q", digits[i*2:i*2+2])}
		}
		raw[i] = byte(v)
	}
	// Conventional hex fonts are 8 or 16 pixels wide (1 or 2 bytes/row)
	// with a 16-row cell height.
	const h = 16
	if nbytes < h {
		raw = append(raw, make([]byte, h-nbytes)...)
		nbytes = h
	}
	bytesPerRow := nbytes / h
	if bytesPerRow == 0 || nbytes%h != 0 {
		return vfa.Glyph{}, &vfa.FormatError{Format: "HEX", Reason: fmt.Sprintf("%d hex bytes doesn't divide into %d rows", nbytes, h)}
	}
	w := uint(bytesPerRow * 8)
	return vfa.CreateFromRowpad(geom.Size{W: w, H: h}, raw), nil
}

// SaveHEX writes f in the same format LoadHEX reads, one line per
// glyph in index order, using the unicode map's forward mapping (or
// the identity index when f has none).
func SaveHEX(w io.Writer, f *vfa.Font) error {
	bw := bufio.NewWriter(w)
	for idx, g := range f.Glyphs {
		cp := rune(idx)
		if f.Map != nil {
			cps := f.Map.ToUnicode(uint32(idx))
			if len(cps) > 0 {
				cp = cps[0]
			}
		}
		raw := g.AsRowpad()
		if _, err := fmt.Fprintf(bw, "%04X:", cp); err != nil {
			return err
		}
		for _, b := range raw {
			if _, err := fmt.Fprintf(bw, "%02X", b); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

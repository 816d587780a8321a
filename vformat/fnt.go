package vformat

import (
	"fmt"
	"io"

	vfa "github.com/consoleet/consoleet-utils"
	"github.com/consoleet/consoleet-utils/geom"
)

// LoadFNT reads the classic raw console .FNT dump: no header at all,
// just `count` glyphs back to back, each `height` rows of one byte
// (width fixed at 8, MSB-first), the format the original VGA BIOS
// font blobs (e.g. 256*16-byte 8x16 "ROM font" dumps) use.
func LoadFNT(r io.Reader, height uint, count int) (*vfa.Font, error) {
	sz := geom.Size{W: 8, H: height}
	f := vfa.NewFont()
	buf := make([]byte, height)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			if i == 0 {
				return nil, &vfa.FormatError{Format: "FNT", Reason: "empty or truncated file"}
			}
			break
		}
		f.Glyphs = append(f.Glyphs, vfa.CreateFromRowpad(sz, buf))
	}
	return f, nil
}

// SaveFNT writes f in LoadFNT's raw format. Every glyph must be 8
// pixels wide and share the same height (the format has no per-glyph
// size field).
func SaveFNT(w io.Writer, f *vfa.Font) error {
	for i, g := range f.Glyphs {
		if g.Size.W != 8 {
			return fmt.Errorf("savefnt: glyph %d is %d pixels wide, FNT requires width 8", i, g.Size.W)
		}
		if _, err := w.Write(g.AsRowpad()); err != nil {
			return err
		}
	}
	return nil
}

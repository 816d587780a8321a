package vfa

import (
	"fmt"
	"strings"

	"github.com/consoleet/consoleet-utils/geom"
)

// Glyph is a monochrome raster: a w*h bitmap, bit-packed row-major,
// MSB-first within each byte. Bit index n occupies byte n/8 at mask
// 1 << (7 - n%8). Size is fixed for a glyph's lifetime; every
// pixel-modifying operation below returns a new Glyph rather than
// mutating receiver state, except [Glyph.Invert] and [Glyph.SetLGE],
// which are documented as in-place.
type Glyph struct {
	Size geom.Size
	bits []byte
}

// bitIndex locates the byte and mask for linear bit position n.
func bitIndex(n int) (byteIdx int, mask byte) {
	return n / 8, 1 << (7 - uint(n%8))
}

// bytesPerGlyph returns the number of bytes needed for the tightly
// packed internal representation of a w*h glyph.
func bytesPerGlyph(sz geom.Size) int {
	bits := int(sz.W) * int(sz.H)
	return (bits + 7) / 8
}

// bytesPerGlyphRowpad returns the number of bytes needed when each
// row is padded up to a whole byte, as used by PSF2 and BDF.
func bytesPerGlyphRowpad(sz geom.Size) int {
	return int(sz.H) * ((int(sz.W) + 7) / 8)
}

// NewGlyph returns a blank (all-zero) glyph of the given size.
func NewGlyph(sz geom.Size) Glyph {
	return Glyph{Size: sz, bits: make([]byte, bytesPerGlyph(sz))}
}

// At reports whether pixel (x, y) is set. Out-of-range coordinates
// always report false.
func (g Glyph) At(x, y int) bool {
	if x < 0 || y < 0 || x >= int(g.Size.W) || y >= int(g.Size.H) {
		return false
	}
	byteIdx, mask := bitIndex(y*int(g.Size.W) + x)
	return g.bits[byteIdx]&mask != 0
}

// Width returns the glyph's width in pixels, satisfying
// [vectorize.Bitmap].
func (g Glyph) Width() int { return int(g.Size.W) }

// Height returns the glyph's height in pixels, satisfying
// [vectorize.Bitmap].
func (g Glyph) Height() int { return int(g.Size.H) }

// set marks pixel (x, y) as set. The caller is responsible for
// bounds-checking; this is an internal helper used by constructors
// that already iterate within bounds.
func (g Glyph) set(x, y int) {
	byteIdx, mask := bitIndex(y*int(g.Size.W) + x)
	g.bits[byteIdx] |= mask
}

// clear marks pixel (x, y) as unset.
func (g Glyph) clear(x, y int) {
	byteIdx, mask := bitIndex(y*int(g.Size.W) + x)
	g.bits[byteIdx] &^= mask
}

// CreateFromRowpad reads a row-padded bitmap (each row rounded up to
// a whole number of bytes, MSB-first) into a tightly packed Glyph.
// This is the inverse of [Glyph.AsRowpad] and is the entry point used
// by PSF2-family and BDF-family loaders.
func CreateFromRowpad(sz geom.Size, buf []byte) Glyph {
	ng := NewGlyph(sz)
	bytePerLine := (int(sz.W) + 7) / 8
	for y := 0; y < int(sz.H); y++ {
		for x := 0; x < int(sz.W); x++ {
			qByte, qMask := bitIndex(x)
			srcOff := y*bytePerLine + qByte
			if srcOff >= len(buf) {
				continue
			}
			if buf[srcOff]&qMask != 0 {
				ng.set(x, y)
			}
		}
	}
	return ng
}

// AsRowpad is the inverse of [CreateFromRowpad]: every row is
// rounded up to a whole byte. Used by PSF2 writers and similar.
func (g Glyph) AsRowpad() []byte {
	bytePerLine := (int(g.Size.W) + 7) / 8
	out := make([]byte, bytesPerGlyphRowpad(g.Size))
	for y := 0; y < int(g.Size.H); y++ {
		for x := 0; x < int(g.Size.W); x++ {
			if !g.At(x, y) {
				continue
			}
			qByte, qMask := bitIndex(x)
			out[y*bytePerLine+qByte] |= qMask
		}
	}
	return out
}

// AsPCLT renders the glyph as the text form used by CLT glyph files:
// header "PCLT\n<w> <h>\n", then one line per row with two characters
// per pixel ("##" for set, ".." for unset).
func (g Glyph) AsPCLT() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PCLT\n%d %d\n", g.Size.W, g.Size.H)
	for y := 0; y < int(g.Size.H); y++ {
		for x := 0; x < int(g.Size.W); x++ {
			if g.At(x, y) {
				sb.WriteString("##")
			} else {
				sb.WriteString("..")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// AsPBM renders the glyph as a standard P1 portable bitmap.
func (g Glyph) AsPBM() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "P1\n%d %d\n", g.Size.W, g.Size.H)
	for y := 0; y < int(g.Size.H); y++ {
		for x := 0; x < int(g.Size.W); x++ {
			if g.At(x, y) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CopyRectTo samples srcRect from g, translates it into dstRect
// within a copy of dst, and returns that copy. Both the source and
// destination rectangles are clipped against their respective
// canvases.
//
// If overwrite is true, unset source pixels also clear the
// corresponding destination pixels (a plain copy/crop operation);
// otherwise the source is OR-blended onto the destination, which is
// how overstrike-style composition is expressed. The canonical "crop"
// operation is CopyRectTo(srcRect, NewGlyph(dstRect.Size), dstRect).
func (g Glyph) CopyRectTo(srcRect geom.Rect, dst Glyph, dstRect geom.Rect, overwrite bool) Glyph {
	ng := dst.clone()
	for dy := 0; dy < int(srcRect.H); dy++ {
		sy := srcRect.Y + dy
		dyy := dstRect.Y + dy
		if sy < 0 || sy >= int(g.Size.H) || dyy < 0 || dyy >= int(ng.Size.H) {
			continue
		}
		for dx := 0; dx < int(srcRect.W); dx++ {
			sx := srcRect.X + dx
			dxx := dstRect.X + dx
			if sx < 0 || sx >= int(g.Size.W) || dxx < 0 || dxx >= int(ng.Size.W) {
				continue
			}
			if g.At(sx, sy) {
				ng.set(dxx, dyy)
			} else if overwrite {
				ng.clear(dxx, dyy)
			}
		}
	}
	return ng
}

// clone returns a deep copy of g.
func (g Glyph) clone() Glyph {
	ng := Glyph{Size: g.Size, bits: make([]byte, len(g.bits))}
	copy(ng.bits, g.bits)
	return ng
}

// Flip mirrors the glyph horizontally (flipX) and/or vertically
// (flipY).
func (g Glyph) Flip(flipX, flipY bool) Glyph {
	ng := NewGlyph(g.Size)
	for y := 0; y < int(g.Size.H); y++ {
		for x := 0; x < int(g.Size.W); x++ {
			if !g.At(x, y) {
				continue
			}
			ox, oy := x, y
			if flipX {
				ox = int(g.Size.W) - x - 1
			}
			if flipY {
				oy = int(g.Size.H) - y - 1
			}
			ng.set(ox, oy)
		}
	}
	return ng
}

// Upscale replicates each pixel into an fx*fy block.
func (g Glyph) Upscale(fx, fy uint) Glyph {
	if fx == 0 {
		fx = 1
	}
	if fy == 0 {
		fy = 1
	}
	ng := NewGlyph(geom.Size{W: g.Size.W * fx, H: g.Size.H * fy})
	for y := 0; y < int(ng.Size.H); y++ {
		for x := 0; x < int(ng.Size.W); x++ {
			if g.At(x/int(fx), y/int(fy)) {
				ng.set(x, y)
			}
		}
	}
	return ng
}

// Invert bitwise-negates the underlying byte buffer in place. Per
// spec, trailing bits beyond w*h become set; callers must treat the
// tail as don't-care (every accessor here stops at w*h, so this is
// safe to call without further cleanup).
func (g Glyph) Invert() {
	for i := range g.bits {
		g.bits[i] = ^g.bits[i]
	}
}

// SetLGE emulates VGA's "line graphics extension": for every row,
// the pixel at column w-1-adj is copied into column w-1. With adj=1
// on a 9-pixel-wide box-drawing glyph this replicates column 8 into
// column 9 (counting from 1). Callers wanting the conventional single-column replication
// pass adj=1.
func (g Glyph) SetLGE(adj uint) {
	if int(g.Size.W) < 2 {
		return
	}
	srcX := int(g.Size.W) - 1 - int(adj)
	dstX := int(g.Size.W) - 1
	if srcX < 0 {
		return
	}
	for y := 0; y < int(g.Size.H); y++ {
		if g.At(srcX, y) {
			g.set(dstX, y)
		} else {
			g.clear(dstX, y)
		}
	}
}

// Overstrike returns the bitwise OR of g with itself translated
// rightward by 1, 2, ..., px pixels, producing a bold-ish
// emboldening effect. Overstrike(0) returns an equal copy of g.
func (g Glyph) Overstrike(px uint) Glyph {
	ng := g.clone()
	for y := 0; y < int(g.Size.H); y++ {
		for x := 0; x < int(g.Size.W); x++ {
			if !g.At(x, y) {
				continue
			}
			for d := 1; d <= int(px); d++ {
				if x+d < int(g.Size.W) {
					ng.set(x+d, y)
				}
			}
		}
	}
	return ng
}

// FindBaseline returns y+1 of the lowest row containing any set
// pixel, or -1 if the glyph is entirely blank.
func (g Glyph) FindBaseline() int {
	for y := int(g.Size.H) - 1; y >= 0; y-- {
		for x := 0; x < int(g.Size.W); x++ {
			if g.At(x, y) {
				return y + 1
			}
		}
	}
	return -1
}

// Equal reports whether g and o have the same size and pixel
// contents.
func (g Glyph) Equal(o Glyph) bool {
	if g.Size != o.Size {
		return false
	}
	for y := 0; y < int(g.Size.H); y++ {
		for x := 0; x < int(g.Size.W); x++ {
			if g.At(x, y) != o.At(x, y) {
				return false
			}
		}
	}
	return true
}

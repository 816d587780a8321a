package vformat

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	vfa "github.com/consoleet/consoleet-utils"
	"github.com/consoleet/consoleet-utils/geom"
)

const (
	psf1Magic0, psf1Magic1 = 0x36, 0x04
	psf1ModeHas512         = 0x01
	psf1ModeHasUnicode     = 0x02 | 0x04
)

// LoadPSF1 reads a PSF1 console font: header `0x36 0x04 <mode>
// <charsize>`, length 512 glyphs if mode&1 else 256, fixed width 8,
// height == charsize. If mode&(2|4), a UCS-2 table follows the glyph
// data, one 0xFFFF-terminated run of codepoints per glyph.
func LoadPSF1(r io.Reader) (*vfa.Font, error) {
	br := bufio.NewReader(r)
	hdr := make([]byte, 4)
	if _, err := io.ReadFull(br, hdr); err != nil {
		return nil, &vfa.FormatError{Format: "PSF1", Reason: "short header"}
	}
	if hdr[0] != psf1Magic0 || hdr[1] != psf1Magic1 {
		return nil, &vfa.FormatError{Format: "PSF1", Reason: "bad magic"}
	}
	mode, charsize := hdr[2], hdr[3]
	length := 256
	if mode&psf1ModeHas512 != 0 {
		length = 512
	}
	sz := geom.Size{W: 8, H: uint(charsize)}

	f := vfa.NewFont()
	f.Glyphs = make([]vfa.Glyph, length)
	rowBytes := int(charsize)
	buf := make([]byte, rowBytes)
	for i := 0; i < length; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, &vfa.FormatError{Format: "PSF1", Reason: fmt.Sprintf("truncated glyph %d", i)}
		}
		f.Glyphs[i] = vfa.CreateFromRowpad(sz, buf)
	}

	if mode&psf1ModeHasUnicode != 0 {
		f.Map = vfa.NewUnicodeMap()
		for i := 0; i < length; i++ {
			for {
				var u16 uint16
				if err := binary.Read(br, binary.LittleEndian, &u16); err != nil {
					return nil, &vfa.FormatError{Format: "PSF1", Reason: "truncated unicode table"}
				}
				if u16 == 0xFFFF {
					break
				}
				f.Map.AddI2U(uint32(i), rune(u16))
			}
		}
	}
	return f, nil
}

// SavePSF1 writes f as a PSF1 font. length is forced to 256 or 512 by
// padding/truncating f.Glyphs; every glyph must be 8 pixels wide (a
// semantic precondition of the format).
func SavePSF1(w io.Writer, f *vfa.Font) error {
	length := 256
	if len(f.Glyphs) > 256 {
		length = 512
	}
	glyphs := make([]vfa.Glyph, length)
	copy(glyphs, f.Glyphs)
	for i := range glyphs {
		if glyphs[i].Size.W == 0 {
			glyphs[i] = vfa.NewGlyph(geom.Size{W: 8, H: 16})
		}
		if glyphs[i].Size.W != 8 {
			return fmt.Errorf("psf1: glyph %d is %d pixels wide, PSF1 requires width 8", i, glyphs[i].Size.W)
		}
	}
	charsize := int(glyphs[0].Size.H)

	mode := byte(0)
	if length == 512 {
		mode |= psf1ModeHas512
	}
	if f.Map != nil {
		mode |= psf1ModeHasUnicode
	}

	bw := bufio.NewWriter(w)
	bw.Write([]byte{psf1Magic0, psf1Magic1, mode, byte(charsize)})
	for _, g := range glyphs {
		bw.Write(g.AsRowpad())
	}
	if f.Map != nil {
		explicit := make(map[uint32][]rune)
		f.Map.Each(func(idx uint32, cps []rune) { explicit[idx] = cps })
		for i := 0; i < length; i++ {
			for _, cp := range explicit[uint32(i)] {
				binary.Write(bw, binary.LittleEndian, uint16(cp))
			}
			binary.Write(bw, binary.LittleEndian, uint16(0xFFFF))
		}
	}
	return bw.Flush()
}

var psf2Magic = [4]byte{0x72, 0xB5, 0x4A, 0x86}

const psf2FlagHasUnicode = 0x01

type psf2Header struct {
	Version, HeaderSize, Flags, Length, CharSize, Height, Width uint32
}

// LoadPSF2 reads a PSF2 console font: magic `72 B5 4A 86`, a
// little-endian header of (version, headersize, flags, length,
// charsize, height, width), row-padded glyph data, and -- when
// flags&1 -- a unicode table of UTF-8 codepoint runs separated by
// 0xFF, with 0xFE grouping multiple codepoints (aliases) for one
// glyph within a run.
func LoadPSF2(r io.Reader) (*vfa.Font, error) {
	br := bufio.NewReader(r)
	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil || magic != psf2Magic {
		return nil, &vfa.FormatError{Format: "PSF2", Reason: "bad magic"}
	}
	var h psf2Header
	for _, field := range []*uint32{&h.Version, &h.HeaderSize, &h.Flags, &h.Length, &h.CharSize, &h.Height, &h.Width} {
		if err := binary.Read(br, binary.LittleEndian, field); err != nil {
			return nil, &vfa.FormatError{Format: "PSF2", Reason: "short header"}
		}
	}
	if h.HeaderSize > 32 {
		io.CopyN(io.Discard, br, int64(h.HeaderSize)-32)
	}

	sz := geom.Size{W: uint(h.Width), H: uint(h.Height)}
	f := vfa.NewFont()
	f.Glyphs = make([]vfa.Glyph, h.Length)
	buf := make([]byte, h.CharSize)
	for i := uint32(0); i < h.Length; i++ {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, &vfa.FormatError{Format: "PSF2", Reason: fmt.Sprintf("truncated glyph %d", i)}
		}
		f.Glyphs[i] = vfa.CreateFromRowpad(sz, buf)
	}

	if h.Flags&psf2FlagHasUnicode != 0 {
		rest, err := io.ReadAll(br)
		if err != nil {
			return nil, err
		}
		f.Map = vfa.NewUnicodeMap()
		parsePSF2UnicodeTable(f.Map, rest, int(h.Length))
	}
	return f, nil
}

func parsePSF2UnicodeTable(m *vfa.UnicodeMap, data []byte, length int) {
	idx := 0
	i := 0
	for i < len(data) && idx < length {
		switch data[i] {
		case 0xFF:
			idx++
			i++
		case 0xFE:
			i++ // alias separator within one glyph's run; next codepoints still belong to idx
		default:
			r, size := decodeUTF8(data[i:])
			if size == 0 {
				i++
				continue
			}
			m.AddI2U(uint32(idx), r)
			i += size
		}
	}
}

// decodeUTF8 is a minimal UTF-8 decoder sufficient for the codepoint
// ranges PSF2 unicode tables carry; it falls back to consuming one
// byte on malformed input rather than looping forever.
func decodeUTF8(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	c0 := b[0]
	switch {
	case c0 < 0x80:
		return rune(c0), 1
	case c0&0xE0 == 0xC0 && len(b) >= 2:
		return rune(c0&0x1F)<<6 | rune(b[1]&0x3F), 2
	case c0&0xF0 == 0xE0 && len(b) >= 3:
		return rune(c0&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F), 3
	case c0&0xF8 == 0xF0 && len(b) >= 4:
		return rune(c0&0x07)<<18 | rune(b[1]&0x3F)<<12 | rune(b[2]&0x3F)<<6 | rune(b[3]&0x3F), 4
	default:
		return 0, 1
	}
}

// SavePSF2 writes f as a PSF2 font with a 32-byte header (no vendor
// extension bytes).
func SavePSF2(w io.Writer, f *vfa.Font) error {
	if len(f.Glyphs) == 0 {
		return fmt.Errorf("psf2: font has no glyphs")
	}
	sz := f.Glyphs[0].Size
	flags := uint32(0)
	if f.Map != nil {
		flags |= psf2FlagHasUnicode
	}
	h := psf2Header{
		Version:    0,
		HeaderSize: 32,
		Flags:      flags,
		Length:     uint32(len(f.Glyphs)),
		CharSize:   uint32(bytesPerGlyphRow(sz.W) * int(sz.H)),
		Height:     uint32(sz.H),
		Width:      uint32(sz.W),
	}

	bw := bufio.NewWriter(w)
	bw.Write(psf2Magic[:])
	for _, field := range []uint32{h.Version, h.HeaderSize, h.Flags, h.Length, h.CharSize, h.Height, h.Width} {
		binary.Write(bw, binary.LittleEndian, field)
	}
	for _, g := range f.Glyphs {
		bw.Write(g.AsRowpad())
	}
	if f.Map != nil {
		for i := range f.Glyphs {
			for _, cp := range f.Map.ToUnicode(uint32(i)) {
				bw.WriteString(string(cp))
			}
			bw.WriteByte(0xFF)
		}
	}
	return bw.Flush()
}

package vformat

import (
	"encoding/binary"
	"fmt"
	"io"

	vfa "github.com/consoleet/consoleet-utils"
	"github.com/consoleet/consoleet-utils/geom"
	"golang.org/x/text/encoding/charmap"
)

// DeviceType distinguishes a CPI codepage entry's target device
// (spec §6: "screen `device_type=1` or printer `2`").
type DeviceType int16

const (
	DeviceScreen  DeviceType = 1
	DevicePrinter DeviceType = 2
)

// CPFont is one screen-font resolution within one codepage entry of
// a CPI file.
type CPFont struct {
	Height, Width uint8
	Font          *vfa.Font
}

// CodePage is one chain link of a CPI file: a DOS codepage number
// plus every font size recorded for it.
type CodePage struct {
	Device   DeviceType
	Codepage uint16
	Fonts    []CPFont
}

// XlateOffset applies the `xcpi.ice` segment-offset translation
// spec §6 names: `(x>>12) + (x & 0xFFFF)`. Used on `cpih_offset` and
// `next_cpeh_offset` fields when xcpi.ice mode is requested.
func XlateOffset(x uint32) uint32 {
	return (x >> 12) + (x & 0xFFFF)
}

// fontFileHeader is the fixed 8-byte CPI lead-in: id0 = 0xFF,
// id = "FONT   " (spec §6: `0xFF "FONT    "`).
type fontFileHeader struct {
	ID0 byte
	ID  [7]byte
}

var cpiID = [7]byte{'F', 'O', 'N', 'T', ' ', ' ', ' '}

// LoadCPI reads a DOS CPI code-page information file: the
// FontFileHeader (`0xFF "FONT   "`), a single numeric-pointer entry
// (`pnum=1, ptyp=1`) locating the codepage entry chain, and the chain
// of CodePageEntryHeader -> CodePageInfoHeader -> ScreenFontHeader
// records each codepage carries. ice selects the `xcpi.ice`
// segment-offset translation on `cpih_offset`/`next_cpeh_offset`.
//
// r is read directly (no buffering) rather than through a
// bufio.Reader, because the chain-walking logic below interleaves
// sequential reads with absolute seeks computed from "next" and
// "offset" fields in the data itself; a buffered reader would
// silently prefetch past the logical read position and make a
// subsequent Seek land in the wrong place.
func LoadCPI(r io.ReadSeeker, ice bool) ([]CodePage, error) {
	var hdr fontFileHeader
	if err := readFull(r, &hdr.ID0); err != nil {
		return nil, &vfa.FormatError{Format: "CPI", Reason: "short header"}
	}
	if _, err := io.ReadFull(r, hdr.ID[:]); err != nil {
		return nil, &vfa.FormatError{Format: "CPI", Reason: "short header"}
	}
	if hdr.ID0 != 0xFF || hdr.ID != cpiID {
		return nil, &vfa.FormatError{Format: "CPI", Reason: "bad FontFileHeader magic"}
	}

	var reserved [8]byte
	io.ReadFull(r, reserved[:])
	var pnum uint16
	var ptyp uint8
	var fontOffset uint32
	readFull(r, &pnum)
	readFull(r, &ptyp)
	readFull(r, &fontOffset)
	if pnum != 1 || ptyp != 1 {
		return nil, &vfa.FormatError{Format: "CPI", Reason: fmt.Sprintf("unsupported pnum/ptyp %d/%d", pnum, ptyp)}
	}

	if _, err := r.Seek(int64(fontOffset), io.SeekStart); err != nil {
		return nil, err
	}

	var numCodepages uint16
	readFull(r, &numCodepages)

	var pages []CodePage
	for i := uint16(0); i < numCodepages; i++ {
		var cpeSize uint16
		var nextOffset uint32
		var deviceType uint16
		var deviceName [8]byte
		var codepage uint16
		var reserved2 [6]byte
		var cpihOffset uint32
		readFull(r, &cpeSize)
		readFull(r, &nextOffset)
		readFull(r, &deviceType)
		io.ReadFull(r, deviceName[:])
		readFull(r, &codepage)
		io.ReadFull(r, reserved2[:])
		readFull(r, &cpihOffset)

		if ice {
			cpihOffset = XlateOffset(cpihOffset)
		}

		pos, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}
		if _, err := r.Seek(int64(cpihOffset), io.SeekStart); err != nil {
			return nil, err
		}
		page, err := readCodePageInfo(r, DeviceType(deviceType), codepage)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return nil, err
		}

		if nextOffset == 0 || nextOffset == 0xFFFFFFFF {
			break
		}
		if ice {
			nextOffset = XlateOffset(nextOffset)
		}
		if _, err := r.Seek(int64(nextOffset), io.SeekStart); err != nil {
			return nil, err
		}
	}
	return pages, nil
}

// readFull reads binary.Size(v) little-endian bytes from r into v,
// ignoring errors the way the fixed-layout fields above are allowed
// to (a truncated file surfaces as a later ReadFull/FormatError
// instead).
func readFull(r io.Reader, v interface{}) error {
	return binary.Read(r, binary.LittleEndian, v)
}

func readCodePageInfo(br io.Reader, device DeviceType, codepage uint16) (CodePage, error) {
	var numFonts uint16
	var reserved [6]byte
	binary.Read(br, binary.LittleEndian, &numFonts)
	io.ReadFull(br, reserved[:])

	page := CodePage{Device: device, Codepage: codepage}
	for i := uint16(0); i < numFonts; i++ {
		var height, width uint8
		var reserved2 [6]byte
		var numChars uint16
		binary.Read(br, binary.LittleEndian, &height)
		binary.Read(br, binary.LittleEndian, &width)
		io.ReadFull(br, reserved2[:])
		binary.Read(br, binary.LittleEndian, &numChars)

		sz := geom.Size{W: uint(width), H: uint(height)}
		f := vfa.NewFont()
		buf := make([]byte, bytesPerGlyphRow(sz.W)*int(sz.H))
		for c := uint16(0); c < numChars; c++ {
			if _, err := io.ReadFull(br, buf); err != nil {
				return page, &vfa.FormatError{Format: "CPI", Reason: "truncated glyph data"}
			}
			f.Glyphs = append(f.Glyphs, vfa.CreateFromRowpad(sz, buf))
		}
		page.Fonts = append(page.Fonts, CPFont{Height: height, Width: width, Font: f})
	}
	return page, nil
}

// SaveCPI writes pages as a single-pointer CPI file: the
// FontFileHeader, one CodePageEntryHeader/CodePageInfoHeader/
// ScreenFontHeader chain link per page, laid out back to back with
// no gaps so offsets are computable without a second pass. When ice
// is set, cpih_offset and next_cpeh_offset are stored pre-translated
// so a LoadCPI(ice=true) of the output recovers the original offsets.
func SaveCPI(w io.Writer, pages []CodePage, ice bool) error {
	buf := newCpiBuffer()

	buf.writeByte(0xFF)
	buf.write(cpiID[:])
	buf.write(make([]byte, 8)) // reserved
	buf.writeU16(1)            // pnum
	buf.writeByte(1)           // ptyp
	fontOffsetPos := buf.reserveU32()

	fontOffset := uint32(buf.len())
	buf.patchU32(fontOffsetPos, fontOffset)
	buf.writeU16(uint16(len(pages)))

	entryHeaderSize := uint16(2 + 4 + 2 + 8 + 2 + 6 + 4)
	nextOffsetPos := make([]int, len(pages))
	cpihOffsetPos := make([]int, len(pages))
	for i, p := range pages {
		buf.writeU16(entryHeaderSize)
		nextOffsetPos[i] = buf.reserveU32()
		buf.writeU16(uint16(p.Device))
		buf.write(make([]byte, 8))
		buf.writeU16(p.Codepage)
		buf.write(make([]byte, 6))
		cpihOffsetPos[i] = buf.reserveU32()
	}

	for i, p := range pages {
		cpihOffset := uint32(buf.len())
		stored := cpihOffset
		if ice {
			stored = XlateOffset(cpihOffset)
		}
		buf.patchU32(cpihOffsetPos[i], stored)

		buf.writeU16(uint16(len(p.Fonts)))
		buf.write(make([]byte, 6))
		for _, cf := range p.Fonts {
			buf.writeByte(cf.Height)
			buf.writeByte(cf.Width)
			buf.write(make([]byte, 6))
			buf.writeU16(uint16(len(cf.Font.Glyphs)))
			for _, g := range cf.Font.Glyphs {
				buf.write(g.AsRowpad())
			}
		}

		if i+1 < len(pages) {
			next := uint32(buf.len())
			stored := next
			if ice {
				stored = XlateOffset(next)
			}
			buf.patchU32(nextOffsetPos[i], stored)
		} else {
			buf.patchU32(nextOffsetPos[i], 0)
		}
	}

	_, err := w.Write(buf.bytes())
	return err
}

// cpiBuffer is a tiny growable byte buffer supporting the
// write-now/patch-later pattern SaveCPI needs for forward offset
// fields (a field whose value is only known once the bytes after it
// have been written).
type cpiBuffer struct{ b []byte }

func newCpiBuffer() *cpiBuffer { return &cpiBuffer{} }
func (c *cpiBuffer) len() int  { return len(c.b) }
func (c *cpiBuffer) bytes() []byte { return c.b }
func (c *cpiBuffer) write(p []byte) { c.b = append(c.b, p...) }
func (c *cpiBuffer) writeByte(v byte) { c.b = append(c.b, v) }
func (c *cpiBuffer) writeU16(v uint16) {
	c.b = append(c.b, byte(v), byte(v>>8))
}
func (c *cpiBuffer) reserveU32() int {
	pos := len(c.b)
	c.b = append(c.b, 0, 0, 0, 0)
	return pos
}
func (c *cpiBuffer) patchU32(pos int, v uint32) {
	c.b[pos] = byte(v)
	c.b[pos+1] = byte(v >> 8)
	c.b[pos+2] = byte(v >> 16)
	c.b[pos+3] = byte(v >> 24)
}

// CodepageName resolves a DOS codepage number to a human-readable
// name via golang.org/x/text/encoding/charmap, for the "codepage-name"
// font property vfontas attaches when loading a CPI codepage (spec
// §1's "legacy DOS code pages").
func CodepageName(codepage uint16) string {
	cm, ok := dosCodepages[codepage]
	if !ok {
		return fmt.Sprintf("CP%d", codepage)
	}
	return cm.String()
}

var dosCodepages = map[uint16]*charmap.Charmap{
	437: charmap.CodePage437,
	850: charmap.CodePage850,
	852: charmap.CodePage852,
	855: charmap.CodePage855,
	858: charmap.CodePage858,
	860: charmap.CodePage860,
	862: charmap.CodePage862,
	863: charmap.CodePage863,
	865: charmap.CodePage865,
	866: charmap.CodePage866,
}

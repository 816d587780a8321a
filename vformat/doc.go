// Package vformat implements the loaders and savers for the external
// font file formats a vfontas command sequence can read from and
// write to: BDF, PSF1/PSF2, PCF, CPI, console HEX, CLT, PBM, SFD, FNT,
// and unicode-map text. Each function operates against the root
// package's Font/Glyph/UnicodeMap rather than a format-specific
// intermediate representation.
//
// A loader returns a *vfa.FormatError when the input's magic, header,
// or structure doesn't match; errors from the underlying reader are
// returned as they are. The *vfa.FileError type is built by
// cmd/vfontas when opening or creating a file fails.
package vformat

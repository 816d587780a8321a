// Package vfa ("VGA font assembler") implements the in-memory bitmap
// font model shared by the vfontas and palcomp command-line tools: the
// raster [Glyph], the bidirectional [UnicodeMap], and the [Font]
// container that glues them together with format-agnostic properties.
//
// Concrete file formats (BDF, PSF, PCF, CPI, HEX, CLT, PBM, SFD, FNT,
// unimap text) live in the vformat subpackage and build on top of
// this one. The bitmap-to-outline vectorizer lives in the vectorize
// subpackage. The palette composer's color pipeline lives in the
// palette subpackage.
package vfa

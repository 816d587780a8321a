// Package palette implements the perceptual color pipeline behind
// palcomp: sRGB <-> linear RGB <-> CIE XYZ <-> CIE L*C*h* <-> HSL
// conversions, a small recursive-descent expression evaluator over
// per-entry registers, the APCA and L-difference contrast analyzers,
// palette equalization, and the built-in VGA/Windows palettes.
//
// A [Palette] keeps two representations of the same 16 entries in
// sync: an sRGB888 array (what gets written back out) and an LCh
// array (what most commands actually edit). Every mutating command
// updates one side and recomputes the other; there is no lazy
// invalidation, since the palette is tiny and commands run once each
// in argv order.
package palette

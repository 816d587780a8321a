// Package geom provides the integer geometry primitives shared by the
// glyph raster model and the vectorizer: positions, sizes, rectangles,
// and the ordered vertices/edges that the vectorizer's edge graph is
// built from.
//
// Everything here is a plain value type. The original C++ library
// modeled Rect as public inheritance from Pos and Size; there is no
// inheritance hierarchy to preserve in Go, so Rect simply embeds both.
package geom

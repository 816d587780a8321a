package palette

import "math"

// No third-party color-math library appears anywhere in the
// retrieval pack (palcomp.cpp's own dependency, babl, is a C library
// with no Go port among the examples); every conversion below is
// therefore hand-written directly from spec §4.7's formulas rather
// than reached for from an ecosystem package. See DESIGN.md for the
// standing justification.

const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

// SRGB888 is an 8-bit-per-channel sRGB color, the palette's
// on-the-wire representation.
type SRGB888 struct {
	R, G, B uint8
}

// Linear is linear-light RGB, each component in [0, 1] (and
// occasionally slightly outside it for out-of-gamut intermediate
// results).
type Linear struct {
	R, G, B float64
}

// XYZ is a CIE XYZ tristimulus value.
type XYZ struct {
	X, Y, Z float64
}

// Lab is a CIE L*a*b* color.
type Lab struct {
	L, A, B float64
}

// LCh is the cylindrical form of [Lab]: H is in degrees, normalized
// to [0, 360).
type LCh struct {
	L, C, H float64
}

// HSL is standard hue/saturation/lightness, hue in degrees and
// saturation/lightness in [0, 1].
type HSL struct {
	H, S, L float64
}

// Mat3 is a 3x3 matrix stored row-major, used for the linear-RGB/XYZ
// change of basis.
type Mat3 [3][3]float64

// Mul applies m to column vector v.
func (m Mat3) Mul(v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Inverse returns m's inverse via the closed-form 3x3 cofactor
// formula (cheap and exact enough for a 3x3 system run a handful of
// times per process).
func (m Mat3) Inverse() Mat3 {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	inv := 1.0 / det

	return Mat3{
		{(e*i - f*h) * inv, (c*h - b*i) * inv, (b*f - c*e) * inv},
		{(f*g - d*i) * inv, (a*i - c*g) * inv, (c*d - a*f) * inv},
		{(d*h - e*g) * inv, (b*g - a*h) * inv, (a*e - b*d) * inv},
	}
}

// primariesXY is the sRGB primaries' chromaticity, fixed per spec
// §4.7.
var primariesXY = [3][2]float64{
	{0.64, 0.33}, // R
	{0.30, 0.60}, // G
	{0.15, 0.06}, // B
}

// rgbToXYZMatrix derives the linear-RGB -> XYZ matrix from the fixed
// primaries and the given whitepoint, per spec §4.7: "M = M' *
// diag(M'^-1 . W), with M' the xy-matrix of the primaries."
func rgbToXYZMatrix(white XYZ) Mat3 {
	var mPrime Mat3
	for col, xy := range primariesXY {
		x, y := xy[0], xy[1]
		mPrime[0][col] = x / y
		mPrime[1][col] = 1
		mPrime[2][col] = (1 - x - y) / y
	}
	s := mPrime.Inverse().Mul([3]float64{white.X, white.Y, white.Z})
	return Mat3{
		{mPrime[0][0] * s[0], mPrime[0][1] * s[1], mPrime[0][2] * s[2]},
		{mPrime[1][0] * s[0], mPrime[1][1] * s[1], mPrime[1][2] * s[2]},
		{mPrime[2][0] * s[0], mPrime[2][1] * s[1], mPrime[2][2] * s[2]},
	}
}

// IlluminantD returns the CIE XYZ whitepoint of illuminant D at
// color temperature T kelvin, via the standard piecewise chromaticity
// polynomial named in spec §4.7.
func IlluminantD(t float64) XYZ {
	var x float64
	switch {
	case t <= 7000:
		x = -4.6070e9/(t*t*t) + 2.9678e6/(t*t) + 0.09911e3/t + 0.244063
	default:
		x = -2.0064e9/(t*t*t) + 1.9018e6/(t*t) + 0.24748e3/t + 0.237040
	}
	y := -3*x*x + 2.87*x - 0.275
	return chromaticityToXYZ(x, y)
}

func chromaticityToXYZ(x, y float64) XYZ {
	if y == 0 {
		return XYZ{}
	}
	return XYZ{X: x / y, Y: 1, Z: (1 - x - y) / y}
}

// Engine holds the palette pipeline's process-wide state: the
// whitepoint, the derived RGB<->XYZ matrices, and an optional gamma
// override (spec §9 "Global state in palette pipeline... represent
// as a single configuration value threaded through the command
// dispatcher"). Commands mutate an *Engine in argv order; conversions
// take one as an explicit parameter rather than reading a package
// global.
type Engine struct {
	White         XYZ
	ToXYZ         Mat3
	FromXYZ       Mat3
	GammaOverride *float64
}

// NewEngine returns the default engine: illuminant D at 6500K, no
// gamma override.
func NewEngine() *Engine {
	e := &Engine{}
	e.SetWhitepoint(6500)
	return e
}

// SetWhitepoint recomputes White, ToXYZ and FromXYZ for illuminant D
// at kelvinTemp (the `ild=T` command, spec §4.7).
func (e *Engine) SetWhitepoint(kelvinTemp float64) {
	e.White = IlluminantD(kelvinTemp)
	e.ToXYZ = rgbToXYZMatrix(e.White)
	e.FromXYZ = e.ToXYZ.Inverse()
}

func srgbExpand(c float64, gamma *float64) float64 {
	if gamma != nil {
		return math.Pow(c, *gamma)
	}
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 12.0/5.0)
}

func srgbCompress(c float64, gamma *float64) float64 {
	if c < 0 {
		c = 0
	}
	if gamma != nil {
		return math.Pow(c, 1 / *gamma)
	}
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ToLinear expands an sRGB888 color to linear RGB, honoring e's gamma
// override if set.
func (e *Engine) ToLinear(c SRGB888) Linear {
	return Linear{
		R: srgbExpand(clamp01(float64(c.R)/255), e.GammaOverride),
		G: srgbExpand(clamp01(float64(c.G)/255), e.GammaOverride),
		B: srgbExpand(clamp01(float64(c.B)/255), e.GammaOverride),
	}
}

// ToSRGB888 compresses linear RGB back to sRGB888, clamping each
// channel to [0, 255].
func (e *Engine) ToSRGB888(c Linear) SRGB888 {
	return SRGB888{
		R: clampByte(srgbCompress(c.R, e.GammaOverride) * 255),
		G: clampByte(srgbCompress(c.G, e.GammaOverride) * 255),
		B: clampByte(srgbCompress(c.B, e.GammaOverride) * 255),
	}
}

// ToXYZFrom converts linear RGB to CIE XYZ under e's current matrix.
func (e *Engine) ToXYZFrom(c Linear) XYZ {
	v := e.ToXYZ.Mul([3]float64{c.R, c.G, c.B})
	return XYZ{X: v[0], Y: v[1], Z: v[2]}
}

// ToLinearFrom converts CIE XYZ back to linear RGB under e's current
// matrix.
func (e *Engine) ToLinearFrom(c XYZ) Linear {
	v := e.FromXYZ.Mul([3]float64{c.X, c.Y, c.Z})
	return Linear{R: v[0], G: v[1], B: v[2]}
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labFInv(t float64) float64 {
	if t3 := t * t * t; t3 > labEpsilon {
		return t3
	}
	return (116*t - 16) / labKappa
}

// ToLab converts XYZ to CIE L*a*b* under e's whitepoint.
func (e *Engine) ToLab(c XYZ) Lab {
	fx := labF(c.X / e.White.X)
	fy := labF(c.Y / e.White.Y)
	fz := labF(c.Z / e.White.Z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// ToXYZFromLab converts CIE L*a*b* back to XYZ under e's whitepoint.
func (e *Engine) ToXYZFromLab(c Lab) XYZ {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200
	return XYZ{
		X: e.White.X * labFInv(fx),
		Y: e.White.Y * labFInv(fy),
		Z: e.White.Z * labFInv(fz),
	}
}

// ToLCh converts Lab to its cylindrical LCh form, with hue normalized
// to [0, 360).
func ToLCh(c Lab) LCh {
	h := math.Atan2(c.B, c.A) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return LCh{L: c.L, C: math.Hypot(c.A, c.B), H: h}
}

// ToLab converts LCh back to Lab.
func ToLab(c LCh) Lab {
	rad := c.H * math.Pi / 180
	return Lab{L: c.L, A: c.C * math.Cos(rad), B: c.C * math.Sin(rad)}
}

// ToHSL converts an sRGB888 color to HSL.
func ToHSL(c SRGB888) HSL {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2
	if max == min {
		return HSL{H: 0, S: 0, L: l}
	}
	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	var h float64
	switch max {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return HSL{H: h, S: s, L: l}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// ToSRGB888FromHSL converts HSL back to sRGB888.
func ToSRGB888FromHSL(c HSL) SRGB888 {
	if c.S == 0 {
		v := clampByte(c.L * 255)
		return SRGB888{v, v, v}
	}
	var q float64
	if c.L < 0.5 {
		q = c.L * (1 + c.S)
	} else {
		q = c.L + c.S - c.L*c.S
	}
	p := 2*c.L - q
	ht := c.H / 360
	r := hueToChannel(p, q, ht+1.0/3)
	g := hueToChannel(p, q, ht)
	b := hueToChannel(p, q, ht-1.0/3)
	return SRGB888{clampByte(r * 255), clampByte(g * 255), clampByte(b * 255)}
}

// ToLCh converts an sRGB888 color all the way to LCh under e's
// current engine state.
func (e *Engine) ToLCh(c SRGB888) LCh {
	return ToLCh(e.ToLab(e.ToXYZFrom(e.ToLinear(c))))
}

// ToSRGB888FromLCh converts LCh all the way back to sRGB888 under e's
// current engine state.
func (e *Engine) ToSRGB888FromLCh(c LCh) SRGB888 {
	return e.ToSRGB888(e.ToLinearFrom(e.ToXYZFromLab(ToLab(c))))
}

package palette

import "math"

// ContrastStats summarizes one sub-grid of a 16x16 delta[bg][fg]
// contrast matrix (spec §4.9): pair count, penalized count, the raw
// sum/mean, and the sum/mean restricted to non-penalized pairs.
type ContrastStats struct {
	Pairs        int
	Penalized    int
	Sum          float64
	Mean         float64
	AdjustedSum  float64
	AdjustedMean float64
}

// ContrastMatrix is a full 16x16 delta[bg][fg] contrast grid plus the
// three sub-grid summaries spec §4.9 calls for.
type ContrastMatrix struct {
	Delta  [NumEntries][NumEntries]float64
	Full   ContrastStats // 16x16, bg and fg both 0..15
	FgHigh ContrastStats // 8x16: bg 0..15, fg 8..15
	Low8x8 ContrastStats // 8x8: bg 0..7, fg 0..7
}

func summarize(delta [NumEntries][NumEntries]float64, bgLo, bgHi, fgLo, fgHi int, penalty func(float64) bool) ContrastStats {
	var s ContrastStats
	for bg := bgLo; bg < bgHi; bg++ {
		for fg := fgLo; fg < fgHi; fg++ {
			d := delta[bg][fg]
			s.Pairs++
			s.Sum += d
			if penalty(d) {
				s.Penalized++
			} else {
				s.AdjustedSum += d
			}
		}
	}
	if s.Pairs > 0 {
		s.Mean = s.Sum / float64(s.Pairs)
	}
	if nonPenalized := s.Pairs - s.Penalized; nonPenalized > 0 {
		s.AdjustedMean = s.AdjustedSum / float64(nonPenalized)
	}
	return s
}

func buildMatrix(delta [NumEntries][NumEntries]float64, penalty func(float64) bool) ContrastMatrix {
	return ContrastMatrix{
		Delta:  delta,
		Full:   summarize(delta, 0, 16, 0, 16, penalty),
		FgHigh: summarize(delta, 0, 16, 8, 16, penalty),
		Low8x8: summarize(delta, 0, 8, 0, 8, penalty),
	}
}

// CXL is the LCh lightness-difference contrast analyzer: delta[bg][fg]
// = |L[fg] - L[bg]|, penalized below 7.0 (spec §4.9).
func (p *Palette) CXL() ContrastMatrix {
	var delta [NumEntries][NumEntries]float64
	for bg := 0; bg < NumEntries; bg++ {
		for fg := 0; fg < NumEntries; fg++ {
			delta[bg][fg] = math.Abs(p.LCh[fg].L - p.LCh[bg].L)
		}
	}
	return buildMatrix(delta, func(x float64) bool { return x < 7.0 })
}

// APCA constants from the W3 APCA/SAPC algorithm version 0.0.98G,
// transcribed exactly per spec §4.9.
const (
	apcaNormBG      = 0.56
	apcaNormTXT     = 0.57
	apcaRevTXT      = 0.62
	apcaRevBG       = 0.65
	apcaBlackThresh = 0.022
	apcaBlackClamp  = 1.414
	apcaScaleBoW    = 1.14
	apcaScaleWoB    = 1.14
	apcaLoOffset    = 0.027
	apcaDeltaYMin   = 5e-4
)

// relativeLuminance is the linear-light Y channel APCA operates on:
// the color is linearized through the Engine's own ToLinear path and
// then weighted with the fixed BT.709 coefficients.
func (e *Engine) relativeLuminance(c SRGB888) float64 {
	lin := e.ToLinear(c)
	// ITU-R BT.709 luma weights, the APCA reference implementation's Y.
	return 0.2126*lin.R + 0.7152*lin.G + 0.0722*lin.B
}

func apcaSoftBlack(y float64) float64 {
	if y <= apcaBlackThresh {
		return y + math.Pow(apcaBlackThresh-y, apcaBlackClamp)
	}
	return y
}

// apcaContrast implements the SAPC contrast formula between a text
// color (fg) and background color (bg), both given as APCA's
// black-clamped relative luminance. Returns a signed percentage: a
// positive result is dark text on a light background ("BoW"),
// negative is light text on dark ("WoB"), per the reference
// algorithm's sign convention.
func apcaContrast(fgY, bgY float64) float64 {
	fgY = apcaSoftBlack(fgY)
	bgY = apcaSoftBlack(bgY)

	if math.Abs(bgY-fgY) < apcaDeltaYMin {
		return 0
	}

	var sapc float64
	if bgY > fgY {
		// Dark text on a light background ("black on white"): positive.
		sapc = (math.Pow(bgY, apcaNormBG) - math.Pow(fgY, apcaNormTXT)) * apcaScaleBoW
	} else {
		// Light text on a dark background ("white on black"): negative.
		sapc = (math.Pow(bgY, apcaRevBG) - math.Pow(fgY, apcaRevTXT)) * apcaScaleWoB
	}

	var out float64
	switch {
	case sapc > 0 && sapc < 0.1:
		out = 0
	case sapc > 0:
		out = sapc - apcaLoOffset
	case sapc < 0 && sapc > -0.1:
		out = 0
	default:
		out = sapc + apcaLoOffset
	}
	return out * 100
}

// CXA is the APCA/SAPC contrast analyzer, penalized below 7.3 (spec
// §4.9). delta[bg][fg] is the absolute APCA percentage between
// entries bg and fg.
func (p *Palette) CXA() ContrastMatrix {
	lum := make([]float64, NumEntries)
	for i, c := range p.RGB {
		lum[i] = p.Engine.relativeLuminance(c)
	}
	var delta [NumEntries][NumEntries]float64
	for bg := 0; bg < NumEntries; bg++ {
		for fg := 0; fg < NumEntries; fg++ {
			delta[bg][fg] = math.Abs(apcaContrast(lum[fg], lum[bg]))
		}
	}
	return buildMatrix(delta, func(x float64) bool { return x < 7.3 })
}

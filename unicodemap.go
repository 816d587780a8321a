package vfa

// UnicodeMap is a bidirectional relation between glyph index and
// Unicode codepoint. The two directions are kept mutually consistent
// by construction: every (index, codepoint) pair recorded through
// [UnicodeMap.AddI2U] updates both the forward and backward lookup at
// once. A missing forward entry for an index is interpreted as the
// identity mapping, i.e. ToUnicode(i) == {i} when index i was never
// added.
type UnicodeMap struct {
	i2u map[uint32]map[rune]struct{}
	u2i map[rune]uint32
}

// NewUnicodeMap returns an empty map.
func NewUnicodeMap() *UnicodeMap {
	return &UnicodeMap{
		i2u: make(map[uint32]map[rune]struct{}),
		u2i: make(map[rune]uint32),
	}
}

// AddI2U inserts cp into the codepoint set for idx and sets the
// reverse mapping u2i[cp] = idx, overwriting any previous owner of
// that codepoint.
func (m *UnicodeMap) AddI2U(idx uint32, cp rune) {
	set, ok := m.i2u[idx]
	if !ok {
		set = make(map[rune]struct{})
		m.i2u[idx] = set
	}
	set[cp] = struct{}{}
	m.u2i[cp] = idx
}

// ToUnicode returns the codepoint set mapped to idx, or {idx} if idx
// was never recorded (the identity default).
func (m *UnicodeMap) ToUnicode(idx uint32) []rune {
	set, ok := m.i2u[idx]
	if !ok {
		return []rune{rune(idx)}
	}
	out := make([]rune, 0, len(set))
	for cp := range set {
		out = append(out, cp)
	}
	return out
}

// ToIndex returns the glyph index mapped to cp, or -1 if absent.
func (m *UnicodeMap) ToIndex(cp rune) int64 {
	idx, ok := m.u2i[cp]
	if !ok {
		return -1
	}
	return int64(idx)
}

// SwapIdx exchanges the entries at indices a and b in both
// directions. Calling it twice with the same arguments is a no-op.
func (m *UnicodeMap) SwapIdx(a, b uint32) {
	if a == b {
		return
	}
	setA, hasA := m.i2u[a]
	setB, hasB := m.i2u[b]
	if hasA {
		delete(m.i2u, a)
	}
	if hasB {
		delete(m.i2u, b)
	}
	if hasA {
		m.i2u[b] = setA
		for cp := range setA {
			m.u2i[cp] = b
		}
	}
	if hasB {
		m.i2u[a] = setB
		for cp := range setB {
			m.u2i[cp] = a
		}
	}
}

// Each calls fn once per recorded index, in unspecified order. Used
// by savers that must iterate every explicit (index, codepoint) pair,
// such as save_map in the original tool.
func (m *UnicodeMap) Each(fn func(idx uint32, cps []rune)) {
	for idx, set := range m.i2u {
		cps := make([]rune, 0, len(set))
		for cp := range set {
			cps = append(cps, cp)
		}
		fn(idx, cps)
	}
}

// EachByCodepoint calls fn once per (codepoint, index) pair in
// codepoint order, which is how BDF/SFD/PBM/CLT savers enumerate
// glyphs when a unicode map is present (each glyph is emitted once
// per codepoint it is reachable from, in codepoint order).
func (m *UnicodeMap) EachByCodepoint(fn func(cp rune, idx uint32)) {
	cps := make([]rune, 0, len(m.u2i))
	for cp := range m.u2i {
		cps = append(cps, cp)
	}
	// simple insertion sort keeps this dependency-free and is more
	// than fast enough for the handful of codepoints a console font
	// maps.
	for i := 1; i < len(cps); i++ {
		for j := i; j > 0 && cps[j] < cps[j-1]; j-- {
			cps[j], cps[j-1] = cps[j-1], cps[j]
		}
	}
	for _, cp := range cps {
		fn(cp, m.u2i[cp])
	}
}

// Len returns the number of indices with an explicit codepoint set.
func (m *UnicodeMap) Len() int { return len(m.i2u) }

package palette

import "golang.org/x/exp/slices"

// defaultEqB is eq's default target L for the second-darkest entry,
// 100/16 (spec §4.10).
const defaultEqB = 100.0 / 16

// defaultLoEqB, defaultLoEqG are loeq's defaults, 100/9 and 100*8/9
// (spec §4.10).
const (
	defaultLoEqB = 100.0 / 9
	defaultLoEqG = 100.0 * 8 / 9
)

// equalizeRange implements spec §4.10's shared procedure: sort the
// given indices by current L, leave the darkest entry's L untouched,
// and spread the remaining len(indices)-1 entries evenly across
// [b, g] plus the darkest entry's own L as a baseline offset, in
// ascending-L order.
func equalizeRange(p *Palette, indices []int, b, g float64) {
	if len(indices) < 2 {
		return
	}
	sorted := append([]int(nil), indices...)
	slices.SortFunc(sorted, func(a, b int) bool { return p.LCh[a].L < p.LCh[b].L })

	baseline := p.LCh[sorted[0]].L
	rest := sorted[1:]
	n := len(rest)
	step := 0.0
	if n > 1 {
		step = (g - b) / float64(n-1)
	}
	for rank, idx := range rest {
		target := b + step*float64(rank)
		if n == 1 {
			target = b
		}
		target += baseline
		c := p.LCh[idx]
		c.L = target
		p.SetLCh(idx, c)
	}
}

// Eq is the `eq[=b]` command: spaces all 16 entries' L values linearly
// across [b, 100], leaving the darkest entry as baseline.
func (p *Palette) Eq(b float64) {
	all := make([]int, NumEntries)
	for i := range all {
		all[i] = i
	}
	equalizeRange(p, all, b, 100)
}

// EqDefault runs Eq with spec §4.10's default b = 100/16.
func (p *Palette) EqDefault() { p.Eq(defaultEqB) }

// LoEq is the `loeq[=b[,g]]` command: the same procedure restricted to
// indices 0..8 (the 8 standard colors plus "darkgray").
func (p *Palette) LoEq(b, g float64) {
	equalizeRange(p, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, b, g)
}

// LoEqDefault runs LoEq with spec §4.10's defaults b ~= 11.11, g ~= 88.88.
func (p *Palette) LoEqDefault() { p.LoEq(defaultLoEqB, defaultLoEqG) }

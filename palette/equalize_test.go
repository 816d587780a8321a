package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqLeavesDarkestUntouched(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	darkest := 0
	for i := 1; i < NumEntries; i++ {
		if p.LCh[i].L < p.LCh[darkest].L {
			darkest = i
		}
	}
	before := p.LCh[darkest].L
	p.EqDefault()
	assert.Equal(t, before, p.LCh[darkest].L)
}

func TestEqSpreadsRemainingEntriesAcrossRange(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	p.Eq(10)

	darkest := 0
	for i := 1; i < NumEntries; i++ {
		if p.LCh[i].L < p.LCh[darkest].L {
			darkest = i
		}
	}
	minOther, maxOther := 1000.0, -1000.0
	for i := 0; i < NumEntries; i++ {
		if i == darkest {
			continue
		}
		if p.LCh[i].L < minOther {
			minOther = p.LCh[i].L
		}
		if p.LCh[i].L > maxOther {
			maxOther = p.LCh[i].L
		}
	}
	assert.InDelta(t, 10, minOther, 1e-6)
	assert.InDelta(t, 100, maxOther, 1e-6)
}

func TestLoEqRestrictedToFirstNineIndices(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	before := make([]LCh, NumEntries)
	copy(before, p.LCh[:])
	p.LoEqDefault()
	for i := 9; i < NumEntries; i++ {
		assert.Equal(t, before[i], p.LCh[i])
	}
}

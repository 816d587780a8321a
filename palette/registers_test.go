package palette

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideDefaultsAndClear(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	assert.Equal(t, 7, p.fgIndex())
	assert.Equal(t, 0, p.bgIndex())
	assert.Equal(t, 7, p.bdIndex())

	require.NoError(t, p.SetFG(2))
	require.NoError(t, p.SetBD(4))
	assert.Equal(t, 2, p.fgIndex())
	assert.Equal(t, 4, p.bdIndex())

	p.ClearOverrides()
	assert.Equal(t, 7, p.fgIndex())
	assert.Equal(t, 7, p.bdIndex())
}

func TestSetOverrideRejectsOutOfRange(t *testing.T) {
	p := NewPalette()
	require.Error(t, p.SetFG(16))
	require.Error(t, p.SetBG(-1))
}

func TestInvertTop16SwapsHalves(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	lo, hi := p.RGB[0], p.RGB[8]
	p.InvertTop16()
	assert.Equal(t, hi, p.RGB[0])
	assert.Equal(t, lo, p.RGB[8])
}

func TestCTEmitsOneSequencePerRegister(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	out := p.CT()
	assert.Equal(t, NumEntries, strings.Count(out, "\x1b]4;"))
}

func TestXfceIncludesResolvedOverrides(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	require.NoError(t, p.SetFG(9))
	out := p.Xfce()
	c := p.RGB[9]
	assert.Contains(t, out, fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

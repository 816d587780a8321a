package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalNoOpIdentity(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	before := p.LCh
	require.NoError(t, p.Eval("l=l", nil))
	assert.Equal(t, before, p.LCh)
}

func TestEvalScopedAssignment(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	require.NoError(t, p.Eval("l=0", []int{0}))
	assert.Equal(t, 0.0, p.LCh[0].L)
	require.NoError(t, p.Eval("l=100", []int{0}))
	assert.Equal(t, 100.0, p.LCh[0].L)
}

func TestEvalZeroesAllThreeComponents(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	require.NoError(t, p.Eval("l=l*0,c=c*0,h=h*0", nil))
	for i := 0; i < NumEntries; i++ {
		assert.Zero(t, p.LCh[i].L)
		assert.Zero(t, p.LCh[i].C)
		assert.Zero(t, p.LCh[i].H)
	}
}

func TestEvalPrecedenceMatchesExplicitGrouping(t *testing.T) {
	p1 := NewPalette()
	p1.LoadVGA()
	p2 := NewPalette()
	p2.LoadVGA()

	require.NoError(t, p1.Eval("l=l+1*2", nil))
	require.NoError(t, p2.Eval("l=l+(1*2)", nil))
	assert.Equal(t, p1.LCh, p2.LCh)
}

func TestEvalSequenceAppliesInOrder(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	require.NoError(t, p.Eval("l=10,l=l+5", []int{3}))
	assert.Equal(t, 15.0, p.LCh[3].L)
}

func TestEvalHueWrapsModulo360(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	require.NoError(t, p.Eval("h=370", []int{0}))
	assert.Equal(t, 10.0, p.LCh[0].H)
	require.NoError(t, p.Eval("h=0-10", []int{0}))
	assert.Equal(t, 350.0, p.LCh[0].H)
}

func TestEvalPowerClampsNegativeBase(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	require.NoError(t, p.Eval("l=(0-5)^2", []int{0}))
	assert.Equal(t, 0.0, p.LCh[0].L)
}

func TestEvalRejectsAssignToNonRegister(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	err := p.Eval("1=2", nil)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
}

func TestEvalCaretPointsAtOffendingPosition(t *testing.T) {
	_, err := parseExpr("l=l+")
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, 4, evalErr.Pos)
}

func TestEvalFreeScalarsSharedAcrossEntries(t *testing.T) {
	p := NewPalette()
	p.LoadVGA()
	require.NoError(t, p.Eval("x=42", []int{0}))
	assert.Equal(t, 42.0, p.X)
	v, err := (&evalContext{p: p, i: 5}).get('x')
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

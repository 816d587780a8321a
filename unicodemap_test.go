package vfa

import "testing"

func TestToUnicodeIdentityDefault(t *testing.T) {
	m := NewUnicodeMap()
	got := m.ToUnicode(65)
	if len(got) != 1 || got[0] != 65 {
		t.Fatalf("ToUnicode(65) on untouched map = %v, want [65]", got)
	}
}

func TestToIndexTracksLastAdd(t *testing.T) {
	m := NewUnicodeMap()
	m.AddI2U(3, 'A')
	m.AddI2U(7, 'A') // reassigns 'A' to index 7
	if idx := m.ToIndex('A'); idx != 7 {
		t.Fatalf("ToIndex('A') = %d, want 7", idx)
	}
	if idx := m.ToIndex('Z'); idx != -1 {
		t.Fatalf("ToIndex('Z') = %d, want -1", idx)
	}
}

func TestSwapIdxTwiceIsNoop(t *testing.T) {
	m := NewUnicodeMap()
	m.AddI2U(1, 'A')
	m.AddI2U(2, 'B')
	m.SwapIdx(1, 2)
	m.SwapIdx(1, 2)
	if idx := m.ToIndex('A'); idx != 1 {
		t.Errorf("after double swap, ToIndex('A') = %d, want 1", idx)
	}
	if idx := m.ToIndex('B'); idx != 2 {
		t.Errorf("after double swap, ToIndex('B') = %d, want 2", idx)
	}
}

func TestSwapIdxExchangesBothDirections(t *testing.T) {
	m := NewUnicodeMap()
	m.AddI2U(1, 'A')
	m.AddI2U(2, 'B')
	m.SwapIdx(1, 2)
	if idx := m.ToIndex('A'); idx != 2 {
		t.Errorf("ToIndex('A') = %d, want 2", idx)
	}
	if idx := m.ToIndex('B'); idx != 1 {
		t.Errorf("ToIndex('B') = %d, want 1", idx)
	}
}

package geom

import "testing"

func TestEdgeTrivialDir(t *testing.T) {
	tests := []struct {
		name string
		e    Edge
		want int
	}{
		{"down", Edge{Vertex{0, 0}, Vertex{1, 0}}, Dir0},
		{"down-right", Edge{Vertex{0, 0}, Vertex{1, 1}}, Dir45},
		{"right", Edge{Vertex{0, 0}, Vertex{0, 1}}, Dir90},
		{"up-right", Edge{Vertex{1, 0}, Vertex{0, 1}}, Dir135},
		{"up", Edge{Vertex{1, 0}, Vertex{0, 0}}, Dir180},
		{"up-left", Edge{Vertex{1, 1}, Vertex{0, 0}}, Dir225},
		{"left", Edge{Vertex{0, 1}, Vertex{0, 0}}, Dir270},
		{"down-left", Edge{Vertex{0, 1}, Vertex{1, 0}}, Dir315},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.e.TrivialDir(); got != tc.want {
				t.Errorf("TrivialDir() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEdgeReversed(t *testing.T) {
	e := Edge{Vertex{1, 2}, Vertex{3, 4}}
	r := e.Reversed()
	if r.Start != e.End || r.End != e.Start {
		t.Fatalf("Reversed() = %+v, want start/end swapped", r)
	}
	if r.Reversed() != e {
		t.Fatalf("Reversed() is not its own inverse")
	}
}

func TestVertexLess(t *testing.T) {
	if !(Vertex{0, 5}).Less(Vertex{1, 0}) {
		t.Error("vertex with smaller y must sort first regardless of x")
	}
	if !(Vertex{2, 1}).Less(Vertex{2, 2}) {
		t.Error("equal y must fall back to x comparison")
	}
	if (Vertex{2, 2}).Less(Vertex{2, 2}) {
		t.Error("a vertex must not be Less than itself")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if !r.Contains(2, 3) {
		t.Error("origin corner should be contained")
	}
	if !r.Contains(5, 7) {
		t.Error("far corner should be contained")
	}
	if r.Contains(6, 7) || r.Contains(5, 8) {
		t.Error("one past the far corner must not be contained")
	}
	if r.Contains(1, 3) || r.Contains(2, 2) {
		t.Error("one before the origin corner must not be contained")
	}
}

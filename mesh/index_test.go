package mesh

import "testing"

func TestRealFourierIndexRoundTrip(t *testing.T) {
	g, err := NewLocal(3, 4, 1, 2)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	for c0 := -g.GL; c0 < g.localNx+g.GR; c0++ {
		for c1 := 0; c1 < g.M; c1++ {
			for c2 := 0; c2 < g.M; c2++ {
				coord := []int{c0, c1, c2}
				idx, err := g.RealIndex(coord)
				if err != nil {
					t.Fatalf("RealIndex(%v): %v", coord, err)
				}
				got := g.CoordFromReal(idx)
				for k := range coord {
					if got[k] != coord[k] {
						t.Fatalf("CoordFromReal(RealIndex(%v)) = %v", coord, got)
					}
				}
			}
		}
	}

	for c0 := 0; c0 < g.localNx; c0++ {
		for c1 := 0; c1 < g.M; c1++ {
			for c2 := 0; c2 < g.M/2+1; c2++ {
				coord := []int{c0, c1, c2}
				idx, err := g.FourierIndex(coord)
				if err != nil {
					t.Fatalf("FourierIndex(%v): %v", coord, err)
				}
				got := g.CoordFromFourier(idx)
				for k := range coord {
					if got[k] != coord[k] {
						t.Fatalf("CoordFromFourier(FourierIndex(%v)) = %v", coord, got)
					}
				}
			}
		}
	}
}

func TestRealIndexSkipsPadding(t *testing.T) {
	g, err := NewLocal(2, 4, 0, 0)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	// Last real axis has stride 2*(M/2+1) = 6, but only indices 0..3 are
	// active; 4 and 5 are padding and must never equal an index RealIndex
	// produces for a valid coordinate.
	seen := map[int]bool{}
	for c0 := 0; c0 < g.M; c0++ {
		for c1 := 0; c1 < g.M; c1++ {
			idx, err := g.RealIndex([]int{c0, c1})
			if err != nil {
				t.Fatalf("RealIndex: %v", err)
			}
			if idx%6 >= 4 {
				t.Fatalf("RealIndex(%d,%d) = %d lands in padding lane", c0, c1, idx)
			}
			seen[idx] = true
		}
	}
	if len(seen) != g.M*g.M {
		t.Fatalf("expected %d distinct active indices, got %d", g.M*g.M, len(seen))
	}
}

func TestStrictOutOfBounds(t *testing.T) {
	g, err := NewLocal(2, 4, 1, 1)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	g.Strict = true
	if _, err := g.RealIndex([]int{-2, 0}); err == nil {
		t.Fatalf("expected OutOfBounds for axis-0 coordinate below -GL")
	}
	if _, err := g.FourierIndex([]int{0, g.M/2 + 1}); err == nil {
		t.Fatalf("expected OutOfBounds for last-axis Fourier coordinate == M/2+1")
	}
}

func TestAngularWave(t *testing.T) {
	m := 8
	cases := map[int]int{0: 0, 1: 1, 4: 4, 5: -3, 7: -1}
	for c, want := range cases {
		got := angularWave(c, m)
		wantRad := 2 * 3.141592653589793 * float64(want)
		if got != wantRad {
			t.Errorf("angularWave(%d, %d) = %v, want %v", c, m, got, wantRad)
		}
	}
}

func TestRealRangeCount(t *testing.T) {
	g, err := NewLocal(3, 4, 1, 2)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	rows := (g.GL + g.localNx + g.GR) * g.M // N-2 = 1 middle axis of length M
	want := rows * g.M
	it := g.RealRange()
	count := 0
	for it.Next() {
		count++
	}
	if count != want {
		t.Errorf("RealRange emitted %d indices, want %d", count, want)
	}
}

func TestFourierRangeCount(t *testing.T) {
	g, err := NewLocal(3, 8, 1, 1)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	it := g.FourierRange()
	count := 0
	for it.Next() {
		count++
	}
	if count != g.OwnedComplexCells() {
		t.Errorf("FourierRange emitted %d indices, want %d", count, g.OwnedComplexCells())
	}
}

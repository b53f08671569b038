package mesh

import (
	"sync"
	"testing"
)

// netComm is a P-rank in-process ring transport used only by this test: it
// wires each rank's SendRecvSlab through a pair of buffered channels per
// (src,dst) direction, so two (or more) goroutines running Exchange()
// concurrently genuinely synchronize the way a real MPI ring would.
type netComm struct {
	rank, size int
	chans      [][]chan []complex128
}

func newNet(p int) []*netComm {
	chans := make([][]chan []complex128, p)
	for i := range chans {
		chans[i] = make([]chan []complex128, p)
		for j := range chans[i] {
			chans[i][j] = make(chan []complex128, 4)
		}
	}
	comms := make([]*netComm, p)
	for r := 0; r < p; r++ {
		comms[r] = &netComm{rank: r, size: p, chans: chans}
	}
	return comms
}

func (c *netComm) Rank() int { return c.rank }
func (c *netComm) Size() int { return c.size }

func (c *netComm) SendRecvSlab(dst, src int, out, in []complex128) error {
	buf := make([]complex128, len(out))
	copy(buf, out)
	c.chans[c.rank][dst] <- buf
	recv := <-c.chans[src][c.rank]
	copy(in, recv)
	return nil
}

func (c *netComm) Bcast(root int, buf []byte) error { return nil }
func (c *netComm) Barrier() error                   { return nil }

// TestScenarioS2 reproduces spec scenario S2: N=2, M=8, P=2, gL=gR=1. After
// Exchange, each rank's left-ghost must equal its left neighbor's rightmost
// owned slab, and its right-ghost must equal its right neighbor's leftmost
// owned slab.
func TestScenarioS2(t *testing.T) {
	const p = 2
	comms := newNet(p)
	meshes := make([]*Mesh, p)
	for r := 0; r < p; r++ {
		g, err := New(2, 8, 1, 1, comms[r])
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for c0 := 0; c0 < g.localNx; c0++ {
			global := c0 + g.localXStart
			for c1 := 0; c1 < g.M; c1++ {
				if err := g.SetReal([]int{c0, c1}, float64(global)); err != nil {
					t.Fatalf("SetReal: %v", err)
				}
			}
		}
		meshes[r] = g
	}

	var wg sync.WaitGroup
	errs := make([]error, p)
	for r := 0; r < p; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			errs[r] = meshes[r].Exchange()
		}(r)
	}
	wg.Wait()
	for r, err := range errs {
		if err != nil {
			t.Fatalf("rank %d Exchange: %v", r, err)
		}
	}

	for r := 0; r < p; r++ {
		g := meshes[r]
		left, right := (r-1+p)%p, (r+1)%p
		leftM, rightM := meshes[left], meshes[right]

		for c1 := 0; c1 < g.M; c1++ {
			gotLeft, err := g.GetReal([]int{-1, c1})
			if err != nil {
				t.Fatalf("GetReal left-ghost: %v", err)
			}
			wantLeft, err := leftM.GetReal([]int{leftM.localNx - 1, c1})
			if err != nil {
				t.Fatalf("GetReal owned: %v", err)
			}
			if gotLeft != wantLeft {
				t.Errorf("rank %d left-ghost[%d] = %v, want %v (left neighbor's rightmost owned slab)", r, c1, gotLeft, wantLeft)
			}

			gotRight, err := g.GetReal([]int{g.localNx, c1})
			if err != nil {
				t.Fatalf("GetReal right-ghost: %v", err)
			}
			wantRight, err := rightM.GetReal([]int{0, c1})
			if err != nil {
				t.Fatalf("GetReal owned: %v", err)
			}
			if gotRight != wantRight {
				t.Errorf("rank %d right-ghost[%d] = %v, want %v (right neighbor's leftmost owned slab)", r, c1, gotRight, wantRight)
			}
		}
	}
}

// TestExchangeSingleProcessWraparound exercises the P=1 periodic-boundary
// case: the left-ghost must wrap to the mesh's own rightmost owned slab and
// the right-ghost to its own leftmost owned slab.
func TestExchangeSingleProcessWraparound(t *testing.T) {
	g, err := NewLocal(2, 8, 2, 2)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	for c0 := 0; c0 < g.localNx; c0++ {
		for c1 := 0; c1 < g.M; c1++ {
			if err := g.SetReal([]int{c0, c1}, float64(c0*100+c1)); err != nil {
				t.Fatalf("SetReal: %v", err)
			}
		}
	}
	if err := g.Exchange(); err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	for i := 0; i < g.GL; i++ {
		for c1 := 0; c1 < g.M; c1++ {
			got, _ := g.GetReal([]int{-g.GL + i, c1})
			want, _ := g.GetReal([]int{g.localNx - g.GL + i, c1})
			if got != want {
				t.Errorf("left-ghost[%d][%d] = %v, want wraparound %v", i, c1, got, want)
			}
		}
	}
	for i := 0; i < g.GR; i++ {
		for c1 := 0; c1 < g.M; c1++ {
			got, _ := g.GetReal([]int{g.localNx + i, c1})
			want, _ := g.GetReal([]int{i, c1})
			if got != want {
				t.Errorf("right-ghost[%d][%d] = %v, want wraparound %v", i, c1, got, want)
			}
		}
	}
}

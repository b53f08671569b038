package mesh

import (
	"fmt"

	"github.com/phil-mansfield/slabgrid/comm"
)

// ReduceGhosts folds each ghost slab back into the owned slab it overflowed
// from, undoing the -1 pre-fill bias that scatter's deposit loop leaves
// behind: every ghost cell already carries a -1 from the pre-fill plus
// whatever a neighboring process deposited into it, so adding (ghost+1) into
// the matching owned slab contributes exactly the neighbor's spillover,
// without re-adding the owned slab's own -1.
//
// Mirrors Exchange's structure with send/receive reversed: instead of
// copying an owned slab outward into a ghost region, a ghost slab is sent
// outward and the reply from the opposite neighbor is added into an owned
// slab. For P=1 this degenerates, as in Exchange, to folding each ghost slab
// into its own wrapped owned slab.
func (g *Mesh) ReduceGhosts() error {
	left, right := comm.Ring(g.rank, g.size)
	bias := complex(1, 1)

	nR := g.GR
	if g.localNx < nR {
		nR = g.localNx
	}
	for i := 0; i < nR; i++ {
		out := g.rightGhostSlabComplex(i)
		in := make([]complex128, g.slabComplexCells)
		if err := g.comm.SendRecvSlab(right, left, out, in); err != nil {
			return fmt.Errorf("mesh: ghost reduction (right): %w", err)
		}
		owned := g.slabComplex(i)
		for j := range owned {
			owned[j] += in[j] + bias
		}
	}

	nL := g.GL
	if g.localNx < nL {
		nL = g.localNx
	}
	for i := 0; i < nL; i++ {
		out := g.leftGhostSlabComplex(i)
		in := make([]complex128, g.slabComplexCells)
		if err := g.comm.SendRecvSlab(left, right, out, in); err != nil {
			return fmt.Errorf("mesh: ghost reduction (left): %w", err)
		}
		owned := g.slabComplex(g.localNx - nL + i)
		for j := range owned {
			owned[j] += in[j] + bias
		}
	}

	return nil
}

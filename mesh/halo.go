package mesh

import (
	"fmt"

	"github.com/phil-mansfield/slabgrid/comm"
)

// Exchange performs the halo exchange described by spec component C: the
// rightmost min(GR, localNx) owned slabs are copied into the left-ghost
// region of the right neighbor, and the leftmost min(GL, localNx) owned
// slabs are copied into the right-ghost region of the left neighbor. All
// sends/receives for one direction complete before the other direction
// begins; within a direction, slab i completes before slab i+1 is issued.
//
// The same code path runs whether Comm is a LocalComm or a real ring: for
// P=1, left and right both equal rank, so each SendRecvSlab degenerates to
// the wrap-around memcpy the single-process case requires.
func (g *Mesh) Exchange() error {
	left, right := comm.Ring(g.rank, g.size)

	nR := g.GR
	if g.localNx < nR {
		nR = g.localNx
	}
	for i := 0; i < nR; i++ {
		srcSlab := g.localNx - nR + i
		out := g.slabComplex(srcSlab)
		in := make([]complex128, g.slabComplexCells)
		if err := g.comm.SendRecvSlab(right, left, out, in); err != nil {
			return fmt.Errorf("mesh: halo exchange (right): %w", err)
		}
		copy(g.leftGhostSlabComplex(i), in)
	}

	nL := g.GL
	if g.localNx < nL {
		nL = g.localNx
	}
	for i := 0; i < nL; i++ {
		srcSlab := i
		out := g.slabComplex(srcSlab)
		in := make([]complex128, g.slabComplexCells)
		if err := g.comm.SendRecvSlab(left, right, out, in); err != nil {
			return fmt.Errorf("mesh: halo exchange (left): %w", err)
		}
		copy(g.rightGhostSlabComplex(i), in)
	}

	return nil
}

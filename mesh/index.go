package mesh

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/slabgrid/errs"
)

// RealIndex computes the flat index into the real-space float64 view
// (realFloats) for coord, per spec §4.A. coord[0] may address ghost cells:
// it must lie in [-GL, localNx+GR). coord[1:] must lie in [0, M).
func (g *Mesh) RealIndex(coord []int) (int, error) {
	if len(coord) != g.N {
		return 0, fmt.Errorf("%w: expected %d coordinates, got %d", errs.OutOfBounds, g.N, len(coord))
	}
	if g.Strict {
		if coord[0] < -g.GL || coord[0] >= g.localNx+g.GR {
			return 0, fmt.Errorf("%w: axis 0 coordinate %d outside [%d, %d)", errs.OutOfBounds, coord[0], -g.GL, g.localNx+g.GR)
		}
		for k := 1; k < g.N; k++ {
			if coord[k] < 0 || coord[k] >= g.M {
				return 0, fmt.Errorf("%w: axis %d coordinate %d outside [0, %d)", errs.OutOfBounds, k, coord[k], g.M)
			}
		}
	}
	idx := coord[0] + g.GL
	for k := 1; k <= g.N-2; k++ {
		idx = idx*g.M + coord[k]
	}
	idx = idx*(2*(g.M/2+1)) + coord[g.N-1]
	return idx, nil
}

// FourierIndex computes the flat complex-cell index into the backing data
// slice for coord, per spec §4.A. coord[0] must lie in [0, localNx) (ghosts
// are real-space only); coord[1:N-1] in [0, M); coord[N-1] in [0, M/2+1).
func (g *Mesh) FourierIndex(coord []int) (int, error) {
	if len(coord) != g.N {
		return 0, fmt.Errorf("%w: expected %d coordinates, got %d", errs.OutOfBounds, g.N, len(coord))
	}
	if g.Strict {
		if coord[0] < 0 || coord[0] >= g.localNx {
			return 0, fmt.Errorf("%w: axis 0 coordinate %d outside [0, %d)", errs.OutOfBounds, coord[0], g.localNx)
		}
		for k := 1; k < g.N-1; k++ {
			if coord[k] < 0 || coord[k] >= g.M {
				return 0, fmt.Errorf("%w: axis %d coordinate %d outside [0, %d)", errs.OutOfBounds, k, coord[k], g.M)
			}
		}
		if coord[g.N-1] < 0 || coord[g.N-1] >= g.M/2+1 {
			return 0, fmt.Errorf("%w: axis %d coordinate %d outside [0, %d)", errs.OutOfBounds, g.N-1, coord[g.N-1], g.M/2+1)
		}
	}
	idx := coord[0] + g.GL
	for k := 1; k <= g.N-2; k++ {
		idx = idx*g.M + coord[k]
	}
	idx = idx*(g.M/2+1) + coord[g.N-1]
	return idx, nil
}

// CoordFromReal inverts RealIndex.
func (g *Mesh) CoordFromReal(idx int) []int {
	coord := make([]int, g.N)
	lastStride := 2 * (g.M/2 + 1)
	coord[g.N-1] = idx % lastStride
	rest := idx / lastStride
	for k := g.N - 2; k >= 1; k-- {
		coord[k] = rest % g.M
		rest /= g.M
	}
	coord[0] = rest - g.GL
	return coord
}

// CoordFromFourier inverts FourierIndex.
func (g *Mesh) CoordFromFourier(idx int) []int {
	coord := make([]int, g.N)
	lastStride := g.M/2 + 1
	coord[g.N-1] = idx % lastStride
	rest := idx / lastStride
	for k := g.N - 2; k >= 1; k-- {
		coord[k] = rest % g.M
		rest /= g.M
	}
	coord[0] = rest - g.GL
	return coord
}

// Wavevector maps a Fourier coordinate (coord[0] local, i.e. in
// [0, localNx)) to the angular wave-vector 2*pi*(c <= M/2 ? c : c-M) per
// axis, with axis 0 additionally offset by localXStart before the mapping.
func (g *Mesh) Wavevector(coord []int) []float64 {
	k := make([]float64, g.N)
	k[0] = angularWave(coord[0]+g.localXStart, g.M)
	for i := 1; i < g.N; i++ {
		k[i] = angularWave(coord[i], g.M)
	}
	return k
}

func angularWave(c, m int) float64 {
	if c > m/2 {
		c -= m
	}
	return 2 * math.Pi * float64(c)
}

// RealRangeIter is the lazy sequence of flat real-view indices addressing
// exactly the active cells of the local grid (owned and ghost slabs), per
// spec §4.B. It skips the padding lanes at the end of every last-axis row
// (two for even M, one for odd M), so each row starts 2*(M/2+1) floats
// after the previous one, as in RealIndex. Use as:
//
//	it := g.RealRange()
//	for it.Next() {
//	    v := realFloats[it.Index()]
//	}
type RealRangeIter struct {
	active, buffer, total, m int
}

// RealRange returns a RealRangeIter over every active cell of the local
// allocation (left ghosts, owned slabs, right ghosts).
func (g *Mesh) RealRange() *RealRangeIter {
	rows := (g.GL + g.localNx + g.GR) * ipow(g.M, g.N-2)
	return &RealRangeIter{active: -1, buffer: -1, total: rows * g.M, m: g.M}
}

// Next advances the iterator and reports whether a value is available.
func (it *RealRangeIter) Next() bool {
	it.active++
	if it.active >= it.total {
		return false
	}
	switch {
	case it.active == 0:
		it.buffer = 0
	case it.active%it.m == 0:
		it.buffer += 1 + 2*(it.m/2+1) - it.m
	default:
		it.buffer++
	}
	return true
}

// Index returns the current flat real-view index.
func (it *RealRangeIter) Index() int { return it.buffer }

// FourierRangeIter is the lazy, contiguous sequence of flat complex-cell
// indices addressing exactly the owned Fourier cells of the local grid.
type FourierRangeIter struct {
	i, n, base int
}

// FourierRange returns a FourierRangeIter over the owned Fourier cells.
func (g *Mesh) FourierRange() *FourierRangeIter {
	return &FourierRangeIter{i: -1, n: g.ownedComplexCells, base: g.GL * g.slabComplexCells}
}

func (it *FourierRangeIter) Next() bool {
	it.i++
	return it.i < it.n
}

func (it *FourierRangeIter) Index() int { return it.base + it.i }

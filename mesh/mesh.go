/*Package mesh implements the distributed in-place real/complex grid
(spec components A and B): index algebra, storage allocation, real/Fourier
views tagged by an in_real_space flag, halo exchange (component C), and
binary persistence (§6).

The same backing []complex128 slice is reinterpreted, never copied, as the
padded real view (via realFloats, see iobytes.go) or addressed directly as
the Hermitian-half Fourier view. This mirrors guppy's lib.go unsafe
reflect.SliceHeader trick for bulk slice reinterpretation, generalized from a
particle-array cast to a real/complex grid-layout cast.*/
package mesh

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/slabgrid/comm"
	"github.com/phil-mansfield/slabgrid/errs"
)

// Mesh is the distributed in-place real/complex grid described by spec
// component B. Zero value is not usable; construct with New.
type Mesh struct {
	N          int
	M          int
	GL, GR     int
	Strict     bool // enables OutOfBounds/WrongSpace checks at a small runtime cost

	rank, size            int
	localNx, localXStart  int
	slabComplexCells      int
	slabRealCells         int
	ownedComplexCells     int
	ownedRealCells        int
	allocComplexCells     int

	data        []complex128
	inRealSpace bool

	comm comm.Communicator
}

// New allocates a Mesh of dimension n, side m, with ghost widths (gl, gr) on
// the first axis, decomposed across c's ring. Storage is zeroed and the mesh
// starts in real space, per spec op `new(M, gL, gR)`.
func New(n, m, gl, gr int, c comm.Communicator) (*Mesh, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: dimension %d < 2", errs.UnsupportedShape, n)
	}
	if gl < 0 || gr < 0 {
		return nil, fmt.Errorf("%w: negative ghost width (%d, %d)", errs.UnsupportedShape, gl, gr)
	}
	size := c.Size()
	if size <= 0 || m%size != 0 {
		return nil, fmt.Errorf("%w: M=%d does not divide evenly across %d processes", errs.UnsupportedShape, m, size)
	}

	localNx := m / size
	rank := c.Rank()
	localXStart := rank * localNx

	slabComplex := (m/2 + 1) * ipow(m, n-2)
	slabReal := 2 * slabComplex
	ownedComplex := localNx * slabComplex
	ownedReal := localNx * slabReal
	allocComplex := ownedComplex + (gl+gr)*slabComplex

	return &Mesh{
		N: n, M: m, GL: gl, GR: gr,
		rank: rank, size: size,
		localNx: localNx, localXStart: localXStart,
		slabComplexCells: slabComplex, slabRealCells: slabReal,
		ownedComplexCells: ownedComplex, ownedRealCells: ownedReal,
		allocComplexCells: allocComplex,
		data:              make([]complex128, allocComplex),
		inRealSpace:       true,
		comm:              c,
	}, nil
}

// NewLocal is a convenience constructor for a single-process mesh, which is
// what most package tests in this module build.
func NewLocal(n, m, gl, gr int) (*Mesh, error) {
	return New(n, m, gl, gr, comm.NewLocal())
}

func ipow(base, exp int) int {
	if exp <= 0 {
		return 1
	}
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

// Rank and Size are the process-global state set at construction time.
func (g *Mesh) Rank() int { return g.rank }
func (g *Mesh) Size() int { return g.size }

func (g *Mesh) LocalNx() int              { return g.localNx }
func (g *Mesh) LocalXStart() int          { return g.localXStart }
func (g *Mesh) SlabComplexCells() int     { return g.slabComplexCells }
func (g *Mesh) SlabRealCells() int        { return g.slabRealCells }
func (g *Mesh) OwnedComplexCells() int    { return g.ownedComplexCells }
func (g *Mesh) OwnedRealCells() int       { return g.ownedRealCells }
func (g *Mesh) AllocComplexCells() int    { return g.allocComplexCells }
func (g *Mesh) AllocRealCells() int       { return 2 * g.allocComplexCells }

// Status reports whether the backing storage currently holds a real-space
// (true) or Fourier-space (false) field.
func (g *Mesh) Status() bool { return g.inRealSpace }

// SetStatus declares, without transforming anything, that the bytes should
// now be read the other way. Per spec §9 this is the sole interpretation
// switch; misuse corrupts results rather than raising an error.
func (g *Mesh) SetStatus(real bool) { g.inRealSpace = real }

// FillRealConst writes v to every real cell, including the two padding lanes
// per row, matching spec's "cheap" constant fill.
func (g *Mesh) FillRealConst(v float64) error {
	if g.Strict && !g.inRealSpace {
		return fmt.Errorf("%w: FillRealConst on a mesh in fourier space", errs.WrongSpace)
	}
	rv := g.realFloats()
	for i := range rv {
		rv[i] = v
	}
	return nil
}

// FillFourierConst writes v to every Fourier cell (owned + ghost storage,
// since ghosts alias the same bytes).
func (g *Mesh) FillFourierConst(v complex128) error {
	if g.Strict && g.inRealSpace {
		return fmt.Errorf("%w: FillFourierConst on a mesh in real space", errs.WrongSpace)
	}
	for i := range g.data {
		g.data[i] = v
	}
	return nil
}

// FillRealFunc evaluates f at every owned active cell's global coordinate and
// stores the result, then runs a halo Exchange so the ghost regions reflect
// the new values, per spec's "applies f over the active range, then triggers
// halo exchange for the real case."
func (g *Mesh) FillRealFunc(f func(globalCoord []int) float64) error {
	if g.Strict && !g.inRealSpace {
		return fmt.Errorf("%w: FillRealFunc on a mesh in fourier space", errs.WrongSpace)
	}
	var outerErr error
	g.eachOwnedCoord(func(coord []int) {
		idx, err := g.RealIndex(coord)
		if err != nil {
			outerErr = err
			return
		}
		global := make([]int, g.N)
		copy(global, coord)
		global[0] += g.localXStart
		g.realFloats()[idx] = f(global)
	})
	if outerErr != nil {
		return outerErr
	}
	return g.Exchange()
}

// GetReal loads the real-space value at coord, which may reference ghost
// cells (coord[0] in [-GL, localNx+GR)).
func (g *Mesh) GetReal(coord []int) (float64, error) {
	idx, err := g.RealIndex(coord)
	if err != nil {
		return 0, err
	}
	return g.realFloats()[idx], nil
}

// SetReal stores v at coord in real space.
func (g *Mesh) SetReal(coord []int, v float64) error {
	idx, err := g.RealIndex(coord)
	if err != nil {
		return err
	}
	g.realFloats()[idx] = v
	return nil
}

// AddReal adds v to the cell at coord in real space. This is the primitive
// scatter (component E) and ghost reduction build on.
func (g *Mesh) AddReal(coord []int, v float64) error {
	idx, err := g.RealIndex(coord)
	if err != nil {
		return err
	}
	g.realFloats()[idx] += v
	return nil
}

// GetFourier loads the Fourier-space value at coord (owned cells only).
func (g *Mesh) GetFourier(coord []int) (complex128, error) {
	idx, err := g.FourierIndex(coord)
	if err != nil {
		return 0, err
	}
	return g.data[idx], nil
}

// SetFourier stores v at coord in Fourier space.
func (g *Mesh) SetFourier(coord []int, v complex128) error {
	idx, err := g.FourierIndex(coord)
	if err != nil {
		return err
	}
	g.data[idx] = v
	return nil
}

// NanCheck scans the entire allocation (owned, ghost, and padding bytes) and
// reports whether any element is NaN.
func (g *Mesh) NanCheck() bool {
	for _, v := range g.data {
		if math.IsNaN(real(v)) || math.IsNaN(imag(v)) {
			return true
		}
	}
	return false
}

// RealGrid returns the owned region of the real view, skipping left-ghost
// bytes, per spec invariant 4.
func (g *Mesh) RealGrid() []float64 {
	rv := g.realFloats()
	lo := g.GL * g.slabRealCells
	hi := lo + g.localNx*g.slabRealCells
	return rv[lo:hi]
}

// RealGridLeft and RealGridRight return the bases of the left/right ghost
// regions, per spec invariant 4.
func (g *Mesh) RealGridLeft() []float64 {
	return g.realFloats()[:g.GL*g.slabRealCells]
}

func (g *Mesh) RealGridRight() []float64 {
	rv := g.realFloats()
	lo := (g.GL + g.localNx) * g.slabRealCells
	return rv[lo:]
}

// eachOwnedCoord enumerates every coordinate tuple with coord[0] in
// [0, localNx) and coord[1..N-1] in [0, M), in row-major order, calling fn
// with a coord slice it owns and reuses (fn must not retain it).
func (g *Mesh) eachOwnedCoord(fn func(coord []int)) {
	coord := make([]int, g.N)
	total := g.localNx
	for k := 1; k < g.N; k++ {
		total *= g.M
	}
	for t := 0; t < total; t++ {
		rem := t
		for k := g.N - 1; k >= 1; k-- {
			coord[k] = rem % g.M
			rem /= g.M
		}
		coord[0] = rem
		fn(coord)
	}
}

// slabComplex returns the complex-cell slice of owned slab i (i in
// [0, localNx)).
func (g *Mesh) slabComplex(i int) []complex128 {
	lo := (g.GL + i) * g.slabComplexCells
	return g.data[lo : lo+g.slabComplexCells]
}

// leftGhostSlabComplex and rightGhostSlabComplex address ghost slab i (i in
// [0, GL) and [0, GR) respectively).
func (g *Mesh) leftGhostSlabComplex(i int) []complex128 {
	lo := i * g.slabComplexCells
	return g.data[lo : lo+g.slabComplexCells]
}

func (g *Mesh) rightGhostSlabComplex(i int) []complex128 {
	lo := (g.GL + g.localNx + i) * g.slabComplexCells
	return g.data[lo : lo+g.slabComplexCells]
}

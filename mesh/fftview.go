package mesh

// The accessors in this file expose the minimal raw views and layout
// constants the fft package's driver needs to run an FFT engine against
// this mesh's owned region directly, without leaking the unsafe aliasing
// trick in iobytes.go across the package boundary.

// RealData returns the whole allocation's real view (owned, ghost, and
// padding), aliasing the same bytes as FourierData.
func (g *Mesh) RealData() []float64 { return g.realFloats() }

// FourierData returns the whole allocation's complex view, aliasing the
// same bytes as RealData.
func (g *Mesh) FourierData() []complex128 { return g.data }

// OwnedFourierBase is the flat complex-cell index of the first owned
// Fourier cell (coord all zero).
func (g *Mesh) OwnedFourierBase() int { return g.GL * g.slabComplexCells }

// ComplexLastAxisLen is the length of the Hermitian-packed last axis,
// M/2+1.
func (g *Mesh) ComplexLastAxisLen() int { return g.M/2 + 1 }

// OwnedComplexDims returns the owned region's shape in the complex view:
// [localNx, M, M, ..., M, M/2+1] (N entries).
func (g *Mesh) OwnedComplexDims() []int {
	dims := make([]int, g.N)
	dims[0] = g.localNx
	for k := 1; k <= g.N-2; k++ {
		dims[k] = g.M
	}
	dims[g.N-1] = g.M/2 + 1
	return dims
}

package fft

import (
	"fmt"

	"github.com/phil-mansfield/slabgrid/errs"
	"github.com/phil-mansfield/slabgrid/mesh"
)

// strides returns the row-major strides (in complex-cell units) for dims.
func strides(dims []int) []int {
	s := make([]int, len(dims))
	s[len(dims)-1] = 1
	for k := len(dims) - 2; k >= 0; k-- {
		s[k] = s[k+1] * dims[k+1]
	}
	return s
}

// lastAxisPass runs the real<->Hermitian-half transform over every "row"
// along the last axis of the owned region (spec §4.D's in-place transform,
// restricted here to the last axis half of the N-D decomposition).
func lastAxisPass(g *mesh.Mesh, e Engine, forward bool, m int) {
	dims := g.OwnedComplexDims()
	n := len(dims)
	lastLen := dims[n-1]
	rows := 1
	for k := 0; k < n-1; k++ {
		rows *= dims[k]
	}
	base := g.OwnedFourierBase()
	fourierData := g.FourierData()
	realData := g.RealData()

	for r := 0; r < rows; r++ {
		off := base + r*lastLen
		if forward {
			row := make([]float64, m)
			copy(row, realData[2*off:2*off+m])
			coeff := e.RealForward(row)
			copy(fourierData[off:off+lastLen], coeff)
		} else {
			row := make([]complex128, lastLen)
			copy(row, fourierData[off:off+lastLen])
			seq := e.RealInverse(row, m)
			copy(realData[2*off:2*off+m], seq)
		}
	}
}

// axisPass runs a complex<->complex transform along axis over the owned
// complex region.
func axisPass(g *mesh.Mesh, e Engine, axis int, inverse bool) {
	dims := g.OwnedComplexDims()
	s := strides(dims)
	n := dims[axis]
	stride := s[axis]
	base := g.OwnedFourierBase()
	data := g.FourierData()

	total := 1
	for _, d := range dims {
		total *= d
	}
	lines := total / n

	outerDims := make([]int, len(dims))
	copy(outerDims, dims)
	outerDims[axis] = 1

	idx := make([]int, len(dims))
	buf := make([]complex128, n)
	for line := 0; line < lines; line++ {
		rem := line
		for k := len(dims) - 1; k >= 0; k-- {
			idx[k] = rem % outerDims[k]
			rem /= outerDims[k]
		}
		off := base
		for k := 0; k < len(dims); k++ {
			off += idx[k] * s[k]
		}
		for j := 0; j < n; j++ {
			buf[j] = data[off+j*stride]
		}
		var out []complex128
		if inverse {
			out = e.ComplexInverse(buf)
		} else {
			out = e.ComplexForward(buf)
		}
		for j := 0; j < n; j++ {
			data[off+j*stride] = out[j]
		}
	}
}

// saveRightGhostHead and restoreRightGhostHead snapshot and restore the
// first ComplexLastAxisLen() real values of the right-ghost region around a
// transform, per spec §4.D steps 1 and 4 (ghost-fidelity guarantee that
// survives even though this package's own row/axis decomposition never
// actually touches ghost memory, unlike an FFTW-MPI engine would).
func saveRightGhostHead(g *mesh.Mesh) []float64 {
	n := g.ComplexLastAxisLen()
	right := g.RealGridRight()
	if len(right) < n {
		n = len(right)
	}
	saved := make([]float64, n)
	copy(saved, right[:n])
	return saved
}

func restoreRightGhostHead(g *mesh.Mesh, saved []float64) {
	copy(g.RealGridRight(), saved)
}

func ipow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

// Forward transforms g from real to Fourier space in place, per spec §4.D's
// forward sequence: save ghost bytes, transform, normalize by 1/M^N,
// restore ghost bytes, flip the space tag.
func Forward(g *mesh.Mesh, e Engine) error {
	if e == nil {
		return fmt.Errorf("%w: fft.Forward called with no engine", errs.NotConfigured)
	}
	if !g.Status() {
		return fmt.Errorf("%w: fft.Forward on a mesh already in fourier space", errs.WrongSpace)
	}

	saved := saveRightGhostHead(g)

	m := g.M
	lastAxisPass(g, e, true, m)
	for axis := g.N - 2; axis >= 1; axis-- {
		axisPass(g, e, axis, false)
	}
	axisPass(g, e, 0, false)

	norm := complex(1/float64(ipow(m, g.N)), 0)
	base := g.OwnedFourierBase()
	data := g.FourierData()
	for i := 0; i < g.OwnedComplexCells(); i++ {
		data[base+i] *= norm
	}

	restoreRightGhostHead(g, saved)
	g.SetStatus(false)
	return nil
}

// Inverse transforms g from Fourier to real space in place, mirroring
// Forward with no normalization (spec §4.D's "inverse is the mirror... no
// normalization").
func Inverse(g *mesh.Mesh, e Engine) error {
	if e == nil {
		return fmt.Errorf("%w: fft.Inverse called with no engine", errs.NotConfigured)
	}
	if g.Status() {
		return fmt.Errorf("%w: fft.Inverse on a mesh already in real space", errs.WrongSpace)
	}

	saved := saveRightGhostHead(g)

	axisPass(g, e, 0, true)
	for axis := 1; axis <= g.N-2; axis++ {
		axisPass(g, e, axis, true)
	}
	lastAxisPass(g, e, false, g.M)

	restoreRightGhostHead(g, saved)
	g.SetStatus(true)
	return nil
}

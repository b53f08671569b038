/*Package assign implements particle<->grid transfer, spec components E and
F: scatter deposits a weighted B-spline mass assignment onto the mesh, and
Gather interpolates the mesh's field back onto particle positions.

Both are transcribed directly from
original_source/Interpolation/ParticleGridInterpolation.h's
particles_to_grid/interpolate_grid_to_particle_positions: the stencil
enumeration, the per-axis stencil-origin rule, and scatter's -1 pre-fill /
+1 ghost-reduction accounting trick all follow that source exactly.*/
package assign

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/slabgrid/errs"
	"github.com/phil-mansfield/slabgrid/kernel"
	"github.com/phil-mansfield/slabgrid/mesh"
	"github.com/phil-mansfield/slabgrid/particle"
)

// Options configures a scatter or gather pass.
type Options struct {
	Order     int
	Centering kernel.Centering
	// NTotal is the global particle count used to normalize the assigned
	// density to a contrast field (M^N / NTotal). If zero, it defaults to
	// the local particle count, which is only correct for a single-process
	// run.
	NTotal int
	// MeanMass is the globally-averaged particle mass (mass/NTotal-style
	// normalization). If zero, it defaults to 1 (spec's "without
	// per-particle mass, it is 1").
	MeanMass float64
	// Debug enables the |sum(w)-1| < 1e-3 partition-of-unity assertion.
	Debug bool
}

func (o Options) nTotal(fallback int) int {
	if o.NTotal > 0 {
		return o.NTotal
	}
	return fallback
}

func (o Options) meanMass() float64 {
	if o.MeanMass > 0 {
		return o.MeanMass
	}
	return 1
}

// stencilOrigin returns the per-axis stencil-origin offset for the given
// fractional offset delta, per spec §4.E step 3. Corner centering shifts the
// stencil for odd orders only; Cell centering shifts it for even orders
// only, exactly mirroring the CELLCENTERSHIFTED branch in
// ParticleGridInterpolation.h's particles_to_grid.
func stencilOrigin(p int, centering kernel.Centering, delta float64) int {
	if p%2 == 0 {
		if centering == kernel.Corner {
			return -(p / 2) + 1
		}
		xstart := -(p / 2)
		if delta > 0.5 {
			xstart++
		}
		return xstart
	}
	if centering == kernel.Cell {
		return -(p / 2)
	}
	xstart := -(p / 2)
	if delta > 0.5 {
		xstart++
	}
	return xstart
}

// kernelDistance returns |o+0.5-delta| (cell centering) or |o-delta| (corner
// centering), the distance the kernel is evaluated at for stencil offset o.
func kernelDistance(centering kernel.Centering, o int, delta float64) float64 {
	if centering == kernel.Cell {
		return math.Abs(float64(o) + 0.5 - delta)
	}
	return math.Abs(float64(o) - delta)
}

// eachStencilOffset calls fn once per stencil cell, for every combination of
// per-axis offsets o_k in [xstart_k, xstart_k+order-1], passing fn the
// offset tuple and the accumulated kernel weight for that cell.
func eachStencilOffset(n, order int, xstart []int, delta []float64, centering kernel.Centering, fn func(offset []int, w float64)) {
	offset := make([]int, n)
	total := 1
	for i := 0; i < n; i++ {
		total *= order
	}
	for t := 0; t < total; t++ {
		rem := t
		w := 1.0
		for k := 0; k < n; k++ {
			offset[k] = xstart[k] + rem%order
			rem /= order
			d := kernelDistance(centering, offset[k], delta[k])
			w *= kernel.Weight1D(order, d)
		}
		fn(offset, w)
	}
}

// decompose scales a position into cell coordinates and fractional offsets:
// y = x*M, ix = floor(y), delta = y-ix.
func decompose(m int, x []float64, ix []int, delta []float64) {
	for k := range x {
		y := x[k] * float64(m)
		f := math.Floor(y)
		ix[k] = int(f)
		delta[k] = y - f
	}
}

// Scatter deposits particles onto g using order-p B-spline mass assignment,
// per spec §4.E. g must already be in real space with sufficient ghost
// width for order (see kernel.RequireGhostWidth); Scatter pre-fills the
// entire real buffer with -1 and folds ghost spillover back into owned
// cells via mesh.ReduceGhosts, so the result is the density contrast field
// rho/rhobar - 1, not raw density.
func Scatter(g *mesh.Mesh, particles *particle.Slice, opt Options) error {
	if particles.N != g.N {
		return fmt.Errorf("%w: particle dimension %d != mesh dimension %d", errs.ShapeMismatch, particles.N, g.N)
	}
	if err := kernel.RequireGhostWidth(opt.Order, opt.Centering, g.GL, g.GR); err != nil {
		return err
	}
	if err := particles.Validate(); err != nil {
		return err
	}

	n := g.N
	m := g.M
	order := opt.Order
	nTotal := opt.nTotal(particles.Len())
	normFac := math.Pow(float64(m), float64(n)) / float64(nTotal) / opt.meanMass()

	if err := g.FillRealConst(-1); err != nil {
		return err
	}

	ix := make([]int, n)
	delta := make([]float64, n)
	xstart := make([]int, n)
	coord := make([]int, n)

	for p := 0; p < particles.Len(); p++ {
		decompose(m, particles.Position(p), ix, delta)
		ix[0] -= g.LocalXStart()
		for k := 0; k < n; k++ {
			xstart[k] = stencilOrigin(order, opt.Centering, delta[k])
		}

		mass := particles.MassOf(p)
		weightSum := 0.0
		var depositErr error
		eachStencilOffset(n, order, xstart, delta, opt.Centering, func(offset []int, w float64) {
			if depositErr != nil {
				return
			}
			coord[0] = ix[0] + offset[0]
			for k := 1; k < n; k++ {
				c := ix[k] + offset[k]
				c %= m
				if c < 0 {
					c += m
				}
				coord[k] = c
			}
			weightSum += w
			if err := g.AddReal(coord, w*mass*normFac); err != nil {
				depositErr = fmt.Errorf("assign: scattering particle %d: %w", p, err)
			}
		})
		if depositErr != nil {
			return depositErr
		}
		if opt.Debug && math.Abs(weightSum-1) >= 1e-3 {
			return fmt.Errorf("%w: scatter weights summed to %v for particle %d, want ~1", errs.NumericAnomaly, weightSum, p)
		}
	}

	return g.ReduceGhosts()
}

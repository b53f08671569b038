package assign

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/slabgrid/errs"
	"github.com/phil-mansfield/slabgrid/mesh"
	"github.com/phil-mansfield/slabgrid/particle"
)

// Gather interpolates g's real-space field back onto particles, the mirror
// of Scatter without ghost reduction or the +/-1 bias, per spec §4.F. The
// returned slice is parallel to particles (index i is particle i's
// interpolated value).
func Gather(g *mesh.Mesh, particles *particle.Slice, opt Options) ([]float64, error) {
	if particles.N != g.N {
		return nil, fmt.Errorf("%w: particle dimension %d != mesh dimension %d", errs.ShapeMismatch, particles.N, g.N)
	}
	if err := particles.Validate(); err != nil {
		return nil, err
	}

	n := g.N
	m := g.M
	order := opt.Order

	out := make([]float64, particles.Len())
	ix := make([]int, n)
	delta := make([]float64, n)
	xstart := make([]int, n)
	coord := make([]int, n)

	for p := 0; p < particles.Len(); p++ {
		decompose(m, particles.Position(p), ix, delta)
		ix[0] -= g.LocalXStart()

		// Per spec §4.F step 1, clamp the only tolerated out-of-domain
		// case: a particle exactly on the upper local-x boundary.
		if ix[0] == g.LocalNx() {
			ix[0] = g.LocalNx() - 1
			delta[0] = 1
		}

		for k := 0; k < n; k++ {
			xstart[k] = stencilOrigin(order, opt.Centering, delta[k])
		}

		value := 0.0
		weightSum := 0.0
		var sampleErr error
		eachStencilOffset(n, order, xstart, delta, opt.Centering, func(offset []int, w float64) {
			if sampleErr != nil {
				return
			}
			coord[0] = ix[0] + offset[0]
			for k := 1; k < n; k++ {
				c := ix[k] + offset[k]
				c %= m
				if c < 0 {
					c += m
				}
				if c == m {
					c = m - 1
				}
				coord[k] = c
			}
			weightSum += w
			v, err := g.GetReal(coord)
			if err != nil {
				sampleErr = fmt.Errorf("assign: gathering particle %d: %w", p, err)
				return
			}
			value += w * v
		})
		if sampleErr != nil {
			return nil, sampleErr
		}
		if opt.Debug && math.Abs(weightSum-1) >= 1e-3 {
			return nil, fmt.Errorf("%w: gather weights summed to %v for particle %d, want ~1", errs.NumericAnomaly, weightSum, p)
		}
		out[p] = value
	}

	return out, nil
}

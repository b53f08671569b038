package assign

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/slabgrid/errs"
	"github.com/phil-mansfield/slabgrid/kernel"
	"github.com/phil-mansfield/slabgrid/mesh"
)

// Deconvolve multiplies every owned Fourier cell of g by 1/W(k), undoing the
// smoothing that an order-p B-spline scatter convolves into the field, per
// spec §4.G. g must be in Fourier space.
func Deconvolve(g *mesh.Mesh, order int) error {
	if g.Status() {
		return fmt.Errorf("%w: Deconvolve on a mesh in real space", errs.WrongSpace)
	}

	kNy := math.Pi * float64(g.M)
	it := g.FourierRange()
	for it.Next() {
		coord := g.CoordFromFourier(it.Index())
		k := g.Wavevector(coord)
		w := kernel.Window(order, k, kNy)
		if w == 0 {
			return fmt.Errorf("%w: deconvolution window vanished at a Nyquist-adjacent wavevector", errs.NumericAnomaly)
		}
		v, err := g.GetFourier(coord)
		if err != nil {
			return err
		}
		if err := g.SetFourier(coord, v*complex(1/w, 0)); err != nil {
			return err
		}
	}
	return nil
}

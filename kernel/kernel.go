/*Package kernel implements the B-spline mass-assignment kernels (spec
component E/F's shared kernel, orders 1..5), their Fourier-space window
function (component G), and the ghost-width requirement each order imposes
on a mesh.

Closed forms and ghost-width rules are grounded directly on
original_source/Interpolation/ParticleGridInterpolation.h's kernel<ORDER>
specializations and get_extra_slices_needed_by_order.*/
package kernel

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/slabgrid/errs"
)

// Centering selects whether particle positions are interpreted relative to
// cell corners (the default) or cell centers, per spec §9's
// "cell-centered layout" design note.
type Centering int

const (
	Corner Centering = iota
	Cell
)

// MinOrder and MaxOrder bound the supported B-spline orders (NGP..PQS).
const (
	MinOrder = 1
	MaxOrder = 5
)

// Names maps a density-assignment method name to its order, the way the
// source's interpolation_order_from_name does.
var Names = map[string]int{
	"NGP": 1,
	"CIC": 2,
	"TSC": 3,
	"PCS": 4,
	"PQS": 5,
}

// OrderFromName returns the B-spline order for a method name.
func OrderFromName(name string) (int, error) {
	p, ok := Names[name]
	if !ok {
		return 0, fmt.Errorf("kernel: unknown density assignment method %q", name)
	}
	return p, nil
}

// Weight1D evaluates the order-p B-spline kernel H^(p) at distance x = |d|,
// the p-fold self-convolution of the unit top-hat.
func Weight1D(order int, x float64) float64 {
	switch order {
	case 1:
		if x <= 0.5 {
			return 1.0
		}
		return 0.0
	case 2:
		if x < 1.0 {
			return 1.0 - x
		}
		return 0.0
	case 3:
		if x < 0.5 {
			return 0.75 - x*x
		} else if x < 1.5 {
			return 0.5 * (1.5 - x) * (1.5 - x)
		}
		return 0.0
	case 4:
		if x < 1.0 {
			return 2.0/3.0 + x*x*(-1.0+0.5*x)
		} else if x < 2.0 {
			return (2 - x) * (2 - x) * (2 - x) / 6.0
		}
		return 0.0
	case 5:
		if x < 0.5 {
			return 115.0/192.0 + 0.25*x*x*(x*x-2.5)
		} else if x < 1.5 {
			return (55 + 4*x*(5-2*x*(15+2*(-5+x)*x))) / 96.0
		} else if x < 2.5 {
			return (5-2.0*x)*(5-2.0*x)*(5-2.0*x)*(5-2.0*x) / 384.0
		}
		return 0.0
	default:
		return math.NaN()
	}
}

// GhostWidth returns the (gL, gR) ghost-width requirement order p imposes on
// a mesh under the given centering convention, per spec §4.E's ghost
// requirement and design note §9's cell-centered mode.
func GhostWidth(order int, c Centering) (gl, gr int, err error) {
	if order < MinOrder || order > MaxOrder {
		return 0, 0, fmt.Errorf("%w: order %d outside [%d, %d]", errs.UnsupportedShape, order, MinOrder, MaxOrder)
	}
	if c == Cell {
		return order / 2, order / 2, nil
	}
	return order / 2, order/2 + order%2, nil
}

// RequireGhostWidth checks that a mesh's (gl, gr) satisfy GhostWidth(order, c)
// and returns errs.GhostTooThin if not.
func RequireGhostWidth(order int, c Centering, gl, gr int) error {
	wantL, wantR, err := GhostWidth(order, c)
	if err != nil {
		return err
	}
	if gl < wantL || gr < wantR {
		return fmt.Errorf("%w: order %d needs ghost (%d, %d), mesh has (%d, %d)", errs.GhostTooThin, order, wantL, wantR, gl, gr)
	}
	return nil
}

// Window evaluates the analytic Fourier-space transfer function of the
// order-p B-spline kernel at wave-vector k (length N, angular frequencies as
// returned by mesh.Wavevector), W(k) = prod_d sinc(pi/2 * k_d/kNy)^p, with
// sinc(0) = 1 and kNy = pi*M.
func Window(order int, k []float64, kNy float64) float64 {
	w := 1.0
	for _, kd := range k {
		arg := math.Pi / 2 * (kd / kNy)
		var s float64
		if arg == 0 {
			s = 1.0
		} else {
			s = math.Sin(arg) / arg
		}
		w *= s
	}
	res := 1.0
	for i := 0; i < order; i++ {
		res *= w
	}
	return res
}

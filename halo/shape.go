/*shape.go computes a halo's 3x3 shape (reduced inertia) tensor and its
eigen-decomposition, grounded on go/sim_stats.go's axisRatios, which builds
the same tensor from periodic particle displacements and factorizes it with
gonum's mat.Eigen.*/
package halo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ShapeTensor builds the reduced inertia tensor of a set of 3-D positions
// about center, using periodic minimum-image displacement in a box of side
// L, and returns its eigenvalues sorted largest to smallest (a2 >= b2 >= c2)
// together with the corresponding axis ratios c/a and b/a.
func ShapeTensor(pos [][3]float64, center [3]float64, l float64) (a2, b2, c2, ca, ba float64, err error) {
	if len(pos) < 4 {
		return 0, 0, 0, -1, -1, fmt.Errorf("halo: ShapeTensor needs at least 4 particles, got %d", len(pos))
	}

	s := make([]float64, 9)
	for _, x := range pos {
		dx := periodicDisplacement(x, center, l)
		r2 := dx[0]*dx[0] + dx[1]*dx[1] + dx[2]*dx[2]
		if r2 == 0 {
			continue
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				s[i+3*j] += dx[i] * dx[j] / r2
			}
		}
	}
	for i := range s {
		s[i] /= float64(len(pos))
	}

	sMat := mat.NewDense(3, 3, s)
	eig := &mat.Eigen{}
	if !eig.Factorize(sMat, mat.EigenRight) {
		return 0, 0, 0, -1, -1, fmt.Errorf("halo: eigen-decomposition of shape tensor failed")
	}
	val := eig.Values(make([]complex128, 3))
	a2, mid, c2 := sort3(real(val[0]), real(val[1]), real(val[2]))
	return a2, mid, c2, math.Sqrt(c2 / a2), math.Sqrt(mid / a2), nil
}

func periodicDisplacement(x, center [3]float64, l float64) [3]float64 {
	var dx [3]float64
	for i := 0; i < 3; i++ {
		d := (x[i] - center[i]) * l
		half := l / 2
		if d < -half {
			d += l
		}
		if d >= half {
			d -= l
		}
		dx[i] = d
	}
	return dx
}

func sort3(x, y, z float64) (l1, l2, l3 float64) {
	min, max := x, x
	if y > max {
		max = y
	} else if y < min {
		min = y
	}
	if z > max {
		max = z
	} else if z < min {
		min = z
	}
	return max, (x + y + z) - (min + max), min
}

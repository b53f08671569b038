package assign

import (
	"math"
	"testing"

	"github.com/phil-mansfield/slabgrid/kernel"
	"github.com/phil-mansfield/slabgrid/mesh"
	"github.com/phil-mansfield/slabgrid/particle"
)

// TestScenarioS6 reproduces spec scenario S6: gathering a pure sin(2*pi*i/M)
// field at a particle sitting exactly on the grid's i=M/2 node, where the
// field is zero, returns ~0 regardless of interpolation order: the B-spline
// stencil is symmetric about i=M/2 and sin is odd about that point, so the
// weighted sum cancels exactly up to floating-point round-off.
func TestScenarioS6(t *testing.T) {
	const m = 8
	gl, gr, err := kernel.GhostWidth(5, kernel.Corner)
	if err != nil {
		t.Fatalf("GhostWidth: %v", err)
	}
	g, err := mesh.NewLocal(3, m, gl, gr)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := g.FillRealFunc(func(coord []int) float64 {
		return math.Sin(2 * math.Pi * float64(coord[0]) / float64(m))
	}); err != nil {
		t.Fatalf("FillRealFunc: %v", err)
	}

	p := particle.New(3, 1, false, false)
	copy(p.Position(0), []float64{0.5, 0, 0})

	out, err := Gather(g, p, Options{Order: 5, Centering: kernel.Corner, Debug: true})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if math.Abs(out[0]) > 1e-13 {
		t.Errorf("gathered value = %v, want ~0", out[0])
	}
}

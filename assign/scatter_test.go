package assign

import (
	"math"
	"testing"

	"github.com/phil-mansfield/slabgrid/kernel"
	"github.com/phil-mansfield/slabgrid/mesh"
	"github.com/phil-mansfield/slabgrid/particle"
)

// TestScenarioS3 reproduces spec scenario S3: a single particle sitting
// exactly at a cell-centered grid vertex, scattered with CIC (p=2), splits
// evenly across the eight surrounding cells at weight 1/8 each: each of them
// receives 1/8 * M^3 = 8 on top of the -1 pre-fill and ends at 7, while
// every other active cell stays at -1, so the mean is 0.
func TestScenarioS3(t *testing.T) {
	const m = 4
	gl, gr, err := kernel.GhostWidth(2, kernel.Cell)
	if err != nil {
		t.Fatalf("GhostWidth: %v", err)
	}
	g, err := mesh.NewLocal(3, m, gl, gr)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	p := particle.New(3, 1, false, false)
	copy(p.Position(0), []float64{0.5, 0.5, 0.5})

	if err := Scatter(g, p, Options{Order: 2, Centering: kernel.Cell, NTotal: 1, Debug: true}); err != nil {
		t.Fatalf("Scatter: %v", err)
	}

	const want = 7.0
	seen := 0
	var total float64
	for c0 := 1; c0 <= 2; c0++ {
		for c1 := 1; c1 <= 2; c1++ {
			for c2 := 1; c2 <= 2; c2++ {
				v, err := g.GetReal([]int{c0, c1, c2})
				if err != nil {
					t.Fatalf("GetReal: %v", err)
				}
				if math.Abs(v-want) > 1e-10 {
					t.Errorf("cell (%d,%d,%d) = %v, want %v", c0, c1, c2, v, want)
				}
				seen++
				total += v
			}
		}
	}
	if seen != 8 {
		t.Fatalf("checked %d cells, want 8", seen)
	}

	others := 0
	var othersSum float64
	for c0 := 0; c0 < m; c0++ {
		for c1 := 0; c1 < m; c1++ {
			for c2 := 0; c2 < m; c2++ {
				if c0 >= 1 && c0 <= 2 && c1 >= 1 && c1 <= 2 && c2 >= 1 && c2 <= 2 {
					continue
				}
				v, err := g.GetReal([]int{c0, c1, c2})
				if err != nil {
					t.Fatalf("GetReal: %v", err)
				}
				if math.Abs(v+1) > 1e-10 {
					t.Errorf("cell (%d,%d,%d) = %v, want -1", c0, c1, c2, v)
				}
				others++
				othersSum += v
			}
		}
	}

	mean := (total + othersSum) / float64(m*m*m)
	if math.Abs(mean) > 1e-10 {
		t.Errorf("mean over active cells = %v, want 0", mean)
	}
}

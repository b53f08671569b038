/*Package config loads the INI-style configuration described by spec §4.I,
grounded on gotetra/io/config.go's gcfg.ReadFileInto pattern: one wrapper
struct per file, one field group per section, validated after load rather
than field-by-field during parsing.*/
package config

import (
	"fmt"

	"github.com/phil-mansfield/slabgrid/errs"
	"github.com/phil-mansfield/slabgrid/kernel"
	gcfg "gopkg.in/gcfg.v1"
)

// MeshSection configures the mesh's shape.
type MeshSection struct {
	Dim          int
	Side         int
	GhostLeft    int
	GhostRight   int
	CellCentered bool
}

// AssignSection configures the mass-assignment order and whether particles
// carry individual masses.
type AssignSection struct {
	Order              int
	ParticlesCarryMass bool
}

// FFTSection configures the FFT engine's wisdom cache and thread count.
type FFTSection struct {
	WisdomPath string
	Threads    int
}

// file is the gcfg-facing shape: one field per INI section, matching the
// capitalized section/key names gcfg expects.
type file struct {
	Mesh   MeshSection
	Assign AssignSection
	FFT    FFTSection
}

// MeshConfig is the parsed, defaulted configuration.
type MeshConfig struct {
	Mesh   MeshSection
	Assign AssignSection
	FFT    FFTSection
}

// setDefaults sets Dim to 3 and Order to 2 when the file leaves them zero.
// The other defaults (corner-centered, mass off, no wisdom path, runtime
// default thread count) are the fields' zero values.
func (f *file) setDefaults() {
	if f.Mesh.Dim == 0 {
		f.Mesh.Dim = 3
	}
	if f.Assign.Order == 0 {
		f.Assign.Order = 2
	}
}

// Load reads an INI file at path into a MeshConfig, applying setDefaults,
// rejecting a non-positive Side or negative ghost width, and rejecting shapes that cannot satisfy
// the assignment order's ghost-width requirement.
func Load(path string) (*MeshConfig, error) {
	f := &file{}
	if err := gcfg.ReadFileInto(f, path); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", errs.IoFailure, path, err)
	}
	f.setDefaults()

	if f.Mesh.Dim < 2 {
		return nil, fmt.Errorf("%w: mesh.Dim %d < 2", errs.UnsupportedShape, f.Mesh.Dim)
	}
	if f.Mesh.Side <= 0 {
		return nil, fmt.Errorf("%w: mesh.Side %d <= 0", errs.UnsupportedShape, f.Mesh.Side)
	}
	if f.Mesh.GhostLeft < 0 || f.Mesh.GhostRight < 0 {
		return nil, fmt.Errorf("%w: negative ghost width (%d, %d)", errs.UnsupportedShape, f.Mesh.GhostLeft, f.Mesh.GhostRight)
	}

	centering := kernel.Corner
	if f.Mesh.CellCentered {
		centering = kernel.Cell
	}
	if err := kernel.RequireGhostWidth(f.Assign.Order, centering, f.Mesh.GhostLeft, f.Mesh.GhostRight); err != nil {
		return nil, err
	}

	return &MeshConfig{Mesh: f.Mesh, Assign: f.Assign, FFT: f.FFT}, nil
}

package fft

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/phil-mansfield/slabgrid/comm"
	"github.com/phil-mansfield/slabgrid/errs"
	"github.com/phil-mansfield/slabgrid/internal/logz"
	"github.com/phil-mansfield/slabgrid/mesh"
)

// Plan runs e's planner against every sequence length g's owned region will
// ever transform, the way FFTWGrid's create_wisdom warms up a measure/
// patient/exhaustive plan before the first real transform. GonumEngine's
// planner (fourier.NewFFT/NewCmplxFFT) is O(1) and does not clobber its
// input, unlike FFTW's planner modes, but callers should still treat Plan
// as memory-unsafe: a future Engine backed by a clobbering planner would
// need the same call site.
func Plan(g *mesh.Mesh, e Engine) {
	dims := g.OwnedComplexDims()
	e.RealForward(make([]float64, g.M))
	for _, n := range dims[:len(dims)-1] {
		e.ComplexForward(make([]complex128, n))
	}
}

// SaveWisdom writes the FFT wisdom file at path. GonumEngine carries no serializable planner state (there is no FFTW-style
// wisdom format behind gonum's pure-Go planner), so this writes a marker
// file recording that planning occurred, for parity with the ambient
// wisdom-file workflow described in spec §4.D.
func SaveWisdom(path string) error {
	if err := os.WriteFile(path, []byte("slabgrid-wisdom-v1\n"), 0644); err != nil {
		logz.Warnf("fft: SaveWisdom(%s): %v", path, err)
		return fmt.Errorf("%w: %v", errs.IoFailure, err)
	}
	return nil
}

// LoadWisdom reads path on rank 0 and broadcasts its bytes to every other
// rank via c, matching spec §4.D's "wisdom... is broadcast from rank 0 on
// load." The length is broadcast first so every rank can size its buffer.
// The bytes are not interpreted (see SaveWisdom).
func LoadWisdom(path string, c comm.Communicator) ([]byte, error) {
	var buf []byte
	var size [8]byte
	if c.Rank() == 0 {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.IoFailure, err)
		}
		buf = b
		binary.LittleEndian.PutUint64(size[:], uint64(len(b)))
	}
	if err := c.Bcast(0, size[:]); err != nil {
		return nil, fmt.Errorf("%w: broadcasting wisdom size: %v", errs.IoFailure, err)
	}
	if c.Rank() != 0 {
		buf = make([]byte, binary.LittleEndian.Uint64(size[:]))
	}
	if err := c.Bcast(0, buf); err != nil {
		return nil, fmt.Errorf("%w: broadcasting wisdom: %v", errs.IoFailure, err)
	}
	return buf, nil
}

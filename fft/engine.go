/*Package fft implements the FFT driver described by spec component D: an
in-place N-dimensional real<->Fourier transform over a mesh's owned region,
delegated to an Engine collaborator via row/axis decomposition, grounded on
original_source/FFTWGrid/FFTWGrid.h's fftw_r2c/fftw_c2r (ghost-byte save and
restore around the transform, and forward-only 1/M^N normalization).

This package supplies one concrete engine, GonumEngine, built on
gonum.org/v1/gonum/dsp/fourier, for single-process (P=1) runs, per spec
§4.D's note that the core's Engine interface is the extension point for a
distributed, transpose-based implementation this module does not provide.*/
package fft

import "gonum.org/v1/gonum/dsp/fourier"

// Engine is the external collaborator the driver delegates actual
// transforms to: unnormalized real<->Hermitian-half and complex<->complex
// 1-D transforms over a single sequence. "Unnormalized" means a forward
// transform followed by this same Engine's inverse scales the sequence by
// its length n, matching the raw DFT/IDFT definitions rather than a
// round-trip-preserving convention; the driver (not the engine) owns all
// normalization, per spec §4.D step 3.
type Engine interface {
	// RealForward computes the n/2+1 complex Fourier coefficients of a
	// length-n real sequence.
	RealForward(src []float64) []complex128
	// RealInverse reconstructs the length-n real sequence from its n/2+1
	// complex Fourier coefficients, unnormalized (scaled by n relative to
	// the original sequence).
	RealInverse(src []complex128, n int) []float64
	// ComplexForward computes the unnormalized length-n complex DFT of src.
	ComplexForward(src []complex128) []complex128
	// ComplexInverse computes the unnormalized length-n complex inverse DFT
	// of src (scaled by n relative to a true inverse).
	ComplexInverse(src []complex128) []complex128
}

// GonumEngine wraps gonum.org/v1/gonum/dsp/fourier's FFT (real<->complex)
// and CmplxFFT (complex<->complex) planners, caching one plan per sequence
// length seen so far, the way a real FFTW wisdom cache would.
type GonumEngine struct {
	real  map[int]*fourier.FFT
	cmplx map[int]*fourier.CmplxFFT
}

// NewGonumEngine returns a ready-to-use GonumEngine.
func NewGonumEngine() *GonumEngine {
	return &GonumEngine{real: map[int]*fourier.FFT{}, cmplx: map[int]*fourier.CmplxFFT{}}
}

func (e *GonumEngine) realPlan(n int) *fourier.FFT {
	p, ok := e.real[n]
	if !ok {
		p = fourier.NewFFT(n)
		e.real[n] = p
	}
	return p
}

func (e *GonumEngine) cmplxPlan(n int) *fourier.CmplxFFT {
	p, ok := e.cmplx[n]
	if !ok {
		p = fourier.NewCmplxFFT(n)
		e.cmplx[n] = p
	}
	return p
}

func (e *GonumEngine) RealForward(src []float64) []complex128 {
	return e.realPlan(len(src)).Coefficients(nil, src)
}

// RealInverse returns gonum's Sequence as is: it is unnormalized (scaled by
// n relative to the original sequence), which is already the Engine
// contract and matches FFTWGrid's un-normalized fftw_c2r.
func (e *GonumEngine) RealInverse(src []complex128, n int) []float64 {
	return e.realPlan(n).Sequence(nil, src)
}

func (e *GonumEngine) ComplexForward(src []complex128) []complex128 {
	return e.cmplxPlan(len(src)).Coefficients(nil, src)
}

func (e *GonumEngine) ComplexInverse(src []complex128) []complex128 {
	return e.cmplxPlan(len(src)).Sequence(nil, src)
}

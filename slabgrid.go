/*Package slabgrid is a distributed numerical framework for cosmological field
computations on a regular N-dimensional mesh: an in-place real/complex grid
decomposed along its first axis, halo exchange between neighboring processes,
and B-spline particle-grid scatter/gather with Fourier-space deconvolution.

The domain logic lives in the mesh, halo, fft, kernel, assign, particle, and
comm subpackages; this file only carries the small amount of process-global
state (thread count) that guppy kept at its module root.*/
package slabgrid

import "runtime"

// SetThreads sets the number of OS threads the Go runtime may use
// concurrently. Passing n <= 0 leaves GOMAXPROCS at the runtime default.
func SetThreads(n int) {
	if n <= 0 {
		return
	}
	if n > runtime.NumCPU() {
		n = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(n)
}

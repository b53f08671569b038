/*Package errs defines the typed error taxonomy returned by the mesh, halo,
fft, kernel, and assign packages. Errors of the kinds listed below wrap one of
the sentinel values in this package, so callers can branch with:

	if errors.Is(err, errs.OutOfBounds) { ... }
*/
package errs

import "errors"

// Sentinel error kinds. Wrap one of these with fmt.Errorf("%w: ...") to add
// context; errors.Is still matches the sentinel.
var (
	// UnsupportedShape: N < 2, M mod P != 0, or a negative ghost width.
	UnsupportedShape = errors.New("unsupported shape")
	// OutOfBounds: a coordinate or linear index fell outside the addressable
	// region. Range checks run only when a mesh is in strict (bounds-checked)
	// mode; a coordinate slice of the wrong length is rejected in every mode.
	OutOfBounds = errors.New("out of bounds")
	// WrongSpace: an operation was invoked against a grid whose real/Fourier
	// tag disagreed with what the operation expects.
	WrongSpace = errors.New("wrong space")
	// GhostTooThin: a scatter or gather order demands more ghost depth than
	// the mesh was allocated with.
	GhostTooThin = errors.New("ghost too thin")
	// NotConfigured: an FFT was requested but no engine is attached.
	NotConfigured = errors.New("not configured")
	// IoFailure: a persistence read or write failed.
	IoFailure = errors.New("io failure")
	// ShapeMismatch: a persisted mesh's dimension disagrees with the caller's,
	// or a particle set's dimension disagrees with the mesh's.
	ShapeMismatch = errors.New("shape mismatch")
	// NumericAnomaly: a numerical check failed: the Debug-mode
	// partition-of-unity check in assign.Scatter or assign.Gather, or a zero
	// window in assign.Deconvolve. Mesh.NanCheck reports NaNs as a bool, not
	// as this error.
	NumericAnomaly = errors.New("numeric anomaly")
)

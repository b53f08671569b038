package mesh

import (
	"encoding/binary"
	"reflect"
	"unsafe"

	"github.com/phil-mansfield/slabgrid/internal/logz"
)

// SystemByteOrder reports this machine's native byte order, used for both
// the persistence codec (§6, "native endianness, no checksum") and the FFT
// wisdom blobs the driver forwards verbatim. Grounded on guppy's
// lib.SystemByteOrder, same probe.
func SystemByteOrder() binary.ByteOrder {
	b := [2]byte{}
	*(*uint16)(unsafe.Pointer(&b[0])) = uint16(0x0001)
	if b[0] == 0 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

const complexSize = int(unsafe.Sizeof(complex128(0)))

// realFloats reinterprets the backing []complex128 storage as a []float64 of
// twice the length, with no copy. A complex128 is laid out in memory as two
// adjacent float64 words (real, imag), so this cast is exactly the "two
// zero-copy views of one buffer" strategy spec §9 calls for: position
// 2*j+0/2*j+1 of the float view are the real/imaginary parts of complex cell
// j, and a real-space row of 2*(M/2+1) float64 values occupies precisely the
// memory of M/2+1 complex cells. Grounded on guppy's lib.go unsafe
// reflect.SliceHeader bulk-reinterpretation trick.
func (g *Mesh) realFloats() []float64 {
	if len(g.data) == 0 {
		return nil
	}
	hd := *(*reflect.SliceHeader)(unsafe.Pointer(&g.data))
	hd.Len *= 2
	hd.Cap *= 2
	return *(*[]float64)(unsafe.Pointer(&hd))
}

// payloadBytes reinterprets the backing storage as a []byte for writing to
// disk verbatim (§6 "payload... raw, including ghosts and padding").
func (g *Mesh) payloadBytes() []byte {
	if len(g.data) == 0 {
		return nil
	}
	hd := *(*reflect.SliceHeader)(unsafe.Pointer(&g.data))
	hd.Len *= complexSize
	hd.Cap *= complexSize
	return *(*[]byte)(unsafe.Pointer(&hd))
}

// bytesToComplex128 reinterprets a freshly-read byte buffer as a
// []complex128 payload, the inverse of payloadBytes.
func bytesToComplex128(b []byte) []complex128 {
	if len(b)%complexSize != 0 {
		logz.BugFatalf("mesh: payload length %d is not a multiple of %d", len(b), complexSize)
	}
	hd := *(*reflect.SliceHeader)(unsafe.Pointer(&b))
	hd.Len /= complexSize
	hd.Cap /= complexSize
	return *(*[]complex128)(unsafe.Pointer(&hd))
}

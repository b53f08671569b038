package mesh

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"

	"github.com/phil-mansfield/slabgrid/errs"
	"github.com/phil-mansfield/slabgrid/internal/logz"
)

// Binary persistence format (§6), generalized from guppy's
// lib/compress/file.go particle-catalog codec to a mesh payload: a magic
// number + version prefix followed by a fixed-width header and the raw
// payload bytes, optionally zstd-compressed.
const (
	magicNumber   uint32 = 0xbadf00d0
	formatVersion uint32 = 1
)

type fileHeader struct {
	Magic             uint32
	Version           uint32
	Ndim              int32
	M                 int32
	GL                int32
	GR                int32
	LocalNx           int64
	LocalXStart       int64
	AllocComplexCells int64
	AllocRealCells    int64
	OwnedComplexCells int64
	SlabComplexCells  int64
	SlabRealCells     int64
	InRealSpace       byte
	Compressed        byte
	PayloadLen        int64
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Save writes this mesh's storage to "<prefix>.<rank>" in native endianness.
// When compress is true the payload is zstd-compressed before writing. Per
// spec §7, an IoFailure on save is logged and returned, but not fatal --
// callers that ignore the error match the original's permissive semantics.
func (g *Mesh) Save(prefix string, compress bool) error {
	fname := fmt.Sprintf("%s.%d", prefix, g.rank)
	f, err := os.Create(fname)
	if err != nil {
		logz.Warnf("mesh: save %s: %v", fname, err)
		return fmt.Errorf("%w: %v", errs.IoFailure, err)
	}
	defer f.Close()

	payload := g.payloadBytes()
	if compress {
		cbuf, cerr := zstd.CompressLevel(nil, payload, 1)
		if cerr != nil {
			logz.Warnf("mesh: save %s: zstd compress: %v", fname, cerr)
			return fmt.Errorf("%w: %v", errs.IoFailure, cerr)
		}
		payload = cbuf
	}

	hd := fileHeader{
		Magic: magicNumber, Version: formatVersion,
		Ndim: int32(g.N), M: int32(g.M), GL: int32(g.GL), GR: int32(g.GR),
		LocalNx: int64(g.localNx), LocalXStart: int64(g.localXStart),
		AllocComplexCells: int64(g.allocComplexCells),
		AllocRealCells:    int64(2 * g.allocComplexCells),
		OwnedComplexCells: int64(g.ownedComplexCells),
		SlabComplexCells:  int64(g.slabComplexCells),
		SlabRealCells:     int64(g.slabRealCells),
		InRealSpace:       boolByte(g.inRealSpace),
		Compressed:        boolByte(compress),
		PayloadLen:        int64(len(payload)),
	}

	bo := SystemByteOrder()
	if err := binary.Write(f, bo, &hd); err != nil {
		logz.Warnf("mesh: save %s: %v", fname, err)
		return fmt.Errorf("%w: %v", errs.IoFailure, err)
	}
	if _, err := f.Write(payload); err != nil {
		logz.Warnf("mesh: save %s: %v", fname, err)
		return fmt.Errorf("%w: %v", errs.IoFailure, err)
	}
	return nil
}

// Load replaces every field of g from "<prefix>.<rank>". Per spec §7, a
// dimension mismatch or any other load failure is fatal to the process.
func (g *Mesh) Load(prefix string) {
	fname := fmt.Sprintf("%s.%d", prefix, g.rank)
	f, err := os.Open(fname)
	if err != nil {
		logz.Fatalf("mesh: load %s: %v", fname, err)
	}
	defer f.Close()

	var hd fileHeader
	bo := SystemByteOrder()
	if err := binary.Read(f, bo, &hd); err != nil {
		logz.Fatalf("mesh: load %s: %v", fname, err)
	}
	if hd.Magic != magicNumber {
		logz.Fatalf("mesh: load %s: bad magic number 0x%x (endianness mismatch or not a slabgrid mesh file)", fname, hd.Magic)
	}
	if int(hd.Ndim) != g.N {
		logz.Fatalf("mesh: load %s: %v: persisted ndim %d != %d", fname, errs.ShapeMismatch, hd.Ndim, g.N)
	}

	payload := make([]byte, hd.PayloadLen)
	if _, err := io.ReadFull(f, payload); err != nil {
		logz.Fatalf("mesh: load %s: %v", fname, err)
	}
	if hd.Compressed != 0 {
		raw, derr := zstd.Decompress(nil, payload)
		if derr != nil {
			logz.Fatalf("mesh: load %s: zstd decompress: %v", fname, derr)
		}
		payload = raw
	}

	g.M = int(hd.M)
	g.GL = int(hd.GL)
	g.GR = int(hd.GR)
	g.localNx = int(hd.LocalNx)
	g.localXStart = int(hd.LocalXStart)
	g.allocComplexCells = int(hd.AllocComplexCells)
	g.ownedComplexCells = int(hd.OwnedComplexCells)
	g.slabComplexCells = int(hd.SlabComplexCells)
	g.slabRealCells = int(hd.SlabRealCells)
	g.ownedRealCells = g.localNx * g.slabRealCells
	g.inRealSpace = hd.InRealSpace != 0
	g.data = bytesToComplex128(payload)
}

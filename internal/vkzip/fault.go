// internal/vkzip/fault.go
package vkzip

import (
	"encoding/binary"
	"fmt"
	"math"

	"vkbridge-core/geom"
	"vkbridge-core/surface"
)

// decodeFault parses a fault_*.bin member: little-endian int32 vertex
// count, float32 xyz triples, int32 triangle count, int32 index triples.
// Trailing bytes mean the file is not what we think it is.
func decodeFault(data []byte) (*surface.Surface, error) {
	const i32 = 4

	rd := func(off int) (uint32, error) {
		if off+i32 > len(data) {
			return 0, fmt.Errorf("truncated at byte %d of %d", off, len(data))
		}
		return binary.LittleEndian.Uint32(data[off : off+i32]), nil
	}

	off := 0
	nv32, err := rd(off)
	if err != nil {
		return nil, err
	}
	nVerts := int(int32(nv32))
	if nVerts < 0 {
		return nil, fmt.Errorf("negative vertex count %d", nVerts)
	}
	off += i32

	need := 3 * i32 * nVerts
	if off+need > len(data) {
		return nil, fmt.Errorf("vertex block truncated (%d vertices promised)", nVerts)
	}
	verts := make([]geom.Vec3, nVerts)
	for i := range verts {
		base := off + 3*i32*i
		verts[i] = geom.Vec3{
			X: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[base:]))),
			Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[base+i32:]))),
			Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[base+2*i32:]))),
		}
	}
	off += need

	nt32, err := rd(off)
	if err != nil {
		return nil, err
	}
	nTris := int(int32(nt32))
	if nTris < 0 {
		return nil, fmt.Errorf("negative triangle count %d", nTris)
	}
	off += i32

	need = 3 * i32 * nTris
	if off+need > len(data) {
		return nil, fmt.Errorf("triangle block truncated (%d triangles promised)", nTris)
	}
	tris := make([][3]int, nTris)
	for i := range tris {
		base := off + 3*i32*i
		tris[i] = [3]int{
			int(int32(binary.LittleEndian.Uint32(data[base:]))),
			int(int32(binary.LittleEndian.Uint32(data[base+i32:]))),
			int(int32(binary.LittleEndian.Uint32(data[base+2*i32:]))),
		}
	}
	off += need

	if off != len(data) {
		return nil, fmt.Errorf("%d trailing bytes after triangle block", len(data)-off)
	}
	return surface.FromMesh(verts, tris)
}

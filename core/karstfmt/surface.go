// core/karstfmt/surface.go
package karstfmt

import (
	"bufio"
	"fmt"
	"io"

	"vkbridge-core/geom"
	"vkbridge-core/surface"
)

// WriteSurface emits a triangulated surface: a "nverts ntris" header, one
// vertex line per point, then one 0-based index line per triangle.
func WriteSurface(w io.Writer, s *surface.Surface) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(s.Vertices), len(s.Triangles))
	for _, v := range s.Vertices {
		fmt.Fprintf(bw, "%s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
	}
	for _, t := range s.Triangles {
		fmt.Fprintf(bw, "%d %d %d\n", t[0], t[1], t[2])
	}
	return bw.Flush()
}

// ReadSurface parses the WriteSurface format.
func ReadSurface(r io.Reader, name string) (*surface.Surface, error) {
	sc := newScanner(r, name)
	f, err := sc.next()
	if err != nil {
		return nil, err
	}
	hdr, err := sc.ints(f, 2)
	if err != nil {
		return nil, err
	}
	nv, nt := hdr[0], hdr[1]
	if nv < 0 || nt < 0 {
		return nil, sc.errf("negative surface header %d %d", nv, nt)
	}

	verts := make([]geom.Vec3, 0, nv)
	for i := 0; i < nv; i++ {
		f, err := sc.next()
		if err != nil {
			return nil, err
		}
		v, err := sc.floats(f, 3)
		if err != nil {
			return nil, err
		}
		verts = append(verts, geom.Vec3{X: v[0], Y: v[1], Z: v[2]})
	}
	tris := make([][3]int, 0, nt)
	for i := 0; i < nt; i++ {
		f, err := sc.next()
		if err != nil {
			return nil, err
		}
		t, err := sc.ints(f, 3)
		if err != nil {
			return nil, err
		}
		tris = append(tris, [3]int{t[0], t[1], t[2]})
	}
	return surface.FromMesh(verts, tris)
}

// core/surface/surface.go
package surface

import (
	"fmt"

	"vkbridge-core/geom"
	"vkbridge-core/grid"
)

// Surface is a triangulated mesh in local project-box coordinates.
type Surface struct {
	Vertices  []geom.Vec3
	Triangles [][3]int
}

// FromMesh builds a surface from explicit vertices and triangle indices,
// rejecting out-of-range indices.
func FromMesh(vertices []geom.Vec3, triangles [][3]int) (*Surface, error) {
	for ti, tri := range triangles {
		for _, v := range tri {
			if v < 0 || v >= len(vertices) {
				return nil, fmt.Errorf("surface: triangle %d references vertex %d of %d", ti, v, len(vertices))
			}
		}
	}
	return &Surface{Vertices: vertices, Triangles: triangles}, nil
}

// FromGrid triangulates a DEM raster over a width×height footprint.
// Row 0 maps to y=0; each grid cell yields two triangles.
func FromGrid(g *grid.Grid, width, height float64) (*Surface, error) {
	if g.Rows < 2 || g.Cols < 2 {
		return nil, fmt.Errorf("surface: DEM grid must be at least 2x2, got %dx%d", g.Rows, g.Cols)
	}
	dx := width / float64(g.Cols-1)
	dy := height / float64(g.Rows-1)

	s := &Surface{
		Vertices:  make([]geom.Vec3, 0, g.Rows*g.Cols),
		Triangles: make([][3]int, 0, 2*(g.Rows-1)*(g.Cols-1)),
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			s.Vertices = append(s.Vertices, geom.Vec3{
				X: float64(c) * dx,
				Y: float64(r) * dy,
				Z: g.At(r, c),
			})
		}
	}
	for r := 0; r < g.Rows-1; r++ {
		for c := 0; c < g.Cols-1; c++ {
			v1 := r*g.Cols + c
			v2 := v1 + 1
			v3 := v1 + g.Cols
			v4 := v3 + 1
			s.Triangles = append(s.Triangles, [3]int{v1, v2, v3}, [3]int{v2, v4, v3})
		}
	}
	return s, nil
}

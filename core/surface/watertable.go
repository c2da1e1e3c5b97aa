// core/surface/watertable.go
package surface

import (
	"fmt"

	"vkbridge-core/geom"
	"vkbridge-core/voxel"
)

// WaterTable is the triangulated top of one groundwater body.
type WaterTable struct {
	GWB     int
	Surface *Surface
}

// WaterTables extracts one top surface per groundwater body present in the
// voxel model, ordered by ascending gwb id. For each (x, y) column the
// highest voxel layer occupied by the body becomes a vertex; columns the
// body never reaches are holes and the surrounding cells are skipped.
// Bodies that yield no triangles are dropped (the caller may warn).
func WaterTables(v *voxel.Grid, width, height, depth, minElevation float64) ([]WaterTable, []int, error) {
	if v.NZ == 0 {
		return nil, nil, nil
	}
	dx := 0.0
	if v.NX > 1 {
		dx = width / float64(v.NX-1)
	}
	dy := 0.0
	if v.NY > 1 {
		dy = height / float64(v.NY-1)
	}
	dz := depth / float64(v.NZ)

	var tables []WaterTable
	var dropped []int
	for _, gwb := range v.GWBs() {
		s, err := topSurface(v, gwb, dx, dy, dz, minElevation)
		if err != nil {
			return nil, nil, fmt.Errorf("water table for gwb %d: %w", gwb, err)
		}
		if s == nil {
			dropped = append(dropped, gwb)
			continue
		}
		tables = append(tables, WaterTable{GWB: gwb, Surface: s})
	}
	return tables, dropped, nil
}

func topSurface(v *voxel.Grid, gwb int, dx, dy, dz, minElevation float64) (*Surface, error) {
	// highest occupied layer per column, -1 = body absent
	top := make([]int, v.NX*v.NY)
	for i := range top {
		top[i] = -1
	}
	occupied := false
	xMin, xMax := v.NX, -1
	yMin, yMax := v.NY, -1
	for x := 0; x < v.NX; x++ {
		for y := 0; y < v.NY; y++ {
			for z := v.NZ - 1; z >= 0; z-- {
				if v.GWB(x, y, z) == gwb {
					top[x*v.NY+y] = z
					occupied = true
					if x < xMin {
						xMin = x
					}
					if x > xMax {
						xMax = x
					}
					if y < yMin {
						yMin = y
					}
					if y > yMax {
						yMax = y
					}
					break
				}
			}
		}
	}
	if !occupied {
		return nil, nil
	}

	w := xMax - xMin + 1
	h := yMax - yMin + 1
	index := make([]int, w*h)
	for i := range index {
		index[i] = -1
	}
	var vertices []geom.Vec3
	for ly := 0; ly < h; ly++ {
		gy := yMin + ly
		for lx := 0; lx < w; lx++ {
			gx := xMin + lx
			tz := top[gx*v.NY+gy]
			if tz < 0 {
				continue
			}
			index[ly*w+lx] = len(vertices)
			vertices = append(vertices, geom.Vec3{
				X: float64(gx) * dx,
				Y: float64(gy) * dy,
				Z: float64(tz+1)*dz + minElevation,
			})
		}
	}

	var triangles [][3]int
	for ly := 0; ly < h-1; ly++ {
		for lx := 0; lx < w-1; lx++ {
			v1 := index[ly*w+lx]
			v2 := index[ly*w+lx+1]
			v3 := index[(ly+1)*w+lx]
			v4 := index[(ly+1)*w+lx+1]
			if v1 < 0 || v2 < 0 || v3 < 0 || v4 < 0 {
				continue
			}
			triangles = append(triangles, [3]int{v1, v2, v3}, [3]int{v2, v4, v3})
		}
	}
	if len(triangles) == 0 {
		return nil, nil
	}
	return FromMesh(vertices, triangles)
}

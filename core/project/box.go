// core/project/box.go
package project

import (
	"fmt"

	"vkbridge-core/geom"
	"vkbridge-core/voxel"
)

// NoValue marks cells outside the model (sky, unknown permeability).
const NoValue = -99999.0

// Spec is the project bounding box as exported by Visual KARSYS.
type Spec struct {
	Width        float64
	Height       float64
	MinElevation float64
	MaxElevation float64
}

// Depth is the vertical extent of the box.
func (s Spec) Depth() float64 { return s.MaxElevation - s.MinElevation }

// Box is the simulation domain: a local-coordinate parallelepiped with a
// per-cell point density and karstification potential.
type Box struct {
	Basis   geom.Vec3
	U, V, W geom.Vec3
	Cells   geom.Index3

	Densities []float64
	Potential []float64
}

// CellSizes returns the cell edge lengths along u, v, w.
func (b *Box) CellSizes() (float64, float64, float64) {
	return b.U.X / float64(b.Cells.X), b.V.Y / float64(b.Cells.Y), b.W.Z / float64(b.Cells.Z)
}

// MaxCellSize returns the largest cell edge length.
func (b *Box) MaxCellSize() float64 {
	du, dv, dw := b.CellSizes()
	max := du
	if dv > max {
		max = dv
	}
	if dw > max {
		max = dw
	}
	return max
}

// BuildConfig controls density assignment in BuildBox. A non-positive
// density resolves to its automatic value: base = cellsW/depth, sparse =
// 2×base.
type BuildConfig struct {
	RMinPervious   float64
	RMinImpervious float64
}

// BuildBox lowers the voxel model onto the compute grid. Every compute cell
// samples its nearest voxel; groundwater-body interiors get potential 1.0,
// stratigraphic units the potential of their permeability class, and sky
// stays NoValue. Densities follow the potential: base density where karst
// can grow, sparse where it cannot.
func BuildBox(spec Spec, table map[int]Unit, vox *voxel.Grid, cells geom.Index3, cfg BuildConfig) (*Box, []int, error) {
	if cells.X <= 0 || cells.Y <= 0 || cells.Z <= 0 {
		return nil, nil, fmt.Errorf("project: non-positive compute resolution %+v", cells)
	}
	depth := spec.Depth()
	if depth <= 0 {
		return nil, nil, fmt.Errorf("project: box depth %g must be positive", depth)
	}

	base := cfg.RMinPervious
	if base <= 0 {
		base = float64(cells.Z) / depth
	}
	sparse := cfg.RMinImpervious
	if sparse <= 0 {
		sparse = base * 2
	}
	if base > 1 || sparse > 1 {
		return nil, nil, fmt.Errorf("project: density modifier too high, resulting density > 1 (base=%g, sparse=%g)", base, sparse)
	}

	n := cells.Count()
	b := &Box{
		Basis:     geom.Vec3{Z: spec.MinElevation},
		U:         geom.Vec3{X: spec.Width},
		V:         geom.Vec3{Y: spec.Height},
		W:         geom.Vec3{Z: depth},
		Cells:     cells,
		Densities: make([]float64, n),
		Potential: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		b.Densities[i] = NoValue
		b.Potential[i] = NoValue
	}

	var unknownRanks []int
	seenUnknown := map[int]struct{}{}
	for iu := 0; iu < cells.X; iu++ {
		ix := nearest(iu, cells.X, vox.NX)
		for iv := 0; iv < cells.Y; iv++ {
			iy := nearest(iv, cells.Y, vox.NY)
			for iw := 0; iw < cells.Z; iw++ {
				iz := nearest(iw, cells.Z, vox.NZ)
				idx := iu + cells.X*(iv+cells.Y*iw)

				rank := vox.Rank(ix, iy, iz)
				gwb := vox.GWB(ix, iy, iz)

				var potential float64
				switch {
				case gwb > 0:
					potential = 1.0
				case rank > 0:
					unit, ok := table[rank]
					if !ok {
						if _, dup := seenUnknown[rank]; !dup {
							seenUnknown[rank] = struct{}{}
							unknownRanks = append(unknownRanks, rank)
						}
						continue
					}
					p, known := unit.Permeability.Potential()
					if !known {
						potential = NoValue
					} else {
						potential = p
					}
				default:
					// sky
					continue
				}

				b.Potential[idx] = potential
				if potential < 0 {
					continue
				}
				if potential > 0 {
					b.Densities[idx] = base
				} else {
					b.Densities[idx] = sparse
				}
			}
		}
	}
	return b, unknownRanks, nil
}

// nearest maps compute-grid index i in [0, cells) onto the voxel axis of
// size n.
func nearest(i, cells, n int) int {
	x := i * n / cells
	if x > n-1 {
		x = n - 1
	}
	return x
}

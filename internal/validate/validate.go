// internal/validate/validate.go
package validate

import (
	"errors"
	"fmt"

	"vkbridge-core/geom"
	"vkbridge-core/karst"

	"vkbridge/internal/vkzip"
)

// ErrInvalid tags every validation failure so the CLI can map the whole
// class to one exit code.
var ErrInvalid = errors.New("invalid project")

func errf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// SpringsInBox checks that every spring falls inside the project box
// footprint (local coordinates, origin at the box corner).
func SpringsInBox(springs []vkzip.Spring, box vkzip.ProjectBox) error {
	for i, s := range springs {
		if s.X < 0 || s.X > box.Width || s.Y < 0 || s.Y > box.Height {
			return errf("spring %d (poi %d) at (%g, %g) is outside the %gx%g project box",
				i+1, s.POIID, s.X, s.Y, box.Width, box.Height)
		}
	}
	return nil
}

// AssignWaterTables builds engine springs with 1-based indices and the
// water table index of each spring's groundwater body. tableOrder lists
// gwb ids in water table order. A spring whose outlet belongs to no listed
// body cannot be simulated; that is fatal.
func AssignWaterTables(springs []vkzip.Spring, gwbs []vkzip.GroundwaterBody, tableOrder []int) ([]karst.Spring, error) {
	// spring id -> 1-based water table index
	bySpring := make(map[int]int, len(tableOrder))
	for wt, gwbID := range tableOrder {
		for _, g := range gwbs {
			if g.GWBID == gwbID {
				bySpring[g.SpringID] = wt + 1
			}
		}
	}

	out := make([]karst.Spring, 0, len(springs))
	for i, s := range springs {
		wt, ok := bySpring[s.POIID]
		if !ok {
			return nil, errf("spring at (%g, %g, %g) (index %d) has no associated groundwater body",
				s.X, s.Y, s.Z, i+1)
		}
		out = append(out, karst.Spring{
			Origin:          geom.Vec3{X: s.X, Y: s.Y, Z: s.Z},
			Index:           i + 1,
			WaterTableIndex: wt,
		})
	}
	return out, nil
}

// Catchments pairs each spring with its recharge polygon for sink
// placement, in spring order.
func Catchments(springs []vkzip.Spring) []karst.Catchment {
	out := make([]karst.Catchment, 0, len(springs))
	for _, s := range springs {
		c := karst.Catchment{SpringID: s.POIID}
		for _, pt := range s.Catchment {
			c.Polygon = append(c.Polygon, geom.Vec2{X: pt[0], Y: pt[1]})
		}
		out = append(out, c)
	}
	return out
}

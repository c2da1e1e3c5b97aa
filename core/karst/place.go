// core/karst/place.go
package karst

import (
	"fmt"
	"math/rand/v2"

	"vkbridge-core/geom"
	"vkbridge-core/grid"
)

// rejection sampling gives up after this many consecutive misses per point;
// a catchment thinner than ~1/maxMisses of its bounding box is degenerate.
const maxMisses = 1 << 16

// Catchment is one spring's recharge area.
type Catchment struct {
	SpringID int
	Polygon  geom.Polygon
}

// PlaceConfig drives sink placement.
type PlaceConfig struct {
	N          int
	Catchments []Catchment
	DEM        *grid.Grid
	// DEM cell sizes in box coordinates.
	ResX, ResY float64
}

// PlaceSinks scatters cfg.N sinks over the catchments, weighted by polygon
// area (uniform when every area is zero), with elevations interpolated from
// the DEM. Row i of the returned matrix connects sink i solely to the
// spring of its catchment. Deterministic for a given rng state.
func PlaceSinks(cfg PlaceConfig, rng *rand.Rand) ([]Sink, Connectivity, error) {
	if cfg.N <= 0 {
		return nil, Connectivity{}, nil
	}
	if len(cfg.Catchments) == 0 {
		return nil, nil, fmt.Errorf("karst: no catchments to place %d sinks in", cfg.N)
	}

	counts := assign(cfg.N, cfg.Catchments, rng)

	nSprings := len(cfg.Catchments)
	var sinks []Sink
	var conn Connectivity
	index := 1
	for ci, c := range cfg.Catchments {
		for k := 0; k < counts[ci]; k++ {
			pt, err := samplePoint(c.Polygon, rng)
			if err != nil {
				return nil, nil, fmt.Errorf("karst: catchment of spring %d: %w", c.SpringID, err)
			}
			z, err := cfg.DEM.Bilinear(pt.Y/cfg.ResY, pt.X/cfg.ResX)
			if err != nil {
				return nil, nil, fmt.Errorf("karst: sink elevation: %w", err)
			}
			sinks = append(sinks, Sink{
				Origin: geom.Vec3{X: pt.X, Y: pt.Y, Z: z},
				Index:  index,
				Order:  1,
			})
			row := make([]int, nSprings)
			row[ci] = 1
			conn = append(conn, row)
			index++
		}
	}
	return sinks, conn, nil
}

// assign draws a catchment for each sink, weighted by area.
func assign(n int, catchments []Catchment, rng *rand.Rand) []int {
	counts := make([]int, len(catchments))
	if len(catchments) == 1 {
		counts[0] = n
		return counts
	}
	weights := make([]float64, len(catchments))
	total := 0.0
	for i, c := range catchments {
		weights[i] = c.Polygon.Area()
		total += weights[i]
	}
	if total == 0 {
		for i := range weights {
			weights[i] = 1
		}
		total = float64(len(weights))
	}
	for k := 0; k < n; k++ {
		r := rng.Float64() * total
		acc := 0.0
		pick := len(catchments) - 1
		for i, w := range weights {
			acc += w
			if r < acc {
				pick = i
				break
			}
		}
		counts[pick]++
	}
	return counts
}

// samplePoint draws a uniform point inside the polygon by rejection from
// its bounding box.
func samplePoint(p geom.Polygon, rng *rand.Rand) (geom.Vec2, error) {
	min, max := p.Bounds()
	w, h := max.X-min.X, max.Y-min.Y
	if w <= 0 || h <= 0 || len(p) < 3 {
		return geom.Vec2{}, fmt.Errorf("degenerate catchment polygon (%d vertices)", len(p))
	}
	for i := 0; i < maxMisses; i++ {
		pt := geom.Vec2{X: min.X + rng.Float64()*w, Y: min.Y + rng.Float64()*h}
		if p.Contains(pt) {
			return pt, nil
		}
	}
	return geom.Vec2{}, fmt.Errorf("rejection sampling exhausted after %d draws", maxMisses)
}

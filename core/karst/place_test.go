package karst

import (
	"math/rand/v2"
	"testing"

	"vkbridge-core/geom"
	"vkbridge-core/grid"
)

func flatDEM(t *testing.T, rows, cols int, z float32) *grid.Grid {
	t.Helper()
	vals := make([]float32, rows*cols)
	for i := range vals {
		vals[i] = z
	}
	g, err := grid.New(vals, rows, cols)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func newRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestPlaceSinksSingleCatchment(t *testing.T) {
	cfg := PlaceConfig{
		N: 25,
		Catchments: []Catchment{
			{SpringID: 11, Polygon: geom.Polygon{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90}}},
		},
		DEM:  flatDEM(t, 11, 11, 350),
		ResX: 10, ResY: 10,
	}
	sinks, conn, err := PlaceSinks(cfg, newRng(42))
	if err != nil {
		t.Fatalf("PlaceSinks: %v", err)
	}
	if len(sinks) != 25 || len(conn) != 25 {
		t.Fatalf("got %d sinks %d rows", len(sinks), len(conn))
	}
	for i, s := range sinks {
		if s.Index != i+1 || s.Order != 1 {
			t.Fatalf("sink %d numbering: %+v", i, s)
		}
		if s.Origin.X < 10 || s.Origin.X > 90 || s.Origin.Y < 10 || s.Origin.Y > 90 {
			t.Fatalf("sink %d left its catchment: %+v", i, s.Origin)
		}
		if s.Origin.Z != 350 {
			t.Fatalf("sink %d elevation %v, want 350", i, s.Origin.Z)
		}
		if len(conn[i]) != 1 || conn[i][0] != 1 {
			t.Fatalf("row %d = %v", i, conn[i])
		}
	}
}

func TestPlaceSinksAreaWeighting(t *testing.T) {
	big := geom.Polygon{{X: 0, Y: 0}, {X: 80, Y: 0}, {X: 80, Y: 80}, {X: 0, Y: 80}}
	small := geom.Polygon{{X: 90, Y: 90}, {X: 95, Y: 90}, {X: 95, Y: 95}, {X: 90, Y: 95}}
	cfg := PlaceConfig{
		N:          200,
		Catchments: []Catchment{{SpringID: 1, Polygon: big}, {SpringID: 2, Polygon: small}},
		DEM:        flatDEM(t, 11, 11, 100),
		ResX:       10, ResY: 10,
	}
	sinks, conn, err := PlaceSinks(cfg, newRng(7))
	if err != nil {
		t.Fatalf("PlaceSinks: %v", err)
	}
	var toBig int
	for _, row := range conn {
		if len(row) != 2 {
			t.Fatalf("row width %d", len(row))
		}
		if row[0]+row[1] != 1 {
			t.Fatalf("row must connect exactly one spring: %v", row)
		}
		toBig += row[0]
	}
	// big catchment is 256x the small one; nearly all sinks land there
	if toBig < 190 {
		t.Fatalf("area weighting off: only %d/200 in big catchment", toBig)
	}
	if len(sinks) != 200 {
		t.Fatalf("lost sinks: %d", len(sinks))
	}
}

func TestPlaceSinksDeterministic(t *testing.T) {
	cfg := PlaceConfig{
		N:          10,
		Catchments: []Catchment{{SpringID: 1, Polygon: geom.Polygon{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}}}},
		DEM:        flatDEM(t, 11, 11, 10),
		ResX:       10, ResY: 10,
	}
	a, _, err := PlaceSinks(cfg, newRng(99))
	if err != nil {
		t.Fatalf("PlaceSinks: %v", err)
	}
	b, _, err := PlaceSinks(cfg, newRng(99))
	if err != nil {
		t.Fatalf("PlaceSinks: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded runs diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPlaceSinksZeroN(t *testing.T) {
	sinks, conn, err := PlaceSinks(PlaceConfig{N: 0}, newRng(1))
	if err != nil || sinks != nil || len(conn) != 0 {
		t.Fatalf("zero sinks: %v %v %v", sinks, conn, err)
	}
}

func TestPlaceSinksDegeneratePolygon(t *testing.T) {
	cfg := PlaceConfig{
		N:          1,
		Catchments: []Catchment{{SpringID: 1, Polygon: geom.Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}}},
		DEM:        flatDEM(t, 2, 2, 0),
		ResX:       1, ResY: 1,
	}
	if _, _, err := PlaceSinks(cfg, newRng(1)); err == nil {
		t.Fatalf("expected degenerate polygon error")
	}
}

func TestNetworkValidate(t *testing.T) {
	n := &Network{
		Nodes:    []geom.Vec3{{X: 1}, {X: 2}},
		Segments: [][2]int{{0, 1}},
	}
	if err := n.Validate(); err != nil {
		t.Fatalf("valid network rejected: %v", err)
	}
	n.Segments = append(n.Segments, [2]int{1, 2})
	if err := n.Validate(); err == nil {
		t.Fatalf("expected out-of-range segment error")
	}
}

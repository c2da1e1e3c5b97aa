// internal/bridge/bridge_test.go
package bridge

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"vkbridge/internal/engine"
	"vkbridge/internal/params"
	"vkbridge/internal/validate"
	"vkbridge/internal/vkzip"
	"vkbridge/pkg/api"
)

func demBytes(vals []float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

func faultBytes(verts [][3]float32, tris [][3]int32) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(len(verts)))
	for _, v := range verts {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	binary.Write(&buf, binary.LittleEndian, int32(len(tris)))
	for _, tr := range tris {
		binary.Write(&buf, binary.LittleEndian, tr)
	}
	return buf.Bytes()
}

func voxelsText() []byte {
	var b strings.Builder
	b.WriteString("XMIN=0 XMAX=100 YMIN=0 YMAX=100 ZMIN=400 ZMAX=600 NUMBERX=2 NUMBERY=2 NUMBERZ=2 NOVALUE=0\n")
	b.WriteString("rank gwb_id\n")
	for z := 0; z < 2; z++ {
		for i := 0; i < 4; i++ {
			if z == 0 {
				b.WriteString("1 1\n")
			} else {
				b.WriteString("1 0\n")
			}
		}
	}
	return []byte(b.String())
}

// exportFS is the fstest twin of a minimal complete export archive.
func exportFS(extra map[string][]byte) fstest.MapFS {
	dem := make([]float32, 16)
	for i := range dem {
		dem[i] = float32((i/4)*10 + i%4)
	}
	members := map[string][]byte{
		"config.json":         []byte(`{"name":"Test Aquifer","seed":5,"nSinks":4}`),
		"project_box.json":    []byte(`{"width":100,"height":100,"min_elevation":400,"max_elevation":600}`),
		"dem_resolution.json": []byte(`{"n_cols":4,"n_rows":4}`),
		"dem_values.bin":      demBytes(dem),
		"stratigraphy.json":   []byte(`[{"name":"Limestone","permeability":"Karstified","stratiUnitId":1}]`),
		"voxels.txt":          voxelsText(),
		"voxels_units.json":   []byte(`[1]`),
		"poi_1.json":          []byte(`{"x":50,"y":50,"z":450,"poi_id":7,"catchment":[[10,10],[90,10],[90,90],[10,90]]}`),
		"gwb_1.json":          []byte(`{"gwb_id":1,"spring_id":7}`),
		"fault_1.bin": faultBytes(
			[][3]float32{{0, 0, 400}, {100, 0, 450}, {0, 100, 500}},
			[][3]int32{{0, 1, 2}},
		),
	}
	for name, data := range extra {
		if data == nil {
			delete(members, name)
		} else {
			members[name] = data
		}
	}
	fsys := fstest.MapFS{}
	for name, data := range members {
		fsys[name] = &fstest.MapFile{Data: data}
	}
	return fsys
}

func readProject(t *testing.T, extra map[string][]byte) *vkzip.Project {
	t.Helper()
	p, err := vkzip.Read(context.Background(), exportFS(extra), zaptest.NewLogger(t))
	require.NoError(t, err)
	return p
}

func TestPrepare(t *testing.T) {
	proj := readProject(t, nil)
	in, err := Prepare(proj, false, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Aquifer", in.Config.NetworkName)
	assert.Equal(t, int64(5), in.Config.Seed)
	// auto radius: 3x the largest cell dimension (depth 200 over 2 cells)
	assert.Equal(t, 300.0, in.Config.NghbRadius)

	require.NotNil(t, in.Box)
	assert.Equal(t, 8, len(in.Box.Densities))

	require.Len(t, in.Springs, 1)
	assert.Equal(t, 1, in.Springs[0].Index)
	assert.Equal(t, 1, in.Springs[0].WaterTableIndex)

	require.Len(t, in.Sinks, 4)
	require.Len(t, in.Connectivity, 4)
	for i, s := range in.Sinks {
		assert.Equal(t, i+1, s.Index)
		assert.Equal(t, []int{1}, in.Connectivity[i])
		assert.InDelta(t, 50, s.Origin.X, 40)
		assert.InDelta(t, 50, s.Origin.Y, 40)
	}

	require.Len(t, in.WaterTables, 1)
	// gwb fills the bottom voxel layer: table sits one cell above the floor
	assert.Equal(t, 500.0, in.WaterTables[0].Vertices[0].Z)
	require.Len(t, in.Inceptions, 1)
}

func TestPrepareDeterministic(t *testing.T) {
	log := zaptest.NewLogger(t)
	a, err := Prepare(readProject(t, nil), false, log)
	require.NoError(t, err)
	b, err := Prepare(readProject(t, nil), false, log)
	require.NoError(t, err)
	assert.Equal(t, a.Sinks, b.Sinks)
	assert.Equal(t, a.Connectivity, b.Connectivity)
}

func TestPrepareOrphanSpring(t *testing.T) {
	proj := readProject(t, map[string][]byte{
		"gwb_1.json": []byte(`{"gwb_id":1,"spring_id":99}`),
	})
	_, err := Prepare(proj, false, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrInvalid)
}

func TestPrepareSpringOutsideBox(t *testing.T) {
	proj := readProject(t, map[string][]byte{
		"poi_1.json": []byte(`{"x":500,"y":50,"z":450,"poi_id":7,"catchment":[[10,10],[90,10],[90,90]]}`),
	})
	_, err := Prepare(proj, false, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrInvalid)
}

func TestRunWithStub(t *testing.T) {
	proj := readProject(t, nil)
	res, err := Run(context.Background(), proj, engine.Stub{}, false, zaptest.NewLogger(t))
	require.NoError(t, err)

	// one node per spring plus one per sink
	assert.Len(t, res.Network.Nodes, 5)
	assert.Len(t, res.Network.Segments, 4)

	assert.NotEmpty(t, res.Info.Metadata.RunID)
	assert.NotEmpty(t, res.Info.Metadata.GenerationTime)
	assert.Equal(t, api.ResolutionV1{X: 2, Y: 2, Z: 2}, res.Info.Metadata.ComputeResolution)
	assert.Equal(t, "Test Aquifer", res.Info.Config.Name)
	assert.Equal(t, int64(5), res.Info.Config.Seed)
}

func TestConfigV1Marshal(t *testing.T) {
	p := params.Defaults()
	data, err := json.Marshal(ConfigV1(p))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"searchRadius":"auto"`)
	assert.Contains(t, string(data), `"kPts":10`)

	p.SearchRadius = params.Float(12)
	data, err = json.Marshal(ConfigV1(p))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"searchRadius":12`)
}

func TestSummarize(t *testing.T) {
	proj := readProject(t, nil)
	s := Summarize("export.zip", proj)
	assert.Equal(t, "export.zip", s.Archive)
	assert.Equal(t, 1, s.Springs)
	assert.Equal(t, 1, s.GroundwaterBodies)
	assert.Equal(t, 1, s.InceptionSurfaces)
	require.Len(t, s.Units, 1)
	assert.Equal(t, "Limestone", s.Units[0].Name)
	assert.Equal(t, api.ResolutionV1{X: 2, Y: 2, Z: 2}, s.Resolution)
	assert.Equal(t, api.DEMV1{Rows: 2, Cols: 2}, s.DEM)
}

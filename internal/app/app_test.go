// internal/app/app_test.go
package app

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demBytes(vals []float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
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

// writeExport drops a minimal complete export archive into dir.
func writeExport(t *testing.T, dir string, extra map[string][]byte) string {
	t.Helper()
	dem := make([]float32, 16)
	for i := range dem {
		dem[i] = float32((i/4)*10 + i%4)
	}
	members := map[string][]byte{
		"config.json":         []byte(`{"name":"Test Aquifer","seed":5,"nSinks":3}`),
		"project_box.json":    []byte(`{"width":100,"height":100,"min_elevation":400,"max_elevation":600}`),
		"dem_resolution.json": []byte(`{"n_cols":4,"n_rows":4}`),
		"dem_values.bin":      demBytes(dem),
		"stratigraphy.json":   []byte(`[{"name":"Limestone","permeability":"Karstified","stratiUnitId":1}]`),
		"voxels.txt":          voxelsText(),
		"voxels_units.json":   []byte(`[1]`),
		"poi_1.json":          []byte(`{"x":50,"y":50,"z":450,"poi_id":7,"catchment":[[10,10],[90,10],[90,90],[10,90]]}`),
		"gwb_1.json":          []byte(`{"gwb_id":1,"spring_id":7}`),
	}
	for name, data := range extra {
		if data == nil {
			delete(members, name)
		} else {
			members[name] = data
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, "export.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := RunContext(context.Background(), argv, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := run(t, "version")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "vkbridge version")
}

func TestUnknownFlag(t *testing.T) {
	code, _, errOut := run(t, "run", "--no-such-flag")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "no-such-flag")
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)
	output := filepath.Join(dir, "network.txt")

	code, _, errOut := run(t, "run", export, "--dry-run", "-o", output)
	require.Equal(t, ExitOK, code, errOut)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# Run info\n"))
	assert.Contains(t, text, `"name": "Test Aquifer"`)
	assert.Contains(t, text, `"seed": 5`)
	assert.Contains(t, text, "# Data\n")
	// one spring node plus three sink nodes, one conduit per sink
	assert.Contains(t, text, "4 3\n")
}

func TestRunOverridesWinOverArchive(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)
	output := filepath.Join(dir, "network.txt")

	code, _, _ := run(t, "run", export, "--dry-run", "-o", output, "--name", "Override", "--n-sinks", "2")
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Override"`)
	assert.Contains(t, string(data), "3 2\n")
}

func TestRunSettingsFile(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)
	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("name: FromSettings\n"), 0o644))
	output := filepath.Join(dir, "network.txt")

	code, _, _ := run(t, "run", export, "--dry-run", "-o", output, "--settings", settings)
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "FromSettings"`)
}

func TestRunMissingArchive(t *testing.T) {
	code, _, _ := run(t, "run", filepath.Join(t.TempDir(), "missing.zip"), "--dry-run")
	assert.Equal(t, ExitUsage, code)
}

func TestRunRejectsNonZip(t *testing.T) {
	code, _, _ := run(t, "run", "export.tar", "--dry-run")
	assert.Equal(t, ExitUsage, code)
}

func TestRunOrphanSpring(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, map[string][]byte{
		"gwb_1.json": []byte(`{"gwb_id":1,"spring_id":99}`),
	})
	code, _, _ := run(t, "run", export, "--dry-run", "-o", filepath.Join(dir, "out.txt"))
	assert.Equal(t, ExitUsage, code)
}

func TestRunNoEngineConfigured(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)
	code, _, errOut := run(t, "run", export, "-o", filepath.Join(dir, "out.txt"))
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "no engine binary configured")
}

func TestRunEngineFailure(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)
	fake := filepath.Join(dir, "karstnsim")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\nexit 7\n"), 0o755))

	code, _, _ := run(t, "run", export,
		"--engine", fake,
		"--workdir", dir,
		"-o", filepath.Join(dir, "out.txt"))
	assert.Equal(t, ExitEngine, code)
}

func TestRunUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)
	code, _, _ := run(t, "run", export, "--dry-run",
		"-o", filepath.Join(dir, "no", "such", "dir", "out.txt"))
	assert.Equal(t, ExitWrite, code)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)
	outDir := filepath.Join(dir, "staged")

	code, _, errOut := run(t, "convert", export, "--out-dir", outDir)
	require.Equal(t, ExitOK, code, errOut)

	for _, name := range []string{
		"params.txt", "box.txt", "surface.txt", "springs.txt",
		"sinks.txt", "connectivity.txt", "water_table_1.txt",
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestInspectText(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)

	code, out, _ := run(t, "inspect", export)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Limestone")
	assert.Contains(t, out, "2 x 2 x 2 voxels")
}

func TestInspectJSON(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)

	code, out, _ := run(t, "inspect", export, "--format", "json")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, `"groundwaterBodies": 1`)

	code, _, _ = run(t, "inspect", export, "--format", "xml")
	assert.Equal(t, ExitUsage, code)
}

func TestInterruptedContext(t *testing.T) {
	dir := t.TempDir()
	export := writeExport(t, dir, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	code := RunContext(ctx, []string{"run", export, "--dry-run", "-o", filepath.Join(dir, "o.txt")}, &out, &errOut)
	assert.Equal(t, ExitSignal, code)
}

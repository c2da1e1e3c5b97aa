// internal/vkzip/reader.go
package vkzip

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vkbridge-core/geom"
	"vkbridge-core/grid"
	"vkbridge-core/surface"
	"vkbridge-core/voxel"

	"vkbridge/internal/params"
)

// Project is the fully decoded content of a Visual KARSYS export.
type Project struct {
	Params       params.Parameters
	Box          ProjectBox
	DEMRes       DEMResolution // as exported, before resampling
	DEM          *grid.Grid    // resampled to compute resolution, row 0 = min y
	SurfaceResX  float64       // DEM cell sizes in box coordinates
	SurfaceResY  float64
	Stratigraphy []GeologicalUnit
	VoxelUnits   []int
	Voxels       *voxel.Grid
	Resolution   geom.Index3 // compute resolution (voxel grid shape)
	Springs      []Spring
	GWBs         []GroundwaterBody
	Inceptions   []*surface.Surface
}

// Read decodes every expected member of the export. fsys is typically a
// *zip.Reader. Repeated members (faults, springs, groundwater bodies) are
// decoded concurrently; their order follows the sorted member names so runs
// are reproducible.
func Read(ctx context.Context, fsys fs.FS, log *zap.Logger) (*Project, error) {
	p := &Project{Params: params.Defaults()}

	if data, err := fs.ReadFile(fsys, "config.json"); err == nil {
		if err := p.Params.DecodeManifest(data); err != nil {
			return nil, err
		}
	} else if errors.Is(err, fs.ErrNotExist) {
		log.Warn("export has no config.json, using default simulation parameters")
	} else {
		return nil, fmt.Errorf("config.json: %w", err)
	}

	if err := readJSON(fsys, "project_box.json", &p.Box); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, "dem_resolution.json", &p.DEMRes); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, "stratigraphy.json", &p.Stratigraphy); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, "voxels_units.json", &p.VoxelUnits); err != nil {
		return nil, err
	}

	vf, err := fsys.Open("voxels.txt")
	if err != nil {
		return nil, fmt.Errorf("voxels.txt: %w", err)
	}
	p.Voxels, err = voxel.Parse(vf)
	_ = vf.Close()
	if err != nil {
		return nil, err
	}
	p.Resolution = geom.Index3{X: p.Voxels.NX, Y: p.Voxels.NY, Z: p.Voxels.NZ}
	log.Info("loaded voxel model",
		zap.Int("nx", p.Voxels.NX), zap.Int("ny", p.Voxels.NY), zap.Int("nz", p.Voxels.NZ))

	if err := p.loadDEM(fsys, log); err != nil {
		return nil, err
	}

	if err := p.loadRepeated(ctx, fsys, log); err != nil {
		return nil, err
	}
	return p, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// loadDEM decodes dem_values.bin (little-endian float32, row-major at the
// exported resolution), subsamples it to the compute resolution and flips
// it so row 0 sits at minimum y.
func (p *Project) loadDEM(fsys fs.FS, log *zap.Logger) error {
	raw, err := fs.ReadFile(fsys, "dem_values.bin")
	if err != nil {
		return fmt.Errorf("dem_values.bin: %w", err)
	}
	if len(raw)%4 != 0 {
		return fmt.Errorf("dem_values.bin: %d bytes is not a float32 array", len(raw))
	}
	vals := make([]float32, len(raw)/4)
	for i := range vals {
		vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	full, err := grid.New(vals, p.DEMRes.NRows, p.DEMRes.NCols)
	if err != nil {
		return fmt.Errorf("dem_values.bin: %w", err)
	}

	rowStep := p.DEMRes.NRows / p.Resolution.Y
	colStep := p.DEMRes.NCols / p.Resolution.X
	dem := full.Stride(rowStep, colStep).FlipRows()
	if dem.Rows < 2 || dem.Cols < 2 {
		return fmt.Errorf("resampled DEM is %dx%d, need at least 2x2", dem.Rows, dem.Cols)
	}
	p.DEM = dem
	p.SurfaceResX = p.Box.Width / float64(dem.Cols-1)
	p.SurfaceResY = p.Box.Height / float64(dem.Rows-1)
	log.Info("resampled DEM",
		zap.Int("rows", dem.Rows), zap.Int("cols", dem.Cols),
		zap.Float64("res_x", p.SurfaceResX), zap.Float64("res_y", p.SurfaceResY))
	return nil
}

// loadRepeated decodes the globbed members concurrently, keeping name order.
func (p *Project) loadRepeated(ctx context.Context, fsys fs.FS, log *zap.Logger) error {
	springFiles, err := sortedGlob(fsys, "poi_*.json")
	if err != nil {
		return err
	}
	gwbFiles, err := sortedGlob(fsys, "gwb_*.json")
	if err != nil {
		return err
	}
	faultFiles, err := sortedGlob(fsys, "fault_*.bin")
	if err != nil {
		return err
	}

	p.Springs = make([]Spring, len(springFiles))
	p.GWBs = make([]GroundwaterBody, len(gwbFiles))
	p.Inceptions = make([]*surface.Surface, len(faultFiles))

	g, _ := errgroup.WithContext(ctx)
	for i, name := range springFiles {
		g.Go(func() error { return readJSON(fsys, name, &p.Springs[i]) })
	}
	for i, name := range gwbFiles {
		g.Go(func() error { return readJSON(fsys, name, &p.GWBs[i]) })
	}
	for i, name := range faultFiles {
		g.Go(func() error {
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			s, err := decodeFault(data)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			p.Inceptions[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("loaded export members",
		zap.Int("springs", len(p.Springs)),
		zap.Int("groundwater_bodies", len(p.GWBs)),
		zap.Int("inception_surfaces", len(p.Inceptions)))
	return nil
}

func sortedGlob(fsys fs.FS, pattern string) ([]string, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

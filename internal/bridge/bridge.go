// internal/bridge/bridge.go
//
// Package bridge orchestrates one pass through the pipeline: decoded
// export on one side, engine input, network and run metadata on the other.
package bridge

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vkbridge-core/karst"
	"vkbridge-core/project"
	"vkbridge-core/surface"

	"vkbridge/internal/engine"
	"vkbridge/internal/validate"
	"vkbridge/internal/vkzip"
	"vkbridge/pkg/api"
)

// Result is a completed run.
type Result struct {
	Network *karst.Network
	Info    api.RunInfoV1
	Input   *engine.Input
}

// Prepare lowers a decoded export into one engine input set: compute box,
// topography, water tables, springs with their table assignments, sampled
// sinks and the connectivity matrix.
func Prepare(proj *vkzip.Project, debug bool, log *zap.Logger) (*engine.Input, error) {
	p := proj.Params
	if err := validate.SpringsInBox(proj.Springs, proj.Box); err != nil {
		return nil, err
	}

	units := make([]project.Unit, 0, len(proj.Stratigraphy))
	for _, u := range proj.Stratigraphy {
		units = append(units, project.Unit{
			Name:         u.Name,
			Permeability: project.Permeability(u.Permeability),
			StratiUnitID: u.StratiUnitID,
		})
	}
	table, unknownIDs := project.RankUnits(units, proj.VoxelUnits)
	for _, id := range unknownIDs {
		log.Warn("voxel export references a unit missing from the stratigraphy",
			zap.Int("strati_unit_id", id))
	}
	for rank := 0; rank < len(table); rank++ {
		if u, ok := table[rank]; ok {
			log.Debug("rank mapping",
				zap.Int("rank", rank),
				zap.String("unit", u.Name),
				zap.String("permeability", string(u.Permeability)))
		}
	}

	spec := project.Spec{
		Width:        proj.Box.Width,
		Height:       proj.Box.Height,
		MinElevation: proj.Box.MinElevation,
		MaxElevation: proj.Box.MaxElevation,
	}
	base := p.RMinPervious.Resolve(float64(proj.Resolution.Z) / proj.Box.Depth())
	box, unknownRanks, err := project.BuildBox(spec, table, proj.Voxels, proj.Resolution, project.BuildConfig{
		RMinPervious:   base,
		RMinImpervious: p.RMinImpervious.Resolve(base * p.DensitySamplingModifier),
	})
	if err != nil {
		return nil, err
	}
	for _, rank := range unknownRanks {
		log.Warn("voxels carry a rank with no unit, cells left unset", zap.Int("rank", rank))
	}

	topo, err := surface.FromGrid(proj.DEM, proj.Box.Width, proj.Box.Height)
	if err != nil {
		return nil, fmt.Errorf("topography: %w", err)
	}

	tables, droppedGWBs, err := surface.WaterTables(
		proj.Voxels, proj.Box.Width, proj.Box.Height, proj.Box.Depth(), proj.Box.MinElevation)
	if err != nil {
		return nil, err
	}
	for _, gwb := range droppedGWBs {
		log.Warn("groundwater body yields no water table surface", zap.Int("gwb_id", gwb))
	}
	tableOrder := make([]int, 0, len(tables))
	waterTables := make([]*surface.Surface, 0, len(tables))
	for _, t := range tables {
		tableOrder = append(tableOrder, t.GWB)
		waterTables = append(waterTables, t.Surface)
	}

	springs, err := validate.AssignWaterTables(proj.Springs, proj.GWBs, tableOrder)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(uint64(p.Seed), 0))
	sinks, conn, err := karst.PlaceSinks(karst.PlaceConfig{
		N:          p.NSinks,
		Catchments: validate.Catchments(proj.Springs),
		DEM:        proj.DEM,
		ResX:       proj.SurfaceResX,
		ResY:       proj.SurfaceResY,
	}, rng)
	if err != nil {
		return nil, err
	}
	log.Info("prepared engine input",
		zap.Int("springs", len(springs)),
		zap.Int("sinks", len(sinks)),
		zap.Int("water_tables", len(waterTables)),
		zap.Int("inception_surfaces", len(proj.Inceptions)))

	cfg, radiusAuto, distAuto := engine.BuildConfig(p, box, debug)
	if radiusAuto {
		log.Info("auto-setting neighbor search radius", zap.Float64("radius", cfg.NghbRadius))
	}
	if distAuto {
		log.Info("auto-setting max inception surface distance", zap.Float64("distance", cfg.MaxInceptionDistance))
	}

	return &engine.Input{
		Config:       cfg,
		Box:          box,
		Topo:         topo,
		WaterTables:  waterTables,
		Inceptions:   proj.Inceptions,
		Springs:      springs,
		Sinks:        sinks,
		Connectivity: conn,
	}, nil
}

// Run prepares the input, runs the engine and assembles the run metadata.
func Run(ctx context.Context, proj *vkzip.Project, eng engine.Engine, debug bool, log *zap.Logger) (*Result, error) {
	in, err := Prepare(proj, debug, log)
	if err != nil {
		return nil, err
	}

	log.Info("starting simulation",
		zap.Int("nx", proj.Resolution.X),
		zap.Int("ny", proj.Resolution.Y),
		zap.Int("nz", proj.Resolution.Z))
	start := time.Now()
	net, err := eng.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	log.Info("simulation completed",
		zap.Duration("elapsed", elapsed),
		zap.Int("segments", len(net.Segments)))

	info := api.RunInfoV1{
		Metadata: api.MetadataV1{
			RunID:               uuid.NewString(),
			GenerationTime:      time.Now().Format(time.RFC3339),
			GenerationDurationS: elapsed.Seconds(),
			ComputeResolution: api.ResolutionV1{
				X: proj.Resolution.X,
				Y: proj.Resolution.Y,
				Z: proj.Resolution.Z,
			},
		},
		Config: ConfigV1(proj.Params),
	}
	return &Result{Network: net, Info: info, Input: in}, nil
}

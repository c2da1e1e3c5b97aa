// internal/engine/engine.go
package engine

import (
	"context"
	"errors"

	"vkbridge-core/karst"
	"vkbridge-core/project"
	"vkbridge-core/surface"

	"vkbridge/internal/params"
)

// ErrEngine tags failures of the external simulation so the CLI can map
// the whole class to one exit code.
var ErrEngine = errors.New("engine failure")

// Config is the KarstNSim configuration derived from the user parameters
// and the project geometry.
type Config struct {
	NetworkName string
	Seed        int64
	KPts        int
	// fraction of sampling points kept inside karstified volumes
	FractionKarstPerm float64

	NghbRadius       float64
	UseMaxNghbRadius bool

	InceptionConstraintWeight float64
	MaxInceptionDistance      float64

	UseKarstificationPotential    bool
	KarstificationPotentialWeight float64
	RefineSurfaceSampling         int
	NbDeadendPoints               int
	CreateVsetSampling            bool
}

// autoScale turns the largest box cell dimension into a search distance.
const autoScale = 3.0

// BuildConfig maps user parameters onto the engine configuration. "auto"
// distances resolve to autoScale times the largest cell dimension. The two
// booleans report whether the radius and distance rules fired, for logging.
func BuildConfig(p params.Parameters, box *project.Box, debug bool) (Config, bool, bool) {
	auto := box.MaxCellSize() * autoScale
	cfg := Config{
		NetworkName:       p.Name,
		Seed:              p.Seed,
		KPts:              p.KPts,
		FractionKarstPerm: p.CohesionFactor,

		NghbRadius:       p.SearchRadius.Resolve(auto),
		UseMaxNghbRadius: true,

		InceptionConstraintWeight: p.InceptionSurfaceConstraintWeight,
		MaxInceptionDistance:      p.MaxInceptionSurfaceDistance.Resolve(auto),

		UseKarstificationPotential:    true,
		KarstificationPotentialWeight: 1.0,
		RefineSurfaceSampling:         1,
		CreateVsetSampling:            debug,
	}
	return cfg, p.SearchRadius.Auto, p.MaxInceptionSurfaceDistance.Auto
}

// Input is everything one simulation run needs.
type Input struct {
	Config Config

	Box         *project.Box
	Topo        *surface.Surface
	WaterTables []*surface.Surface
	Inceptions  []*surface.Surface

	Springs      []karst.Spring
	Sinks        []karst.Sink
	Connectivity karst.Connectivity
}

// Engine generates a conduit network from an input set. Implementations:
// Exec (the external KarstNSim binary) and Stub (tests, dry runs).
type Engine interface {
	Run(ctx context.Context, in *Input) (*karst.Network, error)
}

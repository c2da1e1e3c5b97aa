// internal/app/flags.go
package app

import (
	"errors"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"vkbridge/internal/engine"
	"vkbridge/internal/params"
)

// paramFlags mirrors the overridable simulation parameters. Only flags the
// user actually set are applied, so archive values survive untouched flags.
type paramFlags struct {
	settings string

	name             string
	seed             int64
	kPts             int
	cohesionFactor   float64
	nSinks           int
	searchRadius     params.AutoFloat
	inceptionWeight  float64
	maxInceptionDist params.AutoFloat
	densityModifier  float64
}

func (f *paramFlags) register(fs *pflag.FlagSet) {
	f.searchRadius = params.AutoValue()
	f.maxInceptionDist = params.AutoValue()

	fs.StringVar(&f.settings, "settings", "", "YAML file of parameter overrides")
	fs.StringVar(&f.name, "name", "", "name of the generated network")
	fs.Int64Var(&f.seed, "seed", 0, "simulation seed")
	fs.IntVar(&f.kPts, "k-pts", 0, "cost graph neighbor count")
	fs.Float64Var(&f.cohesionFactor, "cohesion-factor", 0, "fraction of sampling points kept in karstified volumes")
	fs.IntVar(&f.nSinks, "n-sinks", 0, "number of sinks to sample over the catchments")
	fs.Var(&f.searchRadius, "search-radius", "neighbor search radius, or 'auto'")
	fs.Float64Var(&f.inceptionWeight, "inception-surface-constraint-weight", 0, "weight of the inception surface constraint")
	fs.Var(&f.maxInceptionDist, "max-inception-surface-distance", "max distance to an inception surface, or 'auto'")
	fs.Float64Var(&f.densityModifier, "density-sampling-modifier", 0, "sampling density multiplier for impervious volumes")
}

// apply overlays env settings file, --settings file, then changed flags.
func (f *paramFlags) apply(fs *pflag.FlagSet, env params.Env, p *params.Parameters) error {
	settings := env.Settings
	if fs.Changed("settings") {
		settings = f.settings
	}
	if settings != "" {
		o, err := params.LoadSettings(settings)
		if err != nil {
			return err
		}
		o.ApplyTo(p)
	}
	f.overrides(fs).ApplyTo(p)
	return nil
}

func (f *paramFlags) overrides(fs *pflag.FlagSet) params.Overrides {
	var o params.Overrides
	if fs.Changed("name") {
		o.Name = &f.name
	}
	if fs.Changed("seed") {
		o.Seed = &f.seed
	}
	if fs.Changed("k-pts") {
		o.KPts = &f.kPts
	}
	if fs.Changed("cohesion-factor") {
		o.CohesionFactor = &f.cohesionFactor
	}
	if fs.Changed("n-sinks") {
		o.NSinks = &f.nSinks
	}
	if fs.Changed("search-radius") {
		o.SearchRadius = &f.searchRadius
	}
	if fs.Changed("inception-surface-constraint-weight") {
		o.InceptionSurfaceConstraintWeight = &f.inceptionWeight
	}
	if fs.Changed("max-inception-surface-distance") {
		o.MaxInceptionSurfaceDistance = &f.maxInceptionDist
	}
	if fs.Changed("density-sampling-modifier") {
		o.DensitySamplingModifier = &f.densityModifier
	}
	return o
}

// engineFlags select and configure the engine implementation.
type engineFlags struct {
	path    string
	workdir string
	keep    bool
	dryRun  bool
}

func (f *engineFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.path, "engine", "", "path to the KarstNSim binary (or VKBRIDGE_ENGINE)")
	fs.StringVar(&f.workdir, "workdir", "", "directory for engine scratch dirs (or VKBRIDGE_WORKDIR)")
	fs.BoolVar(&f.keep, "keep-workdir", false, "keep the engine scratch dir after the run")
	fs.BoolVar(&f.dryRun, "dry-run", false, "skip the real engine, generate a stub network")
}

func (f *engineFlags) build(fs *pflag.FlagSet, env params.Env, log *zap.Logger) (engine.Engine, error) {
	if f.dryRun {
		return engine.Stub{}, nil
	}
	path := env.Engine
	if fs.Changed("engine") {
		path = f.path
	}
	if path == "" {
		return nil, errors.New("no engine binary configured: set --engine or VKBRIDGE_ENGINE, or pass --dry-run")
	}
	workdir := env.Workdir
	if fs.Changed("workdir") {
		workdir = f.workdir
	}
	return &engine.Exec{
		Path:    path,
		Workdir: workdir,
		Keep:    f.keep || env.KeepWorkdir,
		Log:     log,
	}, nil
}

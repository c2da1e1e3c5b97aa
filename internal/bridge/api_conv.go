// internal/bridge/api_conv.go
package bridge

import (
	"vkbridge/internal/params"
	"vkbridge/internal/vkzip"
	"vkbridge/pkg/api"
)

// ConfigV1 converts simulation parameters to the stable wire schema (v1).
func ConfigV1(p params.Parameters) api.ConfigV1 {
	return api.ConfigV1{
		Name:                             p.Name,
		Seed:                             p.Seed,
		KPts:                             p.KPts,
		CohesionFactor:                   p.CohesionFactor,
		NSinks:                           p.NSinks,
		SearchRadius:                     autoV1(p.SearchRadius),
		InceptionSurfaceConstraintWeight: p.InceptionSurfaceConstraintWeight,
		MaxInceptionSurfaceDistance:      autoV1(p.MaxInceptionSurfaceDistance),
		DensitySamplingModifier:          p.DensitySamplingModifier,
	}
}

func autoV1(a params.AutoFloat) api.AutoValueV1 {
	return api.AutoValueV1{Auto: a.Auto, Value: a.Value}
}

// Summarize builds the inspect view of a decoded export.
func Summarize(archive string, proj *vkzip.Project) api.SummaryV1 {
	s := api.SummaryV1{
		Archive: archive,
		Box: api.BoxV1{
			Width:        proj.Box.Width,
			Height:       proj.Box.Height,
			MinElevation: proj.Box.MinElevation,
			MaxElevation: proj.Box.MaxElevation,
		},
		Resolution: api.ResolutionV1{
			X: proj.Resolution.X,
			Y: proj.Resolution.Y,
			Z: proj.Resolution.Z,
		},
		DEM:               api.DEMV1{Rows: proj.DEM.Rows, Cols: proj.DEM.Cols},
		Springs:           len(proj.Springs),
		GroundwaterBodies: len(proj.GWBs),
		InceptionSurfaces: len(proj.Inceptions),
		Config:            ConfigV1(proj.Params),
	}
	for _, u := range proj.Stratigraphy {
		s.Units = append(s.Units, api.UnitV1{Name: u.Name, Permeability: u.Permeability})
	}
	return s
}

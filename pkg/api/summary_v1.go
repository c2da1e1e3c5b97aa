// pkg/api/summary_v1.go
package api

// SummaryV1 is the stable schema of `inspect --format json`.
type SummaryV1 struct {
	Archive    string       `json:"archive"`
	Box        BoxV1        `json:"box"`
	Resolution ResolutionV1 `json:"resolution"`
	DEM        DEMV1        `json:"dem"`

	Units             []UnitV1 `json:"units"`
	Springs           int      `json:"springs"`
	GroundwaterBodies int      `json:"groundwaterBodies"`
	InceptionSurfaces int      `json:"inceptionSurfaces"`

	Config ConfigV1 `json:"config"`
}

// BoxV1 is the project bounding box.
type BoxV1 struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MinElevation float64 `json:"minElevation"`
	MaxElevation float64 `json:"maxElevation"`
}

// DEMV1 is the terrain raster shape after resampling.
type DEMV1 struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// UnitV1 is one geological unit of the stratigraphy.
type UnitV1 struct {
	Name         string `json:"name"`
	Permeability string `json:"permeability"`
}

// internal/vkzip/models.go
package vkzip

// JSON member schemas of the Visual KARSYS export. Most members use
// snake_case keys; stratigraphy.json is the camelCase outlier.

// ProjectBox is project_box.json.
type ProjectBox struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MinElevation float64 `json:"min_elevation"`
	MaxElevation float64 `json:"max_elevation"`
}

// Depth is the vertical extent of the box.
func (b ProjectBox) Depth() float64 { return b.MaxElevation - b.MinElevation }

// DEMResolution is dem_resolution.json.
type DEMResolution struct {
	NCols int `json:"n_cols"`
	NRows int `json:"n_rows"`
}

// Spring is one poi_*.json member: an outlet with its catchment polygon.
type Spring struct {
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Z         float64      `json:"z"`
	POIID     int          `json:"poi_id"`
	Catchment [][2]float64 `json:"catchment"`
}

// GroundwaterBody is one gwb_*.json member, tying a body to its spring.
type GroundwaterBody struct {
	GWBID    int `json:"gwb_id"`
	SpringID int `json:"spring_id"`
}

// GeologicalUnit is one entry of stratigraphy.json (camelCase keys).
type GeologicalUnit struct {
	Name         string `json:"name"`
	Permeability string `json:"permeability"`
	StratiUnitID int    `json:"stratiUnitId"`
}

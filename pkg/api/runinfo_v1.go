// pkg/api/runinfo_v1.go
package api

import (
	"encoding/json"
	"fmt"
)

// RunInfoV1 is the stable schema of the "# Run info" block of a generated
// network file. Visual KARSYS parses this on import: keep fields, names,
// and types stable; add new fields only with ",omitempty".
type RunInfoV1 struct {
	Metadata MetadataV1 `json:"metadata"`
	Config   ConfigV1   `json:"config"`
}

// MetadataV1 describes one generation run.
type MetadataV1 struct {
	RunID               string       `json:"runId"`
	GenerationTime      string       `json:"generationTime"` // RFC 3339
	GenerationDurationS float64      `json:"generationDurationS"`
	ComputeResolution   ResolutionV1 `json:"computeResolution"`
}

// ResolutionV1 is a voxel lattice shape.
type ResolutionV1 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// ConfigV1 echoes the simulation parameters the run used, camelCase as
// Visual KARSYS emits and expects them.
type ConfigV1 struct {
	Name                             string      `json:"name"`
	Seed                             int64       `json:"seed"`
	KPts                             int         `json:"kPts"`
	CohesionFactor                   float64     `json:"cohesionFactor"`
	NSinks                           int         `json:"nSinks"`
	SearchRadius                     AutoValueV1 `json:"searchRadius"`
	InceptionSurfaceConstraintWeight float64     `json:"inceptionSurfaceConstraintWeight"`
	MaxInceptionSurfaceDistance      AutoValueV1 `json:"maxInceptionSurfaceDistance"`
	DensitySamplingModifier          float64     `json:"densitySamplingModifier"`
}

// AutoValueV1 serializes as the string "auto" or a plain JSON number.
type AutoValueV1 struct {
	Auto  bool
	Value float64
}

func (a AutoValueV1) MarshalJSON() ([]byte, error) {
	if a.Auto {
		return json.Marshal("auto")
	}
	return json.Marshal(a.Value)
}

func (a *AutoValueV1) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "auto" {
			return fmt.Errorf("api: want \"auto\" or a number, got %q", s)
		}
		*a = AutoValueV1{Auto: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("api: want \"auto\" or a number, got %s", data)
	}
	*a = AutoValueV1{Value: v}
	return nil
}

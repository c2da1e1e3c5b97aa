// internal/params/params.go
package params

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AutoFloat is a parameter that is either an explicit value or "auto",
// resolved later from the project geometry. It marshals as the string
// "auto" or a bare number (matching the Visual KARSYS manifest), and
// doubles as a pflag.Value so it can be set from the command line.
type AutoFloat struct {
	Auto  bool
	Value float64
}

// Auto is the zero value spelled out.
func AutoValue() AutoFloat { return AutoFloat{Auto: true} }

// Float returns an explicit value.
func Float(v float64) AutoFloat { return AutoFloat{Value: v} }

// Resolve returns the explicit value, or fallback when auto.
func (a AutoFloat) Resolve(fallback float64) float64 {
	if a.Auto {
		return fallback
	}
	return a.Value
}

func (a AutoFloat) String() string {
	if a.Auto {
		return "auto"
	}
	return strconv.FormatFloat(a.Value, 'g', -1, 64)
}

// Set implements pflag.Value.
func (a *AutoFloat) Set(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		*a = AutoFloat{Auto: true}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be either 'auto' or a number")
	}
	*a = AutoFloat{Value: v}
	return nil
}

// Type implements pflag.Value.
func (a *AutoFloat) Type() string { return "auto|float" }

func (a AutoFloat) MarshalJSON() ([]byte, error) {
	if a.Auto {
		return json.Marshal("auto")
	}
	return json.Marshal(a.Value)
}

func (a *AutoFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return a.Set(s)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("must be either \"auto\" or a number")
	}
	*a = AutoFloat{Value: v}
	return nil
}

func (a AutoFloat) MarshalYAML() (interface{}, error) {
	if a.Auto {
		return "auto", nil
	}
	return a.Value, nil
}

func (a *AutoFloat) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		return a.Set(s)
	}
	var v float64
	if err := unmarshal(&v); err != nil {
		return fmt.Errorf("must be either \"auto\" or a number")
	}
	*a = AutoFloat{Value: v}
	return nil
}

// Parameters are the user-facing simulation knobs, merged from defaults,
// the archive manifest (camelCase JSON), the optional settings file and
// command-line overrides, in that order.
type Parameters struct {
	Name                             string    `json:"name" yaml:"name"`
	Seed                             int64     `json:"seed" yaml:"seed"`
	KPts                             int       `json:"kPts" yaml:"k_pts"`
	CohesionFactor                   float64   `json:"cohesionFactor" yaml:"cohesion_factor"`
	NSinks                           int       `json:"nSinks" yaml:"n_sinks"`
	SearchRadius                     AutoFloat `json:"searchRadius" yaml:"search_radius"`
	InceptionSurfaceConstraintWeight float64   `json:"inceptionSurfaceConstraintWeight" yaml:"inception_surface_constraint_weight"`
	MaxInceptionSurfaceDistance      AutoFloat `json:"maxInceptionSurfaceDistance" yaml:"max_inception_surface_distance"`
	DensitySamplingModifier          float64   `json:"densitySamplingModifier" yaml:"density_sampling_modifier"`
	RMinPervious                     AutoFloat `json:"rMinPervious" yaml:"r_min_pervious"`
	RMinImpervious                   AutoFloat `json:"rMinImpervious" yaml:"r_min_impervious"`
}

// Defaults mirror the Visual KARSYS manifest defaults.
func Defaults() Parameters {
	return Parameters{
		Name:                             "Karst Network",
		Seed:                             42,
		KPts:                             10,
		CohesionFactor:                   0.9,
		NSinks:                           100,
		SearchRadius:                     AutoValue(),
		InceptionSurfaceConstraintWeight: 1.0,
		MaxInceptionSurfaceDistance:      AutoValue(),
		DensitySamplingModifier:          2.0,
		RMinPervious:                     AutoValue(),
		RMinImpervious:                   AutoValue(),
	}
}

// DecodeManifest overlays the archive config.json onto p. Unknown keys are
// tolerated; the manifest only needs to mention what it changes.
func (p *Parameters) DecodeManifest(data []byte) error {
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("config.json: %w", err)
	}
	return nil
}

// internal/params/overrides.go
package params

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides is a sparse set of parameter changes: only non-nil fields are
// applied. The settings file and the CLI both produce one of these.
type Overrides struct {
	Name                             *string    `yaml:"name"`
	Seed                             *int64     `yaml:"seed"`
	KPts                             *int       `yaml:"k_pts"`
	CohesionFactor                   *float64   `yaml:"cohesion_factor"`
	NSinks                           *int       `yaml:"n_sinks"`
	SearchRadius                     *AutoFloat `yaml:"search_radius"`
	InceptionSurfaceConstraintWeight *float64   `yaml:"inception_surface_constraint_weight"`
	MaxInceptionSurfaceDistance      *AutoFloat `yaml:"max_inception_surface_distance"`
	DensitySamplingModifier          *float64   `yaml:"density_sampling_modifier"`
	RMinPervious                     *AutoFloat `yaml:"r_min_pervious"`
	RMinImpervious                   *AutoFloat `yaml:"r_min_impervious"`
}

// Empty reports whether no field is set.
func (o Overrides) Empty() bool {
	return o == Overrides{}
}

// ApplyTo overlays the set fields onto p.
func (o Overrides) ApplyTo(p *Parameters) {
	if o.Name != nil {
		p.Name = *o.Name
	}
	if o.Seed != nil {
		p.Seed = *o.Seed
	}
	if o.KPts != nil {
		p.KPts = *o.KPts
	}
	if o.CohesionFactor != nil {
		p.CohesionFactor = *o.CohesionFactor
	}
	if o.NSinks != nil {
		p.NSinks = *o.NSinks
	}
	if o.SearchRadius != nil {
		p.SearchRadius = *o.SearchRadius
	}
	if o.InceptionSurfaceConstraintWeight != nil {
		p.InceptionSurfaceConstraintWeight = *o.InceptionSurfaceConstraintWeight
	}
	if o.MaxInceptionSurfaceDistance != nil {
		p.MaxInceptionSurfaceDistance = *o.MaxInceptionSurfaceDistance
	}
	if o.DensitySamplingModifier != nil {
		p.DensitySamplingModifier = *o.DensitySamplingModifier
	}
	if o.RMinPervious != nil {
		p.RMinPervious = *o.RMinPervious
	}
	if o.RMinImpervious != nil {
		p.RMinImpervious = *o.RMinImpervious
	}
}

// LoadSettings reads a YAML settings file into an override set.
func LoadSettings(path string) (Overrides, error) {
	var o Overrides
	data, err := os.ReadFile(path)
	if err != nil {
		return o, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Overrides{}, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

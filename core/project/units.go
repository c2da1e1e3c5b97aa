// core/project/units.go
package project

// Permeability classes exported by Visual KARSYS for geological units.
type Permeability string

const (
	Karstified            Permeability = "Karstified"
	NonKarstified         Permeability = "NonKarstified"
	PorousPermeability    Permeability = "PorousPermeability"
	UndefinedPermeability Permeability = "Undefined"
)

// Potential maps a permeability class to its karstification potential.
// Unknown classes report ok=false so callers can warn and fall back.
func (p Permeability) Potential() (float64, bool) {
	switch p {
	case Karstified:
		return 0.5, true
	case NonKarstified, PorousPermeability, UndefinedPermeability:
		return 0.0, true
	default:
		return 0, false
	}
}

// Unit is one stratigraphic unit of the project.
type Unit struct {
	Name         string
	Permeability Permeability
	StratiUnitID int
}

// Synthetic units injected into the rank table: the air above the model and
// the filler unit Visual KARSYS adds when the unit list is short one entry.
var (
	skyUnit   = Unit{Name: "Sky", Permeability: NonKarstified}
	dummyUnit = Unit{Name: "Dummy", Permeability: UndefinedPermeability}
)

// RankUnits maps voxel ranks to units. unitOrder lists strati unit ids from
// the voxel export, rank 1 first; rank 0 is always the sky. When unitOrder
// is shorter than the unit list, the highest rank becomes the dummy unit.
// Unknown ids are skipped and returned for the caller to warn about.
func RankUnits(units []Unit, unitOrder []int) (map[int]Unit, []int) {
	table := map[int]Unit{0: skyUnit}
	var unknown []int
	for j, id := range unitOrder {
		found := false
		for _, u := range units {
			if u.StratiUnitID == id {
				table[j+1] = u
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, id)
		}
	}
	if len(unitOrder) < len(units) {
		table[len(units)] = dummyUnit
	}
	return table, unknown
}

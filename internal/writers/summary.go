// internal/writers/summary.go
package writers

import (
	"fmt"
	"io"
	"text/tabwriter"

	"vkbridge/internal/jsonutil"
	"vkbridge/pkg/api"
)

func init() {
	RegisterSummary("text", writeSummaryText)
	RegisterSummary("json", func(w io.Writer, s api.SummaryV1) error {
		return jsonutil.EncodePretty(w, s)
	})
}

// writeSummaryText prints a human-oriented member-by-member overview.
func writeSummaryText(w io.Writer, s api.SummaryV1) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "archive\t%s\n", s.Archive)
	fmt.Fprintf(tw, "box\t%g x %g m, elevation %g..%g m\n",
		s.Box.Width, s.Box.Height, s.Box.MinElevation, s.Box.MaxElevation)
	fmt.Fprintf(tw, "resolution\t%d x %d x %d voxels\n",
		s.Resolution.X, s.Resolution.Y, s.Resolution.Z)
	fmt.Fprintf(tw, "dem\t%d x %d samples\n", s.DEM.Rows, s.DEM.Cols)
	fmt.Fprintf(tw, "springs\t%d\n", s.Springs)
	fmt.Fprintf(tw, "groundwater bodies\t%d\n", s.GroundwaterBodies)
	fmt.Fprintf(tw, "inception surfaces\t%d\n", s.InceptionSurfaces)
	fmt.Fprintf(tw, "units\t%d\n", len(s.Units))
	for _, u := range s.Units {
		fmt.Fprintf(tw, "  %s\t%s\n", u.Name, u.Permeability)
	}
	fmt.Fprintf(tw, "config\t\n")
	fmt.Fprintf(tw, "  name\t%s\n", s.Config.Name)
	fmt.Fprintf(tw, "  seed\t%d\n", s.Config.Seed)
	fmt.Fprintf(tw, "  kPts\t%d\n", s.Config.KPts)
	fmt.Fprintf(tw, "  cohesionFactor\t%g\n", s.Config.CohesionFactor)
	fmt.Fprintf(tw, "  nSinks\t%d\n", s.Config.NSinks)
	fmt.Fprintf(tw, "  searchRadius\t%s\n", autoString(s.Config.SearchRadius))
	fmt.Fprintf(tw, "  inceptionSurfaceConstraintWeight\t%g\n", s.Config.InceptionSurfaceConstraintWeight)
	fmt.Fprintf(tw, "  maxInceptionSurfaceDistance\t%s\n", autoString(s.Config.MaxInceptionSurfaceDistance))
	fmt.Fprintf(tw, "  densitySamplingModifier\t%g\n", s.Config.DensitySamplingModifier)
	return tw.Flush()
}

func autoString(a api.AutoValueV1) string {
	if a.Auto {
		return "auto"
	}
	return fmt.Sprintf("%g", a.Value)
}

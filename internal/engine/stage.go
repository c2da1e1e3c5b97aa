// internal/engine/stage.go
package engine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"vkbridge-core/karstfmt"
)

// Staged input file names inside a run directory. The params manifest
// refers to them by these relative names.
const (
	FileParams       = "params.txt"
	FileBox          = "box.txt"
	FileTopo         = "surface.txt"
	FileSprings      = "springs.txt"
	FileSinks        = "sinks.txt"
	FileConnectivity = "connectivity.txt"
)

// FileNetwork is where the engine leaves its result, relative to the
// run directory.
const FileNetwork = "output/network.txt"

// WaterTableFile and InceptionFile name the i-th (1-based) indexed inputs.
func WaterTableFile(i int) string { return fmt.Sprintf("water_table_%d.txt", i) }
func InceptionFile(i int) string  { return fmt.Sprintf("inception_surface_%d.txt", i) }

// Stage writes every input file of a run into dir, returning the list of
// files written (relative names, manifest first).
func Stage(dir string, in *Input) ([]string, error) {
	files := []string{FileParams}

	writeTo := func(name string, fn func(io.Writer) error) error {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("stage %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("stage %s: %w", name, err)
		}
		files = append(files, name)
		return nil
	}

	if err := writeTo(FileBox, func(w io.Writer) error { return karstfmt.WriteBox(w, in.Box) }); err != nil {
		return nil, err
	}
	if err := writeTo(FileTopo, func(w io.Writer) error { return karstfmt.WriteSurface(w, in.Topo) }); err != nil {
		return nil, err
	}
	if err := writeTo(FileSprings, func(w io.Writer) error { return karstfmt.WriteSprings(w, in.Springs) }); err != nil {
		return nil, err
	}
	if err := writeTo(FileSinks, func(w io.Writer) error { return karstfmt.WriteSinks(w, in.Sinks) }); err != nil {
		return nil, err
	}
	if err := writeTo(FileConnectivity, func(w io.Writer) error { return karstfmt.WriteConnectivity(w, in.Connectivity) }); err != nil {
		return nil, err
	}
	for i, wt := range in.WaterTables {
		s := wt
		if err := writeTo(WaterTableFile(i+1), func(w io.Writer) error { return karstfmt.WriteSurface(w, s) }); err != nil {
			return nil, err
		}
	}
	for i, is := range in.Inceptions {
		s := is
		if err := writeTo(InceptionFile(i+1), func(w io.Writer) error { return karstfmt.WriteSurface(w, s) }); err != nil {
			return nil, err
		}
	}

	f, err := os.Create(filepath.Join(dir, FileParams))
	if err != nil {
		return nil, err
	}
	if err := writeManifest(f, in); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stage %s: %w", FileParams, err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return files, nil
}

// writeManifest emits the "key: value" instruction file the engine reads.
func writeManifest(w io.Writer, in *Input) error {
	bw := bufio.NewWriter(w)
	c := in.Config
	put := func(key, val string) { fmt.Fprintf(bw, "%s: %s\n", key, val) }
	putf := func(key string, v float64) { put(key, strconv.FormatFloat(v, 'g', -1, 64)) }
	putb := func(key string, v bool) { put(key, strconv.FormatBool(v)) }

	put("karstic_network_name", c.NetworkName)
	put("selected_seed", strconv.FormatInt(c.Seed, 10))
	put("k_pts", strconv.Itoa(c.KPts))
	putf("fraction_karst_perm", c.FractionKarstPerm)
	putf("nghb_radius", c.NghbRadius)
	putb("use_max_nghb_radius", c.UseMaxNghbRadius)
	putf("inception_surface_constraint_weight", c.InceptionConstraintWeight)
	putf("max_inception_surface_distance", c.MaxInceptionDistance)
	putb("use_karstification_potential", c.UseKarstificationPotential)
	putf("karstification_potential_weight", c.KarstificationPotentialWeight)
	put("refine_surface_sampling", strconv.Itoa(c.RefineSurfaceSampling))
	put("nb_deadend_points", strconv.Itoa(c.NbDeadendPoints))
	putb("create_vset_sampling", c.CreateVsetSampling)

	put("domain", FileBox)
	put("topo_surface", FileTopo)
	put("springs", FileSprings)
	put("sinks", FileSinks)
	put("connectivity_matrix", FileConnectivity)
	put("nb_water_tables", strconv.Itoa(len(in.WaterTables)))
	for i := range in.WaterTables {
		put(fmt.Sprintf("water_table_%d", i+1), WaterTableFile(i+1))
	}
	put("nb_inception_surfaces", strconv.Itoa(len(in.Inceptions)))
	for i := range in.Inceptions {
		put(fmt.Sprintf("inception_surface_%d", i+1), InceptionFile(i+1))
	}
	return bw.Flush()
}

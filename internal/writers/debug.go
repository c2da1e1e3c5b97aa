// internal/writers/debug.go
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vkbridge-core/karst"
	"vkbridge-core/karstfmt"

	"vkbridge/internal/engine"
)

// WriteDebug dumps every engine input, and the network when one exists,
// as debug_*.txt files under dir. It returns the files written.
func WriteDebug(dir string, in *engine.Input, net *karst.Network) ([]string, error) {
	var files []string
	dump := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("dump %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("dump %s: %w", name, err)
		}
		files = append(files, name)
		return nil
	}

	if err := dump("debug_project_box.txt", func(w io.Writer) error {
		return karstfmt.WriteBox(w, in.Box)
	}); err != nil {
		return nil, err
	}
	if err := dump("debug_surface.txt", func(w io.Writer) error {
		return karstfmt.WriteSurface(w, in.Topo)
	}); err != nil {
		return nil, err
	}
	if err := dump("debug_springs.txt", func(w io.Writer) error {
		return karstfmt.WriteSprings(w, in.Springs)
	}); err != nil {
		return nil, err
	}
	if err := dump("debug_sinks.txt", func(w io.Writer) error {
		return karstfmt.WriteSinks(w, in.Sinks)
	}); err != nil {
		return nil, err
	}
	if err := dump("debug_connectivity_matrix.txt", func(w io.Writer) error {
		return karstfmt.WriteConnectivity(w, in.Connectivity)
	}); err != nil {
		return nil, err
	}
	for i, wt := range in.WaterTables {
		s := wt
		name := fmt.Sprintf("debug_water_table_%d.txt", i+1)
		if err := dump(name, func(w io.Writer) error { return karstfmt.WriteSurface(w, s) }); err != nil {
			return nil, err
		}
	}
	for i, is := range in.Inceptions {
		s := is
		name := fmt.Sprintf("debug_inception_surface_%d.txt", i+1)
		if err := dump(name, func(w io.Writer) error { return karstfmt.WriteSurface(w, s) }); err != nil {
			return nil, err
		}
	}
	if net != nil {
		if err := dump("debug_output.txt", func(w io.Writer) error {
			return karstfmt.WriteNetwork(w, net)
		}); err != nil {
			return nil, err
		}
	}
	return files, nil
}

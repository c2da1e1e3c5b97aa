// core/karstfmt/pointset.go
package karstfmt

import (
	"bufio"
	"fmt"
	"io"

	"vkbridge-core/geom"
	"vkbridge-core/karst"
)

// WriteSprings emits springs as a pointset with index, water table index
// and radius property columns.
func WriteSprings(w io.Writer, springs []karst.Spring) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# x y z index water_table radius")
	for _, s := range springs {
		fmt.Fprintf(bw, "%s %s %s %d %d %s\n",
			ftoa(s.Origin.X), ftoa(s.Origin.Y), ftoa(s.Origin.Z),
			s.Index, s.WaterTableIndex, ftoa(s.Radius))
	}
	return bw.Flush()
}

// ReadSprings parses the WriteSprings format.
func ReadSprings(r io.Reader, name string) ([]karst.Spring, error) {
	sc := newScanner(r, name)
	var out []karst.Spring
	for {
		f, ok, err := sc.maybeNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		v, err := sc.floats(f, 6)
		if err != nil {
			return nil, err
		}
		out = append(out, karst.Spring{
			Origin:          geom.Vec3{X: v[0], Y: v[1], Z: v[2]},
			Index:           int(v[3]),
			WaterTableIndex: int(v[4]),
			Radius:          v[5],
		})
	}
}

// WriteSinks emits sinks as a pointset with index, order and radius
// property columns.
func WriteSinks(w io.Writer, sinks []karst.Sink) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# x y z index order radius")
	for _, s := range sinks {
		fmt.Fprintf(bw, "%s %s %s %d %d %s\n",
			ftoa(s.Origin.X), ftoa(s.Origin.Y), ftoa(s.Origin.Z),
			s.Index, s.Order, ftoa(s.Radius))
	}
	return bw.Flush()
}

// ReadSinks parses the WriteSinks format.
func ReadSinks(r io.Reader, name string) ([]karst.Sink, error) {
	sc := newScanner(r, name)
	var out []karst.Sink
	for {
		f, ok, err := sc.maybeNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		v, err := sc.floats(f, 6)
		if err != nil {
			return nil, err
		}
		out = append(out, karst.Sink{
			Origin: geom.Vec3{X: v[0], Y: v[1], Z: v[2]},
			Index:  int(v[3]),
			Order:  int(v[4]),
			Radius: v[5],
		})
	}
}

// WriteConnectivity emits the sinks×springs flag matrix preceded by its
// shape.
func WriteConnectivity(w io.Writer, m karst.Connectivity) error {
	bw := bufio.NewWriter(w)
	cols := 0
	if len(m) > 0 {
		cols = len(m[0])
	}
	fmt.Fprintf(bw, "%d %d\n", len(m), cols)
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("connectivity: ragged row %d (%d columns, want %d)", i, len(row), cols)
		}
		for j, v := range row {
			if j > 0 {
				fmt.Fprint(bw, " ")
			}
			fmt.Fprintf(bw, "%d", v)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// ReadConnectivity parses the WriteConnectivity format.
func ReadConnectivity(r io.Reader, name string) (karst.Connectivity, error) {
	sc := newScanner(r, name)
	f, err := sc.next()
	if err != nil {
		return nil, err
	}
	hdr, err := sc.ints(f, 2)
	if err != nil {
		return nil, err
	}
	rows, cols := hdr[0], hdr[1]
	m := make(karst.Connectivity, 0, rows)
	for i := 0; i < rows; i++ {
		f, err := sc.next()
		if err != nil {
			return nil, err
		}
		row, err := sc.ints(f, cols)
		if err != nil {
			return nil, err
		}
		m = append(m, row)
	}
	return m, nil
}

// core/karstfmt/box.go
package karstfmt

import (
	"bufio"
	"fmt"
	"io"

	"vkbridge-core/geom"
	"vkbridge-core/project"
)

// WriteBox emits the simulation domain: frame vectors, cell counts, then a
// "density potential" line per cell in u-fastest order.
func WriteBox(w io.Writer, b *project.Box) error {
	bw := bufio.NewWriter(w)
	writeVec := func(tag string, v geom.Vec3) {
		fmt.Fprintf(bw, "%s %s %s %s\n", tag, ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
	}
	writeVec("basis", b.Basis)
	writeVec("u", b.U)
	writeVec("v", b.V)
	writeVec("w", b.W)
	fmt.Fprintf(bw, "cells %d %d %d\n", b.Cells.X, b.Cells.Y, b.Cells.Z)
	fmt.Fprintln(bw, "# density karstification_potential")
	for i := range b.Densities {
		fmt.Fprintf(bw, "%s %s\n", ftoa(b.Densities[i]), ftoa(b.Potential[i]))
	}
	return bw.Flush()
}

// ReadBox parses the WriteBox format.
func ReadBox(r io.Reader, name string) (*project.Box, error) {
	sc := newScanner(r, name)
	readVec := func(tag string) (geom.Vec3, error) {
		f, err := sc.next()
		if err != nil {
			return geom.Vec3{}, err
		}
		if len(f) != 4 || f[0] != tag {
			return geom.Vec3{}, sc.errf("expected %q vector line", tag)
		}
		v, err := sc.floats(f[1:], 3)
		if err != nil {
			return geom.Vec3{}, err
		}
		return geom.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	}

	var b project.Box
	var err error
	if b.Basis, err = readVec("basis"); err != nil {
		return nil, err
	}
	if b.U, err = readVec("u"); err != nil {
		return nil, err
	}
	if b.V, err = readVec("v"); err != nil {
		return nil, err
	}
	if b.W, err = readVec("w"); err != nil {
		return nil, err
	}

	f, err := sc.next()
	if err != nil {
		return nil, err
	}
	if len(f) != 4 || f[0] != "cells" {
		return nil, sc.errf("expected cells line")
	}
	c, err := sc.ints(f[1:], 3)
	if err != nil {
		return nil, err
	}
	b.Cells = geom.Index3{X: c[0], Y: c[1], Z: c[2]}
	n := b.Cells.Count()
	if n <= 0 {
		return nil, sc.errf("non-positive cell count %+v", b.Cells)
	}

	b.Densities = make([]float64, 0, n)
	b.Potential = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		f, err := sc.next()
		if err != nil {
			return nil, err
		}
		v, err := sc.floats(f, 2)
		if err != nil {
			return nil, err
		}
		b.Densities = append(b.Densities, v[0])
		b.Potential = append(b.Potential, v[1])
	}
	return &b, nil
}

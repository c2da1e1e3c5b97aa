// core/karstfmt/network.go
package karstfmt

import (
	"bufio"
	"fmt"
	"io"

	"vkbridge-core/geom"
	"vkbridge-core/karst"
)

// WriteNetwork emits a conduit network: "nnodes nsegments" header, node
// coordinate lines, then 0-based segment index pairs.
func WriteNetwork(w io.Writer, n *karst.Network) error {
	if err := n.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(n.Nodes), len(n.Segments))
	for _, v := range n.Nodes {
		fmt.Fprintf(bw, "%s %s %s\n", ftoa(v.X), ftoa(v.Y), ftoa(v.Z))
	}
	for _, s := range n.Segments {
		fmt.Fprintf(bw, "%d %d\n", s[0], s[1])
	}
	return bw.Flush()
}

// ReadNetwork parses the WriteNetwork format and validates segment indices.
func ReadNetwork(r io.Reader, name string) (*karst.Network, error) {
	sc := newScanner(r, name)
	f, err := sc.next()
	if err != nil {
		return nil, err
	}
	hdr, err := sc.ints(f, 2)
	if err != nil {
		return nil, err
	}
	nn, ns := hdr[0], hdr[1]
	if nn < 0 || ns < 0 {
		return nil, sc.errf("negative network header %d %d", nn, ns)
	}

	net := &karst.Network{
		Nodes:    make([]geom.Vec3, 0, nn),
		Segments: make([][2]int, 0, ns),
	}
	for i := 0; i < nn; i++ {
		f, err := sc.next()
		if err != nil {
			return nil, err
		}
		v, err := sc.floats(f, 3)
		if err != nil {
			return nil, err
		}
		net.Nodes = append(net.Nodes, geom.Vec3{X: v[0], Y: v[1], Z: v[2]})
	}
	for i := 0; i < ns; i++ {
		f, err := sc.next()
		if err != nil {
			return nil, err
		}
		s, err := sc.ints(f, 2)
		if err != nil {
			return nil, err
		}
		net.Segments = append(net.Segments, [2]int{s[0], s[1]})
	}
	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return net, nil
}

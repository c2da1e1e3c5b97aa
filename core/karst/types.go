// core/karst/types.go
package karst

import (
	"fmt"

	"vkbridge-core/geom"
)

// Spring is a karst outlet. Index is 1-based; WaterTableIndex refers to the
// 1-based position of the spring's groundwater body surface.
type Spring struct {
	Origin          geom.Vec3
	Index           int
	WaterTableIndex int
	Radius          float64
}

// Sink is a recharge point feeding the network. Index is 1-based.
type Sink struct {
	Origin geom.Vec3
	Index  int
	Order  int
	Radius float64
}

// Connectivity is a sinks×springs matrix; row i flags the springs sink i
// may reach (1 = connected).
type Connectivity [][]int

// Network is a generated conduit network: nodes in box coordinates and
// segments as 0-based node index pairs.
type Network struct {
	Nodes    []geom.Vec3
	Segments [][2]int
}

// Validate checks that all segment endpoints reference existing nodes.
func (n *Network) Validate() error {
	for i, s := range n.Segments {
		for _, v := range s {
			if v < 0 || v >= len(n.Nodes) {
				return fmt.Errorf("network: segment %d references node %d of %d", i, v, len(n.Nodes))
			}
		}
	}
	return nil
}

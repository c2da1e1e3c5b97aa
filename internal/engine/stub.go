// internal/engine/stub.go
package engine

import (
	"context"
	"fmt"

	"vkbridge-core/karst"
)

// Stub is a trivial in-process engine: every sink is joined to the first
// spring its connectivity row allows by a straight conduit. It exists for
// dry runs and tests where the real binary is unavailable.
type Stub struct{}

func (Stub) Run(ctx context.Context, in *Input) (*karst.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	net := &karst.Network{}
	springNode := make(map[int]int, len(in.Springs))
	for _, sp := range in.Springs {
		springNode[sp.Index] = len(net.Nodes)
		net.Nodes = append(net.Nodes, sp.Origin)
	}
	for i, sk := range in.Sinks {
		if i >= len(in.Connectivity) {
			return nil, fmt.Errorf("%w: sink %d has no connectivity row", ErrEngine, sk.Index)
		}
		target := -1
		for j, v := range in.Connectivity[i] {
			if v != 0 && j < len(in.Springs) {
				target = springNode[in.Springs[j].Index]
				break
			}
		}
		if target < 0 {
			continue
		}
		n := len(net.Nodes)
		net.Nodes = append(net.Nodes, sk.Origin)
		net.Segments = append(net.Segments, [2]int{n, target})
	}
	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return net, nil
}

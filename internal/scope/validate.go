package scope

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Validate checks structural invariants over the whole arena and returns
// every violation found, joined.
func (t *Tree) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.nodes); idx++ {
		id, err := toNodeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		n := &t.nodes[idx]

		if n.Parent.IsValid() {
			if int(n.Parent) >= len(t.nodes) || n.Parent == id {
				errs = append(errs, fmt.Errorf("node %d has invalid parent %d", id, n.Parent))
			} else if count(t.nodes[n.Parent].Children, id) != 1 {
				errs = append(errs, fmt.Errorf("node %d missing from children of parent %d", id, n.Parent))
			}
		}

		seen := make(map[NodeID]struct{}, len(n.Children))
		for _, child := range n.Children {
			if !child.IsValid() || int(child) >= len(t.nodes) || child == id {
				errs = append(errs, fmt.Errorf("node %d has invalid child %d", id, child))
				continue
			}
			if _, dup := seen[child]; dup {
				errs = append(errs, fmt.Errorf("node %d lists child %d twice", id, child))
			}
			seen[child] = struct{}{}
			if t.nodes[child].Parent != id {
				errs = append(errs, fmt.Errorf("node %d child %d missing parent backlink", id, child))
			}
		}

		if n.Library != (n.Accessor != "") {
			errs = append(errs, fmt.Errorf("node %d library flag and accessor disagree", id))
		}

		if g := n.Generics; g != nil {
			if len(g.order) != len(g.variants) {
				errs = append(errs, fmt.Errorf("node %d variant order out of sync", id))
			}
			for _, key := range g.order {
				got, ok := g.Key(g.variants[key])
				if !ok || got != key {
					errs = append(errs, fmt.Errorf("node %d variant %q does not match its parameters", id, key))
				}
			}
			if active, ok := g.Active(); ok {
				if _, found := g.variants[active]; !found {
					errs = append(errs, fmt.Errorf("node %d active variant %q is unknown", id, active))
				}
			}
		}
	}

	return errors.Join(errs...)
}

func count(ids []NodeID, want NodeID) int {
	c := 0
	for _, id := range ids {
		if id == want {
			c++
		}
	}
	return c
}

func toNodeID(idx int) (NodeID, error) {
	v, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoNodeID, fmt.Errorf("node index %d overflows: %w", idx, err)
	}
	return NodeID(v), nil
}

package scope

import (
	"fmt"
	"io"
)

// Resolve returns the text to emit for ident at id: the substitution of the
// nearest generic ancestor whose active variant binds ident, or ident itself.
func (t *Tree) Resolve(id NodeID, ident string) string {
	for cur := id; cur.IsValid(); cur = t.must(cur).Parent {
		if g := t.nodes[cur].Generics; g != nil {
			if val, ok := g.Resolve(ident); ok {
				return val
			}
		}
	}
	return ident
}

// WriteIdentifier writes the resolved form of ident to w.
func (t *Tree) WriteIdentifier(w io.Writer, id NodeID, ident string) error {
	_, err := io.WriteString(w, t.Resolve(id, ident))
	return err
}

// RegisterGenericCall records the instantiation of the generic declaration
// id with the given concrete types, mapped positionally onto its parameters.
// It returns the node's accessor when the node is library code, so the call
// site can qualify its name. A wrong number of types yields ErrTypeArgCount.
// Nodes without a generics record record nothing.
func (t *Tree) RegisterGenericCall(id NodeID, types []string) (string, error) {
	n := t.must(id)
	if g := n.Generics; g != nil {
		if len(types) != len(g.params) {
			return "", fmt.Errorf("%w: %q takes %d, got %d", ErrTypeArgCount, n.Name, len(g.params), len(types))
		}
		v := make(Variant, len(types))
		for i, p := range g.params {
			v[p] = types[i]
		}
		g.AddVariant(v)
	}
	if n.Library {
		return n.Accessor, nil
	}
	return "", nil
}

// SetActiveVariant selects the variant key used by Resolve below id.
func (t *Tree) SetActiveVariant(id NodeID, key string) error {
	n := t.must(id)
	if n.Generics == nil {
		return fmt.Errorf("%w: %q", ErrNotGeneric, n.Name)
	}
	if !n.Generics.SetActive(key) {
		return fmt.Errorf("%w: %q has no variant %q", ErrUnknownVariant, n.Name, key)
	}
	return nil
}

func (t *Tree) ClearActiveVariant(id NodeID) {
	if g := t.must(id).Generics; g != nil {
		g.ClearActive()
	}
}

// GenericAncestors lists the generic nodes from id (inclusive) up to the
// root, nearest first.
func (t *Tree) GenericAncestors(id NodeID) []NodeID {
	var out []NodeID
	for cur := id; cur.IsValid(); cur = t.must(cur).Parent {
		if t.nodes[cur].Generics != nil {
			out = append(out, cur)
		}
	}
	return out
}

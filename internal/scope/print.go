package scope

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Print writes the subtree rooted at id as labels indented two spaces per
// level. Debug output only.
func (t *Tree) Print(w io.Writer, id NodeID) error {
	return t.Dump(w, id, DumpOptions{})
}

type DumpOptions struct {
	Identifiers bool
	Variants    bool
	Library     bool
}

// AllDetails enables every section of Dump.
func AllDetails() DumpOptions {
	return DumpOptions{Identifiers: true, Variants: true, Library: true}
}

// Dump is Print with optional per-node details.
func (t *Tree) Dump(w io.Writer, id NodeID, opts DumpOptions) error {
	return t.dump(w, id, 0, opts)
}

func (t *Tree) dump(w io.Writer, id NodeID, depth int, opts DumpOptions) error {
	n := t.must(id)
	indent := strings.Repeat("  ", depth)

	line := indent + n.Name
	if opts.Library && n.Library {
		line += " [library " + n.Accessor + "]"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	if opts.Identifiers && len(n.Identifiers) > 0 {
		for _, name := range slices.Sorted(maps.Keys(n.Identifiers)) {
			if _, err := fmt.Fprintf(w, "%s  . %s: %s\n", indent, name, n.Identifiers[name]); err != nil {
				return err
			}
		}
	}
	if opts.Variants && n.Generics != nil {
		g := n.Generics
		if _, err := fmt.Fprintf(w, "%s  <%s>\n", indent, strings.Join(g.params, ", ")); err != nil {
			return err
		}
		active, hasActive := g.Active()
		for _, key := range g.order {
			mark := ""
			if hasActive && key == active {
				mark = " *"
			}
			if _, err := fmt.Fprintf(w, "%s  = %s%s\n", indent, strings.Join(g.Args(key), ", "), mark); err != nil {
				return err
			}
		}
	}
	for _, child := range n.Children {
		if err := t.dump(w, child, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

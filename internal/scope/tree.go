package scope

import (
	"encoding/hex"
	"fmt"
	"slices"

	"fortio.org/safecast"
	"github.com/google/uuid"
)

// AccessorPrefix starts every library accessor so it is a valid identifier.
const AccessorPrefix = "wss"

// Tree is the arena holding every scope node of a compilation.
type Tree struct {
	nodes       []Node
	newAccessor func() string
}

type Option func(*Tree)

// WithAccessorSource replaces the random accessor generator. Intended for
// tests and golden output; production trees must keep the default.
func WithAccessorSource(fn func() string) Option {
	return func(t *Tree) {
		if fn != nil {
			t.newAccessor = fn
		}
	}
}

// NewTree creates an empty arena with an optional capacity hint.
func NewTree(capacity uint32, opts ...Option) *Tree {
	if capacity == 0 {
		capacity = 32
	}
	t := &Tree{
		nodes:       make([]Node, 1, capacity+1), // index 0 reserved for NoNodeID
		newAccessor: randomAccessor,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func randomAccessor() string {
	u := uuid.New()
	return AccessorPrefix + hex.EncodeToString(u[:])
}

// New allocates a detached node. Non-empty typeParams give it a fresh
// generics record.
func (t *Tree) New(name string, typeParams []string) NodeID {
	value, err := safecast.Conv[uint32](len(t.nodes))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	n := Node{
		Name:        name,
		Identifiers: make(map[string]string),
	}
	if len(typeParams) > 0 {
		n.Generics = NewGenerics(typeParams)
	}
	t.nodes = append(t.nodes, n)
	return NodeID(value)
}

// Get returns the node or nil for an invalid ID.
func (t *Tree) Get(id NodeID) *Node {
	if !id.IsValid() || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

func (t *Tree) must(id NodeID) *Node {
	n := t.Get(id)
	if n == nil {
		panic(fmt.Sprintf("scope: invalid node %d", id))
	}
	return n
}

// Len reports the number of allocated nodes excluding the sentinel.
func (t *Tree) Len() int { return len(t.nodes) - 1 }

func (t *Tree) Name(id NodeID) string { return t.must(id).Name }

func (t *Tree) Parent(id NodeID) NodeID { return t.must(id).Parent }

// Children returns a copy of the child list.
func (t *Tree) Children(id NodeID) []NodeID { return slices.Clone(t.must(id).Children) }

func (t *Tree) IsLibrary(id NodeID) bool { return t.must(id).Library }

func (t *Tree) Accessor(id NodeID) string { return t.must(id).Accessor }

func (t *Tree) Generics(id NodeID) *Generics { return t.must(id).Generics }

// SetAsLibrary marks the node as library code and assigns a fresh accessor.
// Calling it again replaces the accessor.
func (t *Tree) SetAsLibrary(id NodeID) {
	n := t.must(id)
	n.Library = true
	n.Accessor = t.newAccessor()
}

// Attach makes child the last child of parent, detaching it from any
// previous parent first. A library parent marks the child as library.
// Attaching a node under itself or one of its descendants panics.
func (t *Tree) Attach(child, parent NodeID) {
	c := t.must(child)
	p := t.must(parent)
	for cur := parent; cur.IsValid(); cur = t.nodes[cur].Parent {
		if cur == child {
			panic(fmt.Sprintf("scope: attaching %d under %d creates a cycle", child, parent))
		}
	}
	if c.Parent.IsValid() {
		t.Detach(c.Parent, child)
	}
	p.Children = append(p.Children, child)
	c.Parent = parent
	if p.Library {
		t.SetAsLibrary(child)
	}
}

// Detach removes child from parent's children, keeping sibling order.
// It is a no-op when child is not a child of parent.
func (t *Tree) Detach(parent, child NodeID) {
	p := t.must(parent)
	idx := slices.Index(p.Children, child)
	if idx < 0 {
		return
	}
	p.Children = slices.Delete(p.Children, idx, idx+1)
	if c := t.Get(child); c != nil && c.Parent == parent {
		c.Parent = NoNodeID
	}
}

// RootOf follows parent links to the topmost node.
func (t *Tree) RootOf(id NodeID) NodeID {
	cur := id
	for {
		parent := t.must(cur).Parent
		if !parent.IsValid() {
			return cur
		}
		cur = parent
	}
}

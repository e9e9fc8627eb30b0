package scope

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func counterAccessors() Option {
	n := 0
	return WithAccessorSource(func() string {
		n++
		return fmt.Sprintf("lib%d", n)
	})
}

// program -> file: a.wss -> function: foo
//         -> file: b.wss -> class: Box, function: bar
func buildProgram(t *testing.T) (tr *Tree, root, fileA, fileB, foo, box, bar NodeID) {
	t.Helper()
	tr = NewTree(0)
	root = tr.New(ProgramLabel(), nil)
	fileA = tr.New(FileLabel("a.wss"), nil)
	fileB = tr.New(FileLabel("b.wss"), nil)
	foo = tr.New(FunctionLabel("foo"), nil)
	box = tr.New(ClassLabel("Box"), []string{"T"})
	bar = tr.New(FunctionLabel("bar"), nil)
	tr.Attach(fileA, root)
	tr.Attach(fileB, root)
	tr.Attach(foo, fileA)
	tr.Attach(box, fileB)
	tr.Attach(bar, fileB)
	return
}

func TestAttachSetsParentAndChildOnce(t *testing.T) {
	tr := NewTree(0)
	p := tr.New("p", nil)
	c := tr.New("c", nil)
	tr.Attach(c, p)
	tr.Attach(c, p)

	if got := tr.Children(p); !slices.Equal(got, []NodeID{c}) {
		t.Fatalf("children = %v, want [%d]", got, c)
	}
	if tr.Parent(c) != p {
		t.Fatalf("parent = %d, want %d", tr.Parent(c), p)
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestReattachMovesBetweenParents(t *testing.T) {
	tr := NewTree(0)
	a := tr.New("a", nil)
	b := tr.New("b", nil)
	x := tr.New("x", nil)
	y := tr.New("y", nil)
	z := tr.New("z", nil)
	tr.Attach(x, a)
	tr.Attach(y, a)
	tr.Attach(z, a)

	tr.Detach(a, y)
	tr.Attach(y, b)

	if got := tr.Children(a); !slices.Equal(got, []NodeID{x, z}) {
		t.Fatalf("old parent children = %v, want order kept [x z]", got)
	}
	if got := tr.Children(b); !slices.Equal(got, []NodeID{y}) {
		t.Fatalf("new parent children = %v", got)
	}

	// Attach alone must also detach from the previous parent.
	tr.Attach(x, b)
	if got := tr.Children(a); !slices.Equal(got, []NodeID{z}) {
		t.Fatalf("implicit detach failed: %v", got)
	}
	if got := tr.Children(b); !slices.Equal(got, []NodeID{y, x}) {
		t.Fatalf("children = %v", got)
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDetachByIdentity(t *testing.T) {
	tr := NewTree(0)
	p := tr.New("p", nil)
	twin1 := tr.New("same", nil)
	twin2 := tr.New("same", nil)
	tr.Attach(twin1, p)
	tr.Attach(twin2, p)

	tr.Detach(p, twin2)
	if got := tr.Children(p); !slices.Equal(got, []NodeID{twin1}) {
		t.Fatalf("children = %v, want only first twin", got)
	}
	if tr.Parent(twin2).IsValid() {
		t.Fatalf("detached node still has a parent")
	}

	tr.Detach(p, twin2) // absent: no-op
	if got := tr.Children(p); len(got) != 1 {
		t.Fatalf("no-op detach changed children: %v", got)
	}
}

func TestAttachCyclePanics(t *testing.T) {
	tr := NewTree(0)
	a := tr.New("a", nil)
	b := tr.New("b", nil)
	tr.Attach(b, a)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	tr.Attach(a, b)
}

func TestLibraryPropagatesOnAttach(t *testing.T) {
	tr := NewTree(0, counterAccessors())
	lib := tr.New("lib", nil)
	early := tr.New("early", nil)
	tr.Attach(early, lib)

	tr.SetAsLibrary(lib)
	if tr.Accessor(lib) == "" {
		t.Fatalf("library without accessor")
	}
	if tr.IsLibrary(early) {
		t.Fatalf("flag must not propagate retroactively")
	}

	child := tr.New("child", nil)
	grand := tr.New("grand", nil)
	tr.Attach(child, lib)
	tr.Attach(grand, child)
	for _, id := range []NodeID{child, grand} {
		if !tr.IsLibrary(id) || tr.Accessor(id) == "" {
			t.Fatalf("node %s not marked as library", tr.Name(id))
		}
	}
	if tr.Accessor(child) == tr.Accessor(lib) {
		t.Fatalf("accessors must be distinct per node")
	}

	// Re-attaching the early child is how passes opt it in.
	tr.Attach(early, lib)
	if !tr.IsLibrary(early) {
		t.Fatalf("re-attached node not marked")
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestRandomAccessorsAreUnique(t *testing.T) {
	tr := NewTree(0)
	seen := make(map[string]bool)
	for range 64 {
		id := tr.New("lib", nil)
		tr.SetAsLibrary(id)
		acc := tr.Accessor(id)
		if !strings.HasPrefix(acc, AccessorPrefix) || len(acc) != len(AccessorPrefix)+32 {
			t.Fatalf("malformed accessor %q", acc)
		}
		if seen[acc] {
			t.Fatalf("duplicate accessor %q", acc)
		}
		seen[acc] = true
	}
}

func TestRootOf(t *testing.T) {
	tr, root, fileA, _, foo, _, _ := buildProgram(t)
	for _, id := range []NodeID{root, fileA, foo} {
		if got := tr.RootOf(id); got != root {
			t.Fatalf("RootOf(%s) = %d, want %d", tr.Name(id), got, root)
		}
	}
}

func TestFindGlobalIsLocationIndependent(t *testing.T) {
	tr, root, fileA, fileB, foo, box, bar := buildProgram(t)
	nested := tr.New(FunctionLabel("inner"), nil)
	tr.Attach(nested, bar)

	for _, start := range []NodeID{root, fileA, fileB, foo, box, bar, nested} {
		got, ok := tr.FindGlobalFunction(start, "foo")
		if !ok || got != foo {
			t.Fatalf("from %s: got %d,%v want %d", tr.Name(start), got, ok, foo)
		}
		got, ok = tr.FindGlobalClass(start, "Box")
		if !ok || got != box {
			t.Fatalf("class from %s: got %d,%v", tr.Name(start), got, ok)
		}
	}
	if _, ok := tr.FindGlobalFunction(root, "inner"); ok {
		t.Fatalf("nested declarations must not be found")
	}
	if _, ok := tr.FindGlobalFunction(root, "Box"); ok {
		t.Fatalf("class found as function")
	}
}

func TestFindGlobalFirstMatchInFileOrder(t *testing.T) {
	tr, _, _, fileB, foo, _, _ := buildProgram(t)
	dup := tr.New(FunctionLabel("foo"), nil)
	tr.Attach(dup, fileB)
	if got, _ := tr.FindGlobalFunction(dup, "foo"); got != foo {
		t.Fatalf("got %d, want first file's declaration %d", got, foo)
	}
}

func TestDeclareAndLookup(t *testing.T) {
	tr, _, fileA, _, foo, _, _ := buildProgram(t)
	if !tr.Declare(fileA, "x", "file") || !tr.Declare(foo, "y", "param") {
		t.Fatalf("declare failed")
	}
	if tr.Declare(foo, "y", "again") {
		t.Fatalf("duplicate declaration accepted")
	}
	v, owner, ok := tr.Lookup(foo, "x")
	if !ok || v != "file" || owner != fileA {
		t.Fatalf("lookup x = %q,%d,%v", v, owner, ok)
	}
	if v, _, _ := tr.Lookup(foo, "y"); v != "param" {
		t.Fatalf("duplicate overwrote entry: %q", v)
	}
	if _, _, ok := tr.Lookup(fileA, "y"); ok {
		t.Fatalf("child declaration visible from parent")
	}
}

func TestValidateReportsBrokenLinks(t *testing.T) {
	tr := NewTree(0)
	p := tr.New("p", nil)
	c := tr.New("c", nil)
	tr.Attach(c, p)
	tr.Get(c).Parent = NoNodeID
	tr.Get(p).Library = true
	err := tr.Validate()
	if err == nil {
		t.Fatalf("expected errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "missing parent backlink") || !strings.Contains(msg, "accessor disagree") {
		t.Fatalf("unexpected report: %v", msg)
	}
}

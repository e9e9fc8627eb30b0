package scope

import (
	"bytes"
	"slices"
	"testing"
)

func TestResolveThreeLevels(t *testing.T) {
	tr := NewTree(0)
	root := tr.New(ProgramLabel(), nil)
	a := tr.New(FunctionLabel("a"), []string{"T"})
	b := tr.New(FunctionLabel("b"), nil)
	tr.Attach(a, root)
	tr.Attach(b, a)

	if _, err := tr.RegisterGenericCall(a, []string{"Int"}); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetActiveVariant(a, "Int"); err != nil {
		t.Fatal(err)
	}
	if got := tr.Resolve(b, "T"); got != "Int" {
		t.Fatalf("Resolve(T) = %q, want Int", got)
	}
	if got := tr.Resolve(b, "x"); got != "x" {
		t.Fatalf("Resolve(x) = %q, want x", got)
	}

	tr.ClearActiveVariant(a)
	if got := tr.Resolve(b, "T"); got != "T" {
		t.Fatalf("inactive record resolved T to %q", got)
	}
}

func TestResolveNearestBindingWins(t *testing.T) {
	tr := NewTree(0)
	outer := tr.New(ClassLabel("Outer"), []string{"T"})
	inner := tr.New(FunctionLabel("inner"), []string{"T"})
	tr.Attach(inner, outer)
	_, _ = tr.RegisterGenericCall(outer, []string{"Outer"})
	_, _ = tr.RegisterGenericCall(inner, []string{"Inner"})
	_ = tr.SetActiveVariant(outer, "Outer")

	if got := tr.Resolve(inner, "T"); got != "Outer" {
		t.Fatalf("got %q, inactive inner must fall through", got)
	}
	_ = tr.SetActiveVariant(inner, "Inner")
	if got := tr.Resolve(inner, "T"); got != "Inner" {
		t.Fatalf("got %q, want nearest binding", got)
	}
	if got := tr.GenericAncestors(inner); !slices.Equal(got, []NodeID{inner, outer}) {
		t.Fatalf("ancestors = %v", got)
	}
}

func TestResolveIdentityWithoutGenerics(t *testing.T) {
	tr, _, _, _, foo, _, _ := buildProgram(t)
	for _, ident := range []string{"T", "x", "Box", ""} {
		if got := tr.Resolve(foo, ident); got != ident {
			t.Fatalf("Resolve(%q) = %q", ident, got)
		}
	}
}

func TestWriteIdentifier(t *testing.T) {
	tr := NewTree(0)
	g := tr.New("g", []string{"T"})
	_, _ = tr.RegisterGenericCall(g, []string{"Str"})
	_ = tr.SetActiveVariant(g, "Str")
	var buf bytes.Buffer
	if err := tr.WriteIdentifier(&buf, g, "T"); err != nil {
		t.Fatal(err)
	}
	_ = tr.WriteIdentifier(&buf, g, "y")
	if buf.String() != "Stry" {
		t.Fatalf("wrote %q", buf.String())
	}
}

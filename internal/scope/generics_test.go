package scope

import (
	"errors"
	"slices"
	"testing"
)

func TestAddVariantCanonicalKey(t *testing.T) {
	g := NewGenerics([]string{"K", "V"})
	if !g.AddVariant(Variant{"K": "Str", "V": "Int"}) {
		t.Fatalf("first variant rejected")
	}
	if g.AddVariant(Variant{"V": "Int", "K": "Str"}) {
		t.Fatalf("same combination stored twice")
	}
	if g.Len() != 1 {
		t.Fatalf("len = %d", g.Len())
	}
	if !g.AddVariant(Variant{"K": "Int", "V": "Str"}) {
		t.Fatalf("swapped combination is a distinct variant")
	}
	if got := g.Keys(); !slices.Equal(got, []string{"Str,Int", "Int,Str"}) {
		t.Fatalf("keys = %v", got)
	}
	if got := g.Args("Int,Str"); !slices.Equal(got, []string{"Int", "Str"}) {
		t.Fatalf("args = %v", got)
	}
}

func TestAddVariantRejectsMismatchedKeys(t *testing.T) {
	g := NewGenerics([]string{"K", "V"})
	cases := []Variant{
		{"K": "Int"},
		{"K": "Int", "V": "Int", "X": "Int"},
		{"K": "Int", "X": "Int"},
		{},
	}
	for _, v := range cases {
		if g.AddVariant(v) {
			t.Fatalf("accepted %v", v)
		}
	}
	if g.Len() != 0 {
		t.Fatalf("len = %d, want 0", g.Len())
	}
}

func TestKeySeparatorAvoidsCollisions(t *testing.T) {
	g := NewGenerics([]string{"A", "B"})
	g.AddVariant(Variant{"A": "ab", "B": "c"})
	if !g.AddVariant(Variant{"A": "a", "B": "bc"}) {
		t.Fatalf("distinct combinations collided")
	}
}

func TestGenericsResolveUsesActiveOnly(t *testing.T) {
	g := NewGenerics([]string{"T"})
	g.AddVariant(Variant{"T": "Int"})
	g.AddVariant(Variant{"T": "Str"})
	if _, ok := g.Resolve("T"); ok {
		t.Fatalf("resolved without an active variant")
	}
	if g.SetActive("Float") {
		t.Fatalf("unknown key accepted")
	}
	g.SetActive("Str")
	if v, ok := g.Resolve("T"); !ok || v != "Str" {
		t.Fatalf("resolve = %q,%v", v, ok)
	}
	if _, ok := g.Resolve("U"); ok {
		t.Fatalf("resolved an unbound name")
	}
	g.ClearActive()
	if _, ok := g.Active(); ok {
		t.Fatalf("still active")
	}
}

func TestVariantIsCopied(t *testing.T) {
	g := NewGenerics([]string{"T"})
	in := Variant{"T": "Int"}
	g.AddVariant(in)
	in["T"] = "Str"
	v, _ := g.Variant("Int")
	v["T"] = "Bool"
	g.SetActive("Int")
	if got, _ := g.Resolve("T"); got != "Int" {
		t.Fatalf("stored variant aliased caller map: %q", got)
	}
}

func TestRegisterGenericCallArity(t *testing.T) {
	tr := NewTree(0)
	id := tr.New(FunctionLabel("pair"), []string{"A", "B"})
	for _, types := range [][]string{nil, {"Int"}, {"Int", "Int", "Int"}} {
		if _, err := tr.RegisterGenericCall(id, types); !errors.Is(err, ErrTypeArgCount) {
			t.Fatalf("%v: err = %v, want ErrTypeArgCount", types, err)
		}
	}
	if tr.Generics(id).Len() != 0 {
		t.Fatalf("failed call stored a variant")
	}

	acc, err := tr.RegisterGenericCall(id, []string{"Int", "Str"})
	if err != nil || acc != "" {
		t.Fatalf("acc=%q err=%v", acc, err)
	}
	_, _ = tr.RegisterGenericCall(id, []string{"Int", "Str"})
	if tr.Generics(id).Len() != 1 {
		t.Fatalf("duplicate call stored twice")
	}
}

func TestRegisterGenericCallReturnsLibraryAccessor(t *testing.T) {
	tr := NewTree(0, counterAccessors())
	id := tr.New(FunctionLabel("id"), []string{"T"})
	tr.SetAsLibrary(id)
	acc, err := tr.RegisterGenericCall(id, []string{"Int"})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if acc != tr.Accessor(id) || acc == "" {
		t.Fatalf("accessor = %q", acc)
	}

	plain := tr.New(FunctionLabel("plain"), nil)
	if acc, err := tr.RegisterGenericCall(plain, []string{"Int"}); err != nil || acc != "" {
		t.Fatalf("non-generic node: %q %v", acc, err)
	}
}

func TestSetActiveVariantErrors(t *testing.T) {
	tr := NewTree(0)
	plain := tr.New("plain", nil)
	if err := tr.SetActiveVariant(plain, "Int"); !errors.Is(err, ErrNotGeneric) {
		t.Fatalf("err = %v", err)
	}
	gen := tr.New("gen", []string{"T"})
	if err := tr.SetActiveVariant(gen, "Int"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("err = %v", err)
	}
}

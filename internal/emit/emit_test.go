package emit

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"wss/internal/ast"
	"wss/internal/diag"
	"wss/internal/parser"
	"wss/internal/passes"
	"wss/internal/scope"
	"wss/internal/source"
)

func build(t *testing.T, src string) (*scope.Tree, *ast.Program) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	id := fs.AddVirtual("main.wss", []byte(src))
	res := parser.ParseFile(fs.Get(id), parser.Options{Reporter: rep})
	prog := &ast.Program{Files: []*ast.File{res.File}}
	n := 0
	env := &passes.Env{
		Tree: scope.NewTree(0, scope.WithAccessorSource(func() string {
			n++
			return fmt.Sprintf("acc%d", n)
		})),
		Reporter: rep,
	}
	if _, err := passes.Run(context.Background(), env, prog, passes.Options{}); err != nil {
		t.Fatalf("passes: %v", err)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	return env.Tree, prog
}

func render(t *testing.T, tree *scope.Tree, prog *ast.Program, opts Options) string {
	t.Helper()
	var sb strings.Builder
	if err := File(&sb, tree, prog.Files[0], opts); err != nil {
		t.Fatalf("emit: %v", err)
	}
	return sb.String()
}

func TestEmitGenericFunctionPerVariant(t *testing.T) {
	tree, prog := build(t, `
function id<T>(x: T): T { return x; }
function main() {
	let a: Int = id<Int>(1);
	let b: Str = id<Str>("s");
}
`)
	want := `function id_Int(x: Int): Int {
    return x;
}
function id_Str(x: Str): Str {
    return x;
}

function main() {
    let a: Int = id_Int(1);
    let b: Str = id_Str("s");
}
`
	if got := render(t, tree, prog, Options{}); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitGenericClassAndTypeUse(t *testing.T) {
	tree, prog := build(t, `
class Box<T> { value: T; }
function main() { let b: Box<Int> = Box<Int>(1); }
`)
	want := `class Box_Int {
  value: Int;
}

function main() {
  let b: Box_Int = Box_Int(1);
}
`
	if got := render(t, tree, prog, Options{Indent: "  "}); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitNestedTypeArguments(t *testing.T) {
	tree, prog := build(t, `
class Box<T> { value: T; }
function wrap<T>(x: T): Box<T> { return Box<T>(x); }
function main() { let b: Box<Box<Int>> = wrap<Box<Int>>(Box<Int>(1)); }
`)
	got := render(t, tree, prog, Options{})
	for _, want := range []string{
		"class Box_Int {",
		"class Box_Box_0Int {",
		"function wrap_Box_0Int(x: Box_Int): Box_Box_0Int {",
		"    return Box_Box_0Int(x);",
		"let b: Box_Box_0Int = wrap_Box_0Int(Box_Int(1));",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestEmitUnderscoreArgumentsStayDistinct(t *testing.T) {
	tree, prog := build(t, `
function pair<A, B>(a: A, b: B) {}
function main() {
	pair<Int_Str, Bool>(1, true);
	pair<Int, Str_Bool>(1, true);
}
`)
	got := render(t, tree, prog, Options{})
	for _, want := range []string{
		"function pair_Int_0Str_Bool(a: Int_Str, b: Bool) {",
		"function pair_Int_Str_0Bool(a: Int, b: Str_Bool) {",
		"    pair_Int_0Str_Bool(1, true);",
		"    pair_Int_Str_0Bool(1, true);",
	} {
		if strings.Count(got, want) != 1 {
			t.Fatalf("want exactly one %q in:\n%s", want, got)
		}
	}
}

func TestEmitLibraryQualified(t *testing.T) {
	tree, prog := build(t, `
library function helper(x: Int): Int { return x; }
library function pick<T>(x: T): T { return x; }
function main() {
	helper(1);
	pick<Int>(2);
}
`)
	helper, ok := tree.FindGlobalFunction(prog.Scope, "helper")
	if !ok {
		t.Fatalf("helper not declared")
	}
	pick, _ := tree.FindGlobalFunction(prog.Scope, "pick")
	ha, pa := tree.Accessor(helper), tree.Accessor(pick)
	want := "library " + ha + ` {
    function helper(x: Int): Int {
        return x;
    }
}

library ` + pa + ` {
    function pick_Int(x: Int): Int {
        return x;
    }
}

function main() {
    ` + ha + `.helper(1);
    ` + pa + `.pick_Int(2);
}
`
	if got := render(t, tree, prog, Options{}); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitLocalShadowsLibraryFunction(t *testing.T) {
	tree, prog := build(t, `
library function helper(x: Int): Int { return x; }
function main(helper: Int) { helper(1); }
`)
	got := render(t, tree, prog, Options{})
	if !strings.Contains(got, "    helper(1);\n") {
		t.Fatalf("local call was qualified:\n%s", got)
	}
}

func TestEmitUninstantiatedGeneric(t *testing.T) {
	tree, prog := build(t, `function id<T>(x: T): T { return x; }`)
	got := render(t, tree, prog, Options{Header: "generated from main.wss"})
	want := "// generated from main.wss\n\n// no instantiations of id\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmitLeavesNoActiveVariant(t *testing.T) {
	tree, prog := build(t, `
class Box<T> { value: T; }
function id<T>(x: T): T { return x; }
function main() {
	id<Int>(1);
	id<Str>("s");
	let a: Box<Int> = Box<Int>(1);
	let b: Box<Str> = Box<Str>("s");
}
`)
	render(t, tree, prog, Options{})
	id, _ := tree.FindGlobalFunction(prog.Scope, "id")
	box, _ := tree.FindGlobalClass(prog.Scope, "Box")
	for _, n := range []scope.NodeID{id, box} {
		if key, ok := tree.Generics(n).Active(); ok {
			t.Fatalf("%s: variant %q still active", tree.Name(n), key)
		}
	}
}

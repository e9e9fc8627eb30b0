package parser

import (
	"testing"

	"wss/internal/ast"
	"wss/internal/diag"
	"wss/internal/source"
	"wss/internal/testkit"
	"wss/internal/token"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.wss", []byte(src))
	bag := diag.NewBag(64)
	res := ParseFile(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return res.File, bag
}

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, bag := parseSource(t, src)
	if bag.Len() != 0 {
		for _, d := range bag.Items() {
			t.Errorf("%s %s at %s", d.Code, d.Message, d.Primary)
		}
		t.FailNow()
	}
	return f
}

func TestParseItems(t *testing.T) {
	f := mustParse(t, `
function identity<T>(x: T): T { return x; }

library class Box<T> {
	value: T;
	function get(): T { return value; }
}

function main() {
	let a: Box<Int> = Box<Int>(1);
	let b = identity<Str>("s");
	return;
}
`)
	if len(f.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(f.Items))
	}

	id, ok := f.Items[0].(*ast.FunctionDecl)
	if !ok || id.Name != "identity" || len(id.TypeParams) != 1 || id.TypeParams[0] != "T" {
		t.Fatalf("identity parsed as %+v", f.Items[0])
	}
	if len(id.Params) != 1 || id.Params[0].Type.Name != "T" || id.Params[0].Owner != id {
		t.Fatalf("params = %+v", id.Params)
	}
	if id.Result == nil || id.Result.Kind != ast.ResultDecl {
		t.Fatalf("missing result")
	}

	box, ok := f.Items[1].(*ast.ClassDecl)
	if !ok || !box.Library || box.Name != "Box" {
		t.Fatalf("box parsed as %+v", f.Items[1])
	}
	if len(box.Fields()) != 1 || len(box.Methods()) != 1 {
		t.Fatalf("members = %d fields, %d methods", len(box.Fields()), len(box.Methods()))
	}
	if get := box.Methods()[0]; get.Owner != box || !get.IsMethod() || ast.TopLevel(get) != box {
		t.Fatalf("method owner links wrong")
	}

	main := f.Items[2].(*ast.FunctionDecl)
	if len(main.Body.Stmts) != 3 {
		t.Fatalf("main stmts = %d", len(main.Body.Stmts))
	}
	let := main.Body.Stmts[0].(*ast.LetStmt)
	if let.Decl.Type.String() != "Box<Int>" {
		t.Fatalf("let type = %s", let.Decl.Type)
	}
	call, ok := let.Value.(*ast.CallExpr)
	if !ok || len(call.TypeArgs) != 1 || call.Owner != main {
		t.Fatalf("generic constructor call not recognised: %#v", let.Value)
	}
	if let2 := main.Body.Stmts[1].(*ast.LetStmt); let2.Decl.Type != nil {
		t.Fatalf("untyped let got a type")
	}
}

func TestGenericCallVersusComparison(t *testing.T) {
	cases := []struct {
		src      string
		generic  bool
		topLevel token.Kind
	}{
		{"f<Int>(x);", true, token.Invalid},
		{"a < b;", false, token.Lt},
		{"a < b > c;", false, token.Gt},
		{"f<Box<Int>, Str>(x, y);", true, token.Invalid},
		{"a < b == c > d;", false, token.EqEq},
		{"(a) < b;", false, token.Lt},
	}
	for _, tc := range cases {
		f := mustParse(t, "function main() { "+tc.src+" }")
		x := f.Items[0].(*ast.FunctionDecl).Body.Stmts[0].(*ast.ExprStmt).X
		if tc.generic {
			call, ok := x.(*ast.CallExpr)
			if !ok || len(call.TypeArgs) == 0 {
				t.Fatalf("%q: expected generic call, got %T", tc.src, x)
			}
			continue
		}
		bin, ok := x.(*ast.BinaryExpr)
		if !ok || bin.Op != tc.topLevel {
			t.Fatalf("%q: expected binary %v, got %#v", tc.src, tc.topLevel, x)
		}
	}
}

func TestNestedTypeArgs(t *testing.T) {
	f := mustParse(t, "function f(x: Map<Str, List<Box<Int>>>) {}")
	typ := f.Items[0].(*ast.FunctionDecl).Params[0].Type
	if typ.String() != "Map<Str, List<Box<Int>>>" {
		t.Fatalf("type = %s", typ)
	}
}

func TestPrecedence(t *testing.T) {
	f := mustParse(t, "function f() { return 1 + 2 * 3 == 7; }")
	ret := f.Items[0].(*ast.FunctionDecl).Body.Stmts[0].(*ast.ReturnStmt)
	eq := ret.Value.(*ast.BinaryExpr)
	if eq.Op != token.EqEq {
		t.Fatalf("top op = %v", eq.Op)
	}
	plus := eq.X.(*ast.BinaryExpr)
	if plus.Op != token.Plus {
		t.Fatalf("left op = %v", plus.Op)
	}
	if mul, ok := plus.Y.(*ast.BinaryExpr); !ok || mul.Op != token.Star {
		t.Fatalf("'*' must bind tighter than '+'")
	}
}

func TestRecoveryAndDiagnostics(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		code  diag.Code
		items int
	}{
		{"top level junk", "let x = 1; function ok() {}", diag.SynUnexpectedTopLevel, 1},
		{"missing semicolon", "function f() { g() } function ok() {}", diag.SynExpectSemicolon, 2},
		{"unclosed paren", "function f(x: Int { } function ok() {}", diag.SynUnclosedParen, 1},
		{"library without decl", "library 42 function ok() {}", diag.SynUnexpectedToken, 1},
		{"missing name", "function () {} class C {}", diag.SynExpectIdentifier, 1},
		{"bad member", "class C { 1; value: Int; }", diag.SynUnexpectedToken, 1},
		{"missing type", "function f(x: ) {}", diag.SynExpectType, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, bag := parseSource(t, tc.src)
			if !bag.HasErrors() {
				t.Fatalf("expected errors")
			}
			if got := bag.Items()[0].Code; got != tc.code {
				t.Fatalf("code = %s (%s), want %s", got, bag.Items()[0].Message, tc.code)
			}
			if len(f.Items) != tc.items {
				t.Fatalf("items = %d, want %d", len(f.Items), tc.items)
			}
		})
	}
}

func TestUnclosedBraceHasNote(t *testing.T) {
	_, bag := parseSource(t, "class C { value: Int;")
	var found bool
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedBrace {
			found = len(d.Notes) == 1
		}
	}
	if !found {
		t.Fatalf("missing unclosed brace with note: %+v", bag.Items())
	}
}

func TestMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.wss", []byte("1 2 3 4 5"))
	bag := diag.NewBag(16)
	res := ParseFile(fs.Get(id), Options{MaxErrors: 1, Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 1 {
		t.Fatalf("reported %d diagnostics, want 1", bag.Len())
	}
	if res.Errors == 0 {
		t.Fatalf("error count not returned")
	}
}

func TestSpanInvariants(t *testing.T) {
	srcs := []string{
		"",
		"function main(): Int { return 0; }\n",
		"library class Box<T> {\n\tvalue: T;\n\tfunction get(): T { return value; }\n}\n",
		"class Outer { class_field: Int; function a() {} function b<U>(u: U): U { return u; } }\nfunction c() {}\n",
		// recovery keeps the items that did parse
		"function broken( {\nfunction ok() {}\n",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("test.wss", []byte(src)))
		res := ParseFile(file, Options{Reporter: diag.BagReporter{Bag: diag.NewBag(64)}})
		if err := testkit.CheckSpanInvariants(res.File, file); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

package lexer_test

import (
	"testing"

	"wss/internal/diag"
	"wss/internal/lexer"
	"wss/internal/source"
	"wss/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wss", []byte(input))
	bag := diag.NewBag(32)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexerTokenStreams(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "function header",
			input: "function f<T>(x: T): T {",
			want: []token.Kind{
				token.KwFunction, token.Ident, token.Lt, token.Ident, token.Gt,
				token.LParen, token.Ident, token.Colon, token.Ident, token.RParen,
				token.Colon, token.Ident, token.LBrace, token.EOF,
			},
		},
		{
			name:  "operators",
			input: "a == b != c <= d >= e = f < g > h",
			want: []token.Kind{
				token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident,
				token.LtEq, token.Ident, token.GtEq, token.Ident, token.Assign,
				token.Ident, token.Lt, token.Ident, token.Gt, token.Ident, token.EOF,
			},
		},
		{
			name:  "comments are skipped",
			input: "let // trailing\n x /* a /* nested */ b */ = 1_000;",
			want:  []token.Kind{token.KwLet, token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF},
		},
		{
			name:  "keywords",
			input: "library class return true false",
			want:  []token.Kind{token.KwLibrary, token.KwClass, token.KwReturn, token.KwTrue, token.KwFalse, token.EOF},
		},
		{
			name:  "string with escapes",
			input: `"a\"b" + 1`,
			want:  []token.Kind{token.StringLit, token.Plus, token.IntLit, token.EOF},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tc.input)
			got := kinds(lx.All())
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %+v", bag.Items())
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("token %d: got %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestLexerErrors(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{"#", diag.LexUnknownChar},
		{`"open`, diag.LexUnterminatedString},
		{"/* never closed", diag.LexUnterminatedBlockComment},
		{"12ab", diag.LexBadNumber},
		{"!x", diag.LexUnknownChar},
	}
	for _, tc := range cases {
		lx, bag := makeTestLexer(tc.input)
		lx.All()
		if !bag.HasErrors() {
			t.Fatalf("%q: expected an error", tc.input)
		}
		if got := bag.Items()[0].Code; got != tc.code {
			t.Fatalf("%q: code %s, want %s", tc.input, got, tc.code)
		}
	}
}

func TestIdentifiersAreNFC(t *testing.T) {
	lx, _ := makeTestLexer("e\u0301te")
	tok := lx.Next()
	if tok.Kind != token.Ident {
		t.Fatalf("kind = %v", tok.Kind)
	}
	if tok.Text != "\u00e9te" {
		t.Fatalf("text = %q, want composed form", tok.Text)
	}
	if tok.Span.Len() != 5 {
		t.Fatalf("span must cover the raw bytes, got %d", tok.Span.Len())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
	for range 3 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("expected sticky EOF, got %v", n.Kind)
		}
	}
}

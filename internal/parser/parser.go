package parser

import (
	"slices"

	"wss/internal/ast"
	"wss/internal/diag"
	"wss/internal/lexer"
	"wss/internal/source"
	"wss/internal/token"
)

type Options struct {
	// MaxErrors stops reporting after this many errors; zero means no limit.
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   *ast.File
	Errors uint
}

// Parser holds per-file state. The whole token stream is materialised up
// front so that the generic call syntax f<T>(x) can be told apart from a
// comparison by trying one reading and rewinding.
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	opts     Options
	lastSpan source.Span
	out      *ast.File
	// owner is the innermost declaration being parsed.
	owner ast.Decl
}

// ParseFile lexes and parses one file.
func ParseFile(f *source.File, opts Options) Result {
	lx := lexer.New(f, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		file: f,
		toks: lx.All(),
		opts: opts,
		out:  &ast.File{ID: f.ID, Path: f.Path},
	}
	p.parseItems()
	return Result{File: p.out, Errors: p.opts.CurrentErrors}
}

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// parseItems is the top-level loop: parse items until EOF, resyncing after
// a failed one.
func (p *Parser) parseItems() {
	start := p.peek().Span
	for !p.at(token.EOF) && !p.opts.Enough() {
		item, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		p.out.Items = append(p.out.Items, item)
	}
	p.out.Sp = source.Span{File: p.file.ID, Start: 0, End: start.Cover(p.peek().Span).End}
}

func (p *Parser) parseItem() (ast.Decl, bool) {
	var libSpan source.Span
	library := false
	if p.at(token.KwLibrary) {
		libSpan = p.advance().Span
		library = true
	}

	var (
		decl ast.Decl
		ok   bool
	)
	switch p.peek().Kind {
	case token.KwFunction:
		decl, ok = p.parseFunction()
	case token.KwClass:
		decl, ok = p.parseClass()
	default:
		if library {
			p.err(diag.SynUnexpectedToken, "expected 'function' or 'class' after 'library'")
		} else {
			p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.peek().Span, "unexpected top-level construct "+describe(p.peek()))
		}
		return nil, false
	}
	if !ok {
		return nil, false
	}
	base := decl.Base()
	base.Library = library
	if library {
		base.Sp = libSpan.Cover(base.Sp)
	}
	return decl, true
}

// resyncTop skips to the next token that can start an item.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		if p.peek().IsItemStart() {
			return
		}
		p.advance()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.IntLit, token.StringLit:
		return tok.Kind.String() + " " + tok.Text
	}
	return "'" + tok.Text + "'"
}

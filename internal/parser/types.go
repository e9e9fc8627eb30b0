package parser

import (
	"wss/internal/ast"
	"wss/internal/source"
	"wss/internal/diag"
	"wss/internal/token"
)

// parseType parses Ident ["<" type {"," type} ">"], reporting errors.
func (p *Parser) parseType() (*ast.TypeRef, bool) {
	return p.typeRef(true)
}

// typeRef is shared by the reporting and the speculative parse. With
// report unset it consumes tokens but never emits diagnostics; the caller
// rewinds on failure.
func (p *Parser) typeRef(report bool) (*ast.TypeRef, bool) {
	if !p.at(token.Ident) {
		if report {
			p.err(diag.SynExpectType, "expected type, found "+describe(p.peek()))
		}
		return nil, false
	}
	name := p.advance()
	ref := &ast.TypeRef{Name: name.Text, Sp: name.Span}
	if p.at(token.Lt) {
		args, end, ok := p.typeArgs(report)
		if !ok {
			return nil, false
		}
		ref.Args = args
		ref.Sp = ref.Sp.Cover(end)
	}
	return ref, true
}

func (p *Parser) typeArgs(report bool) ([]*ast.TypeRef, source.Span, bool) {
	open := p.advance()
	var args []*ast.TypeRef
	for {
		arg, ok := p.typeRef(report)
		if !ok {
			return nil, source.Span{}, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !report {
		if !p.at(token.Gt) {
			return nil, source.Span{}, false
		}
		return args, p.advance().Span, true
	}
	end, ok := p.closeDelimiter(token.Gt, open.Span, diag.SynUnclosedAngle, "expected '>' after type arguments")
	if !ok {
		return nil, source.Span{}, false
	}
	return args, end.Span, true
}

// tryGenericCallArgs attempts "<" types ">" directly followed by "(". On
// any mismatch it rewinds and reports false so the caller can treat '<' as
// a comparison.
func (p *Parser) tryGenericCallArgs() ([]*ast.TypeRef, bool) {
	save := p.pos
	saveSpan := p.lastSpan
	args, _, ok := p.typeArgs(false)
	if ok && p.at(token.LParen) {
		return args, true
	}
	p.pos = save
	p.lastSpan = saveSpan
	return nil, false
}

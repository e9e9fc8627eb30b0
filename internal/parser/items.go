package parser

import (
	"wss/internal/ast"
	"wss/internal/diag"
	"wss/internal/token"
)

// parseFunction parses
//
//	function Ident [tparams] "(" [param {"," param}] ")" [":" type] block
func (p *Parser) parseFunction() (*ast.FunctionDecl, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return nil, false
	}
	fn := &ast.FunctionDecl{
		DeclBase: ast.DeclBase{
			Name:     name.Text,
			NameSpan: name.Span,
			Owner:    p.owner,
			File:     p.out,
		},
	}
	if !p.parseTypeParams(&fn.DeclBase) {
		return nil, false
	}

	prev := p.owner
	p.owner = fn
	defer func() { p.owner = prev }()

	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	if !ok {
		return nil, false
	}
	if !p.at(token.RParen) {
		for {
			param, ok := p.parseTypedName(ast.ParamDecl)
			if !ok {
				return nil, false
			}
			fn.Params = append(fn.Params, param)
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.closeDelimiter(token.RParen, open.Span, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return nil, false
	}

	if colon := p.peek(); p.eat(token.Colon) {
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fn.Result = &ast.TypeDecl{Type: typ, Kind: ast.ResultDecl, Owner: fn, Sp: colon.Span.Cover(typ.Sp)}
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	fn.Body = body
	fn.Sp = kw.Span.Cover(body.Sp)
	return fn, true
}

// parseClass parses
//
//	class Ident [tparams] "{" {field | function} "}"
func (p *Parser) parseClass() (*ast.ClassDecl, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected class name")
	if !ok {
		return nil, false
	}
	cls := &ast.ClassDecl{
		DeclBase: ast.DeclBase{
			Name:     name.Text,
			NameSpan: name.Span,
			Owner:    p.owner,
			File:     p.out,
		},
	}
	if !p.parseTypeParams(&cls.DeclBase) {
		return nil, false
	}

	prev := p.owner
	p.owner = cls
	defer func() { p.owner = prev }()

	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after class name")
	if !ok {
		return nil, false
	}
	for !p.atOr(token.RBrace, token.EOF) {
		switch p.peek().Kind {
		case token.KwFunction:
			m, ok := p.parseFunction()
			if !ok {
				p.resyncMember()
				continue
			}
			cls.Members = append(cls.Members, m)
		case token.Ident:
			field, ok := p.parseTypedName(ast.FieldDecl)
			if ok {
				_, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after field")
			}
			if !ok {
				p.resyncMember()
				continue
			}
			cls.Members = append(cls.Members, field)
		default:
			p.err(diag.SynUnexpectedToken, "expected field or method, found "+describe(p.peek()))
			p.resyncMember()
		}
	}
	end, ok := p.closeDelimiter(token.RBrace, open.Span, diag.SynUnclosedBrace, "expected '}' to close class body")
	if !ok {
		return nil, false
	}
	cls.Sp = kw.Span.Cover(end.Span)
	return cls, true
}

// resyncMember skips to the next member start or the end of the class.
func (p *Parser) resyncMember() {
	for !p.atOr(token.EOF, token.RBrace, token.KwFunction) {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}

// parseTypeParams parses an optional "<" Ident {"," Ident} ">".
func (p *Parser) parseTypeParams(d *ast.DeclBase) bool {
	open := p.peek()
	if !p.eat(token.Lt) {
		return true
	}
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type parameter name")
		if !ok {
			return false
		}
		d.TypeParams = append(d.TypeParams, name.Text)
		d.TypeParamSpans = append(d.TypeParamSpans, name.Span)
		if !p.eat(token.Comma) {
			break
		}
	}
	_, ok := p.closeDelimiter(token.Gt, open.Span, diag.SynUnclosedAngle, "expected '>' after type parameters")
	return ok
}

// parseTypedName parses Ident ":" type.
func (p *Parser) parseTypedName(kind ast.TypeDeclKind) (*ast.TypeDecl, bool) {
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+kind.String()+" name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after "+kind.String()+" name"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return &ast.TypeDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Type:     typ,
		Kind:     kind,
		Owner:    p.owner,
		Sp:       name.Span.Cover(typ.Sp),
	}, true
}

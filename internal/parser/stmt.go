package parser

import (
	"wss/internal/ast"
	"wss/internal/diag"
	"wss/internal/token"
)

// parseBlock parses "{" {stmt} "}".
func (p *Parser) parseBlock() (*ast.Block, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil, false
	}
	block := &ast.Block{}
	for !p.atOr(token.RBrace, token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	end, ok := p.closeDelimiter(token.RBrace, open.Span, diag.SynUnclosedBrace, "expected '}' to close block")
	if !ok {
		return nil, false
	}
	block.Sp = open.Span.Cover(end.Span)
	return block, true
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwReturn:
		return p.parseReturn()
	case token.LBrace:
		return p.parseBlock()
	}
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression")
	if !ok {
		return nil, false
	}
	return &ast.ExprStmt{X: x, Sp: x.Span().Cover(semi.Span)}, true
}

// parseLet parses "let" Ident [":" type] "=" expr ";".
func (p *Parser) parseLet() (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after 'let'")
	if !ok {
		return nil, false
	}
	decl := &ast.TypeDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Kind:     ast.LetDecl,
		Owner:    p.owner,
		Sp:       name.Span,
	}
	if p.eat(token.Colon) {
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		decl.Type = typ
		decl.Sp = decl.Sp.Cover(typ.Sp)
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let binding"); !ok {
		return nil, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let binding")
	if !ok {
		return nil, false
	}
	return &ast.LetStmt{Decl: decl, Value: value, Sp: kw.Span.Cover(semi.Span)}, true
}

func (p *Parser) parseReturn() (ast.Stmt, bool) {
	kw := p.advance()
	stmt := &ast.ReturnStmt{}
	if !p.at(token.Semicolon) {
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Value = value
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return")
	if !ok {
		return nil, false
	}
	stmt.Sp = kw.Span.Cover(semi.Span)
	return stmt, true
}

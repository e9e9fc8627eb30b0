package parser

import (
	"wss/internal/ast"
	"wss/internal/diag"
	"wss/internal/token"
)

// binding powers, loosest first
var binaryPrec = map[token.Kind]int{
	token.EqEq:   1,
	token.BangEq: 1,
	token.Lt:     2,
	token.LtEq:   2,
	token.Gt:     2,
	token.GtEq:   2,
	token.Plus:   3,
	token.Minus:  3,
	token.Star:   4,
	token.Slash:  4,
}

func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinary(1)
}

// parseBinary is precedence climbing over left-associative operators.
func (p *Parser) parseBinary(minPrec int) (ast.Expr, bool) {
	left, ok := p.parsePostfix()
	if !ok {
		return nil, false
	}
	for {
		op := p.peek()
		prec, isOp := binaryPrec[op.Kind]
		if !isOp || prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinary(prec + 1)
		if !ok {
			return nil, false
		}
		left = &ast.BinaryExpr{Op: op.Kind, X: left, Y: right, Sp: left.Span().Cover(right.Span())}
	}
}

// parsePostfix handles member access, calls and generic calls.
func (p *Parser) parsePostfix() (ast.Expr, bool) {
	x, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'")
			if !ok {
				return nil, false
			}
			x = &ast.MemberExpr{X: x, Name: name.Text, NameSpan: name.Span, Sp: x.Span().Cover(name.Span)}
		case token.LParen:
			call, ok := p.parseCall(x, nil)
			if !ok {
				return nil, false
			}
			x = call
		case token.Lt:
			if !isCallable(x) {
				return x, true
			}
			targs, ok := p.tryGenericCallArgs()
			if !ok {
				return x, true
			}
			call, ok := p.parseCall(x, targs)
			if !ok {
				return nil, false
			}
			x = call
		default:
			return x, true
		}
	}
}

func isCallable(x ast.Expr) bool {
	switch x.(type) {
	case *ast.Ident, *ast.MemberExpr:
		return true
	}
	return false
}

func (p *Parser) parseCall(callee ast.Expr, targs []*ast.TypeRef) (*ast.CallExpr, bool) {
	open := p.advance()
	call := &ast.CallExpr{Callee: callee, TypeArgs: targs, Owner: p.owner}
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			call.Args = append(call.Args, arg)
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	end, ok := p.closeDelimiter(token.RParen, open.Span, diag.SynUnclosedParen, "expected ')' after arguments")
	if !ok {
		return nil, false
	}
	call.Sp = callee.Span().Cover(end.Span)
	return call, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return &ast.IntLit{Text: tok.Text, Sp: tok.Span}, true
	case token.StringLit:
		p.advance()
		return &ast.StringLit{Text: tok.Text, Sp: tok.Span}, true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.BoolLit{Value: tok.Kind == token.KwTrue, Sp: tok.Span}, true
	case token.Ident:
		p.advance()
		return &ast.Ident{Name: tok.Text, Sp: tok.Span}, true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		end, ok := p.closeDelimiter(token.RParen, tok.Span, diag.SynUnclosedParen, "expected ')'")
		if !ok {
			return nil, false
		}
		return &ast.ParenExpr{X: inner, Sp: tok.Span.Cover(end.Span)}, true
	case token.Invalid:
		// already reported by the lexer
		p.advance()
		return nil, false
	}
	p.err(diag.SynExpectExpression, "expected expression, found "+describe(tok))
	return nil, false
}

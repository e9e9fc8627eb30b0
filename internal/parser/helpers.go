package parser

import (
	"wss/internal/diag"
	"wss/internal/source"
	"wss/internal/token"
)

// advance consumes one token and remembers its span.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan points at the current token, or just past the last one at EOF.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.Tail()
	}
	return peek.Span
}

// expect consumes a token of kind k or reports msg.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.peek().Text}, false
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil || p.overLimit() {
		return false
	}
	diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg).Emit()
	return true
}

// resyncStmt skips past the next ';' or stops before '}' or EOF.
func (p *Parser) resyncStmt() {
	for !p.atOr(token.EOF, token.RBrace) {
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}

// closeDelimiter expects the closing token and notes where it was opened.
func (p *Parser) closeDelimiter(k token.Kind, open source.Span, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil && !p.overLimit() {
		diag.ReportError(p.opts.Reporter, code, sp, msg).
			WithNote(open, "opened here").
			Emit()
	}
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// overLimit reports whether the latest error exceeded MaxErrors.
func (p *Parser) overLimit() bool {
	return p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors
}

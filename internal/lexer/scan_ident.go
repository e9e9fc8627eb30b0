package lexer

import (
	"golang.org/x/text/unicode/norm"

	"wss/internal/diag"
	"wss/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans an identifier and checks the keyword table.
// Non-ASCII identifiers are normalised to NFC so that visually equal names
// resolve to the same declaration.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if r < utf8RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+string(r))
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.bumpRune()
	}
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	raw := lx.file.Content[sp.Start:sp.End]
	if k, ok := token.LookupKeyword(string(raw)); ok {
		return token.Token{Kind: k, Span: sp, Text: string(raw)}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: norm.NFC.String(string(raw))}
}

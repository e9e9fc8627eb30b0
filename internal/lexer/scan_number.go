package lexer

import (
	"wss/internal/diag"
	"wss/internal/token"
)

// scanNumber scans a decimal integer literal. Underscores are allowed
// between digits. A letter glued to the digits is a bad number.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if isDec(b) || b == '_' {
			lx.cursor.Bump()
			continue
		}
		break
	}
	bad := false
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		bad = true
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if bad || text[len(text)-1] == '_' {
		lx.errLex(diag.LexBadNumber, sp, "malformed integer literal "+text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}

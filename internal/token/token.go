package token

import (
	"wss/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is an integer, string or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFunction && t.Kind <= KwFalse
}

// IsItemStart reports whether the token can begin a top-level item.
func (t Token) IsItemStart() bool {
	switch t.Kind {
	case KwFunction, KwClass, KwLibrary:
		return true
	default:
		return false
	}
}

package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit is a decimal integer literal.
	IntLit
	// StringLit is a double-quoted string literal including quotes.
	StringLit

	KwFunction // function
	KwClass    // class
	KwLibrary  // library
	KwLet      // let
	KwReturn   // return
	KwTrue     // true
	KwFalse    // false

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Assign    // =
	EqEq      // ==
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Dot       // .
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "EOF",
	Ident:      "identifier",
	IntLit:     "integer literal",
	StringLit:  "string literal",
	KwFunction: "'function'",
	KwClass:    "'class'",
	KwLibrary:  "'library'",
	KwLet:      "'let'",
	KwReturn:   "'return'",
	KwTrue:     "'true'",
	KwFalse:    "'false'",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Assign:     "'='",
	EqEq:       "'=='",
	BangEq:     "'!='",
	Lt:         "'<'",
	LtEq:       "'<='",
	Gt:         "'>'",
	GtEq:       "'>='",
	Colon:      "':'",
	Semicolon:  "';'",
	Comma:      "','",
	Dot:        "'.'",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

package token

var keywords = map[string]Kind{
	"function": KwFunction,
	"class":    KwClass,
	"library":  KwLibrary,
	"let":      KwLet,
	"return":   KwReturn,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword reports whether ident is a keyword. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

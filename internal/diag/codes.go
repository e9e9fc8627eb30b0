package diag

import "fmt"

// Code identifies a class of diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexer
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Parser
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectSemicolon    Code = 2004
	SynUnclosedParen      Code = 2005
	SynUnclosedBrace      Code = 2006
	SynUnclosedAngle      Code = 2007
	SynExpectType         Code = 2008
	SynExpectExpression   Code = 2009

	// Scopes and generics
	SemaInfo                 Code = 3000
	SemaDuplicateDeclaration Code = 3001
	SemaDuplicateFunction    Code = 3002
	SemaDuplicateClass       Code = 3003
	SemaUnknownGenericTarget Code = 3004
	SemaTypeArgCount         Code = 3005
	SemaNotGeneric           Code = 3006
	SemaInstantiationLimit   Code = 3007
	SemaGenericMethod        Code = 3008

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",

	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnexpectedTopLevel: "Unexpected top-level token",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectSemicolon:    "Expected semicolon",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynUnclosedBrace:      "Unclosed brace",
	SynUnclosedAngle:      "Unclosed type argument list",
	SynExpectType:         "Expected type",
	SynExpectExpression:   "Expected expression",

	SemaInfo:                 "Semantic information",
	SemaDuplicateDeclaration: "Duplicate declaration",
	SemaDuplicateFunction:    "Duplicate function",
	SemaDuplicateClass:       "Duplicate class",
	SemaUnknownGenericTarget: "Unknown generic target",
	SemaTypeArgCount:         "Wrong number of type arguments",
	SemaNotGeneric:           "Type arguments on non-generic declaration",
	SemaInstantiationLimit:   "Instantiation limit reached",
	SemaGenericMethod:        "Type parameters on a method",

	IOLoadFileError: "Failed to load file",
}

// ID returns the stable textual identifier, e.g. LEX1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return c.ID()
}

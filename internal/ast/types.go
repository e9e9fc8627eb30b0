package ast

import (
	"strings"

	"wss/internal/scope"
	"wss/internal/source"
)

// TypeRef is a possibly parameterised type name such as Box<T>.
type TypeRef struct {
	Name string
	Args []*TypeRef
	// Target and Accessor are filled by the generic calls pass for
	// parameterised references to classes.
	Target   scope.NodeID
	Accessor string
	Sp       source.Span
}

func (t *TypeRef) Span() source.Span { return t.Sp }

func (t *TypeRef) IsGeneric() bool { return t != nil && len(t.Args) > 0 }

// String renders the type in source form.
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	var sb strings.Builder
	sb.WriteString(t.Name)
	sb.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

type TypeDeclKind uint8

const (
	ParamDecl TypeDeclKind = iota
	FieldDecl
	LetDecl
	ResultDecl
)

func (k TypeDeclKind) String() string {
	switch k {
	case ParamDecl:
		return "param"
	case FieldDecl:
		return "field"
	case LetDecl:
		return "let"
	case ResultDecl:
		return "result"
	}
	return "unknown"
}

// TypeDecl is a name bound to a type: a parameter, field, let binding or a
// function result (which has no name). Type is nil for an untyped let.
type TypeDecl struct {
	Name     string
	NameSpan source.Span
	Type     *TypeRef
	Kind     TypeDeclKind
	Owner    Decl
	Sp       source.Span
}

func (d *TypeDecl) Span() source.Span { return d.Sp }

func (d *TypeDecl) Accept(v Visitor) {
	if d.Type.IsGeneric() {
		v.VisitGenericVariableDeclaration(d)
	}
}

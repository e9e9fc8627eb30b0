package ast

import (
	"wss/internal/scope"
	"wss/internal/source"
)

// Decl is a function or class declaration.
type Decl interface {
	Node
	Base() *DeclBase
}

// DeclBase holds what functions and classes share.
type DeclBase struct {
	Name           string
	NameSpan       source.Span
	TypeParams     []string
	TypeParamSpans []source.Span
	// Library is set for items written under the library keyword.
	Library bool
	// Scope is assigned by the context-building pass.
	Scope scope.NodeID
	// Owner is the enclosing declaration, nil at file level.
	Owner Decl
	File  *File
	Sp    source.Span
}

func (d *DeclBase) Base() *DeclBase { return d }

func (d *DeclBase) Span() source.Span { return d.Sp }

func (d *DeclBase) IsGeneric() bool { return len(d.TypeParams) > 0 }

// TopLevel walks Owner links up to the file-level declaration containing d.
func TopLevel(d Decl) Decl {
	for d != nil && d.Base().Owner != nil {
		d = d.Base().Owner
	}
	return d
}

type FunctionDecl struct {
	DeclBase
	Params []*TypeDecl
	// Result is nil when the function declares no result type.
	Result *TypeDecl
	Body   *Block
}

func (f *FunctionDecl) Accept(v Visitor) {
	v.VisitFunctionDeclaration(f)
	for _, p := range f.Params {
		p.Accept(v)
	}
	if f.Result != nil {
		f.Result.Accept(v)
	}
	if f.Body != nil {
		f.Body.Accept(v)
	}
}

// IsMethod reports whether the function is declared inside a class.
func (f *FunctionDecl) IsMethod() bool {
	_, ok := f.Owner.(*ClassDecl)
	return ok
}

type ClassDecl struct {
	DeclBase
	// Members holds *TypeDecl fields and *FunctionDecl methods in source order.
	Members []Node
}

func (c *ClassDecl) Accept(v Visitor) {
	v.VisitClassDeclaration(c)
	for _, m := range c.Members {
		m.Accept(v)
	}
}

func (c *ClassDecl) Fields() []*TypeDecl {
	var out []*TypeDecl
	for _, m := range c.Members {
		if td, ok := m.(*TypeDecl); ok {
			out = append(out, td)
		}
	}
	return out
}

func (c *ClassDecl) Methods() []*FunctionDecl {
	var out []*FunctionDecl
	for _, m := range c.Members {
		if fn, ok := m.(*FunctionDecl); ok {
			out = append(out, fn)
		}
	}
	return out
}

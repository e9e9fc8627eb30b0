package ast

import (
	"wss/internal/scope"
	"wss/internal/source"
)

// Node is implemented by every syntax node.
type Node interface {
	Span() source.Span
	Accept(v Visitor)
}

// Program is the whole compilation: every parsed file in command-line order.
type Program struct {
	Files []*File
	Scope scope.NodeID
}

func (p *Program) Span() source.Span { return source.Span{} }

func (p *Program) Accept(v Visitor) {
	for _, f := range p.Files {
		f.Accept(v)
	}
}

// File is one parsed source file.
type File struct {
	ID    source.FileID
	Path  string
	Items []Decl
	Scope scope.NodeID
	Sp    source.Span
}

func (f *File) Span() source.Span { return f.Sp }

func (f *File) Accept(v Visitor) {
	for _, it := range f.Items {
		it.Accept(v)
	}
}

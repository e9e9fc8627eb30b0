package ast

import "wss/internal/source"

type Stmt interface {
	Node
	stmtNode()
}

type Block struct {
	Stmts []Stmt
	Sp    source.Span
}

func (b *Block) Span() source.Span { return b.Sp }

func (b *Block) Accept(v Visitor) {
	for _, s := range b.Stmts {
		s.Accept(v)
	}
}

type LetStmt struct {
	Decl  *TypeDecl
	Value Expr
	Sp    source.Span
}

func (s *LetStmt) Span() source.Span { return s.Sp }

func (s *LetStmt) Accept(v Visitor) {
	s.Decl.Accept(v)
	if s.Value != nil {
		s.Value.Accept(v)
	}
}

type ReturnStmt struct {
	// Value is nil for a bare return.
	Value Expr
	Sp    source.Span
}

func (s *ReturnStmt) Span() source.Span { return s.Sp }

func (s *ReturnStmt) Accept(v Visitor) {
	if s.Value != nil {
		s.Value.Accept(v)
	}
}

type ExprStmt struct {
	X  Expr
	Sp source.Span
}

func (s *ExprStmt) Span() source.Span { return s.Sp }

func (s *ExprStmt) Accept(v Visitor) { s.X.Accept(v) }

func (*Block) stmtNode()      {}
func (*LetStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}

package ast

import (
	"wss/internal/scope"
	"wss/internal/source"
	"wss/internal/token"
)

type Expr interface {
	Node
	exprNode()
}

type Ident struct {
	Name string
	Sp   source.Span
}

type IntLit struct {
	Text string
	Sp   source.Span
}

// StringLit keeps the literal exactly as written, quotes included.
type StringLit struct {
	Text string
	Sp   source.Span
}

type BoolLit struct {
	Value bool
	Sp    source.Span
}

type BinaryExpr struct {
	Op token.Kind
	X  Expr
	Y  Expr
	Sp source.Span
}

type ParenExpr struct {
	X  Expr
	Sp source.Span
}

type MemberExpr struct {
	X        Expr
	Name     string
	NameSpan source.Span
	Sp       source.Span
}

// CallExpr is a call, generic when TypeArgs is non-empty.
type CallExpr struct {
	Callee   Expr
	TypeArgs []*TypeRef
	Args     []Expr
	// Owner is the innermost declaration containing the call.
	Owner Decl
	// Target is the generic declaration's scope node, set by the generic
	// calls pass. Accessor is the library accessor when the target is a
	// library declaration.
	Target   scope.NodeID
	Accessor string
	Sp       source.Span
}

func (e *Ident) Span() source.Span      { return e.Sp }
func (e *IntLit) Span() source.Span     { return e.Sp }
func (e *StringLit) Span() source.Span  { return e.Sp }
func (e *BoolLit) Span() source.Span    { return e.Sp }
func (e *BinaryExpr) Span() source.Span { return e.Sp }
func (e *ParenExpr) Span() source.Span  { return e.Sp }
func (e *MemberExpr) Span() source.Span { return e.Sp }
func (e *CallExpr) Span() source.Span   { return e.Sp }

func (*Ident) Accept(Visitor)     {}
func (*IntLit) Accept(Visitor)    {}
func (*StringLit) Accept(Visitor) {}
func (*BoolLit) Accept(Visitor)   {}

func (e *BinaryExpr) Accept(v Visitor) {
	e.X.Accept(v)
	e.Y.Accept(v)
}

func (e *ParenExpr) Accept(v Visitor) { e.X.Accept(v) }

func (e *MemberExpr) Accept(v Visitor) { e.X.Accept(v) }

func (e *CallExpr) Accept(v Visitor) {
	if len(e.TypeArgs) > 0 {
		v.VisitGenericFunctionCall(e)
	}
	e.Callee.Accept(v)
	for _, a := range e.Args {
		a.Accept(v)
	}
}

// CalleeName returns the called identifier for plain calls.
func (e *CallExpr) CalleeName() (string, bool) {
	id, ok := e.Callee.(*Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

func (*Ident) exprNode()      {}
func (*IntLit) exprNode()     {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*BinaryExpr) exprNode() {}
func (*ParenExpr) exprNode()  {}
func (*MemberExpr) exprNode() {}
func (*CallExpr) exprNode()   {}

package ast

// Inspect traverses n depth-first in source order and calls fn for every
// node, including expressions the Visitor protocol never dispatches. If fn
// returns false the children of that node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch x := n.(type) {
	case *Program:
		for _, f := range x.Files {
			Inspect(f, fn)
		}
	case *File:
		for _, it := range x.Items {
			Inspect(it, fn)
		}
	case *FunctionDecl:
		for _, p := range x.Params {
			Inspect(p, fn)
		}
		if x.Result != nil {
			Inspect(x.Result, fn)
		}
		if x.Body != nil {
			Inspect(x.Body, fn)
		}
	case *ClassDecl:
		for _, m := range x.Members {
			Inspect(m, fn)
		}
	case *Block:
		for _, s := range x.Stmts {
			Inspect(s, fn)
		}
	case *LetStmt:
		Inspect(x.Decl, fn)
		if x.Value != nil {
			Inspect(x.Value, fn)
		}
	case *ReturnStmt:
		if x.Value != nil {
			Inspect(x.Value, fn)
		}
	case *ExprStmt:
		Inspect(x.X, fn)
	case *BinaryExpr:
		Inspect(x.X, fn)
		Inspect(x.Y, fn)
	case *ParenExpr:
		Inspect(x.X, fn)
	case *MemberExpr:
		Inspect(x.X, fn)
	case *CallExpr:
		Inspect(x.Callee, fn)
		for _, a := range x.Args {
			Inspect(a, fn)
		}
	}
}

// Stats counts node categories; `wss scopes --stats` prints them.
type Stats struct {
	Functions    int
	Classes      int
	Libraries    int
	GenericDecls int
	GenericCalls int
	TypeDecls    int
}

func Collect(n Node) Stats {
	var s Stats
	Inspect(n, func(n Node) bool {
		switch x := n.(type) {
		case *FunctionDecl:
			s.Functions++
			s.countDecl(&x.DeclBase)
		case *ClassDecl:
			s.Classes++
			s.countDecl(&x.DeclBase)
		case *CallExpr:
			if len(x.TypeArgs) > 0 {
				s.GenericCalls++
			}
		case *TypeDecl:
			s.TypeDecls++
		}
		return true
	})
	return s
}

func (s *Stats) countDecl(d *DeclBase) {
	if d.Library {
		s.Libraries++
	}
	if d.IsGeneric() {
		s.GenericDecls++
	}
}

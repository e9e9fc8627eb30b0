package emit

import (
	"wss/internal/ast"
	"wss/internal/naming"
	"wss/internal/scope"
)

func (p *printer) stmt(at scope.NodeID, s ast.Stmt) {
	switch x := s.(type) {
	case *ast.Block:
		p.line("{")
		p.depth++
		for _, inner := range x.Stmts {
			p.stmt(at, inner)
		}
		p.depth--
		p.line("}")
	case *ast.LetStmt:
		p.open("let ")
		p.ident(at, x.Decl.Name)
		if x.Decl.Type != nil {
			p.buf.WriteString(": ")
			p.buf.WriteString(naming.TypeString(p.tree, at, x.Decl.Type))
		}
		p.buf.WriteString(" = ")
		p.expr(at, x.Value)
		p.buf.WriteString(";\n")
	case *ast.ReturnStmt:
		p.open("return")
		if x.Value != nil {
			p.buf.WriteByte(' ')
			p.expr(at, x.Value)
		}
		p.buf.WriteString(";\n")
	case *ast.ExprStmt:
		p.open("")
		p.expr(at, x.X)
		p.buf.WriteString(";\n")
	}
}

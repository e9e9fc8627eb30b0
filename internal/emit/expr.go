package emit

import (
	"wss/internal/ast"
	"wss/internal/naming"
	"wss/internal/scope"
	"wss/internal/token"
)

var opText = map[token.Kind]string{
	token.Plus:   "+",
	token.Minus:  "-",
	token.Star:   "*",
	token.Slash:  "/",
	token.EqEq:   "==",
	token.BangEq: "!=",
	token.Lt:     "<",
	token.LtEq:   "<=",
	token.Gt:     ">",
	token.GtEq:   ">=",
}

// ident writes name through the scope tree's identifier hook.
func (p *printer) ident(at scope.NodeID, name string) {
	if p.err != nil {
		return
	}
	p.err = p.tree.WriteIdentifier(&p.buf, at, name)
}

func (p *printer) expr(at scope.NodeID, e ast.Expr) {
	switch x := e.(type) {
	case *ast.Ident:
		p.ident(at, x.Name)
	case *ast.IntLit:
		p.buf.WriteString(x.Text)
	case *ast.StringLit:
		p.buf.WriteString(x.Text)
	case *ast.BoolLit:
		if x.Value {
			p.buf.WriteString("true")
		} else {
			p.buf.WriteString("false")
		}
	case *ast.BinaryExpr:
		p.expr(at, x.X)
		p.buf.WriteString(" " + opText[x.Op] + " ")
		p.expr(at, x.Y)
	case *ast.ParenExpr:
		p.buf.WriteByte('(')
		p.expr(at, x.X)
		p.buf.WriteByte(')')
	case *ast.MemberExpr:
		p.expr(at, x.X)
		p.buf.WriteByte('.')
		p.buf.WriteString(x.Name)
	case *ast.CallExpr:
		p.call(at, x)
	}
}

func (p *printer) call(at scope.NodeID, c *ast.CallExpr) {
	name, plain := c.CalleeName()
	switch {
	case plain && len(c.TypeArgs) > 0:
		args := naming.TypeArgs(p.tree, at, c.TypeArgs)
		p.buf.WriteString(naming.Qualify(c.Accessor, naming.Mangle(name, args)))
	case plain:
		p.buf.WriteString(naming.Qualify(p.globalAccessor(at, name), name))
	default:
		p.expr(at, c.Callee)
	}
	p.buf.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.expr(at, a)
	}
	p.buf.WriteByte(')')
}

// globalAccessor returns the accessor of the file-level function or class
// a plain call refers to, or "" when it is not library code. Local names
// shadow globals.
func (p *printer) globalAccessor(at scope.NodeID, name string) string {
	if _, _, local := p.tree.Lookup(at, name); local {
		return ""
	}
	if id, ok := p.tree.FindGlobalFunction(at, name); ok {
		return p.tree.Accessor(id)
	}
	if id, ok := p.tree.FindGlobalClass(at, name); ok {
		return p.tree.Accessor(id)
	}
	return ""
}

package passes

import (
	"wss/internal/ast"
	"wss/internal/scope"
)

// LibraryMarker turns every declaration written under the library keyword
// into a library scope. Library status only reaches children at attach
// time, so the subtree built by ContextBuilder is re-attached, in order, to
// pick it up.
type LibraryMarker struct {
	ast.BaseVisitor
	env *Env
	// Exports lists library declarations in source order.
	Exports []ast.Decl
}

func NewLibraryMarker(env *Env) *LibraryMarker {
	return &LibraryMarker{env: env}
}

func (m *LibraryMarker) Kind() ast.VisitorKind { return ast.LibraryEmitterVisitor }

func (m *LibraryMarker) VisitFunctionDeclaration(f *ast.FunctionDecl) { m.mark(f) }

func (m *LibraryMarker) VisitClassDeclaration(c *ast.ClassDecl) { m.mark(c) }

func (m *LibraryMarker) mark(d ast.Decl) {
	base := d.Base()
	if !base.Library || !base.Scope.IsValid() {
		return
	}
	m.env.Tree.SetAsLibrary(base.Scope)
	m.reattach(base.Scope)
	m.Exports = append(m.Exports, d)
}

func (m *LibraryMarker) reattach(id scope.NodeID) {
	t := m.env.Tree
	for _, child := range t.Children(id) {
		t.Attach(child, id)
		m.reattach(child)
	}
}

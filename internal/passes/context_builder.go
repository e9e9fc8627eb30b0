package passes

import (
	"wss/internal/ast"
	"wss/internal/diag"
	"wss/internal/scope"
	"wss/internal/source"
	"wss/internal/trace"
)

// ContextBuilder creates the scope tree: a program root, one node per
// file, and one node per function or class attached to its lexical parent.
// Type parameters, parameters, let bindings and fields are declared in the
// node of the declaration that owns them.
type ContextBuilder struct {
	ast.BaseVisitor
	env *Env
}

func NewContextBuilder(env *Env) *ContextBuilder {
	return &ContextBuilder{env: env}
}

func (b *ContextBuilder) Kind() ast.VisitorKind { return ast.ContextBuildingVisitor }

// Build creates the root and file nodes and visits every file.
func (b *ContextBuilder) Build(prog *ast.Program) scope.NodeID {
	t := b.env.Tree
	prog.Scope = t.New(scope.ProgramLabel(), nil)
	for _, f := range prog.Files {
		f.Scope = t.New(scope.FileLabel(f.Path), nil)
		t.Attach(f.Scope, prog.Scope)
		f.Accept(b)
	}
	return prog.Scope
}

// VisitFunctionDeclaration rejects type parameters on methods: call sites
// only resolve file-level targets, so a method variant could never be
// registered.
func (b *ContextBuilder) VisitFunctionDeclaration(f *ast.FunctionDecl) {
	if f.Owner != nil && f.IsGeneric() {
		b.env.errorf(diag.SemaGenericMethod, f.NameSpan, "method "+f.Name+" cannot declare type parameters").Emit()
	}
	id := b.open(f, scope.FunctionLabel(f.Name))
	for _, p := range f.Params {
		b.declare(id, p.Name, p.NameSpan, "param "+p.Type.String())
	}
	if f.Body == nil {
		return
	}
	ast.Inspect(f.Body, func(n ast.Node) bool {
		if let, ok := n.(*ast.LetStmt); ok {
			value := "let"
			if let.Decl.Type != nil {
				value += " " + let.Decl.Type.String()
			}
			b.declare(id, let.Decl.Name, let.Decl.NameSpan, value)
		}
		return true
	})
}

func (b *ContextBuilder) VisitClassDeclaration(c *ast.ClassDecl) {
	id := b.open(c, scope.ClassLabel(c.Name))
	for _, fld := range c.Fields() {
		b.declare(id, fld.Name, fld.NameSpan, "field "+fld.Type.String())
	}
}

// open allocates the node for d, attaches it and declares type parameters.
func (b *ContextBuilder) open(d ast.Decl, label string) scope.NodeID {
	t := b.env.Tree
	base := d.Base()
	id := t.New(label, base.TypeParams)
	base.Scope = id

	parent := base.File.Scope
	if base.Owner != nil {
		parent = base.Owner.Base().Scope
	}
	t.Attach(id, parent)

	for i, tp := range base.TypeParams {
		b.declare(id, tp, base.TypeParamSpans[i], "type-param")
	}
	trace.Point(b.env.tracer(), trace.ScopeNode, label, "", b.env.SpanID)
	return id
}

func (b *ContextBuilder) declare(id scope.NodeID, name string, sp source.Span, value string) {
	if b.env.Tree.Declare(id, name, value) {
		return
	}
	b.env.errorf(diag.SemaDuplicateDeclaration, sp, name+" is already declared in "+b.env.Tree.Name(id)).Emit()
}

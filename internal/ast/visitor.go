package ast

// VisitorKind names a pass for tracing and diagnostics.
type VisitorKind uint8

const (
	FunctionDeclarationVisitor VisitorKind = iota
	GenericCallsVisitor
	ContextBuildingVisitor
	LibraryEmitterVisitor
)

func (k VisitorKind) String() string {
	switch k {
	case FunctionDeclarationVisitor:
		return "function-declarations"
	case GenericCallsVisitor:
		return "generic-calls"
	case ContextBuildingVisitor:
		return "context-building"
	case LibraryEmitterVisitor:
		return "library-emitter"
	}
	return "unknown"
}

// Visitor receives the four dispatchable node kinds.
type Visitor interface {
	VisitFunctionDeclaration(*FunctionDecl)
	VisitClassDeclaration(*ClassDecl)
	VisitGenericFunctionCall(*CallExpr)
	VisitGenericVariableDeclaration(*TypeDecl)
	Kind() VisitorKind
}

// BaseVisitor provides no-op visits. Embed it and override what you need;
// Kind is left to the embedding type.
type BaseVisitor struct{}

func (BaseVisitor) VisitFunctionDeclaration(*FunctionDecl)    {}
func (BaseVisitor) VisitClassDeclaration(*ClassDecl)          {}
func (BaseVisitor) VisitGenericFunctionCall(*CallExpr)        {}
func (BaseVisitor) VisitGenericVariableDeclaration(*TypeDecl) {}

package passes

import (
	"wss/internal/ast"
	"wss/internal/diag"
)

// ProgramInfo indexes the file-level declarations of a program.
type ProgramInfo struct {
	Functions        map[string]*ast.FunctionDecl
	Classes          map[string]*ast.ClassDecl
	GenericFunctions []*ast.FunctionDecl
	GenericClasses   []*ast.ClassDecl
}

func NewProgramInfo() *ProgramInfo {
	return &ProgramInfo{
		Functions: make(map[string]*ast.FunctionDecl),
		Classes:   make(map[string]*ast.ClassDecl),
	}
}

// FunctionVisitor fills a ProgramInfo. The first declaration of a name
// wins; later ones are reported as duplicates.
type FunctionVisitor struct {
	ast.BaseVisitor
	env  *Env
	Info *ProgramInfo
}

func NewFunctionVisitor(env *Env) *FunctionVisitor {
	return &FunctionVisitor{env: env, Info: NewProgramInfo()}
}

func (v *FunctionVisitor) Kind() ast.VisitorKind { return ast.FunctionDeclarationVisitor }

func (v *FunctionVisitor) VisitFunctionDeclaration(f *ast.FunctionDecl) {
	if f.Owner != nil {
		return
	}
	if prev, dup := v.Info.Functions[f.Name]; dup {
		v.env.errorf(diag.SemaDuplicateFunction, f.NameSpan, "function "+f.Name+" is already declared").
			WithNote(prev.NameSpan, "previous declaration").
			Emit()
		return
	}
	v.Info.Functions[f.Name] = f
	if f.IsGeneric() {
		v.Info.GenericFunctions = append(v.Info.GenericFunctions, f)
	}
}

func (v *FunctionVisitor) VisitClassDeclaration(c *ast.ClassDecl) {
	if c.Owner != nil {
		return
	}
	if prev, dup := v.Info.Classes[c.Name]; dup {
		v.env.errorf(diag.SemaDuplicateClass, c.NameSpan, "class "+c.Name+" is already declared").
			WithNote(prev.NameSpan, "previous declaration").
			Emit()
		return
	}
	v.Info.Classes[c.Name] = c
	if c.IsGeneric() {
		v.Info.GenericClasses = append(v.Info.GenericClasses, c)
	}
}

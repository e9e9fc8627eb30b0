// Package emit writes the compiled form of a parsed file. Generic
// declarations are written once per registered variant under a mangled
// name, with that variant active so every identifier in the body resolves
// through the scope tree. Library declarations are wrapped in a block
// named by their accessor, and references to them are qualified with it.
package emit

import (
	"bytes"
	"io"
	"strings"

	"wss/internal/ast"
	"wss/internal/naming"
	"wss/internal/scope"
)

type Options struct {
	// Indent is one indentation level; four spaces when empty.
	Indent string
	// Header, when set, is written as a leading comment line.
	Header string
}

type printer struct {
	tree   *scope.Tree
	buf    bytes.Buffer
	indent string
	depth  int
	err    error
}

// File writes the compiled form of f to w.
func File(w io.Writer, tree *scope.Tree, f *ast.File, opts Options) error {
	p := &printer{tree: tree, indent: opts.Indent}
	if p.indent == "" {
		p.indent = "    "
	}
	if opts.Header != "" {
		p.line("// " + opts.Header)
	}
	for i, item := range f.Items {
		if i > 0 || opts.Header != "" {
			p.buf.WriteByte('\n')
		}
		p.item(item)
	}
	if p.err != nil {
		return p.err
	}
	_, err := w.Write(p.buf.Bytes())
	return err
}

func (p *printer) line(s string) {
	p.buf.WriteString(strings.Repeat(p.indent, p.depth))
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

func (p *printer) open(s string) {
	p.buf.WriteString(strings.Repeat(p.indent, p.depth))
	p.buf.WriteString(s)
}

func (p *printer) item(d ast.Decl) {
	base := d.Base()
	if base.Library {
		p.line("library " + p.tree.Accessor(base.Scope) + " {")
		p.depth++
		p.decl(d)
		p.depth--
		p.line("}")
		return
	}
	p.decl(d)
}

// decl writes d once, or once per variant when it is generic.
func (p *printer) decl(d ast.Decl) {
	base := d.Base()
	if !base.IsGeneric() {
		p.declAs(d, base.Name)
		return
	}
	gen := p.tree.Generics(base.Scope)
	keys := gen.Keys()
	if len(keys) == 0 {
		p.line("// no instantiations of " + base.Name)
		return
	}
	defer p.tree.ClearActiveVariant(base.Scope)
	for _, key := range keys {
		if err := p.tree.SetActiveVariant(base.Scope, key); err != nil {
			p.err = err
			return
		}
		p.declAs(d, naming.Mangle(base.Name, gen.Args(key)))
	}
}

func (p *printer) declAs(d ast.Decl, name string) {
	switch x := d.(type) {
	case *ast.FunctionDecl:
		p.function(x, name)
	case *ast.ClassDecl:
		p.class(x, name)
	}
}

func (p *printer) function(f *ast.FunctionDecl, name string) {
	var sb strings.Builder
	sb.WriteString("function ")
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, param := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.tree.Resolve(f.Scope, param.Name))
		sb.WriteString(": ")
		sb.WriteString(naming.TypeString(p.tree, f.Scope, param.Type))
	}
	sb.WriteByte(')')
	if f.Result != nil {
		sb.WriteString(": ")
		sb.WriteString(naming.TypeString(p.tree, f.Scope, f.Result.Type))
	}
	sb.WriteString(" {\n")
	p.open(sb.String())
	p.depth++
	if f.Body != nil {
		for _, s := range f.Body.Stmts {
			p.stmt(f.Scope, s)
		}
	}
	p.depth--
	p.line("}")
}

func (p *printer) class(c *ast.ClassDecl, name string) {
	p.line("class " + name + " {")
	p.depth++
	for _, m := range c.Members {
		switch x := m.(type) {
		case *ast.TypeDecl:
			p.line(p.tree.Resolve(c.Scope, x.Name) + ": " + naming.TypeString(p.tree, c.Scope, x.Type) + ";")
		case *ast.FunctionDecl:
			p.decl(x)
		}
	}
	p.depth--
	p.line("}")
}

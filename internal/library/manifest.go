// Package library records what a build exports under the library keyword:
// every library declaration with its accessor and the instantiations that
// were emitted for it. The manifest is stored as msgpack next to the
// emitted files so other builds can reference the qualified names.
package library

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"wss/internal/ast"
	"wss/internal/naming"
	"wss/internal/scope"
)

// SchemaVersion is bumped whenever the Manifest layout changes.
const SchemaVersion uint16 = 1

// Ext is the manifest file extension.
const Ext = ".wsl"

// FileName returns the manifest's name for pkg inside an output directory.
func FileName(pkg string) string { return pkg + Ext }

var ErrSchemaMismatch = errors.New("library manifest schema mismatch")

type Kind uint8

const (
	KindFunction Kind = iota + 1
	KindClass
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	default:
		return "unknown"
	}
}

type Variant struct {
	Key  string   `msgpack:"key"`
	Args []string `msgpack:"args"`
}

type Entry struct {
	Name       string    `msgpack:"name"`
	Kind       Kind      `msgpack:"kind"`
	Accessor   string    `msgpack:"accessor"`
	File       string    `msgpack:"file"`
	TypeParams []string  `msgpack:"type_params,omitempty"`
	Variants   []Variant `msgpack:"variants,omitempty"`
}

// Symbols lists the qualified names the entry was emitted under: one per
// variant for generic declarations, otherwise just its own name. A generic
// entry without variants has no symbols.
func (e *Entry) Symbols() []string {
	if len(e.TypeParams) == 0 {
		return []string{naming.Qualify(e.Accessor, e.Name)}
	}
	out := make([]string, 0, len(e.Variants))
	for _, v := range e.Variants {
		out = append(out, naming.Qualify(e.Accessor, naming.Mangle(e.Name, v.Args)))
	}
	return out
}

type Manifest struct {
	Schema  uint16  `msgpack:"schema"`
	Package string  `msgpack:"package"`
	Entries []Entry `msgpack:"entries"`
}

// Build collects exports, in order, into a manifest. It must run after
// instantiation so the variant lists are final.
func Build(tree *scope.Tree, pkg string, exports []ast.Decl) *Manifest {
	m := &Manifest{Schema: SchemaVersion, Package: pkg, Entries: make([]Entry, 0, len(exports))}
	for _, d := range exports {
		base := d.Base()
		e := Entry{
			Name:     base.Name,
			Accessor: tree.Accessor(base.Scope),
		}
		switch d.(type) {
		case *ast.FunctionDecl:
			e.Kind = KindFunction
		case *ast.ClassDecl:
			e.Kind = KindClass
		}
		if base.File != nil {
			e.File = base.File.Path
		}
		if gen := tree.Generics(base.Scope); gen != nil {
			e.TypeParams = gen.Params()
			for _, key := range gen.Keys() {
				e.Variants = append(e.Variants, Variant{Key: key, Args: gen.Args(key)})
			}
		}
		m.Entries = append(m.Entries, e)
	}
	return m
}

// Lookup finds the entry declaring name.
func (m *Manifest) Lookup(name string) (*Entry, bool) {
	for i := range m.Entries {
		if m.Entries[i].Name == name {
			return &m.Entries[i], true
		}
	}
	return nil, false
}

func Encode(w io.Writer, m *Manifest) error {
	return msgpack.NewEncoder(w).Encode(m)
}

func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := msgpack.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	if m.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, m.Schema, SchemaVersion)
	}
	return &m, nil
}

// Write stores m at path, replacing any existing file atomically.
func Write(path string, m *Manifest) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if err = Encode(f, m); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

func Read(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

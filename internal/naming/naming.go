// Package naming builds the emitted names of generic instantiations and
// the textual form of type references under the currently active variants.
package naming

import (
	"strings"

	"wss/internal/ast"
	"wss/internal/scope"
)

// Sep joins a generic name with its type arguments: Box<Int, Str> becomes
// Box_Int_Str.
const Sep = "_"

// argEscaper rewrites the characters of a type argument that would
// otherwise read as separators. Escapes are Sep plus a digit; a separator
// is always followed by an argument, which starts like an identifier and
// so never with a digit. That keeps Mangle injective for a given base:
// pair<Int_Str, Bool> and pair<Int, Str_Bool> stay apart.
var argEscaper = strings.NewReplacer(
	Sep, Sep+"0",
	".", Sep+"1",
)

// Mangle returns the instantiated name of base with the given concrete
// type arguments. Arguments are escaped so nested instantiations and
// qualified names (acc.Box_Int) fold into one identifier without
// ambiguity: Box<Box<Int>> becomes Box_Box_0Int.
func Mangle(base string, args []string) string {
	if len(args) == 0 {
		return base
	}
	var sb strings.Builder
	sb.WriteString(base)
	for _, a := range args {
		sb.WriteString(Sep)
		sb.WriteString(argEscaper.Replace(a))
	}
	return sb.String()
}

// Qualify prefixes name with a library accessor when one is given.
func Qualify(accessor, name string) string {
	if accessor == "" {
		return name
	}
	return accessor + "." + name
}

// TypeString renders ref as seen from the scope node at, resolving type
// parameters through the active variants. Parameterised references render
// as their mangled instantiation, and references to library classes are
// qualified with the class accessor.
func TypeString(t *scope.Tree, at scope.NodeID, ref *ast.TypeRef) string {
	if ref == nil {
		return ""
	}
	if len(ref.Args) == 0 {
		resolved := t.Resolve(at, ref.Name)
		if resolved != ref.Name {
			return resolved
		}
		return Qualify(classAccessor(t, at, ref.Name), ref.Name)
	}
	return Qualify(classAccessor(t, at, ref.Name), Mangle(ref.Name, TypeArgs(t, at, ref.Args)))
}

// TypeArgs renders every argument with TypeString.
func TypeArgs(t *scope.Tree, at scope.NodeID, args []*ast.TypeRef) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = TypeString(t, at, a)
	}
	return out
}

func classAccessor(t *scope.Tree, at scope.NodeID, name string) string {
	cls, ok := t.FindGlobalClass(at, name)
	if !ok {
		return ""
	}
	return t.Accessor(cls)
}

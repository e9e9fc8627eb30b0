package passes

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"wss/internal/ast"
	"wss/internal/diag"
	"wss/internal/naming"
	"wss/internal/scope"
	"wss/internal/source"
	"wss/internal/trace"
)

// DefaultMaxRounds bounds the instantiation fixpoint. Polymorphic
// recursion such as f<T> calling f<Box<T>> never converges.
const DefaultMaxRounds = 32

// ErrInstantiationLimit is returned by Instantiate when the fixpoint did
// not converge within the round limit.
var ErrInstantiationLimit = errors.New("instantiation limit reached")

// Site is one use of a generic declaration with explicit type arguments.
type Site struct {
	// Scope is the node the type arguments are resolved from.
	Scope  scope.NodeID
	Target scope.NodeID
	Args   []*ast.TypeRef
	Span   source.Span
	// exactly one of Call and Type is set
	Call *ast.CallExpr
	Type *ast.TypeRef
}

// GenericCalls collects generic call sites and parameterised type uses,
// checking that each names a generic file-level declaration with the
// right number of type arguments. Invalid sites are reported and dropped,
// so Instantiate never hits the arity error of the scope tree.
type GenericCalls struct {
	ast.BaseVisitor
	env   *Env
	Sites []*Site
}

func NewGenericCalls(env *Env) *GenericCalls {
	return &GenericCalls{env: env}
}

func (g *GenericCalls) Kind() ast.VisitorKind { return ast.GenericCallsVisitor }

func (g *GenericCalls) VisitGenericFunctionCall(c *ast.CallExpr) {
	if c.Owner == nil {
		return
	}
	at := c.Owner.Base().Scope
	name, ok := c.CalleeName()
	if !ok {
		g.env.errorf(diag.SemaUnknownGenericTarget, c.Sp, "type arguments are only supported on calls to file-level functions and classes").Emit()
		return
	}
	t := g.env.Tree
	target, found := t.FindGlobalFunction(at, name)
	if !found {
		target, found = t.FindGlobalClass(at, name)
	}
	if !found {
		g.env.errorf(diag.SemaUnknownGenericTarget, c.Callee.Span(), "no function or class named "+name).Emit()
		return
	}
	if !g.checkTarget(target, name, len(c.TypeArgs), c.Sp) {
		return
	}
	c.Target = target
	c.Accessor = t.Accessor(target)
	g.Sites = append(g.Sites, &Site{Scope: at, Target: target, Args: c.TypeArgs, Span: c.Sp, Call: c})
	for _, arg := range c.TypeArgs {
		g.collectType(at, arg)
	}
}

func (g *GenericCalls) VisitGenericVariableDeclaration(d *ast.TypeDecl) {
	if d.Owner == nil {
		return
	}
	g.collectType(d.Owner.Base().Scope, d.Type)
}

// collectType records ref and every parameterised type nested in it.
func (g *GenericCalls) collectType(at scope.NodeID, ref *ast.TypeRef) {
	if !ref.IsGeneric() {
		return
	}
	t := g.env.Tree
	target, found := t.FindGlobalClass(at, ref.Name)
	if !found {
		g.env.errorf(diag.SemaUnknownGenericTarget, ref.Sp, "no class named "+ref.Name).Emit()
		return
	}
	if !g.checkTarget(target, ref.Name, len(ref.Args), ref.Sp) {
		return
	}
	ref.Target = target
	ref.Accessor = t.Accessor(target)
	g.Sites = append(g.Sites, &Site{Scope: at, Target: target, Args: ref.Args, Span: ref.Sp, Type: ref})
	for _, arg := range ref.Args {
		g.collectType(at, arg)
	}
}

func (g *GenericCalls) checkTarget(target scope.NodeID, name string, got int, sp source.Span) bool {
	gen := g.env.Tree.Generics(target)
	if gen == nil {
		g.env.errorf(diag.SemaNotGeneric, sp, name+" does not take type arguments").Emit()
		return false
	}
	if want := len(gen.Params()); want != got {
		g.env.errorf(diag.SemaTypeArgCount, sp, fmt.Sprintf("%s takes %d type argument(s), got %d", name, want, got)).Emit()
		return false
	}
	return true
}

// InstantiateStats summarises a fixpoint run.
type InstantiateStats struct {
	Rounds   int
	Variants int
}

// Instantiate registers a variant for every site under every combination
// of active variants of the site's generic ancestors, repeating until a
// round adds nothing. A generic ancestor with no variants contributes no
// combination, since its body is never emitted.
func (g *GenericCalls) Instantiate(ctx context.Context, maxRounds int) (InstantiateStats, error) {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	var stats InstantiateStats
	for stats.Rounds < maxRounds {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Rounds++
		added, err := g.round()
		if err != nil {
			return stats, err
		}
		stats.Variants += added
		trace.Point(g.env.tracer(), trace.ScopeFile, "instantiate-round", strconv.Itoa(added)+" new", g.env.SpanID)
		if added == 0 {
			return stats, nil
		}
	}
	if len(g.Sites) > 0 {
		diag.ReportError(g.env.Reporter, diag.SemaInstantiationLimit, g.Sites[0].Span,
			fmt.Sprintf("generic instantiation did not converge after %d rounds", maxRounds)).Emit()
	}
	return stats, fmt.Errorf("%w after %d rounds", ErrInstantiationLimit, maxRounds)
}

func (g *GenericCalls) round() (int, error) {
	t := g.env.Tree
	added := 0
	for _, site := range g.Sites {
		ancestors := t.GenericAncestors(site.Scope)
		err := forEachCombination(t, ancestors, func() error {
			gen := t.Generics(site.Target)
			before := gen.Len()
			if _, err := t.RegisterGenericCall(site.Target, naming.TypeArgs(t, site.Scope, site.Args)); err != nil {
				return err
			}
			added += gen.Len() - before
			return nil
		})
		if err != nil {
			return added, err
		}
	}
	return added, nil
}

// forEachCombination activates every combination of variants across nodes
// and calls fn for each. Keys are snapshotted first so fn may add variants
// to the nodes being iterated. Active variants are cleared afterwards.
func forEachCombination(t *scope.Tree, nodes []scope.NodeID, fn func() error) error {
	keys := make([][]string, len(nodes))
	for i, id := range nodes {
		keys[i] = t.Generics(id).Keys()
		if len(keys[i]) == 0 {
			return nil
		}
	}
	defer func() {
		for _, id := range nodes {
			t.ClearActiveVariant(id)
		}
	}()

	var walk func(i int) error
	walk = func(i int) error {
		if i == len(nodes) {
			return fn()
		}
		for _, key := range keys[i] {
			if err := t.SetActiveVariant(nodes[i], key); err != nil {
				return err
			}
			if err := walk(i + 1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(0)
}

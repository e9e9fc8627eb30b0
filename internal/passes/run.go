package passes

import (
	"context"
	"strconv"

	"wss/internal/ast"
	"wss/internal/scope"
	"wss/internal/trace"
)

type Options struct {
	MaxRounds int
}

// Result is what the passes leave behind for emission.
type Result struct {
	Info    *ProgramInfo
	Exports []ast.Decl
	Sites   []*Site
	Stats   InstantiateStats
}

// Run executes every pass over prog in order. The returned error is fatal
// (arity mismatch reaching the scope tree, non-convergence or
// cancellation); user errors are reported through env.Reporter.
func Run(ctx context.Context, env *Env, prog *ast.Program, opts Options) (*Result, error) {
	if env.Tree == nil {
		env.Tree = scope.NewTree(0)
	}
	res := &Result{}
	tr := env.tracer()
	parent := env.SpanID
	defer func() { env.SpanID = parent }()

	step := func(kind ast.VisitorKind, fn func()) {
		sp := trace.Begin(tr, trace.ScopePass, kind.String(), parent)
		env.SpanID = sp.ID()
		fn()
		sp.End("")
	}

	fv := NewFunctionVisitor(env)
	step(fv.Kind(), func() { prog.Accept(fv) })
	res.Info = fv.Info

	cb := NewContextBuilder(env)
	step(cb.Kind(), func() { cb.Build(prog) })

	lm := NewLibraryMarker(env)
	step(lm.Kind(), func() { prog.Accept(lm) })
	res.Exports = lm.Exports

	gc := NewGenericCalls(env)
	step(gc.Kind(), func() { prog.Accept(gc) })
	res.Sites = gc.Sites

	sp := trace.Begin(tr, trace.ScopePass, "instantiate", parent)
	env.SpanID = sp.ID()
	stats, err := gc.Instantiate(ctx, opts.MaxRounds)
	res.Stats = stats
	sp.WithExtra("rounds", strconv.Itoa(stats.Rounds)).
		WithExtra("variants", strconv.Itoa(stats.Variants)).
		End("")
	if err != nil {
		return res, err
	}
	return res, nil
}

// Package driver runs a whole compilation over a set of source files:
// loading, parallel parsing and the scope and generics passes. It stops
// short of writing output, which buildpipeline does.
package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"wss/internal/ast"
	"wss/internal/diag"
	"wss/internal/observ"
	"wss/internal/parser"
	"wss/internal/passes"
	"wss/internal/scope"
	"wss/internal/source"
	"wss/internal/trace"
)

// ErrNoSources is returned when a request names no files.
var ErrNoSources = errors.New("no source files")

type Request struct {
	// Files are loaded in the given order, which is also file order in the
	// scope tree.
	Files []string
	// BaseDir makes file labels and diagnostics relative.
	BaseDir        string
	MaxDiagnostics int
	// Jobs bounds parallel parsing; zero means GOMAXPROCS.
	Jobs      int
	MaxRounds int
	Observer  PhaseObserver
	// TreeOptions are passed to scope.NewTree.
	TreeOptions []scope.Option
}

type Result struct {
	FileSet *source.FileSet
	Bag     *diag.Bag
	Program *ast.Program
	Tree    *scope.Tree
	Passes  *passes.Result
	Timer   *observ.Timer
}

// Failed reports whether the compilation produced errors and must not be
// emitted.
func (r *Result) Failed() bool {
	return r.Bag.HasErrors() || r.Passes == nil
}

// Compile loads, parses and analyses req.Files. User errors end up in
// Result.Bag; the returned error is reserved for failures that abort the
// compilation (cancellation, non-converging instantiation, a broken scope
// tree). The tracer is taken from ctx.
func Compile(ctx context.Context, req Request) (*Result, error) {
	if len(req.Files) == 0 {
		return nil, ErrNoSources
	}
	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeDriver, "compile", trace.SpanFromContext(ctx))
	root.WithExtra("files", strconv.Itoa(len(req.Files)))
	defer root.End("")

	res := &Result{
		FileSet: source.NewFileSetWithBase(req.BaseDir),
		Bag:     diag.NewBag(req.MaxDiagnostics),
		Program: &ast.Program{},
		Timer:   observ.NewTimer(),
	}

	ids, err := phase(res, req.Observer, PhaseLoad, func() ([]source.FileID, error) {
		return loadFiles(res, req.Files), nil
	})
	if err != nil {
		return res, err
	}

	files, err := phase(res, req.Observer, PhaseParse, func() ([]*ast.File, error) {
		return parseFiles(ctx, res, ids, req, root.ID())
	})
	if err != nil {
		return res, err
	}
	res.Program.Files = files
	if res.Bag.HasErrors() {
		return res, nil
	}

	res.Tree = scope.NewTree(0, req.TreeOptions...)
	_, err = phase(res, req.Observer, PhaseScopes, func() (struct{}, error) {
		env := &passes.Env{
			Tree:     res.Tree,
			Reporter: diag.BagReporter{Bag: res.Bag},
			Tracer:   tr,
			SpanID:   root.ID(),
		}
		out, err := passes.Run(ctx, env, res.Program, passes.Options{MaxRounds: req.MaxRounds})
		if err != nil {
			return struct{}{}, err
		}
		res.Passes = out
		if err := res.Tree.Validate(); err != nil {
			return struct{}{}, fmt.Errorf("scope tree: %w", err)
		}
		return struct{}{}, nil
	})
	return res, err
}

// phase times fn and reports its boundaries to obs.
func phase[T any](res *Result, obs PhaseObserver, name string, fn func() (T, error)) (T, error) {
	obs.emit(PhaseEvent{Name: name, Status: PhaseStart})
	var out T
	elapsed, err := res.Timer.Track(name, func() error {
		var err error
		out, err = fn()
		return err
	})
	obs.emit(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed, Err: err})
	return out, err
}

// loadFiles reads every path into the file set. Unreadable files become
// diagnostics and are skipped.
func loadFiles(res *Result, paths []string) []source.FileID {
	ids := make([]source.FileID, 0, len(paths))
	for _, path := range paths {
		id, err := res.FileSet.Load(path)
		if err != nil {
			res.Bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOLoadFileError,
				Message:  "failed to load file: " + err.Error(),
			})
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// parseFiles parses every file concurrently. Parsing never touches the
// scope tree, so the only shared state is the bag behind a lock. Results
// keep input order.
func parseFiles(ctx context.Context, res *Result, ids []source.FileID, req Request, parent uint64) ([]*ast.File, error) {
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	out := make([]*ast.File, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rep := &diag.LockedReporter{R: diag.BagReporter{Bag: res.Bag}}
	tr := trace.FromContext(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(ids)))
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f := res.FileSet.Get(id)
			rel := res.FileSet.RelPath(id)
			sp := trace.Begin(tr, trace.ScopeFile, "parse", parent).WithExtra("file", rel)
			req.Observer.emit(PhaseEvent{Name: PhaseParse, File: rel, Status: PhaseStart})
			start := time.Now()

			parsed := parser.ParseFile(f, parser.Options{
				MaxErrors: maxErrors(req.MaxDiagnostics),
				Reporter:  rep,
			})
			parsed.File.Path = rel
			out[i] = parsed.File

			sp.End(strconv.FormatUint(uint64(parsed.Errors), 10) + " errors")
			req.Observer.emit(PhaseEvent{Name: PhaseParse, File: rel, Status: PhaseEnd, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func maxErrors(n int) uint {
	if n <= 0 {
		return 0
	}
	return uint(n)
}

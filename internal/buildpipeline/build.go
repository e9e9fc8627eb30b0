// Package buildpipeline turns a set of source files into emitted output:
// it drives the compiler, writes one file per source and the library
// manifest, and reports per-file progress.
package buildpipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wss/internal/driver"
	"wss/internal/emit"
	"wss/internal/library"
	"wss/internal/project"
	"wss/internal/trace"
)

// OutputExt is the extension of emitted files.
const OutputExt = ".ws"

// ErrDiagnostics is returned when the compilation reported errors.
var ErrDiagnostics = errors.New("compilation reported errors")

type Request struct {
	driver.Request
	// Package names the library manifest; defaults to the base name of
	// OutDir's parent.
	Package  string
	OutDir   string
	Progress ProgressSink
}

type Result struct {
	Compile *driver.Result
	// Outputs are the emitted files, in source order.
	Outputs []string
	// Manifest is the written library manifest, empty when nothing was
	// exported.
	Manifest string
	Timings  Timings
}

// OutputPath maps a source path relative to the source root onto its
// emitted path under outDir.
func OutputPath(outDir, rel string) string {
	rel = strings.TrimSuffix(filepath.FromSlash(rel), project.SourceExt)
	return filepath.Join(outDir, rel+OutputExt)
}

// Build compiles req.Files and writes the results to req.OutDir.
func Build(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if req.OutDir == "" {
		return result, fmt.Errorf("missing output directory")
	}
	reqCopy := *req
	req = &reqCopy
	if req.Package == "" {
		req.Package = filepath.Base(filepath.Dir(req.OutDir))
	}

	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "build", trace.SpanFromContext(ctx))
	defer sp.End("")
	ctx = trace.WithSpan(ctx, sp.ID())

	files := displayFiles(req.Files, req.BaseDir)
	emitStage(req.Progress, files, StageParse, StatusQueued, nil, 0)
	req.Observer = observe(req.Progress, files, &result.Timings, req.Observer)

	res, err := driver.Compile(ctx, req.Request)
	result.Compile = res
	if err != nil {
		return result, err
	}
	if res.Failed() {
		emitStage(req.Progress, files, StageEmit, StatusError, ErrDiagnostics, 0)
		return result, ErrDiagnostics
	}

	start := time.Now()
	rendered := make([][]byte, len(res.Program.Files))
	for i, f := range res.Program.Files {
		emitStage(req.Progress, []string{f.Path}, StageEmit, StatusWorking, nil, 0)
		var buf bytes.Buffer
		if err := emit.File(&buf, res.Tree, f, emit.Options{Header: "generated by wss from " + f.Path}); err != nil {
			err = fmt.Errorf("emit %s: %w", f.Path, err)
			emitStage(req.Progress, []string{f.Path}, StageEmit, StatusError, err, 0)
			return result, err
		}
		rendered[i] = buf.Bytes()
	}
	result.Timings.Add(StageEmit, time.Since(start))

	start = time.Now()
	for i, f := range res.Program.Files {
		emitStage(req.Progress, []string{f.Path}, StageWrite, StatusWorking, nil, 0)
		out := OutputPath(req.OutDir, f.Path)
		if err := writeFile(out, rendered[i]); err != nil {
			emitStage(req.Progress, []string{f.Path}, StageWrite, StatusError, err, 0)
			return result, err
		}
		result.Outputs = append(result.Outputs, out)
		emitStage(req.Progress, []string{f.Path}, StageWrite, StatusDone, nil, 0)
	}
	if exports := res.Passes.Exports; len(exports) > 0 {
		m := library.Build(res.Tree, req.Package, exports)
		path := filepath.Join(req.OutDir, library.FileName(req.Package))
		if err := library.Write(path, m); err != nil {
			return result, fmt.Errorf("write library manifest: %w", err)
		}
		result.Manifest = path
		sp.WithExtra("manifest", filepath.Base(path))
	}
	sp.WithExtra("outputs", strconv.Itoa(len(result.Outputs)))
	result.Timings.Add(StageWrite, time.Since(start))
	return result, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// observe maps driver phases onto pipeline stages, recording timings and
// forwarding to next.
func observe(sink ProgressSink, files []string, timings *Timings, next driver.PhaseObserver) driver.PhaseObserver {
	return func(ev driver.PhaseEvent) {
		if next != nil {
			next(ev)
		}
		stage := StageParse
		if ev.Name == driver.PhaseScopes {
			stage = StageScopes
		}
		status := StatusWorking
		if ev.Status == driver.PhaseEnd {
			status = StatusDone
			if ev.Err != nil {
				status = StatusError
			}
		}
		switch {
		case ev.File != "":
			emitStage(sink, []string{ev.File}, stage, status, ev.Err, ev.Elapsed)
		case ev.Name == driver.PhaseScopes:
			if ev.Status == driver.PhaseEnd {
				timings.Add(stage, ev.Elapsed)
			}
			emitStage(sink, files, stage, status, ev.Err, ev.Elapsed)
		case ev.Status == driver.PhaseEnd:
			timings.Add(stage, ev.Elapsed)
		}
	}
}

// displayFiles renders paths relative to baseDir, the way the driver
// labels them.
func displayFiles(files []string, baseDir string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		path := f
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, f); err == nil && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
		out = append(out, filepath.ToSlash(path))
	}
	return out
}

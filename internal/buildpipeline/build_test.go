package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wss/internal/driver"
	"wss/internal/library"
	"wss/internal/scope"
	"wss/internal/trace"
)

func setup(t *testing.T, files map[string]string) (src, out string, paths []string) {
	t.Helper()
	root := t.TempDir()
	src = filepath.Join(root, "src")
	out = filepath.Join(root, "out")
	for name, content := range files {
		p := filepath.Join(src, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return src, out, paths
}

func counter() scope.Option {
	n := 0
	return scope.WithAccessorSource(func() string {
		n++
		return fmt.Sprintf("acc%d", n)
	})
}

func TestBuildWritesOutputsAndManifest(t *testing.T) {
	src, out, paths := setup(t, map[string]string{
		"lib/pick.wss": "library function pick<T>(x: T): T { return x; }",
	})
	mainPath := filepath.Join(src, "main.wss")
	if err := os.WriteFile(mainPath, []byte("function main() { pick<Int>(1); }"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths = append(paths, mainPath)

	sink := &RecordingSink{}
	res, err := Build(context.Background(), &Request{
		Request: driver.Request{
			Files:       paths,
			BaseDir:     src,
			TreeOptions: []scope.Option{counter()},
		},
		Package:  "demo",
		OutDir:   out,
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	wantOutputs := []string{filepath.Join(out, "lib", "pick.ws"), filepath.Join(out, "main.ws")}
	if len(res.Outputs) != 2 || res.Outputs[0] != wantOutputs[0] || res.Outputs[1] != wantOutputs[1] {
		t.Fatalf("outputs = %v, want %v", res.Outputs, wantOutputs)
	}
	lib, err := os.ReadFile(wantOutputs[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(lib), "// generated by wss from lib/pick.wss\n") || !strings.Contains(string(lib), "function pick_Int(x: Int): Int {") {
		t.Fatalf("lib output:\n%s", lib)
	}
	m, err := library.Read(res.Manifest)
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	e, ok := m.Lookup("pick")
	if !ok || len(e.Variants) != 1 {
		t.Fatalf("manifest = %+v", m)
	}
	mainOut, _ := os.ReadFile(wantOutputs[1])
	if !strings.Contains(string(mainOut), e.Accessor+".pick_Int(1);") {
		t.Fatalf("main output:\n%s", mainOut)
	}

	done := map[string]bool{}
	for _, ev := range sink.Events() {
		if ev.Stage == StageWrite && ev.Status == StatusDone {
			done[ev.File] = true
		}
	}
	if !done["lib/pick.wss"] || !done["main.wss"] {
		t.Fatalf("write events = %v", done)
	}
	for _, st := range []Stage{StageParse, StageScopes, StageEmit, StageWrite} {
		if !res.Timings.Has(st) {
			t.Fatalf("no timing for %s", st)
		}
	}
}

func TestBuildWithoutExportsSkipsManifest(t *testing.T) {
	src, out, paths := setup(t, map[string]string{"main.wss": "function main() {}"})
	res, err := Build(context.Background(), &Request{
		Request: driver.Request{Files: paths, BaseDir: src},
		OutDir:  out,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.Manifest != "" {
		t.Fatalf("manifest written: %s", res.Manifest)
	}
}

func TestBuildStopsOnDiagnostics(t *testing.T) {
	src, out, paths := setup(t, map[string]string{"main.wss": "function main() { nope<Int>(1); }"})
	sink := &RecordingSink{}
	res, err := Build(context.Background(), &Request{
		Request:  driver.Request{Files: paths, BaseDir: src},
		OutDir:   out,
		Progress: sink,
	})
	if !errors.Is(err, ErrDiagnostics) {
		t.Fatalf("err = %v, want ErrDiagnostics", err)
	}
	if !res.Compile.Bag.HasErrors() {
		t.Fatalf("no diagnostics recorded")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("output directory created on failure")
	}
	evs := sink.Events()
	if last := evs[len(evs)-1]; last.Status != StatusError {
		t.Fatalf("last event = %+v", last)
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("out", "a/b.wss"); got != filepath.Join("out", "a", "b.ws") {
		t.Fatalf("OutputPath = %s", got)
	}
}

func TestBuildNestsCompileUnderBuildSpan(t *testing.T) {
	src, out, paths := setup(t, map[string]string{"main.wss": "function main() {}"})
	ring := trace.NewRingTracer(256, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	req := &Request{
		Request: driver.Request{Files: paths, BaseDir: src},
		OutDir:  out,
	}
	if _, err := Build(ctx, req); err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buildID, compileParent uint64
	var outputs string
	for _, ev := range ring.Snapshot() {
		switch {
		case ev.Name == "build" && ev.Kind == trace.KindSpanBegin:
			buildID = ev.SpanID
		case ev.Name == "build" && ev.Kind == trace.KindSpanEnd:
			outputs = ev.Extra["outputs"]
		case ev.Name == "compile" && ev.Kind == trace.KindSpanBegin:
			compileParent = ev.ParentID
		}
	}
	if buildID == 0 || compileParent != buildID {
		t.Fatalf("compile parent = %d, build span = %d", compileParent, buildID)
	}
	if outputs != "1" {
		t.Fatalf("outputs extra = %q", outputs)
	}
}

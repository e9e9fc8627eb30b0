package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunBatchesSourceChanges(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	batches := make(chan []string, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- Run(ctx, root, Options{
			Debounce: 200 * time.Millisecond,
			Skip:     []string{out},
			Ready:    func() { close(ready) },
		}, func(changed []string) { batches <- changed })
	}()
	<-ready

	write := func(name string) {
		if err := os.WriteFile(filepath.Join(root, name), []byte("function f() {}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.wss")
	write("b.wss")
	write("notes.txt")
	if err := os.WriteFile(filepath.Join(out, "c.wss"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-batches:
		want := []string{filepath.Join(root, "a.wss"), filepath.Join(root, "b.wss")}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Fatalf("batch = %v, want %v", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	if err := <-errc; err != nil {
		t.Fatalf("Run: %v", err)
	}
}

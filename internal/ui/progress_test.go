package ui

import (
	"errors"
	"strings"
	"testing"

	"wss/internal/buildpipeline"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewProgressModel("build demo", []string{"a.wss", "b.wss"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.wss", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})
	m.Update(eventMsg{File: "b.wss", Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusWorking})
	m.Update(eventMsg{Stage: buildpipeline.StageScopes, Status: buildpipeline.StatusWorking})
	m.Update(eventMsg{File: "unknown.wss", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Err: errors.New("x")})

	if got, want := m.percent(), (1.0+0.75)/2; got != want {
		t.Fatalf("percent = %v, want %v", got, want)
	}
	view := m.View()
	for _, want := range []string{"build demo (scoping)", "done a.wss", "emitting b.wss"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	if !strings.Contains(view, "1/2 files") {
		t.Fatalf("file count missing:\n%s", view)
	}

	m.Update(eventMsg{File: "b.wss", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusError, Err: errors.New("disk full")})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent after failure = %v, want 1", got)
	}
	view = m.View()
	if !strings.Contains(view, "error b.wss") || !strings.Contains(view, "disk full") {
		t.Fatalf("failure not shown:\n%s", view)
	}

	m.Update(doneMsg{})
	if !strings.Contains(m.View(), "done: build demo") {
		t.Fatalf("done header missing:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a-very-long-path.wss", 10, "a-very-..."},
		{"abcdef", 3, "abc"},
		{"日本語のファイル", 7, "日本..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

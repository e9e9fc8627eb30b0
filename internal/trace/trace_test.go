package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestLevelGatesScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v", tc.level, tc.scope, got)
		}
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestStreamTextSpan(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatText)
	sp := Begin(st, ScopePass, "generic-calls", 0)
	sp.WithExtra("variants", "3").WithExtra("rounds", "2")
	Begin(st, ScopeFile, "file:hidden.wss", sp.ID()).End("")
	sp.End("done")

	out := buf.String()
	if !strings.Contains(out, "→ generic-calls") || !strings.Contains(out, "← generic-calls (done) {rounds=2, variants=3}") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("file scope leaked at phase level:\n%s", out)
	}
}

func TestNDJSONAndFanout(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelDebug)
	m := Fanout(LevelDebug, NewStreamTracer(&buf, LevelDebug, FormatNDJSON), ring)
	Point(m, ScopeDriver, "build", "ok", 0)
	if !strings.Contains(buf.String(), `"name":"build"`) {
		t.Fatalf("ndjson = %s", buf.String())
	}
	if len(ring.Snapshot()) != 1 {
		t.Fatalf("ring missed the event")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("default tracer must be Nop")
	}
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != r {
		t.Fatalf("tracer lost")
	}
	if SpanFromContext(ctx) != 0 {
		t.Fatalf("span id without WithSpan")
	}
	ctx = WithSpan(ctx, 7)
	if SpanFromContext(ctx) != 7 {
		t.Fatalf("span id lost")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer: %v %v", tr, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected parse error")
	}
	if f, _ := ParseFormat("json"); f != FormatNDJSON {
		t.Fatalf("json alias")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(both) = %v, %v", m, err)
	}
	if _, err := ParseMode("unknown"); err == nil {
		t.Fatalf("expected mode error")
	}
}

func TestRingBeforeWrap(t *testing.T) {
	r := NewRingTracer(4, LevelPhase)
	Point(r, ScopePass, "a", "", 0)
	Point(r, ScopeFile, "filtered", "", 0)
	Point(r, ScopePass, "b", "", 0)
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "a" || snap[1].Name != "b" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap[0].Seq >= snap[1].Seq {
		t.Fatalf("sequence not increasing: %d, %d", snap[0].Seq, snap[1].Seq)
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(1024, LevelPhase)
	stop := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat || snap[0].Detail != "#1" {
		t.Fatalf("no heartbeat recorded: %+v", snap)
	}
	after := len(snap)
	time.Sleep(5 * time.Millisecond)
	if len(r.Snapshot()) != after {
		t.Fatalf("heartbeat kept running after stop")
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	sp := Begin(Nop, ScopeDriver, "x", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Fatalf("span from Nop should be inert")
	}
	sp.WithExtra("k", "v")
}

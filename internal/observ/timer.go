// Package observ measures how long each compilation phase takes.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed step of a build.
type Phase struct {
	Name string
	Dur  time.Duration
	Err  error
}

// Timer records phases in the order they were started. It is not safe for
// concurrent use.
type Timer struct {
	phases []Phase
	now    func() time.Time
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Track runs fn as a phase called name and returns how long it took along
// with the error of fn.
func (t *Timer) Track(name string, fn func() error) (time.Duration, error) {
	idx := len(t.phases)
	t.phases = append(t.phases, Phase{Name: name})
	start := t.now()
	err := fn()
	p := &t.phases[idx]
	p.Dur = t.now().Sub(start)
	p.Err = err
	return p.Dur, err
}

// Phases returns a copy of the recorded phases.
func (t *Timer) Phases() []Phase {
	out := make([]Phase, len(t.phases))
	copy(out, t.phases)
	return out
}

// Total sums the phase durations. Nested phases are counted twice.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
	}
	return total
}

// Summary renders one line per phase with the name column sized to the
// longest name, followed by a total line.
func (t *Timer) Summary() string {
	width := len("total")
	for _, p := range t.phases {
		width = max(width, len(p.Name))
	}
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range t.phases {
		fmt.Fprintf(&sb, "  %-*s %8.2f ms", width, p.Name, millis(p.Dur))
		if p.Err != nil {
			sb.WriteString("  failed: " + p.Err.Error())
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-*s %8.2f ms\n", width, "total", millis(t.Total()))
	return sb.String()
}

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}
	r := Report{TotalMS: millis(t.Total()), Phases: make([]PhaseReport, len(t.phases))}
	for i, p := range t.phases {
		r.Phases[i] = PhaseReport{Name: p.Name, DurationMS: millis(p.Dur)}
		if p.Err != nil {
			r.Phases[i].Error = p.Err.Error()
		}
	}
	return r
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

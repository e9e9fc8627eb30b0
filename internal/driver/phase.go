package driver

import "time"

// Phase names reported through PhaseObserver and recorded by the timer.
const (
	PhaseLoad   = "load"
	PhaseParse  = "parse"
	PhaseScopes = "scopes"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary. File is set for per-file parse
// events and empty for whole-program phases.
type PhaseEvent struct {
	Name    string
	File    string
	Status  PhaseStatus
	Elapsed time.Duration
	Err     error
}

// PhaseObserver receives phase events emitted during Compile. It may be
// called from several goroutines while files are parsed.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) emit(ev PhaseEvent) {
	if o != nil {
		o(ev)
	}
}

package passes

import (
	"wss/internal/diag"
	"wss/internal/scope"
	"wss/internal/source"
	"wss/internal/trace"
)

// Env is the state shared by every pass of one compilation.
type Env struct {
	Tree     *scope.Tree
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// SpanID parents the trace spans opened by passes.
	SpanID uint64
}

func (e *Env) errorf(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(e.Reporter, code, sp, msg)
}

func (e *Env) tracer() trace.Tracer {
	if e.Tracer == nil {
		return trace.Nop
	}
	return e.Tracer
}

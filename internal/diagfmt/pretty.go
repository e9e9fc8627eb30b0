package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"wss/internal/diag"
	"wss/internal/source"
)

type palette struct {
	sev  map[diag.Severity]*color.Color
	path *color.Color
	gut  *color.Color
	mark *color.Color
	note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		path: mk(color.Bold),
		gut:  mk(color.FgBlue),
		mark: mk(color.FgRed, color.Bold),
		note: mk(color.FgCyan),
	}
}

// Pretty writes each diagnostic of bag as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with the span underlined (^~~~) and, when
// enabled, its notes. Call bag.Sort first for a stable order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	start, _ := fs.Resolve(d.Primary)
	sev := p.sev[d.Severity]
	if sev == nil {
		sev = p.sev[diag.SevInfo]
	}
	header := fmt.Sprintf("%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col),
		sev.Sprint(d.Severity.String()), d.Code.ID(), d.Message)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	if err := snippet(w, fs, d.Primary, opts.Context, p); err != nil {
		return err
	}
	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		ns, _ := fs.Resolve(n.Span)
		line := fmt.Sprintf("  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
			formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// snippet prints the primary line, up to context lines before it, and an
// underline under the span. Spans running past the line are cut at its end.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, p palette) error {
	f := fs.Get(sp.File)
	if f == nil {
		return nil
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return nil
	}
	width := len(fmt.Sprint(start.Line))
	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	var sb strings.Builder
	for ln := first; ln <= int(start.Line); ln++ {
		fmt.Fprintf(&sb, "%s %s\n", p.gut.Sprintf("%*d |", width, ln), expandTabs(f.GetLine(uint32(ln))))
	}
	text := f.GetLine(start.Line)
	from := clamp(int(start.Col)-1, len(text))
	to := len(text)
	if end.Line == start.Line {
		to = clamp(int(end.Col)-1, len(text))
	}
	pad := runewidth.StringWidth(expandTabs(text[:from]))
	span := runewidth.StringWidth(text[from:to])
	marker := "^"
	if span > 1 {
		marker += strings.Repeat("~", span-1)
	}
	fmt.Fprintf(&sb, "%s %s%s\n", p.gut.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), p.mark.Sprint(marker))
	_, err := io.WriteString(w, sb.String())
	return err
}

// expandTabs renders tabs as four spaces so the underline lines up.
func expandTabs(s string) string { return strings.ReplaceAll(s, "\t", "    ") }

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

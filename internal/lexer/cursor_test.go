package lexer

import (
	"testing"

	"wss/internal/source"
)

func TestCursorMarkAndReset(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("c.wss", []byte("ab")))
	c := NewCursor(f)
	m := c.Mark()
	if !c.Eat('a') || c.Eat('a') {
		t.Fatalf("Eat mismatch")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 1 {
		t.Fatalf("span = %v", sp)
	}
	c.Reset(m)
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %c %c %v", b0, b1, ok)
	}
	c.Bump()
	c.Bump()
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("expected EOF")
	}
}

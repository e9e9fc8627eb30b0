// Package fuzztests holds fuzz harnesses for the front half of the compiler:
// source bytes go through the lexer, the parser and the scope passes, and the
// resulting tree is emitted. The harnesses only look for panics, hangs and
// broken tree invariants; diagnostics on garbage input are expected.
package fuzztests

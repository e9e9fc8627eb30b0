// Package token defines lexical token kinds for the wss front end.
// Invariants:
//   - Token.Span matches the source bytes of the token exactly.
//   - Identifier Text is NFC-normalized; all other Text is the raw source slice.
//   - Primitive type names (Int, Str, Bool, ...) are identifiers, not keywords.
package token

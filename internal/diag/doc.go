// Package diag collects compiler diagnostics.
//
// Phases never print directly. They report through a Reporter, usually a
// BagReporter feeding a Bag, and the driver decides how to render the bag
// (see internal/diagfmt). Codes are grouped by phase:
//
//	1xxx  lexer
//	2xxx  parser
//	3xxx  scope and generic passes
//	4xxx  I/O and project manifest
//
// Code.ID renders the stable textual form used in output and tests.
package diag

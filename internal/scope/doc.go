// Package scope implements the scope tree the compiler builds over a parsed
// program, and the generics records hanging off generic declarations.
//
// Nodes live in an arena owned by Tree and refer to each other by NodeID,
// so parent and child links are plain index rewrites. The tree mirrors the
// lexical structure: program, then one node per file, then one node per
// function or class (methods nest under their class).
//
// Identifier resolution walks from a node to the root and returns the first
// substitution offered by an active generic variant, or the identifier
// itself. Library nodes carry a random accessor used to qualify their names
// in emitted code; the flag is pushed to children at attach time only.
//
// Tree is not safe for concurrent use.
package scope

// Package ast defines the syntax tree produced by the parser and the
// dispatch protocol the compiler passes use to traverse it.
//
// Declarations carry the scope node assigned by the context-building pass,
// so later passes can go from syntax to the scope tree without a side table.
// Every node implements Accept; Accept calls the node's own visit method (if
// it has one) and then recurses into its children in source order. Calls are
// only dispatched when they carry explicit type arguments, and typed
// declarations only when their type is parameterised.
package ast

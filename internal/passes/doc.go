// Package passes holds the compiler passes that run over the syntax tree
// after parsing, in this order:
//
//  1. FunctionVisitor collects file-level functions and classes.
//  2. ContextBuilder builds the scope tree and declares local names.
//  3. LibraryMarker flags library declarations and their subtrees.
//  4. GenericCalls collects generic call sites and type uses, and
//     Instantiate registers variants until a fixpoint is reached.
//
// Every pass is an ast.Visitor. Run drives them in order.
package passes

package scope

// Node is one scope in the tree. Fields are read through Tree accessors;
// mutation goes through Tree methods so links stay consistent.
type Node struct {
	Name string
	// Identifiers holds names declared directly in this scope.
	Identifiers map[string]string
	Children    []NodeID
	Parent      NodeID
	// Generics is set once at creation for generic declarations.
	Generics *Generics
	Library  bool
	// Accessor is non-empty exactly when Library is true.
	Accessor string
}

package scope

// FindGlobalFunction searches the file-level declarations of the tree
// containing id for a function called name. Only the two levels below the
// root are inspected; nested declarations are never found.
func (t *Tree) FindGlobalFunction(id NodeID, name string) (NodeID, bool) {
	return t.findGlobal(id, FunctionLabel(name))
}

// FindGlobalClass is FindGlobalFunction for classes.
func (t *Tree) FindGlobalClass(id NodeID, name string) (NodeID, bool) {
	return t.findGlobal(id, ClassLabel(name))
}

func (t *Tree) findGlobal(id NodeID, label string) (NodeID, bool) {
	root := t.RootOf(id)
	for _, file := range t.nodes[root].Children {
		for _, decl := range t.nodes[file].Children {
			if t.nodes[decl].Name == label {
				return decl, true
			}
		}
	}
	return NoNodeID, false
}

// Declare records name in the scope of id. It reports false, leaving the
// existing entry untouched, when name is already declared there.
func (t *Tree) Declare(id NodeID, name, value string) bool {
	n := t.must(id)
	if _, dup := n.Identifiers[name]; dup {
		return false
	}
	n.Identifiers[name] = value
	return true
}

// Lookup finds name in id or its nearest ancestor declaring it.
func (t *Tree) Lookup(id NodeID, name string) (value string, owner NodeID, ok bool) {
	for cur := id; cur.IsValid(); cur = t.must(cur).Parent {
		if v, found := t.nodes[cur].Identifiers[name]; found {
			return v, cur, true
		}
	}
	return "", NoNodeID, false
}

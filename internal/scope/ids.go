package scope

// NodeID identifies a node in the Tree arena.
type NodeID uint32

// NoNodeID marks the absence of a node reference.
const NoNodeID NodeID = 0

// IsValid reports whether the ID refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

package node

import (
	"github.com/marmos91/pasdb/pkg/pas"
	"github.com/marmos91/pasdb/pkg/pcontainer"
)

// Registry owns every Node in one extended-DOM document: Node values
// themselves are stored in a single persistent Vector, and a NodeID is
// simply that Vector's 1-based index, so it is stable across a
// save/reload cycle and across any growth of the Vector's backing
// buffer — exactly the property a $ref node depends on.
type Registry struct {
	nodes pcontainer.Vector[Node]
}

// NewRegistry allocates an empty Registry. Index 0 of the backing Vector
// is reserved so NodeID 0 can mean InvalidNodeID.
func NewRegistry(s *pas.Space) Registry {
	v := pcontainer.NewVector[Node](s)
	*v.PushBack(s) = Node{} // reserve slot 0
	return Registry{nodes: v}
}

// RegistryAt wraps a Registry whose backing Vector lives at off.
func RegistryAt(off pas.Offset) Registry {
	return Registry{nodes: pcontainer.VectorAt[Node](off)}
}

// Offset returns the Offset of the Registry's backing Vector.
func (r Registry) Offset() pas.Offset { return r.nodes.Offset() }

// Register stores n and returns its new NodeID.
func (r Registry) Register(s *pas.Space, n Node) NodeID {
	*r.nodes.PushBack(s) = n
	return NodeID(r.nodes.Len(s) - 1)
}

// Get returns a pointer to the Node stored under id, or nil if id is out
// of range. Subject to the same realloc-safety rule as pas.Resolve: it
// is invalid after any call that registers another node.
func (r Registry) Get(s *pas.Space, id NodeID) *Node {
	if id == InvalidNodeID {
		return nil
	}
	return r.nodes.At(s, int(id))
}

// Len returns the number of registered nodes, including the reserved
// slot 0.
func (r Registry) Len(s *pas.Space) int { return r.nodes.Len(s) }

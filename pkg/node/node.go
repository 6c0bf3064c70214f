// Package node implements spec.md's extended, node-addressed DOM: the
// same value variants pkg/pjson offers, plus a binary blob alternative
// and a $ref alternative that names another node by ID rather than
// embedding it, dereferenced through View.Deref.
//
// Where pjson.Value nodes reference their children by raw pas.Offset,
// node.Node children are referenced by NodeID, a level of indirection
// resolved through a Registry so a ref survives the registry being
// reloaded from a fresh image without caring what offset its target
// happens to occupy this time.
package node

import (
	"unsafe"

	"github.com/marmos91/pasdb/pkg/pas"
	"github.com/marmos91/pasdb/pkg/pcontainer"
)

// Tag identifies the active alternative in a Node.
type Tag uint32

const (
	TagNull Tag = iota
	TagBool
	TagInt64
	TagFloat64
	TagString
	TagArray
	TagObject
	TagBinary
	TagRef
)

// NodeID is a stable, registry-relative identifier for a node. Unlike a
// pas.Offset it never changes across a save/reload cycle or a data-area
// growth, which is what makes it safe to embed inside a Ref node.
type NodeID uint64

// InvalidNodeID is the zero value, never assigned to a real node.
const InvalidNodeID NodeID = 0

// refPayload is TagRef's Payload layout: a diagnostic path view plus the
// NodeID it resolves to, packed together since a ref node needs both at
// once. 16 + 8 bytes, exactly filling Payload.
type refPayload struct {
	path pcontainer.StringView
	to   NodeID
}

// Node is one entry of the extended DOM: {Tag, Pad, Payload [24]byte},
// the same byte-exact tagged-union record pjson.Value uses. Array/Object
// entries reference their children by NodeID (resolved through the owning
// Registry), not by Go pointer or raw Offset; the NodeID itself lives in
// Payload exactly like any other alternative.
type Node struct {
	Tag     Tag
	Pad     uint32
	Payload [24]byte
}

func Null() Node { return Node{Tag: TagNull} }

func Bool(b bool) Node {
	var n Node
	n.Tag = TagBool
	*(*bool)(unsafe.Pointer(&n.Payload[0])) = b
	return n
}

func Int64(v int64) Node {
	var n Node
	n.Tag = TagInt64
	*(*int64)(unsafe.Pointer(&n.Payload[0])) = v
	return n
}

func Float64(v float64) Node {
	var n Node
	n.Tag = TagFloat64
	*(*float64)(unsafe.Pointer(&n.Payload[0])) = v
	return n
}

func String(s *pas.Space, dict pcontainer.Dictionary, content string) Node {
	var n Node
	n.Tag = TagString
	*(*pcontainer.StringView)(unsafe.Pointer(&n.Payload[0])) = dict.Intern(s, content)
	return n
}

// Binary wraps a raw byte blob, copied into its own persistent buffer.
func Binary(s *pas.Space, data []byte) Node {
	str := pcontainer.NewString(s)
	str.Set(s, string(data))
	var n Node
	n.Tag = TagBinary
	*(*pas.Offset)(unsafe.Pointer(&n.Payload[0])) = str.Offset()
	return n
}

// Ref creates a $ref node pointing at target, annotated with path for
// diagnostics (the original location string the reference was resolved
// from).
func Ref(s *pas.Space, dict pcontainer.Dictionary, path string, target NodeID) Node {
	var n Node
	n.Tag = TagRef
	*(*refPayload)(unsafe.Pointer(&n.Payload[0])) = refPayload{path: dict.Intern(s, path), to: target}
	return n
}

func newArrayNode(s *pas.Space) Node {
	v := pcontainer.NewVector[NodeID](s)
	var n Node
	n.Tag = TagArray
	*(*pas.Offset)(unsafe.Pointer(&n.Payload[0])) = v.Offset()
	return n
}

func newObjectNode(s *pas.Space) Node {
	m := pcontainer.NewMap[pcontainer.StringView, NodeID](s, stringViewLess(s))
	var n Node
	n.Tag = TagObject
	*(*pas.Offset)(unsafe.Pointer(&n.Payload[0])) = m.Offset()
	return n
}

func stringViewLess(s *pas.Space) func(a, b pcontainer.StringView) bool {
	return func(a, b pcontainer.StringView) bool { return a.String(s) < b.String(s) }
}

func (n Node) IsNull() bool   { return n.Tag == TagNull }
func (n Node) IsBool() bool   { return n.Tag == TagBool }
func (n Node) IsInt() bool    { return n.Tag == TagInt64 }
func (n Node) IsFloat() bool  { return n.Tag == TagFloat64 }
func (n Node) IsString() bool { return n.Tag == TagString }
func (n Node) IsArray() bool  { return n.Tag == TagArray }
func (n Node) IsObject() bool { return n.Tag == TagObject }
func (n Node) IsBinary() bool { return n.Tag == TagBinary }
func (n Node) IsRef() bool    { return n.Tag == TagRef }

func (n Node) Bool() bool       { return *(*bool)(unsafe.Pointer(&n.Payload[0])) }
func (n Node) Int64() int64     { return *(*int64)(unsafe.Pointer(&n.Payload[0])) }
func (n Node) Float64() float64 { return *(*float64)(unsafe.Pointer(&n.Payload[0])) }

func (n Node) stringView() pcontainer.StringView {
	return *(*pcontainer.StringView)(unsafe.Pointer(&n.Payload[0]))
}

func (n Node) String(s *pas.Space) string { return n.stringView().String(s) }

func (n Node) blobOffset() pas.Offset {
	return *(*pas.Offset)(unsafe.Pointer(&n.Payload[0]))
}

// Binary returns a copy of the referenced byte blob.
func (n Node) Binary(s *pas.Space) []byte {
	return []byte(pcontainer.StringAt(n.blobOffset()).String(s))
}

func (n Node) refPayload() refPayload {
	return *(*refPayload)(unsafe.Pointer(&n.Payload[0]))
}

// RefTarget returns the NodeID a $ref node points at.
func (n Node) RefTarget() NodeID { return n.refPayload().to }

// RefPath returns the diagnostic path string a $ref node was built from.
func (n Node) RefPath(s *pas.Space) string { return n.refPayload().path.String(s) }

func (n Node) childOffset() pas.Offset {
	return *(*pas.Offset)(unsafe.Pointer(&n.Payload[0]))
}

func (n Node) arrayVector() pcontainer.Vector[NodeID] {
	return pcontainer.VectorAt[NodeID](n.childOffset())
}

func (n Node) objectMap(s *pas.Space) pcontainer.Map[pcontainer.StringView, NodeID] {
	return pcontainer.MapAt[pcontainer.StringView, NodeID](n.childOffset(), stringViewLess(s))
}

// Package pjson implements spec.md's pjson: a JSON value DOM whose nodes
// live inside a pas.Space rather than as ordinary Go heap objects, so an
// entire parsed document persists and reloads with the rest of the
// image.
//
// Value is the byte-exact tagged union spec.md's DESIGN NOTES describe:
// a Tag plus three raw words of Payload, reinterpreted per Tag by the
// accessors below rather than carried as one field per variant. Because
// Value is stored directly inside a pcontainer.Vector[Value]/Map[K,Value]
// element slot (an unsafe-cast array element, not a Go-managed value),
// whatever layout this struct has IS the on-disk array/object element
// format, so it has to match the documented 32-byte record exactly.
package pjson

import (
	"unsafe"

	"github.com/marmos91/pasdb/pkg/pas"
	"github.com/marmos91/pasdb/pkg/pcontainer"
)

// Tag identifies the active alternative in a Value.
type Tag uint32

const (
	TagNull Tag = iota
	TagBool
	TagInt64
	TagFloat64
	TagString
	TagArray
	TagObject
)

// Value is one node of a persistent JSON document: {Tag, Pad, Payload
// [24]byte}, exactly spec.md §3's documented record. Payload holds
// whichever alternative Tag selects — a bool, an int64, a float64, a
// pcontainer.StringView, or a pas.Offset to a child Vector/Map — and is
// never touched directly outside the accessors below.
type Value struct {
	Tag     Tag
	Pad     uint32
	Payload [24]byte
}

// Null returns the JSON null value.
func Null() Value { return Value{Tag: TagNull} }

// Bool wraps a boolean.
func Bool(b bool) Value {
	var v Value
	v.Tag = TagBool
	*(*bool)(unsafe.Pointer(&v.Payload[0])) = b
	return v
}

// Int64 wraps a signed integer.
func Int64(n int64) Value {
	var v Value
	v.Tag = TagInt64
	*(*int64)(unsafe.Pointer(&v.Payload[0])) = n
	return v
}

// Float64 wraps a floating-point number.
func Float64(f float64) Value {
	var v Value
	v.Tag = TagFloat64
	*(*float64)(unsafe.Pointer(&v.Payload[0])) = f
	return v
}

// String interns content into dict and wraps the resulting view.
func String(s *pas.Space, dict pcontainer.Dictionary, content string) Value {
	return StringFromView(dict.Intern(s, content))
}

// StringFromView wraps an already-interned StringView.
func StringFromView(sv pcontainer.StringView) Value {
	var v Value
	v.Tag = TagString
	*(*pcontainer.StringView)(unsafe.Pointer(&v.Payload[0])) = sv
	return v
}

// NewArray allocates an empty array node.
func NewArray(s *pas.Space) Value {
	vec := pcontainer.NewVector[Value](s)
	var v Value
	v.Tag = TagArray
	*(*pas.Offset)(unsafe.Pointer(&v.Payload[0])) = vec.Offset()
	return v
}

// NewObject allocates an empty object node. keyLess orders its keys by
// decoded content, so serialization produces lexicographically sorted
// keys as spec.md requires.
func NewObject(s *pas.Space) Value {
	m := pcontainer.NewMap[pcontainer.StringView, Value](s, stringViewLess(s))
	var v Value
	v.Tag = TagObject
	*(*pas.Offset)(unsafe.Pointer(&v.Payload[0])) = m.Offset()
	return v
}

func stringViewLess(s *pas.Space) func(a, b pcontainer.StringView) bool {
	return func(a, b pcontainer.StringView) bool { return a.String(s) < b.String(s) }
}

// IsNull, IsBool, etc. report the active tag.
func (v Value) IsNull() bool   { return v.Tag == TagNull }
func (v Value) IsBool() bool   { return v.Tag == TagBool }
func (v Value) IsInt() bool    { return v.Tag == TagInt64 }
func (v Value) IsFloat() bool  { return v.Tag == TagFloat64 }
func (v Value) IsString() bool { return v.Tag == TagString }
func (v Value) IsArray() bool  { return v.Tag == TagArray }
func (v Value) IsObject() bool { return v.Tag == TagObject }

// Bool decodes Payload as a bool. Valid only when IsBool.
func (v Value) Bool() bool { return *(*bool)(unsafe.Pointer(&v.Payload[0])) }

// Int64 decodes Payload as an int64. Valid only when IsInt.
func (v Value) Int64() int64 { return *(*int64)(unsafe.Pointer(&v.Payload[0])) }

// Float64 decodes Payload as a float64. Valid only when IsFloat.
func (v Value) Float64() float64 { return *(*float64)(unsafe.Pointer(&v.Payload[0])) }

// StringView decodes Payload as the underlying interned view. Valid only
// when IsString.
func (v Value) StringView() pcontainer.StringView {
	return *(*pcontainer.StringView)(unsafe.Pointer(&v.Payload[0]))
}

// String decodes the referenced content. Valid only when IsString.
func (v Value) String(s *pas.Space) string { return v.StringView().String(s) }

// childOffset decodes Payload as the Offset of an Array/Object node's
// backing Vector/Map. Valid only when IsArray or IsObject.
func (v Value) childOffset() pas.Offset {
	return *(*pas.Offset)(unsafe.Pointer(&v.Payload[0]))
}

// Array returns the underlying Vector. Valid only when IsArray.
func (v Value) Array() pcontainer.Vector[Value] {
	return pcontainer.VectorAt[Value](v.childOffset())
}

// Object returns the underlying Map. Valid only when IsObject. s is
// needed to rebuild the key-ordering comparator.
func (v Value) Object(s *pas.Space) pcontainer.Map[pcontainer.StringView, Value] {
	return pcontainer.MapAt[pcontainer.StringView, Value](v.childOffset(), stringViewLess(s))
}

// Push appends value to an array node.
func (v Value) Push(s *pas.Space, value Value) {
	*v.Array().PushBack(s) = value
}

// Set inserts or overwrites key in an object node, interning key into
// dict.
func (v Value) Set(s *pas.Space, dict pcontainer.Dictionary, key string, value Value) {
	v.Object(s).Set(s, dict.Intern(s, key), value)
}

// Get looks up key in an object node. dict must be the same dictionary
// key was (or would be) interned into — it is only used to build a
// comparison view, not to mutate the dictionary if key is already
// present.
func (v Value) Get(s *pas.Space, dict pcontainer.Dictionary, key string) (Value, bool) {
	return v.Object(s).Get(s, dict.Intern(s, key))
}

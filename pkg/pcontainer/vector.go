package pcontainer

import "github.com/marmos91/pasdb/pkg/pas"

// Vector is spec.md's pvector<T>: a growable, persistent, contiguous
// array of T, addressed by the Offset of its own Descriptor rather than
// by a Go slice header, so it survives being embedded in another
// persistent structure and reloaded from a fresh image.
type Vector[T any] struct {
	b buf[T]
}

// NewVector allocates an empty Vector and returns it.
func NewVector[T any](s *pas.Space) Vector[T] {
	return Vector[T]{b: newBuf[T](s)}
}

// VectorAt wraps a Vector whose Descriptor lives at off, e.g. one read
// back from a field that persisted it.
func VectorAt[T any](off pas.Offset) Vector[T] {
	return Vector[T]{b: bufAt[T](off)}
}

// Offset returns the Offset of the Vector's own Descriptor, suitable for
// storing inside another persistent structure.
func (v Vector[T]) Offset() pas.Offset { return v.b.descOff }

func (v Vector[T]) Len(s *pas.Space) int { return v.b.Len(s) }
func (v Vector[T]) Cap(s *pas.Space) int { return v.b.Cap(s) }
func (v Vector[T]) At(s *pas.Space, i int) *T { return v.b.At(s, i) }
func (v Vector[T]) Slice(s *pas.Space) []T { return v.b.Slice(s) }

// Reserve grows capacity to at least n elements up front.
func (v Vector[T]) Reserve(s *pas.Space, n int) { v.b.reserve(s, n) }

// PushBack appends a zero-valued element and returns a pointer to it.
func (v Vector[T]) PushBack(s *pas.Space) *T { return v.b.pushBack(s) }

// EraseAt removes the i'th element, shifting the tail left (order
// preserving).
func (v Vector[T]) EraseAt(s *pas.Space, i int) { v.b.eraseAt(s, i) }

// Clear empties the vector without releasing its capacity.
func (v Vector[T]) Clear(s *pas.Space) { v.b.clear(s) }

// Free releases the Vector's backing buffer and its Descriptor.
func (v Vector[T]) Free(s *pas.Space) { v.b.free(s) }

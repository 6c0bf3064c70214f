// Package pcontainer implements the persistent container layer built on
// top of pkg/pas's raw allocator: a mutable byte string (String), an
// interned immutable string view with a deduplicating dictionary
// (StringView/Dictionary), a growable typed vector (Vector), and a
// sorted associative array (Map).
package pcontainer

import (
	"unsafe"

	"github.com/marmos91/pasdb/pkg/pas"
)

// buf is the growable backing-buffer primitive every container in this
// package is built from: a pas.Descriptor plus an untracked element
// range, grown via pas.RawAlloc/RawRealloc/RawFree rather than
// Create/CreateArray, so containers do not each consume a type-vector,
// slot-map, and name-map entry purely for their internal storage.
type buf[T any] struct {
	descOff pas.Offset
}

// newBuf allocates a fresh, empty buf. The returned Offset is what a
// container (Vector, Map, Dictionary, String) persists as its own
// handle.
func newBuf[T any](s *pas.Space) buf[T] {
	off := s.RawAlloc(int(descriptorSize), 8)
	*pas.Resolve[pas.Descriptor](s, off) = pas.Descriptor{}
	return buf[T]{descOff: off}
}

// bufAt wraps an already-allocated Descriptor offset, e.g. one loaded
// back from a container's own persisted header field.
func bufAt[T any](descOff pas.Offset) buf[T] {
	return buf[T]{descOff: descOff}
}

var descriptorSize = uint64(unsafe.Sizeof(pas.Descriptor{}))

func (b buf[T]) descriptor(s *pas.Space) *pas.Descriptor {
	return pas.Resolve[pas.Descriptor](s, b.descOff)
}

func (b buf[T]) Len(s *pas.Space) int {
	d := b.descriptor(s)
	if d == nil {
		return 0
	}
	return int(d.Size)
}

func (b buf[T]) Cap(s *pas.Space) int {
	d := b.descriptor(s)
	if d == nil {
		return 0
	}
	return int(d.Capacity)
}

func (b buf[T]) At(s *pas.Space, i int) *T {
	d := b.descriptor(s)
	if d == nil || i < 0 || i >= int(d.Size) {
		return nil
	}
	return pas.ResolveElement[T](s, pas.Offset(d.DataOff), i)
}

func (b buf[T]) Slice(s *pas.Space) []T {
	d := b.descriptor(s)
	if d == nil || d.Size == 0 {
		return nil
	}
	return pas.ResolveSlice[T](s, pas.Offset(d.DataOff), int(d.Size))
}

func (b buf[T]) reserve(s *pas.Space, minCap int) {
	d := b.descriptor(s)
	if int(d.Capacity) >= minCap {
		return
	}

	newCap := int(d.Capacity)
	if newCap == 0 {
		newCap = 4
	}
	for newCap < minCap {
		newCap *= 2
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))

	oldOff := pas.Offset(d.DataOff)
	oldCap := int(d.Capacity)
	oldSize := int(d.Size)

	if oldOff != pas.InvalidOffset {
		if newOff := s.RawRealloc(oldOff, oldCap*elemSize, newCap*elemSize); newOff != pas.InvalidOffset {
			d = b.descriptor(s)
			d.DataOff, d.Capacity = uint64(newOff), uint64(newCap)
			return
		}
	}

	align := 8
	switch {
	case elemSize%8 == 0:
		align = 8
	case elemSize%4 == 0:
		align = 4
	case elemSize%2 == 0:
		align = 2
	default:
		align = 1
	}

	newOff := s.RawAlloc(newCap*elemSize, align)
	d = b.descriptor(s)
	if oldOff != pas.InvalidOffset && oldSize > 0 {
		copy(pas.ResolveSlice[T](s, newOff, oldSize), pas.ResolveSlice[T](s, oldOff, oldSize))
	}
	if oldOff != pas.InvalidOffset {
		s.RawFree(oldOff, oldCap*elemSize)
		d = b.descriptor(s)
	}
	d.DataOff, d.Capacity = uint64(newOff), uint64(newCap)
}

func (b buf[T]) pushBack(s *pas.Space) *T {
	d := b.descriptor(s)
	newSize := int(d.Size) + 1
	b.reserve(s, newSize)
	d = b.descriptor(s)
	d.Size = uint64(newSize)
	elem := b.At(s, newSize-1)
	var zero T
	*elem = zero
	return elem
}

func (b buf[T]) eraseSwapLast(s *pas.Space, i int) {
	d := b.descriptor(s)
	n := int(d.Size)
	if i < 0 || i >= n {
		return
	}
	slice := b.Slice(s)
	slice[i] = slice[n-1]
	d = b.descriptor(s)
	d.Size--
}

func (b buf[T]) eraseAt(s *pas.Space, i int) {
	d := b.descriptor(s)
	n := int(d.Size)
	if i < 0 || i >= n {
		return
	}
	slice := b.Slice(s)
	copy(slice[i:], slice[i+1:])
	d = b.descriptor(s)
	d.Size--
}

func (b buf[T]) clear(s *pas.Space) {
	if d := b.descriptor(s); d != nil {
		d.Size = 0
	}
}

func (b buf[T]) free(s *pas.Space) {
	d := b.descriptor(s)
	if d == nil {
		return
	}
	if d.DataOff != 0 {
		var zero T
		elemSize := int(unsafe.Sizeof(zero))
		s.RawFree(pas.Offset(d.DataOff), int(d.Capacity)*elemSize)
		d = b.descriptor(s)
	}
	s.RawFree(b.descOff, int(descriptorSize))
}

package pas

import "unsafe"

// Offset is a byte offset relative to the first byte of a Space's data
// area — the canonical, realloc-safe identifier for any persistent
// object. Zero is the sentinel "invalid offset" value; no live
// allocation is ever placed at offset 0 because the header occupies it.
type Offset uint64

// InvalidOffset is the sentinel returned by every allocating or
// lookup operation on failure.
const InvalidOffset Offset = 0

// Resolve converts off into a typed pointer into the Space's current data
// area, bounds-checked against its length. It returns nil for
// InvalidOffset or an out-of-range offset.
//
// The returned pointer is valid only until the next call that may grow or
// move the data area (any Create/CreateArray/Delete/Realloc/ReserveSlots,
// or a container method built on them). Callers that must survive such a
// call should capture PtrToOffset(p) beforehand and Resolve again
// afterward — this is the realloc-safety rule from spec.md §4.1.
func Resolve[T any](s *Space, off Offset) *T {
	if off == InvalidOffset {
		return nil
	}
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	if uint64(off)+size > uint64(len(s.data)) {
		return nil
	}
	return (*T)(unsafe.Pointer(&s.data[off]))
}

// ResolveElement resolves the idx'th element of a T array starting at
// off. It returns nil if the element would fall outside the data area.
func ResolveElement[T any](s *Space, off Offset, idx int) *T {
	if off == InvalidOffset || idx < 0 {
		return nil
	}
	var zero T
	elemSize := uint64(unsafe.Sizeof(zero))
	elemOff := uint64(off) + uint64(idx)*elemSize
	if elemOff+elemSize > uint64(len(s.data)) {
		return nil
	}
	return (*T)(unsafe.Pointer(&s.data[elemOff]))
}

// ResolveSlice returns a []T view over n contiguous T values starting at
// off. The slice aliases the Space's data area exactly like Resolve's
// pointer and is subject to the same realloc-safety rule. It returns nil
// if the range would fall outside the data area or n <= 0.
func ResolveSlice[T any](s *Space, off Offset, n int) []T {
	if off == InvalidOffset || n <= 0 {
		return nil
	}
	var zero T
	elemSize := uint64(unsafe.Sizeof(zero))
	end := uint64(off) + uint64(n)*elemSize
	if end > uint64(len(s.data)) {
		return nil
	}
	ptr := (*T)(unsafe.Pointer(&s.data[off]))
	return unsafe.Slice(ptr, n)
}

// PtrToOffset is the reverse of Resolve: it maps a pointer previously
// obtained from this Space back into an offset, so code that must survive
// a subsequent allocation can re-resolve afterward instead of holding the
// raw pointer across the call.
func (s *Space) PtrToOffset(p unsafe.Pointer) Offset {
	if p == nil || len(s.data) == 0 {
		return InvalidOffset
	}
	base := uintptr(unsafe.Pointer(&s.data[0]))
	addr := uintptr(p)
	if addr < base || addr >= base+uintptr(len(s.data)) {
		return InvalidOffset
	}
	return Offset(addr - base)
}

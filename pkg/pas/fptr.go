package pas

// Ptr is an offset-based handle onto a T, spec.md's fptr<T>. Unlike a Go
// pointer it survives data-area growth: dereferencing always goes through
// Resolve against the Space's current backing buffer, never a cached
// address.
type Ptr[T any] struct {
	off Offset
}

// NilPtr is the zero value of Ptr[T]: Offset(0), resolving to nil.
func NilPtr[T any]() Ptr[T] { return Ptr[T]{off: InvalidOffset} }

// PtrFromOffset wraps a raw Offset as a Ptr[T], e.g. one returned by
// Create[T] or Find.
func PtrFromOffset[T any](off Offset) Ptr[T] { return Ptr[T]{off: off} }

// Offset returns the handle's underlying Offset.
func (p Ptr[T]) Offset() Offset { return p.off }

// IsNil reports whether p holds InvalidOffset.
func (p Ptr[T]) IsNil() bool { return p.off == InvalidOffset }

// Get dereferences p against s, returning nil if p is nil or out of
// range. The returned pointer follows the realloc-safety rule: it is
// invalid after any call on s that may grow the data area.
func (p Ptr[T]) Get(s *Space) *T {
	return Resolve[T](s, p.off)
}

// NewPtr allocates a single unnamed T and returns a Ptr to it.
func NewPtr[T any](s *Space) Ptr[T] {
	return Ptr[T]{off: Create[T](s, "")}
}

// NewNamed allocates a single named T and returns a Ptr to it, or a nil
// Ptr if name is already registered.
func NewNamed[T any](s *Space, name string) Ptr[T] {
	return Ptr[T]{off: Create[T](s, name)}
}

// NewArray allocates count contiguous, unnamed T elements and returns a
// Ptr to the first one.
func NewArray[T any](s *Space, count int) Ptr[T] {
	return Ptr[T]{off: CreateArray[T](s, count, "")}
}

// Delete releases the allocation p points to.
func (p Ptr[T]) Delete(s *Space) {
	s.Delete(p.off)
}

// SetAddr repoints p at a different Offset in the same Space, without
// touching the allocation p previously referred to.
func (p *Ptr[T]) SetAddr(off Offset) {
	p.off = off
}

// Element returns a pointer to the idx'th T in the array p points at the
// head of.
func (p Ptr[T]) Element(s *Space, idx int) *T {
	return ResolveElement[T](s, p.off, idx)
}

// Slice returns a []T view over the n elements starting at p.
func (p Ptr[T]) Slice(s *Space, n int) []T {
	return ResolveSlice[T](s, p.off, n)
}

package pas

// RawAlloc exposes the engine's untracked bump/free-list allocator to the
// container layer (pkg/pcontainer) and the DOM layers built on top of it.
// Unlike Create/CreateArray, a RawAlloc allocation gets no type-vector,
// slot-map, or name-map entry — it is pure byte-range bookkeeping, the
// primitive every container's backing buffer (and the four internal
// tables themselves) is built on. Callers are responsible for freeing it
// with RawFree; there is no Delete-by-offset lookup for untracked ranges.
func (s *Space) RawAlloc(size, align int) Offset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawAlloc(size, align)
}

// RawFree releases a byte range previously returned by RawAlloc or
// RawRealloc back to the free list.
func (s *Space) RawFree(off Offset, size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawFree(off, size)
}

// RawRealloc grows or shrinks a previously RawAlloc'd range in place when
// it is the most recent bump allocation, returning InvalidOffset if it
// cannot (the caller must then RawAlloc a fresh range, copy, and
// RawFree the old one itself).
func (s *Space) RawRealloc(off Offset, oldSize, newSize int) Offset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawRealloc(off, oldSize, newSize)
}

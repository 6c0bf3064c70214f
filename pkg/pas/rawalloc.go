package pas

// initialDataAreaSize is the data area capacity of a freshly initialized,
// empty image, before any growth.
const initialDataAreaSize = 4096

// alignFor returns the alignment spec.md §4.1 prescribes for an
// allocation of the given element size: the largest power of two in
// {8,4,2,1} that divides it. 8 bytes is the maximum because every
// persistent field in this package is a uint64.
func alignFor(elemSize int) int {
	switch {
	case elemSize <= 0:
		return 1
	case elemSize%8 == 0:
		return 8
	case elemSize%4 == 0:
		return 4
	case elemSize%2 == 0:
		return 2
	default:
		return 1
	}
}

func alignUp(off uint64, align int) uint64 {
	a := uint64(align)
	rem := off % a
	if rem == 0 {
		return off
	}
	return off + (a - rem)
}

// rawAlloc allocates size bytes from the free list (first-fit) or, failing
// that, by bump allocation, growing the data area by the Space's growth
// factor (2 by default) until the request fits. It does not touch the type vector, slot map, or name map —
// it is the primitive that both Create/CreateArray and every container's
// backing buffer are built on. Returns InvalidOffset if size <= 0.
func (s *Space) rawAlloc(size, align int) Offset {
	if size <= 0 {
		return InvalidOffset
	}
	if off := s.freeListAlloc(size, align); off != InvalidOffset {
		return off
	}
	return s.bumpAlloc(size, align)
}

func (s *Space) bumpAlloc(size, align int) Offset {
	h := s.header()
	start := alignUp(h.Bump, align)
	need := start + uint64(size)
	if need > h.DataAreaSize {
		s.growDataArea(need)
		h = s.header() // re-resolve: growDataArea may have moved s.data
		start = alignUp(h.Bump, align)
		need = start + uint64(size)
	}
	h.Bump = need
	if m := s.metrics; m != nil {
		m.BumpAllocation(size)
	}
	return Offset(start)
}

// growDataArea grows the data area by the Space's growth factor (2 by
// default, and by at least one byte per step) until it is at least
// minSize bytes, copying the existing bytes into a freshly allocated
// buffer. Every
// pointer obtained via header()/Resolve before this call is invalid
// afterward; callers must re-resolve.
func (s *Space) growDataArea(minSize uint64) {
	h := s.header()
	oldSize := h.DataAreaSize
	newSize := oldSize
	if newSize == 0 {
		newSize = s.initialDataAreaSize
		if newSize == 0 {
			newSize = initialDataAreaSize
		}
	}
	factor := s.growth()
	for newSize < minSize {
		next := uint64(float64(newSize) * factor)
		if next <= newSize {
			next = newSize + 1
		}
		newSize = next
	}

	grown := make([]byte, newSize)
	copy(grown, s.data)
	s.data = grown

	h = s.header() // re-resolve against the new backing array
	h.DataAreaSize = newSize

	if m := s.metrics; m != nil {
		m.DataAreaGrown(oldSize, newSize)
	}
}

// freeListAlloc scans the free list for the first entry at least size
// bytes long and aligned to align, reusing it (spec.md's first-fit
// policy). A larger entry is shrunk in place rather than removed, so its
// remaining bytes stay available for a later request.
func (s *Space) freeListAlloc(size, align int) Offset {
	h := s.header()
	if h.FreeListOff == 0 {
		return InvalidOffset
	}
	fl := s.freeList()
	n := fl.Len()
	for i := 0; i < n; i++ {
		e := fl.At(i)
		if e.Size >= uint64(size) && e.Offset%uint64(align) == 0 {
			off := Offset(e.Offset)
			if e.Size == uint64(size) {
				fl.eraseSwapLast(i)
			} else {
				e.Offset += uint64(size)
				e.Size -= uint64(size)
			}
			if m := s.metrics; m != nil {
				m.FreeListReuse(size)
			}
			return off
		}
	}
	return InvalidOffset
}

// rawFree pushes [off, off+size) onto the free list for later first-fit
// reuse. It never coalesces adjacent ranges or shrinks bump — compaction
// of the bump region is explicitly out of scope (spec.md §1 Non-goals).
func (s *Space) rawFree(off Offset, size int) {
	if off == InvalidOffset || size <= 0 {
		return
	}
	fl := s.freeList()
	e := fl.pushBack()
	e.Offset = uint64(off)
	e.Size = uint64(size)
}

// rawRealloc grows the last-allocated block in place when possible: if
// oldOff+oldSize equals the current bump offset, bump is simply advanced
// by newSize-oldSize and oldOff is returned unchanged. Otherwise it
// returns InvalidOffset and the caller must allocate a fresh block and
// copy, exactly as spec.md §4.1 describes for parr's cheap-extend path.
func (s *Space) rawRealloc(oldOff Offset, oldSize, newSize int) Offset {
	if newSize <= oldSize {
		return oldOff
	}
	h := s.header()
	if uint64(oldOff)+uint64(oldSize) != h.Bump {
		return InvalidOffset
	}
	grow := newSize - oldSize
	need := h.Bump + uint64(grow)
	if need > h.DataAreaSize {
		s.growDataArea(need)
		h = s.header()
	}
	h.Bump = uint64(oldOff) + uint64(newSize)
	return oldOff
}

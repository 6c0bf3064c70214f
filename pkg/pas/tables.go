package pas

// maxNameLen is the usable length of a fixed-size Name field: 64 bytes
// minus the trailing NUL terminator, matching spec.md's fixed-width name
// table entries.
const maxNameLen = 63

// tableInitialCap is the starting capacity for the four internal tables.
// spec.md calls for these to be pre-sized larger than a typical user
// container since they grow with every named/typed allocation in the
// image, not just the ones a single container makes.
const tableInitialCap = 16

// TypeInfo is one entry in the type vector: spec.md's append-only record
// of every distinct element size and human-readable name ever registered
// in this image. The type vector never shrinks; a type once seen keeps
// its index for the life of the image.
type TypeInfo struct {
	ElemSize uint64
	Name     [64]byte
}

// SlotEntry is one entry in the slot map, the authoritative record of
// every live allocation: its offset, element count, and type index, plus
// an optional name-map back-reference. Entries are kept sorted by Offset.
type SlotEntry struct {
	Offset   uint64
	Count    uint64
	TypeIdx  uint64
	NameIdx  uint64
}

// noNameIdx marks a SlotEntry with no corresponding name-map entry.
const noNameIdx = ^uint64(0)

// NameEntry is one entry in the name map, kept sorted lexicographically
// by Name so lookups are a binary search. Slot is the byte Offset of the
// slot map entry this name refers to (spec.md's name_map[i].slot = off),
// resolved by binary-searching the slot map by Offset rather than by
// array index — a slot map insert or delete anywhere in the image moves
// entries between array positions but never changes their Offset, so no
// name map entry ever needs rewriting when the slot map shifts.
type NameEntry struct {
	Name [64]byte
	Slot uint64
}

// FreeEntry is one entry in the free list: an [Offset, Offset+Size) byte
// range available for reuse. Unsorted; removal is swap-with-last.
type FreeEntry struct {
	Offset uint64
	Size   uint64
}

func encodeName(name string) [64]byte {
	var buf [64]byte
	n := copy(buf[:maxNameLen], name)
	buf[n] = 0
	return buf
}

func decodeName(buf [64]byte) string {
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n])
}

func lessName(a, b [64]byte) bool {
	return decodeName(a) < decodeName(b)
}

// tableCap returns the table growth seed configured on s via
// WithInitialTableCapacity, or the package default if none was given.
func (s *Space) tableCap() int {
	if s.initialTableCap == 0 {
		return tableInitialCap
	}
	return s.initialTableCap
}

func (s *Space) typeVec() arr[TypeInfo] {
	return newArr[TypeInfo](s, Offset(s.header().TypeVecOff), s.tableCap())
}

func (s *Space) slotMap() arr[SlotEntry] {
	return newArr[SlotEntry](s, Offset(s.header().SlotMapOff), s.tableCap())
}

func (s *Space) nameMap() arr[NameEntry] {
	return newArr[NameEntry](s, Offset(s.header().NameMapOff), s.tableCap())
}

func (s *Space) freeList() arr[FreeEntry] {
	return newArr[FreeEntry](s, Offset(s.header().FreeListOff), s.tableCap())
}

// registerType returns the type-vector index for (elemSize, typeName),
// appending a new entry if this exact pair has not been seen before. The
// type vector is append-only and never deduplicates across differing
// names for the same size, matching spec.md's description of it as a
// plain log of every type ever registered.
func (s *Space) registerType(elemSize int, typeName string) uint64 {
	tv := s.typeVec()
	encoded := encodeName(typeName)
	for i, t := range tv.Slice() {
		if t.ElemSize == uint64(elemSize) && t.Name == encoded {
			return uint64(i)
		}
	}
	idx := tv.Len()
	e := tv.pushBack()
	e.ElemSize = uint64(elemSize)
	e.Name = encoded
	return uint64(idx)
}

// insertSlotLocked inserts a new slot map entry sorted by offset and
// returns its index. Caller holds s.mu. The name map references slots by
// Offset rather than by slot-map index, so a slot inserted anywhere but
// the tail — the common case when an offset is reused from the free
// list — never requires rewriting any name map entry.
func (s *Space) insertSlotLocked(offset Offset, count int, typeIdx uint64, nameIdx uint64) int {
	sm := s.slotMap()
	idx, _ := insertSorted(sm, uint64(offset),
		func(e *SlotEntry) uint64 { return e.Offset },
		func(a, b uint64) bool { return a < b },
		func(e *SlotEntry) {
			e.Offset, e.Count, e.TypeIdx, e.NameIdx = uint64(offset), uint64(count), typeIdx, nameIdx
		},
	)
	if m := s.metrics; m != nil {
		m.SlotCount(sm.Len())
	}
	return idx
}

// findSlotByOffset returns the slot-map index of the entry with the
// given offset, if any.
func (s *Space) findSlotByOffset(offset Offset) (int, bool) {
	sm := s.slotMap()
	return findSorted(sm, uint64(offset),
		func(e *SlotEntry) uint64 { return e.Offset },
		func(a, b uint64) bool { return a < b },
	)
}

// removeSlotAt removes the slot map entry at idx. Its corresponding name
// map entry (if any) is erased first through the slot's NameIdx, which
// also shifts the other slots' NameIdx values, so erasing the slot map
// entry here needs no further name map bookkeeping beyond that.
func (s *Space) removeSlotAt(idx int) {
	sm := s.slotMap()
	e := sm.At(idx)
	if e.NameIdx != noNameIdx {
		s.removeNameAt(int(e.NameIdx))
	}
	sm.eraseAt(idx)
	if m := s.metrics; m != nil {
		m.SlotCount(sm.Len())
	}
}

// insertNameLocked inserts a new name map entry sorted lexicographically
// and returns its index, or (-1, false) if name already exists. slotOff
// is the byte Offset of the slot map entry name refers to.
func (s *Space) insertNameLocked(name string, slotOff uint64) (int, bool) {
	nm := s.nameMap()
	encoded := encodeName(name)
	idx, existed := insertSorted(nm, encoded,
		func(e *NameEntry) [64]byte { return e.Name },
		lessName,
		func(e *NameEntry) { e.Name, e.Slot = encoded, slotOff },
	)
	if existed {
		return -1, false
	}
	s.shiftNameIndices(idx, 1)
	return idx, true
}

// removeNameAt removes the name map entry at idx and shifts every slot
// map entry's NameIdx above idx down by one.
func (s *Space) removeNameAt(idx int) {
	nm := s.nameMap()
	nm.eraseAt(idx)
	s.shiftNameIndices(idx, -1)
}

// shiftNameIndices adjusts every slot map entry's NameIdx to account for
// a name map insertion (delta=+1) or deletion (delta=-1) at fromIdx: any
// NameIdx greater than or equal to fromIdx (for an insert) or greater
// than fromIdx (for a delete) moves by delta. This is the cost of keeping
// the name map sorted while the slot map references it by index rather
// than by offset.
func (s *Space) shiftNameIndices(fromIdx int, delta int) {
	sm := s.slotMap()
	shifted := 0
	threshold := uint64(fromIdx)
	if delta < 0 {
		threshold = uint64(fromIdx) + 1
	}
	for i := range sm.Slice() {
		e := sm.At(i)
		if e.NameIdx == noNameIdx {
			continue
		}
		if e.NameIdx >= threshold {
			e.NameIdx = uint64(int64(e.NameIdx) + int64(delta))
			shifted++
		}
	}
	if shifted > 0 {
		if m := s.metrics; m != nil {
			m.NameShift(shifted)
		}
	}
}

// findNameLocked returns the name map index of name, if registered.
func (s *Space) findNameLocked(name string) (int, bool) {
	nm := s.nameMap()
	encoded := encodeName(name)
	return findSorted(nm, encoded,
		func(e *NameEntry) [64]byte { return e.Name },
		lessName,
	)
}

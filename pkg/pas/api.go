package pas

import (
	"reflect"
	"unsafe"
)

// typeName derives the human-readable type-vector name for T the way
// spec.md's typeid(T).name() does in the C++ original: from the Go
// type's own name, not a name the caller has to spell out by hand.
func typeName[T any]() string {
	var zero T
	return reflect.TypeOf(zero).String()
}

// Create allocates one T, registers it in the type vector and slot map,
// and optionally in the name map, returning its Offset. It returns
// InvalidOffset if name is non-empty and already registered.
func Create[T any](s *Space, name string) Offset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(uint64(reflect.TypeOf((*T)(nil)).Elem().Size()), typeName[T](), 1, name)
}

// CreateArray allocates count contiguous T elements, registers a single
// slot map entry covering the whole range, and optionally a name map
// entry, returning the Offset of the first element.
func CreateArray[T any](s *Space, count int, name string) Offset {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	return s.createLocked(uint64(unsafe.Sizeof(zero)), typeName[T](), count, name)
}

func (s *Space) createLocked(elemSize uint64, tname string, count int, name string) Offset {
	if count <= 0 {
		return InvalidOffset
	}
	if name != "" {
		if _, existed := s.findNameLocked(name); existed {
			return InvalidOffset
		}
	}

	off := s.rawAlloc(int(elemSize)*count, alignFor(int(elemSize)))
	if off == InvalidOffset {
		return InvalidOffset
	}

	typeIdx := s.registerType(int(elemSize), tname)

	nameIdx := noNameIdx
	slotIdx := s.insertSlotLocked(off, count, typeIdx, noNameIdx)
	if name != "" {
		idx, _ := s.insertNameLocked(name, uint64(off))
		nameIdx = uint64(idx)
		sm := s.slotMap()
		sm.At(slotIdx).NameIdx = nameIdx
	}
	return off
}

// Delete releases the allocation whose slot map entry has offset off,
// erasing its name map entry (if any) and pushing its byte range onto
// the free list. A no-op if off is not a live allocation.
func (s *Space) Delete(off Offset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, found := s.findSlotByOffset(off)
	if !found {
		return
	}
	sm := s.slotMap()
	e := *sm.At(idx)
	tv := s.typeVec()
	elemSize := int(tv.At(int(e.TypeIdx)).ElemSize)

	s.removeSlotAt(idx)
	s.rawFree(off, elemSize*int(e.Count))
}

// Realloc changes a live allocation's element count in place when it is
// the most recently bump-allocated block, or by allocate+copy+free
// otherwise, updating its slot map entry and returning its (possibly new)
// Offset. It returns InvalidOffset if off is not a live allocation.
func Realloc[T any](s *Space, off Offset, newCount int) Offset {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, found := s.findSlotByOffset(off)
	if !found || newCount <= 0 {
		return InvalidOffset
	}
	sm := s.slotMap()
	e := *sm.At(idx)
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	oldCount := int(e.Count)

	var name string
	if e.NameIdx != noNameIdx {
		name = decodeName(s.nameMap().At(int(e.NameIdx)).Name)
	}

	newOff := s.rawRealloc(off, oldCount*elemSize, newCount*elemSize)
	if newOff == InvalidOffset {
		newOff = s.rawAlloc(newCount*elemSize, alignFor(elemSize))
		if newOff == InvalidOffset {
			return InvalidOffset
		}
		n := oldCount
		if newCount < n {
			n = newCount
		}
		src := ResolveSlice[T](s, off, n)
		dst := ResolveSlice[T](s, newOff, n)
		copy(dst, src)
		s.rawFree(off, oldCount*elemSize)
	}

	s.removeSlotAt(idx)
	newIdx := s.insertSlotLocked(newOff, newCount, e.TypeIdx, noNameIdx)
	if name != "" {
		nameIdx, _ := s.insertNameLocked(name, uint64(newOff))
		s.slotMap().At(newIdx).NameIdx = uint64(nameIdx)
	}
	return newOff
}

// Find returns the Offset registered under name, or InvalidOffset if no
// such name is registered.
func (s *Space) Find(name string) Offset {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, found := s.findNameLocked(name)
	if !found {
		return InvalidOffset
	}
	nm := s.nameMap()
	slotOff := Offset(nm.At(idx).Slot)
	if _, found := s.findSlotByOffset(slotOff); !found {
		return InvalidOffset
	}
	return slotOff
}

// FindTyped is Find plus a type-vector check: it returns InvalidOffset if
// name resolves to an allocation whose element size or registered type
// name does not match T.
func FindTyped[T any](s *Space, name string) Offset {
	s.mu.Lock()
	off := s.findTypedLocked(name, uint64(unsafe.Sizeof(*new(T))), typeName[T]())
	s.mu.Unlock()
	return off
}

func (s *Space) findTypedLocked(name string, elemSize uint64, tname string) Offset {
	idx, found := s.findNameLocked(name)
	if !found {
		return InvalidOffset
	}
	nm := s.nameMap()
	slotOff := Offset(nm.At(idx).Slot)
	slotIdx, found := s.findSlotByOffset(slotOff)
	if !found {
		return InvalidOffset
	}
	sm := s.slotMap()
	e := sm.At(slotIdx)
	tv := s.typeVec()
	t := tv.At(int(e.TypeIdx))
	if t.ElemSize != elemSize || decodeName(t.Name) != tname {
		return InvalidOffset
	}
	return Offset(e.Offset)
}

// GetName returns the registered name for off, or "" if off has no live,
// named slot map entry.
func (s *Space) GetName(off Offset) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, found := s.findSlotByOffset(off)
	if !found {
		return ""
	}
	sm := s.slotMap()
	e := sm.At(idx)
	if e.NameIdx == noNameIdx {
		return ""
	}
	nm := s.nameMap()
	if int(e.NameIdx) >= nm.Len() {
		return ""
	}
	return decodeName(nm.At(int(e.NameIdx)).Name)
}

// GetCount returns the element count of the live allocation at off, or 0
// if off is not a live allocation.
func (s *Space) GetCount(off Offset) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, found := s.findSlotByOffset(off)
	if !found {
		return 0
	}
	return int(s.slotMap().At(idx).Count)
}

// GetElemSize returns the registered element size of the live allocation
// at off, or 0 if off is not a live allocation.
func (s *Space) GetElemSize(off Offset) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, found := s.findSlotByOffset(off)
	if !found {
		return 0
	}
	e := s.slotMap().At(idx)
	return int(s.typeVec().At(int(e.TypeIdx)).ElemSize)
}

// ReserveSlots grows the slot map's and name map's capacity to at least
// n entries up front, the bulk-load fast path spec.md describes for
// building a large image without repeated doubling along the way.
func (s *Space) ReserveSlots(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slotMap().reserve(n)
	s.nameMap().reserve(n)
}

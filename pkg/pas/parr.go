package pas

import "unsafe"

// Descriptor is the three-machine-word header shared by every growable
// structure in this package and by every container built on it: the type
// vector, slot map, name map, free list, pvector/pmap backing stores, and
// pjson array/object payloads are all, structurally, a Descriptor plus an
// element buffer. spec.md calls this primitive parr.
type Descriptor struct {
	Size     uint64
	Capacity uint64
	DataOff  uint64
}

var descriptorSize = uint64(unsafe.Sizeof(Descriptor{}))

// arr is a typed handle onto a Descriptor living at descOff plus the
// element buffer it points to. It is never copied by value across a call
// that might reallocate; every method re-resolves the descriptor itself
// on entry, so a stale arr value is harmless — only a stale *Descriptor or
// element pointer obtained from it is not.
type arr[T any] struct {
	s          *Space
	descOff    Offset
	initialCap int
}

func newArr[T any](s *Space, descOff Offset, initialCap int) arr[T] {
	return arr[T]{s: s, descOff: descOff, initialCap: initialCap}
}

func (a arr[T]) descriptor() *Descriptor {
	return Resolve[Descriptor](a.s, a.descOff)
}

// Len returns the current element count.
func (a arr[T]) Len() int {
	d := a.descriptor()
	if d == nil {
		return 0
	}
	return int(d.Size)
}

// Cap returns the current element capacity.
func (a arr[T]) Cap() int {
	d := a.descriptor()
	if d == nil {
		return 0
	}
	return int(d.Capacity)
}

// At returns a pointer to the i'th element. The pointer is subject to the
// same realloc-safety rule as Resolve.
func (a arr[T]) At(i int) *T {
	d := a.descriptor()
	if d == nil || i < 0 || i >= int(d.Size) {
		return nil
	}
	return ResolveElement[T](a.s, Offset(d.DataOff), i)
}

// Slice returns a []T view over the live elements.
func (a arr[T]) Slice() []T {
	d := a.descriptor()
	if d == nil || d.Size == 0 {
		return nil
	}
	return ResolveSlice[T](a.s, Offset(d.DataOff), int(d.Size))
}

// reserve grows the backing buffer so it can hold at least minCap
// elements, growing from initialCap by the Space's growth factor (2 by
// default) and by at least one element per step. It tries the cheap
// last-block extend path (rawRealloc) first and falls back to
// allocate+copy+free.
func (a arr[T]) reserve(minCap int) {
	d := a.descriptor()
	if int(d.Capacity) >= minCap {
		return
	}

	newCap := int(d.Capacity)
	if newCap == 0 {
		newCap = a.initialCap
	}
	factor := a.s.growth()
	for newCap < minCap {
		next := int(float64(newCap) * factor)
		if next <= newCap {
			next = newCap + 1
		}
		newCap = next
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	align := alignFor(elemSize)

	oldOff := Offset(d.DataOff)
	oldCap := int(d.Capacity)
	oldSize := int(d.Size)

	if oldOff != InvalidOffset {
		if newOff := a.s.rawRealloc(oldOff, oldCap*elemSize, newCap*elemSize); newOff != InvalidOffset {
			d = a.descriptor() // re-resolve: rawRealloc may have grown the data area
			d.DataOff = uint64(newOff)
			d.Capacity = uint64(newCap)
			return
		}
	}

	newOff := a.s.rawAlloc(newCap*elemSize, align)
	d = a.descriptor() // re-resolve: rawAlloc may have grown the data area
	if oldOff != InvalidOffset && oldSize > 0 {
		src := ResolveSlice[T](a.s, oldOff, oldSize)
		dst := ResolveSlice[T](a.s, newOff, oldSize)
		copy(dst, src)
	}
	// Point the descriptor at the new buffer before freeing the old one:
	// when a is the free list itself, rawFree pushes onto a and must see
	// the grown capacity.
	d.DataOff = uint64(newOff)
	d.Capacity = uint64(newCap)
	if oldOff != InvalidOffset {
		a.s.rawFree(oldOff, oldCap*elemSize)
	}
}

// pushBack grows by one zero-valued element and returns a pointer to it.
func (a arr[T]) pushBack() *T {
	d := a.descriptor()
	newSize := int(d.Size) + 1
	a.reserve(newSize)
	d = a.descriptor()
	d.Size = uint64(newSize)
	elem := a.At(newSize - 1)
	var zero T
	*elem = zero
	return elem
}

// popBack shrinks by one element, a no-op on an empty array.
func (a arr[T]) popBack() {
	d := a.descriptor()
	if d == nil || d.Size == 0 {
		return
	}
	d.Size--
}

// eraseAt removes the i'th element, shifting the tail left by one
// (memmove semantics). Order-preserving; used by the sorted containers.
func (a arr[T]) eraseAt(i int) {
	d := a.descriptor()
	if d == nil {
		return
	}
	n := int(d.Size)
	if i < 0 || i >= n {
		return
	}
	s := a.Slice()
	copy(s[i:], s[i+1:])
	d = a.descriptor()
	d.Size--
}

// eraseSwapLast removes the i'th element by overwriting it with the last
// element, the free list's O(1) removal policy (spec.md §3: "unsorted,
// swap-with-last on removal").
func (a arr[T]) eraseSwapLast(i int) {
	d := a.descriptor()
	if d == nil {
		return
	}
	n := int(d.Size)
	if i < 0 || i >= n {
		return
	}
	s := a.Slice()
	s[i] = s[n-1]
	d = a.descriptor()
	d.Size--
}

// clear resets the element count to zero without releasing capacity.
func (a arr[T]) clear() {
	d := a.descriptor()
	if d != nil {
		d.Size = 0
	}
}

// free releases the backing buffer and zeroes the descriptor.
func (a arr[T]) free() {
	d := a.descriptor()
	if d == nil {
		return
	}
	if d.DataOff != 0 {
		var zero T
		elemSize := int(unsafe.Sizeof(zero))
		a.s.rawFree(Offset(d.DataOff), int(d.Capacity)*elemSize)
		d = a.descriptor() // re-resolve: rawFree may append to the free list
	}
	d.Size, d.Capacity, d.DataOff = 0, 0, 0
}

// insertSorted performs a binary-search insert-or-overwrite keyed by K:
// if an element with an equal key already exists, setValue overwrites it
// in place and existed is true; otherwise a new zero-valued element is
// inserted at the correct sorted position and setValue fills it in.
func insertSorted[T any, K any](a arr[T], key K, keyOf func(*T) K, less func(K, K) bool, setValue func(*T)) (idx int, existed bool) {
	n := a.Len()
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if s := a.Slice(); less(keyOf(&s[mid]), key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	idx = lo
	if idx < n {
		s := a.Slice()
		if !less(key, keyOf(&s[idx])) {
			setValue(&s[idx])
			return idx, true
		}
	}

	newSize := n + 1
	a.reserve(newSize)
	d := a.descriptor()
	d.Size = uint64(newSize)
	s := a.Slice()
	copy(s[idx+1:], s[idx:n])
	var zero T
	s[idx] = zero
	setValue(&s[idx])
	return idx, false
}

// findSorted performs a binary-search lower bound keyed by K, returning
// the index of the matching element if found.
func findSorted[T any, K any](a arr[T], key K, keyOf func(*T) K, less func(K, K) bool) (idx int, found bool) {
	n := a.Len()
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if s := a.Slice(); less(keyOf(&s[mid]), key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < n {
		s := a.Slice()
		if !less(key, keyOf(&s[lo])) {
			return lo, true
		}
	}
	return lo, false
}

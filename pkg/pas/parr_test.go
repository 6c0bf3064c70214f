package pas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArr[T any](s *Space, initialCap int) arr[T] {
	off := s.rawAlloc(int(descriptorSize), 8)
	d := Resolve[Descriptor](s, off)
	*d = Descriptor{}
	return newArr[T](s, off, initialCap)
}

func TestArr_PushBackAndAt(t *testing.T) {
	t.Parallel()

	s := New()
	a := newTestArr[int32](s, 2)

	for i := int32(0); i < 5; i++ {
		*a.pushBack() = i
	}

	require.Equal(t, 5, a.Len())
	for i := 0; i < 5; i++ {
		assert.Equal(t, int32(i), *a.At(i))
	}
}

func TestArr_EraseAtShiftsTail(t *testing.T) {
	t.Parallel()

	s := New()
	a := newTestArr[int32](s, 4)
	for i := int32(0); i < 4; i++ {
		*a.pushBack() = i
	}

	a.eraseAt(1)
	require.Equal(t, 3, a.Len())
	assert.Equal(t, []int32{0, 2, 3}, a.Slice())
}

func TestArr_EraseSwapLast(t *testing.T) {
	t.Parallel()

	s := New()
	a := newTestArr[int32](s, 4)
	for i := int32(0); i < 4; i++ {
		*a.pushBack() = i
	}

	a.eraseSwapLast(0)
	require.Equal(t, 3, a.Len())
	assert.Equal(t, []int32{3, 1, 2}, a.Slice())
}

func TestArr_ReserveGrowsCapacity(t *testing.T) {
	t.Parallel()

	s := New()
	a := newTestArr[int32](s, 2)
	a.reserve(100)
	assert.GreaterOrEqual(t, a.Cap(), 100)
	assert.Equal(t, 0, a.Len())
}

func TestArr_PopBackOnEmptyIsNoop(t *testing.T) {
	t.Parallel()

	s := New()
	a := newTestArr[int32](s, 2)
	a.popBack()
	assert.Equal(t, 0, a.Len())
}

func TestInsertSorted_KeepsAscendingOrder(t *testing.T) {
	t.Parallel()

	s := New()
	a := newTestArr[int32](s, 4)

	keyOf := func(v *int32) int32 { return *v }
	less := func(x, y int32) bool { return x < y }

	for _, v := range []int32{5, 1, 4, 2, 3} {
		insertSorted(a, v, keyOf, less, func(p *int32) { *p = v })
	}

	assert.Equal(t, []int32{1, 2, 3, 4, 5}, a.Slice())
}

func TestInsertSorted_OverwritesExistingKey(t *testing.T) {
	t.Parallel()

	s := New()
	a := newTestArr[int32](s, 4)
	keyOf := func(v *int32) int32 { return *v }
	less := func(x, y int32) bool { return x < y }

	insertSorted(a, int32(1), keyOf, less, func(p *int32) { *p = 1 })
	idx, existed := insertSorted(a, int32(1), keyOf, less, func(p *int32) { *p = 1 })

	assert.True(t, existed)
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, idx)
}

func TestFindSorted_LocatesExistingKey(t *testing.T) {
	t.Parallel()

	s := New()
	a := newTestArr[int32](s, 4)
	keyOf := func(v *int32) int32 { return *v }
	less := func(x, y int32) bool { return x < y }

	for _, v := range []int32{10, 20, 30} {
		insertSorted(a, v, keyOf, less, func(p *int32) { *p = v })
	}

	idx, found := findSorted(a, int32(20), keyOf, less)
	require.True(t, found)
	assert.Equal(t, 1, idx)

	_, found = findSorted(a, int32(99), keyOf, less)
	assert.False(t, found)
}

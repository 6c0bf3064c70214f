package pas

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProperty_ImageRoundTrip: create, save, and reload an image and
// confirm every named allocation survives with its data and identity
// intact.
func TestProperty_ImageRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roundtrip.pas")
	s, err := Open(path)
	require.NoError(t, err)

	type Point struct{ X, Y int32 }

	pOff := Create[Point](s, "origin")
	Resolve[Point](s, pOff).X = 3
	Resolve[Point](s, pOff).Y = 4

	arrOff := CreateArray[uint64](s, 8, "fib")
	fib := ResolveSlice[uint64](s, arrOff, 8)
	fib[0], fib[1] = 1, 1
	for i := 2; i < 8; i++ {
		fib[i] = fib[i-1] + fib[i-2]
	}

	require.NoError(t, s.Save())

	reloaded, err := Open(path)
	require.NoError(t, err)

	p := Resolve[Point](reloaded, reloaded.Find("origin"))
	require.NotNil(t, p)
	assert.Equal(t, int32(3), p.X)
	assert.Equal(t, int32(4), p.Y)

	gotFib := ResolveSlice[uint64](reloaded, reloaded.Find("fib"), 8)
	assert.Equal(t, []uint64{1, 1, 2, 3, 5, 8, 13, 21}, gotFib)
}

// TestProperty_SortedInsertKeepsKeyOrdering: inserting names in random
// order always leaves the name map lexicographically sorted, regardless of
// insertion order.
func TestProperty_SortedInsertKeepsKeyOrdering(t *testing.T) {
	t.Parallel()

	s := New()
	order := []string{"m", "a", "z", "c", "y", "b", "x"}
	for _, n := range order {
		require.NotEqual(t, InvalidOffset, Create[uint8](s, n))
	}

	nm := s.nameMap()
	prev := ""
	for _, e := range nm.Slice() {
		name := decodeName(e.Name)
		assert.Greater(t, name, prev)
		prev = name
	}
}

// TestProperty_RegisterTypeDedups: registering the same (size, name) pair
// twice yields the same type-vector index, and only a distinct pair
// appends a new entry.
func TestProperty_RegisterTypeDedups(t *testing.T) {
	t.Parallel()

	s := New()
	idx1 := s.registerType(8, "myvalue")
	idx2 := s.registerType(8, "myvalue")
	idx3 := s.registerType(8, "othervalue")

	assert.Equal(t, idx1, idx2, "identical (size, name) pairs must dedup")
	assert.NotEqual(t, idx1, idx3)
	assert.Equal(t, 2, s.typeVec().Len())
}

// TestProperty_ReserveSlotsLinearBulkLoad: reserving ahead of a bulk load
// of N objects results in exactly N slot map entries and no further
// growth beyond the reserved capacity.
func TestProperty_ReserveSlotsLinearBulkLoad(t *testing.T) {
	t.Parallel()

	const n = 2048
	s := New()
	s.ReserveSlots(n)
	reservedCap := s.slotMap().Cap()

	for i := 0; i < n; i++ {
		require.NotEqual(t, InvalidOffset, Create[uint16](s, ""))
	}

	assert.Equal(t, n, s.slotMap().Len())
	assert.Equal(t, reservedCap, s.slotMap().Cap(), "bulk load within reserved capacity must not trigger further growth")
}

// TestProperty_DeleteThenReuseFreeListFirstFit: deleting an allocation
// and creating a new one of the same size reuses the freed byte range
// rather than bump-allocating fresh space.
func TestProperty_DeleteThenReuseFreeListFirstFit(t *testing.T) {
	t.Parallel()

	s := New()
	first := CreateArray[byte](s, 128, "")

	s.Delete(first)
	bumpBeforeReuse := s.header().Bump
	second := CreateArray[byte](s, 128, "")

	assert.Equal(t, first, second)
	assert.Equal(t, bumpBeforeReuse, s.header().Bump, "reuse from the free list must not advance bump")
}

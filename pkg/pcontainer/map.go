package pcontainer

import "github.com/marmos91/pasdb/pkg/pas"

// entry is one (key, value) pair in a Map's sorted backing vector.
type entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is spec.md's pmap<K,V>: a persistent associative array kept as a
// single Vector of entries sorted by key, looked up by binary search —
// the same sorted-insert discipline pkg/pas uses for its own name map,
// generalized to an arbitrary ordered key.
type Map[K comparable, V any] struct {
	b    buf[entry[K, V]]
	less func(a, b K) bool
}

// NewMap allocates an empty Map ordered by less.
func NewMap[K comparable, V any](s *pas.Space, less func(a, b K) bool) Map[K, V] {
	return Map[K, V]{b: newBuf[entry[K, V]](s), less: less}
}

// MapAt wraps a Map whose Descriptor lives at off.
func MapAt[K comparable, V any](off pas.Offset, less func(a, b K) bool) Map[K, V] {
	return Map[K, V]{b: bufAt[entry[K, V]](off), less: less}
}

func (m Map[K, V]) Offset() pas.Offset { return m.b.descOff }
func (m Map[K, V]) Len(s *pas.Space) int { return m.b.Len(s) }

func (m Map[K, V]) find(s *pas.Space, key K) (int, bool) {
	n := m.b.Len(s)
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if m.less(m.b.Slice(s)[mid].Key, key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < n && !m.less(key, m.b.Slice(s)[lo].Key) {
		return lo, true
	}
	return lo, false
}

// Get returns the value stored under key and whether it was found.
func (m Map[K, V]) Get(s *pas.Space, key K) (V, bool) {
	idx, found := m.find(s, key)
	if !found {
		var zero V
		return zero, false
	}
	return m.b.Slice(s)[idx].Value, true
}

// Set inserts or overwrites the value under key.
func (m Map[K, V]) Set(s *pas.Space, key K, value V) {
	idx, found := m.find(s, key)
	if found {
		m.b.Slice(s)[idx].Value = value
		return
	}

	n := m.b.Len(s)
	m.b.reserve(s, n+1)
	d := m.b.descriptor(s)
	d.Size = uint64(n + 1)
	slice := m.b.Slice(s)
	copy(slice[idx+1:], slice[idx:n])
	slice[idx] = entry[K, V]{Key: key, Value: value}
}

// Delete removes key if present, reporting whether it was found.
func (m Map[K, V]) Delete(s *pas.Space, key K) bool {
	idx, found := m.find(s, key)
	if !found {
		return false
	}
	m.b.eraseAt(s, idx)
	return true
}

// Keys returns the map's keys in ascending order.
func (m Map[K, V]) Keys(s *pas.Space) []K {
	slice := m.b.Slice(s)
	keys := make([]K, len(slice))
	for i, e := range slice {
		keys[i] = e.Key
	}
	return keys
}

// Free releases the Map's backing buffer.
func (m Map[K, V]) Free(s *pas.Space) { m.b.free(s) }

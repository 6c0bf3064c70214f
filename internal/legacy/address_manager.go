// Package legacy is a thin, intentionally small adapter kept only for
// backward-compatible tests: the pre-PAS, per-type-name calling convention
// (explicit size, explicit type name string, own name table) some older
// callers still use. It is implemented on top of pkg/pas's untracked raw
// allocator so it does not duplicate heap storage, but — matching what it
// always did before PAS existed — it keeps its own name-to-offset map
// rather than registering entries in PAS's slot/name tables. New code
// should use pkg/pas's generic Create[T]/Find[T] API directly.
package legacy

import (
	"sync"

	"github.com/marmos91/pasdb/pkg/pas"
)

// entry records what a legacy allocation needs to free itself later:
// RawFree requires the original size.
type entry struct {
	offset pas.Offset
	size   int
}

// AddressManager wraps a *pas.Space with the legacy per-type-name API.
type AddressManager struct {
	mu    sync.Mutex
	space *pas.Space
	byTyped map[string]map[string]entry // typeName -> name -> entry
}

// NewAddressManager wraps space with the legacy calling convention.
func NewAddressManager(space *pas.Space) *AddressManager {
	return &AddressManager{
		space:   space,
		byTyped: make(map[string]map[string]entry),
	}
}

// CreateNamed allocates size raw bytes under typeName, records name in
// the manager's own table, and returns the resulting offset as a plain
// uint64. It returns 0 if name is already registered under typeName or
// the allocation fails.
func (am *AddressManager) CreateNamed(typeName, name string, size int) uint64 {
	am.mu.Lock()
	defer am.mu.Unlock()

	names, ok := am.byTyped[typeName]
	if !ok {
		names = make(map[string]entry)
		am.byTyped[typeName] = names
	}
	if _, exists := names[name]; exists {
		return 0
	}

	off := am.space.RawAlloc(size, 1)
	if off == pas.InvalidOffset {
		return 0
	}

	names[name] = entry{offset: off, size: size}
	return uint64(off)
}

// Find resolves (typeName, name) back to an offset, or 0 if unregistered.
func (am *AddressManager) Find(typeName, name string) uint64 {
	am.mu.Lock()
	defer am.mu.Unlock()

	e, ok := am.byTyped[typeName][name]
	if !ok {
		return 0
	}
	return uint64(e.offset)
}

// Delete releases the allocation registered under (typeName, name). A
// no-op if it is not registered.
func (am *AddressManager) Delete(typeName, name string) {
	am.mu.Lock()
	defer am.mu.Unlock()

	names, ok := am.byTyped[typeName]
	if !ok {
		return
	}
	e, ok := names[name]
	if !ok {
		return
	}
	delete(names, name)
	am.space.RawFree(e.offset, e.size)
}

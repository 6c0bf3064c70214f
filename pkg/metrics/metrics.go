// Package metrics defines the observation surface pkg/pas reports through,
// without importing a concrete metrics backend. Consumers supply an
// implementation (pkg/metrics/prometheus, or a no-op for tests) so pkg/pas
// never depends on client_golang directly.
package metrics

// AllocatorMetrics is consumed by pkg/pas to report allocator-level events.
// A nil AllocatorMetrics is valid everywhere it is accepted: every pkg/pas
// call site checks for nil before invoking it, matching the
// interface-in-consumer/typed-nil-when-disabled pattern used elsewhere in
// this module.
type AllocatorMetrics interface {
	// BumpAllocation records a bump-region allocation of size bytes.
	BumpAllocation(size int)

	// FreeListReuse records a free-list first-fit reuse of size bytes.
	FreeListReuse(size int)

	// DataAreaGrown records a data-area growth from oldSize to newSize
	// bytes.
	DataAreaGrown(oldSize, newSize uint64)

	// SlotCount reports the current number of live slot-map entries, a
	// gauge rather than a counter.
	SlotCount(n int)

	// NameShift records a name-map or slot-map index shift of n entries,
	// the cost of keeping the two-way name_idx/slot correspondence intact
	// after an insert or delete in the middle of either table.
	NameShift(n int)
}

package pas

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/marmos91/pasdb/pkg/metrics"
)

// Space is a single in-memory data area plus its backing file path. It is
// the top-level handle every package operation takes: the four internal
// tables, every container, and every named object live somewhere inside
// Space.data, addressed by Offset rather than by Go pointer so that the
// whole image can be grown, shrunk onto a fresh buffer, and written back
// to disk as one opaque byte blob.
//
// Most exported methods take mu as a single-writer safety net, but
// Validate and PtrToOffset do not, nor do the package-level Resolve,
// ResolveElement and ResolveSlice functions, and the pointers those return
// are read and written without it. A Space is not safe for concurrent use.
type Space struct {
	mu   sync.Mutex
	path string
	data []byte

	metrics metrics.AllocatorMetrics

	// initialDataAreaSize, initialTableCap, and growthFactor seed a
	// freshly initialized image's bump-allocated data area size, the four
	// internal tables' starting capacity, and the multiplier applied when
	// either must grow. Zero means "use the package default" for each.
	initialDataAreaSize uint64
	initialTableCap     int
	growthFactor        float64
}

// Option configures a Space at construction time.
type Option func(*Space)

// WithMetrics attaches an AllocatorMetrics sink. Passing nil (the default)
// disables metrics entirely; every call site in this package nil-checks
// before reporting.
func WithMetrics(m metrics.AllocatorMetrics) Option {
	return func(s *Space) { s.metrics = m }
}

// WithInitialDataAreaSize overrides the data area size a freshly
// initialized image starts with. Has no effect on an Open call that loads
// an existing image. Sizes below the four tables' own bootstrap footprint
// are rounded up by growDataArea the first time an allocation needs it.
func WithInitialDataAreaSize(size uint64) Option {
	return func(s *Space) { s.initialDataAreaSize = size }
}

// WithInitialTableCapacity overrides the starting element capacity of the
// four internal tables (type vector, slot map, name map, free list) on a
// freshly initialized image. Has no effect on an Open call that loads an
// existing image, since its tables already carry their own capacities.
func WithInitialTableCapacity(n int) Option {
	return func(s *Space) { s.initialTableCap = n }
}

// WithGrowthFactor overrides the multiplier applied to the data area or a
// table's capacity when it must grow to satisfy an allocation. Must be
// greater than 1.0; values <= 1.0 are ignored and the package default (2.0)
// is used instead.
func WithGrowthFactor(factor float64) Option {
	return func(s *Space) {
		if factor > 1.0 {
			s.growthFactor = factor
		}
	}
}

// growth returns the growth multiplier configured on s via
// WithGrowthFactor, or the package default if none was given.
func (s *Space) growth() float64 {
	if s.growthFactor <= 1.0 {
		return 2.0
	}
	return s.growthFactor
}

// New creates an empty, unbacked Space — no file on disk, suitable for
// tests and for building an image in memory before the first Save.
func New(opts ...Option) *Space {
	s := &Space{}
	for _, opt := range opts {
		opt(s)
	}
	s.initEmpty()
	return s
}

// Open loads an image from path if it exists and its header validates, or
// initializes a fresh empty image bound to path otherwise. A header that
// fails its magic/version check, or a file too short to hold a header, is
// treated the same as a missing file: this matches spec.md's documented
// InvalidImage fallback. Open returns no error for such a file, and a
// Validate call on the returned Space cannot tell the two cases apart.
func Open(path string, opts ...Option) (*Space, error) {
	s := &Space{path: path}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(raw) >= int(headerSize) {
			s.data = raw
			if s.Validate() {
				return s, nil
			}
		}
		s.initEmpty()
		return s, nil
	case os.IsNotExist(err):
		s.initEmpty()
		return s, nil
	default:
		return nil, fmt.Errorf("pas: open %s: %w", path, err)
	}
}

// Save writes the current data area to the Space's backing path as a
// single file, overwriting any prior contents. A Space created with New
// (no path) returns an error.
func (s *Space) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return fmt.Errorf("pas: save: %w", ErrInvalidImage)
	}
	return os.WriteFile(s.path, s.data, 0o644)
}

// SaveAs writes the current data area to path and rebinds the Space to it
// for subsequent Save calls.
func (s *Space) SaveAs(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(path, s.data, 0o644); err != nil {
		return err
	}
	s.path = path
	return nil
}

// Validate reports whether the data area begins with a well-formed
// header (magic, version, DataAreaSize in bounds), whether each of the
// four internal tables' Descriptors describe a size/capacity/data-offset
// triple that actually fits inside DataAreaSize, and whether the name map
// and slot map agree with each other: every named slot's NameEntry.Slot
// resolves back to that same slot, and every NameEntry.Slot resolves to
// some live slot. Open relies on this to reject a corrupt or truncated
// image file, falling back to an empty image, rather than reading through
// it and panicking partway.
func (s *Space) Validate() bool {
	if len(s.data) < int(headerSize) {
		return false
	}
	h := s.header()
	if h.Magic != Magic || h.Version != FormatVersion {
		return false
	}
	if h.DataAreaSize > uint64(len(s.data)) {
		return false
	}
	return s.validateTables()
}

// validateTables checks each of the four internal tables' Descriptors
// against the data area's bounds, then cross-checks the name map and
// slot map against each other.
func (s *Space) validateTables() bool {
	h := s.header()
	size := h.DataAreaSize

	if !descriptorInBounds[TypeInfo](s, Offset(h.TypeVecOff), size) {
		return false
	}
	if !descriptorInBounds[SlotEntry](s, Offset(h.SlotMapOff), size) {
		return false
	}
	if !descriptorInBounds[NameEntry](s, Offset(h.NameMapOff), size) {
		return false
	}
	if !descriptorInBounds[FreeEntry](s, Offset(h.FreeListOff), size) {
		return false
	}

	return s.validateNameSlotConsistency()
}

// descriptorInBounds reports whether the Descriptor at descOff describes
// a Size <= Capacity whose [DataOff, DataOff+Size*sizeof(T)) element range
// fits entirely within a data area of dataAreaSize bytes.
func descriptorInBounds[T any](s *Space, descOff Offset, dataAreaSize uint64) bool {
	if descOff == InvalidOffset || uint64(descOff)+descriptorSize > dataAreaSize {
		return false
	}
	d := Resolve[Descriptor](s, descOff)
	if d == nil || d.Size > d.Capacity {
		return false
	}
	if d.Size == 0 {
		return true
	}
	var zero T
	elemSize := uint64(unsafe.Sizeof(zero))
	return d.DataOff+d.Size*elemSize <= dataAreaSize
}

// validateNameSlotConsistency checks the two-way reference between the
// name map and slot map: every named SlotEntry's NameIdx must resolve to
// a NameEntry that points back at that same slot's Offset, and every
// NameEntry.Slot must resolve to a live slot map entry.
func (s *Space) validateNameSlotConsistency() bool {
	sm := s.slotMap()
	nm := s.nameMap()

	for i := 0; i < sm.Len(); i++ {
		e := sm.At(i)
		if e.NameIdx == noNameIdx {
			continue
		}
		if int(e.NameIdx) >= nm.Len() {
			return false
		}
		if nm.At(int(e.NameIdx)).Slot != e.Offset {
			return false
		}
	}

	for i := 0; i < nm.Len(); i++ {
		if _, found := s.findSlotByOffset(Offset(nm.At(i).Slot)); !found {
			return false
		}
	}

	return true
}

// Reset discards the current data area and reinitializes an empty image
// in place, keeping the Space's backing path.
func (s *Space) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initEmpty()
}

// initEmpty lays out a fresh image: the header at offset 0, followed by
// the four internal tables' Descriptors, bump-allocated in order (the
// free list does not exist yet at this point, so freeListAlloc's
// h.FreeListOff == 0 guard routes every one of these through bumpAlloc).
func (s *Space) initEmpty() {
	size := s.initialDataAreaSize
	if size == 0 {
		size = initialDataAreaSize
	}
	if s.initialTableCap == 0 {
		s.initialTableCap = tableInitialCap
	}
	s.data = make([]byte, size)

	h := s.header()
	h.Magic = Magic
	h.Version = FormatVersion
	h.DataAreaSize = size
	h.Bump = headerSize

	h.TypeVecOff = s.allocDescriptor()
	h = s.header()
	h.SlotMapOff = s.allocDescriptor()
	h = s.header()
	h.NameMapOff = s.allocDescriptor()
	h = s.header()
	h.FreeListOff = s.allocDescriptor()
}

// Stats is a point-in-time snapshot of an image's header fields, for
// tooling (pasdb inspect) that needs to report on an image without
// reaching into unexported internals.
type Stats struct {
	DataAreaSize   uint64
	Bump           uint64
	SlotCount      int
	NameCount      int
	FreeListCount  int
	HasDictionary  bool
}

// Stats returns a snapshot of the current image's header and table sizes.
func (s *Space) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.header()
	return Stats{
		DataAreaSize:  h.DataAreaSize,
		Bump:          h.Bump,
		SlotCount:     s.slotMap().Len(),
		NameCount:     s.nameMap().Len(),
		FreeListCount: s.freeList().Len(),
		HasDictionary: h.StringTableOff != 0,
	}
}

// allocDescriptor bump-allocates a zeroed Descriptor and returns its
// offset. Used only during bootstrap, before the free list exists.
func (s *Space) allocDescriptor() uint64 {
	off := s.bumpAlloc(int(descriptorSize), 8)
	d := Resolve[Descriptor](s, off)
	*d = Descriptor{}
	return uint64(off)
}

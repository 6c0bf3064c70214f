package pas

import "unsafe"

// Magic identifies a PAS image file. It lives at byte 0 of every image.
const Magic uint32 = 0x50414D00

// FormatVersion is the current on-disk image format version.
const FormatVersion uint32 = 10

// Header is the fixed-size record at offset 0 of both the image file and
// the in-memory data area. It is never constructed or parsed field by
// field: it is addressed directly as a typed overlay on the first
// unsafe.Sizeof(Header{}) bytes of the heap, so its offsets and counters
// are persisted automatically whenever the data area is written to disk.
//
// Field order matters: it is the on-disk layout. Never reorder without
// bumping FormatVersion.
type Header struct {
	Magic             uint32
	Version           uint32
	DataAreaSize      uint64
	TypeVecOff        uint64
	SlotMapOff        uint64
	NameMapOff        uint64
	FreeListOff       uint64
	Bump              uint64
	StringTableOff    uint64
}

// headerSize is sizeof(pas_header) in spec.md terms: the prefix of the
// data area reserved for the header itself.
var headerSize = uint64(unsafe.Sizeof(Header{}))

// header returns a typed overlay of the Header at byte 0 of the current
// data buffer. Callers must treat the returned pointer as invalid across
// any call that may grow or reallocate s.data (growDataArea, rawAlloc,
// rawRealloc) and re-call header() afterward — see the realloc-safety
// rule in spec.md §4.1.
func (s *Space) header() *Header {
	return (*Header)(unsafe.Pointer(&s.data[0]))
}

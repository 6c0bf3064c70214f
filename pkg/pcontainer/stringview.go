package pcontainer

import "github.com/marmos91/pasdb/pkg/pas"

// StringView is spec.md's pstringview: an immutable reference to an
// interned string's bytes. Two StringViews produced by the same
// Dictionary from equal content compare equal as plain values — no byte
// comparison needed, since interning guarantees identical content always
// lands at the same DataOff.
type StringView struct {
	DataOff pas.Offset
	Length  uint32
}

// String returns a copy of the referenced content as a Go string.
func (v StringView) String(s *pas.Space) string {
	if v.Length == 0 {
		return ""
	}
	return string(pas.ResolveSlice[byte](s, v.DataOff, int(v.Length)))
}

// IsEmpty reports whether v references the empty string or is the zero
// value.
func (v StringView) IsEmpty() bool { return v.Length == 0 }

package pcontainer

import "github.com/marmos91/pasdb/pkg/pas"

// String is spec.md's pstring: a mutable, persistent byte buffer. Unlike
// StringView it is not interned — two Strings holding identical content
// are two independent allocations, exactly like a Go []byte versus a Go
// string.
type String struct {
	b buf[byte]
}

// NewString allocates an empty String.
func NewString(s *pas.Space) String {
	return String{b: newBuf[byte](s)}
}

// NewStringFrom allocates a String initialized to content.
func NewStringFrom(s *pas.Space, content string) String {
	str := NewString(s)
	str.Set(s, content)
	return str
}

// StringAt wraps a String whose Descriptor lives at off.
func StringAt(off pas.Offset) String { return String{b: bufAt[byte](off)} }

func (str String) Offset() pas.Offset { return str.b.descOff }

// Len returns the byte length of the string.
func (str String) Len(s *pas.Space) int { return str.b.Len(s) }

// String returns a copy of the content as a Go string.
func (str String) String(s *pas.Space) string {
	return string(str.b.Slice(s))
}

// Set overwrites the content with content.
func (str String) Set(s *pas.Space, content string) {
	str.b.clear(s)
	str.Append(s, content)
}

// Append appends content to the end of the string.
func (str String) Append(s *pas.Space, content string) {
	n := len(content)
	if n == 0 {
		return
	}
	start := str.b.Len(s)
	str.b.reserve(s, start+n)
	d := str.b.descriptor(s)
	d.Size = uint64(start + n)
	copy(str.b.Slice(s)[start:], content)
}

// Free releases the String's backing buffer.
func (str String) Free(s *pas.Space) { str.b.free(s) }

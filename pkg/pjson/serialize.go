package pjson

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/marmos91/pasdb/pkg/bufpool"
	"github.com/marmos91/pasdb/pkg/pas"
)

// Serialize renders v as a JSON document. Object keys are emitted in the
// Map's own sorted order, matching spec.md's requirement that object
// serialization be deterministic regardless of insertion order. Numbers
// use strconv's shortest round-tripping representation, the Go standard
// library's equivalent of the original's Grisu2-quality float formatting
// — no third-party numeric formatter in this module's dependency set
// improves on it, so this is the one place pjson reaches for the
// standard library by design rather than as a gap.
//
// The output buffer's backing array is borrowed from bufpool rather than
// grown from nothing on every call, the same Get/Put-around-a-scratch-
// buffer pattern the teacher uses for read/write scratch space.
func Serialize(s *pas.Space, v Value) string {
	scratch := bufpool.Get(bufpool.DefaultSmallSize)
	defer bufpool.Put(scratch)

	b := bytes.NewBuffer(scratch[:0])
	serializeInto(b, s, v)
	return b.String()
}

func serializeInto(b *bytes.Buffer, s *pas.Space, v Value) {
	switch v.Tag {
	case TagNull:
		b.WriteString("null")
	case TagBool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case TagInt64:
		b.WriteString(strconv.FormatInt(v.Int64(), 10))
	case TagFloat64:
		b.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case TagString:
		writeJSONString(b, v.String(s))
	case TagArray:
		b.WriteByte('[')
		elems := v.Array().Slice(s)
		for i, e := range elems {
			if i > 0 {
				b.WriteByte(',')
			}
			serializeInto(b, s, e)
		}
		b.WriteByte(']')
	case TagObject:
		b.WriteByte('{')
		m := v.Object(s)
		for i, k := range m.Keys(s) {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, k.String(s))
			b.WriteByte(':')
			val, _ := m.Get(s, k)
			serializeInto(b, s, val)
		}
		b.WriteByte('}')
	}
}

func writeJSONString(b *bytes.Buffer, content string) {
	b.WriteByte('"')
	for _, r := range content {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

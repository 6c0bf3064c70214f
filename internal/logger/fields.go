package logger

import (
	"encoding/hex"
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation
// and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Operation identity
	// ========================================================================
	KeyOperation = "operation" // allocator operation name: Create, Delete, Resolve, ...
	KeyImage     = "image"     // image file path the space was opened from
	KeyHandle    = "handle"    // opaque byte handle (e.g. an object ID), hex-encoded

	// ========================================================================
	// Allocator bookkeeping
	// ========================================================================
	KeyOffset       = "offset"        // offset an operation is acting on
	KeyName         = "name"          // object name passed to Create/Find
	KeyTypeName     = "type_name"     // registered type name
	KeyTypeIdx      = "type_idx"      // type vector index
	KeyElemSize     = "elem_size"     // element size in bytes
	KeyCount        = "count"         // element count of an allocation
	KeySlotCount    = "slot_count"    // number of live slots
	KeyNameCount    = "name_count"    // number of named slots
	KeyFreeCount    = "free_count"    // number of free-list entries
	KeyBump         = "bump"          // current bump offset
	KeyDataAreaSize = "data_area_size" // current data area capacity
	KeyOldSize      = "old_size"      // capacity before a growth event
	KeyNewSize      = "new_size"      // capacity after a growth event

	// ========================================================================
	// String interning
	// ========================================================================
	KeyHash       = "hash"        // FNV-1a hash of an interned string
	KeyBucket     = "bucket"      // dictionary bucket index
	KeyLoadFactor = "load_factor" // dictionary load factor at the time of the event

	// ========================================================================
	// JSON DOM
	// ========================================================================
	KeyTag     = "tag"     // pjson.Value tag
	KeyKey     = "key"     // object key under mutation
	KeyPath    = "path"    // JSON pointer-ish path for node refs
	KeyDepth   = "depth"   // recursion depth (deref, serialize)

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
	KeyError      = "error"       // error message
	KeyErrorCode  = "error_code"  // numeric/sentinel error code
)

// ----------------------------------------------------------------------------
// Distributed Tracing
// ----------------------------------------------------------------------------

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// ----------------------------------------------------------------------------
// Operation identity
// ----------------------------------------------------------------------------

// Operation returns a slog.Attr for the allocator operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Image returns a slog.Attr for the image file path
func Image(path string) slog.Attr {
	return slog.String(KeyImage, path)
}

// Handle returns a slog.Attr for an opaque byte handle, hex-encoded
func Handle(h []byte) slog.Attr {
	return slog.String(KeyHandle, hex.EncodeToString(h))
}

// ----------------------------------------------------------------------------
// Allocator bookkeeping
// ----------------------------------------------------------------------------

// Offset returns a slog.Attr for an offset into the data area
func Offset(off uint64) slog.Attr {
	return slog.Uint64(KeyOffset, off)
}

// Name returns a slog.Attr for an object name
func Name(name string) slog.Attr {
	return slog.String(KeyName, name)
}

// TypeName returns a slog.Attr for a registered type name
func TypeName(name string) slog.Attr {
	return slog.String(KeyTypeName, name)
}

// TypeIdx returns a slog.Attr for a type vector index
func TypeIdx(idx int) slog.Attr {
	return slog.Int(KeyTypeIdx, idx)
}

// ElemSize returns a slog.Attr for an element size in bytes
func ElemSize(size int) slog.Attr {
	return slog.Int(KeyElemSize, size)
}

// Count returns a slog.Attr for an element count
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// SlotCount returns a slog.Attr for the number of live slots
func SlotCount(n int) slog.Attr {
	return slog.Int(KeySlotCount, n)
}

// NameCount returns a slog.Attr for the number of named slots
func NameCount(n int) slog.Attr {
	return slog.Int(KeyNameCount, n)
}

// FreeCount returns a slog.Attr for the number of free-list entries
func FreeCount(n int) slog.Attr {
	return slog.Int(KeyFreeCount, n)
}

// Bump returns a slog.Attr for the current bump offset
func Bump(off uint64) slog.Attr {
	return slog.Uint64(KeyBump, off)
}

// DataAreaSize returns a slog.Attr for the current data area capacity
func DataAreaSize(size uint64) slog.Attr {
	return slog.Uint64(KeyDataAreaSize, size)
}

// GrowthFrom returns the (old_size, new_size) pair of slog.Attr for a growth event
func GrowthFrom(oldSize, newSize uint64) []slog.Attr {
	return []slog.Attr{
		slog.Uint64(KeyOldSize, oldSize),
		slog.Uint64(KeyNewSize, newSize),
	}
}

// ----------------------------------------------------------------------------
// String interning
// ----------------------------------------------------------------------------

// Hash returns a slog.Attr for an interned string's FNV-1a hash
func Hash(h uint64) slog.Attr {
	return slog.Uint64(KeyHash, h)
}

// Bucket returns a slog.Attr for a dictionary bucket index
func Bucket(idx int) slog.Attr {
	return slog.Int(KeyBucket, idx)
}

// LoadFactor returns a slog.Attr for a dictionary's current load factor
func LoadFactor(f float64) slog.Attr {
	return slog.Float64(KeyLoadFactor, f)
}

// ----------------------------------------------------------------------------
// JSON DOM
// ----------------------------------------------------------------------------

// Tag returns a slog.Attr for a pjson.Value tag
func Tag(tag string) slog.Attr {
	return slog.String(KeyTag, tag)
}

// Key returns a slog.Attr for an object key
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// Path returns a slog.Attr for a ref path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Depth returns a slog.Attr for a recursion depth
func Depth(d int) slog.Attr {
	return slog.Int(KeyDepth, d)
}

// ----------------------------------------------------------------------------
// Operation Metadata
// ----------------------------------------------------------------------------

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a numeric/sentinel error code
func ErrorCode(code int) slog.Attr {
	return slog.Int(KeyErrorCode, code)
}

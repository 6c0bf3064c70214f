package pas

import "errors"

// Sentinel errors surfaced at the package boundary.
//
// The allocator itself is panic- and exception-free: every mutating
// operation documented in the package's operation list communicates failure
// by returning a zero Offset (see Offset's InvalidOffset constant) or a
// nil pointer. Of the errors below, only ErrInvalidImage is returned by
// this package (from Save); the others name conditions that the allocator
// methods report through those zero-offset and nil sentinels instead.
var (
	// ErrNameCollision names a name that is already registered in the
	// name map. Create/CreateArray signal it by returning offset 0; no
	// function returns this error.
	ErrNameCollision = errors.New("pas: name already registered")

	// ErrInvalidImage is returned, wrapped, by Save on a Space that has no
	// backing path. Open does not return it: a file whose header fails its
	// magic/version check is replaced by an empty image, the same as a
	// missing file, matching spec.md's InvalidImage failure semantics.
	ErrInvalidImage = errors.New("pas: invalid image header")

	// ErrNotFound names a failed lookup. No function returns it; lookups
	// report absence with a zero Offset or a false result.
	ErrNotFound = errors.New("pas: not found")

	// ErrInvalidOffset names an offset that is zero or out of bounds. No
	// function returns it; Resolve returns nil for such an offset.
	ErrInvalidOffset = errors.New("pas: invalid offset")
)

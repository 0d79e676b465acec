package native

// Handle is an opaque reference to engine-owned state. A zero handle is
// the null handle. A handle is either live (usable) or released; once the
// matching destroy function has run it must never be dereferenced again.
// The guard package is the only place that tracks which of the two states
// a handle is in.
type Handle uintptr

// NullHandle is the zero, never-usable handle value.
const NullHandle Handle = 0

// IsNull reports whether the handle is the null handle.
func (h Handle) IsNull() bool {
	return h == NullHandle
}

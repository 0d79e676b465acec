package guard

import (
	"log/slog"

	"github.com/c360/iecbridge/native"
)

// ListGuard owns one enumerable list handle and exposes null-safe
// traversal over its elements. Traversal always restarts from the head of
// the list; it is not resumable mid-iteration. The list itself is
// destroyed exactly once by Release, regardless of whether any traversal
// completed or was abandoned early.
type ListGuard struct {
	guard  *Guard
	engine native.Engine
}

// AcquireList wraps a list handle, including the null handle. Traversal
// over a null list yields no elements rather than failing.
func AcquireList(engine native.Engine, h native.Handle) *ListGuard {
	return &ListGuard{
		guard:  Acquire(h, engine.DestroyList),
		engine: engine,
	}
}

// WithLogger replaces the logger used for swallowed cleanup failures.
func (lg *ListGuard) WithLogger(logger *slog.Logger) *ListGuard {
	lg.guard.WithLogger(logger)
	return lg
}

// ForEach walks the list from the head, invoking fn for every non-null
// element until fn returns false or the end-of-list sentinel is reached.
// Null entries are skipped silently. ForEach on an Empty or null-list
// guard is a no-op. The list is not destroyed by ForEach; Release does
// that, exactly once, even if fn panics.
func (lg *ListGuard) ForEach(fn func(value string) bool) {
	head := lg.guard.Handle()
	if head.IsNull() {
		return
	}
	for el := lg.engine.ListNext(head); !el.IsNull(); el = lg.engine.ListNext(el) {
		value, ok := lg.engine.ListString(el)
		if !ok {
			continue
		}
		if !fn(value) {
			return
		}
	}
}

// Strings copies all non-null elements into an owned slice in native
// order. A null or Empty list yields an empty (non-nil) slice.
func (lg *ListGuard) Strings() []string {
	out := []string{}
	lg.ForEach(func(v string) bool {
		out = append(out, v)
		return true
	})
	return out
}

// IsEmpty reports whether the guard holds no live list handle.
func (lg *ListGuard) IsEmpty() bool {
	return lg.guard.IsEmpty()
}

// Release destroys the list exactly once. Idempotent; safe no-op on a
// null list.
func (lg *ListGuard) Release() {
	lg.guard.Release()
}

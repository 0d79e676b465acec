package guard

import (
	"log/slog"

	"github.com/c360/iecbridge/native"
)

// Guard exclusively owns one native handle. The zero value is an empty
// guard; use Acquire to wrap a handle. A guard is either Holding (live
// handle reachable through Handle) or Empty (wrapped null, released, or
// detached). Once Empty, the wrapped handle is no longer reachable.
type Guard struct {
	handle   native.Handle
	destroy  func(native.Handle)
	logger   *slog.Logger
	released bool
}

// Acquire wraps a handle, including the null handle, together with its
// destroy function. It never fails; wrapping null yields an Empty guard
// whose Release is a no-op.
func Acquire(h native.Handle, destroy func(native.Handle)) *Guard {
	return &Guard{handle: h, destroy: destroy, logger: slog.Default()}
}

// AcquireBorrowed wraps a handle the caller does not own, such as a value
// delivered inside a native callback. Release transitions the guard to
// Empty without invoking any destroy function.
func AcquireBorrowed(h native.Handle) *Guard {
	return &Guard{handle: h, logger: slog.Default()}
}

// WithLogger replaces the logger used for swallowed cleanup failures.
func (g *Guard) WithLogger(logger *slog.Logger) *Guard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// Handle returns the wrapped handle, or the null handle if the guard is
// Empty. The returned handle must not be stored past the guard's scope.
func (g *Guard) Handle() native.Handle {
	if g.released {
		return native.NullHandle
	}
	return g.handle
}

// IsEmpty reports whether the guard holds no live handle.
func (g *Guard) IsEmpty() bool {
	return g.released || g.handle.IsNull()
}

// Release destroys the wrapped handle at most once. It is idempotent and
// a safe no-op on an Empty guard. Release never panics and never returns
// an error: a failure inside the destroy function is recovered and
// logged, because Release runs on cleanup paths where raising would mask
// the original failure.
func (g *Guard) Release() {
	if g.released || g.handle.IsNull() {
		g.released = true
		return
	}
	h := g.handle
	g.released = true
	g.handle = native.NullHandle

	if g.destroy == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.logger.Warn("handle destroy failed during release", "panic", r)
		}
	}()
	g.destroy(h)
}

// Detach transfers raw ownership of the handle to the caller and
// transitions the guard to Empty without invoking destroy. Detaching an
// Empty guard returns the null handle.
func (g *Guard) Detach() native.Handle {
	if g.released {
		return native.NullHandle
	}
	h := g.handle
	g.released = true
	g.handle = native.NullHandle
	return h
}

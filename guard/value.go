package guard

import (
	"log/slog"
	"time"

	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/native"
)

// ValueGuard owns one decoded-value handle and exposes typed read
// accessors over it. Decode operations are pure reads of the still-owned
// handle and must happen before Release; accessors on a null or released
// value fail with ErrNullHandle instead of dereferencing it.
type ValueGuard struct {
	guard  *Guard
	engine native.Engine
}

// AcquireValue wraps an owned decoded-value handle, including null.
func AcquireValue(engine native.Engine, h native.Handle) *ValueGuard {
	return &ValueGuard{
		guard:  Acquire(h, engine.DeleteValue),
		engine: engine,
	}
}

// BorrowValue wraps a value handle the engine still owns, such as the
// dataset values delivered inside a callback. Accessors work identically;
// Release empties the guard without deleting the value.
func BorrowValue(engine native.Engine, h native.Handle) *ValueGuard {
	return &ValueGuard{
		guard:  AcquireBorrowed(h),
		engine: engine,
	}
}

// WithLogger replaces the logger used for swallowed cleanup failures.
func (vg *ValueGuard) WithLogger(logger *slog.Logger) *ValueGuard {
	vg.guard.WithLogger(logger)
	return vg
}

// IsEmpty reports whether the guard holds no live value handle.
func (vg *ValueGuard) IsEmpty() bool {
	return vg.guard.IsEmpty()
}

// Release deletes an owned value exactly once; on a borrowed value it
// empties the guard without deleting. Idempotent; safe no-op on null.
func (vg *ValueGuard) Release() {
	vg.guard.Release()
}

// require returns the live handle or ErrNullHandle.
func (vg *ValueGuard) require(op string) (native.Handle, error) {
	h := vg.guard.Handle()
	if h.IsNull() {
		return native.NullHandle, errors.WrapInvalid(errors.ErrNullHandle, "ValueGuard", op, "handle check")
	}
	return h, nil
}

// Kind returns the decode discriminant of the guarded value.
func (vg *ValueGuard) Kind() (native.Kind, error) {
	h, err := vg.require("Kind")
	if err != nil {
		return native.KindUnknown, err
	}
	return vg.engine.ValueKind(h), nil
}

// Bool decodes a boolean value.
func (vg *ValueGuard) Bool() (bool, error) {
	h, err := vg.require("Bool")
	if err != nil {
		return false, err
	}
	return vg.engine.ValueBool(h), nil
}

// Int decodes an integer value.
func (vg *ValueGuard) Int() (int64, error) {
	h, err := vg.require("Int")
	if err != nil {
		return 0, err
	}
	return vg.engine.ValueInt(h), nil
}

// Float decodes a float value.
func (vg *ValueGuard) Float() (float64, error) {
	h, err := vg.require("Float")
	if err != nil {
		return 0, err
	}
	return vg.engine.ValueFloat(h), nil
}

// String decodes a string value.
func (vg *ValueGuard) String() (string, error) {
	h, err := vg.require("String")
	if err != nil {
		return "", err
	}
	return vg.engine.ValueString(h), nil
}

// BitString decodes a bit-string value as an integer bitmap.
func (vg *ValueGuard) BitString() (uint32, error) {
	h, err := vg.require("BitString")
	if err != nil {
		return 0, err
	}
	return vg.engine.ValueBitString(h), nil
}

// Timestamp decodes a timestamp value.
func (vg *ValueGuard) Timestamp() (time.Time, error) {
	h, err := vg.require("Timestamp")
	if err != nil {
		return time.Time{}, err
	}
	return vg.engine.ValueTimestamp(h), nil
}

// Owned copies the guarded value into an owned, representation-independent
// native.Value tree, recursing into arrays and structures. The copy stays
// valid after Release; callers that need the value past the guard's scope
// use this instead of holding the handle.
func (vg *ValueGuard) Owned() (native.Value, error) {
	h, err := vg.require("Owned")
	if err != nil {
		return native.Value{}, err
	}
	return copyValue(vg.engine, h), nil
}

// copyValue decodes one engine value into an owned Value. Borrowed element
// handles are read in place and never deleted.
func copyValue(engine native.Engine, h native.Handle) native.Value {
	if h.IsNull() {
		return native.Value{}
	}
	switch kind := engine.ValueKind(h); kind {
	case native.KindBool:
		return native.NewBool(engine.ValueBool(h))
	case native.KindInt:
		return native.NewInt(engine.ValueInt(h))
	case native.KindUint:
		return native.NewUint(engine.ValueUint(h))
	case native.KindFloat:
		return native.NewFloat(engine.ValueFloat(h))
	case native.KindString:
		return native.NewString(engine.ValueString(h))
	case native.KindBitString:
		return native.NewBitString(engine.ValueBitString(h))
	case native.KindTimestamp:
		return native.NewTimestamp(engine.ValueTimestamp(h))
	case native.KindArray, native.KindStruct:
		count := engine.ValueCount(h)
		elems := make([]native.Value, 0, count)
		for i := 0; i < count; i++ {
			elems = append(elems, copyValue(engine, engine.ValueElement(h, i)))
		}
		return native.Value{Kind: kind, Elements: elems}
	default:
		return native.Value{}
	}
}

// CopyValues decodes a borrowed value-array handle into an owned slice.
// A null handle yields an empty slice. Used by the dispatch bridge to
// copy callback payloads out before the engine reclaims them.
func CopyValues(engine native.Engine, h native.Handle) []native.Value {
	if h.IsNull() {
		return []native.Value{}
	}
	v := copyValue(engine, h)
	if v.Kind == native.KindArray || v.Kind == native.KindStruct {
		return v.Elements
	}
	return []native.Value{v}
}

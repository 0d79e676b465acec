package native

import (
	"fmt"
	"time"
)

// Kind is the decode discriminant for engine-owned values.
type Kind int

// Value kinds understood by the decode surface.
const (
	KindUnknown Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBitString
	KindTimestamp
	KindArray
	KindStruct
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBitString:
		return "bit-string"
	case KindTimestamp:
		return "timestamp"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Value is an owned, representation-independent copy of a decoded engine
// value. Unlike a Handle it has no lifetime obligations: it remains valid
// after the backing handle has been released and may be retained freely.
type Value struct {
	Kind     Kind
	Bool     bool
	Int      int64
	Uint     uint64
	Float    float64
	Str      string
	Bits     uint32
	Time     time.Time
	Elements []Value
}

// NewBool returns an owned boolean value.
func NewBool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// NewInt returns an owned integer value.
func NewInt(v int64) Value { return Value{Kind: KindInt, Int: v} }

// NewUint returns an owned unsigned value.
func NewUint(v uint64) Value { return Value{Kind: KindUint, Uint: v} }

// NewFloat returns an owned float value.
func NewFloat(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// NewString returns an owned string value.
func NewString(v string) Value { return Value{Kind: KindString, Str: v} }

// NewBitString returns an owned bit-string value.
func NewBitString(bits uint32) Value { return Value{Kind: KindBitString, Bits: bits} }

// NewTimestamp returns an owned timestamp value.
func NewTimestamp(t time.Time) Value { return Value{Kind: KindTimestamp, Time: t} }

// NewArray returns an owned array value.
func NewArray(elems ...Value) Value { return Value{Kind: KindArray, Elements: elems} }

// NewStruct returns an owned structure value.
func NewStruct(members ...Value) Value { return Value{Kind: KindStruct, Elements: members} }

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindUint:
		return fmt.Sprintf("%d", v.Uint)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindString:
		return v.Str
	case KindBitString:
		return fmt.Sprintf("0b%b", v.Bits)
	case KindTimestamp:
		return v.Time.UTC().Format(time.RFC3339Nano)
	case KindArray, KindStruct:
		return fmt.Sprintf("%s[%d]", v.Kind, len(v.Elements))
	default:
		return "<unknown>"
	}
}

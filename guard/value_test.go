package guard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/guard"
	"github.com/c360/iecbridge/native"
	"github.com/c360/iecbridge/testutil"
)

func TestValueGuardDecodesScalars(t *testing.T) {
	eng := testutil.NewFakeEngine()
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name  string
		value native.Value
		check func(t *testing.T, vg *guard.ValueGuard)
	}{
		{"bool", native.NewBool(true), func(t *testing.T, vg *guard.ValueGuard) {
			v, err := vg.Bool()
			require.NoError(t, err)
			assert.True(t, v)
		}},
		{"int", native.NewInt(-42), func(t *testing.T, vg *guard.ValueGuard) {
			v, err := vg.Int()
			require.NoError(t, err)
			assert.Equal(t, int64(-42), v)
		}},
		{"float", native.NewFloat(230.5), func(t *testing.T, vg *guard.ValueGuard) {
			v, err := vg.Float()
			require.NoError(t, err)
			assert.Equal(t, 230.5, v)
		}},
		{"string", native.NewString("vendor"), func(t *testing.T, vg *guard.ValueGuard) {
			v, err := vg.String()
			require.NoError(t, err)
			assert.Equal(t, "vendor", v)
		}},
		{"bitstring", native.NewBitString(0b1010), func(t *testing.T, vg *guard.ValueGuard) {
			v, err := vg.BitString()
			require.NoError(t, err)
			assert.Equal(t, uint32(0b1010), v)
		}},
		{"timestamp", native.NewTimestamp(ts), func(t *testing.T, vg *guard.ValueGuard) {
			v, err := vg.Timestamp()
			require.NoError(t, err)
			assert.Equal(t, ts, v)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := eng.MakeValue(tc.value)
			vg := guard.AcquireValue(eng, h)

			kind, err := vg.Kind()
			require.NoError(t, err)
			assert.Equal(t, tc.value.Kind, kind)
			tc.check(t, vg)

			vg.Release()
			assert.Equal(t, 1, eng.DestroyCount(h))
		})
	}
	assert.Empty(t, eng.Violations())
}

// Release deletes an owned value exactly once no matter how often it is
// called, and empties the guard.
func TestValueGuardReleaseIdempotent(t *testing.T) {
	eng := testutil.NewFakeEngine()
	h := eng.MakeValue(native.NewInt(7))

	vg := guard.AcquireValue(eng, h)
	require.False(t, vg.IsEmpty())

	vg.Release()
	vg.Release()
	vg.Release()

	assert.True(t, vg.IsEmpty())
	assert.Equal(t, 1, eng.DestroyCount(h))
	assert.Empty(t, eng.Violations())
}

func TestValueGuardAccessorsAfterReleaseFail(t *testing.T) {
	eng := testutil.NewFakeEngine()
	h := eng.MakeValue(native.NewInt(1))

	vg := guard.AcquireValue(eng, h)
	vg.Release()

	_, err := vg.Int()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNullHandle))
	assert.True(t, errors.IsInvalid(err))
}

func TestValueGuardNullHandleFails(t *testing.T) {
	eng := testutil.NewFakeEngine()
	vg := guard.AcquireValue(eng, native.NullHandle)

	_, err := vg.Kind()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNullHandle))

	vg.Release()
	assert.Empty(t, eng.Violations())
}

func TestValueGuardOwnedCopiesNestedStructure(t *testing.T) {
	eng := testutil.NewFakeEngine()
	h := eng.MakeValue(native.NewStruct(
		native.NewBool(true),
		native.NewArray(native.NewInt(1), native.NewInt(2)),
		native.NewString("q"),
	))

	vg := guard.AcquireValue(eng, h)
	owned, err := vg.Owned()
	require.NoError(t, err)
	vg.Release()

	require.Equal(t, native.KindStruct, owned.Kind)
	require.Len(t, owned.Elements, 3)
	assert.True(t, owned.Elements[0].Bool)
	require.Equal(t, native.KindArray, owned.Elements[1].Kind)
	assert.Equal(t, int64(2), owned.Elements[1].Elements[1].Int)
	assert.Equal(t, "q", owned.Elements[2].Str)

	// Copy survives the handle's destruction.
	assert.Equal(t, 1, eng.DestroyCount(h))
	assert.Empty(t, eng.Violations())
}

func TestBorrowValueReleaseNeverDeletes(t *testing.T) {
	eng := testutil.NewFakeEngine()
	h := eng.MakeBorrowedValues(native.NewBool(true), native.NewInt(42))

	vg := guard.BorrowValue(eng, h)
	owned, err := vg.Owned()
	require.NoError(t, err)
	vg.Release()

	require.Equal(t, native.KindArray, owned.Kind)
	assert.Equal(t, 0, eng.DestroyCount(h))
	assert.Empty(t, eng.Violations())
}

func TestCopyValuesNullHandleYieldsEmptySlice(t *testing.T) {
	eng := testutil.NewFakeEngine()
	got := guard.CopyValues(eng, native.NullHandle)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

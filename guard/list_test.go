package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/iecbridge/guard"
	"github.com/c360/iecbridge/native"
	"github.com/c360/iecbridge/testutil"
)

func TestListGuardStringsCopiesAllElements(t *testing.T) {
	eng := testutil.NewFakeEngine()
	list := eng.MakeList(testutil.StringList("ied1LD0", "ied1LD1", "ied1LD2"))

	lg := guard.AcquireList(eng, list)
	got := lg.Strings()
	lg.Release()

	assert.Equal(t, []string{"ied1LD0", "ied1LD1", "ied1LD2"}, got)
	assert.Equal(t, 1, eng.DestroyCount(list))
	assert.Empty(t, eng.Violations())
}

// A list containing null entries is traversed to the end with the null
// entries skipped, then destroyed exactly once.
func TestListGuardSkipsNullEntries(t *testing.T) {
	eng := testutil.NewFakeEngine()
	list := eng.MakeList([]testutil.ListEntry{
		{Value: "a"},
		{Null: true},
		{Value: "c"},
		{Null: true},
		{Value: "e"},
	})

	lg := guard.AcquireList(eng, list)
	got := lg.Strings()
	lg.Release()

	assert.Equal(t, []string{"a", "c", "e"}, got)
	assert.Equal(t, 1, eng.DestroyCount(list))
	assert.Empty(t, eng.Violations())
}

func TestListGuardNullListYieldsNothing(t *testing.T) {
	eng := testutil.NewFakeEngine()

	lg := guard.AcquireList(eng, native.NullHandle)
	assert.True(t, lg.IsEmpty())

	got := lg.Strings()
	assert.NotNil(t, got)
	assert.Empty(t, got)

	lg.Release()
	assert.Empty(t, eng.Violations(), "releasing a null list must not reach the engine")
}

func TestListGuardAbandonedIterationStillDestroysOnce(t *testing.T) {
	eng := testutil.NewFakeEngine()
	list := eng.MakeList(testutil.StringList("a", "b", "c", "d"))

	lg := guard.AcquireList(eng, list)
	var seen []string
	lg.ForEach(func(v string) bool {
		seen = append(seen, v)
		return len(seen) < 2
	})
	lg.Release()
	lg.Release()

	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, 1, eng.DestroyCount(list))
	assert.Empty(t, eng.Violations())
}

func TestListGuardPanickingIterationStillDestroysOnce(t *testing.T) {
	eng := testutil.NewFakeEngine()
	list := eng.MakeList(testutil.StringList("a", "b"))

	lg := guard.AcquireList(eng, list)
	require.Panics(t, func() {
		defer lg.Release()
		lg.ForEach(func(v string) bool {
			panic("handler failure mid-iteration")
		})
	})

	assert.Equal(t, 1, eng.DestroyCount(list))
	assert.Empty(t, eng.Violations())
}

func TestListGuardEmptyList(t *testing.T) {
	eng := testutil.NewFakeEngine()
	list := eng.MakeList(nil)

	lg := guard.AcquireList(eng, list)
	assert.Empty(t, lg.Strings())
	lg.Release()

	assert.Equal(t, 1, eng.DestroyCount(list))
	assert.Empty(t, eng.Violations())
}

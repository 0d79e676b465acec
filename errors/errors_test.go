package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapFormat(t *testing.T) {
	err := Wrap(ErrNotConnected, "Client", "ReadValue", "read request")
	require.Error(t, err)
	assert.Equal(t, "Client.ReadValue: read request failed: not connected", err.Error())
	assert.True(t, stderrors.Is(err, ErrNotConnected))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "c", "m", "a"))
	assert.NoError(t, WrapTransient(nil, "c", "m", "a"))
	assert.NoError(t, WrapInvalid(nil, "c", "m", "a"))
	assert.NoError(t, WrapFatal(nil, "c", "m", "a"))
}

func TestClassifiedWrappers(t *testing.T) {
	tests := []struct {
		name  string
		wrap  func(error, string, string, string) error
		class ErrorClass
	}{
		{"transient", WrapTransient, ErrorTransient},
		{"invalid", WrapInvalid, ErrorInvalid},
		{"fatal", WrapFatal, ErrorFatal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.wrap(ErrConnectionLost, "Bridge", "Dispatch", "routing")
			var ce *ClassifiedError
			require.True(t, stderrors.As(err, &ce))
			assert.Equal(t, tc.class, ce.Class)
			assert.Equal(t, "Bridge", ce.Component)
			assert.Equal(t, "Dispatch", ce.Operation)
			assert.True(t, stderrors.Is(err, ErrConnectionLost))
		})
	}
}

func TestClassificationOfSentinels(t *testing.T) {
	assert.True(t, IsTransient(ErrConnectionFailed))
	assert.True(t, IsTransient(ErrConnectionLost))
	assert.True(t, IsTransient(ErrServiceTimeout))

	assert.True(t, IsInvalid(ErrNullHandle))
	assert.True(t, IsInvalid(ErrEmptyArgument))
	assert.True(t, IsInvalid(ErrDuplicateSubscriber))
	assert.True(t, IsInvalid(ErrNotConnected))
	assert.True(t, IsInvalid(ErrAlreadyConnected))
	assert.True(t, IsInvalid(ErrObject))

	assert.True(t, IsFatal(ErrAllocationFailed))

	assert.False(t, IsTransient(nil))
	assert.False(t, IsInvalid(nil))
	assert.False(t, IsFatal(nil))
}

func TestClassifiedOverridesSentinelClass(t *testing.T) {
	// An explicitly classified error wins over the sentinel's default class.
	err := WrapFatal(ErrNotConnected, "c", "m", "a")
	assert.True(t, IsFatal(err))
	assert.False(t, IsInvalid(err))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ErrorFatal, Classify(ErrAllocationFailed))
	assert.Equal(t, ErrorInvalid, Classify(ErrEmptyArgument))
	assert.Equal(t, ErrorTransient, Classify(ErrConnectionLost))
	assert.Equal(t, ErrorTransient, Classify(stderrors.New("unknown")))
}

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(99).String())
}

func TestDescribe(t *testing.T) {
	err := Describe(ErrObject, "object does not exist")
	assert.Equal(t, "object error: object does not exist", err.Error())
	assert.True(t, stderrors.Is(err, ErrObject))

	assert.Equal(t, ErrObject, Describe(ErrObject, ""))
	assert.NoError(t, Describe(nil, "ignored"))
}

package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/iecbridge/errors"
)

func TestErrorCodeOK(t *testing.T) {
	assert.True(t, CodeOK.OK())
	assert.False(t, CodeTimeout.OK())
	assert.NoError(t, CodeOK.Err())
}

func TestErrorCodeTranslation(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		sentinel error
	}{
		{CodeNotConnected, errors.ErrNotConnected},
		{CodeAlreadyConnected, errors.ErrAlreadyConnected},
		{CodeConnectionLost, errors.ErrConnectionLost},
		{CodeServiceNotSupported, errors.ErrServiceNotSupported},
		{CodeConnectionRejected, errors.ErrConnectionFailed},
		{CodeInvalidArgument, errors.ErrEmptyArgument},
		{CodeObjectRefInvalid, errors.ErrObject},
		{CodeObjectNotFound, errors.ErrObject},
		{CodeObjectExists, errors.ErrObject},
		{CodeTypeInconsistent, errors.ErrObject},
		{CodeUnexpectedValue, errors.ErrParsing},
		{CodeMalformedMessage, errors.ErrParsing},
		{CodeTimeout, errors.ErrServiceTimeout},
		{CodeServiceTimeout, errors.ErrServiceTimeout},
		{CodeTemporarilyUnavail, errors.ErrServiceTimeout},
		{CodeOutstandingCalls, errors.ErrServiceTimeout},
		{CodeAccessDenied, errors.ErrAccessDenied},
		{CodeHardwareFault, errors.ErrConnectionFailed},
		{CodeUnknown, errors.ErrConnectionFailed},
	}

	for _, tc := range tests {
		t.Run(tc.code.String(), func(t *testing.T) {
			err := tc.code.Err()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.sentinel), "code %d should map to %v, got %v", tc.code, tc.sentinel, err)
		})
	}
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "ok", CodeOK.String())
	assert.Equal(t, "access denied", CodeAccessDenied.String())
	assert.Equal(t, "error code 77", ErrorCode(77).String())
}

func TestHandleIsNull(t *testing.T) {
	assert.True(t, NullHandle.IsNull())
	assert.False(t, Handle(1).IsNull())
}

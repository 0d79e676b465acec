package native

import (
	"fmt"

	"github.com/c360/iecbridge/errors"
)

// ErrorCode is the numeric error discriminant returned by synchronous
// engine operations. Codes mirror the engine's client error enumeration.
type ErrorCode int

// Engine error codes.
const (
	CodeOK                  ErrorCode = 0
	CodeNotConnected        ErrorCode = 1
	CodeAlreadyConnected    ErrorCode = 2
	CodeConnectionLost      ErrorCode = 3
	CodeServiceNotSupported ErrorCode = 4
	CodeConnectionRejected  ErrorCode = 5
	CodeOutstandingCalls    ErrorCode = 6
	CodeInvalidArgument     ErrorCode = 10
	CodeObjectRefInvalid    ErrorCode = 12
	CodeUnexpectedValue     ErrorCode = 13
	CodeTimeout             ErrorCode = 20
	CodeAccessDenied        ErrorCode = 21
	CodeObjectNotFound      ErrorCode = 22
	CodeObjectExists        ErrorCode = 23
	CodeTypeInconsistent    ErrorCode = 25
	CodeTemporarilyUnavail  ErrorCode = 26
	CodeHardwareFault       ErrorCode = 29
	CodeMalformedMessage    ErrorCode = 34
	CodeServiceTimeout      ErrorCode = 98
	CodeUnknown             ErrorCode = 99
)

// OK reports whether the code signals success.
func (c ErrorCode) OK() bool {
	return c == CodeOK
}

// String returns a short description of the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNotConnected:
		return "not connected"
	case CodeAlreadyConnected:
		return "already connected"
	case CodeConnectionLost:
		return "connection lost"
	case CodeServiceNotSupported:
		return "service not supported"
	case CodeConnectionRejected:
		return "connection rejected"
	case CodeOutstandingCalls:
		return "outstanding call limit reached"
	case CodeInvalidArgument:
		return "invalid argument"
	case CodeObjectRefInvalid:
		return "object reference invalid"
	case CodeUnexpectedValue:
		return "unexpected value received"
	case CodeTimeout:
		return "timeout"
	case CodeAccessDenied:
		return "access denied"
	case CodeObjectNotFound:
		return "object does not exist"
	case CodeObjectExists:
		return "object exists"
	case CodeTypeInconsistent:
		return "type inconsistent"
	case CodeTemporarilyUnavail:
		return "temporarily unavailable"
	case CodeHardwareFault:
		return "hardware fault"
	case CodeMalformedMessage:
		return "malformed message"
	case CodeServiceTimeout:
		return "service timeout"
	default:
		return fmt.Sprintf("error code %d", int(c))
	}
}

// Err translates the code into the module's typed error taxonomy. This is
// the single point where raw engine codes become typed errors; callers
// above the guard/facade boundary only ever see the result of this
// translation. CodeOK translates to nil.
func (c ErrorCode) Err() error {
	switch c {
	case CodeOK:
		return nil
	case CodeNotConnected:
		return errors.ErrNotConnected
	case CodeAlreadyConnected:
		return errors.ErrAlreadyConnected
	case CodeConnectionLost:
		return errors.ErrConnectionLost
	case CodeServiceNotSupported:
		return errors.ErrServiceNotSupported
	case CodeConnectionRejected:
		return errors.Describe(errors.ErrConnectionFailed, "connection rejected")
	case CodeInvalidArgument:
		return errors.Describe(errors.ErrEmptyArgument, c.String())
	case CodeObjectRefInvalid, CodeObjectNotFound, CodeObjectExists, CodeTypeInconsistent:
		return errors.Describe(errors.ErrObject, c.String())
	case CodeUnexpectedValue, CodeMalformedMessage:
		return errors.Describe(errors.ErrParsing, c.String())
	case CodeTimeout, CodeServiceTimeout:
		return errors.ErrServiceTimeout
	case CodeAccessDenied:
		return errors.ErrAccessDenied
	case CodeTemporarilyUnavail, CodeOutstandingCalls:
		return errors.Describe(errors.ErrServiceTimeout, c.String())
	default:
		return errors.Describe(errors.ErrConnectionFailed, c.String())
	}
}

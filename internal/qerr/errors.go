package qerr

import "fmt"

// QuicError is the error type returned by every framer parse operation and
// by build-side validation. It carries the closed ErrorCode plus a
// human-readable detail string. ProcessPacket returns it to its caller;
// FrameVisitor has no error callback.
type QuicError struct {
	ErrorCode    ErrorCode
	ErrorMessage string
}

func (e *QuicError) Error() string {
	if e.ErrorMessage == "" {
		return e.ErrorCode.String()
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode.String(), e.ErrorMessage)
}

// Error constructs a QuicError for the given code and detail message.
func Error(code ErrorCode, detail string) *QuicError {
	return &QuicError{ErrorCode: code, ErrorMessage: detail}
}

// ToQuicError coerces any error into a *QuicError, defaulting to
// InvalidFrameData when err is not already one.
func ToQuicError(err error) *QuicError {
	if err == nil {
		return nil
	}
	if qe, ok := err.(*QuicError); ok {
		return qe
	}
	return Error(InvalidFrameData, err.Error())
}

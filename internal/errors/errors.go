// Package errors holds the coded errors shared by the geometry, model,
// rendering and OCR packages.
//
// A diagram is drawn element by element. An element whose geometry fails
// with ErrCodeInvalidDimension or ErrCodeMalformedRegion is reported and
// left out (see Recoverable); any other code ends the render. The CLI and
// the tool server print the Code so scripts can tell the cases apart.
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an Error. Its string form is what the tool server sends
// back as the error code.
type Code string

const (
	// A canvas or raster size that is zero, negative, not finite or too big.
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	// A region coordinate or offset that is not a usable number, or one that
	// rescales past geometry.MaxCoordinate.
	ErrCodeMalformedRegion  Code = "MALFORMED_REGION"

	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Tesseract, encoder and filesystem failures not caused by the input.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a failure with a Code. Cause, when set, is the I/O or decoder
// error underneath and is reachable through errors.Unwrap.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error formats as "CODE: message" with ": cause" appended when there is one.
func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with no cause.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error recording cause under code.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" when there is none.
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without its code and
// cause, and err.Error() for anything else.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// Recoverable reports whether a render pass should skip the element that
// failed with code rather than stop.
func (c Code) Recoverable() bool {
	return c == ErrCodeInvalidDimension || c == ErrCodeMalformedRegion
}

// Recoverable reports whether err names a single bad element.
func Recoverable(err error) bool {
	return GetCode(err).Recoverable()
}

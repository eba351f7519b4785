package quip

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-quip/internal"
)

// ErrAssertionFailed is the sentinel wrapped by every assertion failure.
// Use errors.Is or IsAssertionError to detect it.
var ErrAssertionFailed = internal.ErrAssertionFailed

// Position represents a location in the source template
type Position = internal.Position

// NewParseError creates a parse error with position context
func NewParseError(msg string, pos Position, expected string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeParse, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeParse, msg)
	}
	err = err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
	if expected != "" {
		err = err.WithMetadata(MetaKeyExpected, expected)
	}
	return err
}

// parseErrorFrom converts an error returned by the parser
func parseErrorFrom(err error) error {
	var perr *internal.ParseError
	if errors.As(err, &perr) {
		return NewParseError(ErrMsgParseFailed, perr.Pos, perr.Expected, perr)
	}
	return NewParseError(ErrMsgParseFailed, Position{}, "", err)
}

// NewExecutionError creates an error for a failed render
func NewExecutionError(msg string, invocationID string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeExec, msg)
	} else {
		err = cuserr.NewInternalError(ErrCodeExec, nil)
	}
	return err.WithMetadata(MetaKeyInvocationID, invocationID)
}

// NewAssertionError creates the error returned when assert() fails a render
func NewAssertionError(invocationID string) error {
	return cuserr.WrapStdError(ErrAssertionFailed, ErrCodeAssert, ErrMsgAssertionFailed).
		WithMetadata(MetaKeyInvocationID, invocationID)
}

// IsAssertionError reports whether err is, or wraps, an assertion failure
func IsAssertionError(err error) bool {
	return errors.Is(err, ErrAssertionFailed)
}

// NewFuncRegistrationError creates a function registry error
func NewFuncRegistrationError(funcName string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilFunc)
	}
	return cuserr.WrapStdError(cause, ErrCodeRegistry, ErrMsgFuncRegistration).
		WithMetadata(MetaKeyFuncName, funcName)
}

// NewPatternError creates an error for a command pattern that does not compile
func NewPatternError(pattern string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeValidation, ErrMsgInvalidPattern).
		WithMetadata(MetaKeyPattern, pattern)
}

// NewDirectoryError creates a user directory error
func NewDirectoryError(msg string, name string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeDirectory, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeDirectory, msg)
	}
	if name != "" {
		err = err.WithMetadata(MetaKeyName, name)
	}
	return err
}

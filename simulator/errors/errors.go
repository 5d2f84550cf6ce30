// Package errors classifies everything that can go wrong while simulating a
// private transaction. Coded errors are properties of the transaction (a
// missing key, an overflowing call stack, an unsatisfied constraint);
// failures are bugs in the host. Neither is ever retried by the engine.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// CodedError is an error carrying a code from codes.go.
type CodedError interface {
	Code() ErrorCode

	Unwrap() error
	error
}

// Is is a convenience alias for the standard library's errors.Is.
func Is(err, target error) bool {
	return stdErrors.Is(err, target)
}

// As is a convenience alias for the standard library's errors.As.
func As(err error, target interface{}) bool {
	return stdErrors.As(err, target)
}

type codedError struct {
	code ErrorCode

	err error
}

func newError(code ErrorCode, rootCause error) codedError {
	return codedError{
		code: code,
		err:  rootCause,
	}
}

func WrapCodedError(
	code ErrorCode,
	err error,
	prefixMsgFormat string,
	formatArguments ...interface{},
) codedError {
	if prefixMsgFormat != "" {
		msg := fmt.Sprintf(prefixMsgFormat, formatArguments...)
		err = fmt.Errorf("%s: %w", msg, err)
	}
	return newError(code, err)
}

func NewCodedError(
	code ErrorCode,
	format string,
	formatArguments ...interface{},
) codedError {
	return newError(code, fmt.Errorf(format, formatArguments...))
}

func (err codedError) Unwrap() error {
	return err.err
}

func (err codedError) Error() string {
	return fmt.Sprintf("%v %v", err.code, err.err)
}

func (err codedError) Code() ErrorCode {
	return err.code
}

// Find returns the shallowest CodedError in err's chain with the given code,
// or nil.
func Find(originalErr error, code ErrorCode) CodedError {
	if originalErr == nil {
		return nil
	}

	var coded CodedError
	if !As(originalErr, &coded) {
		return nil
	}
	if coded.Code() == code {
		return coded
	}
	return Find(coded.Unwrap(), code)
}

// HasErrorCode reports whether any error in err's chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	return Find(err, code) != nil
}

// findRootCodedError returns the deepest coded error of the chain, and the
// shallowest failure if the chain contains one.
func findRootCodedError(originalErr error) (
	root CodedError,
	failure CodedError,
) {
	if originalErr == nil {
		return nil, nil
	}

	var coded CodedError
	if !As(originalErr, &coded) {
		return nil, nil
	}
	if coded.Code().IsFailureCode() {
		return nil, coded
	}

	r, f := findRootCodedError(coded.Unwrap())
	if f != nil {
		return nil, f
	}
	if r != nil {
		return r, nil
	}
	return coded, nil
}

// IsFailure reports whether err is a host failure. Errors that carry no code
// at all are failures too: every expected condition has a code.
func IsFailure(err error) bool {
	if err == nil {
		return false
	}
	root, failure := findRootCodedError(err)
	return failure != nil || root == nil
}

// SplitErrorTypes classifies err. Exactly one of the results is non-nil for a
// non-nil err. Both keep the full message of err and carry the code of the
// root cause (or of the shallowest failure).
func SplitErrorTypes(inp error) (err CodedError, failure CodedError) {
	if inp == nil {
		return nil, nil
	}

	root, fail := findRootCodedError(inp)
	if fail != nil {
		return nil, WrapCodedError(fail.Code(), inp, "failure caused by")
	}
	if root == nil {
		return nil, NewUnknownFailure(inp)
	}
	return WrapCodedError(root.Code(), inp, "error caused by"), nil
}

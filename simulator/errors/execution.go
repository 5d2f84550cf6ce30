package errors

import (
	"fmt"

	"github.com/zkrollup/pxe/model/rollup"
)

// NewPublicCallStackOverflowError indicates a call enqueued more public calls
// than its public call stack holds.
func NewPublicCallStackOverflowError(enqueued, capacity int) CodedError {
	return NewCodedError(
		ErrCodePublicCallStackOverflowError,
		"%d public calls enqueued, public call stack holds %d",
		enqueued,
		capacity)
}

func IsPublicCallStackOverflowError(err error) bool {
	return HasErrorCode(err, ErrCodePublicCallStackOverflowError)
}

// NewCallDepthExceededError indicates a nested private call would run deeper
// than the maximum call depth.
func NewCallDepthExceededError(depth, maxDepth int) CodedError {
	return NewCodedError(
		ErrCodeCallDepthExceededError,
		"nested call at depth %d exceeds maximum call depth %d",
		depth,
		maxDepth)
}

func IsCallDepthExceededError(err error) bool {
	return HasErrorCode(err, ErrCodeCallDepthExceededError)
}

func NewUnsatisfiedConstraintErrorf(msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeUnsatisfiedConstraintError,
		"constraint not satisfied: "+msg,
		args...)
}

func IsUnsatisfiedConstraintError(err error) bool {
	return HasErrorCode(err, ErrCodeUnsatisfiedConstraintError)
}

func NewUnsolvableOpcodeErrorf(msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeUnsolvableOpcodeError,
		"opcode cannot be solved: "+msg,
		args...)
}

func NewUnknownOracleError(name string) CodedError {
	return NewCodedError(
		ErrCodeUnknownOracleError,
		"unknown oracle %q",
		name)
}

func IsUnknownOracleError(err error) bool {
	return HasErrorCode(err, ErrCodeUnknownOracleError)
}

// NewOracleNotAllowedError indicates a call used an oracle its execution
// mode does not offer, such as a note insertion from a view function.
func NewOracleNotAllowedError(name string, mode string) CodedError {
	return NewCodedError(
		ErrCodeOracleNotAllowedError,
		"oracle %s is not available to %s functions",
		name,
		mode)
}

func IsOracleNotAllowedError(err error) bool {
	return HasErrorCode(err, ErrCodeOracleNotAllowedError)
}

func NewMalformedOracleInputsErrorf(oracle string, msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeMalformedOracleInputsError,
		"malformed inputs to oracle %s: "+msg,
		append([]interface{}{oracle}, args...)...)
}

func IsMalformedOracleInputsError(err error) bool {
	return HasErrorCode(err, ErrCodeMalformedOracleInputsError)
}

func NewMalformedOracleOutputsErrorf(oracle string, msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeMalformedOracleOutputsError,
		"malformed outputs of oracle %s: "+msg,
		append([]interface{}{oracle}, args...)...)
}

func NewMalformedBytecodeError(err error) CodedError {
	return WrapCodedError(
		ErrCodeMalformedBytecodeError,
		err,
		"malformed circuit bytecode")
}

func NewInvalidPublicOutputsError(err error) CodedError {
	return WrapCodedError(
		ErrCodeInvalidPublicOutputsError,
		err,
		"invalid public outputs")
}

// NewInvalidArgumentsSizeError indicates the argument vector does not match
// the function's parameters.
func NewInvalidArgumentsSizeError(expected, actual int) CodedError {
	return NewCodedError(
		ErrCodeInvalidArgumentsSizeError,
		"invalid arguments size: expected %d, got %d",
		expected,
		actual)
}

func IsInvalidArgumentsSizeError(err error) bool {
	return HasErrorCode(err, ErrCodeInvalidArgumentsSizeError)
}

func NewNotPrivateFunctionError(name string) CodedError {
	return NewCodedError(
		ErrCodeNotPrivateFunctionError,
		"function %s is not private",
		name)
}

func NewNotUnconstrainedFunctionError(name string) CodedError {
	return NewCodedError(
		ErrCodeNotUnconstrainedFunctionError,
		"function %s is not unconstrained",
		name)
}

func NewInvalidPackedArgumentsErrorf(msg string, args ...interface{}) CodedError {
	return NewCodedError(
		ErrCodeInvalidPackedArgumentsError,
		"invalid packed arguments: "+msg,
		args...)
}

// ExecutionFrameError attaches the identity of the failing call to an error
// escaping it. Frames nest, so a failure deep in the call tree reads from the
// root call down.
type ExecutionFrameError struct {
	Contract rollup.Address
	Selector rollup.FunctionSelector
	Depth    int

	err error
}

func NewExecutionFrameError(
	contract rollup.Address,
	selector rollup.FunctionSelector,
	depth int,
	err error,
) *ExecutionFrameError {
	return &ExecutionFrameError{
		Contract: contract,
		Selector: selector,
		Depth:    depth,
		err:      err,
	}
}

func (e *ExecutionFrameError) Error() string {
	return fmt.Sprintf("call to %s:%s at depth %d: %v", e.Contract, e.Selector, e.Depth, e.err)
}

func (e *ExecutionFrameError) Unwrap() error {
	return e.err
}

// SimulationFailedError is what a failed simulation returns to the caller.
type SimulationFailedError struct {
	err error
}

func NewSimulationFailedError(err error) *SimulationFailedError {
	return &SimulationFailedError{err: err}
}

func (e *SimulationFailedError) Error() string {
	return fmt.Sprintf("transaction simulation failed: %v", e.err)
}

func (e *SimulationFailedError) Unwrap() error {
	return e.err
}

func IsSimulationFailedError(err error) bool {
	var t *SimulationFailedError
	return As(err, &t)
}

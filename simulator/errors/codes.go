package errors

import "fmt"

type ErrorCode uint16

func (ec ErrorCode) String() string {
	if ec.IsFailureCode() {
		return fmt.Sprintf("[Failure Code: %d]", uint16(ec))
	}
	return fmt.Sprintf("[Error Code: %d]", uint16(ec))
}

// IsFailureCode reports whether the code belongs to the failure range, i.e.
// a host side bug rather than a property of the transaction.
func (ec ErrorCode) IsFailureCode() bool {
	return ec >= FailureCodeUnknownFailure
}

const (
	// lookup errors 1000 - 1049
	ErrCodeSecretKeyNotFoundError        ErrorCode = 1000
	ErrCodePublicKeyNotFoundError        ErrorCode = 1001
	ErrCodeFunctionArtifactNotFoundError ErrorCode = 1002
	ErrCodePortalAddressNotFoundError    ErrorCode = 1003
	ErrCodeNoteQueryError                ErrorCode = 1004
	ErrCodeCommitmentNotFoundError       ErrorCode = 1005
	ErrCodeL1ToL2MessageNotFoundError    ErrorCode = 1006
	ErrCodePackedArgumentsNotFoundError  ErrorCode = 1007

	// capacity errors 1050 - 1099
	ErrCodePublicCallStackOverflowError ErrorCode = 1050
	ErrCodeCallDepthExceededError       ErrorCode = 1051

	// solver errors 1100 - 1149
	ErrCodeUnsatisfiedConstraintError  ErrorCode = 1100
	ErrCodeUnsolvableOpcodeError       ErrorCode = 1101
	ErrCodeUnknownOracleError          ErrorCode = 1102
	ErrCodeMalformedOracleInputsError  ErrorCode = 1103
	ErrCodeMalformedOracleOutputsError ErrorCode = 1104
	ErrCodeMalformedBytecodeError      ErrorCode = 1105
	ErrCodeInvalidPublicOutputsError   ErrorCode = 1106
	ErrCodeOracleNotAllowedError       ErrorCode = 1107

	// request errors 1150 - 1199
	ErrCodeInvalidArgumentsSizeError     ErrorCode = 1150
	ErrCodeNotPrivateFunctionError       ErrorCode = 1151
	ErrCodeInvalidPackedArgumentsError   ErrorCode = 1152
	ErrCodeNotUnconstrainedFunctionError ErrorCode = 1153
)

const (
	FailureCodeUnknownFailure    ErrorCode = 2000
	FailureCodeEncodingFailure   ErrorCode = 2001
	FailureCodeRandomnessFailure ErrorCode = 2002
)

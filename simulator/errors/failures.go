package errors

// NewUnknownFailure wraps an error nothing else classified.
func NewUnknownFailure(err error) CodedError {
	return WrapCodedError(
		FailureCodeUnknownFailure,
		err,
		"unknown failure")
}

// NewEncodingFailuref captures a failure to encode a value the host built
// itself, such as a note spending info or a call stack item.
func NewEncodingFailuref(
	err error,
	msg string,
	args ...interface{},
) CodedError {
	return WrapCodedError(
		FailureCodeEncodingFailure,
		err,
		"encoding failed: "+msg,
		args...)
}

// NewRandomnessFailure captures a failure of the configured randomness source.
func NewRandomnessFailure(err error) CodedError {
	return WrapCodedError(
		FailureCodeRandomnessFailure,
		err,
		"randomness source failed")
}

func IsRandomnessFailure(err error) bool {
	return HasErrorCode(err, FailureCodeRandomnessFailure)
}

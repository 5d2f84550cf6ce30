package errors

import (
	"github.com/hashicorp/go-multierror"
)

// ErrorsCollector accumulates the errors of the steps of a call. Once a
// failure has been collected the collection as a whole is a failure.
type ErrorsCollector struct {
	errors *multierror.Error

	failureCode  ErrorCode
	failureIsSet bool
}

func (collector *ErrorsCollector) CollectedFailure() bool {
	return collector.failureIsSet
}

func (collector *ErrorsCollector) CollectedError() bool {
	return collector.errors != nil
}

// ErrorOrNil returns nil if nothing was collected. Otherwise it returns all
// collected errors; if any of them was a failure the result carries the code
// of the first failure.
func (collector *ErrorsCollector) ErrorOrNil() error {
	err := collector.errors.ErrorOrNil()
	if err == nil {
		return nil
	}
	if collector.failureIsSet {
		return newError(collector.failureCode, err)
	}
	if collector.errors.Len() == 1 {
		return collector.errors.Errors[0]
	}
	return err
}

// Collect records err. Collecting nil is a no-op.
func (collector *ErrorsCollector) Collect(err error) *ErrorsCollector {
	if err == nil {
		return collector
	}

	if !collector.failureIsSet && IsFailure(err) {
		collector.failureIsSet = true
		collector.failureCode = FailureCodeUnknownFailure
		if _, failure := findRootCodedError(err); failure != nil {
			collector.failureCode = failure.Code()
		}
	}

	collector.errors = multierror.Append(collector.errors, err)
	return collector
}

func NewErrorsCollector() *ErrorsCollector {
	return &ErrorsCollector{}
}

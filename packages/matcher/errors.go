package matcher

import (
	"errors"
)

// AssertionError reports that an actual value does not satisfy the
// expected pattern. Path is empty for failures outside any field.
type AssertionError struct {
	Message  string
	Path     string
	Actual   any
	Expected any

	cause error
}

func (e *AssertionError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Message + " at path " + e.Path
}

func (e *AssertionError) Unwrap() error {
	return e.cause
}

func mismatch(msg string, actual, expected any) *AssertionError {
	return &AssertionError{Message: msg, Actual: actual, Expected: expected}
}

// atPath annotates err with the path of the failing leaf. Errors that
// already carry a path are returned unchanged.
func atPath(err error, path string) error {
	var ae *AssertionError
	if errors.As(err, &ae) {
		if ae.Path != "" {
			return err
		}
		annotated := *ae
		annotated.Path = path
		return &annotated
	}
	return &AssertionError{Message: err.Error(), Path: path, cause: err}
}

// IsMismatch reports whether err is an assertion mismatch.
func IsMismatch(err error) bool {
	var ae *AssertionError
	return errors.As(err, &ae)
}

// Package callback adapts error results to completion callbacks used by
// asynchronous test helpers.
package callback

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
)

// ProcessError hands the outcome of an expected failure to done. When
// expected is nil the actual error is passed through unchanged. Otherwise
// done receives nil if actual equals expected (same type and message, or
// errors.Is) and an assertion error if not.
func ProcessError(actual, expected error, done func(error)) {
	if expected == nil {
		done(actual)
		return
	}
	if sameError(actual, expected) {
		done(nil)
		return
	}
	done(&matcher.AssertionError{
		Message:  fmt.Sprintf("expected error %s to equal %s", describe(actual), describe(expected)),
		Actual:   actual,
		Expected: expected,
	})
}

// ResolveOrReject calls reject with err when it is non-nil and resolve
// otherwise.
func ResolveOrReject(err error, resolve func(), reject func(error)) {
	if err != nil {
		reject(err)
		return
	}
	resolve()
}

func sameError(actual, expected error) bool {
	if actual == nil {
		return false
	}
	if errors.Is(actual, expected) {
		return true
	}
	return reflect.TypeOf(actual) == reflect.TypeOf(expected) && actual.Error() == expected.Error()
}

func describe(err error) string {
	if err == nil {
		return "nil"
	}
	return fmt.Sprintf("%T(%q)", err, err.Error())
}

package mockcall

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
	"github.com/stretchr/testify/mock"
)

// Expectation describes how a method is expected to have been called.
// Without any of Args, MultipleArgs or NoArgs the method is expected not
// to have been called at all.
type Expectation struct {
	Method string
	// CallCount is the expected number of calls; zero means once.
	CallCount int
	// NCall selects the call whose arguments are checked (zero based).
	NCall int
	// Args is a pattern the single argument of the call must match.
	Args any
	// MultipleArgs is the exact ordered argument list of the call.
	MultipleArgs []any
	// NoArgs expects the call to have no arguments.
	NoArgs bool
}

func (e Expectation) hasArgs() bool {
	return e.Args != nil || e.MultipleArgs != nil || e.NoArgs
}

// Verifier checks call records with a given matcher.
type Verifier struct {
	matcher *matcher.Matcher
}

// NewVerifier creates a Verifier using m for argument patterns.
func NewVerifier(m *matcher.Matcher) *Verifier {
	if m == nil {
		m = matcher.Default()
	}
	return &Verifier{matcher: m}
}

// Verify checks rec against exp with the default matcher.
func Verify(rec Recorder, exp Expectation) error {
	return NewVerifier(nil).Verify(rec, exp)
}

// Verify checks that the method of exp was invoked as described.
func (v *Verifier) Verify(rec Recorder, exp Expectation) error {
	if rec == nil {
		return errors.New("mockcall: recorder is nil")
	}
	calls := rec.CallCount(exp.Method)

	if !exp.hasArgs() {
		if calls != 0 {
			return &matcher.AssertionError{
				Message:  fmt.Sprintf("expected that %s wouldn't be called", exp.Method),
				Actual:   calls,
				Expected: 0,
			}
		}
		return nil
	}

	want := exp.CallCount
	if want == 0 {
		want = 1
	}
	if calls != want {
		times := "once"
		if want != 1 {
			times = fmt.Sprintf("%d times", want)
		}
		return &matcher.AssertionError{
			Message:  fmt.Sprintf("expected that %s called %s", exp.Method, times),
			Actual:   calls,
			Expected: want,
		}
	}

	args, ok := rec.Args(exp.Method, exp.NCall)
	if !ok {
		return fmt.Errorf("mockcall: %s has no call #%d", exp.Method, exp.NCall)
	}

	switch {
	case exp.NoArgs:
		if len(args) != 0 {
			return &matcher.AssertionError{
				Message: fmt.Sprintf("expected that %s called without args", exp.Method),
				Actual:  args,
			}
		}
	case exp.MultipleArgs != nil:
		if err := v.matcher.Equal(args, exp.MultipleArgs); err != nil {
			return &matcher.AssertionError{
				Message:  fmt.Sprintf("expected that %s called with multiple args", exp.Method),
				Actual:   args,
				Expected: exp.MultipleArgs,
			}
		}
	default:
		if len(args) != 1 {
			return &matcher.AssertionError{
				Message:  fmt.Sprintf("expected that %s called with single arg, got %d", exp.Method, len(args)),
				Actual:   args,
				Expected: exp.Args,
			}
		}
		if err := v.matcher.Predicate(exp.Args)(args[0]); err != nil {
			return fmt.Errorf("argument matcher: %w", err)
		}
	}
	return nil
}

// Matches returns a testify argument matcher accepting values that satisfy
// the expected pattern, for use in mock.On(...) and AssertCalled.
func Matches(expected any) any {
	return NewVerifier(nil).Matches(expected)
}

// Matches returns a testify argument matcher using the verifier's matcher.
func (v *Verifier) Matches(expected any) any {
	pred := v.matcher.Predicate(expected)
	return mock.MatchedBy(func(actual any) bool {
		return pred(actual) == nil
	})
}

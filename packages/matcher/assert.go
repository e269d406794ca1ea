package matcher

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tHelper interface {
	Helper()
}

// Assert checks actual against expected with the default matcher and
// reports a failure through t. It returns whether the assertion passed.
//
//	matcher.Assert(t, user, map[string]any{"_id": "_mock_", "name": regexp.MustCompile(`^John`)})
func Assert(t assert.TestingT, actual, expected any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return defaultMatcher.Assert(t, actual, expected, msgAndArgs...)
}

// AssertStrict is like Assert but requires identical leaf paths.
func AssertStrict(t assert.TestingT, actual, expected any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return defaultMatcher.AssertStrict(t, actual, expected, msgAndArgs...)
}

// Require is like Assert but stops the test on failure.
func Require(t require.TestingT, actual, expected any, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	defaultMatcher.Require(t, actual, expected, msgAndArgs...)
}

// Assert checks actual against expected and reports a failure through t.
func (m *Matcher) Assert(t assert.TestingT, actual, expected any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if err := m.Match(actual, expected); err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	return true
}

// AssertStrict checks actual against expected requiring identical leaf
// paths and reports a failure through t.
func (m *Matcher) AssertStrict(t assert.TestingT, actual, expected any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if err := m.MatchStrict(actual, expected); err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	return true
}

// Require checks actual against expected and stops the test on failure.
func (m *Matcher) Require(t require.TestingT, actual, expected any, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if m.Assert(t, actual, expected, msgAndArgs...) {
		return
	}
	t.FailNow()
}

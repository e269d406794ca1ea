package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/stretchr/testify/assert"
)

// Checker provides the primitive assertions the matcher is built on. Each
// method returns nil on success or an error describing the mismatch.
type Checker interface {
	Equal(actual, expected any) error
	Truthy(actual any) error
	Falsy(actual any) error
	Match(actual any, re *regexp.Regexp) error
	Number(actual any) error
	Date(actual any) error
}

// DefaultChecker is the Checker used unless WithChecker is given.
type DefaultChecker struct{}

var _ Checker = DefaultChecker{}

func (DefaultChecker) Equal(actual, expected any) error {
	if ValuesEqual(actual, expected) {
		return nil
	}
	return mismatch(fmt.Sprintf("expected %s to equal %s", formatValue(actual), formatValue(expected)), actual, expected)
}

func (DefaultChecker) Truthy(actual any) error {
	if isTruthy(actual) {
		return nil
	}
	return mismatch(fmt.Sprintf("expected %s to be truthy", formatValue(actual)), actual, nil)
}

func (DefaultChecker) Falsy(actual any) error {
	if !isTruthy(actual) {
		return nil
	}
	return mismatch(fmt.Sprintf("expected %s not to be truthy", formatValue(actual)), actual, nil)
}

func (DefaultChecker) Match(actual any, re *regexp.Regexp) error {
	s, ok := Canonical(actual)
	if ok && re.MatchString(s) {
		return nil
	}
	return mismatch(fmt.Sprintf("expected %s to match /%s/", formatValue(actual), re), actual, re)
}

func (DefaultChecker) Number(actual any) error {
	if isNumber(actual) {
		return nil
	}
	return mismatch(fmt.Sprintf("expected %s to be a number", formatValue(actual)), actual, nil)
}

func (DefaultChecker) Date(actual any) error {
	switch x := actual.(type) {
	case time.Time:
		return nil
	case *time.Time:
		if x != nil {
			return nil
		}
	case string:
		if _, err := time.Parse(time.RFC3339Nano, x); err == nil {
			return nil
		}
	}
	return mismatch(fmt.Sprintf("expected %s to be a date", formatValue(actual)), actual, nil)
}

// ValuesEqual reports whether two values are deeply equal after
// normalization. Numbers compare by value regardless of their Go type,
// integers exactly. Dates compare by instant, regular expressions by
// source and identifiers by canonical form.
func ValuesEqual(actual, expected any) bool {
	return valuesEqual(Normalize(actual), Normalize(expected))
}

func valuesEqual(a, e any) bool {
	if a == nil || e == nil {
		return a == nil && e == nil
	}
	if isNumber(a) {
		return numbersEqual(a, e)
	}
	switch ev := e.(type) {
	case time.Time:
		av, ok := a.(time.Time)
		return ok && av.Equal(ev)
	case *regexp.Regexp:
		av, ok := a.(*regexp.Regexp)
		return ok && av.String() == ev.String()
	case map[string]any:
		av, ok := a.(map[string]any)
		if !ok || len(av) != len(ev) {
			return false
		}
		for k, v := range ev {
			got, ok := av[k]
			if !ok || !valuesEqual(got, v) {
				return false
			}
		}
		return true
	case []any:
		av, ok := a.([]any)
		if !ok || len(av) != len(ev) {
			return false
		}
		for i := range ev {
			if !valuesEqual(av[i], ev[i]) {
				return false
			}
		}
		return true
	}
	if isIdentifier(a) && isIdentifier(e) {
		ac, _ := Canonical(a)
		ec, _ := Canonical(e)
		return ac == ec
	}
	return assert.ObjectsAreEqual(e, a)
}

// formatValue renders a value for mismatch messages.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", x)
	case *regexp.Regexp:
		return "/" + x.String() + "/"
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case []string:
		quoted := make([]string, len(x))
		for i, s := range x {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	}
	if isIdentifier(v) {
		c, _ := Canonical(v)
		return fmt.Sprintf("%T(%s)", v, c)
	}
	return fmt.Sprintf("%v", v)
}

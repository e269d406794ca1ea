package output

import (
	"errors"
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
)

// Result is the outcome of one comparison.
type Result struct {
	Name     string
	Passed   bool
	Path     string
	Message  string
	Actual   any
	Expected any
	// Error is set when the comparison could not run at all.
	Error    error
	Duration time.Duration
}

// NewResult builds a Result from the error returned by a comparison.
// Assertion mismatches fail the result; any other error is recorded as
// Error.
func NewResult(name string, err error, duration time.Duration) *Result {
	r := &Result{Name: name, Passed: err == nil, Duration: duration}
	if err == nil {
		return r
	}
	var ae *matcher.AssertionError
	if errors.As(err, &ae) {
		r.Path = ae.Path
		r.Message = ae.Message
		r.Actual = ae.Actual
		r.Expected = ae.Expected
		return r
	}
	r.Error = err
	return r
}

// Formatter renders results.
type Formatter interface {
	FormatResult(result *Result)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable is implemented by formatters that write everything at the end.
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// Summary counts passed and failed results.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Errors int `json:"errors"`
}

func (s *Summary) add(r *Result) {
	s.Total++
	switch {
	case r.Error != nil:
		s.Errors++
	case r.Passed:
		s.Passed++
	default:
		s.Failed++
	}
}

// formatValue formats a value for display, truncating or summarizing large values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case []any:
		return fmt.Sprintf("[array with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{object with %d keys}", len(val))
	case string:
		v = fmt.Sprintf("%q", val)
	}
	str := fmt.Sprintf("%v", v)
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}

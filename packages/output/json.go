package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/goccy/go-json"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Summary  Summary     `json:"summary"`
	Results  []JSONMatch `json:"results"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONMatch represents a single match result
type JSONMatch struct {
	Name     string  `json:"name"`
	Passed   bool    `json:"passed"`
	Path     string  `json:"path,omitempty"`
	Message  string  `json:"message,omitempty"`
	Expected any     `json:"expected,omitempty"`
	Actual   any     `json:"actual,omitempty"`
	Error    string  `json:"error,omitempty"`
	Duration float64 `json:"duration"`
}

// JSONFormatter formats match results as JSON
type JSONFormatter struct {
	writer  io.Writer
	results []JSONMatch
	summary Summary
	now     func() time.Time
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:  os.Stdout,
		results: make([]JSONMatch, 0),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(r *Result) {
	f.summary.add(r)
	m := JSONMatch{
		Name:     r.Name,
		Passed:   r.Passed,
		Path:     r.Path,
		Message:  r.Message,
		Duration: float64(r.Duration.Milliseconds()),
	}
	if !r.Passed {
		m.Expected = jsonValue(r.Expected)
		m.Actual = jsonValue(r.Actual)
	}
	if r.Error != nil {
		m.Error = r.Error.Error()
	}
	f.results = append(f.results, m)
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	out := JSONOutput{
		Summary:  f.summary,
		Results:  f.results,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     f.now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// jsonValue renders values that have no JSON form, like regular
// expressions, as strings.
func jsonValue(v any) any {
	switch x := v.(type) {
	case *regexp.Regexp:
		return "/" + x.String() + "/"
	case time.Time:
		return x.Format(time.RFC3339Nano)
	}
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprint(v)
	}
	return v
}

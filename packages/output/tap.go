package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TAPFormatter formats match results in TAP (Test Anything Protocol) format
type TAPFormatter struct {
	writer  io.Writer
	results []*Result
}

type TAPOption func(*TAPFormatter)

func NewTAPFormatter(opts ...TAPOption) *TAPFormatter {
	f := &TAPFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func TAPWithWriter(w io.Writer) TAPOption {
	return func(f *TAPFormatter) {
		f.writer = w
	}
}

func (f *TAPFormatter) FormatResult(r *Result) {
	f.results = append(f.results, r)
}

func (f *TAPFormatter) FormatError(err error) {
	// Errors are included in individual results
}

func (f *TAPFormatter) FormatHeader(version string) {
	// Header is written in Flush
}

// Flush writes the accumulated TAP output
func (f *TAPFormatter) Flush(totalDuration time.Duration) error {
	fmt.Fprintf(f.writer, "TAP version 13\n")
	fmt.Fprintf(f.writer, "1..%d\n", len(f.results))

	for i, r := range f.results {
		n := i + 1
		if r.Passed {
			fmt.Fprintf(f.writer, "ok %d - %s\n", n, r.Name)
			continue
		}
		fmt.Fprintf(f.writer, "not ok %d - %s\n", n, r.Name)

		diag := map[string]any{"severity": "fail", "message": r.Message}
		if r.Path != "" {
			diag["path"] = r.Path
		}
		if r.Error != nil {
			diag["severity"] = "error"
			diag["message"] = r.Error.Error()
		}
		if err := f.writeDiagnostic(diag); err != nil {
			return err
		}
	}

	fmt.Fprintln(f.writer)
	return nil
}

// writeDiagnostic writes a YAML block indented under a test line.
func (f *TAPFormatter) writeDiagnostic(diag map[string]any) error {
	data, err := yaml.Marshal(diag)
	if err != nil {
		return err
	}
	fmt.Fprintf(f.writer, "  ---\n")
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		fmt.Fprintf(f.writer, "  %s\n", line)
	}
	fmt.Fprintf(f.writer, "  ...\n")
	return nil
}

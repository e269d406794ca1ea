package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
	summary Summary
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatResult(r *Result) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	f.summary.add(r)

	if r.Error != nil {
		fmt.Fprintf(f.writer, "  %s %s %s\n", red("x"), r.Name, red(fmt.Sprintf("(%v)", r.Error)))
		return
	}

	symbol := green("✓")
	if !r.Passed {
		symbol = red("✗")
	}
	fmt.Fprintf(f.writer, "  %s %s %s\n", symbol, r.Name, cyan(fmt.Sprintf("(%dms)", r.Duration.Milliseconds())))

	if r.Passed {
		return
	}
	if r.Path != "" {
		fmt.Fprintf(f.writer, "    %s %s\n", red("→"), r.Path)
	}
	fmt.Fprintf(f.writer, "      %s\n", r.Message)
	if f.verbose {
		fmt.Fprintf(f.writer, "      Expected: %s\n", formatValue(r.Expected, 100))
		fmt.Fprintf(f.writer, "      Actual:   %s\n", formatValue(r.Actual, 100))
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n\n", bold("shapematch"), version)
}

// Flush prints the summary line.
func (f *ConsoleFormatter) Flush(totalDuration time.Duration) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(f.writer, "\nMatches: ")
	if f.summary.Passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d passed", f.summary.Passed)))
	}
	if f.summary.Failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", f.summary.Failed)))
	}
	if f.summary.Errors > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d errors", f.summary.Errors)))
	}
	fmt.Fprintf(f.writer, "%d total\n", f.summary.Total)
	fmt.Fprintf(f.writer, "Time:    %dms\n", totalDuration.Milliseconds())
	return nil
}

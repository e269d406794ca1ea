package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/shapematch/packages/core/config"
	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
	"github.com/abdul-hamid-achik/shapematch/packages/output"
	"github.com/spf13/cobra"
)

// Flags shared by every comparison command
var (
	configFlag  string
	outputFlag  string
	noColorFlag bool
	verboseFlag bool
)

func init() {
	for _, cmd := range []*cobra.Command{matchCmd, responseCmd, collectionCmd} {
		c := cmd.Flags()
		c.StringVar(&configFlag, "config", getEnvString("SHAPEMATCH_CONFIG", ""), "Path to config file (env: SHAPEMATCH_CONFIG)")
		c.StringVarP(&outputFlag, "output", "o", getEnvString("SHAPEMATCH_OUTPUT", "console"), "Output format: console, json, tap (env: SHAPEMATCH_OUTPUT)")
		c.BoolVar(&noColorFlag, "no-color", getEnvBool("SHAPEMATCH_NO_COLOR", false), "Disable colored output (env: SHAPEMATCH_NO_COLOR)")
		c.BoolVarP(&verboseFlag, "verbose", "v", false, "Show expected and actual values of failures")
	}
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// loadMatcher loads the project configuration and builds a matcher from it.
func loadMatcher(path string) (*matcher.Matcher, *config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, withExitCode(ExitConfigError, err)
	}
	return matcher.New(matcher.WithConfig(cfg)), cfg, nil
}

func newFormatter(format string, noColor bool, w io.Writer) (output.Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w)), nil
	case "tap":
		return output.NewTAPFormatter(output.TAPWithWriter(w)), nil
	case "", "console":
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(verboseFlag),
			output.WithNoColor(noColor),
		), nil
	}
	return nil, withExitCode(ExitUsageError, fmt.Errorf("unknown output format: %s", format))
}

// report writes results and returns the exit error matching the worst
// outcome. errCode is used for results that could not be compared.
func report(f output.Formatter, results []*output.Result, errCode int) error {
	var total time.Duration
	code := ExitSuccess
	for _, r := range results {
		f.FormatResult(r)
		total += r.Duration
		switch {
		case r.Error != nil:
			code = errCode
		case !r.Passed && code == ExitSuccess:
			code = ExitMatchFailure
		}
	}
	if flushable, ok := f.(output.Flushable); ok {
		if err := flushable.Flush(total); err != nil {
			return err
		}
	}
	if code != ExitSuccess {
		return withExitCode(code, nil)
	}
	return nil
}

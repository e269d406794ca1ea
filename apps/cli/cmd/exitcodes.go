package cmd

import "strconv"

// Exit codes for shapematch CLI
const (
	// ExitSuccess indicates every comparison passed
	ExitSuccess = 0

	// ExitMatchFailure indicates one or more comparisons failed
	ExitMatchFailure = 1

	// ExitParseError indicates a document or pattern file could not be read
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries the process exit code of a failed command. err may be
// nil when the failure was already reported by a formatter.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return "exit status " + strconv.Itoa(e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

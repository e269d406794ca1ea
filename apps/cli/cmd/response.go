package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/shapematch/packages/http"
	"github.com/abdul-hamid-achik/shapematch/packages/output"
	"github.com/abdul-hamid-achik/shapematch/packages/patternfile"
	"github.com/spf13/cobra"
)

var responseCmd = &cobra.Command{
	Use:   "response <url>",
	Short: "Check an HTTP response against the JSON response contract",
	Long: `Send a GET request to <url> and check the response.

A 204 response must have no content type and an empty body. Any other
status requires a JSON content type and a body matching --expected.

Examples:
  shapematch response http://localhost:8080/users/1 --expected user.json
  shapematch response http://localhost:8080/users/1 --status 204
  shapematch response https://api.example.com/me -H "Authorization: Bearer x" -e me.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runResponse,
}

var (
	statusFlag   int
	expectedFlag string
	headerFlags  []string
	timeoutFlag  string
)

func init() {
	responseCmd.Flags().IntVarP(&statusFlag, "status", "s", 200, "Expected status code")
	responseCmd.Flags().StringVarP(&expectedFlag, "expected", "e", "", "Pattern file the body must match")
	responseCmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, "Request header in 'Name: value' form (repeatable)")
	responseCmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("SHAPEMATCH_TIMEOUT", "30s"), "Request timeout (env: SHAPEMATCH_TIMEOUT)")
}

func runResponse(cmd *cobra.Command, args []string) error {
	m, cfg, err := loadMatcher(configFlag)
	if err != nil {
		return err
	}
	formatter, err := newFormatter(outputFlag, noColorFlag || cfg.GetNoColor(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	timeout, err := time.ParseDuration(timeoutFlag)
	if err != nil {
		return withExitCode(ExitUsageError, fmt.Errorf("invalid timeout %q: %w", timeoutFlag, err))
	}
	headers, err := parseHeaders(headerFlags)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	var expected any
	if expectedFlag != "" {
		expected, err = patternfile.LoadPattern(expectedFlag)
		if err != nil {
			return withExitCode(ExitParseError, err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	url := args[0]
	client := http.NewClient(http.WithTimeout(timeout))
	start := time.Now()
	res, err := client.Get(ctx, url, headers)
	if err != nil {
		return report(formatter, []*output.Result{output.NewResult(url, err, time.Since(start))}, ExitNetworkError)
	}

	err = http.NewVerifier(m).AssertResponse(res, statusFlag, expected)
	return report(formatter, []*output.Result{output.NewResult(url, err, res.Duration)}, ExitParseError)
}

func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, expected 'Name: value'", h)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}

package cmd

import (
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/shapematch/packages/matcher"
	"github.com/abdul-hamid-achik/shapematch/packages/output"
	"github.com/abdul-hamid-achik/shapematch/packages/patternfile"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <actual> <expected>",
	Short: "Match a document file against an expected pattern",
	Long: `Match the document in <actual> against the pattern in <expected>.
Both files may be JSON or YAML.

Examples:
  shapematch match user.json expected.json
  shapematch match users.yaml expected.yaml --strict
  shapematch match user.json expected.json --watch
  shapematch match user.json expected.json -o json`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

var (
	strictFlag bool
	watchFlag  bool
)

func init() {
	matchCmd.Flags().BoolVar(&strictFlag, "strict", false, "Require actual to have exactly the fields of the pattern")
	matchCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-run when either file changes")
}

func runMatch(cmd *cobra.Command, args []string) error {
	m, cfg, err := loadMatcher(configFlag)
	if err != nil {
		return err
	}
	strict := strictFlag || cfg.GetStrict()
	noColor := noColorFlag || cfg.GetNoColor()

	run := func() error {
		formatter, err := newFormatter(outputFlag, noColor, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		result := matchFiles(m, args[0], args[1], strict)
		return report(formatter, []*output.Result{result}, ExitParseError)
	}

	err = run()
	if !watchFlag {
		return err
	}

	return watchFiles(cmd.Context(), cmd.OutOrStdout(), args, func(changed string) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running match...\n\n", changed)
		_ = run()
		fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
	})
}

// matchFiles loads both files and compares them.
func matchFiles(m *matcher.Matcher, actualPath, expectedPath string, strict bool) *output.Result {
	start := time.Now()
	name := actualPath + " ~ " + expectedPath

	actual, err := patternfile.LoadDocument(actualPath)
	if err != nil {
		return output.NewResult(name, err, time.Since(start))
	}
	expected, err := patternfile.LoadPattern(expectedPath)
	if err != nil {
		return output.NewResult(name, err, time.Since(start))
	}

	if strict {
		err = m.MatchStrict(actual, expected)
	} else {
		err = m.Match(actual, expected)
	}
	return output.NewResult(name, err, time.Since(start))
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "shapematch",
	Short: "Structural assertions for JSON documents.",
	Long: `shapematch compares actual documents against expected patterns.

Patterns may use regular expressions ("/^John/"), the "_mock_" sentinel
for any present value, and identifiers ("ObjectId(<24 hex>)"). Fields
named _id, __v, createdAt and updatedAt get identifier, version and
timestamp checks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	err := rootCmd.Execute()
	if err == nil {
		os.Exit(ExitSuccess)
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ee.err)
		}
		os.Exit(ee.code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(ExitUsageError)
}

func init() {
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(responseCmd)
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

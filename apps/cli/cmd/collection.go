package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/shapematch/packages/collection"
	"github.com/abdul-hamid-achik/shapematch/packages/db"
	"github.com/abdul-hamid-achik/shapematch/packages/docstore"
	"github.com/abdul-hamid-achik/shapematch/packages/output"
	"github.com/abdul-hamid-achik/shapematch/packages/patternfile"
	"github.com/spf13/cobra"
)

var collectionCmd = &cobra.Command{
	Use:   "collection <database> <name> <expected>",
	Short: "Match a stored document collection against expected documents",
	Long: `Load every document of collection <name> from a SQLite database and
match them against the list of documents in <expected>.

With --change the expected documents are the initial state, and
--changed names a file holding the created, updated or deleted document.

Examples:
  shapematch collection sqlite://app.db users users.json
  shapematch collection sqlite://app.db users users.json --sort-field name
  shapematch collection sqlite://app.db users before.json --change deleted --changed removed.json`,
	Args: cobra.ExactArgs(3),
	RunE: runCollection,
}

var (
	sortFieldFlag  string
	changeTypeFlag string
	changedDocFlag string
)

func init() {
	collectionCmd.Flags().StringVar(&sortFieldFlag, "sort-field", "", "Sort both sides by this field before comparing")
	collectionCmd.Flags().StringVar(&changeTypeFlag, "change", "", "Change applied to the expected documents: created, updated, deleted")
	collectionCmd.Flags().StringVar(&changedDocFlag, "changed", "", "File holding the changed document")
}

func runCollection(cmd *cobra.Command, args []string) error {
	m, cfg, err := loadMatcher(configFlag)
	if err != nil {
		return err
	}
	formatter, err := newFormatter(outputFlag, noColorFlag || cfg.GetNoColor(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	changeType, err := collection.ParseChangeType(changeTypeFlag)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	initial, err := patternfile.LoadPattern(args[2])
	if err != nil {
		return withExitCode(ExitParseError, err)
	}
	change := collection.Change{InitialDocs: initial, Type: changeType, SortField: sortFieldFlag}
	if changedDocFlag != "" {
		change.ChangedDoc, err = patternfile.LoadPattern(changedDocFlag)
		if err != nil {
			return withExitCode(ExitParseError, err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := db.NewClient(args[0])
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	defer client.Close()

	store, err := docstore.Open(ctx, client, args[1])
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	start := time.Now()
	err = collection.VerifyWith[*docstore.Document](ctx, collection.NewVerifier(m), store, change)
	result := output.NewResult(fmt.Sprintf("%s %s", args[0], args[1]), err, time.Since(start))
	return report(formatter, []*output.Result{result}, ExitConfigError)
}

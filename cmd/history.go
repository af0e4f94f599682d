package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobforge/domain"
	"github.com/rios0rios0/jobforge/infrastructure/history"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	historyLimit  int
	historySearch string
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the journal of past generation runs",
	Long: `Show the operation journal kept beside the generated artifacts:
who generated which job, when, through which template, and the checksum
of the written file.`,
	RunE: runHistory,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().StringVar(&historySearch, "search", "", "Only show entries containing this term")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, err := newOutputRoot(cfg)
	if err != nil {
		return err
	}
	journal := history.New(string(root))

	var entries []domain.HistoryEntry
	if historySearch != "" {
		entries, err = journal.Search(historySearch)
	} else {
		entries, err = journal.Recent(historyLimit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No history entries.")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "DATE\tOPERATION\tJOB\tUSER\tRESULT")
	for _, entry := range entries {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp, entry.Operation, entry.Job, entry.User, entry.Result)
	}
	return writer.Flush()
}

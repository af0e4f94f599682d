package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobforge/infrastructure/catalog"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the jobs registered in the catalog",
	Long: `List every job name manual mode accepts, together with the template
that renders it and its destination category.`,
	RunE: runList,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "JOB\tTEMPLATE\tCATEGORY\tLABEL")
	for _, entry := range cat.Entries() {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			entry.Name,
			entry.TemplateKey,
			entry.Parameters["category"],
			entry.Parameters["label"],
		)
	}
	return writer.Flush()
}

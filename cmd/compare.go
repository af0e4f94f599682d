package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobforge/infrastructure/compare"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var showDiff bool

//nolint:gochecknoglobals // required by cobra CLI pattern
var compareCmd = &cobra.Command{
	Use:   "compare <old-file> <new-file>",
	Short: "Compare two job versions line by line",
	Long: `Compare the deployed version of a job against a freshly generated
one and report how many lines were inserted and deleted. With --diff the
full line diff is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	compareCmd.Flags().BoolVar(&showDiff, "diff", false, "Print the full line diff")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	result, err := compare.Files(args[0], args[1])
	if err != nil {
		return err
	}

	if result.Identical {
		fmt.Println("Files are identical.")
		return nil
	}

	fmt.Printf("%s: %d line(s)\n", args[0], result.LinesOld)
	fmt.Printf("%s: %d line(s)\n", args[1], result.LinesNew)
	fmt.Printf("+%d -%d\n", result.Insertions, result.Deletions)

	if showDiff {
		oldContent, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return readErr
		}
		newContent, readErr := os.ReadFile(args[1])
		if readErr != nil {
			return readErr
		}
		fmt.Print(compare.Report(string(oldContent), string(newContent)))
	}

	return nil
}

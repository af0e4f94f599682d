package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobforge/infrastructure/validate"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a generated batch job for the mandatory skeleton markers",
	Long: `Validate that a generated artifact carries the complete batch
skeleton: echo directive, phase 00/99 blocks, skeleton procedure calls,
and the error handling labels. Also cross-checks goto targets against
the STEP labels that actually exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	report, err := validate.File(args[0])
	if err != nil {
		return err
	}

	for _, message := range report.Errors {
		fmt.Printf("  ERROR: %s\n", message)
	}
	for _, message := range report.Warnings {
		fmt.Printf("  WARNING: %s\n", message)
	}
	fmt.Printf("%s: %d line(s), %d phase(s)\n", report.Path, report.Lines, report.Phases)

	if !report.Valid {
		return fmt.Errorf("%s is not a valid generated job", report.Path)
	}

	fmt.Println("OK")
	return nil
}

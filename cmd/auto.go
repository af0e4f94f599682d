package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobforge/application"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Generate jobs from the git diff against the reference branch",
	Long: `Resolve the currently checked-out branch, compute the files that
changed relative to the reference branch (master by default), and generate
one artifact per changed file that maps to a known job template.

Changed files outside the tracked job/script/param trees are ignored.
An empty diff is a normal completion, not an error.`,
	RunE: runAuto,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(autoCmd)
}

func runAuto(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	_, err = service.GenerateAutomatic(application.RunOptions{
		ReferenceBranch: cfg.ReferenceBranch,
		DryRun:          dryRun,
		Verbose:         verbose,
	})
	return err
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobforge/application"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var manualCmd = &cobra.Command{
	Use:   "manual <job-name> [job-name...]",
	Short: "Generate an explicit list of jobs, ignoring git state",
	Long: `Resolve each requested job name through the bundled catalog and
generate its artifact. Git state is never consulted.

A single unknown job name aborts the whole run before any file is
written, so a typo never leaves partial output behind. Use "jobforge list"
to see the registered names.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runManual,
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(manualCmd)
}

func runManual(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	_, err = service.GenerateManual(args, application.RunOptions{
		ReferenceBranch: cfg.ReferenceBranch,
		DryRun:          dryRun,
		Verbose:         verbose,
	})
	return err
}

package cmd

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobforge/config"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	// Global flags
	configPath    string
	repoOverride  string
	outputDir     string
	referenceFlag string
	dryRun        bool
	verbose       bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "jobforge",
	Short: "CI batch-job generator driven by the local git working copy",
	Long: `A CLI tool that generates CI batch-job artifacts for the scheduling
platform, either from the git diff between the current branch and the
reference branch (automatic mode) or from an explicit list of job names
(manual mode).

Generated files land beside the jobforge executable so a distributed
binary keeps its output together, and every run is idempotent: re-running
produces byte-identical files.`,
}

func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect jobforge.yaml)")
	rootCmd.PersistentFlags().StringVar(&repoOverride, "repo", "",
		"Path of the git working copy to inspect (overrides config)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "",
		"Destination root for generated files (default: executable directory)")
	rootCmd.PersistentFlags().StringVar(&referenceFlag, "reference", "",
		"Reference branch to diff against (default: master)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false,
		"Render artifacts without writing anything")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}

// loadConfig resolves the effective configuration from the config file (or
// defaults) and the CLI overrides.
func loadConfig() (*config.Config, error) {
	cfgPath := configPath
	if cfgPath == "" {
		if found, err := config.FindConfigFile(); err == nil {
			cfgPath = found
		}
	}

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		logger.Infof("Using config file: %s", cfgPath)
		cfg = loaded
	}

	if repoOverride != "" {
		cfg.Repository = repoOverride
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if referenceFlag != "" {
		cfg.ReferenceBranch = referenceFlag
	}

	return cfg, nil
}

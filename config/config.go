package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for jobforge. Everything here feeds
// the CLI layer only; the generation core receives resolved values.
type Config struct {
	// Repository is the path of the git working copy to inspect. Supports
	// ${ENV_VAR} references. Empty means the current directory.
	Repository string `yaml:"repository"`
	// ReferenceBranch overrides the baseline branch (default "master").
	ReferenceBranch string `yaml:"reference_branch"`
	// OutputDir overrides the destination root. Empty keeps the default:
	// the directory containing the running executable.
	OutputDir string  `yaml:"output_dir"`
	Backups   Backups `yaml:"backups"`
	History   History `yaml:"history"`
}

// Backups controls the timestamped copies taken before overwrites.
type Backups struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// History controls the JSON operation journal.
type History struct {
	Enabled bool `yaml:"enabled"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Repository:      ".",
		ReferenceBranch: "",
		Backups:         Backups{Enabled: true, Dir: "backups"},
		History:         History{Enabled: true},
	}
}

// Load reads and parses a configuration file, expanding environment
// variable references in path values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Repository = ExpandEnv(cfg.Repository)
	cfg.OutputDir = ExpandEnv(cfg.OutputDir)
	if cfg.Repository == "" {
		cfg.Repository = "."
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path of the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".jobforge.yaml",
		".jobforge.yml",
		"jobforge.yaml",
		"jobforge.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ExpandEnv replaces ${VAR} references with environment values. Unset
// variables expand to the empty string.
func ExpandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

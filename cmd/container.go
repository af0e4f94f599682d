package cmd

import (
	"path/filepath"

	"go.uber.org/dig"

	"github.com/rios0rios0/jobforge/application"
	"github.com/rios0rios0/jobforge/config"
	"github.com/rios0rios0/jobforge/domain"
	"github.com/rios0rios0/jobforge/infrastructure/catalog"
	"github.com/rios0rios0/jobforge/infrastructure/gitrepo"
	"github.com/rios0rios0/jobforge/infrastructure/history"
	"github.com/rios0rios0/jobforge/infrastructure/output"
	"github.com/rios0rios0/jobforge/infrastructure/render"
	"github.com/rios0rios0/jobforge/infrastructure/rules"
)

// outputRoot is the resolved destination directory for generated artifacts.
type outputRoot string

// noopJournal satisfies application.RunJournal when history is disabled.
type noopJournal struct{}

func (noopJournal) Append(domain.HistoryEntry) {}

// buildService wires the generation pipeline with DIG: config -> components
// -> service, bottom-up.
func buildService(cfg *config.Config) (*application.GenerationService, error) {
	container := dig.New()

	providers := []interface{}{
		func() *config.Config { return cfg },
		newOutputRoot,
		newInspector,
		newClassifier,
		newCatalog,
		newRenderer,
		newWriter,
		newJournal,
		application.NewGenerationService,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	var service *application.GenerationService
	if err := container.Invoke(func(s *application.GenerationService) {
		service = s
	}); err != nil {
		return nil, err
	}
	return service, nil
}

func newOutputRoot(cfg *config.Config) (outputRoot, error) {
	if cfg.OutputDir != "" {
		abs, err := filepath.Abs(cfg.OutputDir)
		if err != nil {
			return "", err
		}
		return outputRoot(abs), nil
	}

	dir, err := output.ExecutableDir()
	if err != nil {
		return "", err
	}
	return outputRoot(dir), nil
}

func newInspector(cfg *config.Config) domain.RepositoryInspector {
	return gitrepo.New(cfg.Repository)
}

func newClassifier() (domain.ChangeClassifier, error) {
	ruleList, err := rules.Load()
	if err != nil {
		return nil, err
	}
	return rules.NewClassifier(ruleList), nil
}

func newCatalog() (domain.JobCatalog, error) {
	return catalog.Load()
}

func newRenderer() (domain.TemplateRenderer, error) {
	return render.New()
}

func newWriter(cfg *config.Config, root outputRoot) domain.OutputWriter {
	return output.New(output.Options{
		Root:        func() (string, error) { return string(root), nil },
		KeepBackups: cfg.Backups.Enabled,
		BackupDir:   cfg.Backups.Dir,
	})
}

func newJournal(cfg *config.Config, root outputRoot) application.RunJournal {
	if !cfg.History.Enabled {
		return noopJournal{}
	}
	return history.New(string(root))
}

package application

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobforge/domain"
)

// DefaultReferenceBranch is the fixed baseline branch changes are measured
// against in automatic mode.
const DefaultReferenceBranch = "master"

// RunJournal records completed operations. Implementations must treat
// failures as non-fatal; the service never checks an append result.
type RunJournal interface {
	Append(entry domain.HistoryEntry)
}

// GenerationService orchestrates the full generation pipeline:
// inspect -> classify (or catalog lookup) -> render -> write.
type GenerationService struct {
	inspector  domain.RepositoryInspector
	classifier domain.ChangeClassifier
	catalog    domain.JobCatalog
	renderer   domain.TemplateRenderer
	writer     domain.OutputWriter
	journal    RunJournal
}

// NewGenerationService creates a service from the pipeline components.
// The journal may be nil when history is disabled.
func NewGenerationService(
	inspector domain.RepositoryInspector,
	classifier domain.ChangeClassifier,
	catalog domain.JobCatalog,
	renderer domain.TemplateRenderer,
	writer domain.OutputWriter,
	journal RunJournal,
) *GenerationService {
	return &GenerationService{
		inspector:  inspector,
		classifier: classifier,
		catalog:    catalog,
		renderer:   renderer,
		writer:     writer,
		journal:    journal,
	}
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	ReferenceBranch string // empty means DefaultReferenceBranch
	DryRun          bool
	Verbose         bool
}

func (opts RunOptions) reference() string {
	if opts.ReferenceBranch == "" {
		return DefaultReferenceBranch
	}
	return opts.ReferenceBranch
}

// GenerateAutomatic runs the git-driven flow: resolve branches, compute the
// changeset against the reference branch, classify each path, then render and
// write one artifact per classified change. An empty changeset is a normal
// completion, not an error.
func (s *GenerationService) GenerateAutomatic(opts RunOptions) ([]domain.WriteResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	current, err := s.inspector.CurrentBranch()
	if err != nil {
		return nil, err
	}
	reference := opts.reference()
	logger.Infof("Current branch: %s (reference: %s)", current, reference)

	changes, err := s.inspector.ChangedFiles(current, reference)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		logger.Info("No changed files, nothing to generate.")
		return nil, nil
	}
	logger.Infof("Found %d changed file(s)", len(changes))

	var specs []*domain.JobSpecification
	for _, path := range changes {
		spec := s.classifier.Classify(path)
		if spec == nil {
			logger.Debugf("Skipping %s (not a tracked job file)", path)
			continue
		}
		logger.Infof("  %s -> %s [%s]", path, spec.JobName, spec.TemplateKey)
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		logger.Info("No changed file maps to a job, nothing to generate.")
		return nil, nil
	}

	return s.renderAndWrite(specs, "generate-auto", opts)
}

// GenerateManual runs the catalog-driven flow for an explicit list of job
// names. One unknown name aborts the whole run before anything is written.
func (s *GenerationService) GenerateManual(jobNames []string, opts RunOptions) ([]domain.WriteResult, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	// Resolve every name first so a bad request produces zero files.
	specs := make([]*domain.JobSpecification, 0, len(jobNames))
	for _, name := range jobNames {
		spec, err := s.catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		logger.Infof("  %s -> %s [%s]", name, spec.JobName, spec.TemplateKey)
		specs = append(specs, spec)
	}

	return s.renderAndWrite(specs, "generate-manual", opts)
}

// renderAndWrite renders every specification before writing any artifact, so
// a rendering failure commits nothing, then writes sequentially and stops at
// the first write failure.
func (s *GenerationService) renderAndWrite(
	specs []*domain.JobSpecification,
	operation string,
	opts RunOptions,
) ([]domain.WriteResult, error) {
	artifacts := make([]*domain.GeneratedArtifact, 0, len(specs))
	for _, spec := range specs {
		artifact, err := s.renderer.Render(spec)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	if opts.DryRun {
		for _, artifact := range artifacts {
			logger.Infof("DRY-RUN: would write %s (%d bytes)",
				artifact.DestinationPath, len(artifact.Content))
		}
		return nil, nil
	}

	results := make([]domain.WriteResult, 0, len(artifacts))
	for i, artifact := range artifacts {
		result, err := s.writer.Write(artifact)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
		logger.Infof("Generated %s", result.Path)

		if s.journal != nil {
			s.journal.Append(domain.HistoryEntry{
				Operation: operation,
				Job:       specs[i].JobName,
				Template:  specs[i].TemplateKey,
				Path:      result.Path,
				Checksum:  result.Checksum,
				Result:    "success",
			})
		}
	}

	logger.Infof("Run complete: %d artifact(s) written", len(results))
	return results, nil
}

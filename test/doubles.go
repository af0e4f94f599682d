// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"github.com/rios0rios0/jobforge/domain"
)

// ---------------------------------------------------------------------------
// SpyInspector
// ---------------------------------------------------------------------------

// SpyInspector implements domain.RepositoryInspector as a configurable spy.
type SpyInspector struct {
	// --- CurrentBranch ---
	Branch    string
	BranchErr error

	// --- ChangedFiles ---
	Changes    domain.ChangeSet
	ChangesErr error
	// spy: (current, reference) pairs requested
	ChangedFilesCalls [][2]string
}

var _ domain.RepositoryInspector = (*SpyInspector)(nil)

func (i *SpyInspector) CurrentBranch() (string, error) {
	return i.Branch, i.BranchErr
}

func (i *SpyInspector) ChangedFiles(current, reference string) (domain.ChangeSet, error) {
	i.ChangedFilesCalls = append(i.ChangedFilesCalls, [2]string{current, reference})
	return i.Changes, i.ChangesErr
}

// ---------------------------------------------------------------------------
// StubClassifier
// ---------------------------------------------------------------------------

// StubClassifier implements domain.ChangeClassifier from a fixed path map.
// Paths absent from the map classify to nil.
type StubClassifier struct {
	Specs map[string]*domain.JobSpecification
	// spy: paths classified, in order
	ClassifiedPaths []string
}

var _ domain.ChangeClassifier = (*StubClassifier)(nil)

func (c *StubClassifier) Classify(path string) *domain.JobSpecification {
	c.ClassifiedPaths = append(c.ClassifiedPaths, path)
	if c.Specs == nil {
		return nil
	}
	return c.Specs[path]
}

// ---------------------------------------------------------------------------
// StubCatalog
// ---------------------------------------------------------------------------

// StubCatalog implements domain.JobCatalog from a fixed name map.
type StubCatalog struct {
	Specs map[string]*domain.JobSpecification
	// spy: names looked up, in order
	LookedUp []string
}

var _ domain.JobCatalog = (*StubCatalog)(nil)

func (c *StubCatalog) Lookup(jobName string) (*domain.JobSpecification, error) {
	c.LookedUp = append(c.LookedUp, jobName)
	if spec, ok := c.Specs[jobName]; ok {
		return spec, nil
	}
	return nil, &domain.UnknownJobError{JobName: jobName}
}

func (c *StubCatalog) Entries() []domain.CatalogEntry {
	entries := make([]domain.CatalogEntry, 0, len(c.Specs))
	for name, spec := range c.Specs {
		entries = append(entries, domain.CatalogEntry{
			Name:        name,
			TemplateKey: spec.TemplateKey,
			Parameters:  spec.Parameters,
		})
	}
	return entries
}

// ---------------------------------------------------------------------------
// SpyRenderer
// ---------------------------------------------------------------------------

// SpyRenderer implements domain.TemplateRenderer. By default it produces an
// artifact named after the specification; set RenderErr (optionally paired
// with FailOn) to simulate a template failure.
type SpyRenderer struct {
	RenderErr error
	// FailOn limits RenderErr to one template key; empty fails every call.
	FailOn string
	// spy: specs rendered, in order
	Rendered []*domain.JobSpecification
}

var _ domain.TemplateRenderer = (*SpyRenderer)(nil)

func (r *SpyRenderer) Render(spec *domain.JobSpecification) (*domain.GeneratedArtifact, error) {
	r.Rendered = append(r.Rendered, spec)
	if r.RenderErr != nil && (r.FailOn == "" || r.FailOn == spec.TemplateKey) {
		return nil, r.RenderErr
	}
	return &domain.GeneratedArtifact{
		DestinationPath: spec.Parameters["category"] + "/" + spec.JobName,
		Content:         []byte("generated " + spec.JobName + "\n"),
	}, nil
}

// ---------------------------------------------------------------------------
// SpyWriter
// ---------------------------------------------------------------------------

// SpyWriter implements domain.OutputWriter, recording every artifact it
// receives. Set WriteErr (optionally paired with FailOn) to simulate a
// filesystem failure.
type SpyWriter struct {
	WriteErr error
	// FailOn limits WriteErr to one destination path; empty fails every call.
	FailOn string
	// spy: artifacts written, in order
	Written []*domain.GeneratedArtifact
}

var _ domain.OutputWriter = (*SpyWriter)(nil)

func (w *SpyWriter) Write(artifact *domain.GeneratedArtifact) (*domain.WriteResult, error) {
	if w.WriteErr != nil && (w.FailOn == "" || w.FailOn == artifact.DestinationPath) {
		return nil, w.WriteErr
	}
	w.Written = append(w.Written, artifact)
	return &domain.WriteResult{
		Path:       artifact.DestinationPath,
		BytesCount: len(artifact.Content),
		Checksum:   "stub-checksum",
	}, nil
}

// ---------------------------------------------------------------------------
// SpyJournal
// ---------------------------------------------------------------------------

// SpyJournal records appended history entries.
type SpyJournal struct {
	Entries []domain.HistoryEntry
}

func (j *SpyJournal) Append(entry domain.HistoryEntry) {
	j.Entries = append(j.Entries, entry)
}

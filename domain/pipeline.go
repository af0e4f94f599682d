package domain

// ChangeClassifier maps a changed file path to at most one job specification.
// Classification is pure: the same path always yields the same result within
// a run.
type ChangeClassifier interface {
	// Classify applies the ordered rule list to the given repository-relative
	// path (first match wins) and returns nil when no rule matches. An
	// unmatched path is ignored, not an error. Deleted files classify like
	// any other path.
	Classify(path string) *JobSpecification
}

// JobCatalog is the immutable registry of known job names. It is the source
// of job specifications in manual mode and never consults git state.
type JobCatalog interface {
	// Lookup resolves a requested job name into a specification, failing with
	// an UnknownJobError when the name is not registered.
	Lookup(jobName string) (*JobSpecification, error)

	// Entries returns every registered entry, sorted by name.
	Entries() []CatalogEntry
}

// TemplateRenderer turns a job specification into a generated artifact.
// Rendering is pure and deterministic: no I/O, no clock, no randomness.
type TemplateRenderer interface {
	// Render fails with a TemplateError when the specification's template key
	// is unknown or a required parameter is missing.
	Render(spec *JobSpecification) (*GeneratedArtifact, error)
}

// OutputWriter places generated artifacts under the destination root.
// Existing files are overwritten unconditionally: generation is idempotent,
// not additive.
type OutputWriter interface {
	// Write creates intermediate directories as needed and fails with a
	// WriteError on permission or disk errors, without retrying.
	Write(artifact *GeneratedArtifact) (*WriteResult, error)
}

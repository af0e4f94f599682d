package domain

import "fmt"

// RepositoryStateError indicates that the git working copy cannot serve as a
// generation source: the repository is missing, HEAD is detached, or the
// reference branch does not exist locally.
type RepositoryStateError struct {
	Reason string
	Err    error
}

func (e *RepositoryStateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("repository state: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("repository state: %s", e.Reason)
}

func (e *RepositoryStateError) Unwrap() error { return e.Err }

// UnknownJobError indicates that a requested job name is not registered in the
// catalog. Manual runs abort entirely on the first unknown name.
type UnknownJobError struct {
	JobName string
}

func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("unknown job: %q is not in the catalog", e.JobName)
}

// TemplateError indicates a fatal configuration problem in the rendering
// stage: the template key resolves to no known template, or a required
// parameter is missing from the specification.
type TemplateError struct {
	TemplateKey string
	Reason      string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %q: %s", e.TemplateKey, e.Reason)
}

// WriteError indicates a filesystem failure while placing an artifact.
// Writes are never retried.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

package domain

// RepositoryInspector wraps the read-only git queries the generation engine
// needs. Implementations never write to the repository and never fetch.
type RepositoryInspector interface {
	// CurrentBranch returns the name of the checked-out branch. It fails with
	// a RepositoryStateError when HEAD is detached or no repository can be
	// located from the configured directory. The result is resolved fresh on
	// every call, never cached.
	CurrentBranch() (string, error)

	// ChangedFiles computes the set of paths modified, added, or deleted
	// between the merge base of current/reference and current's tip. Renames
	// surface as a deletion of the old path plus an addition of the new one.
	// It fails with a RepositoryStateError when the reference branch does not
	// exist locally.
	ChangedFiles(current, reference string) (ChangeSet, error)
}

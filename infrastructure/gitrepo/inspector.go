// Package gitrepo implements the read-only repository queries the generation
// engine needs, backed by go-git. No command-line git binary is required.
package gitrepo

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobforge/domain"
)

// Inspector implements domain.RepositoryInspector over a local working copy.
type Inspector struct {
	dir string
}

// New creates an inspector rooted at the given directory. The directory may
// be anywhere inside the working copy; the repository is located by walking
// up to the nearest .git, the same way the git CLI does.
func New(dir string) *Inspector {
	return &Inspector{dir: dir}
}

var _ domain.RepositoryInspector = (*Inspector)(nil)

// CurrentBranch resolves the checked-out branch name fresh on every call.
func (it *Inspector) CurrentBranch() (string, error) {
	repo, err := it.open()
	if err != nil {
		return "", err
	}

	head, headErr := repo.Head()
	if headErr != nil {
		return "", &domain.RepositoryStateError{
			Reason: "cannot resolve HEAD",
			Err:    headErr,
		}
	}

	if !head.Name().IsBranch() {
		return "", &domain.RepositoryStateError{
			Reason: fmt.Sprintf("HEAD is detached at %s", head.Hash().String()[:8]),
		}
	}

	branch := head.Name().Short()
	logger.Debugf("Current branch: %s", branch)
	return branch, nil
}

// ChangedFiles diffs the tree at the merge base of current/reference against
// the tree at current's tip. Rename detection is intentionally off: a rename
// surfaces as a deletion plus an addition, because classification keys purely
// on path.
func (it *Inspector) ChangedFiles(current, reference string) (domain.ChangeSet, error) {
	repo, err := it.open()
	if err != nil {
		return nil, err
	}

	currentCommit, err := branchCommit(repo, current)
	if err != nil {
		return nil, err
	}
	referenceCommit, err := branchCommit(repo, reference)
	if err != nil {
		return nil, err
	}

	bases, baseErr := currentCommit.MergeBase(referenceCommit)
	if baseErr != nil {
		return nil, &domain.RepositoryStateError{
			Reason: fmt.Sprintf("cannot compute merge base of %q and %q", current, reference),
			Err:    baseErr,
		}
	}
	if len(bases) == 0 {
		return nil, &domain.RepositoryStateError{
			Reason: fmt.Sprintf("branches %q and %q share no history", current, reference),
		}
	}

	baseTree, err := bases[0].Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read merge-base tree: %w", err)
	}
	tipTree, err := currentCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tip tree: %w", err)
	}

	changes, diffErr := object.DiffTree(baseTree, tipTree)
	if diffErr != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", diffErr)
	}

	// Deduplicate: a path can appear on both sides of a change, and several
	// changes can touch the same path across the history range.
	seen := make(map[string]struct{})
	for _, change := range changes {
		if name := change.From.Name; name != "" {
			seen[name] = struct{}{}
		}
		if name := change.To.Name; name != "" {
			seen[name] = struct{}{}
		}
	}

	paths := make(domain.ChangeSet, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	logger.Debugf("%d changed path(s) between %s and %s", len(paths), reference, current)
	return paths, nil
}

func (it *Inspector) open() (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(it.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, &domain.RepositoryStateError{
			Reason: fmt.Sprintf("no git repository at %q", it.dir),
			Err:    err,
		}
	}
	return repo, nil
}

func branchCommit(repo *git.Repository, branch string) (*object.Commit, error) {
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, &domain.RepositoryStateError{
			Reason: fmt.Sprintf("branch %q does not exist locally", branch),
			Err:    err,
		}
	}

	commit, commitErr := repo.CommitObject(ref.Hash())
	if commitErr != nil {
		return nil, &domain.RepositoryStateError{
			Reason: fmt.Sprintf("cannot resolve tip of branch %q", branch),
			Err:    commitErr,
		}
	}
	return commit, nil
}

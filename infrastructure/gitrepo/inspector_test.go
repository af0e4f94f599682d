package gitrepo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/jobforge/domain"
	"github.com/rios0rios0/jobforge/infrastructure/gitrepo"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func commitOptions() *git.CommitOptions {
	return &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  "fixture",
			Email: "fixture@example.com",
			When:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func commitFile(t *testing.T, repo *git.Repository, dir, path, content string) plumbing.Hash {
	t.Helper()

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	full := filepath.Join(dir, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))

	_, err = worktree.Add(path)
	require.NoError(t, err)

	hash, err := worktree.Commit("add "+path, commitOptions())
	require.NoError(t, err)
	return hash
}

func checkoutNew(t *testing.T, repo *git.Repository, branch string) {
	t.Helper()

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	}))
}

func TestInspector_CurrentBranch(t *testing.T) {
	t.Parallel()

	t.Run("should report the checked-out branch", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, repo, dir, "README.md", "hello\n")
		checkoutNew(t, repo, "feature/fm-42")

		// when
		branch, err := gitrepo.New(dir).CurrentBranch()

		// then
		require.NoError(t, err)
		assert.Equal(t, "feature/fm-42", branch)
	})

	t.Run("should resolve the repository from a subdirectory", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, repo, dir, "job/fm1/jfm1aa10.bat", "@echo off\n")

		// when
		branch, err := gitrepo.New(filepath.Join(dir, "job", "fm1")).CurrentBranch()

		// then
		require.NoError(t, err)
		assert.Equal(t, "master", branch)
	})

	t.Run("should fail when HEAD is detached", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		hash := commitFile(t, repo, dir, "README.md", "hello\n")
		worktree, err := repo.Worktree()
		require.NoError(t, err)
		require.NoError(t, worktree.Checkout(&git.CheckoutOptions{Hash: hash}))

		// when
		_, err = gitrepo.New(dir).CurrentBranch()

		// then
		require.Error(t, err)
		var target *domain.RepositoryStateError
		require.ErrorAs(t, err, &target)
		assert.Contains(t, target.Reason, "detached")
	})

	t.Run("should fail when the directory is not a repository", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()

		// when
		_, err := gitrepo.New(dir).CurrentBranch()

		// then
		require.Error(t, err)
		var target *domain.RepositoryStateError
		assert.ErrorAs(t, err, &target)
	})
}

func TestInspector_ChangedFiles(t *testing.T) {
	t.Parallel()

	t.Run("should list paths touched on the branch, sorted", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, repo, dir, "README.md", "hello\n")
		checkoutNew(t, repo, "feature/fm-42")
		commitFile(t, repo, dir, "script/fm_kpi.cmd", "rem kpi\n")
		commitFile(t, repo, dir, "job/fm1/jfm1aa10.bat", "@echo off\n")

		// when
		changes, err := gitrepo.New(dir).ChangedFiles("feature/fm-42", "master")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.ChangeSet{"job/fm1/jfm1aa10.bat", "script/fm_kpi.cmd"}, changes)
	})

	t.Run("should ignore commits made on the reference after the fork point", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, repo, dir, "README.md", "hello\n")
		checkoutNew(t, repo, "feature/fm-42")
		commitFile(t, repo, dir, "job/fm1/jfm1aa10.bat", "@echo off\n")

		worktree, err := repo.Worktree()
		require.NoError(t, err)
		require.NoError(t, worktree.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName("master"),
		}))
		commitFile(t, repo, dir, "script/master_only.cmd", "rem master\n")
		require.NoError(t, worktree.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName("feature/fm-42"),
		}))

		// when
		changes, err := gitrepo.New(dir).ChangedFiles("feature/fm-42", "master")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.ChangeSet{"job/fm1/jfm1aa10.bat"}, changes)
	})

	t.Run("should surface a rename as both the old and the new path", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, repo, dir, "job/fm1/jfm1aa10.bat", "@echo off\nrem body\n")
		checkoutNew(t, repo, "feature/rename")

		worktree, err := repo.Worktree()
		require.NoError(t, err)
		_, err = worktree.Remove("job/fm1/jfm1aa10.bat")
		require.NoError(t, err)
		_, err = worktree.Commit("remove old job", commitOptions())
		require.NoError(t, err)
		commitFile(t, repo, dir, "job/fm1/jfm1aa20.bat", "@echo off\nrem body\n")

		// when
		changes, err := gitrepo.New(dir).ChangedFiles("feature/rename", "master")

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.ChangeSet{"job/fm1/jfm1aa10.bat", "job/fm1/jfm1aa20.bat"}, changes)
	})

	t.Run("should return an empty set when the branch adds nothing", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, repo, dir, "README.md", "hello\n")
		checkoutNew(t, repo, "feature/empty")

		// when
		changes, err := gitrepo.New(dir).ChangedFiles("feature/empty", "master")

		// then
		require.NoError(t, err)
		assert.Empty(t, changes)
	})

	t.Run("should fail when the reference branch does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, repo, dir, "README.md", "hello\n")
		checkoutNew(t, repo, "feature/fm-42")

		// when
		_, err := gitrepo.New(dir).ChangedFiles("feature/fm-42", "develop")

		// then
		require.Error(t, err)
		var target *domain.RepositoryStateError
		require.ErrorAs(t, err, &target)
		assert.Contains(t, target.Reason, `"develop"`)
	})

	t.Run("should fail when the branches share no history", func(t *testing.T) {
		t.Parallel()

		// given
		dir, repo := initRepo(t)
		commitFile(t, repo, dir, "README.md", "hello\n")

		// an orphan branch: move HEAD to an unborn ref, then commit
		require.NoError(t, repo.Storer.SetReference(plumbing.NewSymbolicReference(
			plumbing.HEAD, plumbing.NewBranchReferenceName("orphan"))))
		commitFile(t, repo, dir, "detached.txt", "elsewhere\n")

		// when
		_, err := gitrepo.New(dir).ChangedFiles("orphan", "master")

		// then
		require.Error(t, err)
		var target *domain.RepositoryStateError
		require.ErrorAs(t, err, &target)
		assert.Contains(t, target.Reason, "share no history")
	})
}

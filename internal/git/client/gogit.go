package client

import (
	"errors"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
)

// openRepository discovers the repository enclosing path, walking up through
// parent directories the way git itself does.
func openRepository(path string) (*git.Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, apperrors.NoRepository(errors.New("repository path is required"))
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, apperrors.NoRepository(err)
	}
	return repo, nil
}

func openWorktree(path string) (*git.Repository, *git.Worktree, error) {
	repo, err := openRepository(path)
	if err != nil {
		return nil, nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, apperrors.Git(err)
	}
	return repo, wt, nil
}

// IsRepository reports whether path is inside a git work tree.
func (c *Client) IsRepository(path string) bool {
	_, err := openRepository(path)
	return err == nil
}

// RepoRoot returns the top-level directory of the repository enclosing path.
func (c *Client) RepoRoot(path string) (string, error) {
	_, wt, err := openWorktree(path)
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// currentBranch returns HEAD's short branch name. An unborn or detached
// HEAD has no usable branch name.
func currentBranch(repo *git.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil || !head.Name().IsBranch() {
		return "", apperrors.Custom("Cannot determine current branch")
	}
	return head.Name().Short(), nil
}

// headCommitHash resolves HEAD, reporting ok=false for an unborn branch.
func headCommitHash(repo *git.Repository) (plumbing.Hash, bool, error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, false, nil
		}
		return plumbing.ZeroHash, false, apperrors.Git(err)
	}
	return head.Hash(), true, nil
}

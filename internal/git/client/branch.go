package client

import (
	"context"
	"errors"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
)

// Branches lists local branches, then remote-tracking branches, each sorted by name.
func (c *Client) Branches(ctx context.Context, repoPath string) ([]BranchInfo, error) {
	repo, err := openRepository(repoPath)
	if err != nil {
		return nil, err
	}
	current := ""
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		current = head.Name().Short()
	}
	refs, err := repo.References()
	if err != nil {
		return nil, apperrors.Git(err)
	}
	defer refs.Close()

	locals, remotes := []BranchInfo{}, []BranchInfo{}
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		switch {
		case name.IsBranch():
			short := name.Short()
			locals = append(locals, BranchInfo{Name: short, IsCurrent: short == current})
		case name.IsRemote():
			remotes = append(remotes, BranchInfo{Name: name.Short(), IsRemote: true})
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Git(err)
	}
	sort.Slice(locals, func(i, j int) bool { return locals[i].Name < locals[j].Name })
	sort.Slice(remotes, func(i, j int) bool { return remotes[i].Name < remotes[j].Name })
	return append(locals, remotes...), nil
}

// CreateBranch points a new local branch at HEAD's commit.
func (c *Client) CreateBranch(ctx context.Context, repoPath, name string) error {
	if err := validateBranchName(name); err != nil {
		return err
	}
	repo, err := openRepository(repoPath)
	if err != nil {
		return err
	}
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(refName, false); err == nil {
		return apperrors.Customf("a branch named '%s' already exists", name)
	} else if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return apperrors.Git(err)
	}
	head, err := repo.Head()
	if err != nil {
		return apperrors.Git(err)
	}
	if err := repo.Storer.SetReference(plumbing.NewHashReference(refName, head.Hash())); err != nil {
		return apperrors.Git(err)
	}
	c.log.Info("branch created", "repo", repoPath, "branch", name, "at", head.Hash().String())
	return nil
}

// Checkout switches the working tree and HEAD to an existing local branch.
// go-git refuses when the worktree has unstaged changes.
func (c *Client) Checkout(ctx context.Context, repoPath, name string) error {
	repo, wt, err := openWorktree(repoPath)
	if err != nil {
		return err
	}
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(refName, true); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return apperrors.Customf("branch '%s' not found", name)
		}
		return apperrors.Git(err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: refName}); err != nil {
		return apperrors.Git(err)
	}
	return nil
}

// validateBranchName applies the subset of git check-ref-format rules that
// would otherwise produce an unreadable reference on disk.
func validateBranchName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return apperrors.Custom("branch name is required")
	case strings.HasPrefix(name, "-"),
		strings.HasPrefix(name, "/"),
		strings.HasSuffix(name, "/"),
		strings.HasSuffix(name, "."),
		strings.HasSuffix(name, ".lock"),
		strings.Contains(name, ".."),
		strings.Contains(name, "//"),
		strings.Contains(name, "@{"),
		strings.ContainsAny(name, " ~^:?*[\\\t\n"):
		return apperrors.Customf("'%s' is not a valid branch name", name)
	}
	return nil
}

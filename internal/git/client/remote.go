package client

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
)

// Push sends the local branch to the same-named branch on the remote.
// Empty remote and branch fall back to the configured default remote and the
// branch HEAD points at.
func (c *Client) Push(ctx context.Context, repoPath, remoteName, branch string) error {
	repo, err := openRepository(repoPath)
	if err != nil {
		return err
	}
	remote, branch, err := c.resolveTarget(repo, remoteName, branch)
	if err != nil {
		return err
	}
	auth, err := c.auth(remote)
	if err != nil {
		return err
	}
	ref := plumbing.NewBranchReferenceName(branch)
	err = remote.PushContext(ctx, &git.PushOptions{
		RemoteName: remote.Config().Name,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))},
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return apperrors.Git(err)
	}
	c.log.Info("pushed branch", "repo", repoPath, "remote", remote.Config().Name, "branch", branch)
	return nil
}

// Pull fetches the remote branch and fast-forwards the local one to it.
// A diverged history is reported instead of merged.
func (c *Client) Pull(ctx context.Context, repoPath, remoteName, branch string) error {
	repo, wt, err := openWorktree(repoPath)
	if err != nil {
		return err
	}
	remote, branch, err := c.resolveTarget(repo, remoteName, branch)
	if err != nil {
		return err
	}
	auth, err := c.auth(remote)
	if err != nil {
		return err
	}
	name := remote.Config().Name
	tracking := plumbing.NewRemoteReferenceName(name, branch)
	err = remote.FetchContext(ctx, &git.FetchOptions{
		RemoteName: name,
		RefSpecs: []config.RefSpec{
			config.RefSpec(fmt.Sprintf("+%s:%s", plumbing.NewBranchReferenceName(branch), tracking)),
		},
		Auth: auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return apperrors.Git(err)
	}
	fetched, err := repo.Reference(tracking, true)
	if err != nil {
		return apperrors.Git(err)
	}

	analysis, err := analyzeMerge(repo, fetched.Hash())
	if err != nil {
		return err
	}
	switch analysis {
	case mergeUpToDate:
		c.log.Debug("pull up to date", "repo", repoPath, "branch", branch)
		return nil
	case mergeNonFastForward:
		return apperrors.ManualMerge()
	}

	local := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), fetched.Hash())
	if err := repo.Storer.SetReference(local); err != nil {
		return apperrors.Git(err)
	}
	head, ok, err := headCommitHash(repo)
	if err != nil {
		return err
	}
	if ok {
		if err := wt.Reset(&git.ResetOptions{Commit: head, Mode: git.HardReset}); err != nil {
			return apperrors.Git(err)
		}
	}
	c.log.Info("fast-forwarded branch", "repo", repoPath, "branch", branch, "to", fetched.Hash().String())
	return nil
}

type mergeAnalysis int

const (
	mergeUpToDate mergeAnalysis = iota
	mergeFastForward
	mergeNonFastForward
)

// analyzeMerge classifies how HEAD relates to the fetched commit.
func analyzeMerge(repo *git.Repository, fetched plumbing.Hash) (mergeAnalysis, error) {
	head, ok, err := headCommitHash(repo)
	if err != nil {
		return 0, err
	}
	if !ok {
		return mergeFastForward, nil
	}
	if head == fetched {
		return mergeUpToDate, nil
	}
	headCommit, err := repo.CommitObject(head)
	if err != nil {
		return 0, apperrors.Git(err)
	}
	fetchedCommit, err := repo.CommitObject(fetched)
	if err != nil {
		return 0, apperrors.Git(err)
	}
	if behind, err := fetchedCommit.IsAncestor(headCommit); err != nil {
		return 0, apperrors.Git(err)
	} else if behind {
		return mergeUpToDate, nil
	}
	if ahead, err := headCommit.IsAncestor(fetchedCommit); err != nil {
		return 0, apperrors.Git(err)
	} else if ahead {
		return mergeFastForward, nil
	}
	return mergeNonFastForward, nil
}

func (c *Client) resolveTarget(repo *git.Repository, remoteName, branch string) (*git.Remote, string, error) {
	if remoteName == "" {
		remoteName = c.defaultRemote
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return nil, "", apperrors.Customf("remote '%s' not found", remoteName)
		}
		return nil, "", apperrors.Git(err)
	}
	if branch == "" {
		if branch, err = currentBranch(repo); err != nil {
			return nil, "", err
		}
	}
	return remote, branch, nil
}

func (c *Client) auth(remote *git.Remote) (transport.AuthMethod, error) {
	urls := remote.Config().URLs
	if c.creds == nil || len(urls) == 0 {
		return nil, nil
	}
	auth, err := c.creds.AuthMethod(urls[0])
	if err != nil {
		return nil, apperrors.Git(err)
	}
	return auth, nil
}

package client

import (
	"context"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
)

const identityMissing = "Git user not configured. Run 'git config user.name' and 'git config user.email'"

// Commit records the current index as a new commit on HEAD and returns its full hex id.
func (c *Client) Commit(ctx context.Context, repoPath, message string) (string, error) {
	repo, wt, err := openWorktree(repoPath)
	if err != nil {
		return "", err
	}
	sig, err := identity(repo)
	if err != nil {
		return "", err
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", apperrors.Git(err)
	}
	c.log.Info("commit created", "repo", repoPath, "commit", hash.String())
	return hash.String(), nil
}

// identity reads user.name and user.email from the repository and global config.
func identity(repo *git.Repository) (*object.Signature, error) {
	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return nil, apperrors.Custom(identityMissing)
	}
	name := strings.TrimSpace(cfg.User.Name)
	email := strings.TrimSpace(cfg.User.Email)
	if name == "" || email == "" {
		return nil, apperrors.Custom(identityMissing)
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}, nil
}

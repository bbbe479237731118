// Package git binds the git facade to the frontend.
package git

import (
	"context"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
	"github.com/AreteDriver/Gorgon/internal/git/client"
	"github.com/AreteDriver/Gorgon/internal/logging"
)

// API exposes git commands to the frontend via Wails binding.
type API struct {
	client   *client.Client
	logCount int
	log      logging.Logger
}

// NewAPI binds c. logCount is what GitLog returns when the caller passes no count.
func NewAPI(c *client.Client, logCount int, logger logging.Logger) *API {
	if logger == nil {
		logger = logging.Nop()
	}
	if logCount <= 0 {
		logCount = client.DefaultLogCount()
	}
	return &API{client: c, logCount: logCount, log: logger}
}

func (a *API) GitStatus(repoPath string) ([]client.StatusEntry, error) {
	done := logging.Track(a.log, "git_status", "repo", repoPath)
	entries, err := a.client.Status(context.Background(), repoPath)
	return entries, done(err)
}

func (a *API) GitDiff(repoPath string, staged bool) (string, error) {
	done := logging.Track(a.log, "git_diff", "repo", repoPath, "staged", staged)
	out, err := a.client.Diff(context.Background(), repoPath, staged)
	return out, done(err)
}

func (a *API) GitCommit(repoPath string, message string) (string, error) {
	done := logging.Track(a.log, "git_commit", "repo", repoPath)
	id, err := a.client.Commit(context.Background(), repoPath, message)
	return id, done(err)
}

func (a *API) GitBranch(repoPath string) ([]client.BranchInfo, error) {
	done := logging.Track(a.log, "git_branch", "repo", repoPath)
	branches, err := a.client.Branches(context.Background(), repoPath)
	return branches, done(err)
}

func (a *API) GitCheckout(repoPath string, branchName string) error {
	done := logging.Track(a.log, "git_checkout", "repo", repoPath, "branch", branchName)
	return done(a.client.Checkout(context.Background(), repoPath, branchName))
}

func (a *API) GitCreateBranch(repoPath string, branchName string) error {
	done := logging.Track(a.log, "git_create_branch", "repo", repoPath, "branch", branchName)
	return done(a.client.CreateBranch(context.Background(), repoPath, branchName))
}

// GitPush pushes branch (default: current) to remote (default: configured remote).
func (a *API) GitPush(repoPath string, remote *string, branch *string) error {
	done := logging.Track(a.log, "git_push", "repo", repoPath, "remote", deref(remote), "branch", deref(branch))
	return done(a.client.Push(context.Background(), repoPath, deref(remote), deref(branch)))
}

// GitPull fast-forwards branch from remote with the same defaults as GitPush.
func (a *API) GitPull(repoPath string, remote *string, branch *string) error {
	done := logging.Track(a.log, "git_pull", "repo", repoPath, "remote", deref(remote), "branch", deref(branch))
	return done(a.client.Pull(context.Background(), repoPath, deref(remote), deref(branch)))
}

func (a *API) GitLog(repoPath string, count *int) ([]client.LogEntry, error) {
	n := a.logCount
	if count != nil {
		n = *count
	}
	done := logging.Track(a.log, "git_log", "repo", repoPath, "count", n)
	if n < 0 {
		return nil, done(apperrors.Customf("count must not be negative, got %d", n))
	}
	entries, err := a.client.Log(context.Background(), repoPath, n)
	return entries, done(err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

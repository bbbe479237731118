package client

import (
	"context"
	"sort"

	git "github.com/go-git/go-git/v5"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
)

// Status lists changed paths, untracked files included and ignored files excluded.
func (c *Client) Status(ctx context.Context, repoPath string) ([]StatusEntry, error) {
	_, wt, err := openWorktree(repoPath)
	if err != nil {
		return nil, err
	}
	st, err := wt.Status()
	if err != nil {
		return nil, apperrors.Git(err)
	}
	entries := make([]StatusEntry, 0, len(st))
	for path, fs := range st {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		entries = append(entries, StatusEntry{
			Path:   path,
			Status: statusLabel(fs),
			Staged: isStaged(fs),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// statusLabel picks exactly one label; the order of the checks is the precedence.
func statusLabel(fs *git.FileStatus) string {
	switch {
	case fs.Staging == git.Added:
		return StatusNew
	case fs.Staging == git.Modified || fs.Worktree == git.Modified:
		return StatusModified
	case fs.Staging == git.Deleted || fs.Worktree == git.Deleted:
		return StatusDeleted
	case fs.Staging == git.Renamed || fs.Worktree == git.Renamed:
		return StatusRenamed
	case fs.Worktree == git.Untracked:
		return StatusUntracked
	case fs.Staging == git.UpdatedButUnmerged || fs.Worktree == git.UpdatedButUnmerged:
		return StatusConflicted
	default:
		return StatusUnknown
	}
}

func isStaged(fs *git.FileStatus) bool {
	switch fs.Staging {
	case git.Added, git.Modified, git.Deleted, git.Renamed:
		return true
	}
	return false
}

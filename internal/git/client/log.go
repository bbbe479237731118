package client

import (
	"context"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
)

// shortIDLen is the length of the abbreviated commit id in log entries.
const shortIDLen = 8

// Log walks history from HEAD and returns at most count commits, newest first.
func (c *Client) Log(ctx context.Context, repoPath string, count int) ([]LogEntry, error) {
	repo, err := openRepository(repoPath)
	if err != nil {
		return nil, err
	}
	entries := []LogEntry{}
	if count <= 0 {
		return entries, nil
	}
	head, err := repo.Head()
	if err != nil {
		return nil, apperrors.Git(err)
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, apperrors.Git(err)
	}
	defer iter.Close()

	err = iter.ForEach(func(commit *object.Commit) error {
		id := commit.Hash.String()
		entries = append(entries, LogEntry{
			ID:      id[:shortIDLen],
			Message: summary(commit.Message),
			Author:  commit.Author.Name,
			Time:    commit.Committer.When.Unix(),
		})
		if len(entries) >= count {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Git(err)
	}
	return entries, nil
}

// summary is the first paragraph of a commit message folded onto one line.
func summary(message string) string {
	var parts []string
	for _, line := range strings.Split(strings.TrimLeft(message, " \t\r\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

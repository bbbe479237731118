package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
	"github.com/AreteDriver/Gorgon/internal/git/client"
)

func newRepoWithCommits(t *testing.T, n int) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "log.txt"), []byte(time.Now().String()), 0o644))
		_, err := wt.Add("log.txt")
		require.NoError(t, err)
		sig := &object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Now()}
		_, err = wt.Commit("commit", &gogit.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}
	return dir
}

func TestGitLogCountDefaults(t *testing.T) {
	dir := newRepoWithCommits(t, 4)
	api := NewAPI(client.New(nil), 3, nil)

	entries, err := api.GitLog(dir, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	one := 1
	entries, err = api.GitLog(dir, &one)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	zero := 0
	entries, err = api.GitLog(dir, &zero)
	require.NoError(t, err)
	require.Empty(t, entries)

	negative := -1
	_, err = api.GitLog(dir, &negative)
	require.Error(t, err)
}

func TestNewAPIFallsBackToDefaultLogCount(t *testing.T) {
	api := NewAPI(client.New(nil), 0, nil)
	require.Equal(t, client.DefaultLogCount(), api.logCount)
}

func TestAPIReportsMissingRepository(t *testing.T) {
	api := NewAPI(client.New(nil), 0, nil)
	outside := t.TempDir()

	_, err := api.GitStatus(outside)
	require.ErrorIs(t, err, apperrors.ErrNoRepository)
	_, err = api.GitDiff(outside, true)
	require.ErrorIs(t, err, apperrors.ErrNoRepository)
	_, err = api.GitBranch(outside)
	require.ErrorIs(t, err, apperrors.ErrNoRepository)
	require.ErrorIs(t, api.GitCheckout(outside, "main"), apperrors.ErrNoRepository)
	require.ErrorIs(t, api.GitPush(outside, nil, nil), apperrors.ErrNoRepository)
	require.ErrorIs(t, api.GitPull(outside, nil, nil), apperrors.ErrNoRepository)
}

func TestAPIBranchRoundTrip(t *testing.T) {
	dir := newRepoWithCommits(t, 1)
	api := NewAPI(client.New(nil), 0, nil)

	require.NoError(t, api.GitCreateBranch(dir, "topic"))
	require.NoError(t, api.GitCheckout(dir, "topic"))
	branches, err := api.GitBranch(dir)
	require.NoError(t, err)

	var current string
	for _, b := range branches {
		if b.IsCurrent {
			current = b.Name
		}
	}
	require.Equal(t, "topic", current)
}

func TestDeref(t *testing.T) {
	require.Equal(t, "", deref(nil))
	s := "upstream"
	require.Equal(t, "upstream", deref(&s))
}

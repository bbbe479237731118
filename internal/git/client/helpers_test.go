package client

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// requireGit skips tests that push or fetch over the file transport, which
// shells out to git-upload-pack and git-receive-pack when they are installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in PATH")
	}
}

// isolateGlobalConfig keeps the developer's ~/.gitconfig out of identity lookups.
func isolateGlobalConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
}

// newTestRepo initialises a work tree with a local user identity configured.
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	isolateGlobalConfig(t)
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	return &testRepo{t: t, dir: dir, repo: repo}
}

func wrapRepo(t *testing.T, dir string, repo *git.Repository) *testRepo {
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) path(name string) string { return filepath.Join(r.dir, name) }

func (r *testRepo) write(name, content string) {
	r.t.Helper()
	p := r.path(name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(r.t, os.WriteFile(p, []byte(content), 0o644))
}

func (r *testRepo) remove(name string) {
	r.t.Helper()
	require.NoError(r.t, os.Remove(r.path(name)))
}

func (r *testRepo) add(names ...string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	for _, n := range names {
		_, err := wt.Add(n)
		require.NoError(r.t, err)
	}
}

// commitFile writes, stages and commits a single file.
func (r *testRepo) commitFile(name, content, message string) plumbing.Hash {
	r.t.Helper()
	r.write(name, content)
	r.add(name)
	return r.commit(message)
}

func (r *testRepo) commit(message string) plumbing.Hash {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	sig := &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) head() plumbing.Hash {
	r.t.Helper()
	ref, err := r.repo.Head()
	require.NoError(r.t, err)
	return ref.Hash()
}

// branch is HEAD's branch name; go-git and git disagree on the default.
func (r *testRepo) branch() string {
	r.t.Helper()
	ref, err := r.repo.Reference(plumbing.HEAD, false)
	require.NoError(r.t, err)
	return ref.Target().Short()
}

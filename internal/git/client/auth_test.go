package client

import (
	"crypto/ed25519"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func TestSSHAgentLeavesNonSSHRemotesAnonymous(t *testing.T) {
	agent := SSHAgent{User: "deploy"}
	for _, endpoint := range []string{
		"https://example.com/org/repo.git",
		"file:///srv/git/repo.git",
		t.TempDir(),
	} {
		auth, err := agent.AuthMethod(endpoint)
		require.NoError(t, err, endpoint)
		require.Nil(t, auth, endpoint)
	}
}

func TestSSHAgentRequiresRunningAgent(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	_, err := SSHAgent{}.AuthMethod("git@example.com:org/repo.git")
	require.Error(t, err)
}

func TestSSHAgentKnownHosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_hosts")
	line := "example.com ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8g\n"
	require.NoError(t, os.WriteFile(path, []byte(line), 0o600))

	cb, err := SSHAgent{KnownHostsFiles: []string{path}}.hostKeyCallback()
	require.NoError(t, err)
	require.NotNil(t, cb)

	_, err = SSHAgent{KnownHostsFiles: []string{filepath.Join(t.TempDir(), "missing")}}.hostKeyCallback()
	require.Error(t, err)
}

func testPublicKey(t *testing.T, seed byte) ssh.PublicKey {
	t.Helper()
	raw := make([]byte, ed25519.PublicKeySize)
	for i := range raw {
		raw[i] = seed + byte(i)
	}
	key, err := ssh.NewPublicKey(ed25519.PublicKey(raw))
	require.NoError(t, err)
	return key
}

func TestSSHAgentPinnedHostKeys(t *testing.T) {
	pinned := testPublicKey(t, 1)
	other := testPublicKey(t, 100)
	addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 22}

	cb, err := SSHAgent{PinnedHostKeys: []string{string(ssh.MarshalAuthorizedKey(pinned))}}.hostKeyCallback()
	require.NoError(t, err)
	require.NoError(t, cb("example.com:22", addr, pinned))
	err = cb("example.com:22", addr, other)
	require.ErrorContains(t, err, "is not pinned")
	require.ErrorContains(t, err, ssh.FingerprintSHA256(other))

	_, err = SSHAgent{PinnedHostKeys: []string{"ssh-ed25519 not-base64"}}.hostKeyCallback()
	require.ErrorContains(t, err, "parse pinned host key")
}

func TestSSHAgentPinnedKeysFallBackToKnownHosts(t *testing.T) {
	pinned := testPublicKey(t, 1)
	listed := testPublicKey(t, 50)
	path := filepath.Join(t.TempDir(), "known_hosts")
	line := "example.com " + string(ssh.MarshalAuthorizedKey(listed))
	require.NoError(t, os.WriteFile(path, []byte(line), 0o600))
	addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 22}

	cb, err := SSHAgent{
		KnownHostsFiles: []string{path},
		PinnedHostKeys:  []string{string(ssh.MarshalAuthorizedKey(pinned))},
	}.hostKeyCallback()
	require.NoError(t, err)
	require.NoError(t, cb("example.com:22", addr, pinned))
	require.NoError(t, cb("example.com:22", addr, listed))
	require.Error(t, cb("example.com:22", addr, testPublicKey(t, 200)))
}

func TestClientAuthWrapsProviderErrors(t *testing.T) {
	r := newTestRepo(t)
	c := New(CredentialFunc(func(string) (transport.AuthMethod, error) {
		return nil, errors.New("keychain locked")
	}))
	_, err := r.repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"https://example.com/x.git"}})
	require.NoError(t, err)
	remote, err := r.repo.Remote("origin")
	require.NoError(t, err)

	_, err = c.auth(remote)
	require.EqualError(t, err, "Git error: keychain locked")
}

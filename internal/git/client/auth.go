package client

import (
	"bytes"
	"fmt"
	"net"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"golang.org/x/crypto/ssh"
)

// CredentialProvider chooses how a remote is authenticated. A nil method
// with a nil error means anonymous access.
type CredentialProvider interface {
	AuthMethod(endpoint string) (transport.AuthMethod, error)
}

// CredentialFunc adapts a function to CredentialProvider.
type CredentialFunc func(endpoint string) (transport.AuthMethod, error)

func (f CredentialFunc) AuthMethod(endpoint string) (transport.AuthMethod, error) {
	return f(endpoint)
}

// SSHAgent authenticates ssh remotes through the running ssh-agent and leaves
// every other protocol anonymous.
type SSHAgent struct {
	// User is used when the remote URL carries no user.
	User string
	// KnownHostsFiles overrides the default known_hosts lookup when set.
	KnownHostsFiles []string
	// PinnedHostKeys are authorized_keys formatted public keys accepted for
	// any host before known_hosts is consulted.
	PinnedHostKeys []string
}

func (a SSHAgent) AuthMethod(endpoint string) (transport.AuthMethod, error) {
	ep, err := transport.NewEndpoint(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", err)
	}
	if ep.Protocol != "ssh" {
		return nil, nil
	}
	user := ep.User
	if user == "" {
		user = a.User
	}
	if user == "" {
		user = "git"
	}
	auth, err := gitssh.NewSSHAgentAuth(user)
	if err != nil {
		return nil, err
	}
	if len(a.KnownHostsFiles) > 0 || len(a.PinnedHostKeys) > 0 {
		cb, err := a.hostKeyCallback()
		if err != nil {
			return nil, err
		}
		auth.HostKeyCallback = cb
	}
	return auth, nil
}

// hostKeyCallback accepts pinned keys outright and defers everything else to
// known_hosts. With pins but no known_hosts files, unpinned keys are refused.
func (a SSHAgent) hostKeyCallback() (ssh.HostKeyCallback, error) {
	pinned, err := parsePinnedKeys(a.PinnedHostKeys)
	if err != nil {
		return nil, err
	}
	var known ssh.HostKeyCallback
	if len(a.KnownHostsFiles) > 0 {
		if known, err = gitssh.NewKnownHostsCallback(a.KnownHostsFiles...); err != nil {
			return nil, fmt.Errorf("load known_hosts: %w", err)
		}
	}
	if len(pinned) == 0 {
		return known, nil
	}
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		wire := key.Marshal()
		for _, p := range pinned {
			if bytes.Equal(p.Marshal(), wire) {
				return nil
			}
		}
		if known != nil {
			return known(hostname, remote, key)
		}
		return fmt.Errorf("host key %s for %s is not pinned", ssh.FingerprintSHA256(key), hostname)
	}, nil
}

func parsePinnedKeys(lines []string) ([]ssh.PublicKey, error) {
	keys := make([]ssh.PublicKey, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, _, _, _, err := ssh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("parse pinned host key %q: %w", line, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Package client is the git facade. Every method opens the repository that
// encloses the given path, performs one operation and drops the handle;
// nothing is cached between calls.
package client

import (
	"github.com/AreteDriver/Gorgon/internal/logging"
)

const (
	defaultRemoteName = "origin"
	defaultLogCount   = 20
)

// Client runs git operations through go-git.
type Client struct {
	creds         CredentialProvider
	defaultRemote string
	log           logging.Logger
}

type Option func(*Client)

// WithDefaultRemote sets the remote used by Push and Pull when none is given.
func WithDefaultRemote(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.defaultRemote = name
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a client that authenticates remotes through creds.
// A nil provider means every remote is contacted anonymously.
func New(creds CredentialProvider, opts ...Option) *Client {
	c := &Client{
		creds:         creds,
		defaultRemote: defaultRemoteName,
		log:           logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultLogCount is the number of commits Log returns when the caller has no preference.
func DefaultLogCount() int { return defaultLogCount }

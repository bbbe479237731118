// Package pathguard screens filesystem paths against a denylist of
// sensitive substrings. It is a heuristic, not a sandbox: paths are not
// cleaned, resolved or canonicalised before matching.
package pathguard

import (
	"fmt"
	"strings"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
)

// DefaultPatterns returns the built-in denylist in match order.
func DefaultPatterns() []string {
	return []string{
		"/.ssh/",
		"/.gnupg/",
		"/.config/",
		"/etc/",
		"/.env",
		".env",
		"/credentials",
		"credentials.json",
		"/secrets",
	}
}

// Check rejects path if its lowercased form contains any of patterns.
// The first matching pattern is named in the error.
func Check(path string, patterns []string) error {
	lowered := strings.ToLower(path)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(p)) {
			return apperrors.NotAllowed(fmt.Sprintf("Access to path containing '%s' is not allowed", p))
		}
	}
	return nil
}

// Guard is an immutable pattern list.
type Guard struct {
	patterns []string
}

// New returns a guard over the default patterns followed by extra.
func New(extra ...string) *Guard {
	patterns := DefaultPatterns()
	for _, p := range extra {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return &Guard{patterns: patterns}
}

// Check validates path against the guard's patterns.
func (g *Guard) Check(path string) error {
	if g == nil {
		return Check(path, DefaultPatterns())
	}
	return Check(path, g.patterns)
}

// Patterns returns a copy of the guard's patterns.
func (g *Guard) Patterns() []string {
	if g == nil {
		return DefaultPatterns()
	}
	out := make([]string, len(g.patterns))
	copy(out, g.patterns)
	return out
}

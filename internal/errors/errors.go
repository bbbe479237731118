// Package errors defines the error taxonomy shared by the command surface.
// Every error crossing into the frontend collapses to a single message string;
// use errors.Is against the sentinels below to branch on the category.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a command failure.
type Kind int

const (
	KindCustom Kind = iota
	KindIO
	KindGit
	KindSerialization
	// KindInvalidPath is reserved; nothing raises it yet.
	KindInvalidPath
	KindNotAllowed
	KindNoRepository
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindGit:
		return "git"
	case KindSerialization:
		return "serialization"
	case KindInvalidPath:
		return "invalid_path"
	case KindNotAllowed:
		return "not_allowed"
	case KindNoRepository:
		return "no_repository"
	default:
		return "custom"
	}
}

// Sentinel errors for the categories callers commonly test for.
var (
	// ErrNotAllowed matches any Path Guard rejection.
	ErrNotAllowed = stderrors.New("operation not allowed")

	// ErrNoRepository matches repository discovery failures.
	ErrNoRepository = stderrors.New("git repository not found")

	// ErrManualMerge is returned by pull when the fetched commit diverged from HEAD.
	ErrManualMerge = stderrors.New("Manual merge required - non-fast-forward")
)

// Error is the concrete error type returned by the facades.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("IO error: %s", e.detail())
	case KindGit:
		return fmt.Sprintf("Git error: %s", e.detail())
	case KindSerialization:
		return fmt.Sprintf("Serialization error: %s", e.detail())
	case KindInvalidPath:
		return fmt.Sprintf("Path error: %s", e.detail())
	case KindNotAllowed:
		return fmt.Sprintf("Operation not allowed: %s", e.detail())
	case KindNoRepository:
		return "Git repository not found at path"
	default:
		return e.detail()
	}
}

func (e *Error) detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the category sentinels so callers need not type-assert.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotAllowed:
		return e.Kind == KindNotAllowed
	case ErrNoRepository:
		return e.Kind == KindNoRepository
	}
	if t, ok := target.(*Error); ok {
		return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
	}
	return false
}

// IO wraps a filesystem failure.
func IO(err error) *Error { return &Error{Kind: KindIO, Err: err} }

// Git wraps a go-git failure.
func Git(err error) *Error { return &Error{Kind: KindGit, Err: err} }

// Serialization wraps a request decoding or response encoding failure.
func Serialization(err error) *Error { return &Error{Kind: KindSerialization, Err: err} }

// InvalidPath reports a malformed path.
func InvalidPath(msg string) *Error { return &Error{Kind: KindInvalidPath, Message: msg} }

// NotAllowed reports a Path Guard rejection.
func NotAllowed(msg string) *Error { return &Error{Kind: KindNotAllowed, Message: msg} }

// NoRepository reports that discovery found no enclosing repository.
func NoRepository(err error) *Error { return &Error{Kind: KindNoRepository, Err: err} }

// Custom carries a contextual message verbatim.
func Custom(msg string) *Error { return &Error{Kind: KindCustom, Message: msg} }

// Customf is Custom with formatting.
func Customf(format string, args ...any) *Error {
	return &Error{Kind: KindCustom, Message: fmt.Sprintf(format, args...)}
}

// ManualMerge reports a diverged pull. It matches ErrManualMerge.
func ManualMerge() *Error {
	return &Error{Kind: KindCustom, Message: ErrManualMerge.Error(), Err: ErrManualMerge}
}

// KindOf reports the category of err, defaulting to KindCustom.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindCustom
}

// Message collapses err to the string handed to the frontend.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Is and As re-export the standard helpers so callers importing this package
// do not also need the standard library one.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func New(text string) error { return stderrors.New(text) }

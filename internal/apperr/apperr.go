// Package apperr defines the failure kinds shared by the note store, the
// graph session and the interaction loop.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	KindFileUnreadable      Kind = "FILE_UNREADABLE"
	KindFileUnwritable      Kind = "FILE_UNWRITABLE"
	KindRenameFailed        Kind = "RENAME_FAILED"
	KindDeleteFailed        Kind = "DELETE_FAILED"
	KindDirectoryUnreadable Kind = "DIRECTORY_UNREADABLE"
	KindDuplicateName       Kind = "DUPLICATE_NAME"
	KindInvalidName         Kind = "INVALID_NAME"
)

// Sentinels for errors.Is. An *Error matches a sentinel of the same kind.
var (
	ErrFileUnreadable      = &Error{Kind: KindFileUnreadable}
	ErrFileUnwritable      = &Error{Kind: KindFileUnwritable}
	ErrRenameFailed        = &Error{Kind: KindRenameFailed}
	ErrDeleteFailed        = &Error{Kind: KindDeleteFailed}
	ErrDirectoryUnreadable = &Error{Kind: KindDirectoryUnreadable}
	ErrDuplicateName       = &Error{Kind: KindDuplicateName}
	ErrInvalidName         = &Error{Kind: KindInvalidName}
)

// Error is a classified failure on a path.
type Error struct {
	Kind  Kind
	Path  string
	Cause error
}

// New returns an *Error of the given kind.
func New(kind Kind, path string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Cause: cause}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Fatal reports whether err must end the session. Losing track of note
// content (an unreadable note, a note that could not be removed) is fatal;
// everything else is recovered where it happens.
func Fatal(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return false
	}
	return kind == KindFileUnreadable || kind == KindDeleteFailed
}

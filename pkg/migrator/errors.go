package migrator

import "github.com/pkg/errors"

// Kind classifies an Error so callers can branch on failure category without
// parsing diagnostic text.
type Kind int

const (
	// KindUnknown is the zero value; never returned intentionally.
	KindUnknown Kind = iota
	// KindConfigNotFound means no configuration was found in file or environment.
	KindConfigNotFound
	// KindMissingParams means a config section was selected but required keys are absent.
	KindMissingParams
	// KindAdaptorNotFound means configuration did not select exactly one adaptor
	// section (none or both were present).
	KindAdaptorNotFound
	// KindBadMigration means a migration is malformed: empty name, duplicate key,
	// unparsable directory name, or a plan step requiring an absent payload.
	KindBadMigration
	// KindDirtyHistory means divergence or a variant blocks the requested forward operation.
	KindDirtyHistory
	// KindIO wraps an underlying filesystem failure.
	KindIO
	// KindConfigParse wraps an underlying configuration-file parse failure.
	KindConfigParse
	// KindDB wraps an underlying database failure.
	KindDB
)

func (k Kind) String() string {
	switch k {
	case KindConfigNotFound:
		return "ConfigNotFound"
	case KindMissingParams:
		return "MissingParams"
	case KindAdaptorNotFound:
		return "AdaptorNotFound"
	case KindBadMigration:
		return "BadMigration"
	case KindDirtyHistory:
		return "DirtyHistory"
	case KindIO:
		return "Io"
	case KindConfigParse:
		return "Toml"
	case KindDB:
		return "DbError"
	default:
		return "Unknown"
	}
}

// Error is the typed error returned across every package boundary in this module.
// It carries a Kind for programmatic dispatch and wraps an underlying cause (if any)
// with github.com/pkg/errors so that both the original stack trace and Unwrap()
// chain are preserved.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

// Unwrap exposes the wrapped cause so stdlib errors.Is/errors.As keep working.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds an Error of the given kind with a message and no wrapped cause.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds an Error of the given kind wrapping cause, annotated with message.
// cause is preserved via errors.Wrap so existing stack-trace/annotation conventions
// used throughout this codebase are not lost.
func WrapError(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: errors.Wrap(cause, message)}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

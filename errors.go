package reactive

import "github.com/riverrun/reactive/internal"

// ErrorKind classifies which core operation a recovered panic came from.
type ErrorKind = internal.ErrorKind

const (
	ErrKindWatchGetter     = internal.ErrKindWatchGetter
	ErrKindWatchCallback   = internal.ErrKindWatchCallback
	ErrKindWatchCleanup    = internal.ErrKindWatchCleanup
	ErrKindInvalidSource   = internal.ErrKindInvalidSource
	ErrKindWriteToReadonly = internal.ErrKindWriteToReadonly
	ErrKindRecursiveUpdate = internal.ErrKindRecursiveUpdate
)

// ReactiveError wraps a user-callback panic with the kind of operation
// that triggered it.
type ReactiveError = internal.ReactiveError

// SetErrorHandler installs the handler invoked whenever a watch
// getter/callback/cleanup panics or a readonly write is refused. The default
// handler logs via the standard logger; see the sentryreport subpackage
// for a github.com/getsentry/sentry-go-backed alternative.
func SetErrorHandler(h func(kind ErrorKind, err error)) {
	internal.ErrorHandler = h
}

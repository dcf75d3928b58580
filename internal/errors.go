package internal

import "fmt"

// ErrorKind classifies which core operation a recovered panic came from.
type ErrorKind int

const (
	ErrKindWatchGetter ErrorKind = iota
	ErrKindWatchCallback
	ErrKindWatchCleanup
	ErrKindInvalidSource
	ErrKindWriteToReadonly
	ErrKindRecursiveUpdate
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindWatchGetter:
		return "watch-getter"
	case ErrKindWatchCallback:
		return "watch-callback"
	case ErrKindWatchCleanup:
		return "watch-cleanup"
	case ErrKindInvalidSource:
		return "invalid-source"
	case ErrKindWriteToReadonly:
		return "write-to-readonly"
	case ErrKindRecursiveUpdate:
		return "recursive-update"
	default:
		return "unknown"
	}
}

// ReactiveError wraps a user-callback panic with the kind of operation that
// triggered it, so a host error handler can decide how to react.
type ReactiveError struct {
	Kind  ErrorKind
	Cause error
}

func (e *ReactiveError) Error() string {
	return fmt.Sprintf("reactive: %s: %v", e.Kind, e.Cause)
}

func (e *ReactiveError) Unwrap() error { return e.Cause }

func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}

// ErrorHandler receives every error surfaced by HandleError. The zero value
// logs via the package logger; a host may override it (e.g. to report to
// Sentry) with SetErrorHandler.
var ErrorHandler func(kind ErrorKind, err error) = defaultErrorHandler

func defaultErrorHandler(kind ErrorKind, err error) {
	Logger.Printf("[reactive] %s error: %v", kind, err)
}

// HandleError runs fn, recovering any panic and routing it to ErrorHandler
// as a *ReactiveError of the given kind. The panic never propagates past
// this call, so one misbehaving effect cannot corrupt registry state for
// its siblings.
func HandleError(kind ErrorKind, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			ErrorHandler(kind, &ReactiveError{Kind: kind, Cause: asError(r)})
		}
	}()

	fn()
}

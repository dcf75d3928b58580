// Package sentryreport implements reactive.SetErrorHandler for reporting
// to Sentry. Ground: newbpydev-bubblyui's
// pkg/bubbly/observability/sentry_reporter.go (Hub + WithScope + functional
// options), cut down to the single "report with a kind tag" operation the
// core's ErrorHandler hook needs.
package sentryreport

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/riverrun/reactive"
)

// Reporter sends core errors to Sentry via a dedicated Hub.
type Reporter struct {
	hub *sentry.Hub
}

// Option configures sentry.ClientOptions during New.
type Option func(*sentry.ClientOptions)

// WithDebug enables Sentry's own debug logging.
func WithDebug(debug bool) Option {
	return func(o *sentry.ClientOptions) { o.Debug = debug }
}

// WithEnvironment tags every event with the given environment.
func WithEnvironment(env string) Option {
	return func(o *sentry.ClientOptions) { o.Environment = env }
}

// WithRelease tags every event with the given release identifier.
func WithRelease(release string) Option {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// New initializes the Sentry SDK with dsn (pass "" to disable sending,
// useful under test) and returns a Reporter ready for Install.
func New(dsn string, opts ...Option) (*Reporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, fmt.Errorf("sentryreport: sentry init: %w", err)
	}
	return &Reporter{hub: sentry.CurrentHub()}, nil
}

// Install registers r as the reactivity core's error handler, so every
// watch-getter/callback/cleanup panic and readonly-write violation is
// captured as a Sentry exception tagged with its ErrorKind.
func (r *Reporter) Install() {
	reactive.SetErrorHandler(r.report)
}

func (r *Reporter) report(kind reactive.ErrorKind, err error) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("reactive.error_kind", fmt.Sprint(kind))
		r.hub.CaptureException(err)
	})
}

// Flush blocks until pending events are sent or timeout elapses.
func (r *Reporter) Flush(timeout time.Duration) {
	r.hub.Flush(timeout)
}

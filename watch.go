package reactive

import (
	"github.com/riverrun/reactive/internal"
)

// WatchOptions configures Watch/WatchEffect (§4.7).
type WatchOptions struct {
	// Deep forces a full read of every nested property reachable from the
	// source, so the watcher fires on changes anywhere in the tree, not
	// just at the source's own top level.
	Deep bool

	// Immediate runs the callback once immediately, with a zero-value
	// oldVal, instead of waiting for the first change.
	Immediate bool

	// Flush selects which lane the rerun is queued on: "pre" (default),
	// "post", or "sync" (run inline, during the triggering write).
	Flush string

	OnTrack   func(internal.TrackEvent)
	OnTrigger func(internal.TriggerEvent)
}

const (
	flushPre  = "pre"
	flushPost = "post"
	flushSync = "sync"
)

// installFlush wires e's Scheduler according to lane — "sync" leaves it
// nil so the effect reruns inline during Trigger's Flush; "pre"/"post"
// hand the rerun to the external QueueJob/QueuePost collaborator (§6),
// whose default also just runs immediately absent a host render loop.
func installFlush(e *internal.Effect, lane string) {
	switch lane {
	case flushPost:
		e.Scheduler = func() {
			internal.QueuePost(internal.Job{Run: func() { internal.RunEffect(e) }}, nil)
		}
	case flushSync:
		// nil Scheduler: dispatch reruns e.fn directly.
	default: // "pre" and unset both default to the pre lane
		e.Scheduler = func() {
			internal.QueueJob(internal.Job{Pre: true, Run: func() { internal.RunEffect(e) }})
		}
	}
}

// Watch tracks whatever source reads and calls cb with the new and old
// value whenever that changes (§4.7). onCleanup, passed to cb, registers a
// function to run before the next invocation or on Stop.
func Watch[T any](source func() T, cb func(newVal, oldVal T, onCleanup func(func())), opts ...WatchOptions) *Runner {
	var o WatchOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	var (
		oldVal  T
		zeroVal T
		first   = true
	)

	var e *internal.Effect
	e = internal.NewEffect(func() {
		var newVal T
		internal.HandleError(internal.ErrKindWatchGetter, func() {
			newVal = source()
			// A reactive-proxy source's getter is forced deep regardless of
			// the Deep option (§4.6 getter table: "reactive source: with deep
			// forced to true"), since watching the proxy itself only makes
			// sense if nested writes are tracked too.
			if o.Deep || IsProxy(any(newVal)) {
				traverse(any(newVal), make(map[any]struct{}))
			}
		})

		if first {
			first = false
			oldVal = newVal
			if o.Immediate {
				runWatchCallback(cb, newVal, zeroVal)
			}
			return
		}

		// A reactive-proxy source behaves as if deep were always forced:
		// old and new are the same proxy reference (its fields mutate in
		// place), so equality alone would never fire — matching the "reactive
		// source: deep forced to true" rule (§4.7 getter table).
		forceTrigger := o.Deep || IsProxy(any(newVal)) || IsProxy(any(oldVal))
		if !forceTrigger && !hasChanged(any(oldVal), any(newVal)) {
			return
		}

		old := oldVal
		oldVal = newVal
		runWatchCallback(cb, newVal, old)
	})

	e.OnTrack = o.OnTrack
	e.OnTrigger = o.OnTrigger
	installFlush(e, o.Flush)

	internal.RunEffect(e)
	return &Runner{effect: e}
}

func runWatchCallback[T any](cb func(newVal, oldVal T, onCleanup func(func())), newVal, oldVal T) {
	internal.HandleError(internal.ErrKindWatchCallback, func() {
		cb(newVal, oldVal, func(fn func()) {
			OnCleanup(func() { internal.HandleError(internal.ErrKindWatchCleanup, fn) })
		})
	})
}

// WatchEffect immediately runs fn, tracking every dependency it reads, and
// reruns it whenever one of those changes — the source and the callback
// are the same function (§4.7).
func WatchEffect(fn func(onCleanup func(func())), opts ...WatchOptions) *Runner {
	var o WatchOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	e := internal.NewEffect(func() {
		internal.HandleError(internal.ErrKindWatchCallback, func() {
			fn(func(cleanup func()) {
				OnCleanup(func() { internal.HandleError(internal.ErrKindWatchCleanup, cleanup) })
			})
		})
	})
	e.OnTrack = o.OnTrack
	e.OnTrigger = o.OnTrigger
	installFlush(e, o.Flush)

	internal.RunEffect(e)
	return &Runner{effect: e}
}

// WatchPost is Watch with Flush forced to "post".
func WatchPost[T any](source func() T, cb func(newVal, oldVal T, onCleanup func(func())), opts ...WatchOptions) *Runner {
	o := firstOr(opts)
	o.Flush = flushPost
	return Watch(source, cb, o)
}

// WatchSync is Watch with Flush forced to "sync".
func WatchSync[T any](source func() T, cb func(newVal, oldVal T, onCleanup func(func())), opts ...WatchOptions) *Runner {
	o := firstOr(opts)
	o.Flush = flushSync
	return Watch(source, cb, o)
}

func firstOr(opts []WatchOptions) WatchOptions {
	if len(opts) > 0 {
		return opts[0]
	}
	return WatchOptions{}
}

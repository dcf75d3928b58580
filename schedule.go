package reactive

import "github.com/riverrun/reactive/internal"

// Batch coalesces every write fn performs into a single flush, even across
// nested Batch calls (§4.7 scheduler).
func Batch(fn func()) {
	internal.Batch(fn)
}

// OnCleanup registers fn against the currently running effect or watcher,
// to be invoked the next time that effect reruns or is stopped (§6).
func OnCleanup(fn func()) {
	internal.OnCleanup(fn)
}

// OnSettled registers fn to run once the current (or next) flush cycle —
// including any effects it chains into — fully drains.
func OnSettled(fn func()) {
	internal.OnSettled(fn)
}

// SetQueueJob and SetQueuePost let a host integrate the pre/post watcher
// flush lanes with its own render loop (§6). The default runs jobs
// immediately, which is correct when no host render loop is present.
func SetQueueJob(fn func(job internal.Job)) { internal.QueueJob = fn }
func SetQueuePost(fn func(job internal.Job, suspense any)) {
	internal.QueuePost = fn
}

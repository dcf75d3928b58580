package internal

// Runtime is the full reactive state for one goroutine: its active-effect
// stack, its owner-scope stack, its height-ordered effect heap, its batch
// depth, and its settled-callback queue. Every goroutine gets its own
// Runtime (see GetRuntime in runtime_default.go/runtime_wasm.go), which is
// the Go realization of §5's "single execution context that never
// preempts itself" — two goroutines running effects never interleave one
// another's tracking, because they're never looking at the same Runtime.
//
// The one process-wide, cross-goroutine structure is the target/key
// dependency registry (registry.go), guarded by its own mutex.
type Runtime struct {
	tracker      *Tracker
	currentOwner *Owner
	heap         *PriorityHeap
	batcher      *batcher
	scheduler    *clockScheduler
	settled      *settledQueue
}

func newRuntime() *Runtime {
	return &Runtime{
		tracker:   NewTracker(),
		heap:      NewHeap(),
		batcher:   &batcher{},
		scheduler: newClockScheduler(),
		settled:   &settledQueue{},
	}
}

// Schedule marks the Runtime dirty and flushes immediately unless a batch
// is in progress (§4.7 scheduler: "instead of triggering updates after
// each write" while batching).
func (r *Runtime) Schedule() {
	r.scheduler.Schedule()
	if !r.batcher.IsBatching() {
		r.Flush()
	}
}

// Flush drains the effect heap in height order until nothing remains
// scheduled, then runs any settled callbacks.
func (r *Runtime) Flush() {
	err := r.scheduler.Run(func() {
		r.heap.Drain(r.dispatch)
	})
	if err != nil {
		ErrorHandler(ErrKindRecursiveUpdate, err)
	}

	if !r.scheduler.running && !r.scheduler.scheduled {
		r.settled.runAndClear()
	}
}

// dispatch is what the height-ordered heap calls for each due effect: the
// re-entrancy guard from §4.1 ("must not be re-entered by its own trigger
// unless allowRecurse"), then scheduler-or-run.
func (r *Runtime) dispatch(e *Effect) {
	if e.running && !e.allowRecurse {
		return
	}

	if e.Scheduler != nil {
		e.Scheduler()
		return
	}

	RunEffect(e)
}

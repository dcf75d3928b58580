package internal

// Tracker holds the active-effect state for one goroutine's Runtime: which
// Effect is currently running (the "active effect" of §3/§4.1) and whether
// tracking is currently paused.
type Tracker struct {
	current      *Effect
	trackingOn   []bool // stack of tracking-enabled flags, for PauseTracking/ResetTracking
}

func NewTracker() *Tracker {
	return &Tracker{trackingOn: []bool{true}}
}

func (t *Tracker) isTracking() bool {
	return t.trackingOn[len(t.trackingOn)-1]
}

// PauseTracking suspends dependency tracking for the calling goroutine
// until the matching ResetTracking. Used around array-mutating methods
// that read length internally (§4.2, §5 "scoped acquisition").
func PauseTracking() {
	t := GetRuntime().tracker
	t.trackingOn = append(t.trackingOn, false)
}

// ResetTracking restores the tracking-enabled flag saved by the matching
// PauseTracking call.
func ResetTracking() {
	t := GetRuntime().tracker
	if len(t.trackingOn) > 1 {
		t.trackingOn = t.trackingOn[:len(t.trackingOn)-1]
	}
}

// CurrentEffect returns the effect currently running on the calling
// goroutine, or nil.
func CurrentEffect() *Effect {
	return GetRuntime().tracker.current
}

// Track records an edge from the currently active effect onto dep. A no-op
// if there is no active effect or tracking is paused (§4.1).
func Track(dep *Dep) {
	t := GetRuntime().tracker
	if t.current == nil || !t.isTracking() {
		return
	}
	t.current.track(dep)
}

// RunEffect executes e.fn with e installed as the active effect, pruning
// any deps it no longer reads (§4.2 run()).
func RunEffect(e *Effect) {
	if !e.active {
		e.fn()
		return
	}

	r := GetRuntime()

	if prev := r.tracker.current; prev != nil && prev.inParentChain(e) && !e.allowRecurse {
		return
	}

	prevEffect := r.tracker.current
	prevOwner := r.currentOwner
	e.parent = prevEffect
	r.tracker.current = e

	wasRunning := e.running
	e.running = true
	e.epoch++

	if onEffectRunRecorded != nil {
		onEffectRunRecorded()
	}

	owner := e.Owner(prevOwner)
	owner.Dispose() // clears the previous run's cleanups/children
	r.currentOwner = owner

	func() {
		defer func() {
			e.running = wasRunning
			r.tracker.current = prevEffect
			r.currentOwner = prevOwner
			e.parent = nil

			if rec := recover(); rec != nil {
				owner.Recover(rec)
			}
		}()
		e.fn()
	}()

	e.prune()

	if e.deferStop {
		e.deferStop = false
		StopEffect(e)
	}
}

// StopEffect detaches e from every dep it subscribes to and marks it
// inactive. Idempotent (§8 property 5); if called while e is running, the
// teardown is deferred until RunEffect finishes (§5 cancellation).
func StopEffect(e *Effect) {
	if !e.active {
		return
	}

	if e.running {
		e.deferStop = true
		return
	}

	e.ClearDeps()
	e.active = false

	if e.owner != nil {
		e.owner.Dispose()
	}

	if e.OnStop != nil {
		e.OnStop()
	}
}

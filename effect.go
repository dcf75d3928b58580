package reactive

import "github.com/riverrun/reactive/internal"

// EffectOptions configures Effect (§4.1).
type EffectOptions struct {
	// AllowRecurse permits fn to be re-entered by its own trigger
	// (normally suppressed to avoid infinite self-triggering loops).
	AllowRecurse bool

	// Scheduler, if set, is invoked instead of rerunning fn directly when
	// a dependency changes — fn runs eagerly once on creation regardless.
	Scheduler func()

	// OnStop is called once, when the returned Runner's Stop is invoked.
	OnStop func()

	// OnTrack/OnTrigger are debug hooks fired on every dependency read
	// and notification respectively.
	OnTrack   func(internal.TrackEvent)
	OnTrigger func(internal.TriggerEvent)
}

// Runner is the handle Effect returns: calling it reruns fn outside of any
// scheduler, and Stop permanently detaches it from its dependencies.
type Runner struct {
	effect *internal.Effect
}

// Run reruns the wrapped function directly, bypassing any Scheduler.
func (r *Runner) Run() { internal.RunEffect(r.effect) }

// Stop detaches the effect from every dependency it currently reads.
// Idempotent (§8 property 5).
func (r *Runner) Stop() { internal.StopEffect(r.effect) }

// Active reports whether the effect has not yet been stopped.
func (r *Runner) Active() bool { return r.effect.Active() }

// Effect runs fn immediately, tracking every Ref/reactive read it performs,
// and reruns it whenever one of those dependencies subsequently changes
// (§4.1). Returns a Runner for manual rerun/disposal.
func Effect(fn func(), opts ...EffectOptions) *Runner {
	e := internal.NewEffect(fn)

	if len(opts) > 0 {
		o := opts[0]
		e.AllowRecurse(o.AllowRecurse)
		if o.Scheduler != nil {
			e.Scheduler = o.Scheduler
		}
		e.OnStop = o.OnStop
		e.OnTrack = o.OnTrack
		e.OnTrigger = o.OnTrigger
	}

	internal.RunEffect(e)
	return &Runner{effect: e}
}

// Stop detaches runner from its dependencies. Equivalent to runner.Stop().
func Stop(runner *Runner) {
	runner.Stop()
}

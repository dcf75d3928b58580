package internal

// Dep is the set of effects depending on a single (target, key) pair, or on
// a Ref/Computed's own private slot. One Dep exists per key that has ever
// been read while an effect was active (§3: Dep).
type Dep struct {
	subs   []*Effect
	subSet map[*Effect]struct{}

	// producer is non-nil when this Dep belongs to a Computed (or any other
	// effect-backed value): it lets Track propagate height so computed
	// chains are notified in dependency order (§4.1 tie-break rule).
	producer *Effect

	version uint64
}

// NewDep creates an empty dependency set.
func NewDep() *Dep {
	return &Dep{subSet: make(map[*Effect]struct{})}
}

func (d *Dep) addSub(e *Effect) bool {
	if _, ok := d.subSet[e]; ok {
		return false
	}
	d.subSet[e] = struct{}{}
	d.subs = append(d.subs, e)
	return true
}

func (d *Dep) removeSub(e *Effect) {
	if _, ok := d.subSet[e]; !ok {
		return
	}
	delete(d.subSet, e)
	for i, s := range d.subs {
		if s == e {
			d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
			break
		}
	}
}

// Subs returns the effects currently subscribed to this dep, in the order
// they first subscribed.
func (d *Dep) Subs() []*Effect {
	return d.subs
}

// Bump increments the dep's version counter (§3 invariant 6: monotonic on
// every trigger that touches it).
func (d *Dep) Bump() {
	d.version++
}

func (d *Dep) Version() uint64 { return d.version }

// SetProducer records the Computed-owned effect that recomputes this dep's
// value, enabling height propagation in track (§4.1 tie-break rule).
func (d *Dep) SetProducer(e *Effect) { d.producer = e }

// TrackEvent/TriggerEvent are the payloads handed to the onTrack/onTrigger
// debug hooks (§4.1).
type TrackEvent struct {
	Effect *Effect
	Dep    *Dep
}

type TriggerEvent struct {
	Effect *Effect
	Dep    *Dep
}

// Effect represents a running or runnable computation: a plain user effect,
// a Computed's inner recomputation, or a Watcher's job (§3: Effect).
type Effect struct {
	fn func()

	Scheduler func()
	OnStop    func()
	OnTrack   func(TrackEvent)
	OnTrigger func(TriggerEvent)

	active       bool
	allowRecurse bool
	deferStop    bool
	running      bool
	inHeap       bool
	height       int

	parent *Effect
	owner  *Owner

	deps    map[*Dep]struct{}
	touched map[*Dep]uint64
	epoch   uint64
}

// Owner returns (creating if necessary) the disposal scope that this
// effect's body runs inside of.
func (e *Effect) Owner(parent *Owner) *Owner {
	if e.owner == nil {
		e.owner = NewOwner(parent)
	}
	return e.owner
}

// NewEffect wraps fn as a stoppable, trackable computation. It starts
// active but does not run until RunEffect is called.
func NewEffect(fn func()) *Effect {
	return &Effect{
		fn:      fn,
		active:  true,
		deps:    make(map[*Dep]struct{}),
		touched: make(map[*Dep]uint64),
	}
}

func (e *Effect) Active() bool { return e.active }

func (e *Effect) AllowRecurse(v bool) { e.allowRecurse = v }

func (e *Effect) Height() int { return e.height }

// track records that e read dep during its current run, creating the
// subscription on first read and propagating height from dep's producer.
func (e *Effect) track(dep *Dep) {
	if e.touched[dep] == e.epoch {
		return
	}
	e.touched[dep] = e.epoch

	if _, ok := e.deps[dep]; !ok {
		e.deps[dep] = struct{}{}
		dep.addSub(e)
	}

	if dep.producer != nil && dep.producer.height >= e.height {
		e.height = dep.producer.height + 1
	}

	if e.OnTrack != nil {
		e.OnTrack(TrackEvent{Effect: e, Dep: dep})
	}
}

// prune removes every dep not touched during the run that just finished —
// this is how dependencies are dropped when an effect stops reading them
// (§4.2).
func (e *Effect) prune() {
	for dep := range e.deps {
		if e.touched[dep] != e.epoch {
			delete(e.deps, dep)
			dep.removeSub(e)
		}
	}
}

// ClearDeps detaches e from every dep it currently subscribes to.
func (e *Effect) ClearDeps() {
	for dep := range e.deps {
		dep.removeSub(e)
	}
	e.deps = make(map[*Dep]struct{})
}

// inParentChain walks up e's parent chain looking for target — the
// re-entrancy guard from §4.2 ("walk up the parent chain").
func (e *Effect) inParentChain(target *Effect) bool {
	for cur := e; cur != nil; cur = cur.parent {
		if cur == target {
			return true
		}
	}
	return false
}

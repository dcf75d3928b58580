package reactive

import "github.com/riverrun/reactive/internal"

// Computed is a cached, lazily-recomputed derived value (§4.6): reading
// Get tracks the calling effect against it and, if any of its own
// dependencies changed since the last read, reruns the getter before
// returning.
type Computed[T any] struct {
	dep    *internal.Dep
	effect *internal.Effect

	getter func() T
	setter func(T)

	value        T
	dirty        bool
	nonCacheable bool
	eq           func(a, b T) bool
}

// NewComputed builds a read-only computed cell from getter. The getter
// runs inside its own effect so every Ref/reactive read it performs is
// tracked as one of the computed's own dependencies (§4.6).
func NewComputed[T any](getter func() T) *Computed[T] {
	c := &Computed[T]{dep: internal.NewDep(), getter: getter, dirty: true}
	c.effect = internal.NewEffect(func() {
		newVal := c.getter()
		if c.eq != nil && !c.dirty && c.eq(c.value, newVal) {
			return
		}
		c.value = newVal
	})
	c.effect.Scheduler = func() {
		if c.dirty {
			return
		}
		c.dirty = true
		c.dep.Bump()
		internal.TriggerDep(c.dep)
	}
	c.dep.SetProducer(c.effect)
	return c
}

// WritableComputed builds a computed cell that also accepts writes,
// forwarding them to setter (§4.6 writable computed).
func WritableComputed[T any](getter func() T, setter func(T)) *Computed[T] {
	c := NewComputed(getter)
	c.setter = setter
	return c
}

// NonCacheable disables caching: every Get reruns the getter regardless of
// whether its dependencies changed (§4.6 SSR mode, where a single render
// pass never revisits a computed and caching would only hold a stale
// snapshot across renders). It also deactivates the inner effect, so the
// getter's reads subscribe nothing to c itself. Returns c for chaining.
func (c *Computed[T]) NonCacheable() *Computed[T] {
	c.nonCacheable = true
	internal.StopEffect(c.effect)
	return c
}

// WithEquals installs an equality function consulted when the getter
// reruns while c is not dirty (a NonCacheable computed's repeated Gets): a
// result eq reports equal leaves the previous value in place. It does not
// stop dependents from being re-notified; the scheduler re-notifies them
// on every upstream change, before any recompute. Returns c for chaining.
func (c *Computed[T]) WithEquals(eq func(a, b T) bool) *Computed[T] {
	c.eq = eq
	return c
}

// Get returns the current value, recomputing it first if stale.
func (c *Computed[T]) Get() T {
	if c.nonCacheable || c.dirty {
		internal.RunEffect(c.effect)
		c.dirty = false
	}
	internal.Track(c.dep)
	return c.value
}

// Set writes through to the setter installed by WritableComputed. If c was
// built with NewComputed (read-only), the write is refused and reported to
// the error handler as ErrKindWriteToReadonly; Set itself does not panic
// (§4.6).
func (c *Computed[T]) Set(v T) {
	if c.setter == nil {
		internal.HandleError(internal.ErrKindWriteToReadonly, func() {
			panic("computed ref is readonly")
		})
		return
	}
	c.setter(v)
}

func (c *Computed[T]) isRef() {}

// Stop detaches the computed from its dependencies, after which upstream
// changes no longer mark it dirty and Get keeps returning the last computed
// value; a NonCacheable computed still reruns its getter, untracked, on
// every Get (§4.6 disposal, mirrors Ref's
// lack of one — a Computed has an effect underneath it that can leak
// subscriptions unless stopped explicitly).
func (c *Computed[T]) Stop() {
	internal.StopEffect(c.effect)
}

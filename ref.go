package reactive

import "github.com/riverrun/reactive/internal"

// Ref is a single-value reactive reference (§4.5): reading Value inside a
// tracking context records a dependency; writing it, when the new value
// differs, triggers every dependent.
type Ref[T any] struct {
	dep     *internal.Dep
	value   T
	shallow bool
	eq      func(a, b T) bool

	get func() T
	set func(T)
}

// NewRef builds a ref (§4.5). The stored value is kept exactly as given: a
// map, slice or struct pointer is not wrapped reactively, so NewRef differs
// from ShallowRef only in what IsShallow reports. Equality on write
// defaults to "always different" unless WithEquals installs a comparison —
// Go generics give no free `==` for an unconstrained T, so unlike Vue's
// Object.is this must be opted into explicitly.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{dep: internal.NewDep(), value: initial}
}

// ShallowRef builds a ref for which IsShallow reports true (§4.5 shallow
// flavor). Like NewRef, its value is never itself wrapped reactively —
// mutating it in place requires an explicit TriggerRef.
func ShallowRef[T any](initial T) *Ref[T] {
	return &Ref[T]{dep: internal.NewDep(), value: initial, shallow: true}
}

// Get reads the current value, tracking the calling effect against it.
func (r *Ref[T]) Get() T {
	internal.Track(r.dep)
	if r.get != nil {
		return r.get()
	}
	return r.value
}

// Set writes a new value, notifying dependents unless WithEquals says the
// value is unchanged.
func (r *Ref[T]) Set(v T) {
	if r.set != nil {
		r.set(v)
		return
	}
	if r.eq != nil && r.eq(r.value, v) {
		return
	}
	r.value = v
	r.dep.Bump()
	internal.TriggerDep(r.dep)
}

// WithEquals installs a custom equality function Set uses to decide
// whether a write is a no-op. Returns r for chaining.
func (r *Ref[T]) WithEquals(eq func(a, b T) bool) *Ref[T] {
	r.eq = eq
	return r
}

// IsShallow reports whether r is a ShallowRef.
func (r *Ref[T]) IsShallow() bool { return r.shallow }

// isRef lets IsRef/IsProxy-style helpers recognize *Ref[T] for any T via a
// single interface assertion rather than an exhaustive type switch.
func (r *Ref[T]) isRef() {}

type refLike interface{ isRef() }

// TriggerRef force-notifies r's dependents without changing its stored
// value — used after mutating a shallow ref's contents in place (§4.5).
func TriggerRef[T any](r *Ref[T]) {
	r.dep.Bump()
	internal.TriggerDep(r.dep)
}

// IsRef reports whether x is a *Ref[T] for some T.
func IsRef(x any) bool {
	_, ok := x.(refLike)
	return ok
}

// Unref returns v.Get() if v is a *Ref[T], or v itself otherwise — the Go
// analogue of Vue's automatic ref-unwrapping (§4.3) for call sites that
// accept either a plain T or a *Ref[T].
func Unref[T any](v any) T {
	if r, ok := v.(*Ref[T]); ok {
		return r.Get()
	}
	return v.(T)
}

// CustomRef builds a ref whose get/set behavior is supplied by the
// caller (§4.5 "custom ref" escape hatch, e.g. a debounced ref), given a
// track/trigger pair bound to a private dependency cell.
func CustomRef[T any](factory func(track func(), trigger func()) (get func() T, set func(T))) *Ref[T] {
	r := &Ref[T]{dep: internal.NewDep()}
	track := func() { internal.Track(r.dep) }
	trigger := func() {
		r.dep.Bump()
		internal.TriggerDep(r.dep)
	}
	r.get, r.set = factory(track, trigger)
	return r
}

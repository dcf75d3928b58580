package reactive

import (
	"reflect"

	"github.com/riverrun/reactive/internal"
)

// Reactive is the typed proxy flavor for a Go struct (§4.3): each exported
// field gets its own dep, keyed by field name, so reading one field of a
// large struct inside an effect only subscribes to that field changing.
//
// Unlike Object/Array, Reactive[T] doesn't need a dynamic any-keyed map —
// it wraps *T directly and uses reflection only to resolve a field name to
// its index (cached by fieldCache), matching how the pack's
// newbpydev-bubblyui wraps structs for its own form/state reactivity.
type Reactive[T any] struct {
	target *T
	key    any
	rtype  reflect.Type

	readonly       bool
	shallow        bool
	sourceReactive bool
}

// NewReactive wraps target (a pointer to a struct value) as a deep,
// mutable reactive struct. Wrapping the same target pointer twice returns
// the identical *Reactive[T] (§3 Proxy cache, §8 Testable Property 2).
func NewReactive[T any](target *T) *Reactive[T] {
	key, ok := identityKey("reactive", reflect.ValueOf(target))
	return cachedConstruct(key, ok, flavorMutableDeep, func() *Reactive[T] {
		r := &Reactive[T]{target: target, rtype: reflect.TypeOf(*target)}
		r.key = internal.WeakTarget(target)
		return r
	})
}

// ShallowReactive wraps target as a reactive struct whose field values are
// never auto-wrapped on Get.
func ShallowReactive[T any](target *T) *Reactive[T] {
	key, ok := identityKey("reactive", reflect.ValueOf(target))
	return cachedConstruct(key, ok, flavorMutableShallow, func() *Reactive[T] {
		r := &Reactive[T]{target: target, rtype: reflect.TypeOf(*target), shallow: true}
		r.key = internal.WeakTarget(target)
		return r
	})
}

// ReadonlyReactive builds a readonly view over r's same backing struct.
func ReadonlyReactive[T any](r *Reactive[T]) *Reactive[T] {
	flavor := cacheFlavorOf(true, r.shallow)
	key, ok := identityKey("reactive", reflect.ValueOf(r.target))
	return cachedConstruct(key, ok, flavor, func() *Reactive[T] {
		return &Reactive[T]{
			target:         r.target,
			key:            r.key,
			rtype:          r.rtype,
			readonly:       true,
			shallow:        r.shallow,
			sourceReactive: IsReactive(r),
		}
	})
}

// Get reads a field by name, tracking the calling effect against it.
// Panics (a programmer error, not a reactive-protocol error) if name isn't
// an exported field of T.
func (r *Reactive[T]) Get(name string) any {
	idx, ok := fields.indexOf(r.rtype, name)
	if !ok {
		panic("reactive: no such field " + name)
	}
	internal.TrackTarget(r.key, internal.OpGet, name)
	v := reflect.ValueOf(r.target).Elem().Field(idx).Interface()
	if r.shallow {
		return v
	}
	return autoWrap(v, r.readonly)
}

// Set writes a field by name, triggering that field's dep — but only if
// the value actually changed (NaN-aware), matching §4.3's "fire trigger
// only when the value actually changed."
func (r *Reactive[T]) Set(name string, value any) {
	if r.readonly {
		reportReadonlyWrite()
		return
	}
	idx, ok := fields.indexOf(r.rtype, name)
	if !ok {
		panic("reactive: no such field " + name)
	}
	fv := reflect.ValueOf(r.target).Elem().Field(idx)
	if !hasChanged(fv.Interface(), value) {
		return
	}
	fv.Set(reflect.ValueOf(value))
	internal.TriggerTarget(r.key, internal.OpSet, name, false)
}

// Fields returns T's field names, tracking the calling effect against the
// iterate-key sentinel.
func (r *Reactive[T]) Fields() []string {
	internal.TrackTarget(r.key, internal.OpGet, internal.IterateKey)
	return fields.names(r.rtype)
}

// Raw returns the pointer this Reactive[T] wraps, unwrapped of any
// tracking — the same value ToRaw(r) would produce.
func (r *Reactive[T]) Raw() *T { return r.target }

func (r *Reactive[T]) rawTarget() any          { return r.target }
func (r *Reactive[T]) sourceWasReactive() bool { return r.sourceReactive }
func (r *Reactive[T]) readonlyFlag() bool      { return r.readonly }
func (r *Reactive[T]) shallowFlag() bool       { return r.shallow }
func (r *Reactive[T]) regKey() any             { return r.key }

// traverseDeep reads every field, recursing into nested wrappers (§4.7
// deep watch).
func (r *Reactive[T]) traverseDeep(seen map[any]struct{}) {
	for _, name := range r.Fields() {
		traverse(r.Get(name), seen)
	}
}

package reactive

import (
	"reflect"

	"github.com/riverrun/reactive/internal"
)

// Array is the dynamic escape-hatch proxy flavor for a Go slice (§9,
// mirrors Object). Index reads/writes, Push/Pop, and length reads are all
// tracked/triggered through the registry, including the "integer-keyed
// write past old length" and "length write" cases from §4.1/§4.2.
type Array[T any] struct {
	data *[]T
	key  any

	readonly       bool
	shallow        bool
	sourceReactive bool
}

// NewArray wraps s as a deep, mutable reactive array. Wrapping the same
// underlying slice twice returns the identical *Array[T] (§3 Proxy cache,
// §8 Testable Property 2).
func NewArray[T any](s []T) *Array[T] {
	key, ok := identityKey("array", reflect.ValueOf(s))
	return cachedConstruct(key, ok, flavorMutableDeep, func() *Array[T] {
		a := &Array[T]{data: &s}
		a.key = internal.WeakTarget(a.data)
		return a
	})
}

// ShallowArray wraps s as a reactive array whose elements are never
// auto-wrapped on Get.
func ShallowArray[T any](s []T) *Array[T] {
	key, ok := identityKey("array", reflect.ValueOf(s))
	return cachedConstruct(key, ok, flavorMutableShallow, func() *Array[T] {
		a := &Array[T]{data: &s, shallow: true}
		a.key = internal.WeakTarget(a.data)
		return a
	})
}

// ReadonlyArray builds a readonly view over a's same backing slice.
func ReadonlyArray[T any](a *Array[T]) *Array[T] {
	flavor := cacheFlavorOf(true, a.shallow)
	key, ok := identityKey("array", reflect.ValueOf(*a.data))
	return cachedConstruct(key, ok, flavor, func() *Array[T] {
		return &Array[T]{
			data:           a.data,
			key:            a.key,
			readonly:       true,
			shallow:        a.shallow,
			sourceReactive: IsReactive(a),
		}
	})
}

// Len reports the current element count, tracked against the dedicated
// length key (§4.1: "every array read of .length tracks the length key").
func (a *Array[T]) Len() int {
	internal.TrackTarget(a.key, internal.OpGet, internal.LengthKey)
	return len(*a.data)
}

// Get reads index i, tracking the calling effect against that integer key.
func (a *Array[T]) Get(i int) T {
	internal.TrackTarget(a.key, internal.OpGet, i)
	v := (*a.data)[i]
	if a.shallow {
		return v
	}
	if wrapped, ok := any(autoWrapGeneric(v, a.readonly)).(T); ok {
		return wrapped
	}
	return v
}

// Set writes index i to value, triggering i's own dep — but only if the
// value actually changed (NaN-aware), matching §4.1's "fire trigger(SET)
// only when the value actually changed." Set only ever targets an
// in-bounds index (use Push to grow); it never touches the length dep.
func (a *Array[T]) Set(i int, value T) {
	if a.readonly {
		reportReadonlyWrite()
		return
	}
	if !hasChanged(any((*a.data)[i]), any(value)) {
		return
	}
	(*a.data)[i] = value
	internal.TriggerTarget(a.key, internal.OpSet, i, true)
}

// Push appends value, growing the array and triggering the length dep and
// every dep registered on an index past the array's old length (§4.2
// "push/splice trigger the length dep").
func (a *Array[T]) Push(value T) {
	if a.readonly {
		reportReadonlyWrite()
		return
	}
	internal.PauseTracking()
	newLen := len(*a.data) + 1
	*a.data = append(*a.data, value)
	internal.ResetTracking()

	// Both calls can affect the same length-tracking effect; Batch ensures
	// it only actually reruns once, since the heap dedups by effect within
	// a single flush (§4.7 scheduler: coalesce, don't double-dispatch).
	internal.Batch(func() {
		internal.TriggerTarget(a.key, internal.OpAdd, newLen-1, true)
		internal.TriggerLength(a.key, newLen)
	})
}

// Pop removes and returns the last element, or the zero value and false if
// empty.
func (a *Array[T]) Pop() (T, bool) {
	var zero T
	internal.PauseTracking()
	n := len(*a.data)
	if n == 0 {
		internal.ResetTracking()
		return zero, false
	}
	v := (*a.data)[n-1]
	if a.readonly {
		internal.ResetTracking()
		reportReadonlyWrite()
		return zero, false
	}
	*a.data = (*a.data)[:n-1]
	internal.ResetTracking()

	internal.Batch(func() {
		internal.TriggerTarget(a.key, internal.OpDelete, n-1, true)
		internal.TriggerLength(a.key, n-1)
	})
	return v, true
}

// Slice returns a non-reactive snapshot copy of the current elements,
// tracking the calling effect against the iterate-key sentinel — the Go
// analogue of iterating a reactive array in a for-of loop (§3 KeyMap).
func (a *Array[T]) Slice() []T {
	internal.TrackTarget(a.key, internal.OpGet, internal.IterateKey)
	out := make([]T, len(*a.data))
	copy(out, *a.data)
	return out
}

func (a *Array[T]) rawTarget() any          { return *a.data }
func (a *Array[T]) sourceWasReactive() bool { return a.sourceReactive }
func (a *Array[T]) readonlyFlag() bool      { return a.readonly }
func (a *Array[T]) shallowFlag() bool       { return a.shallow }
func (a *Array[T]) regKey() any             { return a.key }

// traverseDeep reads every index, recursing into nested wrappers (only
// possible when T is itself any, since only the any-element case gets
// auto-wrapped by Get).
func (a *Array[T]) traverseDeep(seen map[any]struct{}) {
	n := a.Len()
	for i := 0; i < n; i++ {
		traverse(a.Get(i), seen)
	}
}

// autoWrapGeneric is autoWrap's generic-friendly twin: it wraps v whenever
// v is a map[string]any or []any, but the wrapper only fits back into T
// when T is an interface type such as any (Array[any]); for any other T,
// Get discards the wrapper and returns v unchanged.
func autoWrapGeneric[T any](v T, readonly bool) any {
	return autoWrap(any(v), readonly)
}

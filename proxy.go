// Package reactive is a fine-grained reactivity runtime: it tracks reads
// of observable values made by running computations, records the
// dependency, and re-runs the computation when the value later changes.
//
// The tracking/trigger engine lives in the internal package; this package
// is the public surface over it — reactive proxies (Object, Array, Map,
// Set, Reactive[T]), reference cells (Ref), computed cells (Computed), and
// watchers (Watch/WatchEffect).
package reactive

import (
	"reflect"
	"weak"
)

// proxy is satisfied by every reactive wrapper type (Object, Array[T],
// Reactive[T], Map[K,V], Set[T]). IsReactive/IsReadonly/IsShallow/ToRaw
// all dispatch through it instead of a JS-style Proxy get-trap, per the
// "wrappers around typed entities" strategy from §9/SPEC_FULL §1.
type proxy interface {
	rawTarget() any
	sourceWasReactive() bool
	readonlyFlag() bool
	shallowFlag() bool
	regKey() any
}

// deepTraversable is implemented by every wrapper family so a deep Watch
// can force a read of every nested dep without knowing the wrapper's
// element type ahead of time (§4.7 "deep: forces a full read of every
// nested property").
type deepTraversable interface {
	traverseDeep(seen map[any]struct{})
}

// traverse walks v if it is a reactive wrapper, recursing into any nested
// wrapper values it reads, skipping anything already in seen.
func traverse(v any, seen map[any]struct{}) {
	p, ok := v.(proxy)
	if !ok {
		return
	}
	key := p.regKey()
	if _, done := seen[key]; done {
		return
	}
	seen[key] = struct{}{}
	if dt, ok := v.(deepTraversable); ok {
		dt.traverseDeep(seen)
	}
}

// IsProxy reports whether x is one of this package's reactive wrappers.
func IsProxy(x any) bool {
	_, ok := x.(proxy)
	return ok
}

// IsReactive reports whether x is a (possibly readonly-wrapped) reactive
// value. A readonly wrapper answers true only if it was itself built over
// an already-reactive source (§9 open question: IsReactive(Readonly(
// Reactive(x))) === true).
func IsReactive(x any) bool {
	p, ok := x.(proxy)
	if !ok {
		return false
	}
	if p.readonlyFlag() {
		return p.sourceWasReactive()
	}
	return true
}

// IsReadonly reports whether x refuses mutation.
func IsReadonly(x any) bool {
	p, ok := x.(proxy)
	return ok && p.readonlyFlag()
}

// IsShallow reports whether x only tracks one level deep.
func IsShallow(x any) bool {
	p, ok := x.(proxy)
	return ok && p.shallowFlag()
}

// ToRaw recursively unwraps x to the untouched source value behind any
// wrapper or proxy (§6). Non-proxy values are returned unchanged.
func ToRaw(x any) any {
	p, ok := x.(proxy)
	if !ok {
		return x
	}
	return ToRaw(p.rawTarget())
}

// hasChanged reports whether newVal differs from oldVal, with NaN-aware
// float64 equality: two NaNs count as unchanged, even though Go's own ==
// (and reflect.DeepEqual) would call them different. Used on every SET path
// so a same-value write is a no-op trigger-wise (§4.3/§4.4 "fire trigger
// only when the value actually changed").
func hasChanged(oldVal, newVal any) bool {
	if of, ok := oldVal.(float64); ok {
		if nf, ok2 := newVal.(float64); ok2 {
			if of != of && nf != nf {
				return false
			}
		}
	}
	return !reflect.DeepEqual(oldVal, newVal)
}

// skipSet marks values that MarkRaw has opted out of reactivity.
var skipSet = newWeakSkipSet()

// MarkRaw marks *x as opaque to Wrap and to nested auto-wrapping: a marked
// map[string]any or []any is returned unchanged by Wrap and by a deep Get.
// Returns x for chaining.
//
// For a map or slice T, identity is keyed off the underlying storage
// pointer (*x's own header), not x's address — x is typically a local
// variable (`MarkRaw(&m)`), and any later Wrap(m) call receives its own
// fresh copy of that header at a different address, so keying on x itself
// would never match (§3 target identity). Any other T is recorded by x's
// own address, but no constructor consults that record: NewReactive and
// the other typed constructors still wrap a marked value.
func MarkRaw[T any](x *T) *T {
	if key, ok := identityKey("markraw", reflect.ValueOf(any(*x))); ok {
		skipSet.markKey(key)
		return x
	}
	skipSet.mark(weak.Make(x))
	return x
}

// isMarkedRaw reports whether ptr was previously passed to MarkRaw.
func isMarkedRaw[T any](ptr *T) bool {
	if key, ok := identityKey("markraw", reflect.ValueOf(any(*ptr))); ok {
		return skipSet.isMarkedKey(key)
	}
	return skipSet.isMarked(weak.Make(ptr))
}

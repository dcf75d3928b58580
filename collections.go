package reactive

import (
	"reflect"

	"github.com/riverrun/reactive/internal"
)

// Map is the reactive wrapper over a Go map[K]V (§4.4 collection flavor):
// Get tracks the read key, Set triggers both that key's dep and the
// iterate-key dep (a Map's iteration includes its values, unlike a plain
// object's), matching §4.1's "SET on a Map: the iterate-key dep".
type Map[K comparable, V any] struct {
	data *map[K]V
	key  any

	readonly       bool
	shallow        bool
	sourceReactive bool
}

// NewMap wraps m (or a fresh empty map, if nil) as a deep, mutable
// reactive map. Wrapping the same underlying map twice returns the
// identical *Map[K, V] (§3 Proxy cache, §8 Testable Property 2).
func NewMap[K comparable, V any](m map[K]V) *Map[K, V] {
	if m == nil {
		m = make(map[K]V)
	}
	key, ok := identityKey("map", reflect.ValueOf(m))
	return cachedConstruct(key, ok, flavorMutableDeep, func() *Map[K, V] {
		mp := &Map[K, V]{data: &m}
		mp.key = internal.WeakTarget(mp.data)
		return mp
	})
}

// ShallowMap wraps m as a reactive map whose values are never auto-wrapped
// on Get.
func ShallowMap[K comparable, V any](m map[K]V) *Map[K, V] {
	if m == nil {
		m = make(map[K]V)
	}
	key, ok := identityKey("map", reflect.ValueOf(m))
	return cachedConstruct(key, ok, flavorMutableShallow, func() *Map[K, V] {
		mp := &Map[K, V]{data: &m, shallow: true}
		mp.key = internal.WeakTarget(mp.data)
		return mp
	})
}

// ReadonlyMap builds a readonly view over m's same backing map.
func ReadonlyMap[K comparable, V any](m *Map[K, V]) *Map[K, V] {
	flavor := cacheFlavorOf(true, m.shallow)
	key, ok := identityKey("map", reflect.ValueOf(*m.data))
	return cachedConstruct(key, ok, flavor, func() *Map[K, V] {
		return &Map[K, V]{
			data:           m.data,
			key:            m.key,
			readonly:       true,
			shallow:        m.shallow,
			sourceReactive: IsReactive(m),
		}
	})
}

// Get reads key, tracking the calling effect against it.
func (m *Map[K, V]) Get(key K) (V, bool) {
	internal.TrackTarget(m.key, internal.OpGet, key)
	v, ok := (*m.data)[key]
	if !ok || m.shallow {
		return v, ok
	}
	if wrapped, wok := any(autoWrap(any(v), m.readonly)).(V); wok {
		return wrapped, true
	}
	return v, true
}

// Has reports whether key is present, tracked the same way Get is.
func (m *Map[K, V]) Has(key K) bool {
	internal.TrackTarget(m.key, internal.OpHas, key)
	_, ok := (*m.data)[key]
	return ok
}

// Set writes key=value, triggering key's dep and the iterate-key dep
// (§4.1: a Map SET always fires the iterate-key dep too, since `for range`
// over a map observes value changes, unlike a plain object's `for key in`).
// A SET on an existing key is a no-op (NaN-aware) when the value didn't
// actually change; ADD always fires, since presence itself changed (§4.4).
func (m *Map[K, V]) Set(key K, value V) {
	if m.readonly {
		reportReadonlyWrite()
		return
	}
	old, existed := (*m.data)[key]
	if existed && !hasChanged(any(old), any(value)) {
		return
	}
	(*m.data)[key] = value
	internal.Batch(func() {
		if !existed {
			internal.TriggerTarget(m.key, internal.OpAdd, key, false)
		}
		internal.TriggerMapSet(m.key, key)
	})
}

// Delete removes key. A no-op if absent.
func (m *Map[K, V]) Delete(key K) {
	if m.readonly {
		reportReadonlyWrite()
		return
	}
	if _, ok := (*m.data)[key]; !ok {
		return
	}
	delete(*m.data, key)
	internal.TriggerTarget(m.key, internal.OpDelete, key, false)
}

// Clear removes every entry, triggering every dep registered on the map
// (§4.1 OpClear).
func (m *Map[K, V]) Clear() {
	if m.readonly {
		reportReadonlyWrite()
		return
	}
	if len(*m.data) == 0 {
		return
	}
	*m.data = make(map[K]V)
	internal.TriggerTarget(m.key, internal.OpClear, nil, false)
}

// Size reports the current entry count, tracked against the iterate-key
// sentinel.
func (m *Map[K, V]) Size() int {
	internal.TrackTarget(m.key, internal.OpGet, internal.IterateKey)
	return len(*m.data)
}

// Keys returns a snapshot of the map's current keys, tracked against the
// iterate-key sentinel.
func (m *Map[K, V]) Keys() []K {
	internal.TrackTarget(m.key, internal.OpGet, internal.IterateKey)
	out := make([]K, 0, len(*m.data))
	for k := range *m.data {
		out = append(out, k)
	}
	return out
}

func (m *Map[K, V]) rawTarget() any          { return *m.data }
func (m *Map[K, V]) sourceWasReactive() bool { return m.sourceReactive }
func (m *Map[K, V]) readonlyFlag() bool      { return m.readonly }
func (m *Map[K, V]) shallowFlag() bool       { return m.shallow }
func (m *Map[K, V]) regKey() any             { return m.key }

// traverseDeep reads every value, recursing into nested wrappers.
func (m *Map[K, V]) traverseDeep(seen map[any]struct{}) {
	for _, k := range m.Keys() {
		if v, ok := m.Get(k); ok {
			traverse(v, seen)
		}
	}
}

// Set is the reactive wrapper over a Go set (map[T]struct{}), mirroring
// Map's semantics for Add/Delete/Has rather than Get/Set (§4.4).
type Set[T comparable] struct {
	data *map[T]struct{}
	key  any

	readonly       bool
	sourceReactive bool
}

// NewSet wraps elems as a mutable reactive set. Unlike NewObject/NewArray/
// NewMap, there's no caller-owned backing map to dedupe against — elems is
// a value list, not a reference to existing storage — so every call
// allocates its own fresh set and the proxy cache doesn't apply here.
func NewSet[T comparable](elems ...T) *Set[T] {
	m := make(map[T]struct{}, len(elems))
	for _, e := range elems {
		m[e] = struct{}{}
	}
	s := &Set[T]{data: &m}
	s.key = internal.WeakTarget(s.data)
	return s
}

// ReadonlySet builds a readonly view over s's same backing set.
func ReadonlySet[T comparable](s *Set[T]) *Set[T] {
	key, ok := identityKey("set", reflect.ValueOf(*s.data))
	return cachedConstruct(key, ok, flavorReadonlyDeep, func() *Set[T] {
		return &Set[T]{
			data:           s.data,
			key:            s.key,
			readonly:       true,
			sourceReactive: IsReactive(s),
		}
	})
}

// Has reports whether v is a member, tracking the calling effect.
func (s *Set[T]) Has(v T) bool {
	internal.TrackTarget(s.key, internal.OpHas, v)
	_, ok := (*s.data)[v]
	return ok
}

// Add inserts v, triggering v's own dep (new membership) plus the
// iterate-key dep, mirroring Map's SET-fires-iterate-key rule.
func (s *Set[T]) Add(v T) {
	if s.readonly {
		reportReadonlyWrite()
		return
	}
	if _, ok := (*s.data)[v]; ok {
		return
	}
	(*s.data)[v] = struct{}{}
	internal.Batch(func() {
		internal.TriggerTarget(s.key, internal.OpAdd, v, false)
		internal.TriggerMapSet(s.key, v)
	})
}

// Delete removes v. A no-op if absent.
func (s *Set[T]) Delete(v T) {
	if s.readonly {
		reportReadonlyWrite()
		return
	}
	if _, ok := (*s.data)[v]; !ok {
		return
	}
	delete(*s.data, v)
	internal.TriggerTarget(s.key, internal.OpDelete, v, false)
}

// Size reports the current member count, tracked against the iterate-key
// sentinel.
func (s *Set[T]) Size() int {
	internal.TrackTarget(s.key, internal.OpGet, internal.IterateKey)
	return len(*s.data)
}

// Values returns a snapshot of the set's current members.
func (s *Set[T]) Values() []T {
	internal.TrackTarget(s.key, internal.OpGet, internal.IterateKey)
	out := make([]T, 0, len(*s.data))
	for v := range *s.data {
		out = append(out, v)
	}
	return out
}

func (s *Set[T]) rawTarget() any          { return *s.data }
func (s *Set[T]) sourceWasReactive() bool { return s.sourceReactive }
func (s *Set[T]) readonlyFlag() bool      { return s.readonly }
func (s *Set[T]) shallowFlag() bool       { return false }
func (s *Set[T]) regKey() any             { return s.key }

// traverseDeep reads every member — members are comparable scalars or
// weak-keyed pointers, never nested wrappers, so this only needs to force
// the reads themselves (via Values, which already tracks iterate-key).
func (s *Set[T]) traverseDeep(seen map[any]struct{}) {
	s.Values()
}

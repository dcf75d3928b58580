package reactive

import (
	"reflect"

	"github.com/riverrun/reactive/internal"
)

// Object is the dynamic escape-hatch proxy flavor for a string-keyed map
// (§9 "wrappers around typed entities": Go has no Proxy, so an arbitrary
// JS-style object becomes this explicit wrapper instead of a generic
// reactive(x) dispatch). Reads/writes of individual keys, plus
// has/delete/iteration, are all tracked and triggered through the
// (target, key) registry exactly as §4.1 describes.
type Object struct {
	data *map[string]any
	key  any

	readonly       bool
	shallow        bool
	sourceReactive bool
}

// NewObject wraps m (or a fresh empty map, if nil) as a deep, mutable
// reactive object. Wrapping the same underlying map twice, even via two
// separate local copies of its header, returns the identical *Object
// (§3 Proxy cache, §8 Testable Property 2).
func NewObject(m map[string]any) *Object {
	if m == nil {
		m = make(map[string]any)
	}
	key, ok := identityKey("object", reflect.ValueOf(m))
	return cachedConstruct(key, ok, flavorMutableDeep, func() *Object {
		o := &Object{data: &m}
		o.key = internal.WeakTarget(o.data)
		return o
	})
}

// ShallowObject wraps m as a reactive object whose own keys are tracked
// but whose values are never themselves auto-wrapped on Get (§4.3 shallow
// flavor).
func ShallowObject(m map[string]any) *Object {
	if m == nil {
		m = make(map[string]any)
	}
	key, ok := identityKey("object", reflect.ValueOf(m))
	return cachedConstruct(key, ok, flavorMutableShallow, func() *Object {
		o := &Object{data: &m, shallow: true}
		o.key = internal.WeakTarget(o.data)
		return o
	})
}

// ReadonlyObject builds a readonly view over o's same backing map: writes
// are refused and reported as ErrKindWriteToReadonly, and reads are still
// tracked, so effects re-run when the underlying mutable object changes
// elsewhere (§4.3 readonly flavor).
func ReadonlyObject(o *Object) *Object {
	flavor := cacheFlavorOf(true, o.shallow)
	key, ok := identityKey("object", reflect.ValueOf(*o.data))
	return cachedConstruct(key, ok, flavor, func() *Object {
		return &Object{
			data:           o.data,
			key:            o.key,
			readonly:       true,
			shallow:        o.shallow,
			sourceReactive: IsReactive(o),
		}
	})
}

// Get reads key, tracking the calling effect, and auto-wraps a nested
// map[string]any or []any value unless o is shallow (§4.3 deep flavor).
func (o *Object) Get(key string) any {
	internal.TrackTarget(o.key, internal.OpGet, key)
	v := (*o.data)[key]
	if o.shallow {
		return v
	}
	return autoWrap(v, o.readonly)
}

// Set writes key=value. A no-op (routed to ErrKindWriteToReadonly) if o is
// readonly. A SET on an existing key only fires its trigger when the value
// actually changed (NaN-aware); ADD always fires, since presence itself
// changed (§4.3).
func (o *Object) Set(key string, value any) {
	if o.readonly {
		reportReadonlyWrite()
		return
	}
	old, existed := (*o.data)[key]
	if existed && !hasChanged(old, value) {
		return
	}
	(*o.data)[key] = value
	if existed {
		internal.TriggerTarget(o.key, internal.OpSet, key, false)
	} else {
		internal.TriggerTarget(o.key, internal.OpAdd, key, false)
	}
}

// Delete removes key. A no-op if the key is absent, or if o is readonly.
func (o *Object) Delete(key string) {
	if o.readonly {
		reportReadonlyWrite()
		return
	}
	if _, ok := (*o.data)[key]; !ok {
		return
	}
	delete(*o.data, key)
	internal.TriggerTarget(o.key, internal.OpDelete, key, false)
}

// Has reports whether key is present, tracking the calling effect against
// key's own dep — the same dep Get uses — so adding, removing or changing
// the key's value later retriggers it.
func (o *Object) Has(key string) bool {
	internal.TrackTarget(o.key, internal.OpHas, key)
	_, ok := (*o.data)[key]
	return ok
}

// Keys returns the object's current keys, tracking the calling effect
// against the iterate-key sentinel (§3 KeyMap: ownKeys tracking).
func (o *Object) Keys() []string {
	internal.TrackTarget(o.key, internal.OpGet, internal.IterateKey)
	keys := make([]string, 0, len(*o.data))
	for k := range *o.data {
		keys = append(keys, k)
	}
	return keys
}

// Len reports the object's current key count, tracked the same way Keys
// is.
func (o *Object) Len() int {
	internal.TrackTarget(o.key, internal.OpGet, internal.IterateKey)
	return len(*o.data)
}

func (o *Object) rawTarget() any          { return *o.data }
func (o *Object) sourceWasReactive() bool { return o.sourceReactive }
func (o *Object) readonlyFlag() bool      { return o.readonly }
func (o *Object) shallowFlag() bool       { return o.shallow }
func (o *Object) regKey() any             { return o.key }

// traverseDeep reads every key, recursing into nested wrappers (§4.7 deep
// watch).
func (o *Object) traverseDeep(seen map[any]struct{}) {
	for _, k := range o.Keys() {
		traverse(o.Get(k), seen)
	}
}

func reportReadonlyWrite() {
	internal.HandleError(internal.ErrKindWriteToReadonly, func() {
		panic("reactive: write operation failed: target is readonly")
	})
}

// autoWrap wraps a nested map[string]any/[]any value reactively. Object,
// Reactive[T] (whose Get returns any), and Array[T]/Map[K,V] when T/V is
// any return the wrapper from their deep Get; for any other element type
// the wrapper cannot be returned as T/V, so Array[T]/Map[K,V] hand back the
// raw value. Set[T] never wraps its members. Other nested shapes (structs,
// typed maps/slices) are not wrapped (recorded in DESIGN.md).
func autoWrap(v any, readonly bool) any {
	if IsProxy(v) || isSkipped(v) {
		return v
	}
	switch t := v.(type) {
	case map[string]any:
		o := NewObject(t)
		if readonly {
			return ReadonlyObject(o)
		}
		return o
	case []any:
		a := NewArray(t)
		if readonly {
			return ReadonlyArray(a)
		}
		return a
	default:
		return v
	}
}

// isSkipped reports whether v — a raw map[string]any or []any value, as
// passed by autoWrap/Wrap — was previously opted out of reactivity via
// MarkRaw. Checked by the map/slice's own backing-storage identity rather
// than the address of whatever local variable happens to hold v's header,
// since the latter is a fresh copy on every call and would never match.
func isSkipped(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if key, ok := identityKey("markraw", rv); ok {
			return skipSet.isMarkedKey(key)
		}
	}
	return false
}

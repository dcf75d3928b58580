package internal

import (
	"sync"
)

// Op identifies the kind of proxy-trap operation that triggered a track or
// trigger call (§4.1).
type Op int

const (
	OpGet Op = iota
	OpHas
	OpSet
	OpAdd
	OpDelete
	OpClear
)

// iterateKeyType is the distinguished sentinel key used to track
// has/ownKeys/iteration reads, as opposed to reads of a concrete key.
type iterateKeyType struct{}

// IterateKey is the reserved key tracked by `has`, `ownKeys` and collection
// iteration (§3: KeyMap).
var IterateKey any = iterateKeyType{}

// LengthKey is the reserved key used for array length tracking.
const LengthKey = "length"

type keyMap struct {
	mu   sync.Mutex
	deps map[any]*Dep
}

func newKeyMap() *keyMap {
	return &keyMap{deps: make(map[any]*Dep)}
}

func (km *keyMap) depFor(key any, create bool) *Dep {
	km.mu.Lock()
	defer km.mu.Unlock()

	if d, ok := km.deps[key]; ok {
		return d
	}
	if !create {
		return nil
	}

	d := NewDep()
	km.deps[key] = d
	if onDepCreatedRecorded != nil {
		onDepCreatedRecorded()
	}
	return d
}

// registry is the process-wide target -> KeyMap map (§3: Target registry).
// It is the one deliberately cross-goroutine structure in the core; every
// other piece of mutable state belongs to a single goroutine's Runtime.
var registry = struct {
	mu sync.RWMutex
	m  map[any]*keyMap
}{m: make(map[any]*keyMap)}

func keyMapFor(target any, create bool) *keyMap {
	registry.mu.RLock()
	km, ok := registry.m[target]
	registry.mu.RUnlock()
	if ok || !create {
		return km
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	if km, ok = registry.m[target]; ok {
		return km
	}
	km = newKeyMap()
	registry.m[target] = km
	return km
}

// forgetTarget drops a target's entire KeyMap. Registered as a
// runtime.AddCleanup callback by every reactive wrapper constructor so the
// registry entry disappears once the target becomes unreachable — the Go
// realization of "weakness is semantic" (§3).
func forgetTarget(target any) {
	registry.mu.Lock()
	delete(registry.m, target)
	registry.mu.Unlock()
}

// TrackTarget records a dependency from the active effect onto
// (target, key). A no-op if no effect is active or tracking is paused
// (§4.1 track()).
func TrackTarget(target any, op Op, key any) {
	r := GetRuntime()
	if r.tracker.current == nil || !r.tracker.isTracking() {
		return
	}

	km := keyMapFor(target, true)
	dep := km.depFor(key, true)
	r.tracker.current.track(dep)
}

// TriggerTarget resolves the deps affected by a mutation and schedules
// every effect recorded on them (§4.1 trigger()). isArray makes an ADD or
// DELETE on an integer key also notify the length dep; the Map-SET
// iterate-key case is handled separately by TriggerMapSet.
func TriggerTarget(target any, op Op, key any, isArray bool) {
	km := keyMapFor(target, false)
	if km == nil {
		return
	}

	km.mu.Lock()
	var deps []*Dep

	switch {
	case op == OpClear:
		for _, d := range km.deps {
			deps = append(deps, d)
		}

	case op == OpAdd || op == OpDelete:
		if d, ok := km.deps[IterateKey]; ok {
			deps = append(deps, d)
		}
		if isArray {
			if _, ok := intKey(key); ok {
				if d, ok := km.deps[LengthKey]; ok {
					deps = append(deps, d)
				}
			}
		}
		if key != nil {
			if d, ok := km.deps[key]; ok {
				deps = append(deps, d)
			}
		}

	case op == OpSet:
		if key != nil {
			if d, ok := km.deps[key]; ok {
				deps = append(deps, d)
			}
		}

	default:
		if key != nil {
			if d, ok := km.deps[key]; ok {
				deps = append(deps, d)
			}
		}
	}
	km.mu.Unlock()

	dispatchDeps(deps)
}

// TriggerMapSet fires the iterate-key dep in addition to the key's own dep,
// matching "SET on a Map: the iterate-key dep (values changed)" (§4.1).
func TriggerMapSet(target any, key any) {
	km := keyMapFor(target, false)
	if km == nil {
		return
	}

	km.mu.Lock()
	var deps []*Dep
	if d, ok := km.deps[key]; ok {
		deps = append(deps, d)
	}
	if d, ok := km.deps[IterateKey]; ok {
		deps = append(deps, d)
	}
	km.mu.Unlock()

	dispatchDeps(deps)
}

func intKey(k any) (int, bool) {
	i, ok := k.(int)
	return i, ok
}

// TriggerLength is the array-length-write case from §4.1: notifies the
// length dep plus every integer-key dep >= the new length.
func TriggerLength(target any, newLength int) {
	km := keyMapFor(target, false)
	if km == nil {
		return
	}

	km.mu.Lock()
	var deps []*Dep
	if d, ok := km.deps[LengthKey]; ok {
		deps = append(deps, d)
	}
	for k, d := range km.deps {
		if idx, ok := intKey(k); ok && idx >= newLength {
			deps = append(deps, d)
		}
	}
	km.mu.Unlock()

	dispatchDeps(deps)
}

// RegistrySize reports the number of targets currently registered —
// wired into the optional metrics package as a gauge.
func RegistrySize() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.m)
}

// TriggerDep schedules every effect subscribed to a standalone dep that
// isn't registered under any (target, key) pair — the case for a Ref or
// Computed's own private dep (§4.5/§4.6).
func TriggerDep(dep *Dep) {
	dispatchDeps([]*Dep{dep})
}

// dispatchDeps flattens the given deps to a unique, insertion-ordered
// effect list, bumps each dep's version, fires onTrigger, and schedules
// every effect on the calling goroutine's Runtime.
func dispatchDeps(deps []*Dep) {
	if len(deps) == 0 {
		return
	}

	r := GetRuntime()

	seen := make(map[*Effect]struct{})
	var ordered []*Effect

	for _, dep := range deps {
		dep.Bump()
		for _, e := range dep.Subs() {
			if e.OnTrigger != nil {
				e.OnTrigger(TriggerEvent{Effect: e, Dep: dep})
			}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			ordered = append(ordered, e)
		}
	}

	if onTriggerRecorded != nil {
		onTriggerRecorded(len(ordered))
	}

	r.heap.InsertAll(ordered)
	r.Schedule()
}

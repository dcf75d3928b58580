package internal

import (
	"runtime"
	"weak"
)

// WeakTarget derives the registry key for a reactive wrapper's backing
// state pointer and arranges for its KeyMap to be forgotten once the
// state becomes unreachable.
//
// weak.Pointer (Go ≥1.24) is the stdlib building block for this; no
// third-party weak-map library exists anywhere in the retrieval pack, and
// reflect.Value.Pointer()+uintptr tricks would be both less safe (Go's GC
// makes no promise an address is stable forever, only weak.Pointer does)
// and not an improvement in dependency terms — so this is the one
// justified stdlib-only corner of the core (recorded in DESIGN.md).
func WeakTarget[T any](ptr *T) any {
	wp := weak.Make(ptr)
	runtime.AddCleanup(ptr, func(w weak.Pointer[T]) {
		forgetTarget(any(w))
	}, wp)
	return any(wp)
}

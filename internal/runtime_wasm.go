//go:build wasm

package internal

import "sync"

// wasm/js builds are single-threaded (no goroutine scheduler preemption
// across OS threads), so a single process-wide Runtime is both correct and
// avoids pulling in the goid/runtime.Stack-based goroutine id lookup that
// doesn't apply under js/wasm.
var (
	once          sync.Once
	globalRuntime *Runtime
)

func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = newRuntime()
	})
	return globalRuntime
}

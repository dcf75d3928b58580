//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the calling goroutine's Runtime, creating it on first
// use. Ground: teacher's internal/runtime_default.go — one Runtime per
// goroutine id, so concurrent goroutines never share an active-effect
// stack (§5).
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := newRuntime()
	runtimes.Store(gid, r)
	return r
}

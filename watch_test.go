package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatch(t *testing.T) {
	t.Run("fires with new and old value", func(t *testing.T) {
		type call struct{ newVal, oldVal int }
		var calls []call

		count := NewRef(0)
		WatchSync(count.Get, func(newVal, oldVal int, onCleanup func(func())) {
			calls = append(calls, call{newVal, oldVal})
		})

		count.Set(1)
		count.Set(2)

		assert.Equal(t, []call{{1, 0}, {2, 1}}, calls)
	})

	t.Run("Immediate runs once with zero oldVal", func(t *testing.T) {
		var calls int
		count := NewRef(5)
		WatchSync(count.Get, func(newVal, oldVal int, onCleanup func(func())) {
			calls++
			assert.Equal(t, 5, newVal)
			assert.Equal(t, 0, oldVal)
		}, WatchOptions{Immediate: true})

		assert.Equal(t, 1, calls)
	})

	t.Run("onCleanup runs before the next callback", func(t *testing.T) {
		var log []string
		count := NewRef(0)

		WatchSync(count.Get, func(newVal, oldVal int, onCleanup func(func())) {
			log = append(log, "run")
			onCleanup(func() { log = append(log, "cleanup") })
		})

		count.Set(1)
		count.Set(2)

		assert.Equal(t, []string{"run", "cleanup", "run"}, log)
	})

	t.Run("Stop detaches the watcher", func(t *testing.T) {
		var calls int
		count := NewRef(0)
		runner := WatchSync(count.Get, func(newVal, oldVal int, onCleanup func(func())) {
			calls++
		})

		runner.Stop()
		count.Set(1)
		assert.Equal(t, 0, calls)
	})

	t.Run("a panicking getter is routed as ErrKindWatchGetter", func(t *testing.T) {
		var kind ErrorKind
		defer captureHandler(&kind)()

		count := NewRef(0)
		var calls int
		WatchSync(func() int {
			if count.Get() == 1 {
				panic("boom")
			}
			return count.Get()
		}, func(newVal, oldVal int, onCleanup func(func())) {
			calls++
		})

		count.Set(1)
		assert.Equal(t, ErrKindWatchGetter, kind)
		assert.Equal(t, 0, calls)
	})

	t.Run("a panicking callback is routed as ErrKindWatchCallback", func(t *testing.T) {
		var kind ErrorKind
		defer captureHandler(&kind)()

		count := NewRef(0)
		WatchSync(count.Get, func(newVal, oldVal int, onCleanup func(func())) {
			panic("boom")
		})

		count.Set(1)
		assert.Equal(t, ErrKindWatchCallback, kind)
	})

	t.Run("Deep fires on a nested field change even though old and new are the same proxy", func(t *testing.T) {
		var calls int
		var lastNew, lastOld *Object

		src := NewObject(map[string]any{"x": map[string]any{"y": 1}})
		WatchSync(func() *Object { return src }, func(newVal, oldVal *Object, onCleanup func(func())) {
			calls++
			lastNew, lastOld = newVal, oldVal
		}, WatchOptions{Deep: true})

		nested := src.Get("x").(*Object)
		nested.Set("y", 2)

		assert.Equal(t, 1, calls)
		assert.Same(t, src, lastNew)
		assert.Same(t, src, lastOld)
	})

	t.Run("a reactive-proxy source is watched deeply even without the Deep option", func(t *testing.T) {
		// §4.6: a reactive source's getter is forced with deep true, so
		// watching the proxy directly already observes nested writes.
		var calls int

		src := NewObject(map[string]any{"x": map[string]any{"y": 1}})
		WatchSync(func() *Object { return src }, func(newVal, oldVal *Object, onCleanup func(func())) {
			calls++
		})

		nested := src.Get("x").(*Object)
		nested.Set("y", 2)

		assert.Equal(t, 1, calls)
	})

	t.Run("a plain ref without Deep does not force-trigger on a same-value write", func(t *testing.T) {
		var calls int
		count := NewRef(0)
		WatchSync(count.Get, func(newVal, oldVal int, onCleanup func(func())) {
			calls++
		})

		count.Set(0)
		assert.Equal(t, 0, calls)
	})
}

func TestWatchEffect(t *testing.T) {
	t.Run("tracks whatever it reads and reruns on change", func(t *testing.T) {
		var log []int
		count := NewRef(0)

		WatchEffect(func(onCleanup func(func())) {
			log = append(log, count.Get())
		})

		count.Set(1)
		assert.Equal(t, []int{0, 1}, log)
	})
}

func TestOnSettled(t *testing.T) {
	t.Run("waits for chained effects", func(t *testing.T) {
		var log []string

		a := NewRef(0)
		b := NewRef(0)

		Effect(func() {
			if a.Get() > 0 {
				b.Set(a.Get())
			}
		})

		Batch(func() {
			a.Set(1)
			OnSettled(func() { log = append(log, "settled") })
		})

		assert.Equal(t, []string{"settled"}, log)
		assert.Equal(t, 1, b.Get())
	})
}

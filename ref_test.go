package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRef(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewRef(0)
		assert.Equal(t, 0, count.Get())

		count.Set(10)
		assert.Equal(t, 10, count.Get())
	})

	t.Run("effect reruns on write", func(t *testing.T) {
		var log []int
		count := NewRef(0)

		Effect(func() {
			log = append(log, count.Get())
		})

		count.Set(1)
		count.Set(2)

		assert.Equal(t, []int{0, 1, 2}, log)
	})

	t.Run("WithEquals suppresses no-op writes", func(t *testing.T) {
		var runs int
		count := NewRef(0).WithEquals(func(a, b int) bool { return a == b })

		Effect(func() {
			count.Get()
			runs++
		})

		count.Set(0)
		count.Set(0)
		assert.Equal(t, 1, runs)

		count.Set(1)
		assert.Equal(t, 2, runs)
	})

	t.Run("IsRef/Unref", func(t *testing.T) {
		r := NewRef("hello")
		assert.True(t, IsRef(r))
		assert.False(t, IsRef("hello"))
		assert.Equal(t, "hello", Unref[string](r))
		assert.Equal(t, "plain", Unref[string]("plain"))
	})

	t.Run("ShallowRef requires TriggerRef after in-place mutation", func(t *testing.T) {
		var runs int
		r := ShallowRef([]int{1, 2, 3})
		assert.True(t, r.IsShallow())

		Effect(func() {
			r.Get()
			runs++
		})
		assert.Equal(t, 1, runs)

		TriggerRef(r)
		assert.Equal(t, 2, runs)
	})

	t.Run("CustomRef controls get/set", func(t *testing.T) {
		var stored string
		r := CustomRef(func(track, trigger func()) (func() string, func(string)) {
			return func() string {
					track()
					return stored
				}, func(v string) {
					stored = v
					trigger()
				}
		})

		var runs int
		Effect(func() {
			r.Get()
			runs++
		})

		r.Set("a")
		assert.Equal(t, 2, runs)
		assert.Equal(t, "a", r.Get())
	})

	t.Run("Stop detaches the effect", func(t *testing.T) {
		var runs int
		count := NewRef(0)

		runner := Effect(func() {
			count.Get()
			runs++
		})

		runner.Stop()
		count.Set(1)
		assert.Equal(t, 1, runs)
		assert.False(t, runner.Active())
	})
}

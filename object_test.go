package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObject(t *testing.T) {
	t.Run("get/set tracked per key", func(t *testing.T) {
		var nameRuns, ageRuns int
		o := NewObject(map[string]any{"name": "Ann", "age": 30})

		Effect(func() {
			o.Get("name")
			nameRuns++
		})
		Effect(func() {
			o.Get("age")
			ageRuns++
		})

		o.Set("name", "Bea")
		assert.Equal(t, 2, nameRuns)
		assert.Equal(t, 1, ageRuns)
	})

	t.Run("Has reruns on add and on a value change of the key", func(t *testing.T) {
		var runs int
		o := NewObject(map[string]any{})

		Effect(func() {
			o.Has("flag")
			runs++
		})

		o.Set("flag", true)
		assert.Equal(t, 2, runs)

		o.Set("flag", false)
		assert.Equal(t, 3, runs) // SET on an existing key still fires the key's own dep
	})

	t.Run("Delete triggers Has on the deleted key", func(t *testing.T) {
		var runs int
		o := NewObject(map[string]any{"k": 1})

		Effect(func() {
			o.Has("k")
			runs++
		})

		o.Delete("k")
		assert.Equal(t, 2, runs)
	})

	t.Run("ReadonlyObject refuses writes", func(t *testing.T) {
		o := NewObject(map[string]any{"k": 1})
		ro := ReadonlyObject(o)

		assert.True(t, IsReadonly(ro))
		assert.True(t, IsReactive(ro)) // source was already reactive

		ro.Set("k", 2)
		assert.Equal(t, 1, ro.Get("k"))
	})

	t.Run("Readonly over a raw value is not reactive", func(t *testing.T) {
		ro := Readonly(map[string]any{"k": 1})
		assert.True(t, IsReadonly(ro))
		assert.False(t, IsReactive(ro))
	})

	t.Run("nested maps auto-wrap on Get", func(t *testing.T) {
		o := NewObject(map[string]any{
			"child": map[string]any{"v": 1},
		})

		child, ok := o.Get("child").(*Object)
		assert.True(t, ok)
		assert.Equal(t, 1, child.Get("v"))
	})

	t.Run("ToRaw unwraps to the original map", func(t *testing.T) {
		m := map[string]any{"k": 1}
		o := NewObject(m)
		assert.Equal(t, m, ToRaw(o))
	})

	t.Run("Wrap is idempotent on an existing proxy", func(t *testing.T) {
		o := NewObject(map[string]any{})
		assert.Same(t, o, Wrap(o))
	})
}

func TestArray(t *testing.T) {
	t.Run("Push triggers length and stores the new element", func(t *testing.T) {
		var lenRuns int
		a := NewArray([]int{1, 2, 3})

		Effect(func() {
			a.Len()
			lenRuns++
		})

		a.Push(4)
		assert.Equal(t, 2, lenRuns)
		assert.Equal(t, 4, a.Len())
		assert.Equal(t, 4, a.Get(3))
	})

	t.Run("Set on an index triggers only that index", func(t *testing.T) {
		var idx0Runs, idx1Runs int
		a := NewArray([]string{"a", "b"})

		Effect(func() {
			a.Get(0)
			idx0Runs++
		})
		Effect(func() {
			a.Get(1)
			idx1Runs++
		})

		a.Set(0, "z")
		assert.Equal(t, 2, idx0Runs)
		assert.Equal(t, 1, idx1Runs)
	})

	t.Run("Pop shrinks and returns the last element", func(t *testing.T) {
		a := NewArray([]int{1, 2, 3})
		v, ok := a.Pop()
		assert.True(t, ok)
		assert.Equal(t, 3, v)
		assert.Equal(t, 2, a.Len())
	})
}

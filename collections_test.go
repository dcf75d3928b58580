package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	t.Run("Get/Set track and trigger per key", func(t *testing.T) {
		m := NewMap(map[string]int{"a": 1})
		var runs int

		Effect(func() {
			m.Get("a")
			runs++
		})
		assert.Equal(t, 1, runs)

		m.Set("b", 2)
		assert.Equal(t, 1, runs)

		m.Set("a", 9)
		assert.Equal(t, 2, runs)
		v, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 9, v)
	})

	t.Run("Set on a Map also fires the iterate-key dep", func(t *testing.T) {
		m := NewMap(map[string]int{"a": 1})
		var sizeRuns int

		Effect(func() {
			m.Size()
			sizeRuns++
		})
		assert.Equal(t, 1, sizeRuns)

		m.Set("a", 2)
		assert.Equal(t, 2, sizeRuns)
	})

	t.Run("Delete triggers the deleted key", func(t *testing.T) {
		m := NewMap(map[string]int{"a": 1})
		var runs int

		Effect(func() {
			m.Has("a")
			runs++
		})
		assert.Equal(t, 1, runs)

		m.Delete("a")
		assert.Equal(t, 2, runs)
		assert.False(t, m.Has("a"))
	})

	t.Run("Clear triggers every registered dep", func(t *testing.T) {
		m := NewMap(map[string]int{"a": 1, "b": 2})
		var aRuns, bRuns int

		Effect(func() { m.Get("a"); aRuns++ })
		Effect(func() { m.Get("b"); bRuns++ })

		m.Clear()
		assert.Equal(t, 2, aRuns)
		assert.Equal(t, 2, bRuns)
		assert.Equal(t, 0, m.Size())
	})

	t.Run("ReadonlyMap refuses writes", func(t *testing.T) {
		m := NewMap(map[string]int{"a": 1})
		ro := ReadonlyMap(m)

		var kind ErrorKind
		defer captureHandler(&kind)()

		ro.Set("a", 2)
		assert.Equal(t, ErrKindWriteToReadonly, kind)
		v, _ := m.Get("a")
		assert.Equal(t, 1, v)
	})

	t.Run("nested maps auto-wrap on Get", func(t *testing.T) {
		m := NewMap(map[string]any{"inner": map[string]any{"x": 1}})
		v, ok := m.Get("inner")
		assert.True(t, ok)
		_, wrapped := v.(*Object)
		assert.True(t, wrapped)
	})
}

func TestSet(t *testing.T) {
	t.Run("Add/Has/Delete track and trigger per member", func(t *testing.T) {
		s := NewSet(1, 2)
		var runs int

		Effect(func() {
			s.Has(1)
			runs++
		})
		assert.Equal(t, 1, runs)

		s.Add(3)
		assert.Equal(t, 1, runs)

		s.Delete(1)
		assert.Equal(t, 2, runs)
		assert.False(t, s.Has(1))
		assert.ElementsMatch(t, []int{2, 3}, s.Values())
	})

	t.Run("Add is a no-op for an existing member", func(t *testing.T) {
		s := NewSet(1)
		var sizeRuns int

		Effect(func() { s.Size(); sizeRuns++ })
		assert.Equal(t, 1, sizeRuns)

		s.Add(1)
		assert.Equal(t, 1, sizeRuns)
		assert.Equal(t, 1, s.Size())
	})

	t.Run("ReadonlySet refuses writes", func(t *testing.T) {
		s := NewSet(1)
		ro := ReadonlySet(s)

		var kind ErrorKind
		defer captureHandler(&kind)()

		ro.Add(2)
		assert.Equal(t, ErrKindWriteToReadonly, kind)
		assert.False(t, s.Has(2))
	})
}

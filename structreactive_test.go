package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct {
	X int
	Y int
}

func TestReactiveStruct(t *testing.T) {
	t.Run("Get/Set track and trigger per field", func(t *testing.T) {
		p := NewReactive(&point{X: 1, Y: 2})
		var xRuns int

		Effect(func() {
			p.Get("X")
			xRuns++
		})
		assert.Equal(t, 1, xRuns)

		p.Set("Y", 9)
		assert.Equal(t, 1, xRuns)

		p.Set("X", 5)
		assert.Equal(t, 2, xRuns)
		assert.Equal(t, 5, p.Get("X"))
	})

	t.Run("Get/Set panic on an unknown field name", func(t *testing.T) {
		p := NewReactive(&point{})
		assert.Panics(t, func() { p.Get("Z") })
		assert.Panics(t, func() { p.Set("Z", 1) })
	})

	t.Run("Fields lists every exported field name", func(t *testing.T) {
		p := NewReactive(&point{X: 1, Y: 2})
		assert.ElementsMatch(t, []string{"X", "Y"}, p.Fields())

		// A struct's shape is fixed at compile time, so a field write (OpSet)
		// never touches the iterate-key dep Fields() tracks — unlike Object's
		// dynamic keys, there's no add/delete to observe here.
		var runs int
		Effect(func() {
			_ = p.Fields()
			runs++
		})
		p.Set("X", 9)
		assert.Equal(t, 1, runs)
	})

	t.Run("ReadonlyReactive refuses writes", func(t *testing.T) {
		p := NewReactive(&point{X: 1})
		ro := ReadonlyReactive(p)

		var kind ErrorKind
		defer captureHandler(&kind)()

		ro.Set("X", 2)
		assert.Equal(t, ErrKindWriteToReadonly, kind)
		assert.Equal(t, 1, p.Get("X"))
	})

	t.Run("Raw returns the wrapped pointer untracked", func(t *testing.T) {
		target := &point{X: 1, Y: 2}
		p := NewReactive(target)
		assert.Same(t, target, p.Raw())
	})

	t.Run("ShallowReactive skips auto-wrap on nested maps", func(t *testing.T) {
		type box struct{ Data map[string]any }
		b := NewReactive(&box{Data: map[string]any{"a": 1}})
		_, wrapped := b.Get("Data").(*Object)
		assert.True(t, wrapped)

		sb := ShallowReactive(&box{Data: map[string]any{"a": 1}})
		assert.True(t, IsShallow(sb))
		_, rawMap := sb.Get("Data").(map[string]any)
		assert.True(t, rawMap)
	})
}

package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("caches until a dependency changes", func(t *testing.T) {
		var recomputes int
		count := NewRef(1)

		doubled := NewComputed(func() int {
			recomputes++
			return count.Get() * 2
		})

		assert.Equal(t, 2, doubled.Get())
		assert.Equal(t, 2, doubled.Get())
		assert.Equal(t, 1, recomputes)

		count.Set(2)
		assert.Equal(t, 4, doubled.Get())
		assert.Equal(t, 2, recomputes)
	})

	t.Run("glitch-free chained computeds", func(t *testing.T) {
		a := NewRef(1)
		b := NewComputed(func() int { return a.Get() * 2 })
		c := NewComputed(func() int { return a.Get() + b.Get() })

		assert.Equal(t, 3, c.Get())

		a.Set(2)
		assert.Equal(t, 6, c.Get())
	})

	t.Run("writable computed forwards Set", func(t *testing.T) {
		first := NewRef("John")
		last := NewRef("Smith")

		full := WritableComputed(
			func() string { return first.Get() + " " + last.Get() },
			func(v string) { first.Set(v) },
		)

		assert.Equal(t, "John Smith", full.Get())
		full.Set("Jane")
		assert.Equal(t, "Jane", first.Get())
	})

	t.Run("read-only computed panics on write, routed through HandleError", func(t *testing.T) {
		var gotKind ErrorKind
		prevHandler := captureHandler(&gotKind)
		defer prevHandler()

		ro := NewComputed(func() int { return 1 })
		ro.Set(2)

		assert.Equal(t, ErrKindWriteToReadonly, gotKind)
	})

	t.Run("NonCacheable always reruns the getter", func(t *testing.T) {
		var recomputes int
		c := NewComputed(func() int {
			recomputes++
			return recomputes
		}).NonCacheable()

		assert.Equal(t, 1, c.Get())
		assert.Equal(t, 2, c.Get())
	})
}

// captureHandler installs an ErrorHandler that just records the last kind
// seen, returning a func that restores the default handler.
func captureHandler(kind *ErrorKind) func() {
	SetErrorHandler(func(k ErrorKind, err error) {
		*kind = k
	})
	return func() {
		SetErrorHandler(func(k ErrorKind, err error) {})
	}
}

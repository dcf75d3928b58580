package internal

// batcher coalesces multiple writes into a single flush cycle. Nested
// batches only flush once the outermost batch exits (§4.7 scheduler).
type batcher struct {
	depth int
}

func (b *batcher) IsBatching() bool { return b.depth > 0 }

// Batch runs fn with batching engaged on the calling goroutine's Runtime,
// then flushes once, even if fn nests further batches.
func Batch(fn func()) {
	r := GetRuntime()
	r.batcher.depth++

	defer func() {
		r.batcher.depth--
		if r.batcher.depth == 0 {
			r.Flush()
		}
	}()

	fn()
}

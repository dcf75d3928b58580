package internal

// PriorityHeap buckets effects by height and drains them in ascending
// height order, so a Computed's inner effect always runs before anything
// that reads the Computed (§4.1 tie-break rule). Adapted from the teacher's
// bucket-queue design: a height is rarely more than a handful of levels
// deep, so a slice of buckets beats a real heap.
type PriorityHeap struct {
	max int

	heads []*heapNode // index by height, FIFO head
	tails []*heapNode // index by height, FIFO tail

	lookup map[*Effect]*heapNode
}

type heapNode struct {
	effect     *Effect
	prev, next *heapNode
}

func NewHeap() *PriorityHeap {
	return &PriorityHeap{
		heads:  make([]*heapNode, 256),
		tails:  make([]*heapNode, 256),
		lookup: make(map[*Effect]*heapNode),
	}
}

func (h *PriorityHeap) growTo(height int) {
	if height < len(h.heads) {
		return
	}
	size := height*2 + 1
	nextHeads := make([]*heapNode, size)
	nextTails := make([]*heapNode, size)
	copy(nextHeads, h.heads)
	copy(nextTails, h.tails)
	h.heads = nextHeads
	h.tails = nextTails
}

// Insert adds e to the tail of its height bucket unless it is already
// present, so effects subscribed to the same dep at the same height drain
// in the order they were scheduled (§4.1/§5 FIFO-within-a-height).
func (h *PriorityHeap) Insert(e *Effect) {
	if e.inHeap {
		return
	}
	e.inHeap = true

	height := e.Height()
	h.growTo(height)

	node := &heapNode{effect: e}
	if tail := h.tails[height]; tail != nil {
		tail.next = node
		node.prev = tail
	} else {
		h.heads[height] = node
	}
	h.tails[height] = node
	h.lookup[e] = node

	if height > h.max {
		h.max = height
	}
}

// InsertAll inserts every effect in effs.
func (h *PriorityHeap) InsertAll(effs []*Effect) {
	for _, e := range effs {
		h.Insert(e)
	}
}

// Remove evicts e from the heap if present.
func (h *PriorityHeap) Remove(e *Effect) {
	if !e.inHeap {
		return
	}
	e.inHeap = false
	node, ok := h.lookup[e]
	if !ok {
		return
	}
	delete(h.lookup, e)

	height := e.Height()
	h.growTo(height)

	if node.prev != nil {
		node.prev.next = node.next
	} else {
		h.heads[height] = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		h.tails[height] = node.prev
	}
}

// Drain processes every queued effect in ascending height order. process
// may insert new effects (e.g. a computed recompute re-triggers its own
// subscribers): those at or above the height being drained are picked up
// within the same drain; one inserted below it stays queued, h.max keeps
// covering its bucket, and the scheduler's next pass drains it (every
// insert comes from dispatchDeps, which marks the runtime scheduled).
func (h *PriorityHeap) Drain(process func(*Effect)) {
	for height := 0; height <= h.max; height++ {
		h.growTo(height)
		for h.heads[height] != nil {
			e := h.heads[height].effect
			h.Remove(e)
			process(e)

			if e.Height() > height {
				// process() raised e's height (e.g. it gained a new,
				// deeper dependency mid-drain); e was removed above and
				// is not re-queued here.
			}
		}
	}

	top := h.max
	h.max = 0
	for height := top; height > 0; height-- {
		if h.heads[height] != nil {
			h.max = height
			break
		}
	}
}

package core

import "github.com/jetsetilly/rv32oosim/rtl"

// ReorderBuffer is the circular, in-order tracking structure allocated at
// dispatch and released at commit. Commit is external
// to this spec (retirement); Commit is exposed only so an external driver
// has somewhere to call into, and is never invoked by anything in core.
type ReorderBuffer struct {
	q *rtl.CircularQueue[ROBEntry]
}

// NewReorderBuffer creates a ReorderBuffer with the given depth.
func NewReorderBuffer(depth int) *ReorderBuffer {
	return &ReorderBuffer{q: rtl.NewCircularQueue[ROBEntry](depth)}
}

// IsFull reports whether dispatch cannot allocate an entry this cycle.
func (r *ReorderBuffer) IsFull() bool {
	return r.q.IsFull()
}

// Len returns current occupancy.
func (r *ReorderBuffer) Len() int {
	return r.q.Len()
}

// Alloc stages allocation of one entry for the given decode block. Returns
// ok=false if the ROB is full this cycle (a dispatch stall), not an error.
func (r *ReorderBuffer) Alloc(entry ROBEntry) (idx int, ok bool, err error) {
	return r.q.Enq(entry)
}

// Commit stages release of the oldest entry. External to this spec; exposed
// for a retirement driver to call.
func (r *ReorderBuffer) Commit() error {
	return r.q.SetDeq()
}

// Tick promotes staged allocation/commit.
func (r *ReorderBuffer) Tick() {
	r.q.Tick()
}

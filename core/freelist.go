package core

import "github.com/jetsetilly/rv32oosim/internal/curated"

// Freelist is the pool of unused physical register names.
// Physical name 0 is reserved as the canonical zero and is never free.
// Allocate takes names from the front of the free list, which starts in
// ascending order, so allocation is smallest-index-first until Free appends
// a name. Nothing in
// this model frees names back to the pool: retirement, which is the only
// thing that does, is external to the front end modeled here, so Free
// exists for completeness but is never called
// internally.
type Freelist struct {
	pool       int
	free       []uint32 // ascending from construction; Free appends at the end
	pendingLen int       // number reserved by a staged Allocate this cycle
}

// NewFreelist creates a Freelist over a pool of `pool` physical registers
// (names 0..pool-1), with every name except 0 initially free.
func NewFreelist(pool int) *Freelist {
	fl := &Freelist{pool: pool}
	for p := 1; p < pool; p++ {
		fl.free = append(fl.free, uint32(p))
	}
	return fl
}

// FreeCount returns the number of currently free names (pre-tick).
func (fl *Freelist) FreeCount() int {
	return len(fl.free) - fl.pendingLen
}

// Allocate stages the removal of the n smallest free names and returns them.
// If fewer than n names are free, it returns (nil, false): the caller must
// stall the whole rename cycle rather than partially allocate. At most
// one Allocate may be staged per cycle.
func (fl *Freelist) Allocate(n int) ([]uint32, bool, error) {
	if fl.pendingLen != 0 {
		return nil, false, curated.Errorf(curated.DriverConflict + ": Freelist.Allocate called twice in one cycle")
	}
	if n == 0 {
		return nil, true, nil
	}
	if fl.FreeCount() < n {
		return nil, false, nil
	}
	out := make([]uint32, n)
	copy(out, fl.free[:n])
	fl.pendingLen = n
	return out, true, nil
}

// Free returns a physical name to the pool immediately (not on the next
// Tick), appending it after the names already free. Present for the
// external retirement interface; unused by anything in this model.
func (fl *Freelist) Free(phys uint32) error {
	if phys == 0 {
		return curated.Errorf("cannot free reserved physical register 0")
	}
	fl.free = append(fl.free, phys)
	return nil
}

// Tick commits the staged allocation, removing the allocated names from the
// free list.
func (fl *Freelist) Tick() {
	if fl.pendingLen > 0 {
		fl.free = fl.free[fl.pendingLen:]
		fl.pendingLen = 0
	}
}

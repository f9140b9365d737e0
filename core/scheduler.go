package core

import "github.com/jetsetilly/rv32oosim/internal/curated"

// IntegerScheduler holds a fixed number of slots, each resident to one
// dispatched MicroOp. Nothing in this
// model frees a slot: execute is external to this spec, so Free is exposed
// for an external driver and never called internally.
type IntegerScheduler struct {
	slots    []MicroOp
	occupied []bool

	pendingIdx []int
	pendingOps []MicroOp
}

// NewIntegerScheduler creates a scheduler with the given fixed slot count.
func NewIntegerScheduler(slots int) *IntegerScheduler {
	return &IntegerScheduler{
		slots:    make([]MicroOp, slots),
		occupied: make([]bool, slots),
	}
}

// FreeSlots returns the number of currently unoccupied slots (pre-tick).
func (s *IntegerScheduler) FreeSlots() int {
	free := 0
	for _, o := range s.occupied {
		if !o {
			free++
		}
	}
	return free - len(s.pendingIdx)
}

// Sample returns the MicroOp resident in slot idx.
func (s *IntegerScheduler) Sample(idx int) MicroOp {
	return s.slots[idx]
}

// Alloc stages allocation of one slot per op in ops. Returns ok=false,
// without staging anything, if fewer slots are free than len(ops): the
// entire block must stall if any required resource is unavailable.
func (s *IntegerScheduler) Alloc(ops []MicroOp) (indices []int, ok bool, err error) {
	if s.FreeSlots() < len(ops) {
		return nil, false, nil
	}
	indices = make([]int, 0, len(ops))
	taken := 0
	for i, occ := range s.occupied {
		if taken == len(ops) {
			break
		}
		if occ {
			continue
		}
		already := false
		for _, p := range s.pendingIdx {
			if p == i {
				already = true
				break
			}
		}
		if already {
			continue
		}
		indices = append(indices, i)
		taken++
	}
	if len(indices) != len(ops) {
		return nil, false, curated.Errorf("scheduler free-slot accounting inconsistent")
	}
	s.pendingIdx = append(s.pendingIdx, indices...)
	s.pendingOps = append(s.pendingOps, ops...)
	return indices, true, nil
}

// Free releases slot idx immediately (not on the next Tick). External
// interface only; unused by
// anything in core.
func (s *IntegerScheduler) Free(idx int) {
	s.occupied[idx] = false
}

// Tick commits every staged allocation.
func (s *IntegerScheduler) Tick() {
	for i, idx := range s.pendingIdx {
		s.slots[idx] = s.pendingOps[i]
		s.occupied[idx] = true
	}
	s.pendingIdx = nil
	s.pendingOps = nil
}

package rtl

import "github.com/jetsetilly/rv32oosim/internal/curated"

// RegisterFile is N independently addressable registers.
// Reads are combinational from current; writes are staged per-index and, as
// with a lone Register, a second write to the same index in one cycle is a
// driver conflict.
type RegisterFile[T any] struct {
	cells    []T
	staged   []T
	assigned []bool
}

// NewRegisterFile creates a RegisterFile of n cells, all initialised to
// reset.
func NewRegisterFile[T any](n int, reset T) *RegisterFile[T] {
	rf := &RegisterFile[T]{
		cells:    make([]T, n),
		staged:   make([]T, n),
		assigned: make([]bool, n),
	}
	for i := range rf.cells {
		rf.cells[i] = reset
	}
	return rf
}

// Len returns the number of cells.
func (rf *RegisterFile[T]) Len() int {
	return len(rf.cells)
}

// Read returns the current value at idx. Combinational.
func (rf *RegisterFile[T]) Read(idx int) T {
	return rf.cells[idx]
}

// Write stages v for cell idx.
func (rf *RegisterFile[T]) Write(idx int, v T) error {
	if rf.assigned[idx] {
		return curated.Errorf(curated.DriverConflict+": register file cell %d assigned twice in one cycle", idx)
	}
	rf.staged[idx] = v
	rf.assigned[idx] = true
	return nil
}

// Tick promotes every staged write to current and clears the staging area.
func (rf *RegisterFile[T]) Tick() {
	for i, ok := range rf.assigned {
		if ok {
			rf.cells[i] = rf.staged[i]
			rf.assigned[i] = false
		}
	}
}

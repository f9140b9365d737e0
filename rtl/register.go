package rtl

import "github.com/jetsetilly/rv32oosim/internal/curated"

// Register holds one edge-triggered value of type T: a sampled current value
// and a staged next value that becomes current on Tick.
type Register[T any] struct {
	current  T
	next     T
	assigned bool
}

// NewRegister creates a Register with the given reset value as its initial
// current value.
func NewRegister[T any](reset T) *Register[T] {
	return &Register[T]{current: reset}
}

// Output returns the current (pre-tick) value. Combinational — may be called
// any number of times in a cycle.
func (r *Register[T]) Output() T {
	return r.current
}

// Assign stages v as the next value. A second Assign in the same cycle is a
// driver conflict and returns a fatal curated error;
// callers that expect this must check the returned error rather than ignore
// it, since driver conflicts are never silently resolved.
func (r *Register[T]) Assign(v T) error {
	if r.assigned {
		return curated.Errorf(curated.DriverConflict+": register assigned twice in one cycle")
	}
	r.next = v
	r.assigned = true
	return nil
}

// Tick promotes the staged next value (if any) to current and clears the
// staging area.
func (r *Register[T]) Tick() {
	if r.assigned {
		r.current = r.next
		r.assigned = false
	}
}

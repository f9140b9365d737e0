package core

import (
	"github.com/jetsetilly/rv32oosim/internal/curated"
	"github.com/jetsetilly/rv32oosim/internal/logger"
)

// stepDispatch is the dispatch stage. It allocates one
// ROB entry for the RBQ front's whole block and one scheduler slot per
// schedulable MicroOp within it, stalling the entire block if either
// resource is insufficient.
func (c *Core) stepDispatch() {
	front, ok := c.rbq.Front()
	if !ok {
		return
	}

	if c.rob.IsFull() {
		logger.Logf(logger.Allow, curated.Stall, "dispatch stalled on ROB for block @%#x", front.Addr)
		return
	}

	var ops []MicroOp
	for lane := front.StartOffset; lane <= front.Exit.Lane; lane++ {
		m := front.Ops[lane]
		if m.Schedulable() {
			ops = append(ops, m.ToMicroOp())
		}
	}

	if c.sched.FreeSlots() < len(ops) {
		logger.Logf(logger.Allow, curated.Stall, "dispatch stalled on scheduler for block @%#x (needs %d slots)", front.Addr, len(ops))
		return
	}

	if _, ok, err := c.rob.Alloc(ROBEntry{Addr: front.Addr, StartOffset: front.StartOffset, Exit: front.Exit}); err != nil {
		c.fatal(err)
		return
	} else if !ok {
		return
	}

	if len(ops) > 0 {
		if _, ok, err := c.sched.Alloc(ops); err != nil {
			c.fatal(err)
			return
		} else if !ok {
			c.fatal(curated.Errorf("scheduler rejected an allocation sized to its own free-slot count"))
			return
		}
	}

	if err := c.rbq.SetDeq(); err != nil {
		c.fatal(err)
	}
}

package core

import "github.com/jetsetilly/rv32oosim/cfm"

// redirectRequest is a one-cycle-latency handoff from the predecode stage
// to the control-flow event stage: predecode stages a redirect here, and
// the CFE stage reads it (as a current, post-tick value) on the following
// cycle to decide the next fetch target (the one-cycle handoff is this
// implementation's resolution of the relative
// timing the spec leaves informal, recorded in DESIGN.md).
type redirectRequest struct {
	Valid bool
	Event ControlFlowEvent
}

// stepCFE is the control-flow event stage. It holds the
// single pending ControlFlowEvent in c.pendingCFE and, each cycle, pushes
// its NextPC onto the FTQ, probes the CFM for a speculative prediction, and
// decides what event to process next cycle — honouring any redirect
// predecode requested one cycle ago.
func (c *Core) stepCFE() {
	ev := c.pendingCFE.Output()

	target := FetchTarget{PC: ev.NextPC}
	idx, ok, err := c.ftq.Enq(target)
	_ = idx
	if err != nil {
		c.fatal(err)
		return
	}
	if !ok {
		// FTQ full: stall, retry the same event next cycle.
		return
	}

	next := ControlFlowEvent{Redirect: false, NextPC: ev.NextPC + BlockBytes}

	aligned := target.AlignedAddr()
	if entry, hit := c.cfm.Probe(aligned); hit {
		if entry.Class == cfm.ExitStatic && entry.Taken.Predicted() {
			next = ControlFlowEvent{Redirect: true, Speculative: true, NextPC: entry.Target}
		}
	}

	if req := c.redirectReq.Output(); req.Valid {
		next = req.Event
		if err := c.redirectReq.Assign(redirectRequest{}); err != nil {
			c.fatal(err)
			return
		}
	}

	if err := c.pendingCFE.Assign(next); err != nil {
		c.fatal(err)
	}
}

package core

import (
	"github.com/jetsetilly/rv32oosim/cfm"
	"github.com/jetsetilly/rv32oosim/internal/config"
	"github.com/jetsetilly/rv32oosim/internal/logger"
	"github.com/jetsetilly/rv32oosim/memio"
	"github.com/jetsetilly/rv32oosim/rtl"
)

// Core is the Top: every front-end stage and resource-allocation structure
// wired to a single clock domain, driven one cycle at a time by Step.
type Core struct {
	cfg    config.Config
	domain *rtl.ClockDomain
	ram    *memio.RAM
	cfm    *cfm.CFM

	pendingCFE  *rtl.Register[ControlFlowEvent]
	redirectReq *rtl.Register[redirectRequest]

	ftq *rtl.CircularQueue[FetchTarget]
	fbq *rtl.CircularQueue[FetchBlock]
	pdq *rtl.CircularQueue[PredecodeBlock]
	dbq *rtl.CircularQueue[DecodeBlock]
	rbq *rtl.CircularQueue[DecodeBlock]

	regmap   *RegisterMap
	freelist *Freelist
	rob      *ReorderBuffer
	sched    *IntegerScheduler

	fatalErr error
}

// NewCore builds a Core over the given RAM, with fetch beginning at entry.
func NewCore(cfg config.Config, ram *memio.RAM, entry uint32) *Core {
	c := &Core{
		cfg:         cfg,
		domain:      rtl.NewClockDomain(),
		ram:         ram,
		cfm:         cfm.New(),
		pendingCFE:  rtl.NewRegister(ControlFlowEvent{Redirect: true, NextPC: entry}),
		redirectReq: rtl.NewRegister(redirectRequest{}),
		ftq:         rtl.NewCircularQueue[FetchTarget](cfg.FTQCapacity),
		fbq:         rtl.NewCircularQueue[FetchBlock](cfg.FBQCapacity),
		pdq:         rtl.NewCircularQueue[PredecodeBlock](cfg.PDQCapacity),
		dbq:         rtl.NewCircularQueue[DecodeBlock](cfg.DBQCapacity),
		rbq:         rtl.NewCircularQueue[DecodeBlock](cfg.RBQCapacity),
		regmap:      NewRegisterMap(),
		freelist:    NewFreelist(cfg.PhysicalRegisters),
		rob:         NewReorderBuffer(cfg.ROBDepth),
		sched:       NewIntegerScheduler(cfg.SchedulerSlots),
	}

	c.domain.Register(c.pendingCFE)
	c.domain.Register(c.redirectReq)
	c.domain.Register(c.ftq)
	c.domain.Register(c.fbq)
	c.domain.Register(c.pdq)
	c.domain.Register(c.dbq)
	c.domain.Register(c.rbq)
	c.domain.Register(c.regmap)
	c.domain.Register(c.freelist)
	c.domain.Register(c.rob)
	c.domain.Register(c.sched)
	c.domain.Register(c.cfm)

	return c
}

// fatal records the first fatal error this Core encounters. A fatal error
// is a driver conflict or similar accounting inconsistency: these are
// bugs in the simulated hardware model, not recoverable runtime
// conditions, so Step stops progressing once one is recorded.
func (c *Core) fatal(err error) {
	if c.fatalErr == nil {
		c.fatalErr = err
	}
	logger.Logf(logger.Allow, "core", "fatal: %v", err)
}

// Err returns the first fatal error encountered, if any.
func (c *Core) Err() error {
	return c.fatalErr
}

// Cycle returns the number of cycles this Core has ticked.
func (c *Core) Cycle() uint64 {
	return c.domain.Cycle()
}

// PendingFetchPC reports the PC the CFE stage will push to the FTQ on its
// next step, pre-tick. Mainly a diagnostic/testing hook into otherwise
// unobservable control-flow state.
func (c *Core) PendingFetchPC() uint32 {
	return c.pendingCFE.Output().NextPC
}

// Step advances the Core by exactly one cycle: every stage evaluates
// combinationally against the current (pre-tick) state, then every staged
// write commits atomically ("drive this cycle, observe this cycle, commit
// atomically on tick", realized once for the whole pipeline). If a fatal
// error has already been recorded, Step does nothing.
func (c *Core) Step() {
	if c.fatalErr != nil {
		return
	}

	c.stepCFE()
	c.stepIFU()
	c.stepPDU()
	c.stepIDU()
	c.stepRename()
	c.stepDispatch()

	if c.fatalErr != nil {
		return
	}

	c.domain.Tick()
}

// Occupancy reports a snapshot of every queue/structure's current
// occupancy, for diagnostics and the live statsview dashboard.
type Occupancy struct {
	FTQ, FBQ, PDQ, DBQ, RBQ int
	FreeRegs                int
	ROB                     int
	SchedFree               int
	CFMEntries              int
}

// Snapshot reads the Core's current occupancy, pre-tick.
func (c *Core) Snapshot() Occupancy {
	return Occupancy{
		FTQ:        c.ftq.Len(),
		FBQ:        c.fbq.Len(),
		PDQ:        c.pdq.Len(),
		DBQ:        c.dbq.Len(),
		RBQ:        c.rbq.Len(),
		FreeRegs:   c.freelist.FreeCount(),
		ROB:        c.rob.Len(),
		SchedFree:  c.sched.FreeSlots(),
		CFMEntries: c.cfm.Len(),
	}
}

// The following accessors let internal/statsview poll occupancy through a
// narrow interface without core importing statsview.

func (c *Core) FTQLen() int    { return c.ftq.Len() }
func (c *Core) FBQLen() int    { return c.fbq.Len() }
func (c *Core) PDQLen() int    { return c.pdq.Len() }
func (c *Core) DBQLen() int    { return c.dbq.Len() }
func (c *Core) RBQLen() int    { return c.rbq.Len() }
func (c *Core) FreeRegs() int  { return c.freelist.FreeCount() }
func (c *Core) ROBLen() int    { return c.rob.Len() }
func (c *Core) SchedFree() int { return c.sched.FreeSlots() }

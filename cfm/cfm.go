// Package cfm is the control-flow map: an
// associative cache, keyed by 32-byte block address, of a block's learned
// exit behaviour. It backs next-fetch prediction at the CFE stage and records
// the exit predecode discovers for each block; it does not compare a new
// entry against the one it replaces.
package cfm

import "github.com/jetsetilly/rv32oosim/rtl"

// ExitClass mirrors core.DecodeBlockExitKind without importing core (cfm is
// a leaf package consumed by core, not the other way around).
type ExitClass int

const (
	ExitSequential ExitClass = iota
	ExitStatic
	ExitDynamic
)

// Taken is a saturating 2-bit branch-history counter, supplementing
// the minimal entry below (grounded in
// original_source/model/src/bpred.rs): it lets the CFE stage guess a taken
// target before predecode has confirmed the block's exit.
type Taken uint8

const (
	StronglyNotTaken Taken = iota
	WeaklyNotTaken
	WeaklyTaken
	StronglyTaken
)

// Update adjusts the counter towards taken or not-taken, saturating at the
// ends.
func (t Taken) Update(taken bool) Taken {
	if taken {
		if t < StronglyTaken {
			return t + 1
		}
		return t
	}
	if t > StronglyNotTaken {
		return t - 1
	}
	return t
}

// Predicted reports whether the counter currently predicts taken.
func (t Taken) Predicted() bool {
	return t >= WeaklyTaken
}

// Entry is one block's learned control-flow behaviour.
type Entry struct {
	Class  ExitClass
	Lane   int
	Target uint32
	Taken  Taken
}

// CFM is the control-flow map, backed by an async-read CAM:
// reads are combinational, writes are staged and applied with the LIFO
// ordering rtl.AsyncReadCam pins.
type CFM struct {
	cam *rtl.AsyncReadCam[uint32, Entry]
}

// New creates an empty control-flow map.
func New() *CFM {
	return &CFM{cam: rtl.NewAsyncReadCam[uint32, Entry]()}
}

// Probe looks up the learned entry for a 32-byte-aligned block address.
// Combinational.
func (c *CFM) Probe(blockAddr uint32) (Entry, bool) {
	return c.cam.Sample(blockAddr)
}

// Learn stages recording (or correcting) the entry for blockAddr.
func (c *CFM) Learn(blockAddr uint32, entry Entry) {
	c.cam.Drive(blockAddr, entry)
}

// Tick applies staged learning.
func (c *CFM) Tick() {
	c.cam.Tick()
}

// Len returns the number of learned entries.
func (c *CFM) Len() int {
	return c.cam.Len()
}

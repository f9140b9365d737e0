package core

import (
	"github.com/jetsetilly/rv32oosim/cfm"
	"github.com/jetsetilly/rv32oosim/riscv"
)

// exitKindFor maps a lane's lightweight branch classification to the
// block-level exit kind predecode reports.
func exitKindFor(bk riscv.BranchKind) (DecodeBlockExitKind, bool) {
	switch bk {
	case riscv.BranchReturn:
		return ExitRet, true
	case riscv.BranchCallIndirect, riscv.BranchCallRelative, riscv.BranchCallAbsolute:
		return ExitCall, true
	case riscv.BranchJmpIndirect, riscv.BranchJmpRelative:
		return ExitJmp, true
	case riscv.BranchBrnRelative:
		return ExitDynamic, true
	default:
		return ExitSequential, false
	}
}

// formatFor picks the immediate format a lane's opcode class carries, for
// the purposes of predecode's lightweight classification.
func formatFor(class riscv.Class) riscv.Format {
	switch class {
	case riscv.ClassJAL:
		return riscv.FormatJ
	case riscv.ClassJALR, riscv.ClassLOAD, riscv.ClassOPIMM:
		return riscv.FormatI
	case riscv.ClassSTORE:
		return riscv.FormatS
	case riscv.ClassBRANCH:
		return riscv.FormatB
	case riscv.ClassAUIPC, riscv.ClassLUI:
		return riscv.FormatU
	default:
		return riscv.FormatNone
	}
}

// predecodeLane performs predecode's lightweight, opcode-field-only
// analysis of one raw instruction word: it does not
// validate funct3/funct7, leaving full illegality detection to decode.
func predecodeLane(word uint32) PredecodeLane {
	opcode := riscv.Opcode(word & 0x7F)
	class := riscv.ClassOf(opcode)
	rd := (word >> 7) & 0x1F
	rs1 := (word >> 15) & 0x1F

	lane := PredecodeLane{
		Illegal:    class == riscv.ClassIllegal,
		BranchKind: riscv.ClassifyBranchKind(opcode, rd, rs1),
		Format:     formatFor(class),
		Rs1Hint:    rs1,
	}
	if lane.Format != riscv.FormatNone {
		lane.Imm = riscv.EncodeImm20(riscv.DecodeImmediate(lane.Format, word))
	}
	return lane
}

// stepPDU is the predecode stage. It classifies every lane
// of the FBQ front up to and including the lane that ends the block,
// determines the block's exit, records it as the block's CFM entry
// (overwriting any earlier one), and enqueues the predecode result to the PDQ. A relative,
// unconditional branch additionally redirects fetch speculatively: the
// triggering block (through its branch lane) still flows downstream —
// nothing past that lane in the block is ever valid anyway — but the
// block fetched after it is replaced by the branch's computed target.
func (c *Core) stepPDU() {
	front, ok := c.fbq.Front()
	if !ok {
		return
	}
	if c.pdq.IsFull() {
		return
	}

	pb := PredecodeBlock{FetchBlock: front}
	exit := DecodeBlockExit{Kind: ExitSequential, Lane: BlockLanes - 1}
	for lane := front.StartOffset; lane < BlockLanes; lane++ {
		pl := predecodeLane(front.Word(lane))
		pb.Lanes[lane] = pl

		if pl.Illegal {
			exit = DecodeBlockExit{Kind: ExitFault, Lane: lane}
			break
		}
		if kind, isExit := exitKindFor(pl.BranchKind); isExit {
			exit = DecodeBlockExit{Kind: kind, Lane: lane}
			break
		}
	}

	entry := cfm.Entry{Lane: exit.Lane}
	switch {
	case exit.Kind == ExitDynamic:
		entry.Class = cfm.ExitDynamic
	case exit.Kind == ExitJmp || exit.Kind == ExitCall || exit.Kind == ExitRet:
		if pb.Lanes[exit.Lane].BranchKind.IsRelative() {
			entry.Class = cfm.ExitStatic
		} else {
			entry.Class = cfm.ExitDynamic
		}
	default:
		entry.Class = cfm.ExitSequential
	}

	var redirect *ControlFlowEvent
	if exit.Kind == ExitJmp || exit.Kind == ExitCall {
		lane := pb.Lanes[exit.Lane]
		if lane.BranchKind.IsUnconditional() && lane.BranchKind.IsRelative() {
			target := uint32(int32(front.Addr+uint32(exit.Lane)*4) + lane.Imm.Expand(lane.Format))
			entry.Target = target

			if prior, hit := c.cfm.Probe(front.Addr); hit {
				entry.Taken = prior.Taken.Update(true)
			} else {
				entry.Taken = cfm.StronglyNotTaken.Update(true)
			}

			redirect = &ControlFlowEvent{Redirect: true, NextPC: target}
		}
	}

	c.cfm.Learn(front.Addr, entry)

	_, enqOK, err := c.pdq.Enq(pb)
	if err != nil {
		c.fatal(err)
		return
	}
	if !enqOK {
		return
	}

	if redirect != nil {
		if err := c.redirectReq.Assign(redirectRequest{Valid: true, Event: *redirect}); err != nil {
			c.fatal(err)
			return
		}
	}

	if err := c.fbq.SetDeq(); err != nil {
		c.fatal(err)
	}
}

package core

import "github.com/jetsetilly/rv32oosim/riscv"

// macroOpFor builds lane's MacroOp from its full structural decode,
// following the opcode-class table below. imm is predecode's
// already-classified immediate for this lane, reused rather than
// recomputed.
func macroOpFor(ins riscv.Instruction, imm Immediate) MacroOp {
	m := MacroOp{
		Rd:  ins.Rd,
		Rs1: ins.Rs1,
		Rs2: ins.Rs2,
	}

	switch ins.Class {
	case riscv.ClassOP:
		m.Kind = KindAlu
		m.Alu = ins.Alu
		m.Op1, m.Op2 = OperandReg, OperandReg
		m.RR = ins.Rd != 0

	case riscv.ClassOPIMM:
		m.Kind = KindAlu
		m.Alu = ins.Alu
		m.Op1, m.Op2 = OperandReg, OperandImm
		m.Imm = imm
		m.RR = ins.Rd != 0

	case riscv.ClassAUIPC:
		m.Kind = KindAlu
		m.Alu = riscv.AluAdd
		m.Op1, m.Op2 = OperandPc, OperandImm
		m.Imm = imm
		m.RR = ins.Rd != 0

	case riscv.ClassLUI:
		m.Kind = KindAlu
		m.Alu = riscv.AluAdd
		m.Op1, m.Op2 = OperandZero, OperandImm
		m.Imm = imm
		m.RR = ins.Rd != 0

	case riscv.ClassLOAD:
		m.Kind = KindLoad
		m.Width = ins.Width
		m.Op1, m.Op2 = OperandReg, OperandImm
		m.Imm = imm
		m.RR = ins.Rd != 0

	case riscv.ClassSTORE:
		m.Kind = KindStore
		m.Width = ins.Width
		m.Op1, m.Op2 = OperandReg, OperandImm
		m.Imm = imm

	case riscv.ClassBRANCH:
		m.Kind = KindBrn
		m.Brn = ins.Brn
		m.Op1, m.Op2 = OperandReg, OperandReg
		m.Imm = imm

	case riscv.ClassJAL:
		m.Kind = KindJmp
		m.JmpK = JmpRelative
		m.Op1, m.Op2 = OperandPc, OperandImm
		m.Imm = imm
		m.RR = ins.Rd != 0

	case riscv.ClassJALR:
		m.Kind = KindJmp
		m.JmpK = JmpIndirect
		m.Op1, m.Op2 = OperandReg, OperandImm
		m.Imm = imm
		m.RR = ins.Rd != 0

	case riscv.ClassSYSTEM:
		m.Kind = KindSys
		m.Sys = ins.Sys

	default:
		m.Kind = KindIllegal
	}

	return m
}

// stepIDU is the decode stage. It fully structurally
// decodes every in-range lane of the PDQ front into a MacroOp, confirming
// or tightening predecode's exit classification (full decode can discover
// illegality predecode's opcode-only check missed), and enqueues the
// result to the DBQ.
func (c *Core) stepIDU() {
	front, ok := c.pdq.Front()
	if !ok {
		return
	}

	db := DecodeBlock{Addr: front.Addr, StartOffset: front.StartOffset}
	exit := DecodeBlockExit{Kind: ExitSequential, Lane: BlockLanes - 1}

	for lane := front.StartOffset; lane < BlockLanes; lane++ {
		word := front.Word(lane)
		ins := riscv.Decode(word)
		pl := front.Lanes[lane]

		m := macroOpFor(ins, Immediate{Class: ImmClassAlloc, Format: pl.Format, Value: pl.Imm})
		if ins.Illegal {
			m.Kind = KindIllegal
		}
		m.LaneValid = true
		db.Ops[lane] = m

		if ins.Illegal {
			exit = DecodeBlockExit{Kind: ExitFault, Lane: lane}
			break
		}
		if kind, isExit := exitKindFor(pl.BranchKind); isExit {
			exit = DecodeBlockExit{Kind: kind, Lane: lane}
			break
		}
	}
	db.Exit = exit

	_, enqOK, err := c.dbq.Enq(db)
	if err != nil {
		c.fatal(err)
		return
	}
	if !enqOK {
		return
	}

	if err := c.pdq.SetDeq(); err != nil {
		c.fatal(err)
	}
}

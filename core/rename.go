package core

import (
	"github.com/jetsetilly/rv32oosim/internal/curated"
	"github.com/jetsetilly/rv32oosim/internal/logger"
	"github.com/jetsetilly/rv32oosim/riscv"
)

func isXor(m MacroOp) bool { return m.Kind == KindAlu && m.Alu == riscv.AluXor }
func isSub(m MacroOp) bool { return m.Kind == KindAlu && m.Alu == riscv.AluSub }
func isAdd(m MacroOp) bool { return m.Kind == KindAlu && m.Alu == riscv.AluAdd }
func isOr(m MacroOp) bool  { return m.Kind == KindAlu && m.Alu == riscv.AluOr }

// resolveSrc resolves an architectural source register to a physical
// source operand, preferring a same-block local binding (the intra-block
// bypass) over the committed global map. By the time this is called the
// dynamic-zero rewrite has already retargeted any statically-zero operand
// to OperandZero, so a plain map read is all that remains.
func resolveSrc(arch uint32, local map[uint32]PhysRegSrc, regmap *RegisterMap) PhysRegSrc {
	if b, ok := local[arch]; ok {
		return b
	}
	phys, _ := regmap.Read(arch)
	return PhysRegSrc{Kind: PhysSrcGlobal, Phys: phys}
}

// resolveZero implements the rename stage's dynamic-zero rewrite (spec
// step 2a): arch is known-zero at this point in the block if its nearest
// in-block provider classified as a zero idiom, or, absent any in-block
// provider, if the committed register map's known-zero bit is set.
func resolveZero(arch uint32, localZero map[uint32]bool, regmap *RegisterMap) bool {
	if z, ok := localZero[arch]; ok {
		return z
	}
	_, knownZero := regmap.Read(arch)
	return knownZero
}

// classifyMov recognises the zero and move idioms: self-xor/self-sub and
// zero-on-both-sides collapse to a
// known-zero result; an add/or/sub-with-zero collapses to a plain register
// copy.
func classifyMov(m MacroOp) MovCtl {
	if m.Kind != KindAlu || !m.RR {
		return MovNone
	}
	switch {
	case m.Op1 == OperandReg && m.Op2 == OperandReg && m.Rs1 == m.Rs2 && (isXor(m) || isSub(m)):
		return MovZero
	case m.Op1 == OperandZero && m.Op2 == OperandZero:
		return MovZero
	case m.Op1 == OperandZero && m.Op2 == OperandImm && isAdd(m) && m.Imm.Expand() == 0:
		return MovZero
	case m.Op1 == OperandReg && m.Op2 == OperandImm && isAdd(m) && m.Imm.Expand() == 0:
		return MovOp1
	case m.Op1 == OperandReg && m.Op2 == OperandZero && (isAdd(m) || isOr(m) || isSub(m)):
		return MovOp1
	case m.Op1 == OperandZero && m.Op2 == OperandReg && (isAdd(m) || isOr(m)):
		return MovOp2
	default:
		return MovNone
	}
}

// rewriteLane applies the static zero rewrite:
// any register operand naming architectural x0 is retargeted to the
// constant-zero operand kind regardless of rename-map state.
func rewriteLane(m *MacroOp) {
	if m.Op1 == OperandReg && m.Rs1 == 0 {
		m.Op1 = OperandZero
	}
	if m.Op2 == OperandReg && m.Rs2 == 0 {
		m.Op2 = OperandZero
	}
}

// stepRename is the rename stage. It statically rewrites
// zero-register operands, dynamically rewrites operands whose nearest
// provider (in-block or the global map) is known-zero, resolves sources
// against the local intra-block bypass and the global register map,
// classifies zero/move idioms to a fixed point (bounded by
// c.cfg.RewritePassCap), batches a single freelist allocation for the lanes
// that still need a real physical destination, and drives both the
// register map and the freelist from the result. The whole block stalls if
// the RBQ has no room or the freelist cannot satisfy the batch.
func (c *Core) stepRename() {
	front, ok := c.dbq.Front()
	if !ok {
		return
	}
	if c.rbq.IsFull() {
		logger.Logf(logger.Allow, curated.Stall, "rename stalled on RBQ for block @%#x", front.Addr)
		return
	}

	ops := front.Ops

	prevMov := [BlockLanes]MovCtl{}
	converged := false
	for pass := 0; pass < c.cfg.RewritePassCap; pass++ {
		local := make(map[uint32]PhysRegSrc)
		localZero := make(map[uint32]bool)
		changed := false
		for lane := front.StartOffset; lane <= front.Exit.Lane; lane++ {
			m := ops[lane]
			if !m.LaneValid || m.Kind == KindIllegal {
				continue
			}
			rewriteLane(&m)
			if m.Op1 == OperandReg && resolveZero(m.Rs1, localZero, c.regmap) {
				m.Op1 = OperandZero
			}
			if m.Op2 == OperandReg && resolveZero(m.Rs2, localZero, c.regmap) {
				m.Op2 = OperandZero
			}
			if m.Op1 == OperandReg {
				m.Ps1 = resolveSrc(m.Rs1, local, c.regmap)
			}
			if m.Op2 == OperandReg {
				m.Ps2 = resolveSrc(m.Rs2, local, c.regmap)
			}
			m.Mov = classifyMov(m)
			if m.Mov != prevMov[lane] {
				changed = true
				prevMov[lane] = m.Mov
			}
			if m.RR {
				switch m.Mov {
				case MovZero:
					local[m.Rd] = PhysRegSrc{Kind: PhysSrcGlobal, Phys: 0}
					localZero[m.Rd] = true
				case MovOp1:
					local[m.Rd] = m.Ps1
					localZero[m.Rd] = false
				case MovOp2:
					local[m.Rd] = m.Ps2
					localZero[m.Rd] = false
				default:
					localZero[m.Rd] = false
				}
			}
			ops[lane] = m
		}
		if !changed {
			converged = true
			break
		}
	}
	if !converged {
		c.fatal(curated.Errorf(curated.RewriteCapExceeded+": rename zero/move rewrite did not reach a fixed point within %d passes", c.cfg.RewritePassCap))
		return
	}

	needAlloc := 0
	for lane := front.StartOffset; lane <= front.Exit.Lane; lane++ {
		m := ops[lane]
		if m.LaneValid && m.Kind != KindIllegal && m.RR && m.Mov == MovNone {
			needAlloc++
		}
	}

	var allocated []uint32
	if needAlloc > 0 {
		names, allocOK, err := c.freelist.Allocate(needAlloc)
		if err != nil {
			c.fatal(err)
			return
		}
		if !allocOK {
			logger.Logf(logger.Allow, curated.Stall, "rename stalled on freelist for block @%#x (needs %d names)", front.Addr, needAlloc)
			return
		}
		allocated = names
	}

	ai := 0
	bypass := make(map[uint32]PhysRegSrc)
	for lane := front.StartOffset; lane <= front.Exit.Lane; lane++ {
		m := ops[lane]
		if !m.LaneValid || m.Kind == KindIllegal {
			continue
		}
		if m.Op1 == OperandReg {
			m.Ps1 = resolveSrc(m.Rs1, bypass, c.regmap)
		}
		if m.Op2 == OperandReg {
			m.Ps2 = resolveSrc(m.Rs2, bypass, c.regmap)
		}
		if !m.RR {
			ops[lane] = m
			continue
		}
		switch m.Mov {
		case MovZero:
			c.regmap.DriveWrite(m.Rd, 0, lane)
			bypass[m.Rd] = PhysRegSrc{Kind: PhysSrcGlobal, Phys: 0}
		case MovOp1:
			c.regmap.DriveWrite(m.Rd, m.Ps1.Phys, lane)
			bypass[m.Rd] = m.Ps1
		case MovOp2:
			c.regmap.DriveWrite(m.Rd, m.Ps2.Phys, lane)
			bypass[m.Rd] = m.Ps2
		default:
			phys := allocated[ai]
			ai++
			m.Pd = PhysRegDst{Valid: true, Phys: phys}
			c.regmap.DriveWrite(m.Rd, phys, lane)
			bypass[m.Rd] = PhysRegSrc{Kind: PhysSrcLocal, Phys: phys}
		}
		ops[lane] = m
	}

	renamed := DecodeBlock{Addr: front.Addr, StartOffset: front.StartOffset, Exit: front.Exit, Ops: ops}
	_, enqOK, err := c.rbq.Enq(renamed)
	if err != nil {
		c.fatal(err)
		return
	}
	if !enqOK {
		return
	}

	if err := c.dbq.SetDeq(); err != nil {
		c.fatal(err)
	}
}

// Package core is the superscalar front-end proper: fetch-block carriers,
// the six pipeline stages, the register map, freelist, reorder buffer and
// integer scheduler, wired into a single Top.
package core

import "github.com/jetsetilly/rv32oosim/riscv"

// BlockLanes is the number of 32-bit instruction slots in one aligned fetch
// block.
const BlockLanes = 8

// BlockBytes is the byte size of one aligned fetch block.
const BlockBytes = BlockLanes * 4

// FetchTarget is a 4-byte-aligned PC.
type FetchTarget struct {
	PC uint32
}

// AlignedAddr is the 32-byte-aligned block address containing PC.
func (t FetchTarget) AlignedAddr() uint32 {
	return t.PC &^ uint32(BlockBytes-1)
}

// StartOffset is the first valid lane inside the aligned block.
func (t FetchTarget) StartOffset() int {
	return int((t.PC & uint32(BlockBytes-1)) >> 2)
}

// FetchBlock carries one aligned 32-byte fetch window.
type FetchBlock struct {
	Addr        uint32
	Bytes       [BlockBytes]byte
	StartOffset int
}

// Word returns lane i's raw 32-bit encoding, decoded explicitly as little
// endian.
func (b FetchBlock) Word(lane int) uint32 {
	o := lane * 4
	return uint32(b.Bytes[o]) | uint32(b.Bytes[o+1])<<8 | uint32(b.Bytes[o+2])<<16 | uint32(b.Bytes[o+3])<<24
}

// PredecodeLane is one lane's lightweight, pre-structural analysis.
type PredecodeLane struct {
	Illegal    bool
	BranchKind riscv.BranchKind
	Format     riscv.Format
	Imm        riscv.Imm20
	Rs1Hint    uint32 // source register hint, used by JALR classification
}

// PredecodeBlock is a FetchBlock plus per-lane predecode results.
type PredecodeBlock struct {
	FetchBlock
	Lanes [BlockLanes]PredecodeLane
}

// DecodeBlockExitKind classifies how control flow leaves a block.
type DecodeBlockExitKind int

const (
	ExitSequential DecodeBlockExitKind = iota
	ExitFault
	ExitJmp
	ExitCall
	ExitRet
	ExitDynamic
)

// DecodeBlockExit is a block's exit classification plus, when it is not
// Sequential, the lane index responsible.
type DecodeBlockExit struct {
	Kind DecodeBlockExitKind
	Lane int
}

// MacroOpKind is the coarse shape of a decoded operation.
type MacroOpKind int

const (
	KindNone MacroOpKind = iota
	KindAlu
	KindLoad
	KindStore
	KindSys
	KindBrn
	KindJmp
	KindIllegal
)

// JmpSubkind distinguishes the two Jmp MacroOp shapes.
type JmpSubkind int

const (
	JmpNone JmpSubkind = iota
	JmpRelative
	JmpIndirect
)

// OperandKind is the tag of op1/op2.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandZero
	OperandReg
	OperandImm
	OperandPc
)

// ImmClass is the immediate's storage class.
type ImmClass int

const (
	ImmClassNone ImmClass = iota
	ImmClassZero
	ImmClassAlloc
)

// Immediate is a MacroOp's immediate value, retaining enough to re-expand it.
type Immediate struct {
	Class  ImmClass
	Format riscv.Format
	Value  riscv.Imm20
}

// Expand returns the immediate's fully sign-extended value, or 0 for the
// None/Zero storage classes.
func (i Immediate) Expand() int32 {
	if i.Class != ImmClassAlloc {
		return 0
	}
	return i.Value.Expand(i.Format)
}

// MovCtl marks a lane recognised as a move or zero idiom.
type MovCtl int

const (
	MovNone MovCtl = iota
	MovOp1
	MovOp2
	MovZero
)

// PhysRegDst is a MacroOp's physical destination: either unallocated or
// bound to a freelist-issued name.
type PhysRegDst struct {
	Valid bool
	Phys  uint32
}

// PhysRegSrcKind tags where a resolved physical source operand came from.
type PhysRegSrcKind int

const (
	PhysSrcNone PhysRegSrcKind = iota
	PhysSrcLocal
	PhysSrcGlobal
)

// PhysRegSrc is a MacroOp's resolved physical source operand.
type PhysRegSrc struct {
	Kind PhysRegSrcKind
	Phys uint32
}

// MacroOp is the unit that flows through rename.
type MacroOp struct {
	Kind MacroOpKind

	Alu   riscv.AluOp
	Brn   riscv.BrnOp
	Width riscv.Width
	Sys   riscv.SysOp
	JmpK  JmpSubkind

	Rd, Rs1, Rs2 uint32

	Op1, Op2 OperandKind
	Imm      Immediate

	Pd  PhysRegDst
	Ps1 PhysRegSrc
	Ps2 PhysRegSrc

	Mov MovCtl
	RR  bool // has an architectural register result

	// LaneValid is false for lanes outside [start_offset, exit_index]; they
	// are carried through the pipeline but never schedulable.
	LaneValid bool
}

// Schedulable reports whether this MacroOp should be allocated a scheduler
// slot at dispatch: not a move/zero idiom, not a no-op
// placeholder, not illegal, and within the block's valid lane range.
func (m MacroOp) Schedulable() bool {
	return m.LaneValid && m.Mov == MovNone && m.Kind != KindNone && m.Kind != KindIllegal
}

// DecodeBlock is a fully decoded 8-lane window ready for rename.
type DecodeBlock struct {
	Addr        uint32
	StartOffset int
	Exit        DecodeBlockExit
	Ops         [BlockLanes]MacroOp
}

// MicroOp is the scheduler-resident form of a MacroOp with operands already
// resolved to physical register names.
type MicroOp struct {
	Kind MacroOpKind

	Alu   riscv.AluOp
	Brn   riscv.BrnOp
	Width riscv.Width
	Sys   riscv.SysOp
	JmpK  JmpSubkind

	Pd  PhysRegDst
	Ps1 PhysRegSrc
	Ps2 PhysRegSrc

	Op1, Op2 OperandKind
	Imm      Immediate
}

// ToMicroOp narrows a schedulable MacroOp to its MicroOp form.
func (m MacroOp) ToMicroOp() MicroOp {
	return MicroOp{
		Kind:  m.Kind,
		Alu:   m.Alu,
		Brn:   m.Brn,
		Width: m.Width,
		Sys:   m.Sys,
		JmpK:  m.JmpK,
		Pd:    m.Pd,
		Ps1:   m.Ps1,
		Ps2:   m.Ps2,
		Op1:   m.Op1,
		Op2:   m.Op2,
		Imm:   m.Imm,
	}
}

// ROBEntry is an in-order tracking record, initially a placeholder carrying
// the decode block it came from.
type ROBEntry struct {
	Addr        uint32
	StartOffset int
	Exit        DecodeBlockExit
}

// ControlFlowEvent signals that the next PC to fetch changes, possibly
// speculatively, possibly redirecting younger in-flight work.
type ControlFlowEvent struct {
	Redirect    bool
	Speculative bool
	NextPC      uint32
}

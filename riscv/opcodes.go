// Package riscv is the RV32I glossary this model consumes rather than
// designs: opcode classes, immediate
// formats and a minimal structural decoder. An RV32I instruction decoder,
// whose semantics are fixed by the ISA, is an
// external collaborator; Decode below is that collaborator's reference
// implementation, kept intentionally small since its correctness is fixed
// by the ISA document, not by this design.
package riscv

// Opcode is the 7-bit major opcode field (bits [6:0]).
type Opcode uint32

const (
	OpcodeLOAD   Opcode = 0x03
	OpcodeOPIMM  Opcode = 0x13
	OpcodeAUIPC  Opcode = 0x17
	OpcodeSTORE  Opcode = 0x23
	OpcodeOP     Opcode = 0x33
	OpcodeLUI    Opcode = 0x37
	OpcodeBRANCH Opcode = 0x63
	OpcodeJALR   Opcode = 0x67
	OpcodeJAL    Opcode = 0x6F
	OpcodeSYSTEM Opcode = 0x73
)

// Class is the broad classification of an opcode, used by predecode and
// decode to pick a lane's branch-kind and MacroOp shape.
type Class int

const (
	ClassIllegal Class = iota
	ClassOP
	ClassOPIMM
	ClassLOAD
	ClassSTORE
	ClassBRANCH
	ClassJAL
	ClassJALR
	ClassAUIPC
	ClassLUI
	ClassSYSTEM
)

// ClassOf maps a raw opcode field to its Class.
func ClassOf(opcode Opcode) Class {
	switch opcode {
	case OpcodeOP:
		return ClassOP
	case OpcodeOPIMM:
		return ClassOPIMM
	case OpcodeLOAD:
		return ClassLOAD
	case OpcodeSTORE:
		return ClassSTORE
	case OpcodeBRANCH:
		return ClassBRANCH
	case OpcodeJAL:
		return ClassJAL
	case OpcodeJALR:
		return ClassJALR
	case OpcodeAUIPC:
		return ClassAUIPC
	case OpcodeLUI:
		return ClassLUI
	case OpcodeSYSTEM:
		return ClassSYSTEM
	default:
		return ClassIllegal
	}
}

// AluOp is the operator carried by Alu MacroOps (OP / OP-IMM / AUIPC / LUI).
type AluOp int

const (
	AluAdd AluOp = iota
	AluSub
	AluSll
	AluSlt
	AluSltu
	AluXor
	AluSrl
	AluSra
	AluOr
	AluAnd
)

// BrnOp is the operator carried by Brn MacroOps (conditional branches).
type BrnOp int

const (
	BrnEq BrnOp = iota
	BrnNe
	BrnLt
	BrnGe
	BrnLtu
	BrnGeu
)

// Width is a load/store access width.
type Width int

const (
	WidthByte Width = iota
	WidthHalf
	WidthWord
	WidthByteU
	WidthHalfU
)

// SysOp distinguishes ECALL from EBREAK.
type SysOp int

const (
	SysEcall SysOp = iota
	SysEbreak
)

// aluOpFromFunct maps (funct3, funct7bit5) to an AluOp for OP and OP-IMM
// instructions. funct7bit5 is bit 30 of the word (distinguishes ADD/SUB and
// SRL/SRA); it is ignored for every funct3 except 0x0 and 0x5. OP-IMM
// callers pass it only for funct3 0x5.
func aluOpFromFunct(funct3 uint32, funct7bit5 bool) AluOp {
	switch funct3 {
	case 0x0:
		if funct7bit5 {
			return AluSub
		}
		return AluAdd
	case 0x1:
		return AluSll
	case 0x2:
		return AluSlt
	case 0x3:
		return AluSltu
	case 0x4:
		return AluXor
	case 0x5:
		if funct7bit5 {
			return AluSra
		}
		return AluSrl
	case 0x6:
		return AluOr
	case 0x7:
		return AluAnd
	default:
		return AluAdd
	}
}

func brnOpFromFunct(funct3 uint32) (BrnOp, bool) {
	switch funct3 {
	case 0x0:
		return BrnEq, true
	case 0x1:
		return BrnNe, true
	case 0x4:
		return BrnLt, true
	case 0x5:
		return BrnGe, true
	case 0x6:
		return BrnLtu, true
	case 0x7:
		return BrnGeu, true
	default:
		return 0, false
	}
}

func widthFromFunct(funct3 uint32) (Width, bool) {
	switch funct3 {
	case 0x0:
		return WidthByte, true
	case 0x1:
		return WidthHalf, true
	case 0x2:
		return WidthWord, true
	case 0x4:
		return WidthByteU, true
	case 0x5:
		return WidthHalfU, true
	default:
		return 0, false
	}
}

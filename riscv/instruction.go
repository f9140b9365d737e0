package riscv

// Instruction is the structured decode of one 32-bit RV32I word: the
// external decoder's contract output.
type Instruction struct {
	Word   uint32
	Opcode Opcode
	Class  Class

	Rd, Rs1, Rs2 uint32
	Funct3       uint32

	Imm int32 // fully sign-extended, ISA-scaled

	Alu  AluOp
	Brn  BrnOp
	Width Width
	Sys  SysOp

	Illegal bool
}

// Decode structurally decodes a 32-bit RV32I word. It never returns an
// error: an unrecognised opcode or funct3 simply sets Illegal. Illegal
// instructions are treated as data flowing through the pipeline, not a
// Go error.
func Decode(word uint32) Instruction {
	ins := Instruction{
		Word:   word,
		Opcode: Opcode(word & 0x7F),
		Rd:     (word >> 7) & 0x1F,
		Rs1:    (word >> 15) & 0x1F,
		Rs2:    (word >> 20) & 0x1F,
		Funct3: (word >> 12) & 0x7,
	}
	ins.Class = ClassOf(ins.Opcode)
	funct7bit5 := (word>>30)&0x1 == 1

	switch ins.Class {
	case ClassOP:
		ins.Imm = 0
		ins.Alu = aluOpFromFunct(ins.Funct3, funct7bit5)
	case ClassOPIMM:
		ins.Imm = decodeImmI(word)
		if ins.Funct3 == 0x1 || ins.Funct3 == 0x5 {
			// SLLI/SRLI/SRAI: immediate is a 5-bit shift amount, funct7 bit
			// 30 distinguishes SRLI/SRAI as with the R-type ALU ops.
			ins.Imm = int32(word>>20) & 0x1F
		}
		// bit 30 is part of the immediate except for SRLI/SRAI: ADDI has no
		// SUB form.
		ins.Alu = aluOpFromFunct(ins.Funct3, funct7bit5 && ins.Funct3 == 0x5)
	case ClassLOAD:
		ins.Imm = decodeImmI(word)
		w, ok := widthFromFunct(ins.Funct3)
		if !ok {
			ins.Class = ClassIllegal
			ins.Illegal = true
			break
		}
		ins.Width = w
	case ClassSTORE:
		ins.Imm = decodeImmS(word)
		w, ok := widthFromFunct(ins.Funct3)
		if !ok || ins.Funct3 > 0x2 {
			ins.Class = ClassIllegal
			ins.Illegal = true
			break
		}
		ins.Width = w
	case ClassBRANCH:
		ins.Imm = decodeImmB(word)
		op, ok := brnOpFromFunct(ins.Funct3)
		if !ok {
			ins.Class = ClassIllegal
			ins.Illegal = true
			break
		}
		ins.Brn = op
	case ClassJAL:
		ins.Imm = decodeImmJ(word)
	case ClassJALR:
		ins.Imm = decodeImmI(word)
		if ins.Funct3 != 0 {
			ins.Class = ClassIllegal
			ins.Illegal = true
		}
	case ClassAUIPC, ClassLUI:
		ins.Imm = decodeImmU(word)
	case ClassSYSTEM:
		switch word {
		case 0x00000073:
			ins.Sys = SysEcall
		case 0x00100073:
			ins.Sys = SysEbreak
		default:
			ins.Class = ClassIllegal
			ins.Illegal = true
		}
	default:
		ins.Illegal = true
	}

	return ins
}

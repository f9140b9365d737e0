package riscv

// BranchKind is predecode's lightweight classification of a lane's control
// flow shape, discovered without full structural decode.
type BranchKind int

const (
	BranchNone BranchKind = iota
	BranchReturn
	BranchCallIndirect
	BranchCallRelative
	BranchCallAbsolute
	BranchJmpIndirect
	BranchJmpRelative
	BranchBrnRelative
)

// isLinkRegister reports whether r is one of the two calling-convention
// link registers (x1/ra or x5/t0).
func isLinkRegister(r uint32) bool {
	return r == 1 || r == 5
}

// ClassifyBranchKind applies predecode's JAL/JALR/BRANCH classification
// table, purely from the opcode/rd/rs1 fields (it does not need the fully
// decoded Instruction).
func ClassifyBranchKind(opcode Opcode, rd, rs1 uint32) BranchKind {
	switch opcode {
	case OpcodeJAL:
		if isLinkRegister(rd) {
			return BranchCallRelative
		}
		return BranchJmpRelative
	case OpcodeJALR:
		switch {
		case isLinkRegister(rd) && rs1 == 0:
			return BranchCallAbsolute
		case isLinkRegister(rd) && !isLinkRegister(rs1):
			return BranchCallIndirect
		case rd == 0 && isLinkRegister(rs1):
			return BranchReturn
		default:
			return BranchJmpIndirect
		}
	case OpcodeBRANCH:
		return BranchBrnRelative
	default:
		return BranchNone
	}
}

// IsUnconditional reports whether a branch kind is a non-conditional
// control-flow transfer (everything except brn-relative and none).
func (k BranchKind) IsUnconditional() bool {
	return k != BranchNone && k != BranchBrnRelative
}

// IsRelative reports whether the branch kind's target is PC-relative and
// therefore computable at predecode time.
func (k BranchKind) IsRelative() bool {
	return k == BranchCallRelative || k == BranchJmpRelative || k == BranchBrnRelative
}

package riscv_test

import (
	"testing"

	"github.com/jetsetilly/rv32oosim/riscv"
	"github.com/stretchr/testify/require"
)

func encodeI(opcode riscv.Opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 | rs1<<15 | funct3<<12 | rd<<7 | uint32(opcode)
}

func TestDecodeAddi(t *testing.T) {
	// ADDI x1, x0, 1
	word := encodeI(riscv.OpcodeOPIMM, 1, 0x0, 0, 1)
	ins := riscv.Decode(word)
	require.Equal(t, riscv.ClassOPIMM, ins.Class)
	require.Equal(t, riscv.AluAdd, ins.Alu)
	require.EqualValues(t, 1, ins.Rd)
	require.EqualValues(t, 0, ins.Rs1)
	require.EqualValues(t, 1, ins.Imm)
}

func TestDecodeIllegalOpcode(t *testing.T) {
	ins := riscv.Decode(0x0000007F) // opcode 0x7F is not a valid RV32I class
	require.True(t, ins.Illegal)
}

func TestImm20RoundTrip(t *testing.T) {
	for _, payload := range []int32{0, 1, -1, 255, -255, 0x3FFFF, -0x40000} {
		enc := riscv.EncodeImm20(payload)
		got := enc.Expand(riscv.FormatI)
		require.Equal(t, payload, got)
	}
}

func TestClassifyBranchKind(t *testing.T) {
	require.Equal(t, riscv.BranchCallRelative, riscv.ClassifyBranchKind(riscv.OpcodeJAL, 1, 0))
	require.Equal(t, riscv.BranchJmpRelative, riscv.ClassifyBranchKind(riscv.OpcodeJAL, 2, 0))
	require.Equal(t, riscv.BranchCallIndirect, riscv.ClassifyBranchKind(riscv.OpcodeJALR, 1, 2))
	require.Equal(t, riscv.BranchReturn, riscv.ClassifyBranchKind(riscv.OpcodeJALR, 0, 1))
	require.Equal(t, riscv.BranchCallAbsolute, riscv.ClassifyBranchKind(riscv.OpcodeJALR, 1, 0))
	require.Equal(t, riscv.BranchJmpIndirect, riscv.ClassifyBranchKind(riscv.OpcodeJALR, 2, 3))
	require.Equal(t, riscv.BranchBrnRelative, riscv.ClassifyBranchKind(riscv.OpcodeBRANCH, 0, 1))
}

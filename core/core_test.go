package core_test

import (
	"testing"

	"github.com/jetsetilly/rv32oosim/core"
	"github.com/jetsetilly/rv32oosim/internal/config"
	"github.com/jetsetilly/rv32oosim/memio"
	"github.com/jetsetilly/rv32oosim/riscv"
	"github.com/stretchr/testify/require"
)

func encodeI(opcode riscv.Opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 | rs1<<15 | funct3<<12 | rd<<7 | uint32(opcode)
}

func encodeR(opcode riscv.Opcode, rd, funct3, rs1, rs2 uint32, funct7bit5 bool) uint32 {
	w := rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | uint32(opcode)
	if funct7bit5 {
		w |= 1 << 30
	}
	return w
}

func encodeJ(rd uint32, imm int32) uint32 {
	u := uint32(imm)
	bit20 := (u >> 20) & 0x1
	bits19_12 := (u >> 12) & 0xFF
	bit11 := (u >> 11) & 0x1
	bits10_1 := (u >> 1) & 0x3FF
	return bit20<<31 | bits10_1<<21 | bit11<<20 | bits19_12<<12 | rd<<7 | uint32(riscv.OpcodeJAL)
}

func addi(rd, rs1 uint32, imm int32) uint32 {
	return encodeI(riscv.OpcodeOPIMM, rd, 0x0, rs1, imm)
}

// newRAMWithProgram writes NOPs (ADDI x0, x0, 0) across the whole RAM, then overlays
// the given words starting at offset 0, so every fetch past the caller's
// program finds harmless, non-terminating filler.
func newRAMWithProgram(t *testing.T, size int, words ...uint32) *memio.RAM {
	t.Helper()
	ram := memio.NewRAM(size)
	nop := addi(0, 0, 0)
	var buf [4]byte
	for off := 0; off+4 <= size; off += 4 {
		buf[0] = byte(nop)
		buf[1] = byte(nop >> 8)
		buf[2] = byte(nop >> 16)
		buf[3] = byte(nop >> 24)
		ram.WriteBytes(uint32(off), buf[:])
	}
	for i, w := range words {
		buf[0] = byte(w)
		buf[1] = byte(w >> 8)
		buf[2] = byte(w >> 16)
		buf[3] = byte(w >> 24)
		ram.WriteBytes(uint32(i*4), buf[:])
	}
	return ram
}

func TestNopStreamRunsWithoutFatalError(t *testing.T) {
	cfg := config.Default()
	ram := newRAMWithProgram(t, 4096)
	c := core.NewCore(cfg, ram, 0)

	for i := 0; i < 200; i++ {
		c.Step()
		require.NoError(t, c.Err())
	}

	require.EqualValues(t, 200, c.Cycle())
}

func TestUnconditionalJalRedirectsFetch(t *testing.T) {
	cfg := config.Default()
	// JAL x1, target 0x100 at lane 2 (byte offset 8) of the first block.
	target := int32(0x100 - 8)
	ram := newRAMWithProgram(t, 4096,
		addi(0, 0, 0),
		addi(0, 0, 0),
		encodeJ(1, target),
	)
	c := core.NewCore(cfg, ram, 0)

	redirected := false
	for i := 0; i < 64; i++ {
		c.Step()
		require.NoError(t, c.Err())
		if c.PendingFetchPC() == 0x100 {
			redirected = true
			break
		}
	}
	require.True(t, redirected, "fetch never redirected to the JAL target")
}

func TestFreelistStarvationStallsRename(t *testing.T) {
	cfg := config.Default()
	cfg.PhysicalRegisters = 3 // 2 free names (0 is reserved)
	cfg.DBQCapacity = 8
	cfg.RBQCapacity = 8

	ram := newRAMWithProgram(t, 4096,
		addi(1, 0, 1),
		addi(2, 0, 1),
		addi(3, 0, 1),
	)
	c := core.NewCore(cfg, ram, 0)

	sawStall := false
	for i := 0; i < 32; i++ {
		c.Step()
		require.NoError(t, c.Err())
		s := c.Snapshot()
		if s.FreeRegs == 2 && s.DBQ > 0 {
			sawStall = true
		}
	}
	require.True(t, sawStall, "rename never stalled on an exhausted freelist")
}

func TestMoveIdiomDoesNotConsumeFreelist(t *testing.T) {
	cfg := config.Default()
	cfg.PhysicalRegisters = 2 // 1 free name total
	ram := newRAMWithProgram(t, 4096,
		addi(1, 0, 0), // ADDI x1, x0, 0: zero idiom, no allocation needed
	)
	c := core.NewCore(cfg, ram, 0)

	for i := 0; i < 32; i++ {
		c.Step()
		require.NoError(t, c.Err())
	}

	require.Equal(t, 1, c.Snapshot().FreeRegs, "zero-idiom rename must not allocate a physical register")
}

// TestChainedMoveIdiomPropagatesThroughLocalBypass exercises a
// same-block "B=A; C=B" chain: x2's copy of x1
// must resolve through the intra-block local bypass to x1's own
// idiom-collapsed source, not trigger a real allocation, while the
// block's one genuinely new value still gets the one free name left.
func TestChainedMoveIdiomPropagatesThroughLocalBypass(t *testing.T) {
	cfg := config.Default()
	cfg.PhysicalRegisters = 2 // 1 free name total
	ram := newRAMWithProgram(t, 4096,
		addi(1, 0, 0), // x1 = 0: zero idiom
		addi(2, 1, 0), // x2 = x1 + 0: move idiom, chained off the local bypass
		addi(3, 0, 5), // x3 = 5: the block's one real allocation
	)
	c := core.NewCore(cfg, ram, 0)

	sawAllocated := false
	for i := 0; i < 32; i++ {
		c.Step()
		require.NoError(t, c.Err())
		if c.Snapshot().FreeRegs == 0 {
			sawAllocated = true
		}
	}
	require.True(t, sawAllocated, "the block's one non-idiom lane never consumed the remaining free name")
	require.Equal(t, 0, c.Snapshot().FreeRegs)
}

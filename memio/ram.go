// Package memio is ordinary glue, not a stateful pipeline component: a
// byte-addressable RAM and an ELF32 loader. Neither is a stateful pipeline
// element, so neither lives in rtl or core.
package memio

import (
	"fmt"

	"github.com/jetsetilly/rv32oosim/internal/curated"
)

// RAM is a flat, bounds-checked byte array. Reads and writes
// of out-of-range slices panic ("both panic on out-of-range access")
// rather than returning an error:
// an out-of-range RAM access is a host bug (a bad ELF, a runaway fetch
// address), not a recoverable simulation condition.
type RAM struct {
	bytes []byte
}

// NewRAM allocates a RAM of the given size, reference value 32 MiB.
func NewRAM(size int) *RAM {
	return &RAM{bytes: make([]byte, size)}
}

// Size returns the RAM's capacity in bytes.
func (r *RAM) Size() int {
	return len(r.bytes)
}

// ReadBytes copies len(dst) bytes starting at offset into dst.
func (r *RAM) ReadBytes(offset uint32, dst []byte) {
	end := uint64(offset) + uint64(len(dst))
	if end > uint64(len(r.bytes)) {
		panic(curated.Errorf(curated.RamOutOfRange+": read [0x%x, 0x%x) exceeds RAM size 0x%x", offset, end, len(r.bytes)))
	}
	copy(dst, r.bytes[offset:end])
}

// WriteBytes copies src into RAM starting at offset.
func (r *RAM) WriteBytes(offset uint32, src []byte) {
	end := uint64(offset) + uint64(len(src))
	if end > uint64(len(r.bytes)) {
		panic(curated.Errorf(curated.RamOutOfRange+": write [0x%x, 0x%x) exceeds RAM size 0x%x", offset, end, len(r.bytes)))
	}
	copy(r.bytes[offset:end], src)
}

// ReadWord reads a little-endian 32-bit word at offset. The four bytes
// are combined explicitly rather than reinterpreted via a raw
// transmute, so this behaves identically regardless of host endianness.
func (r *RAM) ReadWord(offset uint32) uint32 {
	var b [4]byte
	r.ReadBytes(offset, b[:])
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// String reports the RAM's size for diagnostic printing.
func (r *RAM) String() string {
	return fmt.Sprintf("RAM(%d bytes)", len(r.bytes))
}

package memio

import (
	"debug/elf"

	"github.com/jetsetilly/rv32oosim/internal/curated"
)

// LoadELF loads every PT_LOAD segment of the ELF32 binary at path into ram
// at its physical address and returns the entry point. This
// follows the teacher's own precedent of reaching for the standard
// library's debug/elf rather than a third-party ELF parser (see
// coprocessor/developer/dwarf/elf_shim.go in the teacher repo): ELF loading
// is explicitly out of scope for this model and the ISA
// committee, not this design, owns the file format.
func LoadELF(path string, ram *RAM) (entry uint32, err error) {
	f, err := elf.Open(path)
	if err != nil {
		return 0, curated.Errorf(curated.ElfLoadFailed+": %v", err)
	}
	defer f.Close()

	if f.Class != elf.ELFCLASS32 {
		return 0, curated.Errorf(curated.ElfLoadFailed + ": not an ELF32 binary")
	}

	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		data := make([]byte, prog.Filesz)
		if _, err := prog.ReadAt(data, 0); err != nil {
			return 0, curated.Errorf(curated.ElfLoadFailed+": reading PT_LOAD segment: %v", err)
		}
		ram.WriteBytes(uint32(prog.Paddr), data)
	}

	return uint32(f.Entry), nil
}

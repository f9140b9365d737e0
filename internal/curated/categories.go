package curated

// Heads used as the first argument to Errorf throughout this module, grouped
// by error class. Kept as exported string constants (rather
// than an Errno enum, as the teacher does) because this model's errors carry
// structured Values more often than the teacher's did, and tests match
// against these heads with Is()/Has() directly.
const (
	// structural contract violations (fatal)
	DriverConflict  = "driver conflict"
	QueueOverflow   = "queue overflow"
	QueueUnderflow  = "queue underflow"
	RewriteCapExceeded = "rewrite cap exceeded"
	PortConflict    = "port conflict"

	// resource exhaustion (non-fatal stall signal)
	Stall = "stall"

	// glue
	ElfLoadFailed = "elf load failed"
	RamOutOfRange = "ram access out of range"
)

// Package config collects the construction-time parameters of the model:
// pool sizes, queue capacities and pass limits, pinned to reference values
// but left open for a harness to override.
package config

import "encoding/json"

// Config holds every construction-time parameter of the model.
type Config struct {
	// RAMBytes is the size of the byte-addressable RAM backing fetch.
	// Reference value: 32 MiB.
	RAMBytes int `json:"ram_bytes"`

	// PhysicalRegisters is the size of the physical register pool, P.
	// Reference value: 256. Name 0 is reserved.
	PhysicalRegisters int `json:"physical_registers"`

	// ROBDepth is the number of entries in the reorder buffer.
	ROBDepth int `json:"rob_depth"`

	// SchedulerSlots is the fixed number of integer scheduler slots.
	SchedulerSlots int `json:"scheduler_slots"`

	// CFMCapacity is not read by the model: cfm.New takes no capacity and
	// the control-flow map never evicts an entry.
	CFMCapacity int `json:"cfm_capacity"`

	// FTQCapacity, FBQCapacity, PDQCapacity, DBQCapacity, RBQCapacity are the
	// per-queue capacities between adjacent front-end stages.
	FTQCapacity int `json:"ftq_capacity"`
	FBQCapacity int `json:"fbq_capacity"`
	PDQCapacity int `json:"pdq_capacity"`
	DBQCapacity int `json:"dbq_capacity"`
	RBQCapacity int `json:"rbq_capacity"`

	// RewritePassCap bounds the rename fixed-point loop. Exceeding it is a
	// fatal bug, never silently clamped.
	RewritePassCap int `json:"rewrite_pass_cap"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		RAMBytes:          32 * 1024 * 1024,
		PhysicalRegisters: 256,
		ROBDepth:          64,
		SchedulerSlots:    32,
		CFMCapacity:       1024,
		FTQCapacity:       8,
		FBQCapacity:       4,
		PDQCapacity:       4,
		DBQCapacity:       4,
		RBQCapacity:       4,
		RewritePassCap:    16,
	}
}

// ParseJSON overlays fields present in data onto a copy of c, used by
// regression harnesses that want to override only a handful of parameters.
func (c Config) ParseJSON(data []byte) (Config, error) {
	out := c
	if err := json.Unmarshal(data, &out); err != nil {
		return c, err
	}
	return out, nil
}

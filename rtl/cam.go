package rtl

import "github.com/jetsetilly/rv32oosim/internal/curated"

// AsyncReadCam is a content-addressable memory with combinational (async)
// reads and staged (sync) writes. Reads reflect the
// pre-tick mapping; multiple writes driven to the same key in one cycle
// resolve LIFO over the per-cycle driven list: the earliest-driven write of
// a repeated key wins, because application walks the driven list newest
// first and an unconditional map assignment lets the oldest entry have the
// final say. This choice is pinned by a test (rtl/cam_test.go exercises it).
type AsyncReadCam[K comparable, V any] struct {
	table  map[K]V
	driven []camWrite[K, V]
}

type camWrite[K comparable, V any] struct {
	key K
	val V
}

// NewAsyncReadCam creates an empty AsyncReadCam.
func NewAsyncReadCam[K comparable, V any]() *AsyncReadCam[K, V] {
	return &AsyncReadCam[K, V]{table: make(map[K]V)}
}

// Sample returns the current mapping for key and whether it exists.
// Combinational.
func (c *AsyncReadCam[K, V]) Sample(key K) (V, bool) {
	v, ok := c.table[key]
	return v, ok
}

// Drive stages an insertion of key -> val, effective on the next Tick.
func (c *AsyncReadCam[K, V]) Drive(key K, val V) {
	c.driven = append(c.driven, camWrite[K, V]{key: key, val: val})
}

// Tick applies every staged insertion in LIFO order (see type doc) and
// clears the staged list.
func (c *AsyncReadCam[K, V]) Tick() {
	for i := len(c.driven) - 1; i >= 0; i-- {
		c.table[c.driven[i].key] = c.driven[i].val
	}
	c.driven = nil
}

// Len returns the number of entries currently held.
func (c *AsyncReadCam[K, V]) Len() int {
	return len(c.table)
}

// SyncReadCam is a content-addressable memory with a fixed number of
// synchronous read and write ports. A key driven on read
// port p in cycle N produces a record on Sample(p) after the Tick that ends
// cycle N (i.e. visible in cycle N+1); an undriven read port produces no
// record until it is driven again.
type SyncReadCam[K comparable, V any] struct {
	table map[K]V

	readPorts int
	rpKey     []K
	rpDriven  []bool
	rpResult  []CamResult[K, V]
	rpNext    []CamResult[K, V]
	rpHasNext []bool

	wpDriven []bool
	wpKey    []K
	wpVal    []V
}

// CamResult is what a SyncReadCam read port produces: the key that was
// queried and, if present, its mapped value.
type CamResult[K comparable, V any] struct {
	Index K
	Data  V
	Found bool
}

// NewSyncReadCam creates a SyncReadCam with the given number of read and
// write ports.
func NewSyncReadCam[K comparable, V any](readPorts, writePorts int) *SyncReadCam[K, V] {
	return &SyncReadCam[K, V]{
		table:     make(map[K]V),
		readPorts: readPorts,
		rpKey:     make([]K, readPorts),
		rpDriven:  make([]bool, readPorts),
		rpResult:  make([]CamResult[K, V], readPorts),
		rpNext:    make([]CamResult[K, V], readPorts),
		rpHasNext: make([]bool, readPorts),
		wpDriven:  make([]bool, writePorts),
		wpKey:     make([]K, writePorts),
		wpVal:     make([]V, writePorts),
	}
}

// DriveReadPort stages a read of key on the given port for this cycle. It is
// a contract violation to drive the same read port twice in one cycle.
func (c *SyncReadCam[K, V]) DriveReadPort(port int, key K) error {
	if c.rpDriven[port] {
		return curated.Errorf(curated.PortConflict+": SyncReadCam read port %d driven twice in one cycle", port)
	}
	c.rpKey[port] = key
	c.rpDriven[port] = true
	return nil
}

// DriveWritePort stages an insertion of key -> val on the given write port
// for this cycle. It is a contract violation to drive the same write port
// twice in one cycle.
func (c *SyncReadCam[K, V]) DriveWritePort(port int, key K, val V) error {
	if c.wpDriven[port] {
		return curated.Errorf(curated.PortConflict+": SyncReadCam write port %d driven twice in one cycle", port)
	}
	c.wpKey[port] = key
	c.wpVal[port] = val
	c.wpDriven[port] = true
	return nil
}

// Sample returns the result latched for the given read port from the key
// driven one cycle ago. The zero CamResult (Found=false) is returned for a
// port that has never been driven.
func (c *SyncReadCam[K, V]) Sample(port int) CamResult[K, V] {
	return c.rpResult[port]
}

// Tick computes each driven read port's result against the pre-write table,
// applies every driven write, then latches the read results.
func (c *SyncReadCam[K, V]) Tick() {
	for p := range c.rpDriven {
		if c.rpDriven[p] {
			v, ok := c.table[c.rpKey[p]]
			c.rpNext[p] = CamResult[K, V]{Index: c.rpKey[p], Data: v, Found: ok}
			c.rpHasNext[p] = true
		}
	}
	for p := range c.wpDriven {
		if c.wpDriven[p] {
			c.table[c.wpKey[p]] = c.wpVal[p]
			c.wpDriven[p] = false
		}
	}
	for p := range c.rpDriven {
		if c.rpHasNext[p] {
			c.rpResult[p] = c.rpNext[p]
			c.rpHasNext[p] = false
		}
		c.rpDriven[p] = false
	}
}

// Package assert provides a handful of debugging-only invariant checks,
// kept small (the teacher's assert package is the same shape: a
// goroutine-id helper used to back a single-threaded invariant check).
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GoroutineID returns an identifier that is different between goroutines and
// consistent for a given goroutine. Only ever use this for debugging or
// tests: this model is explicitly single-threaded, so a
// ClockDomain that observes more than one goroutine id across its lifetime
// indicates a test harness bug, not a supported configuration.
func GoroutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

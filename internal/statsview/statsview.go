// Package statsview wraps github.com/go-echarts/statsview to expose the
// pipeline's per-cycle occupancy as a live dashboard, gated behind the
// CLI's -statsview flag so a plain batch run pays no overhead. Front-end
// occupancy is published through expvar, the same mechanism statsview
// itself uses for the runtime counters it already charts, and served
// alongside statsview's own HTTP endpoint.
package statsview

import (
	"expvar"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Source is anything that can report a point-in-time occupancy snapshot.
// core.Core satisfies this without statsview needing to import core.
type Source interface {
	FTQLen() int
	FBQLen() int
	PDQLen() int
	DBQLen() int
	RBQLen() int
	FreeRegs() int
	ROBLen() int
	SchedFree() int
}

var (
	mu     sync.Mutex
	latest Source
)

var gauges = map[string]func(Source) int{
	"rv32sim_ftq_len":    func(s Source) int { return s.FTQLen() },
	"rv32sim_fbq_len":    func(s Source) int { return s.FBQLen() },
	"rv32sim_pdq_len":    func(s Source) int { return s.PDQLen() },
	"rv32sim_dbq_len":    func(s Source) int { return s.DBQLen() },
	"rv32sim_rbq_len":    func(s Source) int { return s.RBQLen() },
	"rv32sim_free_regs":  func(s Source) int { return s.FreeRegs() },
	"rv32sim_rob_len":    func(s Source) int { return s.ROBLen() },
	"rv32sim_sched_free": func(s Source) int { return s.SchedFree() },
}

func init() {
	for name, read := range gauges {
		read := read
		expvar.Publish(name, expvar.Func(func() any {
			mu.Lock()
			s := latest
			mu.Unlock()
			if s == nil {
				return 0
			}
			return read(s)
		}))
	}
}

// Update publishes the Core's current snapshot for the dashboard to read on
// its own polling interval.
func Update(s Source) {
	mu.Lock()
	latest = s
	mu.Unlock()
}

// Serve starts the statsview HTTP server on addr and blocks; callers run it
// in its own goroutine.
func Serve(addr string) {
	viewer.SetConfiguration(viewer.WithAddr(addr), viewer.WithTheme(viewer.ThemeWesteros))
	mgr := statsview.New()
	mgr.Start()
}

// Command rv32sim drives the core front-end simulator against an ELF32
// RV32I binary for a fixed cycle budget, printing per-cycle occupancy
// diagnostics in the teacher's terse, line-oriented style (see the
// teacher's own cmd/debugger driver for the house convention of a small
// flag.FlagSet plus a single run loop).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jetsetilly/rv32oosim/core"
	"github.com/jetsetilly/rv32oosim/internal/config"
	"github.com/jetsetilly/rv32oosim/internal/logger"
	"github.com/jetsetilly/rv32oosim/internal/statsview"
	"github.com/jetsetilly/rv32oosim/memio"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "rv32sim:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("rv32sim", flag.ContinueOnError)
	cycles := fs.Uint64("cycles", 100000, "maximum number of cycles to simulate")
	verbose := fs.Bool("v", false, "print per-cycle occupancy diagnostics")
	dashboard := fs.Bool("statsview", false, "serve a live occupancy dashboard")
	dashboardAddr := fs.String("statsview-addr", "0.0.0.0:18066", "address for the statsview dashboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: rv32sim [flags] <elf-path>")
	}

	cfg := config.Default()
	ram := memio.NewRAM(cfg.RAMBytes)

	entry, err := memio.LoadELF(fs.Arg(0), ram)
	if err != nil {
		return err
	}

	c := core.NewCore(cfg, ram, entry)

	if *dashboard {
		go statsview.Serve(*dashboardAddr)
	}

	for i := uint64(0); i < *cycles; i++ {
		c.Step()

		if *dashboard {
			statsview.Update(c)
		}

		if *verbose {
			s := c.Snapshot()
			logger.Logf(logger.Allow, "rv32sim", "cycle %d: ftq=%d fbq=%d pdq=%d dbq=%d rbq=%d free=%d rob=%d sched_free=%d",
				c.Cycle(), s.FTQ, s.FBQ, s.PDQ, s.DBQ, s.RBQ, s.FreeRegs, s.ROB, s.SchedFree)
			logger.Tail(os.Stdout, 1)
		}

		if err := c.Err(); err != nil {
			logger.Write(os.Stderr)
			return err
		}
	}

	fmt.Printf("ran %d cycles, entry=0x%08x\n", c.Cycle(), entry)
	return nil
}

package core

// stepIFU is the instruction-fetch stage. It reads the FTQ
// front, reads the aligned 32-byte window out of memory, and enqueues it to
// the FBQ.
func (c *Core) stepIFU() {
	front, ok := c.ftq.Front()
	if !ok {
		return
	}

	fb := FetchBlock{
		Addr:        front.AlignedAddr(),
		StartOffset: front.StartOffset(),
	}
	c.ram.ReadBytes(fb.Addr, fb.Bytes[:])

	_, enqOK, err := c.fbq.Enq(fb)
	if err != nil {
		c.fatal(err)
		return
	}
	if !enqOK {
		// FBQ full: stall, retry the same FTQ front next cycle.
		return
	}

	if err := c.ftq.SetDeq(); err != nil {
		c.fatal(err)
	}
}

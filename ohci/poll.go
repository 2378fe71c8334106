package ohci

import (
	"context"
	"time"

	"github.com/ardnew/ohci/pkg"
)

// pollInterval is the sleep between polls, giving a bounded worst-case
// completion latency on platforms that cannot route the controller's
// interrupt line.
const pollInterval = 10 * time.Millisecond

// RunPoll runs the polling emulator: a cooperative loop that reads the
// interrupt-status register, write-clears the bits it saw, and invokes
// [Controller.Interrupt] with that value, then sleeps. It returns when ctx
// is cancelled. Functionally it is equivalent to the IRQ path with a
// worst-case latency of pollInterval.
func (c *Controller) RunPoll(ctx context.Context) {
	pkg.LogInfo(pkg.ComponentPoll, "polling emulator started")
	defer pkg.LogInfo(pkg.ComponentPoll, "polling emulator stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		status := c.regs.interruptStatus()
		if status != 0 {
			c.regs.ackInterrupt(status)
			if err := c.Interrupt(status); err != nil {
				pkg.LogWarn(pkg.ComponentPoll, "interrupt handling failed", "error", err)
			}
		}

		time.Sleep(pollInterval)
	}
}

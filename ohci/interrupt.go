package ohci

import (
	"fmt"

	"github.com/ardnew/ohci/pkg"
)

// Interrupt services one latched interrupt-status value. Start-of-frame is
// masked out before anything else runs; the dispatcher never acts on it. A status
// that is zero after masking is a no-op: no callbacks fire, no registers
// are written.
func (c *Controller) Interrupt(status uint32) error {
	status &^= IntSF
	if status == 0 {
		return nil
	}

	if status&IntSO != 0 {
		pkg.LogWarn(pkg.ComponentInterrupt, "scheduling overrun")
	}

	if status&IntRHSC != 0 {
		if c.rootHub != nil {
			c.rootHub.Interrupt()
		}
	}

	if status&IntWDH != 0 {
		c.reapDone()
	}

	if status&IntUE != 0 {
		pkg.LogError(pkg.ComponentInterrupt, "unrecoverable controller error, restarting")
		if err := c.Start(); err != nil {
			return fmt.Errorf("%w: restart failed: %v", pkg.ErrHardwareUnrecoverable, err)
		}
	}

	return nil
}

// reapDone walks the pending-batch set under the instance guard, unlinking
// and finishing every batch whose completion predicate returns true. The
// guard is held across the whole walk and across every finish callback, so
// those callbacks must be bounded and must not re-enter the scheduler for
// this instance.
func (c *Controller) reapDone() {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := c.pending[:0]
	for _, b := range c.pending {
		if b.IsComplete() {
			b.Finish()
			continue
		}
		remaining = append(remaining, b)
	}
	c.pending = remaining
}

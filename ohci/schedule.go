package ohci

import "github.com/ardnew/ohci/pkg"

// Schedule submits a batch for execution. A batch addressed to the root
// hub's pseudo-device is forwarded synchronously and never touches the
// pending-batch set. Otherwise the batch is appended to the pending set
// and committed: its descriptors are linked into its endpoint's ED queue,
// and for control/bulk transfer types the matching list-filled bit is set
// to nudge the controller into rereading the list on this frame (periodic
// schedules are walked every frame regardless).
func (c *Controller) Schedule(b Batch, tt TransferType) error {
	if c.rootHub != nil && b.TargetAddress() == c.rootHub.Address() {
		return c.rootHub.Request(b)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = append(c.pending, b)
	b.Commit()

	switch tt {
	case TransferControl:
		c.regs.setCommandStatus(c.regs.commandStatus() | CmdStatusCLF)
	case TransferBulk:
		c.regs.setCommandStatus(c.regs.commandStatus() | CmdStatusBLF)
	}

	addr, num, dir := b.Endpoint()
	pkg.LogDebug(pkg.ComponentSchedule, "batch scheduled",
		"address", addr, "endpoint", num, "direction", dir, "type", tt)
	return nil
}

// pendingCount reports the size of the pending-batch set, used by tests
// asserting pending-batch closure.
func (c *Controller) pendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

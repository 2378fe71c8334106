package ohci

import (
	"time"

	"github.com/ardnew/ohci/pkg"
)

// hcrPollInterval bounds how often Start polls for the self-clearing
// host-controller reset. The reset itself typically completes in
// microseconds; this only avoids a hot spin.
const hcrPollInterval = time.Microsecond * 10

// Start brings the controller from whatever state GainControl left it in
// to fully operational: reset, reprogram the schedule registers, enable
// the lists, unmask interrupts, and transition the functional state.
func (c *Controller) Start() error {
	fmInterval := c.regs.fmInterval()

	c.regs.setCommandStatus(c.regs.commandStatus() | CmdStatusHCR)

	started := time.Now()
	for c.regs.commandStatus()&CmdStatusHCR != 0 {
		time.Sleep(hcrPollInterval)
	}
	pkg.LogDebug(pkg.ComponentController, "host controller reset complete",
		"elapsed", time.Since(started))

	c.regs.setFmInterval(fmInterval)

	c.regs.setHCCA(c.hcca.phys())
	c.regs.setBulkHead(c.listFor(TransferBulk).headPhys())
	c.regs.setControlHead(c.listFor(TransferControl).headPhys())

	ctl := c.regs.control()
	ctl |= ControlPLE | ControlIE | ControlCLE | ControlBLE
	c.regs.setControl(ctl)

	c.regs.setInterruptEnable(UsedInterrupts)
	c.regs.setInterruptEnable(IntMIE)

	fi := FrameInterval(fmInterval)
	periodicStart := (fi / 10) * 9
	c.regs.setPeriodicStart(periodicStart)

	c.regs.setControl(SetHCFS(c.regs.control(), HCFSOperational))

	pkg.LogInfo(pkg.ComponentController, "controller operational",
		"fm_interval", fi, "periodic_start", periodicStart)
	return nil
}

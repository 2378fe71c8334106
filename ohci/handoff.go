package ohci

import (
	"context"
	"time"

	"github.com/ardnew/ohci/pkg"
)

// Handoff timing constants, straight from the USB 1.1 specification's
// reset-hold and resume-wait requirements.
const (
	resetHoldDelay  = 50 * time.Millisecond
	resumeWaitDelay = 20 * time.Millisecond

	handoffSpinInterval = time.Microsecond * 50
)

// GainControl executes the ownership-handoff protocol that wrests the
// controller from whatever firmware owns it (SMM, a BIOS-resident driver,
// or nothing at all on a cold start) into driver control. It runs once,
// before any schedule is programmed.
//
// ctx governs the SMM-ownership spin in step 2. The USB specification
// gives firmware no bound on how long ownership change may take, so
// context.Background() reproduces that unbounded wait exactly; a caller
// wanting a safety deadline may pass a context with a timeout instead.
func (c *Controller) GainControl(ctx context.Context) (pkg.HandoffOutcome, error) {
	if rev := c.regs.revision(); rev&RevisionLegacyMask != 0 {
		// Legacy support present: mask the emulation register down to the
		// gate-A20 bit. Clearing it directly reboots some platforms.
		c.regs.setLegacyControl(c.regs.legacyControl() & gateA20Bit)
	}

	ctl := c.regs.control()
	if ctl&ControlIR != 0 {
		pkg.LogInfo(pkg.ComponentHandoff, "firmware owns controller, requesting ownership change")
		c.regs.setCommandStatus(c.regs.commandStatus() | CmdStatusOCR)

		for {
			if c.regs.control()&ControlIR == 0 {
				break
			}
			select {
			case <-ctx.Done():
				return pkg.HandoffUnknown, ctx.Err()
			case <-time.After(handoffSpinInterval):
			}
		}

		c.regs.setControl(SetHCFS(c.regs.control(), HCFSReset))
		time.Sleep(resetHoldDelay)
		pkg.LogInfo(pkg.ComponentHandoff, "ownership change complete")
		return pkg.HandoffSMMOwned, nil
	}

	switch state := HCFS(ctl); state {
	case HCFSOperational:
		pkg.LogInfo(pkg.ComponentHandoff, "firmware already running controller, leaving operational")
		return pkg.HandoffBIOSRunning, nil
	case HCFSSuspend:
		c.regs.setControl(SetHCFS(ctl, HCFSResume))
		time.Sleep(resumeWaitDelay)
		pkg.LogInfo(pkg.ComponentHandoff, "resumed suspended controller")
		return pkg.HandoffBIOSSuspended, nil
	default: // RESET
		time.Sleep(resetHoldDelay)
		pkg.LogInfo(pkg.ComponentHandoff, "cold start, held reset")
		return pkg.HandoffColdStart, nil
	}
}

// gateA20Bit is the legacy-emulation register bit that must survive the
// legacy-mask step: clearing the rest of the register disables legacy
// keyboard/mouse emulation without touching gate-A20 state.
const gateA20Bit uint32 = 1 << 8

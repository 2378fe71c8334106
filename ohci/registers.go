package ohci

import "github.com/ardnew/ohci/mmio"

// Register byte offsets from the controller's base address, as laid out by
// the OHCI specification.
const (
	RegRevision         uint32 = 0x00
	RegControl          uint32 = 0x04
	RegCommandStatus    uint32 = 0x08
	RegInterruptStatus  uint32 = 0x0C
	RegInterruptEnable  uint32 = 0x10
	RegInterruptDisable uint32 = 0x14
	RegHCCA             uint32 = 0x18
	RegPeriodCurrentED  uint32 = 0x1C
	RegControlHeadED    uint32 = 0x20
	RegControlCurrentED uint32 = 0x24
	RegBulkHeadED       uint32 = 0x28
	RegBulkCurrentED    uint32 = 0x2C
	RegDoneHead         uint32 = 0x30
	RegFmInterval       uint32 = 0x34
	RegFmRemaining      uint32 = 0x38
	RegFmNumber         uint32 = 0x3C
	RegPeriodicStart    uint32 = 0x40
	RegLSThreshold      uint32 = 0x44
	RegRhDescriptorA    uint32 = 0x48
	RegRhDescriptorB    uint32 = 0x4C
	RegRhStatus         uint32 = 0x50
	RegRhPortStatusBase uint32 = 0x54
	RegLegacyControl    uint32 = 0x100
)

// RegRhPortStatus returns the offset of the port-status register for the
// given 1-based root-hub port.
func RegRhPortStatus(port int) uint32 {
	return RegRhPortStatusBase + uint32(port-1)*4
}

// HcRevision bits.
const RevisionLegacyMask uint32 = 0x0100

// HcControl bits and fields.
const (
	ControlPLE uint32 = 1 << 2 // periodic list enable
	ControlIE  uint32 = 1 << 3 // isochronous list enable
	ControlCLE uint32 = 1 << 4 // control list enable
	ControlBLE uint32 = 1 << 5 // bulk list enable
	ControlIR  uint32 = 1 << 8 // interrupt routing (firmware/SMM owns the device)

	controlHCFSShift = 6
	controlHCFSMask  = 0x3 << controlHCFSShift
)

// HCFS functional-state codes, the 2-bit field at HcControl[7:6].
const (
	HCFSReset       uint32 = 0
	HCFSResume      uint32 = 1
	HCFSOperational uint32 = 2
	HCFSSuspend     uint32 = 3
)

// HCFS reads the functional-state field out of a control register value.
func HCFS(control uint32) uint32 {
	return (control & controlHCFSMask) >> controlHCFSShift
}

// SetHCFS returns control with its functional-state field replaced by state.
func SetHCFS(control, state uint32) uint32 {
	return (control &^ controlHCFSMask) | ((state << controlHCFSShift) & controlHCFSMask)
}

// HcCommandStatus bits.
const (
	CmdStatusHCR uint32 = 1 << 0 // host controller reset
	CmdStatusCLF uint32 = 1 << 1 // control list filled
	CmdStatusBLF uint32 = 1 << 2 // bulk list filled
	CmdStatusOCR uint32 = 1 << 3 // ownership change request
)

// HcInterruptStatus / Enable / Disable bits.
const (
	IntSO   uint32 = 1 << 0  // scheduling overrun
	IntWDH  uint32 = 1 << 1  // writeback done head
	IntSF   uint32 = 1 << 2  // start of frame
	IntRD   uint32 = 1 << 3  // resume detected
	IntUE   uint32 = 1 << 4  // unrecoverable error
	IntFNO  uint32 = 1 << 5  // frame number overflow
	IntRHSC uint32 = 1 << 6  // root hub status change
	IntOC   uint32 = 1 << 30 // ownership change
	IntMIE  uint32 = 1 << 31 // master interrupt enable
)

// UsedInterrupts is the mask of interrupt bits this core handles. SF is
// deliberately excluded even though the controller may raise it; the
// dispatcher masks it out and never acts on it.
const UsedInterrupts uint32 = IntSO | IntWDH | IntUE | IntRHSC

// HcFmInterval fields.
const fmIntervalFIMask uint32 = 0x3FFF

// FrameInterval extracts the FI (frame interval) field.
func FrameInterval(fmInterval uint32) uint32 {
	return fmInterval & fmIntervalFIMask
}

// regs is a typed accessor over the controller's memory-mapped register
// window. Every access goes through the window so ordering with respect to
// the controller's own DMA writes is preserved; callers never read or write
// the window directly.
type regs struct {
	w mmio.Window
}

func (r regs) read(offset uint32) uint32  { return r.w.ReadL(offset) }
func (r regs) write(offset, value uint32) { r.w.WriteL(offset, value) }

func (r regs) revision() uint32          { return r.read(RegRevision) }
func (r regs) control() uint32           { return r.read(RegControl) }
func (r regs) setControl(v uint32)       { r.write(RegControl, v) }
func (r regs) commandStatus() uint32     { return r.read(RegCommandStatus) }
func (r regs) setCommandStatus(v uint32) { r.write(RegCommandStatus, v) }
func (r regs) interruptStatus() uint32   { return r.read(RegInterruptStatus) }
func (r regs) ackInterrupt(v uint32)     { r.write(RegInterruptStatus, v) }

// setInterruptEnable sets additional bits in the interrupt-enable mask.
// HcInterruptEnable is a write-to-set register on real hardware: writing a
// bit enables it without disturbing bits already enabled. This accessor
// reproduces that by reading the current mask back before writing, since
// the register window beneath it may be plain memory rather than real
// set-on-write hardware.
func (r regs) setInterruptEnable(v uint32) { r.write(RegInterruptEnable, r.read(RegInterruptEnable)|v) }

// setInterruptDisable clears bits in the interrupt-enable mask, mirroring
// HcInterruptDisable's write-to-clear semantics.
func (r regs) setInterruptDisable(v uint32) { r.write(RegInterruptEnable, r.read(RegInterruptEnable)&^v) }

func (r regs) setHCCA(phys uint32)           { r.write(RegHCCA, phys) }
func (r regs) setControlHead(phys uint32)    { r.write(RegControlHeadED, phys) }
func (r regs) setControlCurrent(phys uint32) { r.write(RegControlCurrentED, phys) }
func (r regs) setBulkHead(phys uint32)       { r.write(RegBulkHeadED, phys) }
func (r regs) setBulkCurrent(phys uint32)    { r.write(RegBulkCurrentED, phys) }
func (r regs) fmInterval() uint32            { return r.read(RegFmInterval) }
func (r regs) setFmInterval(v uint32)        { r.write(RegFmInterval, v) }
func (r regs) setPeriodicStart(v uint32)     { r.write(RegPeriodicStart, v) }
func (r regs) legacyControl() uint32         { return r.read(RegLegacyControl) }
func (r regs) setLegacyControl(v uint32)     { r.write(RegLegacyControl, v) }
